package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/loomhq/loom/internal/models"
)

// Renderer turns snapshots into generated source text. Templates are
// parsed once at construction and no host state is consulted during
// rendering, so equal snapshots always produce identical output.
type Renderer struct {
	set *template.Template
}

// NewRenderer creates a renderer over the default template registry.
func NewRenderer() *Renderer {
	return NewRendererWithRegistry(DefaultTemplateRegistry)
}

// NewRendererWithRegistry parses every template in the registry once.
func NewRendererWithRegistry(registry *TemplateRegistry) *Renderer {
	set := template.New("loom")
	for _, name := range registry.Names() {
		template.Must(set.New(name).Parse(registry.MustGet(name)))
	}
	return &Renderer{set: set}
}

// RenderSnapshot dispatches on the snapshot's artifact kind.
func (r *Renderer) RenderSnapshot(snapshot models.Snapshot) (string, error) {
	switch s := snapshot.(type) {
	case models.UnionSnapshot:
		return r.RenderUnion(s)
	case models.AsyncContainer:
		return r.RenderContainer(s)
	default:
		return "", fmt.Errorf("unknown snapshot type %T", snapshot)
	}
}

// unionMemberData is one variant prepared for template execution
type unionMemberData struct {
	Name           string
	TypeExpression string
}

// unionData is the execution context for the union capability blocks
type unionData struct {
	Union           models.UnionDefinition
	Members         []unionMemberData
	MatchTypeParams string
	MatchValueType  string
	Assertions      bool
}

// RenderUnion emits one capability block per enabled setting, in fixed
// order: match helper, serialization registration, sealed markers.
func (r *Renderer) RenderUnion(snapshot models.UnionSnapshot) (string, error) {
	union := snapshot.Union
	args := typeArgList(union.GenericParameters)

	members := make([]unionMemberData, len(union.Members))
	for i, m := range union.Members {
		members[i] = unionMemberData{
			Name:           m.Name,
			TypeExpression: m.Name + args,
		}
	}

	matchValueType := union.QualifiedTypeExpression
	if union.Kind == models.ValueStyle {
		// Defined-type variants only share an interface through any.
		matchValueType = "any"
	}

	resultParam := models.GenericParameter{Name: "R"}
	matchParams := append(append([]models.GenericParameter{}, union.GenericParameters...), resultParam)

	data := unionData{
		Union:           union,
		Members:         members,
		MatchTypeParams: typeParamList(matchParams),
		MatchValueType:  matchValueType,
		Assertions:      union.Kind == models.ReferenceStyle && len(union.GenericParameters) == 0,
	}

	var blocks []string
	if union.Settings.GenerateMatchHelper && len(members) > 0 {
		block, err := r.execute("union-match", data)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	if union.Settings.GeneratePolymorphicSerialization && len(members) > 0 && len(union.GenericParameters) == 0 {
		block, err := r.execute("union-serialize", data)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	if union.Settings.GeneratePrivateConstructor && len(members) > 0 {
		block, err := r.execute("union-sealed", data)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}

	return strings.Join(blocks, "\n\n"), nil
}

// asyncMemberData is one forwarding method prepared for template execution
type asyncMemberData struct {
	Name         string
	ParamList    string
	ReturnDecl   string
	Body         string
	DocReference string
	Async        bool
}

// asyncData is the execution context for the wrapper artifact
type asyncData struct {
	Container     models.ContainerInfo
	Resolved      models.ResolvedSettings
	Members       []asyncMemberData
	TypeParamList string
	TypeArgList   string
}

// wrapperGroup collects the members routed to one resolved wrapper class
type wrapperGroup struct {
	resolved models.ResolvedSettings
	members  []asyncMemberData
}

// RenderContainer emits the forwarding wrappers for an async container: a
// struct per resolved class name, with one method per matched member
// mirroring the original signature and awaiting task returns. Most members
// resolve to the container's own class; a member-level class override routes
// that member into its own wrapper, declared after the container's in
// first-appearance order.
func (r *Renderer) RenderContainer(snapshot models.AsyncContainer) (string, error) {
	primary := &wrapperGroup{resolved: snapshot.Resolved}
	groups := []*wrapperGroup{primary}
	byClass := map[string]*wrapperGroup{snapshot.Resolved.ExtensionClassName: primary}

	for _, m := range snapshot.Members {
		group, ok := byClass[m.Resolved.ExtensionClassName]
		if !ok {
			resolved := snapshot.Resolved
			resolved.ExtensionClassName = m.Resolved.ExtensionClassName
			group = &wrapperGroup{resolved: resolved}
			byClass[resolved.ExtensionClassName] = group
			groups = append(groups, group)
		}
		group.members = append(group.members, buildAsyncMember(m))
	}

	var blocks []string
	for _, group := range groups {
		data := asyncData{
			Container:     snapshot.Container,
			Resolved:      group.resolved,
			Members:       group.members,
			TypeParamList: typeParamList(snapshot.Container.GenericParameters),
			TypeArgList:   typeArgList(snapshot.Container.GenericParameters),
		}
		block, err := r.execute("async-wrapper", data)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, block)
	}
	return strings.Join(blocks, "\n\n"), nil
}

// buildAsyncMember assembles the signature and body text of one forwarding
// method. Task-returning members are awaited against the member's own
// context parameter when it has one, context.Background() otherwise.
func buildAsyncMember(m models.MemberInfo) asyncMemberData {
	call := callExpression(m)

	var returnDecl, body string
	if m.ReturnShape.WrapsAsyncResult {
		returnDecl = "(" + m.ReturnShape.UnderlyingTypeExpression + ", error)"
		body = "return " + call + ".Await(" + awaitContext(m) + ")"
	} else if m.ReturnShape.UnderlyingTypeExpression != "" {
		returnDecl = m.ReturnShape.UnderlyingTypeExpression
		body = "return " + call
	} else {
		body = call
	}

	return asyncMemberData{
		Name:         m.Resolved.ExtensionMethodName,
		ParamList:    paramList(m.Parameters),
		ReturnDecl:   returnDecl,
		Body:         body,
		DocReference: m.DocReference,
		Async:        m.ReturnShape.WrapsAsyncResult,
	}
}

// callExpression renders the forwarded call: through the wrapped pointer
// for instance methods, through the original function for extension
// members.
func callExpression(m models.MemberInfo) string {
	args := argList(m.Parameters)
	if m.Kind == models.InstanceMethod {
		return "w.inner." + m.Name + "(" + args + ")"
	}
	receiver := "*w.inner"
	if strings.HasPrefix(m.ReceiverType, "*") {
		receiver = "w.inner"
	}
	if args == "" {
		return m.Name + "(" + receiver + ")"
	}
	return m.Name + "(" + receiver + ", " + args + ")"
}

// awaitContext picks the context expression used to await a task
func awaitContext(m models.MemberInfo) string {
	for i, p := range m.Parameters {
		if p.TypeExpression == "context.Context" {
			return paramName(p, i)
		}
	}
	return "context.Background()"
}

func (r *Renderer) execute(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.set.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}
