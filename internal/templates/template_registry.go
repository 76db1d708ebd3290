package templates

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}

	registry.registerUnionTemplates()
	registry.registerAsyncTemplates()

	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	template, exists := tr.templates[name]
	return template, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	template, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return template
}

// Names returns all registered template names
func (tr *TemplateRegistry) Names() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	return names
}

// registerUnionTemplates registers the capability blocks generated for a
// union snapshot. Each block is emitted only when its setting resolves true.
func (tr *TemplateRegistry) registerUnionTemplates() {
	tr.templates["union-match"] = `// Match{{.Union.Name}} dispatches on the concrete variant of {{.Union.Name}}.
func Match{{.Union.Name}}{{.MatchTypeParams}}(value {{.MatchValueType}}{{range .Members}}, on{{.Name}} func({{.TypeExpression}}) R{{end}}) R {
	switch v := value.(type) {
{{range .Members}}	case {{.TypeExpression}}:
		return on{{.Name}}(v)
{{end}}	default:
		panic("Match{{.Union.Name}}: unhandled variant")
	}
}`

	tr.templates["union-serialize"] = `func init() {
{{range .Members}}	loom.Variants.Register("{{$.Union.Name}}", "{{.Name}}", func() any { return new({{.Name}}) })
{{end}}}`

	tr.templates["union-sealed"] = `{{range .Members}}func ({{.TypeExpression}}) is{{$.Union.Name}}() {}
{{end}}{{if .Assertions}}
var (
{{range .Members}}	_ {{$.Union.Name}} = {{.Name}}{}
{{end}}){{end}}`
}

// registerAsyncTemplates registers the forwarding-wrapper artifact emitted
// for an async container snapshot.
func (tr *TemplateRegistry) registerAsyncTemplates() {
	tr.templates["async-wrapper"] = `// {{.Resolved.ExtensionClassName}} provides synchronous views over {{.Container.Name}}'s task-returning members.
type {{.Resolved.ExtensionClassName}}{{.TypeParamList}} struct {
	inner *{{.Container.QualifiedTypeExpression}}
}

// New{{.Resolved.ExtensionClassName}} wraps a {{.Container.Name}} value.
func New{{.Resolved.ExtensionClassName}}{{.TypeParamList}}(inner *{{.Container.QualifiedTypeExpression}}) {{.Resolved.ExtensionClassName}}{{.TypeArgList}} {
	return {{.Resolved.ExtensionClassName}}{{.TypeArgList}}{inner: inner}
}
{{range .Members}}
// {{.Name}} forwards to {{.DocReference}}{{if .Async}}, awaiting the task result{{end}}.
func (w {{$.Resolved.ExtensionClassName}}{{$.TypeArgList}}) {{.Name}}({{.ParamList}}){{if .ReturnDecl}} {{.ReturnDecl}}{{end}} {
	{{.Body}}
}
{{end}}`
}

// Global template registry instance
var DefaultTemplateRegistry = NewTemplateRegistry()
