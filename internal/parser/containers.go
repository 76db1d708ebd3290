package parser

import (
	"context"
	"fmt"
	"go/ast"
	"strconv"
	"strings"

	"github.com/loomhq/loom/internal/annotations"
	"github.com/loomhq/loom/internal/models"
	"github.com/loomhq/loom/pkg/loom"
)

// extractContainer builds the canonical summary of an annotated async
// container and its matched members. A matched member is either a method
// with a receiver of the container type or a top-level function whose first
// parameter is the container type; everything else is excluded. Import
// statements are collected as the deduplicated, first-appearance-ordered
// union across every file contributing at least one matched member.
func (e *Extractor) extractContainer(ctx context.Context, packageName string, spec *ast.TypeSpec, annotation *annotations.ParsedAnnotation, files []SourceFile) (loom.Option[models.AsyncContainer], error) {
	none := loom.None[models.AsyncContainer]()

	name := spec.Name.Name
	visibility, supported := visibilityOf(name).Get()
	if !supported {
		return none, nil
	}

	generics := extractGenericParameters(spec.TypeParams)
	containerSettings := settingsFromAnnotation(annotation)

	container := models.ContainerInfo{
		Name:                    name,
		QualifiedTypeExpression: qualifiedTypeExpression(name, genericParameterNames(generics)),
		GroupName:               packageName,
		GenericParameters:       generics,
		Visibility:              visibility,
		Settings:                containerSettings,
	}

	var members []models.MemberInfo
	var contributing []SourceFile

	for _, source := range files {
		taskAlias := taskPackageAlias(source.File)
		contributed := false

		for _, decl := range source.File.Decls {
			if err := ctx.Err(); err != nil {
				return none, err
			}
			funcDecl, ok := decl.(*ast.FuncDecl)
			if !ok {
				continue
			}
			extracted := e.extractMember(packageName, container, funcDecl, taskAlias, source.Name)
			member, matched := extracted.Get()
			if !matched {
				continue
			}
			member.Container = container
			members = append(members, member)
			contributed = true
		}

		if contributed {
			contributing = append(contributing, source)
		}
	}

	imports := collectImports(contributing)
	container.ImportStatements = imports
	for i := range members {
		members[i].Container.ImportStatements = imports
	}

	resolved := annotations.Resolve(nil, &containerSettings, e.defaults, name)

	return loom.Some(models.AsyncContainer{
		Container: container,
		Members:   members,
		Resolved:  resolved,
	}), nil
}

// extractMember classifies one function declaration against the container.
// The option result is empty for non-members: static-style helpers, blank
// names, and receivers of other types.
func (e *Extractor) extractMember(packageName string, container models.ContainerInfo, funcDecl *ast.FuncDecl, taskAlias, fileName string) loom.Option[models.MemberInfo] {
	none := loom.None[models.MemberInfo]()

	memberName := funcDecl.Name.Name
	visibility, supported := visibilityOf(memberName).Get()
	if !supported {
		return none
	}

	var kind models.MemberKind
	var receiverType string
	params := funcDecl.Type.Params

	if funcDecl.Recv != nil && len(funcDecl.Recv.List) > 0 {
		if baseTypeName(funcDecl.Recv.List[0].Type) != container.Name {
			return none
		}
		kind = models.InstanceMethod
		receiverType = exprString(funcDecl.Recv.List[0].Type)
	} else {
		if params == nil || len(params.List) == 0 {
			return none
		}
		first := params.List[0]
		if baseTypeName(first.Type) != container.Name || len(first.Names) > 1 {
			return none
		}
		kind = models.ExtensionMethod
		receiverType = exprString(first.Type)
	}

	memberAnnotation := e.memberAnnotation(funcDecl, fileName)
	memberSettings := settingsFromAnnotation(memberAnnotation)

	member := models.MemberInfo{
		Name:              memberName,
		Parameters:        memberParameters(params, kind),
		GenericParameters: extractGenericParameters(funcDecl.Type.TypeParams),
		ReturnShape:       returnShape(funcDecl.Type.Results, taskAlias),
		Kind:              kind,
		ReceiverType:      receiverType,
		Visibility:        visibility,
		Settings:          memberSettings,
		Resolved: annotations.ResolveMember(
			settingsPointer(memberSettings), settingsPointer(container.Settings),
			e.defaults, container.Name, memberName,
		),
		DocReference: fmt.Sprintf("%s.%s.%s", packageName, container.Name, memberName),
	}
	return loom.Some(member)
}

// memberAnnotation parses an optional member-level async annotation
func (e *Extractor) memberAnnotation(funcDecl *ast.FuncDecl, fileName string) *annotations.ParsedAnnotation {
	if funcDecl.Doc == nil {
		return nil
	}
	for _, comment := range funcDecl.Doc.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		position := e.fileSet.Position(comment.Pos())
		location := annotations.SourceLocation{File: fileName, Line: position.Line, Column: position.Column}
		parsed, err := e.annParser.ParseAnnotation(comment.Text, funcDecl.Name.Name, location)
		if err != nil || parsed.Type != annotations.AsyncAnnotation {
			continue
		}
		return parsed
	}
	return nil
}

// memberParameters flattens the parameter list, skipping the container-typed
// first parameter of extension members.
func memberParameters(params *ast.FieldList, kind models.MemberKind) []models.Param {
	if params == nil {
		return nil
	}
	var result []models.Param
	for i, field := range params.List {
		if kind == models.ExtensionMethod && i == 0 {
			continue
		}
		typeExpr := exprString(field.Type)
		if len(field.Names) == 0 {
			result = append(result, models.Param{TypeExpression: typeExpr})
			continue
		}
		for _, name := range field.Names {
			result = append(result, models.Param{Name: name.Name, TypeExpression: typeExpr})
		}
	}
	return result
}

// returnShape unwraps the well-known task wrapper. Only a single result of
// the form <alias>.Task[Inner] with exactly one type argument counts as
// asynchronous; everything else is the synchronous shape verbatim.
func returnShape(results *ast.FieldList, taskAlias string) models.ReturnShape {
	if results == nil || len(results.List) == 0 {
		return models.ReturnShape{}
	}

	var exprs []string
	for _, field := range results.List {
		text := exprString(field.Type)
		count := len(field.Names)
		if count == 0 {
			count = 1
		}
		for i := 0; i < count; i++ {
			exprs = append(exprs, text)
		}
	}

	if len(exprs) == 1 && taskAlias != "" {
		if inner, ok := unwrapTask(results.List[0].Type, taskAlias); ok {
			return models.ReturnShape{UnderlyingTypeExpression: inner, WrapsAsyncResult: true}
		}
	}

	if len(exprs) == 1 {
		return models.ReturnShape{UnderlyingTypeExpression: exprs[0]}
	}
	return models.ReturnShape{UnderlyingTypeExpression: "(" + strings.Join(exprs, ", ") + ")"}
}

// unwrapTask matches <alias>.Task instantiated with exactly one type
// argument and returns the inner type expression.
func unwrapTask(expr ast.Expr, taskAlias string) (string, bool) {
	index, ok := expr.(*ast.IndexExpr)
	if !ok {
		// IndexListExpr means more than one type argument: not the wrapper.
		return "", false
	}
	selector, ok := index.X.(*ast.SelectorExpr)
	if !ok || selector.Sel.Name != taskTypeName {
		return "", false
	}
	ident, ok := selector.X.(*ast.Ident)
	if !ok || ident.Name != taskAlias {
		return "", false
	}
	return exprString(index.Index), true
}

// taskPackageAlias resolves the local name the file imports the task
// package under. Empty when the file does not import it: the wrapper type
// is unresolvable there and every return is treated as synchronous.
func taskPackageAlias(file *ast.File) string {
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil || path != TaskImportPath {
			continue
		}
		if spec.Name != nil {
			return spec.Name.Name
		}
		return "loom"
	}
	return ""
}

// collectImports unions import statements across contributing files in
// first-appearance order, duplicates removed.
func collectImports(contributing []SourceFile) []string {
	var imports []string
	seen := make(map[string]bool)
	for _, source := range contributing {
		for _, spec := range source.File.Imports {
			statement := importStatement(spec)
			if seen[statement] {
				continue
			}
			seen[statement] = true
			imports = append(imports, statement)
		}
	}
	return imports
}

// settingsPointer returns nil for a zero settings value so resolution falls
// through cleanly.
func settingsPointer(s models.AnnotationSettings) *models.AnnotationSettings {
	if s.ExtensionClassName == nil && s.ExtensionMethodName == nil && s.GroupName == nil {
		return nil
	}
	return &s
}
