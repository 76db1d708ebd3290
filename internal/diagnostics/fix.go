package diagnostics

import (
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"strings"

	"golang.org/x/tools/imports"

	"github.com/loomhq/loom/internal/models"
	"github.com/loomhq/loom/pkg/loom"
)

// Document is a source file candidate for fixing.
type Document struct {
	Path   string
	Source []byte
}

// Fix is a whole-file rewrite applying one diagnostic's suggested change.
type Fix struct {
	Title  string
	Path   string
	Source []byte
}

// ProposeFix synthesizes the starter-variant fix for a MissingDerivedTypes
// diagnostic: a <Name>Variant declaration inserted immediately after the
// union's own declaration, mirroring its style and type parameters. The
// empty option means the fix does not apply to this document, either
// because the diagnostic is a different finding or because the union's
// declaration could not be located; neither is an error.
func ProposeFix(diag Diagnostic, doc Document) (loom.Option[Fix], error) {
	none := loom.None[Fix]()

	if diag.ID != MissingDerivedTypes {
		return none, nil
	}

	fileSet := token.NewFileSet()
	file, err := parser.ParseFile(fileSet, doc.Path, doc.Source, parser.ParseComments)
	if err != nil {
		return none, fmt.Errorf("failed to parse %s: %w", doc.Path, err)
	}

	decl, found := unionDeclaration(file, diag.Union.Name)
	if !found {
		return none, nil
	}

	offset := fileSet.Position(decl.End()).Offset
	variant := variantDeclaration(diag.Union)

	var patched []byte
	patched = append(patched, doc.Source[:offset]...)
	patched = append(patched, []byte("\n\n"+variant)...)
	patched = append(patched, doc.Source[offset:]...)

	// Normalize formatting and import grouping of the patched file.
	formatted, err := imports.Process(doc.Path, patched, nil)
	if err != nil {
		return none, fmt.Errorf("failed to format fix for %s: %w", doc.Path, err)
	}

	return loom.Some(Fix{
		Title:  fmt.Sprintf("declare %sVariant", diag.Union.Name),
		Path:   doc.Path,
		Source: formatted,
	}), nil
}

// unionDeclaration locates the top-level type declaration of the union
func unionDeclaration(file *ast.File, name string) (*ast.GenDecl, bool) {
	for _, decl := range file.Decls {
		genDecl, ok := decl.(*ast.GenDecl)
		if !ok || genDecl.Tok != token.TYPE {
			continue
		}
		for _, spec := range genDecl.Specs {
			typeSpec, ok := spec.(*ast.TypeSpec)
			if ok && typeSpec.Name.Name == name {
				return genDecl, true
			}
		}
	}
	return nil, false
}

// variantDeclaration renders the starter variant in the union's own style:
// an embedding struct for interface unions, a defined type otherwise.
func variantDeclaration(union models.UnionDefinition) string {
	params := declaredTypeParams(union.GenericParameters)
	reference := union.Name + typeArgs(union.GenericParameters)

	if union.Kind == models.ReferenceStyle {
		return fmt.Sprintf("type %sVariant%s struct {\n\t%s\n}", union.Name, params, reference)
	}
	return fmt.Sprintf("type %sVariant%s %s", union.Name, params, reference)
}

func declaredTypeParams(params []models.GenericParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		clause := p.ConstraintClause
		if clause == "" {
			clause = "any"
		}
		parts[i] = p.Name + " " + clause
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func typeArgs(params []models.GenericParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
