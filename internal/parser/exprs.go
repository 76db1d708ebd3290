package parser

import (
	"go/ast"
	"go/types"
	"strings"
)

// exprString renders a type expression canonically. go/types.ExprString is
// whitespace-insensitive, so formatting-only edits to the source never
// change the rendered text.
func exprString(expr ast.Expr) string {
	if expr == nil {
		return ""
	}
	return types.ExprString(expr)
}

// baseTypeName returns the identifier a receiver or parameter type refers
// to, stripping pointers and generic instantiations: *Widget, Widget[T] and
// *Widget[T] all yield "Widget".
func baseTypeName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.StarExpr:
		return baseTypeName(t.X)
	case *ast.IndexExpr:
		return baseTypeName(t.X)
	case *ast.IndexListExpr:
		return baseTypeName(t.X)
	default:
		return ""
	}
}

// qualifiedTypeExpression builds a declaration's own generically-
// parameterized type expression, e.g. "Result[T]" for type Result[T any].
func qualifiedTypeExpression(name string, params []string) string {
	if len(params) == 0 {
		return name
	}
	return name + "[" + strings.Join(params, ", ") + "]"
}

// importStatement renders an import spec verbatim, alias included.
func importStatement(spec *ast.ImportSpec) string {
	if spec.Name != nil {
		return spec.Name.Name + " " + spec.Path.Value
	}
	return spec.Path.Value
}
