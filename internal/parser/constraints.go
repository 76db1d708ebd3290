package parser

import (
	"go/ast"
	"strings"

	"github.com/loomhq/loom/internal/models"
)

// extractGenericParameters builds the ordered generic parameter sequence of
// a declaration. Constraint clauses are canonicalized so that declaration
// order of markers in source never produces distinct snapshots.
func extractGenericParameters(typeParams *ast.FieldList) []models.GenericParameter {
	if typeParams == nil || len(typeParams.List) == 0 {
		return nil
	}

	var params []models.GenericParameter
	for _, field := range typeParams.List {
		clause := canonicalConstraint(field.Type)
		for _, name := range field.Names {
			params = append(params, models.GenericParameter{
				Name:             name.Name,
				ConstraintClause: clause,
			})
		}
	}
	return params
}

// canonicalConstraint renders a constraint expression deterministically.
// Composite constraints (inline interfaces with only embedded terms) are
// reordered: built-in markers first (any before comparable), approximation
// terms next in declaration order, explicit named bounds in declaration
// order, and the construction-capability marker loom.Constructible last.
// Single-term constraints are rendered verbatim.
func canonicalConstraint(expr ast.Expr) string {
	iface, ok := expr.(*ast.InterfaceType)
	if !ok || iface.Methods == nil {
		return exprString(expr)
	}

	var (
		markers       []string
		approximation []string
		bounds        []string
		constructible bool
	)
	hasAny := false
	hasComparable := false

	for _, field := range iface.Methods.List {
		if len(field.Names) > 0 {
			// Method requirements defeat reordering; keep the clause verbatim.
			return exprString(expr)
		}
		switch term := field.Type.(type) {
		case *ast.Ident:
			switch term.Name {
			case "any":
				hasAny = true
			case "comparable":
				hasComparable = true
			default:
				bounds = append(bounds, term.Name)
			}
		case *ast.UnaryExpr:
			approximation = append(approximation, exprString(term))
		case *ast.SelectorExpr:
			if term.Sel.Name == "Constructible" {
				constructible = true
			} else {
				bounds = append(bounds, exprString(term))
			}
		default:
			bounds = append(bounds, exprString(term))
		}
	}

	if hasAny {
		markers = append(markers, "any")
	}
	if hasComparable {
		markers = append(markers, "comparable")
	}

	terms := make([]string, 0, len(markers)+len(approximation)+len(bounds)+1)
	terms = append(terms, markers...)
	terms = append(terms, approximation...)
	terms = append(terms, bounds...)
	if constructible {
		terms = append(terms, "loom.Constructible")
	}

	if len(terms) == 0 {
		return "any"
	}
	if len(terms) == 1 {
		return terms[0]
	}
	return "interface{ " + strings.Join(terms, "; ") + " }"
}
