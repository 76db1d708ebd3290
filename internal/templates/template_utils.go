package templates

import (
	"fmt"
	"strings"

	"github.com/loomhq/loom/internal/models"
)

// typeParamList renders a declaration's type parameter list, e.g.
// "[T any, U comparable]". Empty for non-generic declarations.
func typeParamList(params []models.GenericParameter) string {
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

// typeArgList renders a type argument list referencing the declaration's
// own parameters, e.g. "[T, U]".
func typeArgList(params []models.GenericParameter) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = p.Name
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// paramName returns a parameter's name, or a positional fallback for
// unnamed parameters so generated bodies can reference them.
func paramName(p models.Param, index int) string {
	if p.Name != "" && p.Name != "_" {
		return p.Name
	}
	return fmt.Sprintf("arg%d", index)
}

// paramList renders "name Type" pairs joined by commas.
func paramList(params []models.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = paramName(p, i) + " " + p.TypeExpression
	}
	return strings.Join(parts, ", ")
}

// argList renders the call-site argument names joined by commas. Variadic
// parameters are re-spread so the forwarded call keeps the declared arity.
func argList(params []models.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		name := paramName(p, i)
		if strings.HasPrefix(p.TypeExpression, "...") {
			name += "..."
		}
		parts[i] = name
	}
	return strings.Join(parts, ", ")
}
