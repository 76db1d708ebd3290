package diagnostics

import (
	"fmt"

	"github.com/loomhq/loom/internal/models"
)

// MissingDerivedTypes is reported for a union annotation whose type has no
// variant declarations in its package. Generation still succeeds, the
// union just produces no capability blocks.
const MissingDerivedTypes = "MissingDerivedTypes"

// Severity ranks a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is one finding against an extracted declaration. Union carries
// the offending snapshot so a fix can be synthesized without re-extraction.
type Diagnostic struct {
	ID       string
	Severity Severity
	Span     models.Span
	Message  string
	Union    models.UnionDefinition
}

// Analyze inspects extracted packages and reports findings. Currently the
// single analysis is the empty-union check: an annotated union with zero
// matched variants, anchored at the annotation's source span.
func Analyze(packages []*models.PackageSnapshot) []Diagnostic {
	var diags []Diagnostic
	for _, pkg := range packages {
		for _, union := range pkg.Unions {
			if len(union.Union.Members) > 0 {
				continue
			}
			diags = append(diags, Diagnostic{
				ID:       MissingDerivedTypes,
				Severity: SeverityWarning,
				Span:     union.Union.Span,
				Message: fmt.Sprintf(
					"union %s has no variant declarations in package %s",
					union.Union.Name, pkg.PackageName,
				),
				Union: union.Union,
			})
		}
	}
	return diags
}
