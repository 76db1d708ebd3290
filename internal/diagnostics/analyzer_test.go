package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomhq/loom/internal/models"
)

func unionWith(name string, members ...string) models.UnionSnapshot {
	union := models.UnionDefinition{
		Name:                    name,
		Kind:                    models.ReferenceStyle,
		Visibility:              models.VisibilityPublic,
		QualifiedTypeExpression: name,
		Settings:                models.DefaultUnionSettings(),
		Span:                    models.Span{File: "shapes.go", Line: 5, Column: 1},
	}
	for _, member := range members {
		union.Members = append(union.Members, models.UnionMember{
			Name:       member,
			Visibility: models.VisibilityPublic,
		})
	}
	return models.UnionSnapshot{PackagePath: "./shapes", Union: union}
}

func TestAnalyze_FlagsEmptyUnion(t *testing.T) {
	packages := []*models.PackageSnapshot{
		{
			PackageName: "shapes",
			PackagePath: "./shapes",
			Unions:      []models.UnionSnapshot{unionWith("Shape")},
		},
	}

	diags := Analyze(packages)
	require.Len(t, diags, 1)

	diag := diags[0]
	assert.Equal(t, MissingDerivedTypes, diag.ID)
	assert.Equal(t, SeverityWarning, diag.Severity)
	assert.Equal(t, models.Span{File: "shapes.go", Line: 5, Column: 1}, diag.Span)
	assert.Equal(t, "union Shape has no variant declarations in package shapes", diag.Message)
	assert.Equal(t, "Shape", diag.Union.Name)
}

func TestAnalyze_PopulatedUnionPasses(t *testing.T) {
	packages := []*models.PackageSnapshot{
		{
			PackageName: "shapes",
			PackagePath: "./shapes",
			Unions:      []models.UnionSnapshot{unionWith("Shape", "Circle")},
		},
	}

	assert.Empty(t, Analyze(packages))
}

func TestAnalyze_MixedPackages(t *testing.T) {
	packages := []*models.PackageSnapshot{
		{
			PackageName: "shapes",
			PackagePath: "./shapes",
			Unions: []models.UnionSnapshot{
				unionWith("Shape", "Circle"),
				unionWith("Color"),
			},
		},
		{
			PackageName: "grades",
			PackagePath: "./grades",
			Unions:      []models.UnionSnapshot{unionWith("Grade")},
		},
	}

	diags := Analyze(packages)
	require.Len(t, diags, 2)
	assert.Equal(t, "Color", diags[0].Union.Name)
	assert.Equal(t, "Grade", diags[1].Union.Name)
}

func TestSeverity_String(t *testing.T) {
	assert.Equal(t, "warning", SeverityWarning.String())
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "unknown", Severity(42).String())
}
