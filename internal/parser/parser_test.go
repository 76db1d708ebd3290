package parser

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomhq/loom/internal/models"
)

func extract(t *testing.T, source string) *models.PackageSnapshot {
	t.Helper()
	snapshot, err := NewExtractor().ParseSource(context.Background(), "test.go", source)
	require.NoError(t, err)
	return snapshot
}

func TestExtractUnion_ReferenceStyle(t *testing.T) {
	snapshot := extract(t, `
package shapes

//loom::union
type Shape interface {
	Area() float64
}

type Circle struct {
	Shape
	Radius float64
}

type rectangle struct {
	Shape
	Width, Height float64
}

// Embeds the union, but not as the first field: not a variant.
type Decorated struct {
	Label string
	Shape
}

// Plain struct without the union: not a variant.
type Point struct {
	X, Y float64
}
`)

	require.Len(t, snapshot.Unions, 1)
	union := snapshot.Unions[0].Union

	assert.Equal(t, "Shape", union.Name)
	assert.Equal(t, models.ReferenceStyle, union.Kind)
	assert.Equal(t, models.VisibilityPublic, union.Visibility)
	assert.Equal(t, "shapes", union.GroupName)

	require.Len(t, union.Members, 2)
	assert.Equal(t, "Circle", union.Members[0].Name)
	assert.Equal(t, models.VisibilityPublic, union.Members[0].Visibility)
	assert.Equal(t, "rectangle", union.Members[1].Name)
	assert.Equal(t, models.VisibilityInternal, union.Members[1].Visibility)
}

func TestExtractUnion_ValueStyle(t *testing.T) {
	snapshot := extract(t, `
package grades

//loom::union
type Grade struct {
	Score float64
}

type Passing Grade

type Failing Grade

// Aliases do not declare a new variant.
type G = Grade

// Defined over a different type: not a variant.
type Level int
`)

	require.Len(t, snapshot.Unions, 1)
	union := snapshot.Unions[0].Union

	assert.Equal(t, models.ValueStyle, union.Kind)
	require.Len(t, union.Members, 2)
	assert.Equal(t, "Passing", union.Members[0].Name)
	assert.Equal(t, "Failing", union.Members[1].Name)
}

func TestExtractUnion_GenericValueStyle(t *testing.T) {
	snapshot := extract(t, `
package results

//loom::union
type Result[T any] struct {
	Value T
	Err   error
}

type Ok[T any] Result[T]

type Failed[T any] Result[T]
`)

	require.Len(t, snapshot.Unions, 1)
	union := snapshot.Unions[0].Union

	assert.Equal(t, "Result[T]", union.QualifiedTypeExpression)
	require.Len(t, union.GenericParameters, 1)
	assert.Equal(t, "T", union.GenericParameters[0].Name)
	assert.Equal(t, "any", union.GenericParameters[0].ConstraintClause)
	require.Len(t, union.Members, 2)
	assert.Equal(t, "Ok", union.Members[0].Name)
}

func TestExtractUnion_BlankIdentifierExcluded(t *testing.T) {
	snapshot := extract(t, `
package shapes

//loom::union
type Shape interface{}

type _ struct {
	Shape
}

type Circle struct {
	Shape
}
`)

	require.Len(t, snapshot.Unions, 1)
	union := snapshot.Unions[0].Union
	require.Len(t, union.Members, 1)
	assert.Equal(t, "Circle", union.Members[0].Name)
}

func TestExtractUnion_BlankUnionNameExcluded(t *testing.T) {
	snapshot := extract(t, `
package shapes

//loom::union
type _ interface{}
`)

	assert.Empty(t, snapshot.Unions)
}

func TestExtractUnion_EmptyUnionKept(t *testing.T) {
	snapshot := extract(t, `
package shapes

//loom::union
type Shape interface{}
`)

	require.Len(t, snapshot.Unions, 1)
	union := snapshot.Unions[0].Union
	assert.Empty(t, union.Members)
	assert.Equal(t, "test.go", union.Span.File)
	assert.Greater(t, union.Span.Line, 0)
}

func TestExtractUnion_SettingsFromAnnotation(t *testing.T) {
	snapshot := extract(t, `
package shapes

//loom::union -Serialize=false -Group=geometry
type Shape interface{}
`)

	require.Len(t, snapshot.Unions, 1)
	union := snapshot.Unions[0].Union

	assert.True(t, union.Settings.GenerateMatchHelper)
	assert.False(t, union.Settings.GeneratePolymorphicSerialization)
	assert.True(t, union.Settings.GeneratePrivateConstructor)
	assert.Equal(t, "geometry", union.GroupName)
}

func TestExtract_WhitespaceInvariance(t *testing.T) {
	compact := `
package shapes

//loom::union
type Shape interface{ Area() float64 }

type Circle struct{ Shape; Radius float64 }
`
	spread := `
package shapes

// Shape is documented here.
//
//loom::union
type Shape interface {
	Area() float64
}

// Circle has extra commentary and spacing.
type Circle struct {
	Shape

	Radius float64
}
`

	first := extract(t, compact)
	second := extract(t, spread)

	require.Len(t, first.Unions, 1)
	require.Len(t, second.Unions, 1)
	assert.True(t, first.Unions[0].EqualSnapshot(second.Unions[0]),
		"formatting and comments must not change the snapshot")
	assert.Equal(t, first.Unions[0].Fingerprint(), second.Unions[0].Fingerprint())
}

func TestExtract_ConstraintCanonicalization(t *testing.T) {
	first := extract(t, `
package results

//loom::union
type Box[T interface{ ~int; comparable; any }] struct {
	Value T
}
`)
	second := extract(t, `
package results

//loom::union
type Box[T interface{ any; comparable; ~int }] struct {
	Value T
}
`)

	require.Len(t, first.Unions, 1)
	require.Len(t, second.Unions, 1)

	clause := first.Unions[0].Union.GenericParameters[0].ConstraintClause
	assert.Equal(t, "interface{ any; comparable; ~int }", clause)
	assert.True(t, first.Unions[0].EqualSnapshot(second.Unions[0]),
		"marker order in source must not change the snapshot")
}

func TestExtractContainer_TaskUnwrapping(t *testing.T) {
	snapshot := extract(t, `
package tasks

import (
	"context"

	"github.com/loomhq/loom/pkg/loom"
)

type User struct{ ID string }

//loom::async
type UserService struct{}

func (s *UserService) FetchUser(ctx context.Context, id string) loom.Task[User] {
	return loom.Task[User]{}
}

func (s *UserService) Count() int {
	return 0
}

func (s *UserService) Describe() (string, error) {
	return "", nil
}
`)

	require.Len(t, snapshot.Containers, 1)
	container := snapshot.Containers[0]
	require.Len(t, container.Members, 3)

	fetch := container.Members[0]
	assert.Equal(t, "FetchUser", fetch.Name)
	assert.True(t, fetch.ReturnShape.WrapsAsyncResult)
	assert.Equal(t, "User", fetch.ReturnShape.UnderlyingTypeExpression)
	assert.Equal(t, "FetchUserAsync", fetch.Resolved.ExtensionMethodName)

	count := container.Members[1]
	assert.False(t, count.ReturnShape.WrapsAsyncResult)
	assert.Equal(t, "int", count.ReturnShape.UnderlyingTypeExpression)

	describe := container.Members[2]
	assert.False(t, describe.ReturnShape.WrapsAsyncResult)
	assert.Equal(t, "(string, error)", describe.ReturnShape.UnderlyingTypeExpression)
}

func TestExtractContainer_TaskRequiresImportPath(t *testing.T) {
	// A package named loom from elsewhere must not match the wrapper.
	snapshot := extract(t, `
package tasks

import loom "example.com/other/loom"

//loom::async
type Svc struct{}

func (s *Svc) Fetch() loom.Task[int] {
	return loom.Task[int]{}
}
`)

	require.Len(t, snapshot.Containers, 1)
	member := snapshot.Containers[0].Members[0]
	assert.False(t, member.ReturnShape.WrapsAsyncResult)
	assert.Equal(t, "loom.Task[int]", member.ReturnShape.UnderlyingTypeExpression)
}

func TestExtractContainer_TaskAliasedImport(t *testing.T) {
	snapshot := extract(t, `
package tasks

import tl "github.com/loomhq/loom/pkg/loom"

//loom::async
type Svc struct{}

func (s *Svc) Fetch() tl.Task[int] {
	return tl.Task[int]{}
}
`)

	require.Len(t, snapshot.Containers, 1)
	member := snapshot.Containers[0].Members[0]
	assert.True(t, member.ReturnShape.WrapsAsyncResult)
	assert.Equal(t, "int", member.ReturnShape.UnderlyingTypeExpression)
}

func TestExtractContainer_ExtensionMembers(t *testing.T) {
	snapshot := extract(t, `
package tasks

//loom::async
type Svc struct{}

func Reset(s *Svc) {}

func Helper(n int) int { return n }

func (s *Svc) unexportedButIncluded() int { return 0 }
`)

	require.Len(t, snapshot.Containers, 1)
	container := snapshot.Containers[0]
	require.Len(t, container.Members, 2)

	reset := container.Members[0]
	assert.Equal(t, "Reset", reset.Name)
	assert.Equal(t, models.ExtensionMethod, reset.Kind)
	assert.Equal(t, "*Svc", reset.ReceiverType)
	assert.Empty(t, reset.Parameters, "the container-typed first parameter is not a forwarded parameter")

	method := container.Members[1]
	assert.Equal(t, "unexportedButIncluded", method.Name)
	assert.Equal(t, models.VisibilityInternal, method.Visibility)
}

func TestExtractContainer_ClassOverride(t *testing.T) {
	snapshot := extract(t, `
package tasks

//loom::async -Class=UserClient
type UserService struct{}

func (s *UserService) Fetch() int { return 0 }
`)

	require.Len(t, snapshot.Containers, 1)
	container := snapshot.Containers[0]

	assert.Equal(t, "UserClient", container.Resolved.ExtensionClassName)
	assert.Equal(t, "UserClient", container.Members[0].Resolved.ExtensionClassName)
	assert.Equal(t, "FetchAsync", container.Members[0].Resolved.ExtensionMethodName)
}

func TestExtractContainer_ImportsFromContributingFilesOnly(t *testing.T) {
	extractor := NewExtractor()
	ctx := context.Background()

	first, err := extractor.ParseSource(ctx, "a.go", `
package tasks

import "context"

//loom::async
type Svc struct{}

func (s *Svc) Fetch(ctx context.Context) int { return 0 }
`)
	require.NoError(t, err)
	require.Len(t, first.Containers, 1)

	imports := first.Containers[0].Container.ImportStatements
	assert.Equal(t, []string{`"context"`}, imports)
}

func TestExtract_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractor().ParseSource(ctx, "test.go", `
package shapes

//loom::union
type Shape interface{}

type Circle struct{ Shape }
`)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtract_GeneratedFilesIgnored(t *testing.T) {
	assert.False(t, notGenerated("autogen_loom.go"))
	assert.False(t, notGenerated("service_loom.go"))
	assert.True(t, notGenerated("service.go"))
	assert.True(t, notGenerated("service_test.go"))

	assert.True(t, parseable("service.go"))
	assert.False(t, parseable("service_test.go"))
	assert.False(t, parseable("autogen_loom.go"))
}

func TestExtractContainer_VariadicParameter(t *testing.T) {
	snapshot := extract(t, `
package tasks

//loom::async
type Logger struct{}

func (l *Logger) Log(level int, msgs ...string) int {
	return len(msgs)
}
`)

	require.Len(t, snapshot.Containers, 1)
	member := snapshot.Containers[0].Members[0]
	require.Len(t, member.Parameters, 2)
	assert.Equal(t, "int", member.Parameters[0].TypeExpression)
	assert.Equal(t, "...string", member.Parameters[1].TypeExpression)
}

func TestParseDirectory_SkipsTestFiles(t *testing.T) {
	dir := t.TempDir()
	source := `package shapes

//loom::union
type Shape interface{}

type Circle struct{ Shape }
`
	// An external test package must not read as a second package.
	externalTest := `package shapes_test

import "testing"

func TestNothing(t *testing.T) {}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes.go"), []byte(source), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shapes_test.go"), []byte(externalTest), 0644))

	snapshot, err := NewExtractor().ParseDirectory(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, snapshot.Unions, 1)
	assert.Equal(t, "Shape", snapshot.Unions[0].Union.Name)
}
