package parser

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"io/fs"
	"sort"
	"strings"

	"github.com/loomhq/loom/internal/annotations"
	"github.com/loomhq/loom/internal/models"
	"github.com/loomhq/loom/pkg/loom"
)

// TaskImportPath is the import path of the well-known task wrapper. A return
// type only counts as asynchronous when its selector resolves, through the
// file's imports, to this package.
const TaskImportPath = "github.com/loomhq/loom/pkg/loom"

// taskTypeName is the wrapper's type name within its package
const taskTypeName = "Task"

// SourceFile pairs a parsed file with its name for deterministic ordering
type SourceFile struct {
	Name string
	File *ast.File
}

// Extractor maps annotated declarations into canonical snapshots. All
// extraction is pure: preconditions that fail yield an empty option, never
// an error, and the same source always produces an equal snapshot.
type Extractor struct {
	fileSet   *token.FileSet
	registry  annotations.AnnotationRegistry
	annParser *annotations.Parser
	defaults  models.SettingsTemplate
}

// NewExtractor creates an extractor with the builtin schemas and default
// naming templates.
func NewExtractor() *Extractor {
	return NewExtractorWithDefaults(models.DefaultSettingsTemplate())
}

// NewExtractorWithDefaults creates an extractor using the given naming
// templates for settings resolution.
func NewExtractorWithDefaults(defaults models.SettingsTemplate) *Extractor {
	registry := annotations.NewRegistry()
	if err := annotations.RegisterBuiltinSchemas(registry); err != nil {
		// Builtin schemas registering twice is a programming error.
		panic(err)
	}
	return &Extractor{
		fileSet:   token.NewFileSet(),
		registry:  registry,
		annParser: annotations.NewParser(registry),
		defaults:  defaults,
	}
}

// NewExtractorWithRegistry creates an extractor against a caller-supplied
// schema registry. An empty registry makes every artifact kind invisible:
// extraction degrades to a no-op rather than failing.
func NewExtractorWithRegistry(registry annotations.AnnotationRegistry, defaults models.SettingsTemplate) *Extractor {
	return &Extractor{
		fileSet:   token.NewFileSet(),
		registry:  registry,
		annParser: annotations.NewParser(registry),
		defaults:  defaults,
	}
}

// FileSet exposes the extractor's position table for diagnostics.
func (e *Extractor) FileSet() *token.FileSet {
	return e.fileSet
}

// ParseSource parses source code from a string, mainly for tests.
func (e *Extractor) ParseSource(ctx context.Context, filename, source string) (*models.PackageSnapshot, error) {
	file, err := parser.ParseFile(e.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	return e.ExtractPackage(ctx, file.Name.Name, "./", []SourceFile{{Name: filename, File: file}})
}

// ParseDirectory parses the hand-written, non-test Go files in a
// single-package directory and extracts its snapshots. Generated companion
// files are skipped so their content never feeds back into extraction; test
// files are skipped so an external _test package does not read as a second
// package.
func (e *Extractor) ParseDirectory(ctx context.Context, path string) (*models.PackageSnapshot, error) {
	pkgs, err := parser.ParseDir(e.fileSet, path, func(info fs.FileInfo) bool {
		return parseable(info.Name())
	}, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse directory %s: %w", path, err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no Go packages found in directory %s", path)
	}
	if len(pkgs) > 1 {
		return nil, fmt.Errorf("multiple packages found in directory %s", path)
	}

	var pkg *ast.Package
	var packageName string
	for name, p := range pkgs {
		pkg = p
		packageName = name
	}

	files := make([]SourceFile, 0, len(pkg.Files))
	for name, file := range pkg.Files {
		files = append(files, SourceFile{Name: name, File: file})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	return e.ExtractPackage(ctx, packageName, path, files)
}

// ExtractPackage extracts every annotated declaration in the package.
// Files must be supplied in lexical name order; member order across files
// follows that ordering, declarations within a file follow source order.
func (e *Extractor) ExtractPackage(ctx context.Context, packageName, packagePath string, files []SourceFile) (*models.PackageSnapshot, error) {
	snapshot := &models.PackageSnapshot{
		PackageName: packageName,
		PackagePath: packagePath,
	}

	for _, source := range files {
		for _, decl := range source.File.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				annotation := e.annotationFor(genDecl, typeSpec, source.Name)
				if annotation == nil {
					continue
				}

				switch annotation.Type {
				case annotations.UnionAnnotation:
					if !e.registry.IsRegistered(annotations.UnionAnnotation) {
						continue
					}
					union, err := e.extractUnion(ctx, packageName, typeSpec, annotation, files)
					if err != nil {
						return nil, err
					}
					if value, ok := union.Get(); ok {
						snapshot.Unions = append(snapshot.Unions, models.UnionSnapshot{
							PackagePath: packagePath,
							Union:       value,
						})
					}
				case annotations.AsyncAnnotation:
					if !e.registry.IsRegistered(annotations.AsyncAnnotation) {
						continue
					}
					container, err := e.extractContainer(ctx, packageName, typeSpec, annotation, files)
					if err != nil {
						return nil, err
					}
					if value, ok := container.Get(); ok {
						value.PackagePath = packagePath
						snapshot.Containers = append(snapshot.Containers, value)
					}
				}
			}
		}
	}

	return snapshot, nil
}

// annotationFor parses the loom annotation attached to a type declaration,
// checking the GenDecl doc first and the TypeSpec doc for grouped blocks.
// Returns nil when no valid annotation is present.
func (e *Extractor) annotationFor(decl *ast.GenDecl, spec *ast.TypeSpec, fileName string) *annotations.ParsedAnnotation {
	for _, group := range []*ast.CommentGroup{decl.Doc, spec.Doc} {
		if group == nil {
			continue
		}
		for _, comment := range group.List {
			if !annotations.IsAnnotation(comment.Text) {
				continue
			}
			position := e.fileSet.Position(comment.Pos())
			location := annotations.SourceLocation{File: fileName, Line: position.Line, Column: position.Column}
			parsed, err := e.annParser.ParseAnnotation(comment.Text, spec.Name.Name, location)
			if err != nil {
				continue
			}
			return parsed
		}
	}
	return nil
}

// visibilityOf classifies an identifier. The empty option is the
// unsupported case: the declaration is silently excluded from generation.
func visibilityOf(name string) loom.Option[models.Visibility] {
	if name == "" || name == "_" {
		return loom.None[models.Visibility]()
	}
	if ast.IsExported(name) {
		return loom.Some(models.VisibilityPublic)
	}
	return loom.Some(models.VisibilityInternal)
}

// settingsFromAnnotation reads the naming overrides declared on an
// annotation, leaving undeclared fields nil.
func settingsFromAnnotation(annotation *annotations.ParsedAnnotation) models.AnnotationSettings {
	if annotation == nil {
		return models.AnnotationSettings{}
	}
	return models.AnnotationSettings{
		ExtensionClassName:  annotation.StringPointer(annotations.ParamClass),
		ExtensionMethodName: annotation.StringPointer(annotations.ParamMethod),
		GroupName:           annotation.StringPointer(annotations.ParamGroup),
	}
}

// notGenerated filters out loom's own companion files during parsing
func notGenerated(name string) bool {
	return !strings.HasSuffix(name, "_loom.go") && !strings.HasPrefix(name, "autogen_")
}

// parseable keeps the files that feed extraction: hand-written, non-test Go
// sources.
func parseable(name string) bool {
	return notGenerated(name) && !strings.HasSuffix(name, "_test.go")
}

// genericParameterNames lists the names of a parameter sequence in order
func genericParameterNames(params []models.GenericParameter) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}
