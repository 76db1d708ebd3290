package parser

import (
	"context"
	"go/ast"
	"go/token"

	"github.com/loomhq/loom/internal/annotations"
	"github.com/loomhq/loom/internal/models"
	"github.com/loomhq/loom/pkg/loom"
)

// extractUnion builds the canonical summary of an annotated union
// declaration. Members enumerate, in declaration order across the package's
// lexically-ordered files, every type whose declared supertype is exactly
// this union. The cancellation signal is checked between member candidates;
// a cancelled pass yields an error, never a partial snapshot.
func (e *Extractor) extractUnion(ctx context.Context, packageName string, spec *ast.TypeSpec, annotation *annotations.ParsedAnnotation, files []SourceFile) (loom.Option[models.UnionDefinition], error) {
	none := loom.None[models.UnionDefinition]()

	name := spec.Name.Name
	visibility, supported := visibilityOf(name).Get()
	if !supported {
		return none, nil
	}

	kind := models.ValueStyle
	if _, isInterface := spec.Type.(*ast.InterfaceType); isInterface {
		kind = models.ReferenceStyle
	}

	generics := extractGenericParameters(spec.TypeParams)
	groupName := packageName
	if override := annotation.StringPointer(annotations.ParamGroup); override != nil {
		groupName = *override
	}

	settings := models.UnionSettings{
		GenerateMatchHelper:              annotation.GetBool(annotations.ParamMatch, true),
		GeneratePolymorphicSerialization: annotation.GetBool(annotations.ParamSerialize, true),
		GeneratePrivateConstructor:       annotation.GetBool(annotations.ParamSealed, true),
	}

	members, err := e.collectUnionMembers(ctx, name, kind, spec, files)
	if err != nil {
		return none, err
	}

	position := e.fileSet.Position(spec.Name.Pos())
	union := models.UnionDefinition{
		Name:                    name,
		Kind:                    kind,
		Visibility:              visibility,
		GroupName:               groupName,
		QualifiedTypeExpression: qualifiedTypeExpression(name, genericParameterNames(generics)),
		GenericParameters:       generics,
		Settings:                settings,
		Members:                 members,
		Span: models.Span{
			File:   position.Filename,
			Line:   position.Line,
			Column: position.Column,
		},
	}
	return loom.Some(union), nil
}

// collectUnionMembers scans every package file for variant declarations of
// the union, preserving declaration order.
func (e *Extractor) collectUnionMembers(ctx context.Context, unionName string, kind models.UnionKind, unionSpec *ast.TypeSpec, files []SourceFile) ([]models.UnionMember, error) {
	var members []models.UnionMember

	for _, source := range files {
		for _, decl := range source.File.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok || genDecl.Tok != token.TYPE {
				continue
			}
			for _, rawSpec := range genDecl.Specs {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
				candidate, ok := rawSpec.(*ast.TypeSpec)
				if !ok || candidate == unionSpec {
					continue
				}
				if !isUnionVariant(candidate, unionName, kind) {
					continue
				}
				visibility, supported := visibilityOf(candidate.Name.Name).Get()
				if !supported {
					continue
				}
				members = append(members, models.UnionMember{
					Name:       candidate.Name.Name,
					Visibility: visibility,
				})
			}
		}
	}

	return members, nil
}

// isUnionVariant reports whether a type declaration's declared supertype is
// exactly the union: for reference-style unions a struct whose first field
// embeds the union, for value-style unions a defined type whose underlying
// type is the union.
func isUnionVariant(spec *ast.TypeSpec, unionName string, kind models.UnionKind) bool {
	switch kind {
	case models.ReferenceStyle:
		structType, ok := spec.Type.(*ast.StructType)
		if !ok || structType.Fields == nil || len(structType.Fields.List) == 0 {
			return false
		}
		first := structType.Fields.List[0]
		if len(first.Names) != 0 {
			return false
		}
		return baseTypeName(first.Type) == unionName
	case models.ValueStyle:
		if spec.Assign.IsValid() {
			// Aliases do not declare a new variant.
			return false
		}
		switch spec.Type.(type) {
		case *ast.Ident, *ast.IndexExpr, *ast.IndexListExpr:
			return baseTypeName(spec.Type) == unionName
		default:
			return false
		}
	default:
		return false
	}
}
