package annotations

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// AnnotationPrefix is the marker every loom annotation starts with
const AnnotationPrefix = "loom::"

// Parser parses //loom:: annotation comments against the schema registry
type Parser struct {
	grammar  *participle.Parser[annotationLine]
	registry AnnotationRegistry
}

// annotationLine is the participle grammar root for one annotation comment
type annotationLine struct {
	Marker string      `parser:"@Marker"`
	Type   string      `parser:"@Ident"`
	Items  []paramItem `parser:"@@*"`
}

// paramItem is a single -Name or -Name=Value entry
type paramItem struct {
	Name  string      `parser:"Dash @Ident"`
	Value *paramValue `parser:"( Equals @@ )?"`
}

// paramValue is the raw right-hand side of a parameter
type paramValue struct {
	Raw string `parser:"@String | @Ident | @Number"`
}

// NewParser creates an annotation parser validating against the registry
func NewParser(registry AnnotationRegistry) *Parser {
	lex := lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Marker", Pattern: `loom::`},
		{Name: "String", Pattern: `"(\\"|[^"])*"`},
		{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_./]*`},
		{Name: "Number", Pattern: `[0-9]+(\.[0-9]+)?`},
		{Name: "Dash", Pattern: `-`},
		{Name: "Equals", Pattern: `=`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	grammar := participle.MustBuild[annotationLine](
		participle.Lexer(lex),
		participle.Elide("Whitespace"),
	)

	return &Parser{
		grammar:  grammar,
		registry: registry,
	}
}

// IsAnnotation reports whether a comment line carries a loom annotation
func IsAnnotation(comment string) bool {
	text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(comment), "//"))
	return strings.HasPrefix(text, AnnotationPrefix)
}

// ParseAnnotation parses a single comment line into a ParsedAnnotation
func (p *Parser) ParseAnnotation(comment, target string, location SourceLocation) (*ParsedAnnotation, error) {
	text := strings.TrimSpace(comment)
	if !strings.HasPrefix(text, "//") {
		return nil, fmt.Errorf("annotation must start with '//'")
	}
	text = strings.TrimSpace(strings.TrimPrefix(text, "//"))

	if !strings.HasPrefix(text, AnnotationPrefix) {
		return nil, fmt.Errorf("annotation must contain '%s' prefix", AnnotationPrefix)
	}

	line, err := p.grammar.ParseString(location.File, text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse annotation: %w", err)
	}

	annotationType, err := ParseAnnotationType(line.Type)
	if err != nil {
		return nil, err
	}
	if p.registry != nil && !p.registry.IsRegistered(annotationType) {
		return nil, fmt.Errorf("annotation type '%s' is not registered", line.Type)
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Target:     target,
		Parameters: make(map[string]interface{}),
		Flags:      []string{},
		Location:   location,
		Raw:        comment,
	}

	for _, item := range line.Items {
		if item.Value != nil {
			parsed.Parameters[item.Name] = p.convertValue(annotationType, item.Name, item.Value.Raw)
			continue
		}
		// Bare flag: true for boolean parameters, schema default otherwise
		if spec, ok := p.lookupSpec(annotationType, item.Name); ok {
			if spec.Type == BoolType {
				parsed.Parameters[item.Name] = true
				continue
			}
			if spec.DefaultValue != nil {
				parsed.Parameters[item.Name] = spec.DefaultValue
				continue
			}
		}
		parsed.Flags = append(parsed.Flags, item.Name)
	}

	if p.registry != nil {
		if err := p.validateAgainstSchema(parsed); err != nil {
			return nil, err
		}
	}

	return parsed, nil
}

// lookupSpec returns the parameter spec for a name, if the schema has one
func (p *Parser) lookupSpec(annotationType AnnotationType, name string) (ParameterSpec, bool) {
	if p.registry == nil {
		return ParameterSpec{}, false
	}
	schema, err := p.registry.GetSchema(annotationType)
	if err != nil {
		return ParameterSpec{}, false
	}
	spec, exists := schema.Parameters[name]
	return spec, exists
}

// convertValue coerces a raw value string to the schema's parameter type
func (p *Parser) convertValue(annotationType AnnotationType, name, raw string) interface{} {
	raw = unquote(raw)

	spec, exists := p.lookupSpec(annotationType, name)
	if !exists {
		return raw
	}

	switch spec.Type {
	case BoolType:
		if boolValue, err := strconv.ParseBool(raw); err == nil {
			return boolValue
		}
		return raw
	default:
		return raw
	}
}

// validateAgainstSchema rejects unknown parameters and missing required ones
func (p *Parser) validateAgainstSchema(annotation *ParsedAnnotation) error {
	schema, err := p.registry.GetSchema(annotation.Type)
	if err != nil {
		return fmt.Errorf("no schema found for annotation type: %s", annotation.Type)
	}

	for paramName := range annotation.Parameters {
		if _, exists := schema.Parameters[paramName]; !exists {
			return fmt.Errorf("unknown parameter '%s' for annotation type %s", paramName, annotation.Type)
		}
	}
	for _, flag := range annotation.Flags {
		if _, exists := schema.Parameters[flag]; !exists {
			return fmt.Errorf("unknown flag '%s' for annotation type %s", flag, annotation.Type)
		}
	}

	for paramName, spec := range schema.Parameters {
		if spec.Required {
			if _, exists := annotation.Parameters[paramName]; !exists {
				return fmt.Errorf("missing required parameter '%s' for annotation type %s", paramName, annotation.Type)
			}
		}
	}

	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
