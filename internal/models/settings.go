package models

import "strings"

// AnnotationSettings holds the optional naming overrides declared on a
// container or member annotation. A nil field means "not declared here";
// resolution falls through to the next level.
type AnnotationSettings struct {
	ExtensionClassName  *string // -Class override
	ExtensionMethodName *string // -Method override
	GroupName           *string // -Group override
}

// Equal reports field-wise equality, treating nil and empty as distinct.
func (s AnnotationSettings) Equal(other AnnotationSettings) bool {
	return optStringEqual(s.ExtensionClassName, other.ExtensionClassName) &&
		optStringEqual(s.ExtensionMethodName, other.ExtensionMethodName) &&
		optStringEqual(s.GroupName, other.GroupName)
}

func optStringEqual(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// SettingsTemplate holds the global default naming patterns. Each field is a
// format string whose {0} placeholder is substituted with the declaration's
// own simple name.
type SettingsTemplate struct {
	ExtensionClassName  string
	ExtensionMethodName string
	GroupName           string
}

// DefaultSettingsTemplate returns the built-in naming patterns.
func DefaultSettingsTemplate() SettingsTemplate {
	return SettingsTemplate{
		ExtensionClassName:  "{0}Sync",
		ExtensionMethodName: "{0}Async",
		GroupName:           "{0}",
	}
}

// Expand substitutes the declaration name into a {0}-parameterized pattern.
func Expand(pattern, name string) string {
	return strings.ReplaceAll(pattern, "{0}", name)
}

// ResolvedSettings holds the final naming choices after member, container,
// and default resolution. All fields are concrete.
type ResolvedSettings struct {
	ExtensionClassName  string
	ExtensionMethodName string
	GroupName           string
}

// Equal reports field-wise equality.
func (s ResolvedSettings) Equal(other ResolvedSettings) bool {
	return s == other
}

// UnionSettings holds the per-union generation toggles. All default to true.
type UnionSettings struct {
	GenerateMatchHelper              bool
	GeneratePolymorphicSerialization bool
	GeneratePrivateConstructor       bool
}

// DefaultUnionSettings returns the union toggles with every capability on.
func DefaultUnionSettings() UnionSettings {
	return UnionSettings{
		GenerateMatchHelper:              true,
		GeneratePolymorphicSerialization: true,
		GeneratePrivateConstructor:       true,
	}
}
