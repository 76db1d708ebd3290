package annotations

import "github.com/loomhq/loom/internal/models"

// Resolve merges member-level and container-level settings against the
// global default templates. Field-wise precedence: a member value wins if
// declared, else the container value, else the default pattern with {0}
// substituted by the declaration's own simple name.
//
// Resolve is pure and total: nil settings levels and empty templates fall
// through without error.
func Resolve(member, container *models.AnnotationSettings, defaults models.SettingsTemplate, name string) models.ResolvedSettings {
	return models.ResolvedSettings{
		ExtensionClassName:  resolveField(member, container, defaults.ExtensionClassName, name, classNameOf),
		ExtensionMethodName: resolveField(member, container, defaults.ExtensionMethodName, name, methodNameOf),
		GroupName:           resolveField(member, container, defaults.GroupName, name, groupNameOf),
	}
}

// ResolveMember resolves the naming for one matched member. The wrapper
// class and group patterns substitute the container's name; the method
// pattern substitutes the member's own name.
func ResolveMember(member, container *models.AnnotationSettings, defaults models.SettingsTemplate, containerName, memberName string) models.ResolvedSettings {
	return models.ResolvedSettings{
		ExtensionClassName:  resolveField(member, container, defaults.ExtensionClassName, containerName, classNameOf),
		ExtensionMethodName: resolveField(member, container, defaults.ExtensionMethodName, memberName, methodNameOf),
		GroupName:           resolveField(member, container, defaults.GroupName, containerName, groupNameOf),
	}
}

func resolveField(member, container *models.AnnotationSettings, pattern, name string, field func(*models.AnnotationSettings) *string) string {
	if value := field(member); value != nil {
		return *value
	}
	if value := field(container); value != nil {
		return *value
	}
	return models.Expand(pattern, name)
}

func classNameOf(s *models.AnnotationSettings) *string {
	if s == nil {
		return nil
	}
	return s.ExtensionClassName
}

func methodNameOf(s *models.AnnotationSettings) *string {
	if s == nil {
		return nil
	}
	return s.ExtensionMethodName
}

func groupNameOf(s *models.AnnotationSettings) *string {
	if s == nil {
		return nil
	}
	return s.GroupName
}
