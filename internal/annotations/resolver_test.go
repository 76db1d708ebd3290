package annotations

import (
	"testing"

	"github.com/loomhq/loom/internal/models"
)

func strPtr(s string) *string { return &s }

func TestResolve_DefaultsOnly(t *testing.T) {
	resolved := Resolve(nil, nil, models.DefaultSettingsTemplate(), "UserService")

	if resolved.ExtensionClassName != "UserServiceSync" {
		t.Errorf("expected UserServiceSync, got %s", resolved.ExtensionClassName)
	}
	if resolved.ExtensionMethodName != "UserServiceAsync" {
		t.Errorf("expected UserServiceAsync, got %s", resolved.ExtensionMethodName)
	}
	if resolved.GroupName != "UserService" {
		t.Errorf("expected UserService, got %s", resolved.GroupName)
	}
}

func TestResolve_ContainerOverridesDefault(t *testing.T) {
	container := &models.AnnotationSettings{ExtensionClassName: strPtr("Client")}

	resolved := Resolve(nil, container, models.DefaultSettingsTemplate(), "UserService")

	if resolved.ExtensionClassName != "Client" {
		t.Errorf("container override should win over default, got %s", resolved.ExtensionClassName)
	}
	// Undeclared fields still fall through to the defaults
	if resolved.ExtensionMethodName != "UserServiceAsync" {
		t.Errorf("expected default method name, got %s", resolved.ExtensionMethodName)
	}
}

func TestResolve_MemberOverridesContainer(t *testing.T) {
	member := &models.AnnotationSettings{ExtensionClassName: strPtr("MemberClient")}
	container := &models.AnnotationSettings{
		ExtensionClassName: strPtr("ContainerClient"),
		GroupName:          strPtr("containers"),
	}

	resolved := Resolve(member, container, models.DefaultSettingsTemplate(), "UserService")

	if resolved.ExtensionClassName != "MemberClient" {
		t.Errorf("member override should win, got %s", resolved.ExtensionClassName)
	}
	if resolved.GroupName != "containers" {
		t.Errorf("container value should win for fields the member leaves unset, got %s", resolved.GroupName)
	}
}

func TestResolve_EmptyStringIsDeclared(t *testing.T) {
	container := &models.AnnotationSettings{ExtensionClassName: strPtr("")}

	resolved := Resolve(nil, container, models.DefaultSettingsTemplate(), "UserService")

	if resolved.ExtensionClassName != "" {
		t.Errorf("declared empty string must not fall through, got %q", resolved.ExtensionClassName)
	}
}

func TestResolveMember_NameSubstitution(t *testing.T) {
	resolved := ResolveMember(nil, nil, models.DefaultSettingsTemplate(), "UserService", "FetchUser")

	// Class and group expand the container name, method expands the member name
	if resolved.ExtensionClassName != "UserServiceSync" {
		t.Errorf("expected UserServiceSync, got %s", resolved.ExtensionClassName)
	}
	if resolved.ExtensionMethodName != "FetchUserAsync" {
		t.Errorf("expected FetchUserAsync, got %s", resolved.ExtensionMethodName)
	}
	if resolved.GroupName != "UserService" {
		t.Errorf("expected UserService, got %s", resolved.GroupName)
	}
}

func TestResolve_Deterministic(t *testing.T) {
	member := &models.AnnotationSettings{ExtensionMethodName: strPtr("Fetch")}
	container := &models.AnnotationSettings{GroupName: strPtr("g")}

	first := Resolve(member, container, models.DefaultSettingsTemplate(), "S")
	second := Resolve(member, container, models.DefaultSettingsTemplate(), "S")

	if !first.Equal(second) {
		t.Error("resolution must be deterministic for equal inputs")
	}
}
