package models

import "testing"

func TestExpand(t *testing.T) {
	tests := []struct {
		pattern string
		name    string
		want    string
	}{
		{"{0}Sync", "UserService", "UserServiceSync"},
		{"{0}Async", "FetchUser", "FetchUserAsync"},
		{"{0}", "Shape", "Shape"},
		{"Client", "UserService", "Client"},
		{"{0}_{0}", "X", "X_X"},
	}

	for _, tt := range tests {
		if got := Expand(tt.pattern, tt.name); got != tt.want {
			t.Errorf("Expand(%q, %q) = %q, want %q", tt.pattern, tt.name, got, tt.want)
		}
	}
}

func TestAnnotationSettings_Equal(t *testing.T) {
	class := "Client"
	otherClass := "OtherClient"
	empty := ""

	a := AnnotationSettings{ExtensionClassName: &class}
	b := AnnotationSettings{ExtensionClassName: &class}
	if !a.Equal(b) {
		t.Error("settings with equal pointed-to values should be equal")
	}

	c := AnnotationSettings{ExtensionClassName: &otherClass}
	if a.Equal(c) {
		t.Error("different class names should not be equal")
	}

	// nil and empty string are distinct: unset falls through, empty does not
	d := AnnotationSettings{ExtensionClassName: &empty}
	if a.Equal(d) || d.Equal(AnnotationSettings{}) {
		t.Error("nil and empty string must be distinguished")
	}

	if !(AnnotationSettings{}).Equal(AnnotationSettings{}) {
		t.Error("zero settings should be equal")
	}
}

func TestDefaultSettingsTemplate(t *testing.T) {
	defaults := DefaultSettingsTemplate()

	if got := Expand(defaults.ExtensionClassName, "UserService"); got != "UserServiceSync" {
		t.Errorf("default class pattern produced %q", got)
	}
	if got := Expand(defaults.ExtensionMethodName, "FetchUser"); got != "FetchUserAsync" {
		t.Errorf("default method pattern produced %q", got)
	}
	if got := Expand(defaults.GroupName, "UserService"); got != "UserService" {
		t.Errorf("default group pattern produced %q", got)
	}
}

func TestDefaultUnionSettings(t *testing.T) {
	settings := DefaultUnionSettings()
	if !settings.GenerateMatchHelper || !settings.GeneratePolymorphicSerialization || !settings.GeneratePrivateConstructor {
		t.Error("all union capabilities should default on")
	}
}
