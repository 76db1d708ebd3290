package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func writeGoMod(t *testing.T, dir, module string) string {
	t.Helper()
	path := filepath.Join(dir, "go.mod")
	content := "module " + module + "\n\ngo 1.25\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}
	return path
}

func TestParseModuleName(t *testing.T) {
	dir := t.TempDir()
	path := writeGoMod(t, dir, "github.com/example/project")

	parser := NewGoModParser(NewFileReader())
	name, err := parser.ParseModuleName(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "github.com/example/project" {
		t.Errorf("expected github.com/example/project, got %s", name)
	}
}

func TestParseModuleName_WrongFile(t *testing.T) {
	parser := NewGoModParser(NewFileReader())
	if _, err := parser.ParseModuleName("main.go"); err == nil {
		t.Error("expected error for a non go.mod path")
	}
}

func TestParseModuleName_NoModuleDeclaration(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "go.mod")
	if err := os.WriteFile(path, []byte("go 1.25\n"), 0644); err != nil {
		t.Fatalf("failed to write go.mod: %v", err)
	}

	parser := NewGoModParser(NewFileReader())
	if _, err := parser.ParseModuleName(path); err == nil {
		t.Error("expected error for go.mod without module declaration")
	}
}

func TestFindGoModFile_WalksUp(t *testing.T) {
	root := t.TempDir()
	expected := writeGoMod(t, root, "github.com/example/project")

	nested := filepath.Join(root, "internal", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("failed to create nested dir: %v", err)
	}

	parser := NewGoModParser(NewFileReader())
	found, err := parser.FindGoModFile(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != expected {
		t.Errorf("expected %s, got %s", expected, found)
	}
}

func TestFindGoModFile_NotFound(t *testing.T) {
	parser := NewGoModParser(NewFileReader())
	if _, err := parser.FindGoModFile(t.TempDir()); err == nil {
		t.Error("expected error when no go.mod exists above the directory")
	}
}
