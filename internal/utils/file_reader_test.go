package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileReader_ReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	reader := NewFileReader()
	content, err := reader.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "hello" {
		t.Errorf("expected hello, got %q", content)
	}

	// Second read hits the cache and still matches.
	again, err := reader.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again != content {
		t.Errorf("cached read diverged: %q vs %q", again, content)
	}
}

func TestFileReader_SeesRewrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	if err := os.WriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	reader := NewFileReader()
	if _, err := reader.ReadFile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := os.WriteFile(path, []byte("second!"), 0644); err != nil {
		t.Fatalf("failed to rewrite file: %v", err)
	}
	content, err := reader.ReadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "second!" {
		t.Errorf("expected fresh content after rewrite, got %q", content)
	}
}

func TestFileReader_MissingFile(t *testing.T) {
	reader := NewFileReader()
	if _, err := reader.ReadFile(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("expected error for a missing file")
	}
}
