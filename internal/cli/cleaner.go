package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	outputFile string
}

// NewCleaner creates a cleaner for the given companion file name.
func NewCleaner(outputFile string) *Cleaner {
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}
	return &Cleaner{outputFile: outputFile}
}

// CleanGeneratedFiles removes all generated companion files from the
// specified directories and returns the removed paths.
func (c *Cleaner) CleanGeneratedFiles(directories []string) ([]string, error) {
	var removedFiles []string

	for _, dir := range directories {
		if err := c.cleanDirectory(dir, &removedFiles); err != nil {
			return removedFiles, fmt.Errorf("failed to clean directory %s: %w", dir, err)
		}
	}

	return removedFiles, nil
}

// cleanDirectory recursively cleans a single directory
func (c *Cleaner) cleanDirectory(dir string, removedFiles *[]string) error {
	// Handle Go-style patterns like ./...
	if strings.HasSuffix(dir, "/...") {
		baseDir := strings.TrimSuffix(dir, "/...")
		if baseDir == "" {
			baseDir = "."
		}
		return c.cleanRecursively(baseDir, removedFiles)
	}

	return c.cleanSingleDirectory(dir, removedFiles)
}

// cleanRecursively cleans directories recursively
func (c *Cleaner) cleanRecursively(baseDir string, removedFiles *[]string) error {
	return filepath.Walk(baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Skip directories that don't exist or can't be accessed
			return nil
		}

		if info.IsDir() {
			// Errors in one directory shouldn't stop the rest of the walk
			_ = c.cleanSingleDirectory(path, removedFiles)
		}

		return nil
	})
}

// cleanSingleDirectory cleans a single directory
func (c *Cleaner) cleanSingleDirectory(dir string, removedFiles *[]string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	generatedFile := filepath.Join(dir, c.outputFile)

	if _, err := os.Stat(generatedFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to check file %s: %w", generatedFile, err)
	}

	if err := os.Remove(generatedFile); err != nil {
		return fmt.Errorf("failed to remove file %s: %w", generatedFile, err)
	}

	*removedFiles = append(*removedFiles, generatedFile)
	return nil
}
