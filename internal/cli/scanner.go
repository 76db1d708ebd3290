package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/loomhq/loom/internal/utils"
)

// DirectoryScanner handles recursive directory scanning for Go files
type DirectoryScanner struct {
	fileProcessor *utils.FileProcessor
}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessor(),
	}
}

// NewDirectoryScannerWithExcludes creates a scanner that skips the named
// directories in addition to the built-in skips.
func NewDirectoryScannerWithExcludes(excludes []string) *DirectoryScanner {
	return &DirectoryScanner{
		fileProcessor: utils.NewFileProcessorWithExcludes(excludes),
	}
}

// ScanDirectories recursively scans the provided directories for Go packages.
// Returns a list of directories that contain Go files.
// Supports Go-style patterns like "./..." for recursive scanning.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]string, error) {
	var cleanDirs []string

	for _, rootDir := range rootDirs {
		// Handle Go-style recursive patterns like "./..."
		if strings.HasSuffix(rootDir, "/...") {
			baseDir := strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
			rootDir = baseDir
		}

		cleanPath, err := filepath.Abs(rootDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", rootDir, err)
		}

		cleanDirs = append(cleanDirs, cleanPath)
	}

	return s.fileProcessor.ScanDirectoriesWithGoFiles(cleanDirs)
}
