package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/tools/imports"

	"github.com/loomhq/loom/internal/diagnostics"
	"github.com/loomhq/loom/internal/models"
	"github.com/loomhq/loom/internal/parser"
	"github.com/loomhq/loom/internal/pipeline"
	"github.com/loomhq/loom/internal/templates"
	"github.com/loomhq/loom/internal/utils"
)

// taskPackageImport is added to every generated file's import candidates;
// the formatter prunes it when the file does not reference the runtime.
const taskPackageImport = `"github.com/loomhq/loom/pkg/loom"`

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	pipeline       *pipeline.Pipeline
	reporter       *DiagnosticReporter
	diagnostics    *utils.DiagnosticSystem
	config         Config
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator
func NewGenerator(config Config, diagnosticSystem *utils.DiagnosticSystem) *Generator {
	extractor := parser.NewExtractorWithDefaults(config.File.SettingsTemplate())
	renderer := templates.NewRenderer()

	return &Generator{
		scanner:        NewDirectoryScannerWithExcludes(config.File.Exclude),
		moduleResolver: NewModuleResolver(),
		pipeline:       pipeline.New(extractor, renderer),
		reporter:       NewDiagnosticReporter(config.Verbose),
		diagnostics:    diagnosticSystem,
		config:         config,
		summary:        GenerationSummary{GeneratedFiles: make([]string, 0)},
	}
}

// GetSummary returns the generation summary
func (g *Generator) GetSummary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process
func (g *Generator) Run(ctx context.Context) error {
	startTime := time.Now()
	g.summary = GenerationSummary{GeneratedFiles: make([]string, 0)}

	g.diagnostics.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	g.diagnostics.Debug("Scanning directories: %v", g.config.Directories)

	g.diagnostics.StartProgress("Resolving module name")
	moduleName, err := g.moduleResolver.ResolveModuleName(g.config.ModuleName)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: fmt.Sprintf("Failed to resolve module name: %v", err),
			Suggestions: []string{
				"Check your go.mod file exists and is valid",
				"Ensure you're running from the correct directory",
				"Try specifying --module flag explicitly",
			},
			Context: map[string]interface{}{
				"provided_module": g.config.ModuleName,
				"directories":     g.config.Directories,
			},
			Cause: err,
		}
	}
	g.diagnostics.EndProgress(true, moduleName)

	g.diagnostics.StartProgress("Scanning directories for Go packages")
	packageDirs, err := g.scanner.ScanDirectories(g.config.Directories)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to scan directories: %v", err),
			Suggestions: []string{
				"Check that the specified directories exist",
				"Ensure you have read permissions for the directories",
			},
			Context: map[string]interface{}{
				"directories": g.config.Directories,
			},
			Cause: err,
		}
	}

	if len(packageDirs) == 0 {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "No Go packages found in specified directories",
			Suggestions: []string{
				"Ensure the directories contain Go files",
				"Try scanning parent directories or use './...' pattern",
			},
			Context: map[string]interface{}{
				"directories": g.config.Directories,
			},
		}
	}
	g.diagnostics.EndProgress(true, fmt.Sprintf("%d packages", len(packageDirs)))

	if g.config.Verbose {
		for _, dir := range packageDirs {
			if importPath, err := g.moduleResolver.BuildPackagePath(moduleName, dir); err == nil {
				g.diagnostics.List("%s (%s)", dir, importPath)
			} else {
				g.diagnostics.List("%s", dir)
			}
		}
	}
	g.summary.PackagesProcessed = len(packageDirs)

	g.diagnostics.StartProgress("Extracting and rendering")
	result, err := g.pipeline.RunCycle(ctx, packageDirs)
	if err != nil {
		g.diagnostics.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			Message: fmt.Sprintf("Generation cycle failed: %v", err),
			Suggestions: []string{
				"Check for syntax errors in Go files",
				"Verify annotation syntax is correct",
			},
			Cause: err,
		}
	}
	g.summary.SnapshotsRendered = result.Rendered
	g.summary.SnapshotsReused = result.Reused
	g.diagnostics.EndProgress(true, fmt.Sprintf("%d rendered, %d reused", result.Rendered, result.Reused))

	var snapshots []*models.PackageSnapshot
	for i, pkg := range result.Packages {
		snapshots = append(snapshots, pkg.Snapshot)
		g.summary.UnionsFound += len(pkg.Snapshot.Unions)
		g.summary.ContainersFound += len(pkg.Snapshot.Containers)

		if err := g.writePackageOutput(packageDirs[i], pkg); err != nil {
			return err
		}
	}

	findings := diagnostics.Analyze(snapshots)
	g.summary.FindingsReported = len(findings)
	for _, finding := range findings {
		g.reporter.ReportFinding(finding)
	}

	if g.config.ApplyFixes && len(findings) > 0 {
		applied, err := g.applyFixes(findings)
		if err != nil {
			return err
		}
		g.summary.FixesApplied = applied
	}

	if g.config.Verbose {
		g.diagnostics.Verbose("Generation completed in %v", time.Since(startTime))
	}
	return nil
}

// writePackageOutput assembles and writes the package's generated companion
// file. A package with nothing to generate gets no file; a stale companion
// from a previous run is removed.
func (g *Generator) writePackageOutput(packageDir string, pkg pipeline.PackageResult) error {
	outputPath := filepath.Join(packageDir, g.config.File.Output)

	content, ok := g.assembleFile(pkg)
	if !ok {
		if _, err := os.Stat(outputPath); err == nil {
			if err := os.Remove(outputPath); err != nil {
				return &models.GeneratorError{
					Type:    models.ErrorTypeFileSystem,
					Message: fmt.Sprintf("Failed to remove stale file %s: %v", outputPath, err),
					Cause:   err,
				}
			}
			g.diagnostics.Verbose("Removed stale file %s", outputPath)
		}
		return nil
	}

	formatted, err := imports.Process(outputPath, []byte(content), nil)
	if err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    outputPath,
			Message: fmt.Sprintf("Failed to format generated file: %v", err),
			Suggestions: []string{
				"Check that annotated declarations compile on their own",
			},
			Cause: err,
		}
	}

	if err := os.WriteFile(outputPath, formatted, 0644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: fmt.Sprintf("Failed to write %s: %v", outputPath, err),
			Suggestions: []string{
				"Check write permissions for the target directory",
				"Verify there's enough disk space",
			},
			Cause: err,
		}
	}

	g.diagnostics.PhaseItem(fmt.Sprintf("Generated %s", outputPath))
	g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, outputPath)
	return nil
}

// assembleFile builds the full generated source for one package: header,
// package clause, candidate imports, then every non-empty artifact in the
// snapshot's stable order. The formatter prunes unused imports afterwards.
func (g *Generator) assembleFile(pkg pipeline.PackageResult) (string, bool) {
	var blocks []string
	for _, artifact := range pkg.Artifacts {
		if strings.TrimSpace(artifact.Content) == "" {
			continue
		}
		blocks = append(blocks, artifact.Content)
	}
	if len(blocks) == 0 {
		return "", false
	}

	importSet := []string{taskPackageImport, `"context"`}
	seen := map[string]bool{taskPackageImport: true, `"context"`: true}
	for _, container := range pkg.Snapshot.Containers {
		for _, statement := range container.Container.ImportStatements {
			if seen[statement] {
				continue
			}
			seen[statement] = true
			importSet = append(importSet, statement)
		}
	}

	var b strings.Builder
	b.WriteString("// Code generated by loom. DO NOT EDIT.\n\n")
	b.WriteString("package " + pkg.Snapshot.PackageName + "\n\n")
	b.WriteString("import (\n")
	for _, statement := range importSet {
		b.WriteString("\t" + statement + "\n")
	}
	b.WriteString(")\n\n")
	b.WriteString(strings.Join(blocks, "\n\n"))
	b.WriteString("\n")
	return b.String(), true
}

// applyFixes rewrites source files with the suggested fix for each finding
// that carries one. Fixes for the same file are applied sequentially so a
// later fix sees the earlier edits.
func (g *Generator) applyFixes(findings []diagnostics.Diagnostic) (int, error) {
	sources := make(map[string][]byte)
	applied := 0

	for _, finding := range findings {
		if finding.Span.File == "" {
			continue
		}
		path := finding.Span.File

		source, loaded := sources[path]
		if !loaded {
			content, err := os.ReadFile(path)
			if err != nil {
				return applied, &models.GeneratorError{
					Type:    models.ErrorTypeFileSystem,
					File:    path,
					Message: fmt.Sprintf("Failed to read file for fix: %v", err),
					Cause:   err,
				}
			}
			source = content
			sources[path] = source
		}

		fix, err := diagnostics.ProposeFix(finding, diagnostics.Document{Path: path, Source: source})
		if err != nil {
			return applied, &models.GeneratorError{
				Type:    models.ErrorTypeGeneration,
				File:    path,
				Message: fmt.Sprintf("Failed to build fix: %v", err),
				Cause:   err,
			}
		}
		proposal, ok := fix.Get()
		if !ok {
			continue
		}

		if err := os.WriteFile(proposal.Path, proposal.Source, 0644); err != nil {
			return applied, &models.GeneratorError{
				Type:    models.ErrorTypeFileSystem,
				File:    proposal.Path,
				Message: fmt.Sprintf("Failed to write fix: %v", err),
				Cause:   err,
			}
		}
		sources[path] = proposal.Source
		applied++
		g.diagnostics.PhaseItem(fmt.Sprintf("Applied fix: %s", proposal.Title))
	}

	return applied, nil
}
