package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/loomhq/loom/internal/cli"
	"github.com/loomhq/loom/internal/utils"
)

func main() {
	var (
		moduleFlag  = flag.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		configFlag  = flag.String("config", cli.DefaultConfigFile, "Path to the loom.toml configuration file")
		verboseFlag = flag.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag   = flag.Bool("quiet", false, "Only show errors and final results")
		cleanFlag   = flag.Bool("clean", false, "Delete all generated companion files from the specified directories")
		watchFlag   = flag.Bool("watch", false, "Watch for source changes and regenerate continuously")
		fixFlag     = flag.Bool("fix", false, "Apply suggested fixes for reported findings")
		helpFlag    = flag.Bool("help", false, "Show help information")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] <directory-paths...>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Loom Code Generator\n")
		fmt.Fprintf(os.Stderr, "Recursively scans directories for Go files with loom:: annotations and generates union and async companions.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nArguments:\n")
		fmt.Fprintf(os.Stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(os.Stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s ./...                                  # Scan everything recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s ./internal/...                         # Scan internal directory recursively\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --module github.com/myorg/myapp ./...  # Specify custom module name\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --watch ./...                          # Regenerate on save\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --fix ./...                            # Apply suggested fixes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --clean ./...                          # Delete generated files\n", os.Args[0])
	}

	flag.Parse()

	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintf(os.Stderr, "Error: At least one directory path is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}

	diagnostics.LoomHeader("Code Generator")

	fileConfig, err := cli.LoadFileConfig(*configFlag)
	if err != nil {
		diagnostics.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	if *cleanFlag {
		cleaner := cli.NewCleaner(fileConfig.Output)
		removed, err := cleaner.CleanGeneratedFiles(args)
		if err != nil {
			diagnostics.Error("Clean operation failed: %v", err)
			os.Exit(1)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(args, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
		diagnostics.List("Output file: %s", fileConfig.Output)
	}

	config := cli.Config{
		Directories: args,
		ModuleName:  *moduleFlag,
		Verbose:     *verboseFlag,
		ApplyFixes:  *fixFlag,
		File:        fileConfig,
	}

	generator := cli.NewGenerator(config, diagnostics)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *watchFlag {
		watcher, err := cli.NewWatcher(generator, diagnostics)
		if err != nil {
			diagnostics.Error("Failed to start watch mode: %v", err)
			os.Exit(1)
		}
		diagnostics.Info("Watching for changes, press Ctrl+C to stop")
		if err := watcher.Watch(ctx); err != nil && err != context.Canceled {
			diagnostics.Error("Watch mode failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := generator.Run(ctx); err != nil {
		reporter := cli.NewDiagnosticReporter(*verboseFlag)
		reporter.ReportError(err)
		os.Exit(1)
	}

	summary := generator.GetSummary()
	stats := map[string]interface{}{
		"Packages processed": summary.PackagesProcessed,
		"Unions found":       summary.UnionsFound,
		"Containers found":   summary.ContainersFound,
		"Snapshots rendered": summary.SnapshotsRendered,
		"Snapshots reused":   summary.SnapshotsReused,
		"Files generated":    len(summary.GeneratedFiles),
	}
	if summary.FindingsReported > 0 {
		stats["Findings reported"] = summary.FindingsReported
	}
	if summary.FixesApplied > 0 {
		stats["Fixes applied"] = summary.FixesApplied
	}

	diagnostics.Summary("Generation Complete!", stats)

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}
}
