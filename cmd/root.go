// Package cmd provides the CLI commands for dirty.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/iamkaf/dirty/internal/domain"
)

// Logger defines the logging interface used by the command.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// Dependencies holds all injectable dependencies for the command.
// This enables testing by allowing mock implementations to be injected.
type Dependencies struct {
	// LoggerFactory creates a logger instance.
	LoggerFactory func() Logger

	// ConfigLoader loads application configuration.
	ConfigLoader func() (*AppConfig, error)

	// DiscovererFactory creates a RepositoryDiscoverer.
	DiscovererFactory func(log Logger) domain.RepositoryDiscoverer

	// InspectorFactory creates the version-control backend.
	InspectorFactory func(log Logger) domain.RepositoryInspector

	// ScannerFactory creates a Scanner with the given dependencies.
	ScannerFactory func(
		discoverer domain.RepositoryDiscoverer,
		inspector domain.RepositoryInspector,
		workers int,
		log Logger,
	) domain.Scanner

	// OutputWriterFactory creates an OutputWriter.
	OutputWriterFactory func(noColor bool) domain.OutputWriter

	// Stdout is the writer for standard output (for the report).
	Stdout io.Writer

	// Stderr is the writer for standard error (for warnings/errors).
	Stderr io.Writer
}

// AppConfig holds application configuration loaded by ConfigLoader.
type AppConfig struct {
	// MaxDepth is the default traversal depth bound, used when the --depth
	// flag is not given.
	MaxDepth int

	// Workers bounds the inspection worker pool; 0 means available
	// parallelism.
	Workers int

	// LogLevel is the log level setting.
	LogLevel string

	// LogAppName is the application name for logging.
	LogAppName string

	// NoColor disables colorized output.
	NoColor bool
}

// Command-line flags.
var (
	maxDepth     int
	dirtyOnly    bool
	localOnly    bool
	unpushedOnly bool
	rawOutput    bool
	verbose      bool
)

// defaultDeps holds the production dependencies.
// This is set by the production wiring in main or via SetDefaultDependencies.
var defaultDeps *Dependencies

// SetDefaultDependencies sets the default dependencies for production use.
// This should be called from main() before Execute().
func SetDefaultDependencies(deps *Dependencies) {
	defaultDeps = deps
}

// NewRootCmd creates the root command for dirty.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWithDeps(defaultDeps)
}

// NewRootCmdWithDeps creates the root command with explicit dependencies.
// This is the primary constructor that enables testing via dependency injection.
func NewRootCmdWithDeps(deps *Dependencies) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dirty [path]",
		Short: "List git repos, their dirty status, and whether they're local-only",
		Long: `dirty recursively finds git repositories beneath a directory and reports
which of them have uncommitted changes, which have no remotes configured,
and (optionally) which are ahead of their upstream.

Repositories are inspected in parallel; nested repositories inside another
repository's working tree are not reported.

Examples:
  # Scan the current directory
  dirty .

  # Scan ~/src three levels deep, dirty repos only
  dirty -d ~/src

  # Repos with commits not pushed to their upstream
  dirty --unpushed ~/src

  # Bare paths for piping
  dirty -d -r ~/src | xargs -I{} echo {}`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, deps)
		},
	}

	// Define flags
	rootCmd.Flags().IntVarP(&maxDepth, "depth", "L", domain.DefaultMaxDepth,
		"Max depth to search for repos")
	rootCmd.Flags().BoolVarP(&dirtyOnly, "dirty", "d", false,
		"Only show dirty repos")
	rootCmd.Flags().BoolVarP(&localOnly, "local", "l", false,
		"Only show local-only repos (no remotes)")
	rootCmd.Flags().BoolVar(&unpushedOnly, "unpushed", false,
		"Only show repos with unpushed commits (slower: resolves upstream tracking branches)")
	rootCmd.Flags().BoolVarP(&rawOutput, "raw", "r", false,
		"Raw output for piping (one path per line)")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose/debug logging")

	return rootCmd
}

// runScan executes the scan pipeline with injected dependencies.
func runScan(cmd *cobra.Command, args []string, deps *Dependencies) error {
	if deps == nil {
		return errors.New("dependencies not configured")
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Determine scan root
	scanRoot := "."
	if len(args) > 0 {
		scanRoot = args[0]
	}

	// Get stderr for warnings
	stderr := deps.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	// Set log level based on verbose flag (best-effort)
	if verbose {
		if err := os.Setenv("DIRTY_LOG_LEVEL", "debug"); err != nil {
			writeWarningf(stderr, "warning: could not set log level: %v\n", err)
		}
	}

	// Initialize logger
	log := deps.LoggerFactory()

	// Load configuration
	cfg, err := deps.ConfigLoader()
	if err != nil {
		log.Error(ctx, "failed to load configuration", err, nil)
		return fmt.Errorf("configuration error: %w", err)
	}

	// Flag beats environment; environment beats the built-in default.
	depth := maxDepth
	if !cmd.Flags().Changed("depth") {
		depth = cfg.MaxDepth
	}
	if depth < 0 {
		return fmt.Errorf("invalid depth: %d", depth)
	}

	log.Info(ctx, "starting scan", map[string]interface{}{
		"path":     scanRoot,
		"depth":    depth,
		"dirty":    dirtyOnly,
		"local":    localOnly,
		"unpushed": unpushedOnly,
		"raw":      rawOutput,
	})

	discoverer := deps.DiscovererFactory(log)
	inspector := deps.InspectorFactory(log)
	scanner := deps.ScannerFactory(discoverer, inspector, cfg.Workers, log)

	result, err := scanner.Scan(ctx, domain.ScanInput{
		Root:     scanRoot,
		MaxDepth: depth,
		// The unpushed filter needs the ahead count for every repository.
		ComputeAhead: unpushedOnly,
		Filter: domain.FilterOptions{
			DirtyOnly:    dirtyOnly,
			LocalOnly:    localOnly,
			UnpushedOnly: unpushedOnly,
		},
	})
	if err != nil {
		log.Debug(ctx, "scan did not produce results", map[string]interface{}{
			"error": err.Error(),
		})
		if errors.Is(err, domain.ErrPathUnavailable) {
			return fmt.Errorf("cannot access '%s'", scanRoot)
		}
		// ErrNoRepositoriesFound and ErrNoMatchingRepositories carry their
		// own user-facing messages and the non-zero exit the shell needs.
		return err
	}

	writer := deps.OutputWriterFactory(cfg.NoColor)
	if err := writer.WriteReport(result, domain.ReportOptions{
		Raw:       rawOutput,
		ShowAhead: unpushedOnly,
	}); err != nil {
		log.Error(ctx, "failed to write report", err, nil)
		return fmt.Errorf("output error: %w", err)
	}

	log.Info(ctx, "scan complete", map[string]interface{}{
		"root":       result.Root,
		"discovered": result.TotalDiscovered,
		"reported":   len(result.Repositories),
	})

	return nil
}

// Execute runs the root command.
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// writeWarningf writes a warning message to the given writer.
// This is a best-effort operation; errors are intentionally ignored
// because there is no recovery action if stderr writes fail.
func writeWarningf(w io.Writer, format string, args ...any) {
	_, err := fmt.Fprintf(w, format, args...)
	if err != nil {
		// Intentionally ignored: no recovery action for failed stderr writes
		return
	}
}
