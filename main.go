// Package main is the entry point for the dirty CLI application.
// dirty recursively discovers git repositories beneath a directory,
// classifies each by working-tree cleanliness, remote presence, and optional
// unpushed-commit count, then prints a filtered report.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/iamkaf/dirty/cmd"
	"github.com/iamkaf/dirty/internal/adapters/discovery"
	"github.com/iamkaf/dirty/internal/adapters/git"
	logadapter "github.com/iamkaf/dirty/internal/adapters/logger"
	"github.com/iamkaf/dirty/internal/adapters/output"
	"github.com/iamkaf/dirty/internal/domain"
	"github.com/iamkaf/dirty/internal/infrastructure/config"
	"github.com/iamkaf/dirty/internal/usecases"
)

func main() {
	cmd.SetDefaultDependencies(buildDependencies())
	cmd.Execute()
}

// buildDependencies wires up the production dependency graph.
func buildDependencies() *cmd.Dependencies {
	return &cmd.Dependencies{
		// Constructed at call time so the verbose flag can raise the level
		// before the logger exists.
		LoggerFactory: func() cmd.Logger {
			return logadapter.NewZapAdapter(logadapter.NewZapLoggerFromEnv())
		},

		ConfigLoader: func() (*cmd.AppConfig, error) {
			cfg, err := config.Load()
			if err != nil {
				return nil, err
			}
			return &cmd.AppConfig{
				MaxDepth:   cfg.MaxDepth,
				Workers:    cfg.Workers,
				LogLevel:   cfg.LogLevel,
				LogAppName: cfg.LogAppName,
				NoColor:    cfg.NoColor,
			}, nil
		},

		DiscovererFactory: func(log cmd.Logger) domain.RepositoryDiscoverer {
			return discovery.NewFilesystemDiscoverer(log)
		},

		InspectorFactory: func(log cmd.Logger) domain.RepositoryInspector {
			return git.NewGoGitInspector(log)
		},

		ScannerFactory: func(
			discoverer domain.RepositoryDiscoverer,
			inspector domain.RepositoryInspector,
			workers int,
			log cmd.Logger,
		) domain.Scanner {
			return usecases.NewRepoScanner(discoverer, inspector, workers, log)
		},

		OutputWriterFactory: func(noColor bool) domain.OutputWriter {
			if noColor {
				color.NoColor = true
			}
			return output.NewWriter()
		},

		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}
