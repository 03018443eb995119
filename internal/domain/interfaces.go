// Package domain defines the core business entities and interfaces for dirty.
// This package contains no external dependencies and represents the innermost
// layer of the CLEAN architecture.
package domain

import (
	"context"
	"errors"
)

// Domain errors for discovery and scanning.
var (
	// ErrPathUnavailable indicates the scan root could not be resolved or
	// accessed. This is the only fatal filesystem error: unreadable
	// directories below the root are skipped instead.
	ErrPathUnavailable = errors.New("cannot access scan root")

	// ErrRepositoryNotFound indicates a path is not a valid git repository.
	ErrRepositoryNotFound = errors.New("git repository not found at specified path")

	// ErrNoRepositoriesFound indicates discovery produced zero repository
	// roots. Reported distinctly from ErrNoMatchingRepositories so the user
	// can tell "nothing here" from "filters too strict".
	ErrNoRepositoriesFound = errors.New("no git repositories found")

	// ErrNoMatchingRepositories indicates discovery found repositories but
	// the active filters excluded all of them.
	ErrNoMatchingRepositories = errors.New("no repositories match the active filters")
)

// RepositoryDiscoverer locates repository roots beneath a directory.
type RepositoryDiscoverer interface {
	// Discover walks the tree below root up to maxDepth directory levels and
	// returns every directory containing repository metadata, in
	// lexicographic order. Once a directory is recognized as a repository
	// root its subtree is not descended into, so no returned path is nested
	// inside another. Symbolic links are never followed and unreadable
	// directories are skipped.
	// Returns ErrPathUnavailable when root cannot be canonicalized.
	Discover(ctx context.Context, root string, maxDepth int) (*DiscoveryResult, error)
}

// RepositoryInspector is the version-control backend capability. It answers
// the three classification questions for a single repository root.
// Implementations must be safe for concurrent use across distinct paths;
// each call opens its own backend handle.
type RepositoryInspector interface {
	// Inspect opens the repository at path and returns its status.
	// The ahead-of-upstream count is only computed when computeAhead is
	// true; failures inside that computation degrade to a nil count, never
	// to an error. An error is returned only when the repository itself
	// cannot be opened or its working tree cannot be queried, so callers can
	// drop the one repository and keep scanning.
	Inspect(ctx context.Context, path string, computeAhead bool) (*RepositoryStatus, error)
}

// Scanner runs the discovery and classification pipeline.
type Scanner interface {
	// Scan discovers repositories under input.Root, inspects them in
	// parallel, and returns the filtered results sorted by path.
	// Returns ErrNoRepositoriesFound or ErrNoMatchingRepositories when the
	// result set is empty.
	Scan(ctx context.Context, input ScanInput) (*ScanOutput, error)
}

// OutputWriter renders a scan report to an output destination.
type OutputWriter interface {
	// WriteReport writes one line per repository, plus a summary line in
	// human mode.
	WriteReport(output *ScanOutput, opts ReportOptions) error
}
