// Package domain defines the core business entities and interfaces for dirty.
package domain

// RepositoryStatus describes one discovered repository root.
// Instances are built once by the inspector and never mutated afterwards.
type RepositoryStatus struct {
	// Path is the absolute filesystem path to the repository root.
	Path string

	// Dirty is true when the working tree has any tracked modification
	// or untracked content.
	Dirty bool

	// LocalOnly is true when the repository has no configured remotes.
	// A failed remote listing also counts as local-only; absence of remote
	// configuration is meaningful information, not an error.
	LocalOnly bool

	// Ahead is the number of commits on the current branch that are not
	// present on its upstream tracking branch. It is nil when the caller
	// did not request the computation, or when it could not be determined
	// (detached HEAD, unborn branch, no upstream configured or resolvable).
	// nil is not the same as zero.
	Ahead *int
}

// AheadOrZero returns the ahead count, treating an absent count as zero.
// Intended for the unpushed filter and for display; a repository whose ahead
// status is indeterminate is conservatively treated as not ahead.
func (s RepositoryStatus) AheadOrZero() int {
	if s.Ahead == nil {
		return 0
	}
	return *s.Ahead
}

// FilterOptions selects which repositories appear in the final report.
// Zero-value options match everything.
type FilterOptions struct {
	// DirtyOnly keeps only repositories with a dirty working tree.
	DirtyOnly bool

	// LocalOnly keeps only repositories without configured remotes.
	LocalOnly bool

	// UnpushedOnly keeps only repositories ahead of their upstream.
	// Callers must request ahead computation when setting this.
	UnpushedOnly bool
}

// Matches reports whether the given repository passes every active predicate.
func (f FilterOptions) Matches(status RepositoryStatus) bool {
	return (!f.DirtyOnly || status.Dirty) &&
		(!f.LocalOnly || status.LocalOnly) &&
		(!f.UnpushedOnly || status.AheadOrZero() > 0)
}

// ScanInput contains the parameters for a repository scan.
type ScanInput struct {
	// Root is the directory to scan. It is canonicalized before traversal.
	Root string

	// MaxDepth bounds how many directory levels below Root are searched.
	// Values below zero fall back to DefaultMaxDepth.
	MaxDepth int

	// ComputeAhead enables the ahead-of-upstream computation per repository.
	// It is meaningfully more expensive than the other checks, so it is off
	// by default.
	ComputeAhead bool

	// Filter selects which inspected repositories are reported.
	Filter FilterOptions
}

// ScanOutput contains the result of a successful scan.
type ScanOutput struct {
	// Root is the canonicalized scan root. Reported paths are presented
	// relative to it.
	Root string

	// Repositories holds the matching repositories in lexicographic
	// path order.
	Repositories []RepositoryStatus

	// TotalDiscovered is the number of repository roots found before
	// filtering.
	TotalDiscovered int
}

// DiscoveryResult contains the outcome of a filesystem discovery pass.
type DiscoveryResult struct {
	// Root is the canonical, symlink-free form of the requested root.
	Root string

	// Paths holds the discovered repository roots in lexicographic order.
	// No path is a descendant of another: discovery prunes the subtree of
	// every repository root it records.
	Paths []string
}

// ReportOptions controls report rendering.
type ReportOptions struct {
	// Raw prints only relative paths, one per line, for piping into other
	// tools. No markers, no summary.
	Raw bool

	// ShowAhead appends the ahead count tag to each human-mode line.
	ShowAhead bool
}

// DefaultMaxDepth is the default number of directory levels searched below
// the scan root.
const DefaultMaxDepth = 3
