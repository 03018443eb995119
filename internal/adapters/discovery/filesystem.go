// Package discovery locates git repository roots on the local filesystem.
// This package implements the domain.RepositoryDiscoverer interface with a
// depth-bounded, prune-on-match directory walk.
package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/iamkaf/dirty/internal/domain"
)

// gitMetadataName is the marker entry that identifies a repository root.
// It may be a directory (normal clone) or a file (worktree, submodule).
const gitMetadataName = ".git"

// Logger defines the logging interface for the discoverer.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
}

// FilesystemDiscoverer implements domain.RepositoryDiscoverer over the
// operating-system filesystem. Discovery is read-only and single-threaded;
// traversal order does not affect the (sorted) output.
type FilesystemDiscoverer struct {
	logger Logger
}

// NewFilesystemDiscoverer creates a discoverer backed by the OS filesystem.
func NewFilesystemDiscoverer(log Logger) *FilesystemDiscoverer {
	return &FilesystemDiscoverer{logger: log}
}

// Discover walks the tree below root up to maxDepth directory levels and
// returns every repository root, sorted lexicographically.
// The root is resolved to an absolute, symlink-free form first; resolution
// failure yields domain.ErrPathUnavailable.
func (d *FilesystemDiscoverer) Discover(ctx context.Context, root string, maxDepth int) (*domain.DiscoveryResult, error) {
	if maxDepth < 0 {
		maxDepth = domain.DefaultMaxDepth
	}

	resolved, err := canonicalize(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrPathUnavailable, root)
	}

	var paths []string
	d.collect(ctx, resolved, maxDepth, 0, &paths)
	sort.Strings(paths)

	d.logger.Debug(ctx, "discovery complete", map[string]interface{}{
		"root":         resolved,
		"max_depth":    maxDepth,
		"repositories": len(paths),
	})

	return &domain.DiscoveryResult{Root: resolved, Paths: paths}, nil
}

// collect performs the depth-first walk. The depth guard runs before the
// marker check, so repositories deeper than maxDepth are not recorded.
// A directory holding a .git entry is recorded and its subtree pruned, which
// keeps nested checkouts (vendored repos, submodule working trees) out of the
// result set. Unreadable directories are skipped: a partial result is better
// than an aborted scan.
func (d *FilesystemDiscoverer) collect(ctx context.Context, dir string, maxDepth, depth int, paths *[]string) {
	if depth > maxDepth || ctx.Err() != nil {
		return
	}

	if _, err := os.Lstat(filepath.Join(dir, gitMetadataName)); err == nil {
		*paths = append(*paths, dir)
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}

	for _, entry := range entries {
		// DirEntry.IsDir is Lstat-based: false for symlinks to directories,
		// which is what keeps cyclic links from recursing forever.
		if entry.IsDir() {
			d.collect(ctx, filepath.Join(dir, entry.Name()), maxDepth, depth+1, paths)
		}
	}
}

// canonicalize resolves root to an absolute path with all symlinks evaluated.
func canonicalize(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", resolved)
	}

	return resolved, nil
}
