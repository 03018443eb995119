// Package git provides adapters for interacting with local Git repositories.
// This package implements the domain.RepositoryInspector interface using
// go-git/v5.
package git

import (
	"context"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/revlist"

	"github.com/iamkaf/dirty/internal/domain"
)

// Logger defines the logging interface for the git adapter.
// This interface enables dependency injection and testability.
type Logger interface {
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
}

// GoGitInspector implements domain.RepositoryInspector using go-git/v5.
// Each Inspect call opens its own repository handle, so a single inspector
// can serve any number of concurrent inspections without shared state.
type GoGitInspector struct {
	logger Logger
}

// NewGoGitInspector creates an inspector backed by go-git.
func NewGoGitInspector(log Logger) *GoGitInspector {
	return &GoGitInspector{logger: log}
}

// Inspect opens the repository at path and classifies it.
// Returns domain.ErrRepositoryNotFound if the path is not a valid Git
// repository; callers treat any returned error as "skip this repository".
func (i *GoGitInspector) Inspect(ctx context.Context, path string, computeAhead bool) (*domain.RepositoryStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrRepositoryNotFound, path)
	}

	dirty, err := i.isDirty(repo)
	if err != nil {
		return nil, fmt.Errorf("failed to compute working-tree status for %s: %w", path, err)
	}

	// A failed remote listing is folded into "no known remotes": missing
	// remote configuration is itself the signal being reported.
	remotes, err := repo.Remotes()
	localOnly := err != nil || len(remotes) == 0

	var ahead *int
	if computeAhead {
		ahead = i.aheadOfUpstream(ctx, repo, path)
	}

	status := &domain.RepositoryStatus{
		Path:      path,
		Dirty:     dirty,
		LocalOnly: localOnly,
		Ahead:     ahead,
	}

	i.logger.Debug(ctx, "inspected repository", map[string]interface{}{
		"path":       path,
		"dirty":      status.Dirty,
		"local_only": status.LocalOnly,
		"ahead":      status.AheadOrZero(),
	})

	return status, nil
}

// isDirty reports whether the working tree holds any tracked modification or
// untracked content.
func (i *GoGitInspector) isDirty(repo *git.Repository) (bool, error) {
	worktree, err := repo.Worktree()
	if err != nil {
		return false, err
	}

	status, err := worktree.Status()
	if err != nil {
		return false, err
	}

	return !status.IsClean(), nil
}

// aheadOfUpstream returns the number of commits reachable from HEAD but not
// from its upstream tracking branch, or nil when that cannot be determined:
// detached or unborn HEAD, no upstream configured, or an unresolvable
// tracking reference. Every failure degrades to nil rather than an error so
// one odd repository cannot abort a bulk scan.
func (i *GoGitInspector) aheadOfUpstream(ctx context.Context, repo *git.Repository, path string) *int {
	head, err := repo.Head()
	if err != nil {
		return nil
	}
	if !head.Name().IsBranch() {
		i.logger.Warn(ctx, "HEAD is detached; skipping ahead count", map[string]interface{}{
			"path": path,
		})
		return nil
	}

	cfg, err := repo.Config()
	if err != nil {
		return nil
	}

	branch, ok := cfg.Branches[head.Name().Short()]
	if !ok || branch.Remote == "" || branch.Merge == "" {
		return nil
	}

	upstreamName := plumbing.NewRemoteReferenceName(branch.Remote, branch.Merge.Short())
	upstream, err := repo.Reference(upstreamName, true)
	if err != nil {
		return nil
	}

	// Objects reachable from HEAD and not from upstream; only the commits
	// among them count towards the ahead total.
	hashes, err := revlist.Objects(
		repo.Storer,
		[]plumbing.Hash{head.Hash()},
		[]plumbing.Hash{upstream.Hash()},
	)
	if err != nil {
		return nil
	}

	ahead := 0
	for _, hash := range hashes {
		if _, commitErr := repo.CommitObject(hash); commitErr == nil {
			ahead++
		}
	}

	return &ahead
}
