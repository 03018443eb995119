// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/iamkaf/dirty/internal/domain"
)

// Logger defines the logging interface required by the scanner.
// This abstracts the logger dependency to avoid coupling to a specific
// implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// RepoScanner runs the discovery and classification pipeline: discover
// repository roots, inspect each in parallel, filter, and sort.
// It implements domain.Scanner.
type RepoScanner struct {
	discoverer domain.RepositoryDiscoverer
	inspector  domain.RepositoryInspector
	workers    int
	logger     Logger
}

// NewRepoScanner creates a RepoScanner with the given dependencies.
// workers bounds the inspection fan-out; values below one fall back to the
// available parallelism.
func NewRepoScanner(
	discoverer domain.RepositoryDiscoverer,
	inspector domain.RepositoryInspector,
	workers int,
	log Logger,
) *RepoScanner {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &RepoScanner{
		discoverer: discoverer,
		inspector:  inspector,
		workers:    workers,
		logger:     log,
	}
}

// Scan discovers repositories under input.Root, inspects them across a
// bounded worker pool, and returns the filtered results in lexicographic
// path order.
//
// Per-repository inspection failures are absorbed: the repository is dropped
// from the results and the scan continues. Only root-level failures
// (unresolvable root, empty result set) surface as errors.
func (s *RepoScanner) Scan(ctx context.Context, input domain.ScanInput) (*domain.ScanOutput, error) {
	discovery, err := s.discoverer.Discover(ctx, input.Root, input.MaxDepth)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "discovered repositories", map[string]interface{}{
		"root":  discovery.Root,
		"count": len(discovery.Paths),
	})

	if len(discovery.Paths) == 0 {
		return nil, fmt.Errorf("%w in %s", domain.ErrNoRepositoriesFound, discovery.Root)
	}

	inspected := s.inspectAll(ctx, discovery.Paths, input.ComputeAhead)

	matching := make([]domain.RepositoryStatus, 0, len(inspected))
	for _, status := range inspected {
		if input.Filter.Matches(status) {
			matching = append(matching, status)
		}
	}

	if len(matching) == 0 {
		return nil, domain.ErrNoMatchingRepositories
	}

	return &domain.ScanOutput{
		Root:            discovery.Root,
		Repositories:    matching,
		TotalDiscovered: len(discovery.Paths),
	}, nil
}

// inspectAll fans inspection out across the worker pool. Results land in a
// slice indexed by discovery order, so the (already sorted) path order is
// preserved no matter which inspection finishes first. Invocations share no
// mutable state beyond their own slot.
func (s *RepoScanner) inspectAll(ctx context.Context, paths []string, computeAhead bool) []domain.RepositoryStatus {
	sem := newSemaphore(s.workers)
	var wg sync.WaitGroup
	slots := make([]*domain.RepositoryStatus, len(paths))

	for idx, path := range paths {
		wg.Add(1)
		go func(idx int, path string) {
			defer wg.Done()
			sem.acquire()
			defer sem.release()

			status, err := s.inspector.Inspect(ctx, path, computeAhead)
			if err != nil {
				// One bad repository must not abort the scan.
				s.logger.Debug(ctx, "skipping uninspectable repository", map[string]interface{}{
					"path":  path,
					"error": err.Error(),
				})
				return
			}
			slots[idx] = status
		}(idx, path)
	}

	wg.Wait()

	results := make([]domain.RepositoryStatus, 0, len(paths))
	for _, status := range slots {
		if status != nil {
			results = append(results, *status)
		}
	}
	return results
}

// semaphore for limiting concurrent inspections.
type semaphore chan struct{}

func newSemaphore(n int) semaphore {
	return make(chan struct{}, n)
}

func (s semaphore) acquire() {
	s <- struct{}{}
}

func (s semaphore) release() {
	<-s
}
