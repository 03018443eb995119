// Package git provides adapters for interacting with local Git repositories.
package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamkaf/dirty/internal/domain"
)

// testLogger is a minimal logger for testing that doesn't output anything.
type testLogger struct{}

func (l *testLogger) Debug(_ context.Context, _ string, _ map[string]interface{}) {}
func (l *testLogger) Warn(_ context.Context, _ string, _ map[string]interface{})  {}

// setupTestRepo creates a temporary git repository with one commit.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	runGit(t, dir, "init")
	runGit(t, dir, "config", "user.email", "test@example.com")
	runGit(t, dir, "config", "user.name", "Test User")

	testFile := filepath.Join(dir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("initial content"), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Initial commit")

	return dir
}

// setupRepoWithUpstream creates a repository whose current branch tracks a
// local bare remote, fully pushed. Returns the repository path.
func setupRepoWithUpstream(t *testing.T) string {
	t.Helper()

	origin := t.TempDir()
	runGit(t, origin, "init", "--bare")

	dir := setupTestRepo(t)
	runGit(t, dir, "remote", "add", "origin", origin)
	branch := getGitOutput(t, dir, "branch", "--show-current")
	runGit(t, dir, "push", "-u", "origin", branch)

	return dir
}

// addCommit appends content to a file and commits it.
func addCommit(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	runGit(t, dir, "add", ".")
	runGit(t, dir, "commit", "-m", "Add "+name)
}

// runGit executes a git command in the given directory.
func runGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\nOutput: %s", args, err, output)
	}
}

// getGitOutput runs a git command and returns its trimmed stdout.
func getGitOutput(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	require.NoError(t, err, "git %v failed", args)
	return strings.TrimSpace(string(output))
}

func inspect(t *testing.T, path string, computeAhead bool) *domain.RepositoryStatus {
	t.Helper()
	status, err := NewGoGitInspector(&testLogger{}).Inspect(context.Background(), path, computeAhead)
	require.NoError(t, err)
	require.NotNil(t, status)
	return status
}

func TestInspect_NotARepository(t *testing.T) {
	status, err := NewGoGitInspector(&testLogger{}).Inspect(context.Background(), t.TempDir(), false)

	require.Error(t, err)
	assert.Nil(t, status)
	assert.ErrorIs(t, err, domain.ErrRepositoryNotFound)
}

func TestInspect_CleanRepoIsNotDirty(t *testing.T) {
	repoPath := setupTestRepo(t)

	status := inspect(t, repoPath, false)

	assert.False(t, status.Dirty)
	assert.Equal(t, repoPath, status.Path)
	assert.Nil(t, status.Ahead)
}

func TestInspect_UntrackedFileIsDirty(t *testing.T) {
	repoPath := setupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "untracked.txt"), []byte("hello"), 0o644))

	status := inspect(t, repoPath, false)

	assert.True(t, status.Dirty)
}

func TestInspect_ModifiedTrackedFileIsDirty(t *testing.T) {
	repoPath := setupTestRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(repoPath, "test.txt"), []byte("changed"), 0o644))

	status := inspect(t, repoPath, false)

	assert.True(t, status.Dirty)
}

func TestInspect_NoRemotesIsLocalOnly(t *testing.T) {
	repoPath := setupTestRepo(t)

	status := inspect(t, repoPath, false)

	assert.True(t, status.LocalOnly)
}

func TestInspect_WithRemoteIsNotLocalOnly(t *testing.T) {
	repoPath := setupTestRepo(t)
	runGit(t, repoPath, "remote", "add", "origin", "https://example.com/repo.git")

	status := inspect(t, repoPath, false)

	assert.False(t, status.LocalOnly)
}

func TestInspect_AheadNotComputedByDefault(t *testing.T) {
	repoPath := setupRepoWithUpstream(t)
	addCommit(t, repoPath, "extra.txt", "unpushed work")

	status := inspect(t, repoPath, false)

	assert.Nil(t, status.Ahead)
}

func TestInspect_AheadZeroWhenFullyPushed(t *testing.T) {
	repoPath := setupRepoWithUpstream(t)

	status := inspect(t, repoPath, true)

	require.NotNil(t, status.Ahead)
	assert.Equal(t, 0, *status.Ahead)
}

func TestInspect_AheadCountsUnpushedCommits(t *testing.T) {
	repoPath := setupRepoWithUpstream(t)
	addCommit(t, repoPath, "one.txt", "first unpushed")
	addCommit(t, repoPath, "two.txt", "second unpushed")

	status := inspect(t, repoPath, true)

	require.NotNil(t, status.Ahead)
	assert.Equal(t, 2, *status.Ahead)
}

func TestInspect_AheadAbsentWithoutUpstream(t *testing.T) {
	repoPath := setupTestRepo(t)
	runGit(t, repoPath, "remote", "add", "origin", "https://example.com/repo.git")

	status := inspect(t, repoPath, true)

	assert.Nil(t, status.Ahead)
}

func TestInspect_AheadAbsentOnDetachedHead(t *testing.T) {
	repoPath := setupRepoWithUpstream(t)
	addCommit(t, repoPath, "extra.txt", "more work")
	runGit(t, repoPath, "checkout", "--detach", "HEAD")

	status := inspect(t, repoPath, true)

	assert.Nil(t, status.Ahead)
}
