package output

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamkaf/dirty/internal/domain"
)

func intPtr(n int) *int {
	return &n
}

func writeReport(t *testing.T, output *domain.ScanOutput, opts domain.ReportOptions) string {
	t.Helper()

	// Plain text output keeps the assertions independent of the terminal.
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	var buf bytes.Buffer
	writer := NewWriterWithOutput(&buf)
	require.NoError(t, writer.WriteReport(output, opts))
	return buf.String()
}

func TestWriteReport_HumanMode(t *testing.T) {
	root := filepath.Join("/", "home", "user", "src")
	out := writeReport(t, &domain.ScanOutput{
		Root: root,
		Repositories: []domain.RepositoryStatus{
			{Path: filepath.Join(root, "clean"), Dirty: false},
			{Path: filepath.Join(root, "messy"), Dirty: true},
			{Path: filepath.Join(root, "solo"), Dirty: true, LocalOnly: true},
		},
		TotalDiscovered: 3,
	}, domain.ReportOptions{})

	assert.Contains(t, out, "   clean\n")
	assert.Contains(t, out, " * messy\n")
	assert.Contains(t, out, " * solo [local]\n")
	assert.Contains(t, out, "\n3 repos, 2 dirty, 1 local-only\n")
}

func TestWriteReport_AheadTag(t *testing.T) {
	root := "/src"
	out := writeReport(t, &domain.ScanOutput{
		Root: root,
		Repositories: []domain.RepositoryStatus{
			{Path: root + "/ahead", Ahead: intPtr(3)},
			{Path: root + "/unknown", Ahead: nil},
		},
	}, domain.ReportOptions{ShowAhead: true})

	assert.Contains(t, out, "ahead [↑3]\n")
	// Absent counts render as zero in the tag.
	assert.Contains(t, out, "unknown [↑0]\n")
}

func TestWriteReport_NoAheadTagWithoutRequest(t *testing.T) {
	out := writeReport(t, &domain.ScanOutput{
		Root: "/src",
		Repositories: []domain.RepositoryStatus{
			{Path: "/src/repo", Ahead: intPtr(3)},
		},
	}, domain.ReportOptions{})

	assert.NotContains(t, out, "↑")
}

func TestWriteReport_RawMode(t *testing.T) {
	root := filepath.Join("/", "srv", "code")
	out := writeReport(t, &domain.ScanOutput{
		Root: root,
		Repositories: []domain.RepositoryStatus{
			{Path: filepath.Join(root, "a"), Dirty: true, LocalOnly: true, Ahead: intPtr(2)},
			{Path: filepath.Join(root, "deep", "b")},
		},
	}, domain.ReportOptions{Raw: true, ShowAhead: true})

	// Bare relative paths only: no markers, no tags, no summary.
	assert.Equal(t, "a\n"+filepath.Join("deep", "b")+"\n", out)
}

func TestWriteReport_PathOutsideRootStaysAbsolute(t *testing.T) {
	out := writeReport(t, &domain.ScanOutput{
		Root: "/src",
		Repositories: []domain.RepositoryStatus{
			{Path: "/elsewhere/repo"},
		},
	}, domain.ReportOptions{Raw: true})

	assert.Equal(t, "/elsewhere/repo\n", out)
}

func TestNewWriter_UsesStdout(t *testing.T) {
	writer := NewWriter()
	assert.NotNil(t, writer)
	assert.NotNil(t, writer.out)
}
