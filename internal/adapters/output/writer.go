// Package output provides adapters for writing the scan report.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/iamkaf/dirty/internal/domain"
)

// Writer renders scan results to the configured output destination.
// By default, it writes to stdout. It implements domain.OutputWriter.
type Writer struct {
	out io.Writer

	// Color functions (pass-through when colors are disabled).
	red    func(a ...interface{}) string
	yellow func(a ...interface{}) string
	blue   func(a ...interface{}) string
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter() *Writer {
	return NewWriterWithOutput(os.Stdout)
}

// NewWriterWithOutput creates a new Writer with a custom output destination.
// This is useful for testing.
func NewWriterWithOutput(out io.Writer) *Writer {
	return &Writer{
		out:    out,
		red:    color.New(color.FgRed).SprintFunc(),
		yellow: color.New(color.FgYellow).SprintFunc(),
		blue:   color.New(color.FgBlue).SprintFunc(),
	}
}

// WriteReport writes the scan report.
//
// Human mode prints one line per repository (dirty marker, path relative to
// the scan root, local-only tag, ahead tag when requested) followed by a
// summary line. Raw mode prints only the relative paths, one per line, with
// no markers and no summary, for piping into other tools.
func (w *Writer) WriteReport(output *domain.ScanOutput, opts domain.ReportOptions) error {
	for _, repo := range output.Repositories {
		rel := relativePath(output.Root, repo.Path)

		if opts.Raw {
			if _, err := fmt.Fprintln(w.out, rel); err != nil {
				return err
			}
			continue
		}

		marker := " "
		if repo.Dirty {
			marker = w.red("*")
		}

		localTag := ""
		if repo.LocalOnly {
			localTag = " " + w.yellow("[local]")
		}

		aheadTag := ""
		if opts.ShowAhead {
			aheadTag = " " + w.blue(fmt.Sprintf("[↑%d]", repo.AheadOrZero()))
		}

		if _, err := fmt.Fprintf(w.out, " %s %s%s%s\n", marker, rel, localTag, aheadTag); err != nil {
			return err
		}
	}

	if opts.Raw {
		return nil
	}

	dirtyCount := 0
	localCount := 0
	for _, repo := range output.Repositories {
		if repo.Dirty {
			dirtyCount++
		}
		if repo.LocalOnly {
			localCount++
		}
	}

	_, err := fmt.Fprintf(w.out, "\n%d repos, %d dirty, %d local-only\n",
		len(output.Repositories), dirtyCount, localCount)
	return err
}

// relativePath presents path relative to root, falling back to the absolute
// path when it does not sit below the root.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}
