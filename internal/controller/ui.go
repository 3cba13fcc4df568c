// Package controller provides output adapters for displaying composed structures.
package controller

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	m "kover.dev/pkg/kover/internal/model"
)

// FileStats holds the declaration counts of one composed file.
type FileStats struct {
	Path m.Path
	m.Stats
}

// Failure records a file that could not be composed.
type Failure struct {
	Path m.Path
	Err  error
}

// UI defines the interface for displaying composition results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayStructure(ctx context.Context, data []byte) error
	DisplayStats(ctx context.Context, stats []FileStats) error
	DisplayTree(ctx context.Context, files []*m.SourceFile) error
	DisplayFailures(ctx context.Context, failures []Failure) error
}

// NewUI picks the interactive UI when output goes to a terminal.
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd)
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether w is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
