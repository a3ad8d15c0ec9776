// Package controller provides output adapters for displaying check reports.
package controller

import (
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/polyllc/gotester/internal/adapter"
)

// GroupRow is one group's totals for the summary table. It is the common
// shape for live runs and stored reports.
type GroupRow struct {
	Name       string
	Status     string
	NumPassing int
	NumTotal   int
	Elapsed    float64
}

// UI defines the interface for displaying reports.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplaySummary(rows []GroupRow) error
	DisplayReport(report string) error
	DisplayHistory(records []adapter.RunRecord) error
}

// NewUI picks the UI implementation. Interactive output gets the paging
// TUI with color, everything else gets plain text.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if interactive {
		return NewTUI(cmd.OutOrStdout(), NewSimpleUI(cmd, true))
	}

	return NewSimpleUI(cmd, false)
}

// IsTTY reports whether the writer is an interactive terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}
