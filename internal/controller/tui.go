package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/polyllc/gotester/internal/adapter"
)

// TUI implements UI using Bubble Tea for interactive report paging.
// Summary and history tables are always short and fall through to the
// simple renderer.
type TUI struct {
	output io.Writer
	simple *SimpleUI
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer, simple *SimpleUI) *TUI {
	return &TUI{output: output, simple: simple}
}

// DisplaySummary prints the group summary table.
func (p *TUI) DisplaySummary(rows []GroupRow) error {
	return p.simple.DisplaySummary(rows)
}

// DisplayHistory prints the saved-run table.
func (p *TUI) DisplayHistory(records []adapter.RunRecord) error {
	return p.simple.DisplayHistory(records)
}

// DisplayReport shows the text report, paging it when it does not fit the
// terminal.
func (p *TUI) DisplayReport(report string) error {
	lines := make([]string, 0, strings.Count(report, "\n")+1)
	for _, line := range strings.Split(strings.TrimRight(report, "\n"), "\n") {
		lines = append(lines, colorizeLine(line))
	}

	model := newReportModel(lines)

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If the report is small, just print and exit
	if !model.needsPagination() {
		return p.simple.DisplayReport(report)
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// reportModel represents the Bubble Tea model for paging a text report.
type reportModel struct {
	lines    []string
	height   int
	width    int
	offset   int // Current scroll offset
	quitting bool
}

func newReportModel(lines []string) reportModel {
	return reportModel{
		lines:    lines,
		height:   0, // Will be set on first WindowSizeMsg
		width:    0,
		offset:   0,
		quitting: false,
	}
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		rm.height = msg.Height
		rm.width = msg.Width

		return rm, nil

	case tea.KeyMsg:
		return rm.handleKeyPress(msg)
	}

	return rm, nil
}

//nolint:cyclop,exhaustive // Key handling requires multiple cases for UI navigation
func (rm reportModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		rm.quitting = true
		return rm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		rm.quitting = true
		return rm, tea.Quit

	case "down", "j":
		rm.offset++

		maxOffset := rm.maxOffset()
		if rm.offset > maxOffset {
			rm.offset = maxOffset
		}

		return rm, nil

	case "up", "k":
		rm.offset--
		if rm.offset < 0 {
			rm.offset = 0
		}

		return rm, nil

	case "g", "home":
		rm.offset = 0

		return rm, nil

	case "G", "end":
		rm.offset = rm.maxOffset()

		return rm, nil

	case "d", "pgdown":
		rm.offset += rm.linesPerPage()

		maxOffset := rm.maxOffset()
		if rm.offset > maxOffset {
			rm.offset = maxOffset
		}

		return rm, nil

	case "u", "pgup":
		rm.offset -= rm.linesPerPage()
		if rm.offset < 0 {
			rm.offset = 0
		}

		return rm, nil
	}

	return rm, nil
}

// linesPerPage calculates how many report lines can fit on screen.
func (rm reportModel) linesPerPage() int {
	if rm.height == 0 {
		return 20 // Default
	}
	// Reserve space for:
	// - Title: 2 lines
	// - Footer: 3 lines (empty + page + help)
	// - Top margin: 1 line
	reserved := 6

	available := rm.height - reserved
	if available < 1 {
		return 1
	}

	return available
}

// maxOffset returns the maximum scroll offset.
func (rm reportModel) maxOffset() int {
	perPage := rm.linesPerPage()
	if perPage <= 0 {
		return 0
	}

	maxOff := len(rm.lines) - perPage
	if maxOff < 0 {
		return 0
	}

	return maxOff
}

// needsPagination returns true if the report is too large to fit on screen.
func (rm reportModel) needsPagination() bool {
	if len(rm.lines) == 0 {
		return false
	}

	return len(rm.lines) > rm.linesPerPage() && rm.height > 0
}

func (rm reportModel) View() string {
	var b strings.Builder

	b.WriteString(headStyle.Render("Test Report"))
	b.WriteString("\n\n")

	if len(rm.lines) == 0 {
		b.WriteString("  (empty report)\n")
		return b.String()
	}

	start := rm.offset
	if start >= len(rm.lines) {
		start = len(rm.lines) - 1
	}

	end := start + rm.linesPerPage()
	if end > len(rm.lines) {
		end = len(rm.lines)
	}

	for _, line := range rm.lines[start:end] {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")

	perPage := rm.linesPerPage()
	currentPage := (rm.offset / perPage) + 1
	totalPages := (len(rm.lines) + perPage - 1) / perPage
	fmt.Fprintf(&b, "  Page %d/%d | Showing %d-%d of %d\n",
		currentPage, totalPages, start+1, end, len(rm.lines))
	b.WriteString("  ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit\n")

	return b.String()
}
