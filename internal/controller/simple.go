package controller

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/polyllc/gotester/internal/adapter"
)

var (
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	severeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	headStyle   = lipgloss.NewStyle().Bold(true)
)

// SimpleUI implements UI using cobra Command's output writer.
type SimpleUI struct {
	cmd   *cobra.Command
	color bool
}

// NewSimpleUI creates a new SimpleUI. Color applies to report text only,
// tables stay plain.
func NewSimpleUI(cmd *cobra.Command, color bool) *SimpleUI {
	return &SimpleUI{cmd: cmd, color: color}
}

// DisplaySummary prints one table row per group plus run totals.
func (s *SimpleUI) DisplaySummary(rows []GroupRow) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Group", "Passed", "Status", "Elapsed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_RIGHT,
	})

	totalPassing := 0
	totalChecks := 0

	for _, row := range rows {
		table.Append([]string{
			row.Name,
			fmt.Sprintf("%d/%d", row.NumPassing, row.NumTotal),
			row.Status,
			fmt.Sprintf("%.3fs", row.Elapsed),
		})

		totalPassing += row.NumPassing
		totalChecks += row.NumTotal
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Groups %d", len(rows)),
		fmt.Sprintf("%d/%d", totalPassing, totalChecks),
		"",
		"",
	})

	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayReport prints the full text report, colorized per line when the
// output supports it.
func (s *SimpleUI) DisplayReport(report string) error {
	if !s.color {
		s.printf("%s", report)
		return nil
	}

	for _, line := range strings.Split(report, "\n") {
		s.printf("%s\n", colorizeLine(line))
	}

	return nil
}

// DisplayHistory prints one table row per saved run.
func (s *SimpleUI) DisplayHistory(records []adapter.RunRecord) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Saved At", "Passed"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, record := range records {
		table.Append([]string{
			record.SavedAt.Format("2006-01-02 15:04:05"),
			fmt.Sprintf("%d/%d", record.NumPassing, record.NumTotal),
		})
	}

	table.SetFooter([]string{fmt.Sprintf("Total Runs %d", len(records)), ""})
	table.Render()

	s.printf("\n%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}

// colorizeLine maps report line shapes to styles. Unrecognized lines pass
// through untouched.
func colorizeLine(line string) string {
	trimmed := strings.TrimPrefix(line, "|- ")

	switch {
	case strings.Contains(line, "| Status: "):
		style := headStyle
		if strings.Contains(line, "Status: FAILURE") || strings.Contains(line, "Status: DID NOT FINISH") {
			style = headStyle.Foreground(lipgloss.Color("9"))
		} else if strings.Contains(line, "Status: SUCCESS") {
			style = headStyle.Foreground(lipgloss.Color("10"))
		}

		return style.Render(line)
	case strings.Contains(line, "Result: true"):
		return passStyle.Render(line)
	case strings.Contains(line, "Result: false"):
		return failStyle.Render(line)
	case strings.HasPrefix(trimmed, "WARNING: "):
		return warnStyle.Render(line)
	case strings.HasPrefix(trimmed, "SEVERE: "):
		return severeStyle.Render(line)
	case strings.HasPrefix(trimmed, "FAIL: "), strings.HasPrefix(trimmed, "(Error code "):
		return failStyle.Render(line)
	}

	return line
}
