package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polyllc/gotester/internal/adapter"
	"github.com/polyllc/gotester/pkg/model"
)

var viewHistoryFlag bool

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view",
		Short: "View previously saved check reports",
		Long:  "View the latest saved report, or the run history, from a reports directory.",
		Args:  cobra.ExactArgs(0),
		RunE: func(_ *cobra.Command, _ []string) error {
			configureLogger("", viper.GetBool(logVerboseKey))

			dir := viper.GetString(outputFlagName)

			if viewHistoryFlag {
				records, err := reportStore.History(dir)
				if err != nil {
					return err
				}

				return ui.DisplayHistory(records)
			}

			filter, err := reportFilter()
			if err != nil {
				return err
			}

			report, err := reportStore.LoadReport(dir)
			if err != nil {
				return err
			}

			text := renderStored(report, viper.GetBool(collapseConfigKey), filter)
			if err := ui.DisplayReport(text); err != nil {
				return err
			}

			return ui.DisplaySummary(storedRows(report))
		},
	}

	cmd.Flags().BoolVar(&viewHistoryFlag, "history", false, "show the run history instead of the latest report")

	return cmd
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

// renderStored rebuilds the text report from a stored envelope, matching the
// engine's live rendering.
func renderStored(report adapter.StoredReport, collapse bool, filter model.Filter) string {
	var b strings.Builder

	for _, group := range report.TestResults {
		fmt.Fprintf(&b, "%s | %d/%d passed | Status: %s in %f sec\n",
			group.Name, group.NumPassing, group.NumTotal, group.Status, group.Elapsed)
		b.WriteString("----------------------------------------------------------\n")

		for _, p := range group.Printables {
			if !filterKeeps(filter, p) {
				continue
			}

			fmt.Fprintf(&b, "|- %s\n", renderStoredPrintable(p, collapse))
		}

		b.WriteString("\n")
	}

	return b.String()
}

func filterKeeps(filter model.Filter, p adapter.StoredPrintable) bool {
	switch filter {
	case model.PassingOnly:
		return p.Passing()
	case model.FailingOnly:
		return !p.Passing()
	}

	return true
}

func renderStoredPrintable(p adapter.StoredPrintable, collapse bool) string {
	switch p.Type {
	case "result":
		var b strings.Builder

		fmt.Fprintf(&b, "Group %d | Test %d | Result: %t in %f sec",
			p.GroupID, p.TestIndex, p.Passing(), p.Elapsed)

		if !collapse {
			fmt.Fprintf(&b, " | %s", p.Message)
		}

		// Stored error messages already carry their "(Error code N)" prefix.
		for _, attached := range p.Errors {
			fmt.Fprintf(&b, " | %s", attached.Message)
		}

		return b.String()
	case "testMessage":
		return fmt.Sprintf("%s: %s", strings.ToUpper(p.Kind), p.Message)
	case "error":
		return p.Message
	}

	return p.Message
}
