package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/polyllc/gotester/internal/suite"
	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/tester"
)

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <suite.yaml> [more suites...]",
		Short: "Run declarative check suites",
		Long: `Run one or more YAML check suites, print the report, and save it to the
reports directory. The command fails if any check fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configureLogger("", viper.GetBool(logVerboseKey))

			filter, err := reportFilter()
			if err != nil {
				return err
			}

			t := tester.New()
			t.SetOutput(cmd.OutOrStdout())
			t.UpdateSetting(tester.PrintSync, viper.GetBool(syncConfigKey))

			for _, path := range args {
				def, err := suite.Load(path)
				if err != nil {
					return err
				}

				if err := def.Execute(t); err != nil {
					return fmt.Errorf("suite %s: %w", path, err)
				}
			}

			if err := ui.DisplayReport(t.Render(viper.GetBool(collapseConfigKey), filter)); err != nil {
				return err
			}

			summaries := t.Summaries()
			if err := ui.DisplaySummary(summaryRows(summaries)); err != nil {
				return err
			}

			if err := saveRun(t); err != nil {
				return err
			}

			return failOnFailures(summaries)
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func saveRun(t *tester.Tester) error {
	report, err := t.JSON()
	if err != nil {
		return err
	}

	return reportStore.SaveReport(viper.GetString(outputFlagName), report)
}

func failOnFailures(summaries []tester.GroupSummary) error {
	passing := 0
	total := 0
	failedGroups := 0

	for _, summary := range summaries {
		passing += summary.NumPassing
		total += summary.NumTotal
		if summary.Status == model.Failure || summary.Status == model.FailureEarly {
			failedGroups++
		}
	}

	if passing < total {
		return fmt.Errorf("%d of %d checks failed", total-passing, total)
	}

	// A fail-fast group never records the check that sank it, so passing can
	// equal total while the group still ended in failure.
	if failedGroups > 0 {
		return fmt.Errorf("%d of %d groups failed", failedGroups, len(summaries))
	}

	return nil
}
