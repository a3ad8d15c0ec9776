// Package cmd provides the root command and CLI setup for gotester.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/polyllc/gotester/internal/adapter"
	"github.com/polyllc/gotester/internal/controller"
	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/tester"
)

var reportStore adapter.ReportStore
var ui controller.UI

// reportsOutputDirFlag is a root-level flag shared by commands that read/write reports.
var reportsOutputDirFlag string

// collapseFlag hides per-check detail blocks in text reports when set.
var collapseFlag bool

// filterFlag limits text reports to passing or failing entries.
var filterFlag string

// syncFlag makes the engine print each result as it is recorded.
var syncFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	reportStore = adapter.NewReportStore()
}

const rootLongDescription = `Gotester runs declarative and built-in check suites: point checks, float
checks with bounds, range and vector sweeps, and expected-error checks.
Results are grouped into named runs and reported as text or JSON.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = baseRootCmd()

func baseRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gotester",
		Short: "Grouped check runner and reporter",
		Long:  rootLongDescription,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for check reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().BoolVar(&collapseFlag, collapseFlagName, viper.GetBool(collapseConfigKey), "hide per-check detail blocks in text reports")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(collapseFlagName), collapseConfigKey)

	cmd.PersistentFlags().StringVarP(&filterFlag, filterFlagName, "f", viper.GetString(filterConfigKey), "report filter: all, passing or failing")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(filterFlagName), filterConfigKey)

	cmd.PersistentFlags().BoolVar(&syncFlag, syncFlagName, viper.GetBool(syncConfigKey), "print each result as it is recorded")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(syncFlagName), syncConfigKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func reportFilter() (model.Filter, error) {
	return model.ParseFilter(viper.GetString(filterConfigKey))
}

func summaryRows(summaries []tester.GroupSummary) []controller.GroupRow {
	rows := make([]controller.GroupRow, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, controller.GroupRow{
			Name:       summary.Name,
			Status:     summary.Status.String(),
			NumPassing: summary.NumPassing,
			NumTotal:   summary.NumTotal,
			Elapsed:    summary.Elapsed.Seconds(),
		})
	}

	return rows
}

func storedRows(report adapter.StoredReport) []controller.GroupRow {
	rows := make([]controller.GroupRow, 0, len(report.TestResults))
	for _, group := range report.TestResults {
		rows = append(rows, controller.GroupRow{
			Name:       group.Name,
			Status:     group.Status,
			NumPassing: group.NumPassing,
			NumTotal:   group.NumTotal,
			Elapsed:    group.Elapsed,
		})
	}

	return rows
}
