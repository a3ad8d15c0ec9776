package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/tester"
)

var demoParallelFlag int

// demoCmd represents the demo command.
var demoCmd = newDemoCmd()

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the built-in showcase checks",
		Long: `Run a set of built-in named runs that exercise every check kind,
including a deliberately failing group, then print and save the report.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			configureLogger("", viper.GetBool(logVerboseKey))

			filter, err := reportFilter()
			if err != nil {
				return err
			}

			t := tester.New()
			t.SetOutput(cmd.OutOrStdout())
			t.UpdateSetting(tester.PrintSync, viper.GetBool(syncConfigKey))

			runDemoGroups(t, viper.GetInt(runParallelConfigKey))

			if err := ui.DisplayReport(t.Render(viper.GetBool(collapseConfigKey), filter)); err != nil {
				return err
			}

			if err := ui.DisplaySummary(summaryRows(t.Summaries())); err != nil {
				return err
			}

			return saveRun(t)
		},
	}

	configureDemoFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

func configureDemoFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&demoParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of named runs to execute in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(runParallelFlagName), runParallelConfigKey)
}

// runDemoGroups executes the showcase runs, up to workers at a time. Named
// runs merge into the shared tester under its own locking, so the only
// coordination needed here is the worker limit.
func runDemoGroups(t *tester.Tester, workers int) {
	if workers < 1 {
		workers = 1
	}

	groups := []struct {
		name string
		fn   func(sub *tester.Tester) error
	}{
		{"arithmetic", demoArithmetic},
		{"strings", demoStrings},
		{"vectors", demoVectors},
		{"errors", demoErrors},
		{"failures", demoFailures},
	}

	var g errgroup.Group
	g.SetLimit(workers)

	for _, group := range groups {
		group := group
		g.Go(func() error {
			t.Run(group.name, group.fn)
			return nil
		})
	}

	_ = g.Wait()
}

func demoArithmetic(sub *tester.Tester) error {
	if _, err := sub.Check(2+2, 4, "integers add"); err != nil {
		return err
	}

	if _, err := sub.CheckTrue(10 > 3, "ordering holds"); err != nil {
		return err
	}

	sub.CheckFloat(0.1+0.2, 0.3, tester.Within(1e-9), "float sum within bounds")

	_, err := sub.CheckRange(1, 5, func(i int64, _ ...any) (any, error) {
		return i * i, nil
	}, tester.RangeOptions{
		Expected: []any{int64(1), int64(4), int64(9), int64(16), int64(25)},
		Message:  "squares",
	})

	return err
}

func demoStrings(sub *tester.Tester) error {
	if _, err := sub.Check("hi mom", "hi mom", "greeting"); err != nil {
		return err
	}

	if _, err := sub.Check([]byte("abc"), "abc", "byte text compares as text"); err != nil {
		return err
	}

	sub.Note("string checks complete", model.KindLog)

	return nil
}

func demoVectors(sub *tester.Tester) error {
	if _, err := sub.CheckVector(
		[]any{1, 2, 3},
		[]any{1, 2, 3},
		tester.VectorOptions{Message: "positional equality"},
	); err != nil {
		return err
	}

	_, err := sub.CheckEach(
		[]any{1, 2, 3},
		func(input any, _ ...any) (any, error) {
			return input.(int) * 2, nil
		},
		tester.EachOptions{
			Expected: []any{2, 4, 6},
			Message:  "doubling",
		},
	)

	return err
}

func demoErrors(sub *tester.Tester) error {
	sub.CheckError("boom", func(_ ...any) (any, error) {
		return nil, errors.New("boom")
	})

	// No expected values: each step passes as long as the callable
	// returns without an error.
	_, err := sub.CheckRange(0, 3, func(i int64, _ ...any) (any, error) {
		if i > 10 {
			return nil, fmt.Errorf("unreachable step %d", i)
		}

		return i, nil
	}, tester.RangeOptions{Message: "no surprises"})

	return err
}

func demoFailures(sub *tester.Tester) error {
	sub.Note("this run fails on purpose", model.KindWarning)

	if _, err := sub.Check(1, 2, "deliberate mismatch"); err != nil {
		return err
	}

	sub.CheckFloat(2.3, 2.5, tester.Within(0.1), "outside bounds")

	return nil
}
