package tester

import (
	"bytes"
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/polyllc/gotester/pkg/model"
)

type jsonEnvelope struct {
	TestResults []jsonGroup `json:"testResults"`
}

type jsonGroup struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	NumPassing int    `json:"numPassing"`
	NumTotal   int    `json:"numTotal"`
	Printables []struct {
		Type    string `json:"type"`
		GroupID int64  `json:"groupId"`
		Passed  bool   `json:"passed"`
	} `json:"printables"`
}

func decodeJSON(t *testing.T, tr *Tester) jsonEnvelope {
	t.Helper()

	raw, err := tr.JSON()
	require.NoError(t, err)

	var env jsonEnvelope
	require.NoError(t, json.Unmarshal(raw, &env))

	return env
}

func TestNew_StartsWithDefaultGroup(t *testing.T) {
	tr := New()

	summaries := tr.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, "(default)", summaries[0].Name)
	assert.Equal(t, model.NotFinished, summaries[0].Status)
	assert.Zero(t, summaries[0].NumTotal)
}

func TestSettings_RoundTrip(t *testing.T) {
	tr := New()

	assert.False(t, tr.GetSetting(ThrowOnFail))
	tr.UpdateSetting(ThrowOnFail, true)
	assert.True(t, tr.GetSetting(ThrowOnFail))
	tr.UpdateSetting(ThrowOnFail, false)
	assert.False(t, tr.GetSetting(ThrowOnFail))
}

func TestNote_NeverMovesCounters(t *testing.T) {
	tr := New()
	tr.Note("just saying", model.KindLog)

	summaries := tr.Summaries()
	assert.Zero(t, summaries[0].NumTotal)
	assert.Contains(t, tr.Render(false, model.All), "|- LOG: just saying")
}

func TestRun_MergesAndRenumbers(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	_, err := tr.Check(1, 1, "parent check")
	require.NoError(t, err)

	tr.Run("sub", func(sub *Tester) error {
		if _, err := sub.Check(2, 2, "first"); err != nil {
			return err
		}
		_, err := sub.Check(3, 4, "second")
		return err
	})

	summaries := tr.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "sub", summaries[0].Name)
	assert.Equal(t, model.Failure, summaries[0].Status)
	assert.Equal(t, 1, summaries[0].NumPassing)
	assert.Equal(t, 2, summaries[0].NumTotal)
	assert.Equal(t, "(default)", summaries[1].Name)

	// The parent took id 1, so the merged sub checks renumber to 2 and 3.
	env := decodeJSON(t, tr)
	require.Len(t, env.TestResults, 2)
	assert.Equal(t, "(default)", env.TestResults[0].Name)

	sub := env.TestResults[1]
	require.Len(t, sub.Printables, 2)
	assert.Equal(t, int64(2), sub.Printables[0].GroupID)
	assert.Equal(t, int64(3), sub.Printables[1].GroupID)
}

func TestRun_PanicEndsGroupFailureEarly(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	tr.Run("explodes", func(sub *Tester) error {
		_, _ = sub.Check(1, 1, "before the panic")
		panic("kaboom")
	})

	summaries := tr.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, model.FailureEarly, summaries[0].Status)
	assert.Equal(t, 1, summaries[0].NumTotal)

	out := tr.Render(false, model.All)
	assert.Contains(t, out, "FAIL: Test ended prematurely: panic: kaboom")
	assert.Contains(t, out, "Status: FAILURE EARLY")
}

func TestRun_ErrorEndsGroupFailureEarly(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	tr.UpdateSetting(ThrowOnFail, true)
	tr.Run("strict", func(sub *Tester) error {
		_, err := sub.Check(1, 2, "must match")
		return err
	})

	summaries := tr.Summaries()
	assert.Equal(t, model.FailureEarly, summaries[0].Status)
	assert.Zero(t, summaries[0].NumTotal)
}

func TestRun_SubInheritsSettings(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)
	tr.UpdateSetting(ThrowOnAlias, true)

	tr.Run("inherits", func(sub *Tester) error {
		assert.True(t, sub.GetSetting(ThrowOnAlias))
		return nil
	})
}

func TestRender_AppliesFilter(t *testing.T) {
	tr := New()
	_, err := tr.Check(1, 1, "pass")
	require.NoError(t, err)
	_, err = tr.Check(1, 2, "fail")
	require.NoError(t, err)

	failing := tr.Render(true, model.FailingOnly)
	assert.NotContains(t, failing, "Result: true")
	assert.Contains(t, failing, "Result: false")
}

func TestWriteReport(t *testing.T) {
	tr := New()
	_, err := tr.Check(1, 1, "")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tr.WriteReport(&buf, true, model.All))
	assert.Contains(t, buf.String(), "(default) | 1/1 passed")
}

func TestJSON_CurrentGroupComesFirst(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)
	tr.Run("finished", func(sub *Tester) error {
		_, err := sub.Check(1, 1, "")
		return err
	})
	_, err := tr.Check(2, 2, "")
	require.NoError(t, err)

	env := decodeJSON(t, tr)
	require.Len(t, env.TestResults, 2)
	assert.Equal(t, "(default)", env.TestResults[0].Name)
	assert.Equal(t, "DID NOT FINISH", env.TestResults[0].Status)
	assert.Equal(t, "finished", env.TestResults[1].Name)
	assert.Equal(t, "SUCCESS", env.TestResults[1].Status)
}

func TestPrintSync_RendersOnAppend(t *testing.T) {
	tr := New()
	var buf bytes.Buffer
	tr.SetOutput(&buf)
	tr.UpdateSetting(PrintSync, true)

	_, err := tr.Check(5, 5, "live")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Result: true")

	tr.Note("hello", model.KindLog)
	assert.Contains(t, buf.String(), "LOG: hello")
}

func TestConcurrentChecks_CountersStayConsistent(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	const workers = 8
	const perWorker = 50

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := 0; i < perWorker; i++ {
				if _, err := tr.Check(i, i, "hammer"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	summaries := tr.Summaries()
	require.Len(t, summaries, 1)
	assert.Equal(t, workers*perWorker, summaries[0].NumTotal)
	assert.Equal(t, workers*perWorker, summaries[0].NumPassing)
}

func TestConcurrentRuns_AllGroupsMerge(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	var g errgroup.Group
	for w := 0; w < 4; w++ {
		name := string(rune('a' + w))
		g.Go(func() error {
			tr.Run(name, func(sub *Tester) error {
				_, err := sub.Check(1, 1, "")
				return err
			})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	summaries := tr.Summaries()
	require.Len(t, summaries, 5) // four runs plus the default group

	seen := map[int64]bool{}
	env := decodeJSON(t, tr)
	for _, group := range env.TestResults {
		for _, p := range group.Printables {
			assert.False(t, seen[p.GroupID], "group id %d reused", p.GroupID)
			seen[p.GroupID] = true
		}
	}
}
