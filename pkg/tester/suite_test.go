package tester

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/polyllc/gotester/pkg/model"
)

type mathSuite struct {
	setupCalls int
}

func (s *mathSuite) Name() string { return "math suite" }

func (s *mathSuite) Setup() { s.setupCalls++ }

func (s *mathSuite) Run(t *Tester) error {
	if _, err := t.Check(2*3, 6, "product"); err != nil {
		return err
	}
	_, err := t.Check(2+3, 5, "sum")
	return err
}

type brokenSuite struct{}

func (brokenSuite) Name() string { return "broken" }

func (brokenSuite) Run(_ *Tester) error { panic("setup data missing") }

func TestRunSuite_RecordsUnderSuiteName(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	s := &mathSuite{}
	tr.RunSuite(s)

	assert.Equal(t, 1, s.setupCalls)

	summaries := tr.Summaries()
	require.Len(t, summaries, 2)
	assert.Equal(t, "math suite", summaries[0].Name)
	assert.Equal(t, model.Success, summaries[0].Status)
	assert.Equal(t, 2, summaries[0].NumTotal)
}

func TestRunSuite_PanicEndsFailureEarly(t *testing.T) {
	tr := New()
	tr.SetOutput(io.Discard)

	tr.RunSuite(brokenSuite{})

	summaries := tr.Summaries()
	assert.Equal(t, model.FailureEarly, summaries[0].Status)
}

func TestParseSetting(t *testing.T) {
	for name, want := range map[string]Setting{
		"throw_on_fail":  ThrowOnFail,
		"throw_on_error": ThrowOnError,
		"throw_on_alias": ThrowOnAlias,
		"print_sync":     PrintSync,
	} {
		got, err := ParseSetting(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		assert.Equal(t, name, got.String())
	}

	_, err := ParseSetting("warp_speed")
	assert.Error(t, err)
}
