package tester

import (
	"fmt"
	"time"

	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/value"
)

// VectorOptions is the canonical argument form for CheckVector.
type VectorOptions struct {
	Message  string
	Messages []string
	Site     model.CallSite
}

// CheckVector compares actual and expected positionally over the shorter of
// the two lengths. Trailing elements of the longer vector are silently
// ignored; callers that care about length should check it separately.
func (t *Tester) CheckVector(actual, expected []any, opts VectorOptions) ([]model.Result, error) {
	site := opts.Site
	if site == (model.CallSite{}) {
		site = model.Capture(1)
	}
	group := t.nextGroupID()
	label := t.currentName()
	sig := fmt.Sprintf("CheckVector(actual = %s, expected = %s, message = %q)",
		previewList(actual), previewList(expected), opts.Message)

	n := len(actual)
	if len(expected) < n {
		n = len(expected)
	}

	var results []model.Result
	for i := 0; i < n; i++ {
		start := time.Now()
		message := stepMessage(opts.Message, opts.Messages, i)
		eq, err := value.Equal(actual[i], expected[i], t.GetSetting(ThrowOnAlias))
		if err != nil {
			if t.GetSetting(ThrowOnError) {
				res := model.NewResult(group, label, model.Outcome{
					Actual: actual[i], Expected: expected[i], Passed: false,
					TestIndex: i + 1, Message: message, Site: site, Signature: sig,
				})
				res.Elapsed = time.Since(start)
				t.addResults(results)
				return results, &EngineError{Result: res, Err: err}
			}
			detail := fmt.Sprintf("Test %d Failure\nerror raised: %v on %d", i+1, err, i)
			res := model.NewFailedResult(group, label, i+1, detail)
			res.Elapsed = time.Since(start)
			results = append(results, res)
			continue
		}
		res := model.NewResult(group, label, model.Outcome{
			Actual: actual[i], Expected: expected[i], Passed: eq,
			TestIndex: i + 1, Message: message, Site: site, Signature: sig,
		})
		res.Elapsed = time.Since(start)
		results = append(results, res)
	}
	t.addResults(results)
	return results, nil
}

// EachOptions is the canonical argument form for CheckEach.
type EachOptions struct {
	// Expected follows the same broadcast-last policy as RangeOptions; empty
	// means only error-freedom is checked.
	Expected []any
	Message  string
	Messages []string
	Args     []any
	Site     model.CallSite
}

// CheckEach invokes fn once per element of inputs, with the element as first
// argument, and records one Result per invocation. Failing or panicking
// elements are isolated: the rest of the sweep still runs and the result
// count always equals len(inputs).
func (t *Tester) CheckEach(inputs []any, fn ElementFunc, opts EachOptions) ([]model.Result, error) {
	site := opts.Site
	if site == (model.CallSite{}) {
		site = model.Capture(1)
	}
	group := t.nextGroupID()
	label := t.currentName()
	sig := fmt.Sprintf("CheckEach(inputs = %s, expected = %s, message = %q)",
		previewList(inputs), previewList(opts.Expected), opts.Message)

	var results []model.Result
	for i, input := range inputs {
		start := time.Now()
		res, err := t.eachStep(group, label, site, sig, i, input, fn, opts)
		res.Elapsed = time.Since(start)
		if err != nil {
			t.addResults(results)
			return results, err
		}
		results = append(results, res)
	}
	t.addResults(results)
	return results, nil
}

func (t *Tester) eachStep(group int64, label string, site model.CallSite, sig string,
	i int, input any, fn ElementFunc, opts EachOptions) (model.Result, error) {

	message := stepMessage(opts.Message, opts.Messages, i)
	val, callErr := invokeElement(fn, input, opts.Args)
	if callErr != nil {
		detail := fmt.Sprintf("Test %d Failure\nerror raised: %v on %d", i+1, callErr, i)
		if message != "" {
			detail += " | message: " + message
		}
		return model.NewFailedResult(group, label, i+1, detail), nil
	}

	if len(opts.Expected) == 0 {
		return model.NewResult(group, label, model.Outcome{
			Actual: val, Expected: "(nothing)", Passed: true, TestIndex: i + 1,
			Message: message, Site: site, Signature: sig,
		}), nil
	}

	expected := opts.Expected[broadcastLast(i, len(opts.Expected))]
	eq, err := value.Equal(val, expected, t.GetSetting(ThrowOnAlias))
	if err != nil {
		res := model.NewResult(group, label, model.Outcome{
			Actual: val, Expected: expected, Passed: false, TestIndex: i + 1,
			Message: message, Site: site, Signature: sig,
		})
		if t.GetSetting(ThrowOnError) {
			return res, &EngineError{Result: res, Err: err}
		}
		detail := fmt.Sprintf("Test %d Failure\nerror raised: %v on %d", i+1, err, i)
		return model.NewFailedResult(group, label, i+1, detail), nil
	}

	return model.NewResult(group, label, model.Outcome{
		Actual: val, Expected: expected, Passed: eq, TestIndex: i + 1,
		Message: message, Site: site, Signature: sig,
	}), nil
}
