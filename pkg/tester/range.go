package tester

import (
	"fmt"
	"time"

	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/value"
)

// RangeOptions is the canonical argument form for CheckRange. The zero value
// runs an exception-only sweep with no messages.
type RangeOptions struct {
	// Expected holds the value each return is compared against, by sweep
	// index. Once the index passes the end of the list, the last element is
	// reused (broadcast-last). Empty means only "fn returned without error"
	// is checked.
	Expected []any
	// Message is appended to every result.
	Message string
	// Messages[i] is additionally appended to the i-th result.
	Messages []string
	// Args are passed to fn after the index.
	Args []any
	// Site overrides the captured call site.
	Site model.CallSite
}

// CheckRange invokes fn once per integer in [from, to] inclusive and records
// one Result per invocation. A panicking or erroring invocation yields a
// failing Result carrying the error text and index; the sweep continues.
//
// The error is non-nil only when ThrowOnError escalated an engine-side
// comparison problem; the results produced so far are still returned.
func (t *Tester) CheckRange(from, to int64, fn RangeFunc, opts RangeOptions) ([]model.Result, error) {
	site := opts.Site
	if site == (model.CallSite{}) {
		site = model.Capture(1)
	}
	group := t.nextGroupID()
	label := t.currentName()
	sig := fmt.Sprintf("CheckRange(from = %d, to = %d, expected = %s, message = %q)",
		from, to, previewList(opts.Expected), opts.Message)

	var results []model.Result
	index := 0
	for i := from; i <= to; i++ {
		start := time.Now()
		res, err := t.rangeStep(group, label, site, sig, i, index, fn, opts)
		res.Elapsed = time.Since(start)
		if err != nil {
			t.addResults(results)
			return results, err
		}
		results = append(results, res)
		index++
	}
	t.addResults(results)
	return results, nil
}

func (t *Tester) rangeStep(group int64, label string, site model.CallSite, sig string,
	i int64, index int, fn RangeFunc, opts RangeOptions) (model.Result, error) {

	message := stepMessage(opts.Message, opts.Messages, index)
	val, callErr := invokeRange(fn, i, opts.Args)
	if callErr != nil {
		detail := fmt.Sprintf("Test %d Failure\nerror raised: %v on %d", index+1, callErr, i)
		if message != "" {
			detail += " | message: " + message
		}
		return model.NewFailedResult(group, label, index+1, detail), nil
	}

	if len(opts.Expected) == 0 {
		return model.NewResult(group, label, model.Outcome{
			Actual: val, Expected: "(nothing)", Passed: true, TestIndex: index + 1,
			Message: message, Site: site, Signature: sig,
		}), nil
	}

	expected := opts.Expected[broadcastLast(index, len(opts.Expected))]
	eq, err := value.Equal(val, expected, t.GetSetting(ThrowOnAlias))
	if err != nil {
		res := model.NewResult(group, label, model.Outcome{
			Actual: val, Expected: expected, Passed: false, TestIndex: index + 1,
			Message: message, Site: site, Signature: sig,
		})
		if t.GetSetting(ThrowOnError) {
			return res, &EngineError{Result: res, Err: err}
		}
		detail := fmt.Sprintf("Test %d Failure\nerror raised: %v on %d", index+1, err, i)
		return model.NewFailedResult(group, label, index+1, detail), nil
	}

	return model.NewResult(group, label, model.Outcome{
		Actual: val, Expected: expected, Passed: eq, TestIndex: index + 1,
		Message: message, Site: site, Signature: sig,
	}), nil
}

// broadcastLast clamps index to the final element of an expected list.
func broadcastLast(index, size int) int {
	if index < size {
		return index
	}
	return size - 1
}

func stepMessage(message string, messages []string, index int) string {
	if index < len(messages) {
		if message == "" {
			return messages[index]
		}
		return message + ", " + messages[index]
	}
	return message
}

// previewList renders the head of a value list for call signatures.
func previewList(values []any) string {
	const limit = 50
	out := "{"
	for i, v := range values {
		if i > 0 {
			out += ", "
		}
		out += value.Text(v)
		if len(out) > limit {
			return out[:limit] + "...}"
		}
	}
	return out + "}"
}
