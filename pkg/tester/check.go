package tester

import (
	"errors"
	"fmt"
	"time"

	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/value"
)

// Check compares actual against expected and records one Result in the
// current group. The returned Result is an independent copy.
//
// The error is nil unless a ThrowOn* setting escalated the outcome: a
// *FailFastError when ThrowOnFail caught a failing check, or an *EngineError
// when ThrowOnError or ThrowOnAlias surfaced a comparison problem.
func (t *Tester) Check(actual, expected any, message string) (model.Result, error) {
	return t.CheckAt(model.Capture(1), actual, expected, message)
}

// CheckTrue records whether actual is true.
func (t *Tester) CheckTrue(actual bool, message string) (model.Result, error) {
	return t.CheckAt(model.Capture(1), actual, true, message)
}

// CheckFalse records whether actual is false.
func (t *Tester) CheckFalse(actual bool, message string) (model.Result, error) {
	return t.CheckAt(model.Capture(1), actual, false, message)
}

// CheckAt is Check with a caller-supplied call-site descriptor.
func (t *Tester) CheckAt(site model.CallSite, actual, expected any, message string) (model.Result, error) {
	start := time.Now()
	group := t.nextGroupID()
	label := t.currentName()
	sig := fmt.Sprintf("Check(%s actual = %s, %s expected = %s, message = %q)",
		value.TypeName(actual), value.Text(actual),
		value.TypeName(expected), value.Text(expected), message)

	eq, err := value.Equal(actual, expected, t.GetSetting(ThrowOnAlias))
	if err != nil {
		res := model.NewResult(group, label, model.Outcome{
			Actual: actual, Expected: expected, Passed: false, TestIndex: 1,
			Message: message, Site: site, Signature: sig,
		})
		res.Elapsed = time.Since(start)
		// Alias misuse always escalates; other comparison failures, such as a
		// panicking equality strategy, only under ThrowOnError.
		var alias *value.AliasError
		if t.GetSetting(ThrowOnError) || errors.As(err, &alias) {
			return res, &EngineError{Result: res, Err: err}
		}
		detail := fmt.Sprintf("Test 1\nerror raised: %v", err)
		if message != "" {
			detail += " | message: " + message
		}
		down := model.NewFailedResult(group, label, 1, detail)
		down.Elapsed = res.Elapsed
		t.addResult(down)
		return down, nil
	}

	res := model.NewResult(group, label, model.Outcome{
		Actual: actual, Expected: expected, Passed: eq, TestIndex: 1,
		Message: message, Site: site, Signature: sig,
	})
	res.Elapsed = time.Since(start)

	if !eq {
		attachFailureDiagnostics(&res, actual, expected)
	}

	if !eq && t.GetSetting(ThrowOnFail) {
		t.markFailureEarly()
		return res, &FailFastError{Result: res}
	}

	t.addResult(res)
	return res, nil
}

// attachFailureDiagnostics adds secondary diagnostics to a failed comparison:
// an identity note when both values render identically anyway, and a byte
// diff summary when both sides are text.
func attachFailureDiagnostics(res *model.Result, actual, expected any) {
	if res.Actual == res.Expected {
		res.AttachError(model.Error{
			Code: 1,
			Text: "values render identically; the comparison may be resolving by identity",
		})
	}
	at, aok := value.TextLike(actual)
	et, eok := value.TextLike(expected)
	if aok && eok {
		d := model.Diff(at, et)
		res.AttachError(model.Error{
			Code: 2,
			Text: fmt.Sprintf("string compare | actual size: %d, expected size: %d | diffs: %d",
				len(d.Actual), len(d.Expected), d.Diffs),
		})
	}
}
