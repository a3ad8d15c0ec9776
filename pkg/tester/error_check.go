package tester

import (
	"fmt"
	"time"

	"github.com/polyllc/gotester/pkg/model"
)

// CheckError invokes fn and records whether it raised an error (or panic)
// whose text equals want. Matching is by text only: no portable introspection
// of arbitrary error hierarchies is assumed, so the error's type is
// deliberately not distinguished.
func (t *Tester) CheckError(want string, fn Callable, args ...any) model.Result {
	start := time.Now()
	group := t.nextGroupID()
	label := t.currentName()
	site := model.Capture(1)
	sig := fmt.Sprintf("CheckError(want = %q)", want)

	_, err := invoke(fn, args)

	var outcome model.Outcome
	switch {
	case err == nil:
		outcome = model.Outcome{
			Actual: "(no error)", Expected: want, Passed: false,
			Message: "did not raise an error",
		}
	case err.Error() == want:
		outcome = model.Outcome{
			Actual: err.Error(), Expected: want, Passed: true,
			Message: "matched error",
		}
	default:
		outcome = model.Outcome{
			Actual: err.Error(), Expected: want, Passed: false,
			Message: "did not match error",
		}
	}
	outcome.TestIndex = 1
	outcome.Site = site
	outcome.Signature = sig

	res := model.NewResult(group, label, outcome)
	res.Elapsed = time.Since(start)
	t.addResult(res)
	return res
}
