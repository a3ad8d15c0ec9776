package tester

import (
	"fmt"
	"time"

	"github.com/polyllc/gotester/pkg/model"
	"github.com/polyllc/gotester/pkg/value"
)

// Bounds is the accepted imprecision around an expected value.
type Bounds struct {
	Lower float64
	Upper float64
}

// Within builds symmetric bounds of r on both sides.
func Within(r float64) Bounds {
	return Bounds{Lower: r, Upper: r}
}

// CheckFloat records whether actual lies within
// [expected-bounds.Lower, expected+bounds.Upper], or is exactly equal to
// expected. Non-numeric values skip the range test and rely on the exact
// comparison alone.
func (t *Tester) CheckFloat(actual, expected any, bounds Bounds, message string) model.Result {
	start := time.Now()
	group := t.nextGroupID()
	label := t.currentName()
	site := model.Capture(1)
	sig := fmt.Sprintf("CheckFloat(%s actual = %s, %s expected = %s, lower = %v, upper = %v, message = %q)",
		value.TypeName(actual), value.Text(actual),
		value.TypeName(expected), value.Text(expected),
		bounds.Lower, bounds.Upper, message)

	passed := false
	if a, ok := value.Number(actual); ok {
		if e, ok := value.Number(expected); ok {
			passed = e-bounds.Lower <= a && a <= e+bounds.Upper
		}
	}
	if !passed {
		if eq, err := value.Equal(actual, expected, false); err == nil && eq {
			passed = true
		}
	}

	res := model.NewResult(group, label, model.Outcome{
		Actual: actual, Expected: expected, Passed: passed, TestIndex: 1,
		Message: message, Site: site, Signature: sig,
	})
	res.Elapsed = time.Since(start)
	t.addResult(res)
	return res
}
