package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/polyllc/gotester/pkg/value"
)

// Error is a secondary diagnostic attached to a Result or inserted into a
// group's stream, carrying a numeric code.
type Error struct {
	Code    int
	Text    string
	Group   int64
	Label   string
}

// Render implements Printable.
func (e Error) Render(_ bool) string {
	return fmt.Sprintf("(Error code %d) %s", e.Code, e.Text)
}

// Passing implements Printable. Detached errors are annotations and never
// count against a group.
func (e Error) Passing() bool { return true }

// GroupID implements Printable.
func (e Error) GroupID() int64 { return e.Group }

// GroupLabel implements Printable.
func (e Error) GroupLabel() string { return e.Label }

func (e *Error) renumber(offset int64) { e.Group += offset }

// MarshalJSON implements json.Marshaler with the frozen report field names.
func (e Error) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string `json:"type"`
		Code       int    `json:"code"`
		Message    string `json:"message"`
		GroupID    int64  `json:"groupId"`
		GroupLabel string `json:"groupLabel"`
	}{"error", e.Code, e.Render(false), e.Group, e.Label})
}

// Outcome carries everything a Result's diagnostic block is composed from.
// Composition is pure: the same Outcome always yields the same text.
type Outcome struct {
	Actual    any
	Expected  any
	Passed    bool
	TestIndex int
	Message   string
	Site      CallSite
	Signature string // originating-call signature, e.g. Check(int actual = 4, ...)
}

// Result records one executed check.
type Result struct {
	Group     int64
	Label     string
	TestIndex int
	Passed    bool
	Elapsed   time.Duration
	Errors    []Error

	// Diagnostics captured at construction.
	Detail       string // composed diagnostic block
	Actual       string
	Expected     string
	ActualType   string
	ExpectedType string
	CalledAt     string
	CalledIn     string
	CalledAs     string
}

// NewResult builds a Result for the given group from an Outcome, composing
// the canonical diagnostic block.
func NewResult(group int64, label string, o Outcome) Result {
	site := o.Site.orUnspecified()
	sig := o.Signature
	if sig == "" {
		sig = notSpecified
	}
	r := Result{
		Group:        group,
		Label:        label,
		TestIndex:    o.TestIndex,
		Passed:       o.Passed,
		Actual:       value.Text(o.Actual),
		Expected:     value.Text(o.Expected),
		ActualType:   value.TypeName(o.Actual),
		ExpectedType: value.TypeName(o.Expected),
		CalledAt:     site.Location,
		CalledIn:     site.Function,
		CalledAs:     sig,
	}
	r.Detail = r.composeDetail(o.Message)
	return r
}

// NewFailedResult builds a failing Result whose diagnostic block is the given
// free text, used when a check never reached a comparison (a callable or the
// engine itself erred).
func NewFailedResult(group int64, label string, testIndex int, detail string) Result {
	return Result{
		Group:        group,
		Label:        label,
		TestIndex:    testIndex,
		Passed:       false,
		Detail:       detail,
		Actual:       "???",
		Expected:     "???",
		ActualType:   notSpecified,
		ExpectedType: notSpecified,
		CalledAt:     notSpecified,
		CalledIn:     notSpecified,
		CalledAs:     notSpecified,
	}
}

func (r *Result) composeDetail(message string) string {
	verdict := "Failure"
	if r.Passed {
		verdict = "Success"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Test %d %s\n", r.TestIndex, verdict)
	fmt.Fprintf(&b, "|\twas: %s \texpected: %s\n", r.Actual, r.Expected)
	fmt.Fprintf(&b, "|\twas type: %s\texpected type: %s\n", r.ActualType, r.ExpectedType)
	fmt.Fprintf(&b, "|\tat: %s\n", r.CalledAt)
	fmt.Fprintf(&b, "|\tcalled in: %s\n", r.CalledIn)
	fmt.Fprintf(&b, "|\tas: %s", r.CalledAs)
	if message != "" {
		fmt.Fprintf(&b, "\n|\tmessage: %s", message)
	}
	b.WriteString("\n|")
	return b.String()
}

// AttachError appends a secondary diagnostic to the result.
func (r *Result) AttachError(e Error) {
	e.Group = r.Group
	e.Label = r.Label
	r.Errors = append(r.Errors, e)
}

// Clone returns an independent copy that does not alias engine-owned state.
func (r Result) Clone() Result {
	c := r
	c.Errors = append([]Error(nil), r.Errors...)
	return c
}

// Render implements Printable.
func (r *Result) Render(collapse bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Group %d | Test %d | Result: %t in %f sec",
		r.Group, r.TestIndex, r.Passed, r.Elapsed.Seconds())
	if !collapse {
		fmt.Fprintf(&b, " | %s", r.Detail)
	}
	for i := range r.Errors {
		fmt.Fprintf(&b, " | %s", r.Errors[i].Render(collapse))
	}
	return b.String()
}

// Passing implements Printable.
func (r *Result) Passing() bool { return r.Passed }

// GroupID implements Printable.
func (r *Result) GroupID() int64 { return r.Group }

// GroupLabel implements Printable.
func (r *Result) GroupLabel() string { return r.Label }

func (r *Result) renumber(offset int64) {
	r.Group += offset
	for i := range r.Errors {
		r.Errors[i].Group += offset
	}
}

// MarshalJSON implements json.Marshaler with the frozen report field names.
func (r *Result) MarshalJSON() ([]byte, error) {
	errs := r.Errors
	if errs == nil {
		errs = []Error{}
	}
	return json.Marshal(struct {
		Type         string  `json:"type"`
		TestIndex    int     `json:"testIndex"`
		Passed       bool    `json:"passed"`
		Elapsed      float64 `json:"elapsed"`
		Message      string  `json:"message"`
		Errors       []Error `json:"errors"`
		GroupID      int64   `json:"groupId"`
		GroupLabel   string  `json:"groupLabel"`
		Actual       string  `json:"actual"`
		Expected     string  `json:"expected"`
		ActualType   string  `json:"actualType"`
		ExpectedType string  `json:"expectedType"`
		CalledAt     string  `json:"calledAt"`
		CalledIn     string  `json:"calledIn"`
		CalledAs     string  `json:"calledAs"`
	}{
		"result", r.TestIndex, r.Passed, r.Elapsed.Seconds(), r.Detail, errs,
		r.Group, r.Label, r.Actual, r.Expected, r.ActualType, r.ExpectedType,
		r.CalledAt, r.CalledIn, r.CalledAs,
	})
}
