// Package value decides how two arbitrary values are compared and rendered.
//
// Both operations are capability dispatched: a fixed, documented chain of
// strategies is probed in order and the first applicable one wins. The chain
// is stable per type pair, so a comparison that resolved to the textual
// fallback yesterday resolves to it tomorrow.
package value

import (
	"fmt"
	"reflect"
)

// Equaler is implemented by types that define their own equality against
// another, possibly differently typed, value.
type Equaler interface {
	Equals(other any) bool
}

// AliasError reports a comparison that fell through to the textual fallback
// and matched there. Two unrelated types with no defined equality that happen
// to render identically are usually being compared by coincidence, which the
// caller opted to forbid.
type AliasError struct {
	Actual   string
	Expected string
}

func (e *AliasError) Error() string {
	return fmt.Sprintf(
		"actual and expected render identically (%q) but share no defined equality; "+
			"forbidden while the alias check is enabled", e.Actual)
}

// Equal reports whether actual and expected are equal.
//
// Dispatch order:
//  1. both values are text-convertible: compare their text forms
//  2. both values are numeric: compare as float64
//  3. same comparable dynamic type: native ==
//  4. actual implements Equaler: actual.Equals(expected)
//  5. fallback: compare Text projections; a match here returns an *AliasError
//     instead when strictAlias is set
//
// A panic raised by a probed strategy (a user type's Equals or String) is
// returned as an error, never propagated.
func Equal(actual, expected any, strictAlias bool) (eq bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			eq = false
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	if at, ok := TextLike(actual); ok {
		if et, ok := TextLike(expected); ok {
			return at == et, nil
		}
	}
	if af, ok := Number(actual); ok {
		if ef, ok := Number(expected); ok {
			return af == ef, nil
		}
	}
	if ta := reflect.TypeOf(actual); ta != nil && ta == reflect.TypeOf(expected) && ta.Comparable() {
		return actual == expected, nil
	}
	if eq, ok := actual.(Equaler); ok {
		return eq.Equals(expected), nil
	}

	at, et := Text(actual), Text(expected)
	if at == et {
		if strictAlias {
			return false, &AliasError{Actual: at, Expected: et}
		}
		return true, nil
	}
	return false, nil
}

// Text renders any single value as text. Rendering never fails: values with
// no better strategy fall back to a non-semantic identity tag that callers
// must not rely on for equality, and a panicking String or Error method
// degrades to a panic tag.
//
// Dispatch order: bool literal, string forms, fmt.Stringer, error, anything
// fmt can format, pointer identity tag.
func Text(v any) (s string) {
	defer func() {
		if p := recover(); p != nil {
			s = fmt.Sprintf("(panic: %v)", p)
		}
	}()
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case bool:
		if x {
			return "true"
		}
		return "false"
	case string:
		return x
	case []byte:
		return string(x)
	case []rune:
		return string(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Ptr || rv.Kind() == reflect.UnsafePointer {
		return fmt.Sprintf("*%p", v)
	}
	return fmt.Sprintf("%v", v)
}

// Number projects v to a float64 when its dynamic type is numeric.
func Number(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int8:
		return float64(x), true
	case int16:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case uint:
		return float64(x), true
	case uint8:
		return float64(x), true
	case uint16:
		return float64(x), true
	case uint32:
		return float64(x), true
	case uint64:
		return float64(x), true
	case uintptr:
		return float64(x), true
	case float32:
		return float64(x), true
	case float64:
		return x, true
	}
	return 0, false
}

// TypeName returns the dynamic type name of v.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}

// TextLike reports whether v is text-convertible and, if so, its text form.
// Deliberately narrower than Text: only genuine text carriers qualify, so a
// struct that merely formats well does not take the string-comparison path.
func TextLike(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case []byte:
		return string(x), true
	case []rune:
		return string(x), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}
