package model

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestDiff_EqualStrings(t *testing.T) {
	d := Diff("same", "same")

	assert.Empty(t, d.Mismatched)
	assert.Equal(t, -1, d.SurplusFrom)
	assert.Zero(t, d.Diffs)
}

func TestDiff_MismatchedBytes(t *testing.T) {
	got := Diff("abcd", "axcy")
	want := StringDiff{
		Actual:      "abcd",
		Expected:    "axcy",
		Mismatched:  []int{1, 3},
		SurplusFrom: -1,
		Diffs:       2,
	}

	assert.Empty(t, cmp.Diff(want, got))
}

func TestDiff_SurplusCountsTowardTotal(t *testing.T) {
	d := Diff("abc", "abcdef")

	assert.Empty(t, d.Mismatched)
	assert.Equal(t, 3, d.SurplusFrom)
	assert.Equal(t, 3, d.Diffs)

	d = Diff("abx", "a")
	assert.Empty(t, d.Mismatched)
	assert.Equal(t, 1, d.SurplusFrom)
	assert.Equal(t, 2, d.Diffs)
}
