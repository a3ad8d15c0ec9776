package model

// StringDiff is the positional difference between two text values, computed
// once when a text comparison fails. Mismatched and surplus positions are
// reported so a renderer can highlight them; the model itself stays plain.
type StringDiff struct {
	Actual   string
	Expected string
	// Mismatched holds indexes where both strings have a byte and they differ.
	Mismatched []int
	// SurplusFrom is the index where one string continues past the other,
	// or -1 when both have equal length.
	SurplusFrom int
	// Diffs is the total difference count, surplus bytes included.
	Diffs int
}

// Diff compares actual against expected byte-wise.
func Diff(actual, expected string) StringDiff {
	d := StringDiff{Actual: actual, Expected: expected, SurplusFrom: -1}
	shorter := len(actual)
	if len(expected) < shorter {
		shorter = len(expected)
	}
	for i := 0; i < shorter; i++ {
		if actual[i] != expected[i] {
			d.Mismatched = append(d.Mismatched, i)
			d.Diffs++
		}
	}
	if len(actual) != len(expected) {
		d.SurplusFrom = shorter
		longer := len(actual)
		if len(expected) > longer {
			longer = len(expected)
		}
		d.Diffs += longer - shorter
	}
	return d
}
