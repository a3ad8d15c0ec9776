package tester

import "fmt"

// Setting is a boolean engine option.
type Setting int

// Recognized settings.
const (
	// ThrowOnFail makes a failing point check mark the current group
	// FailureEarly and return a *FailFastError instead of recording and
	// continuing.
	ThrowOnFail Setting = iota
	// ThrowOnError re-raises errors the engine hits while evaluating a
	// comparison instead of downgrading them to failing results.
	ThrowOnError
	// ThrowOnAlias fails comparisons that only matched through the textual
	// fallback (see value.AliasError).
	ThrowOnAlias
	// PrintSync renders each result and message immediately on append, in
	// addition to the final report.
	PrintSync
)

var settingNames = map[string]Setting{
	"throw_on_fail":  ThrowOnFail,
	"throw_on_error": ThrowOnError,
	"throw_on_alias": ThrowOnAlias,
	"print_sync":     PrintSync,
}

func (s Setting) String() string {
	for name, setting := range settingNames {
		if setting == s {
			return name
		}
	}
	return fmt.Sprintf("setting(%d)", int(s))
}

// ParseSetting maps a configuration key to its Setting.
func ParseSetting(name string) (Setting, error) {
	if s, ok := settingNames[name]; ok {
		return s, nil
	}
	return 0, fmt.Errorf("unknown setting %q", name)
}
