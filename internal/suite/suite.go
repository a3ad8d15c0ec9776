// Package suite loads declarative check suites from YAML files and executes
// them through the engine. Suites cover the value-driven checks (point, bool,
// float, vector); callable-driven checks stay in code.
package suite

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/polyllc/gotester/pkg/tester"
)

// Definition is one suite file.
type Definition struct {
	Name     string          `yaml:"name"`
	Settings map[string]bool `yaml:"settings"`
	Groups   []GroupDef      `yaml:"groups"`
}

// GroupDef is one named run within a suite.
type GroupDef struct {
	Name   string     `yaml:"name"`
	Checks []CheckDef `yaml:"checks"`
}

// CheckDef is one declarative check. Kind selects the engine operation and
// which of the remaining fields apply.
type CheckDef struct {
	Kind     string `yaml:"kind"` // point, true, false, float, vector
	Actual   any    `yaml:"actual"`
	Expected any    `yaml:"expected"`
	Message  string `yaml:"message"`

	// Float bounds: either a symmetric range or explicit lower/upper.
	Range float64 `yaml:"range"`
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper"`

	// Vector payloads.
	ActualList   []any `yaml:"actualList"`
	ExpectedList []any `yaml:"expectedList"`
}

// Load reads and validates a suite file.
func Load(path string) (Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("failed to read suite file: %w", err)
	}

	return Parse(raw)
}

// Parse decodes and validates suite YAML.
func Parse(raw []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return Definition{}, fmt.Errorf("failed to decode suite: %w", err)
	}

	if err := def.validate(); err != nil {
		return Definition{}, err
	}

	return def, nil
}

func (d Definition) validate() error {
	if d.Name == "" {
		return fmt.Errorf("suite has no name")
	}

	for name := range d.Settings {
		if _, err := tester.ParseSetting(name); err != nil {
			return fmt.Errorf("suite %q: %w", d.Name, err)
		}
	}

	for _, group := range d.Groups {
		if group.Name == "" {
			return fmt.Errorf("suite %q: group has no name", d.Name)
		}

		for i, check := range group.Checks {
			if err := check.validate(); err != nil {
				return fmt.Errorf("suite %q, group %q, check %d: %w", d.Name, group.Name, i+1, err)
			}
		}
	}

	return nil
}

func (c CheckDef) validate() error {
	switch c.Kind {
	case "point", "float", "vector":
		return nil
	case "true", "false":
		if _, ok := c.Actual.(bool); !ok {
			return fmt.Errorf("kind %q needs a boolean actual", c.Kind)
		}

		return nil
	case "":
		return fmt.Errorf("check has no kind")
	}

	return fmt.Errorf("unknown check kind %q", c.Kind)
}

// Execute applies the suite's settings to t and runs every group as a named
// run. Policy escalations from ThrowOn* settings surface as the group's
// FailureEarly state, exactly like their in-code counterparts.
func (d Definition) Execute(t *tester.Tester) error {
	for name, enabled := range d.Settings {
		setting, err := tester.ParseSetting(name)
		if err != nil {
			return err
		}

		t.UpdateSetting(setting, enabled)
	}

	for _, group := range d.Groups {
		checks := group.Checks
		t.Run(group.Name, func(sub *tester.Tester) error {
			return runChecks(sub, checks)
		})
	}

	return nil
}

func runChecks(sub *tester.Tester, checks []CheckDef) error {
	for _, check := range checks {
		if err := runCheck(sub, check); err != nil {
			return err
		}
	}

	return nil
}

func runCheck(sub *tester.Tester, check CheckDef) error {
	switch check.Kind {
	case "point":
		_, err := sub.Check(check.Actual, check.Expected, check.Message)
		return err
	case "true":
		_, err := sub.CheckTrue(check.Actual.(bool), check.Message)
		return err
	case "false":
		_, err := sub.CheckFalse(check.Actual.(bool), check.Message)
		return err
	case "float":
		bounds := tester.Bounds{Lower: check.Lower, Upper: check.Upper}
		if check.Range != 0 {
			bounds = tester.Within(check.Range)
		}

		sub.CheckFloat(check.Actual, check.Expected, bounds, check.Message)

		return nil
	case "vector":
		_, err := sub.CheckVector(check.ActualList, check.ExpectedList, tester.VectorOptions{
			Message: check.Message,
		})

		return err
	}

	return fmt.Errorf("unknown check kind %q", check.Kind)
}
