package tester

import (
	"fmt"

	"github.com/polyllc/gotester/pkg/model"
)

// FailFastError is returned by a failing point check while ThrowOnFail is
// enabled. The owning group has already been marked FailureEarly.
type FailFastError struct {
	Result model.Result
}

func (e *FailFastError) Error() string {
	return fmt.Sprintf("check failed while fail-fast was enabled\n%s", e.Result.Render(false))
}

// EngineError is returned when the engine itself erred while evaluating a
// check and a ThrowOn* setting escalated it instead of downgrading it to a
// failing result. It carries the offending result's rendered message.
type EngineError struct {
	Result model.Result
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error: %v\n%s", e.Err, e.Result.Render(false))
}

func (e *EngineError) Unwrap() error { return e.Err }
