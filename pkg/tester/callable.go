package tester

import "fmt"

// Callable is an arbitrary function under test taking free-form arguments.
type Callable func(args ...any) (any, error)

// RangeFunc receives the current range index as its first argument.
type RangeFunc func(i int64, args ...any) (any, error)

// ElementFunc receives one input vector element as its first argument.
type ElementFunc func(input any, args ...any) (any, error)

// invoke runs fn, converting a panic into an error so a misbehaving callable
// never aborts the surrounding sweep.
func invoke(fn Callable, args []any) (val any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(args...)
}

func invokeRange(fn RangeFunc, i int64, args []any) (val any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(i, args...)
}

func invokeElement(fn ElementFunc, input any, args []any) (val any, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return fn(input, args...)
}
