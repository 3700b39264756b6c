// Package assertion provides the assertion primitives used by
// test cases. A failed check aborts the running case by panicking
// with a *Failure; the suite runners in package suite recover it
// and hand it back to the caller as a value.
package assertion

import (
	"errors"
	"fmt"
)

// Failure describes one expectation that was not met. It is
// immutable and can only be produced by a failed check.
type Failure struct {
	message string
}

// Error implements the error interface.
func (f *Failure) Error() string { return f.message }

// Message returns the human-readable failure description.
func (f *Failure) Message() string { return f.message }

// Check is the primitive every other assertion funnels through.
// It aborts the current case with a Failure carrying msg when
// condition is false.
func Check(condition bool, msg string) {
	if !condition {
		panic(&Failure{message: msg})
	}
}

// AsFailure reports whether v, typically a value obtained from
// recover, is an assertion failure.
func AsFailure(v any) (*Failure, bool) {
	f, ok := v.(*Failure)
	return f, ok && f != nil
}

// Recovered converts a panic that is not an assertion failure
// into a Failure so that a crashing case is reported like any
// other unmet expectation. Assertion failures pass through
// unchanged.
func Recovered(caseName string, v any, stack []byte) *Failure {
	if f, ok := AsFailure(v); ok {
		return f
	}

	msg := fmt.Sprintf(
		"unexpected panic in test case %s: %v", caseName, v,
	)
	if err, ok := v.(error); ok {
		var f *Failure
		if errors.As(err, &f) && f != nil {
			return f
		}
		msg = fmt.Sprintf(
			"unexpected panic in test case %s: %v (%T)",
			caseName, err, err,
		)
	}
	if len(stack) > 0 {
		msg += "\n" + string(stack)
	}
	return &Failure{message: msg}
}
