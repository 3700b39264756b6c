package assertion

import (
	"errors"
	"fmt"
)

// panicValue wraps a non-error value an action panicked with.
type panicValue struct {
	value any
}

func (p panicValue) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

// Throws runs action and fails the current case unless it
// produces an error of kind E for which pred returns true. The
// error may be returned or raised with panic; a panic with a
// value that is not an error never matches. A nil pred accepts
// any error of kind E. Errors of another kind are reported as a
// Failure and never re-raised.
func Throws[E error](action func() error, pred func(E) bool) {
	nonError, err := capture(action)
	want := typeName[E]()

	if err == nil {
		loc := Caller(1)
		Check(false, throwsMessage(
			want, "no error", callText(loc, "Throws"), loc,
		))
		return
	}

	var target E
	if nonError || !errors.As(err, &target) {
		loc := Caller(1)
		Check(false, throwsMessage(
			want,
			fmt.Sprintf("%v as %T", err, err),
			callText(loc, "Throws"), loc,
		))
		return
	}

	if pred != nil && !pred(target) {
		loc := Caller(1)
		Check(false, throwsMessage(
			want+" satisfying predicate",
			fmt.Sprintf("%v as %T", target, target),
			callText(loc, "Throws"), loc,
		))
	}
}

// capture runs action and returns the error it returned or
// panicked with. A panic with a non-error value is reported as
// recovered, with the value wrapped in a panicValue.
func capture(action func() error) (recovered bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = panicValue{value: r}
			recovered = true
		}
	}()
	return false, action()
}
