package assertion

import (
	"github.com/stretchr/testify/assert"
)

// Equaler is implemented by types that define their own notion
// of equality. Equal may accept values of other types; AreEqual
// and AreNotEqual evaluate it in both directions so that a
// relation which only holds one way is reported as a failure.
type Equaler interface {
	Equal(other any) bool
}

// IsTrue fails the current case unless value is true. The
// failure message carries the source text of the argument and
// the call site.
func IsTrue(value bool) {
	if value {
		return
	}
	loc := Caller(1)
	Check(false, boolMessage(
		true, argumentText(loc, "IsTrue", 0), loc,
	))
}

// IsFalse fails the current case unless value is false.
func IsFalse(value bool) {
	if !value {
		return
	}
	loc := Caller(1)
	Check(false, boolMessage(
		false, argumentText(loc, "IsFalse", 0), loc,
	))
}

// AreEqual fails the current case unless expected equals actual
// and actual equals expected.
func AreEqual[T1, T2 any](expected T1, actual T2) {
	if equal(expected, actual) && equal(actual, expected) {
		return
	}
	loc := Caller(1)
	Check(false, comparisonMessage(
		"Expected", expected, typeName[T1](),
		actual, typeName[T2](),
		callText(loc, "AreEqual"), loc,
	))
}

// AreNotEqual fails the current case unless expected differs
// from actual in both directions.
func AreNotEqual[T1, T2 any](expected T1, actual T2) {
	if !equal(expected, actual) && !equal(actual, expected) {
		return
	}
	loc := Caller(1)
	Check(false, comparisonMessage(
		"Expected not", expected, typeName[T1](),
		actual, typeName[T2](),
		callText(loc, "AreNotEqual"), loc,
	))
}

// equal evaluates a == b from a's point of view.
func equal(a, b any) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	return assert.ObjectsAreEqual(a, b)
}
