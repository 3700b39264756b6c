package registry

import (
	"reflect"

	"digital.vasic.microtest/pkg/suite"
)

// Kind identifies a suite type. Two suites share a kind exactly
// when they have the same concrete Go type.
type Kind struct {
	typ reflect.Type
}

// KindOf returns the kind of suite type T.
func KindOf[T suite.Suite]() Kind {
	return Kind{typ: reflect.TypeFor[T]()}
}

// String returns the qualified type, e.g. "*tests.MathSuite".
func (k Kind) String() string {
	if k.typ == nil {
		return "<none>"
	}
	return k.typ.String()
}

// Name returns the bare type name with pointer indirections
// removed, e.g. "MathSuite".
func (k Kind) Name() string {
	if k.typ == nil {
		return ""
	}
	t := k.typ
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Name()
}

// IsZero reports whether k is the zero Kind.
func (k Kind) IsZero() bool { return k.typ == nil }
