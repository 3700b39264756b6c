package registry

import (
	"fmt"

	"digital.vasic.microtest/pkg/assertion"
	"digital.vasic.microtest/pkg/suite"
)

// Add constructs a suite of kind T with newSuite and stores it.
// If T is already registered the constructor is not called, the
// stored instance is kept and ErrSuiteExists is returned.
func Add[T suite.Suite](r *Registry, newSuite func() T) error {
	kind := KindOf[T]()
	if r.contains(kind) {
		return fmt.Errorf("%w: %s", ErrSuiteExists, kind)
	}
	return r.insert(kind, newSuite(), false)
}

// Reset constructs a suite of kind T and stores it, replacing
// any existing instance.
func Reset[T suite.Suite](r *Registry, newSuite func() T) error {
	return r.insert(KindOf[T](), newSuite(), true)
}

// Remove discards the suite of kind T if present.
func Remove[T suite.Suite](r *Registry) {
	r.RemoveKind(KindOf[T]())
}

// Get returns the stored suite of kind T for direct use.
func Get[T suite.Suite](r *Registry) (T, bool) {
	var zero T
	s, ok := r.Suite(KindOf[T]())
	if !ok {
		return zero, false
	}
	t, ok := s.(T)
	if !ok {
		return zero, false
	}
	return t, true
}

// RunSuitePropagating runs the suite of kind T in propagate
// mode. An unregistered kind is a no-op.
func RunSuitePropagating[T suite.Suite](r *Registry) error {
	return r.RunKindPropagating(KindOf[T]())
}

// RunSuiteCollecting runs the suite of kind T in collect mode.
func RunSuiteCollecting[T suite.Suite](r *Registry) []*assertion.Failure {
	return r.RunKindCollecting(KindOf[T]())
}

// RunCasePropagating runs the named case of the suite of kind T
// in propagate mode. Unknown kinds and names are no-ops.
func RunCasePropagating[T suite.Suite](r *Registry, name string) error {
	return r.RunKindCasePropagating(KindOf[T](), name)
}

// RunCaseCollecting runs the named case of the suite of kind T
// and returns its failure, or nil.
func RunCaseCollecting[T suite.Suite](
	r *Registry,
	name string,
) *assertion.Failure {
	return r.RunKindCaseCollecting(KindOf[T](), name)
}
