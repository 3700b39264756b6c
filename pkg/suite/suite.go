// Package suite groups named test cases belonging to one test
// class and runs them in either of two strategies: propagate
// mode stops at the first failure and returns it, collect mode
// runs every case and returns all failures.
package suite

import (
	"runtime/debug"
	"sort"

	"digital.vasic.microtest/pkg/assertion"
)

// Suite is the capability a registry needs from a test class.
type Suite interface {
	// RunPropagating runs every case in name order and returns
	// the first failure, skipping the remaining cases.
	RunPropagating() error

	// RunCollecting runs every case in name order and returns
	// the failures of all failing cases. An empty result means
	// every case passed.
	RunCollecting() []*assertion.Failure

	// RunCasePropagating runs the named case and returns its
	// failure. An unknown name is a successful no-op.
	RunCasePropagating(name string) error

	// RunCaseCollecting runs the named case and returns its
	// failure, or nil if it passed or does not exist.
	RunCaseCollecting(name string) *assertion.Failure

	// HasCase reports whether a case with the given name is
	// registered.
	HasCase(name string) bool

	// CaseNames returns the registered case names in execution
	// order.
	CaseNames() []string
}

// Case is a named unit of test logic. Action signals failure
// through the assertion package.
type Case struct {
	Name   string
	Action func()
}

// Base implements Suite. Test classes embed it and register
// their cases from their constructor:
//
//	type MathSuite struct{ suite.Base }
//
//	func NewMathSuite() *MathSuite {
//		s := &MathSuite{}
//		s.Register("add_ok", s.addOK)
//		return s
//	}
//
// The zero value is an empty suite.
type Base struct {
	cases map[string]Case
}

// Register adds a case. Registering an existing name replaces
// the earlier action.
func (b *Base) Register(name string, action func()) {
	if b.cases == nil {
		b.cases = make(map[string]Case)
	}
	b.cases[name] = Case{Name: name, Action: action}
}

// HasCase reports whether name is registered.
func (b *Base) HasCase(name string) bool {
	_, ok := b.cases[name]
	return ok
}

// CaseNames returns the registered names sorted, which is the
// order cases execute in.
func (b *Base) CaseNames() []string {
	names := make([]string, 0, len(b.cases))
	for name := range b.cases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RunPropagating runs all cases and stops at the first failure.
func (b *Base) RunPropagating() error {
	for _, name := range b.CaseNames() {
		if f := run(b.cases[name]); f != nil {
			return f
		}
	}
	return nil
}

// RunCollecting runs all cases and returns every failure in
// execution order.
func (b *Base) RunCollecting() []*assertion.Failure {
	var failures []*assertion.Failure
	for _, name := range b.CaseNames() {
		if f := run(b.cases[name]); f != nil {
			failures = append(failures, f)
		}
	}
	return failures
}

// RunCasePropagating runs a single case by name.
func (b *Base) RunCasePropagating(name string) error {
	if f := b.RunCaseCollecting(name); f != nil {
		return f
	}
	return nil
}

// RunCaseCollecting runs a single case by name and returns its
// failure, if any.
func (b *Base) RunCaseCollecting(name string) *assertion.Failure {
	c, ok := b.cases[name]
	if !ok {
		return nil
	}
	return run(c)
}

// run executes one case, converting the panic raised by a failed
// assertion, or by anything else, into a Failure.
func run(c Case) (failure *assertion.Failure) {
	defer func() {
		if r := recover(); r != nil {
			var stack []byte
			if _, ok := assertion.AsFailure(r); !ok {
				stack = debug.Stack()
			}
			failure = assertion.Recovered(c.Name, r, stack)
		}
	}()

	if c.Action != nil {
		c.Action()
	}
	return nil
}
