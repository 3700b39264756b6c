// Package registry holds one suite instance per suite kind and
// runs them, either all together or one kind at a time, in
// propagate or collect mode.
package registry

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"digital.vasic.microtest/pkg/assertion"
	"digital.vasic.microtest/pkg/logging"
	"digital.vasic.microtest/pkg/suite"
)

var (
	// ErrSuiteExists is returned by Add when the kind is already
	// registered. The stored instance is left untouched.
	ErrSuiteExists = errors.New("suite already registered")

	// ErrNilSuite is returned when a constructor yields nil.
	ErrNilSuite = errors.New("suite constructor returned nil")
)

// Registry maps suite kinds to suite instances. Suites run in
// the order their kinds were first registered. It is safe for
// concurrent use; runs execute outside the lock so cases may
// inspect the registry.
type Registry struct {
	mu     sync.RWMutex
	suites map[Kind]suite.Suite
	order  []Kind
	logger logging.Logger
}

// NewRegistry creates an empty Registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		suites: make(map[Kind]suite.Suite),
		logger: logging.NullLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

type entry struct {
	kind  Kind
	suite suite.Suite
}

// insert stores s under kind. Without replace an existing entry
// is kept and ErrSuiteExists returned; with replace the entry is
// overwritten in place.
func (r *Registry) insert(
	kind Kind,
	s suite.Suite,
	replace bool,
) error {
	if isNil(s) {
		return fmt.Errorf("%w: %s", ErrNilSuite, kind)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suites[kind]; exists {
		if !replace {
			return fmt.Errorf("%w: %s", ErrSuiteExists, kind)
		}
		r.suites[kind] = s
		r.logger.Debug("suite reset", logging.SuiteField(kind.Name()))
		return nil
	}

	r.suites[kind] = s
	r.order = append(r.order, kind)
	r.logger.Debug("suite registered", logging.SuiteField(kind.Name()))
	return nil
}

// contains reports whether kind is registered.
func (r *Registry) contains(kind Kind) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.suites[kind]
	return ok
}

// RemoveKind discards the suite stored under kind. It reports
// whether a suite was removed.
func (r *Registry) RemoveKind(kind Kind) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.suites[kind]; !exists {
		return false
	}
	delete(r.suites, kind)
	for i, k := range r.order {
		if k == kind {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	r.logger.Debug("suite removed", logging.SuiteField(kind.Name()))
	return true
}

// Suite returns the suite stored under kind.
func (r *Registry) Suite(kind Kind) (suite.Suite, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.suites[kind]
	return s, ok
}

// Lookup resolves a suite by its kind name, accepting either the
// bare type name ("MathSuite") or the qualified form
// ("*tests.MathSuite"). The first match in registration order
// wins.
func (r *Registry) Lookup(name string) (Kind, suite.Suite, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, k := range r.order {
		if k.Name() == name || k.String() == name {
			return k, r.suites[k], true
		}
	}
	return Kind{}, nil, false
}

// Kinds returns the registered kinds in registration order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Kind(nil), r.order...)
}

// Count returns the number of registered suites.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.suites)
}

// Clear removes every suite.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suites = make(map[Kind]suite.Suite)
	r.order = nil
}

func (r *Registry) snapshot() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]entry, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, entry{kind: k, suite: r.suites[k]})
	}
	return out
}

// RunPropagating runs every suite in propagate mode. The first
// failure aborts the whole run and is returned.
func (r *Registry) RunPropagating() error {
	for _, e := range r.snapshot() {
		if err := r.runPropagating(e.kind, e.suite); err != nil {
			return err
		}
	}
	return nil
}

// RunCollecting runs every suite in collect mode and returns the
// concatenated failures in suite order.
func (r *Registry) RunCollecting() []*assertion.Failure {
	var failures []*assertion.Failure
	for _, e := range r.snapshot() {
		failures = append(failures, r.runCollecting(e.kind, e.suite)...)
	}
	return failures
}

func (r *Registry) runPropagating(kind Kind, s suite.Suite) error {
	log := r.logger.WithFields(
		logging.SuiteField(kind.Name()),
		logging.ModeField("propagate"),
	)
	log.Debug("running suite")

	if err := s.RunPropagating(); err != nil {
		log.Warn("suite failed", logging.FailureField(err))
		return err
	}
	return nil
}

func (r *Registry) runCollecting(
	kind Kind,
	s suite.Suite,
) []*assertion.Failure {
	log := r.logger.WithFields(
		logging.SuiteField(kind.Name()),
		logging.ModeField("collect"),
	)
	log.Debug("running suite")

	failures := s.RunCollecting()
	if len(failures) > 0 {
		log.Warn("suite reported failures",
			logging.IntField("failures", len(failures)),
		)
	}
	return failures
}

func (r *Registry) runCasePropagating(
	kind Kind,
	s suite.Suite,
	name string,
) error {
	log := r.logger.WithFields(
		logging.SuiteField(kind.Name()),
		logging.CaseField(name),
		logging.ModeField("propagate"),
	)
	if !s.HasCase(name) {
		log.Debug("case not registered")
		return nil
	}

	log.Debug("running case")
	if err := s.RunCasePropagating(name); err != nil {
		log.Warn("case failed", logging.FailureField(err))
		return err
	}
	return nil
}

func (r *Registry) runCaseCollecting(
	kind Kind,
	s suite.Suite,
	name string,
) *assertion.Failure {
	log := r.logger.WithFields(
		logging.SuiteField(kind.Name()),
		logging.CaseField(name),
		logging.ModeField("collect"),
	)
	if !s.HasCase(name) {
		log.Debug("case not registered")
		return nil
	}

	log.Debug("running case")
	f := s.RunCaseCollecting(name)
	if f != nil {
		log.Warn("case failed", logging.FailureField(f))
	}
	return f
}

// RunKindPropagating runs the suite stored under kind in
// propagate mode. An unregistered kind is a no-op.
func (r *Registry) RunKindPropagating(kind Kind) error {
	s, ok := r.Suite(kind)
	if !ok {
		return nil
	}
	return r.runPropagating(kind, s)
}

// RunKindCollecting runs the suite stored under kind in collect
// mode. An unregistered kind yields no failures.
func (r *Registry) RunKindCollecting(kind Kind) []*assertion.Failure {
	s, ok := r.Suite(kind)
	if !ok {
		return nil
	}
	return r.runCollecting(kind, s)
}

// RunKindCasePropagating runs one named case of the suite stored
// under kind. Unknown kinds and names are no-ops.
func (r *Registry) RunKindCasePropagating(kind Kind, name string) error {
	s, ok := r.Suite(kind)
	if !ok {
		return nil
	}
	return r.runCasePropagating(kind, s, name)
}

// RunKindCaseCollecting runs one named case of the suite stored
// under kind and returns its failure, if any.
func (r *Registry) RunKindCaseCollecting(
	kind Kind,
	name string,
) *assertion.Failure {
	s, ok := r.Suite(kind)
	if !ok {
		return nil
	}
	return r.runCaseCollecting(kind, s, name)
}

func isNil(s suite.Suite) bool {
	if s == nil {
		return true
	}
	v := reflect.ValueOf(s)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map,
		reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
