// Package runner executes run plans against a suite registry.
// A plan names the suites and cases to run and the failure
// strategy; the runner resolves the names, drives the registry
// and reports the outcome under a unique run ID.
package runner

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"digital.vasic.microtest/pkg/assertion"
	"digital.vasic.microtest/pkg/logging"
	"digital.vasic.microtest/pkg/registry"
)

var (
	// ErrSuiteNotFound is returned in strict mode when a plan
	// names a suite that is not registered.
	ErrSuiteNotFound = errors.New("suite not found")

	// ErrCaseNotFound is returned in strict mode when a plan
	// names a case the suite does not have.
	ErrCaseNotFound = errors.New("case not found")
)

// Hook is invoked around each selected suite. An error from a
// pre-hook aborts the run; post-hook errors are logged.
type Hook func(kind registry.Kind) error

// Outcome is the result of executing a plan.
type Outcome struct {
	RunID    string
	Plan     string
	Mode     Mode
	Failures []*assertion.Failure
	Started  time.Time
	Duration time.Duration
}

// Passed reports whether the run produced no failures.
func (o *Outcome) Passed() bool {
	return len(o.Failures) == 0
}

// Runner executes plans against one registry.
type Runner struct {
	registry  *registry.Registry
	logger    logging.Logger
	strict    bool
	preHooks  []Hook
	postHooks []Hook
	newID     func() string
}

// NewRunner creates a Runner for reg with the supplied options.
func NewRunner(reg *registry.Registry, opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: reg,
		logger:   logging.NullLogger{},
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// target is a resolved selection. A nil cases slice means the
// whole suite.
type target struct {
	kind  registry.Kind
	cases []string
}

// Execute runs plan. In propagate mode the first failure stops
// the run and is returned as the error, and it is also the only
// entry of Outcome.Failures. In collect mode failures are only
// reported through the outcome. Plan errors (an invalid mode,
// unknown names under strict lookup, a failing pre-hook) are
// returned before or instead of running cases.
func (r *Runner) Execute(plan *Plan) (*Outcome, error) {
	if plan == nil {
		plan = &Plan{Mode: ModeCollect}
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RunID:   r.newID(),
		Plan:    plan.Name,
		Mode:    plan.Mode,
		Started: time.Now(),
	}
	log := r.logger.WithFields(
		logging.RunIDField(outcome.RunID),
		logging.ModeField(string(plan.Mode)),
	)

	targets, err := r.resolve(plan, log)
	if err != nil {
		log.Error("run plan rejected", logging.ErrorField(err))
		return outcome, err
	}

	log.Info("run started",
		logging.StringField("plan", plan.Name),
		logging.IntField("suites", len(targets)),
	)

	err = r.runTargets(plan.Mode, targets, outcome, log)
	outcome.Duration = time.Since(outcome.Started)

	log.Info("run finished",
		logging.IntField("failures", len(outcome.Failures)),
		logging.DurationField("duration", outcome.Duration),
	)
	return outcome, err
}

func (r *Runner) resolve(plan *Plan, log logging.Logger) ([]target, error) {
	strict := r.strict || plan.Strict

	if len(plan.Suites) == 0 {
		kinds := r.registry.Kinds()
		targets := make([]target, 0, len(kinds))
		for _, k := range kinds {
			targets = append(targets, target{kind: k})
		}
		return targets, nil
	}

	targets := make([]target, 0, len(plan.Suites))
	for _, sel := range plan.Suites {
		kind, s, ok := r.registry.Lookup(sel.Suite)
		if !ok {
			if strict {
				return nil, fmt.Errorf("%w: %s", ErrSuiteNotFound, sel.Suite)
			}
			log.Warn("skipping unknown suite", logging.SuiteField(sel.Suite))
			continue
		}

		t := target{kind: kind}
		for _, name := range sel.Cases {
			if strict && !s.HasCase(name) {
				return nil, fmt.Errorf(
					"%w: %s.%s", ErrCaseNotFound, kind.Name(), name,
				)
			}
			t.cases = append(t.cases, name)
		}
		targets = append(targets, t)
	}
	return targets, nil
}

func (r *Runner) runTargets(
	mode Mode,
	targets []target,
	outcome *Outcome,
	log logging.Logger,
) error {
	for _, t := range targets {
		for _, hook := range r.preHooks {
			if err := hook(t.kind); err != nil {
				return fmt.Errorf(
					"pre-hook failed for %s: %w", t.kind.Name(), err,
				)
			}
		}

		err := r.runTarget(mode, t, outcome)

		for _, hook := range r.postHooks {
			if hookErr := hook(t.kind); hookErr != nil {
				log.Warn("post-hook failed",
					logging.SuiteField(t.kind.Name()),
					logging.ErrorField(hookErr),
				)
			}
		}

		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) runTarget(mode Mode, t target, outcome *Outcome) error {
	if mode == ModeCollect {
		if t.cases == nil {
			outcome.Failures = append(outcome.Failures,
				r.registry.RunKindCollecting(t.kind)...)
			return nil
		}
		for _, name := range t.cases {
			if f := r.registry.RunKindCaseCollecting(t.kind, name); f != nil {
				outcome.Failures = append(outcome.Failures, f)
			}
		}
		return nil
	}

	if t.cases == nil {
		return recordFailure(outcome, r.registry.RunKindPropagating(t.kind))
	}
	for _, name := range t.cases {
		err := r.registry.RunKindCasePropagating(t.kind, name)
		if err != nil {
			return recordFailure(outcome, err)
		}
	}
	return nil
}

// recordFailure records err on the outcome when it is a failure.
func recordFailure(outcome *Outcome, err error) error {
	if err == nil {
		return nil
	}
	var f *assertion.Failure
	if errors.As(err, &f) {
		outcome.Failures = append(outcome.Failures, f)
	}
	return err
}
