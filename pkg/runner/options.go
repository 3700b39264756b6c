package runner

import "digital.vasic.microtest/pkg/logging"

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithLogger sets the logger used by the runner.
func WithLogger(logger logging.Logger) RunnerOption {
	return func(r *Runner) {
		if logger == nil {
			logger = logging.NullLogger{}
		}
		r.logger = logger
	}
}

// WithStrictLookup makes unknown suite and case names fail every
// plan, as if each plan set strict.
func WithStrictLookup() RunnerOption {
	return func(r *Runner) {
		r.strict = true
	}
}

// WithPreHook adds a hook invoked before each selected suite
// runs.
func WithPreHook(h Hook) RunnerOption {
	return func(r *Runner) {
		r.preHooks = append(r.preHooks, h)
	}
}

// WithPostHook adds a hook invoked after each selected suite
// runs.
func WithPostHook(h Hook) RunnerOption {
	return func(r *Runner) {
		r.postHooks = append(r.postHooks, h)
	}
}

// WithIDGenerator replaces the run ID source.
func WithIDGenerator(gen func() string) RunnerOption {
	return func(r *Runner) {
		if gen != nil {
			r.newID = gen
		}
	}
}
