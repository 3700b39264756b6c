package registry

import "digital.vasic.microtest/pkg/logging"

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used to report registrations and
// runs. A nil logger disables logging.
func WithLogger(logger logging.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = logging.NullLogger{}
		}
		r.logger = logger
	}
}
