package bank

import (
	"fmt"

	"digital.vasic.microtest/pkg/registry"
	"digital.vasic.microtest/pkg/runner"
)

// ValidationError represents a plan selection that does not
// match the registry.
type ValidationError struct {
	Plan    string
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: suites[%d].%s: %s",
			e.Plan, e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Plan, e.Field, e.Message)
}

// ValidatePlan checks every suite and case a plan names against
// reg and returns all mismatches. Plans selecting the whole
// registry are always valid.
func ValidatePlan(p *runner.Plan, reg *registry.Registry) []ValidationError {
	var errs []ValidationError

	for i, sel := range p.Suites {
		_, s, ok := reg.Lookup(sel.Suite)
		if !ok {
			errs = append(errs, ValidationError{
				Plan: p.Name, Field: "suite", Index: i,
				Message: fmt.Sprintf("unknown suite: %s", sel.Suite),
			})
			continue
		}
		for _, name := range sel.Cases {
			if !s.HasCase(name) {
				errs = append(errs, ValidationError{
					Plan: p.Name, Field: "cases", Index: i,
					Message: fmt.Sprintf("unknown case: %s", name),
				})
			}
		}
	}
	return errs
}

// Validate checks every plan in the bank against reg.
func (b *Bank) Validate(reg *registry.Registry) []ValidationError {
	var errs []ValidationError
	for _, p := range b.All() {
		errs = append(errs, ValidatePlan(p, reg)...)
	}
	return errs
}
