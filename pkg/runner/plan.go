package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidMode is returned for a plan whose mode is neither
	// "propagate" nor "collect".
	ErrInvalidMode = errors.New("invalid run mode")

	// ErrInvalidPlan is returned for a structurally broken plan.
	ErrInvalidPlan = errors.New("invalid run plan")
)

// Mode selects how failures are handled during a run.
type Mode string

const (
	// ModePropagate stops at the first failure and returns it.
	ModePropagate Mode = "propagate"
	// ModeCollect runs every selected case and gathers all
	// failures.
	ModeCollect Mode = "collect"
)

// Selection picks one suite, and optionally a subset of its
// cases, by name.
type Selection struct {
	Suite string   `yaml:"suite"`
	Cases []string `yaml:"cases,omitempty"`
}

// Plan describes one run: which suites and cases to execute and
// in which mode. An empty Suites list selects every registered
// suite.
type Plan struct {
	Name   string      `yaml:"name"`
	Mode   Mode        `yaml:"mode"`
	Strict bool        `yaml:"strict"`
	Suites []Selection `yaml:"suites"`
}

// ParsePlan decodes a single-document YAML run plan and
// validates it. Unknown keys are rejected, as are streams holding
// further documents (see ParsePlans). A missing mode defaults to
// collect and an empty document is a plan selecting everything.
func ParsePlan(data []byte) (*Plan, error) {
	dec := newDecoder(data)
	p, err := decodePlan(dec)
	if errors.Is(err, io.EOF) {
		return &Plan{Mode: ModeCollect}, nil
	}
	if err != nil {
		return nil, err
	}

	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf(
			"%w: more than one document, use ParsePlans",
			ErrInvalidPlan,
		)
	}
	return p, nil
}

// ParsePlans decodes a stream of YAML documents separated by
// "---", one plan per document.
func ParsePlans(data []byte) ([]*Plan, error) {
	dec := newDecoder(data)
	var plans []*Plan
	for {
		p, err := decodePlan(dec)
		if errors.Is(err, io.EOF) {
			return plans, nil
		}
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", len(plans), err)
		}
		plans = append(plans, p)
	}
}

func newDecoder(data []byte) *yaml.Decoder {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec
}

// decodePlan returns io.EOF unwrapped once the stream is
// exhausted.
func decodePlan(dec *yaml.Decoder) (*Plan, error) {
	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to parse run plan: %w", err)
	}
	if p.Mode == "" {
		p.Mode = ModeCollect
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// LoadPlan reads and parses the run plan at path.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read run plan: %w", err)
	}
	return ParsePlan(data)
}

// Validate checks the mode and that every selection names a
// suite.
func (p *Plan) Validate() error {
	switch p.Mode {
	case ModePropagate, ModeCollect:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidMode, p.Mode)
	}
	for i, sel := range p.Suites {
		if sel.Suite == "" {
			return fmt.Errorf(
				"%w: selection %d has no suite name",
				ErrInvalidPlan, i,
			)
		}
	}
	return nil
}
