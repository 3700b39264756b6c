package plugin

import (
	"fmt"

	"digital.vasic.microtest/pkg/registry"
	"digital.vasic.microtest/pkg/suite"
)

// Loader handles plugin loading.
type Loader struct {
	registry *Registry
}

// NewLoader creates a new plugin loader.
func NewLoader(registry *Registry) *Loader {
	return &Loader{registry: registry}
}

// LoadAndInit registers and initializes a set of plugins.
func (l *Loader) LoadAndInit(plugins []Plugin, ctx *PluginContext) error {
	for _, p := range plugins {
		if err := l.registry.Register(p); err != nil {
			return fmt.Errorf("load plugin: %w", err)
		}
	}
	return l.registry.InitAll(ctx)
}

// LoadOne registers and initializes a single plugin.
func (l *Loader) LoadOne(p Plugin, ctx *PluginContext) error {
	if err := l.registry.Register(p); err != nil {
		return fmt.Errorf("load plugin: %w", err)
	}
	return l.registry.Init(p.Name(), ctx)
}

// SuitePlugin is a Plugin built from a name, a version and an
// install function.
type SuitePlugin struct {
	name    string
	version string
	install func(*registry.Registry) error
}

// New creates a SuitePlugin whose Init calls install with the
// context's registry.
func New(name, version string, install func(*registry.Registry) error) *SuitePlugin {
	return &SuitePlugin{name: name, version: version, install: install}
}

// Provide creates a SuitePlugin adding a single suite kind.
func Provide[T suite.Suite](name, version string, newSuite func() T) *SuitePlugin {
	return New(name, version, func(r *registry.Registry) error {
		return registry.Add(r, newSuite)
	})
}

func (p *SuitePlugin) Name() string    { return p.name }
func (p *SuitePlugin) Version() string { return p.version }

func (p *SuitePlugin) Init(ctx *PluginContext) error {
	if ctx == nil || ctx.Registry == nil {
		return fmt.Errorf("plugin %q: no registry in context", p.name)
	}
	return p.install(ctx.Registry)
}
