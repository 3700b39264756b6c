// Package plugin lets independent packages contribute suites to
// a registry. Each plugin installs its suites when initialized,
// so a test binary can assemble its registry from several
// sources in a fixed order.
package plugin

import (
	"fmt"
	"sync"

	"digital.vasic.microtest/pkg/logging"
	"digital.vasic.microtest/pkg/registry"
)

// Plugin contributes suites to a registry.
type Plugin interface {
	// Name returns the plugin's unique name.
	Name() string
	// Version returns the plugin's version string.
	Version() string
	// Init installs the plugin's suites into ctx.Registry.
	Init(ctx *PluginContext) error
}

// PluginContext provides access to framework components during initialization.
type PluginContext struct {
	Registry *registry.Registry
	Logger   logging.Logger
	Config   map[string]any
}

// Registry manages plugin registration and initialization.
// Plugins initialize in registration order.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	order   []string
	loaded  map[string]bool
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
		loaded:  make(map[string]bool),
	}
}

// Register adds a plugin without initializing it.
func (r *Registry) Register(p Plugin) error {
	if p == nil {
		return fmt.Errorf("plugin cannot be nil")
	}
	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; exists {
		return fmt.Errorf("plugin %q already registered", name)
	}

	r.plugins[name] = p
	r.order = append(r.order, name)
	return nil
}

// Get retrieves a registered plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	return p, ok
}

// InitAll initializes all registered plugins that haven't been
// loaded yet, stopping at the first error.
func (r *Registry) InitAll(ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, name := range r.order {
		if err := r.initLocked(name, ctx); err != nil {
			return err
		}
	}
	return nil
}

// Init initializes a specific plugin by name.
func (r *Registry) Init(name string, ctx *PluginContext) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.plugins[name]; !ok {
		return fmt.Errorf("plugin %q not found", name)
	}
	return r.initLocked(name, ctx)
}

func (r *Registry) initLocked(name string, ctx *PluginContext) error {
	if r.loaded[name] {
		return nil
	}
	p := r.plugins[name]
	if err := p.Init(ctx); err != nil {
		return fmt.Errorf("init plugin %q: %w", name, err)
	}
	r.loaded[name] = true
	if ctx != nil && ctx.Logger != nil {
		ctx.Logger.Debug("plugin initialized",
			logging.StringField("plugin", name),
			logging.StringField("version", p.Version()),
		)
	}
	return nil
}

// List returns all registered plugin names in registration order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// IsLoaded checks if a plugin has been initialized.
func (r *Registry) IsLoaded(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[name]
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
