// Package bank manages collections of named run plans loaded
// from YAML files, so that a project can keep its smoke, nightly
// and focused runs next to its suites.
package bank

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"digital.vasic.microtest/pkg/runner"
)

// Bank manages collections of run plans loaded from files.
type Bank struct {
	mu      sync.RWMutex
	plans   map[string]*runner.Plan
	sources []string
}

// New creates a new empty Bank.
func New() *Bank {
	return &Bank{
		plans: make(map[string]*runner.Plan),
	}
}

// LoadFile loads every plan document in a YAML file. Plans must
// be named and names must be unique across the bank.
func (b *Bank) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bank file %s: %w", path, err)
	}

	plans, err := runner.ParsePlans(data)
	if err != nil {
		return fmt.Errorf("parse bank file %s: %w", path, err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	for i, p := range plans {
		if p.Name == "" {
			return fmt.Errorf("plan at index %d in %s has no name", i, path)
		}
		if _, exists := b.plans[p.Name]; exists {
			return fmt.Errorf("duplicate plan %q in %s", p.Name, path)
		}
	}
	for _, p := range plans {
		b.plans[p.Name] = p
	}
	b.sources = append(b.sources, path)
	return nil
}

// LoadDir loads all .yaml and .yml files from a directory in
// lexical order.
func (b *Bank) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read bank directory %s: %w", dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch filepath.Ext(entry.Name()) {
		case ".yaml", ".yml":
		default:
			continue
		}
		if err := b.LoadFile(filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a plan by name.
func (b *Bank) Get(name string) (*runner.Plan, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	p, ok := b.plans[name]
	return p, ok
}

// All returns all loaded plans sorted by name.
func (b *Bank) All() []*runner.Plan {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]*runner.Plan, 0, len(b.plans))
	for _, p := range b.plans {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

// Names returns the sorted plan names.
func (b *Bank) Names() []string {
	plans := b.All()
	names := make([]string, len(plans))
	for i, p := range plans {
		names[i] = p.Name
	}
	return names
}

// Count returns the number of loaded plans.
func (b *Bank) Count() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.plans)
}

// Sources returns the list of loaded file paths.
func (b *Bank) Sources() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	result := make([]string, len(b.sources))
	copy(result, b.sources)
	return result
}
