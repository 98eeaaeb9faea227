package health

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Registry holds named indicators.
// It is safe for concurrent use.
type Registry struct {
	indicators map[string]Indicator
	mu         sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{indicators: make(map[string]Indicator)}
}

// Register adds an indicator under name.
// Names must be non-empty, must not contain '/' and must be unique.
func (r *Registry) Register(name string, ind Indicator) error {
	if err := validateName(name); err != nil {
		return err
	}
	if ind == nil {
		return fmt.Errorf("%w: nil indicator for %q", ErrInvalidName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.indicators[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r.indicators[name] = ind
	return nil
}

// Unregister removes the indicator registered under name.
// It reports whether an indicator was removed.
func (r *Registry) Unregister(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.indicators[name]; !ok {
		return false
	}
	delete(r.indicators, name)
	return true
}

// Get returns the indicator registered under name.
func (r *Registry) Get(name string) (Indicator, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ind, ok := r.indicators[name]
	return ind, ok
}

// Names returns registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.indicators))
	for name := range r.indicators {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

func validateName(name string) error {
	if name == "" || strings.Contains(name, "/") || name == IncludeAll {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
