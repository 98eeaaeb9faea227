package health

import (
	"fmt"
	"slices"
)

// IncludeAll as a group member selects every registered indicator.
const IncludeAll = "*"

// Well-known probe group names.
const (
	GroupLiveness  = "liveness"
	GroupReadiness = "readiness"
)

// Group is a named subset of indicators served under its own path.
type Group struct {
	Name    string   `yaml:"name"`
	Include []string `yaml:"include"`
}

// members resolves the group against the registry.
func (g Group) members(r *Registry) []string {
	if slices.Contains(g.Include, IncludeAll) {
		return r.Names()
	}
	return g.Include
}

// validate checks that every member is registered.
func (g Group) validate(r *Registry) error {
	if err := validateName(g.Name); err != nil {
		return fmt.Errorf("group: %w", err)
	}
	for _, name := range g.Include {
		if name == IncludeAll {
			continue
		}
		if _, ok := r.Get(name); !ok {
			return fmt.Errorf("%w: group %q includes %q", ErrUnknownMember, g.Name, name)
		}
	}
	return nil
}
