package config

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/healthdemo/pkg/availability"
	"github.com/dmitrymomot/healthdemo/pkg/dependency"
	"github.com/dmitrymomot/healthdemo/pkg/health"
)

// groupsFile is the YAML layout of HEALTH_GROUPS_FILE:
//
//	groups:
//	  readiness:
//	    include: [readinessState, dependency]
type groupsFile struct {
	Groups map[string]struct {
		Include []string `yaml:"include"`
	} `yaml:"groups"`
}

// DefaultGroups returns the built-in probe groups.
func DefaultGroups() []health.Group {
	return []health.Group{
		{Name: health.GroupLiveness, Include: []string{availability.LivenessIndicatorName}},
		{Name: health.GroupReadiness, Include: []string{availability.ReadinessIndicatorName, dependency.IndicatorName}},
	}
}

// loadGroups merges the groups file over the defaults. A group in the file
// replaces the default of the same name. An empty path yields the defaults.
func loadGroups(path string) ([]health.Group, error) {
	merged := make(map[string][]string)
	for _, g := range DefaultGroups() {
		merged[g.Name] = g.Include
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read health groups: %w", err)
		}

		var file groupsFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidGroups, path, err)
		}

		for name, g := range file.Groups {
			if name == "" || strings.Contains(name, "/") {
				return nil, fmt.Errorf("%w: group name %q", ErrInvalidGroups, name)
			}
			merged[name] = slices.Clone(g.Include)
		}
	}

	groups := make([]health.Group, 0, len(merged))
	for _, name := range slices.Sorted(maps.Keys(merged)) {
		groups = append(groups, health.Group{Name: name, Include: merged[name]})
	}
	return groups, nil
}
