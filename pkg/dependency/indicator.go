package dependency

import (
	"context"

	"github.com/dmitrymomot/healthdemo/pkg/health"
)

// IndicatorName is the registry name of the dependency indicator.
const IndicatorName = "dependency"

// Detail key and value reported while the dependency is down.
// Probe consumers match on them, so they must not change.
const (
	DownDetailKey   = "The dependency is DOWN"
	DownDetailValue = 42
)

// Indicator reports UP while s is up, and DOWN with a single detail otherwise.
// It never fails and has no side effects.
func Indicator(s *State) health.Indicator {
	return health.IndicatorFunc(func(context.Context) health.Health {
		if s.IsUp() {
			return health.Up()
		}
		return health.Down().WithDetail(DownDetailKey, DownDetailValue)
	})
}
