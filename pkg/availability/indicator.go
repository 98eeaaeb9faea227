package availability

import (
	"context"

	"github.com/dmitrymomot/healthdemo/pkg/health"
)

// Indicator names used when registering the availability indicators.
const (
	LivenessIndicatorName  = "livenessState"
	ReadinessIndicatorName = "readinessState"
)

// LivenessIndicator reports CORRECT as UP and BROKEN as DOWN.
func LivenessIndicator(a *Availability) health.Indicator {
	return health.IndicatorFunc(func(context.Context) health.Health {
		switch a.Liveness() {
		case Correct:
			return health.Up()
		case Broken:
			return health.Down()
		default:
			return health.Unknown()
		}
	})
}

// ReadinessIndicator reports ACCEPTING_TRAFFIC as UP and REFUSING_TRAFFIC as OUT_OF_SERVICE.
func ReadinessIndicator(a *Availability) health.Indicator {
	return health.IndicatorFunc(func(context.Context) health.Health {
		switch a.Readiness() {
		case AcceptingTraffic:
			return health.Up()
		case RefusingTraffic:
			return health.OutOfService()
		default:
			return health.Unknown()
		}
	})
}

// Register adds both availability indicators to r under their standard names.
func Register(r *health.Registry, a *Availability) error {
	if err := r.Register(LivenessIndicatorName, LivenessIndicator(a)); err != nil {
		return err
	}
	return r.Register(ReadinessIndicatorName, ReadinessIndicator(a))
}
