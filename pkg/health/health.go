package health

import (
	"context"
	"maps"
)

// Status is the health state reported by an indicator.
type Status string

// Known statuses, from most to least severe when aggregated.
const (
	StatusDown         Status = "DOWN"
	StatusOutOfService Status = "OUT_OF_SERVICE"
	StatusUp           Status = "UP"
	StatusUnknown      Status = "UNKNOWN"
)

// Health is the result of a single indicator invocation.
// Health values are immutable; WithDetail returns a copy.
type Health struct {
	Details map[string]any `json:"details,omitempty"`
	Status  Status         `json:"status"`
}

// Up returns a healthy result with no details.
func Up() Health { return Health{Status: StatusUp} }

// Down returns a failed result with no details.
func Down() Health { return Health{Status: StatusDown} }

// OutOfService returns a result for a component that is
// running but should not receive traffic.
func OutOfService() Health { return Health{Status: StatusOutOfService} }

// Unknown returns a result for a component whose state cannot be determined.
func Unknown() Health { return Health{Status: StatusUnknown} }

// WithDetail returns a copy of h with the given detail entry added.
func (h Health) WithDetail(key string, value any) Health {
	details := make(map[string]any, len(h.Details)+1)
	maps.Copy(details, h.Details)
	details[key] = value
	h.Details = details
	return h
}

// WithError returns a copy of h carrying err under the "error" detail.
// A nil error leaves h unchanged.
func (h Health) WithError(err error) Health {
	if err == nil {
		return h
	}
	return h.WithDetail("error", err.Error())
}

// Indicator reports the health of one component.
// Implementations must be safe for concurrent use and should honor ctx cancellation.
type Indicator interface {
	Health(ctx context.Context) Health
}

// IndicatorFunc adapts an ordinary function to the Indicator interface.
type IndicatorFunc func(ctx context.Context) Health

// Health calls f(ctx).
func (f IndicatorFunc) Health(ctx context.Context) Health {
	return f(ctx)
}

// CheckFunc is the plain error-returning probe signature used by
// connection pools and clients: nil means healthy.
type CheckFunc func(ctx context.Context) error

// FromCheck adapts a CheckFunc into an Indicator.
// A non-nil error maps to DOWN with the error message as detail.
func FromCheck(fn CheckFunc) Indicator {
	return IndicatorFunc(func(ctx context.Context) Health {
		if err := fn(ctx); err != nil {
			return Down().WithError(err)
		}
		return Up()
	})
}
