package availability

import (
	"log/slog"
	"time"
)

// Option configures an Availability.
type Option func(*Availability)

// WithLogger sets the logger used for state change records.
func WithLogger(l *slog.Logger) Option {
	return func(a *Availability) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock overrides the time source for event timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Availability) {
		if now != nil {
			a.now = now
		}
	}
}
