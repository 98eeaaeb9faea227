// Package availability holds the application's liveness and readiness states.
//
// An [Availability] is created once at startup and passed to whatever needs
// to read or change the states. Observers registered with
// [Availability.Subscribe] are notified after every change:
//
//	avail := availability.New(availability.WithLogger(log))
//	avail.Subscribe(func(ctx context.Context, e availability.Event) {
//	    endpoint.Invalidate()
//	})
//	avail.SetReadiness(ctx, availability.RefusingTraffic, "shutdown")
//
// [LivenessIndicator] and [ReadinessIndicator] expose the states to the
// health endpoint as livenessState and readinessState.
package availability
