// Package middlewares provides HTTP middleware for the application core.
//
// # Request ID
//
// RequestID assigns an ID to each request. An ID sent by an upstream proxy in
// X-Request-ID or X-Correlation-ID is kept; otherwise a random UUID is
// generated. The ID is echoed in the X-Request-ID response header.
//
// Pass RequestIDExtractor to logger.New so every record logged with a
// request context carries request_id:
//
//	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())
//
// # Access Log
//
// AccessLog writes one record per request and can feed an observer, for
// example a Prometheus histogram. Frequently polled paths can be excluded
// from logging while still being observed:
//
//	middlewares.AccessLog(
//	    middlewares.WithAccessLogSkipPaths("/actuator/health/liveness"),
//	    middlewares.WithAccessLogObserver(m.ObserveRequest),
//	)
//
// # Recover
//
// Recover converts panics into a *PanicError handled by the app's error handler.
//
//	internal.WithErrorHandler(func(c internal.Context, err error) error {
//	    if middlewares.IsPanicError(err) {
//	        return c.JSON(500, map[string]string{"error": "internal error"})
//	    }
//	    return c.JSON(500, map[string]string{"error": err.Error()})
//	})
//
// # Recommended Middleware Order
//
//	internal.WithMiddleware(
//	    middlewares.RequestID(), // first: every later record has the ID
//	    middlewares.AccessLog(), // second: sees the final status, including recovered panics
//	    middlewares.Recover(),   // last: closest to the handler
//	)
package middlewares
