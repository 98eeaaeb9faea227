// Package internal is the HTTP application core of the service.
//
// # Core Types
//
//   - App: owns the chi router, global middleware, probe endpoints and graceful shutdown
//   - Context: request/response access plus logging helpers; it is also a context.Context
//   - Router: the interface handlers use to declare routes
//   - Handler: implemented by types that declare routes on a Router
//   - HandlerFunc: route handler signature returning an error
//   - Middleware: wraps a HandlerFunc
//   - ErrorHandler: renders errors returned by handlers
//
// # Application Structure
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithAvailability(avail),
//	    internal.WithHealth("/actuator/health", endpoint),
//	    internal.WithMetrics("/actuator/prometheus", m.Handler()),
//	    internal.WithHandlers(emulate.New(avail, dep)),
//	)
//
// Handlers receive their dependencies through constructors and declare
// routes in Routes:
//
//	func (h *Handler) Routes(r internal.Router) {
//	    r.GET("/emulate-readiness-issue", h.readinessIssue)
//	}
//
// Global middleware wraps every route, including the mounted health and
// metrics handlers. Route middleware passed to GET and friends runs in
// registration order.
//
// # Errors
//
// A handler that returns an error hands it to the ErrorHandler configured
// with WithErrorHandler. Without one, an *HTTPError is rendered with its
// status code and message, and any other error becomes a plain 500.
// Errors returned after the response was started are only logged.
//
// # Running
//
// Run listens on the given address and blocks until SIGINT, SIGTERM or the
// cancellation of the WithContext context. Shutdown then proceeds as:
//
//  1. readiness is set to REFUSING_TRAFFIC (when WithAvailability is set)
//  2. the server keeps serving for DrainDelay
//  3. http.Server.Shutdown waits for in-flight requests
//  4. shutdown hooks run in registration order
//
// ShutdownTimeout bounds all of it.
package internal
