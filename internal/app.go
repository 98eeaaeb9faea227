package internal

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/healthdemo/pkg/availability"
	"github.com/dmitrymomot/healthdemo/pkg/health"
	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

// Default server timeouts.
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// App wires routing, middleware, probe endpoints and graceful shutdown.
// App is immutable after creation; all configuration is done via New.
type App struct {
	router                  chi.Router
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	logger                  *slog.Logger
	availability            *availability.Availability
	health                  *healthMount
	metrics                 *metricsMount
	middlewares             []Middleware
	handlers                []Handler
}

type healthMount struct {
	endpoint *health.Endpoint
	basePath string
}

type metricsMount struct {
	handler http.Handler
	path    string
}

// New creates an application with the given options.
//
// Example:
//
//	app := internal.New(
//	    internal.WithLogger(log),
//	    internal.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//	    internal.WithHealth("/actuator/health", endpoint),
//	    internal.WithHandlers(emulate.New(avail, dep)),
//	)
func New(opts ...Option) *App {
	a := &App{
		router: chi.NewRouter(),
		logger: logger.NewNope(),
	}

	for _, opt := range opts {
		opt(a)
	}

	a.setupRoutes()
	return a
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

// Run starts the HTTP server and blocks until the context set by WithContext
// is done or the process receives SIGINT/SIGTERM.
//
// When WithAvailability was used, readiness is switched to REFUSING_TRAFFIC
// before the server stops accepting connections.
//
// Example:
//
//	err := app.Run(":8080",
//	    internal.Logger(log),
//	    internal.ShutdownHook(logger.Flush(2*time.Second)),
//	)
func (a *App) Run(addr string, opts ...RunOption) error {
	cfg := buildRunConfig(opts...)
	if cfg.logger == nil {
		cfg.logger = a.logger
	}

	return runServer(runtimeConfig{
		handler:         a.router,
		address:         addr,
		logger:          cfg.logger,
		availability:    a.availability,
		shutdownTimeout: cfg.shutdownTimeout,
		drainDelay:      cfg.drainDelay,
		startupHooks:    cfg.startupHooks,
		shutdownHooks:   cfg.shutdownHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// setupRoutes configures the router with middleware, probe endpoints and handlers.
func (a *App) setupRoutes() {
	if a.notFoundHandler != nil {
		a.router.NotFound(a.wrapHandler(a.notFoundHandler))
	}
	if a.methodNotAllowedHandler != nil {
		a.router.MethodNotAllowed(a.wrapHandler(a.methodNotAllowedHandler))
	}

	// Global middleware must be registered before any route.
	for _, mw := range a.middlewares {
		a.router.Use(a.adaptMiddleware(mw))
	}

	if a.health != nil {
		a.router.Mount(a.health.basePath, a.health.endpoint.Handler())
	}
	if a.metrics != nil {
		a.router.Method(http.MethodGet, a.metrics.path, a.metrics.handler)
	}

	r := &routerAdapter{router: a.router, app: a}
	for _, h := range a.handlers {
		h.Routes(r)
	}
}

// wrapHandler converts a HandlerFunc to http.HandlerFunc using the app's error handler.
func (a *App) wrapHandler(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, a)
		if err := h(c); err != nil {
			a.handleError(c, err)
		}
	}
}

// handleError renders handler errors. Nothing is written if the handler
// already started the response.
func (a *App) handleError(c Context, err error) {
	if c.Written() {
		a.logger.WarnContext(c.Context(), "handler error after response was written",
			slog.String("error", err.Error()))
		return
	}
	if a.errorHandler != nil {
		if herr := a.errorHandler(c, err); herr != nil {
			a.logger.ErrorContext(c.Context(), "error handler failed", slog.String("error", herr.Error()))
		}
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)
	if httpErr := AsHTTPError(err); httpErr != nil {
		code = httpErr.Code
		msg = httpErr.Message
	}
	http.Error(c.Response(), msg, code)
}

// normalizePath makes p absolute and strips a trailing slash.
func normalizePath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
	}
	return p
}
