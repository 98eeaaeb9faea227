package health

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

// Result is the aggregated outcome of evaluating one or more indicators.
type Result struct {
	Components map[string]Health `json:"components,omitempty"`
	Details    map[string]any    `json:"details,omitempty"`
	Status     Status            `json:"status"`
}

// Endpoint evaluates registered indicators on demand and serves the
// results over HTTP. Every request is a synchronous pull; there is no
// background polling.
type Endpoint struct {
	registry *Registry
	groups   map[string]Group
	cache    *resultCache
	cfg      *config
}

// NewEndpoint builds an endpoint over r. Every group member must already
// be registered in r; the special member "*" selects all indicators.
func NewEndpoint(r *Registry, groups []Group, opts ...Option) (*Endpoint, error) {
	if r == nil {
		return nil, ErrNilRegistry
	}

	cfg := newConfig(opts...)
	if _, err := ParseShowDetails(string(cfg.showDetails)); err != nil {
		return nil, err
	}

	e := &Endpoint{
		registry: r,
		groups:   make(map[string]Group, len(groups)),
		cfg:      cfg,
	}
	for _, g := range groups {
		if err := g.validate(r); err != nil {
			return nil, err
		}
		if _, ok := e.groups[g.Name]; ok {
			return nil, fmt.Errorf("%w: group %q", ErrDuplicateName, g.Name)
		}
		e.groups[g.Name] = g
	}
	if cfg.cacheTTL > 0 {
		e.cache = newResultCache(cfg.cacheTTL)
	}

	return e, nil
}

// Check evaluates every registered indicator.
func (e *Endpoint) Check(ctx context.Context) Result {
	return e.cached(ctx, "all", func(ctx context.Context) Result {
		return e.evaluate(ctx, e.registry.Names())
	})
}

// CheckGroup evaluates the members of the named group.
func (e *Endpoint) CheckGroup(ctx context.Context, name string) (Result, error) {
	g, ok := e.groups[name]
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
	}
	return e.cached(ctx, "group:"+name, func(ctx context.Context) Result {
		return e.evaluate(ctx, g.members(e.registry))
	}), nil
}

// CheckComponent evaluates a single indicator.
func (e *Endpoint) CheckComponent(ctx context.Context, name string) (Result, error) {
	ind, ok := e.registry.Get(name)
	if !ok {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownIndicator, name)
	}
	return e.cached(ctx, "component:"+name, func(ctx context.Context) Result {
		h := e.invoke(ctx, name, ind)
		return Result{Status: h.Status, Details: h.Details}
	}), nil
}

// Groups returns configured group names in lexical order.
func (e *Endpoint) Groups() []string {
	names := make([]string, 0, len(e.groups))
	for name := range e.groups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Invalidate drops cached results. It is a no-op when caching is disabled.
// Call it whenever the state behind an indicator changes.
func (e *Endpoint) Invalidate() {
	if e.cache != nil {
		e.cache.invalidate()
	}
}

// Handler returns an http.Handler serving:
//
//	GET /         aggregate of all indicators
//	GET /{name}   a group, or a single indicator when no group matches
//
// Mount it under the base path, e.g. router.Mount("/actuator/health", e.Handler()).
func (e *Endpoint) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/", e.serveAll)
	r.Get("/{name}", e.serveNamed)
	return r
}

func (e *Endpoint) serveAll(w http.ResponseWriter, r *http.Request) {
	e.write(w, e.Check(r.Context()))
}

func (e *Endpoint) serveNamed(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	if res, err := e.CheckGroup(r.Context(), name); err == nil {
		e.write(w, res)
		return
	}

	res, err := e.CheckComponent(r.Context(), name)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	e.write(w, res)
}

func (e *Endpoint) write(w http.ResponseWriter, res Result) {
	if e.cfg.showDetails != ShowAlways {
		res = Result{Status: res.Status}
	}
	writeJSON(w, HTTPStatus(res.Status), res)
}

// cached runs fn bounded by the endpoint timeout. With caching enabled the
// evaluation is shared by concurrent callers, so it is detached from the
// caller's cancellation, and a result cut short by the timeout is not stored.
func (e *Endpoint) cached(ctx context.Context, key string, fn func(context.Context) Result) Result {
	if e.cache == nil {
		ctx, cancel := context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
		return fn(ctx)
	}

	return e.cache.getOrEvaluate(key, func() (Result, bool) {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.timeout)
		defer cancel()

		res := fn(ctx)
		return res, ctx.Err() == nil
	})
}

// evaluate runs the named indicators in parallel under ctx and aggregates the result.
// Names that are no longer registered are skipped.
func (e *Endpoint) evaluate(ctx context.Context, names []string) Result {
	if len(names) == 0 {
		return Result{Status: StatusUp}
	}

	var (
		mu         sync.Mutex
		wg         sync.WaitGroup
		components = make(map[string]Health, len(names))
	)

	for _, name := range names {
		ind, ok := e.registry.Get(name)
		if !ok {
			continue
		}

		wg.Add(1)
		go func(name string, ind Indicator) {
			defer wg.Done()

			h := e.invoke(ctx, name, ind)

			mu.Lock()
			components[name] = h
			mu.Unlock()
		}(name, ind)
	}

	wg.Wait()

	statuses := make([]Status, 0, len(components))
	for _, h := range components {
		statuses = append(statuses, h.Status)
	}

	return Result{
		Status:     Aggregate(statuses...),
		Components: components,
	}
}

// invoke calls one indicator, bounded by ctx. A panic or an indicator that
// outlives ctx is reported as DOWN.
func (e *Endpoint) invoke(ctx context.Context, name string, ind Indicator) Health {
	start := time.Now()
	done := make(chan Health, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- Down().WithError(fmt.Errorf("%w: %v", ErrCheckPanic, r))
			}
		}()
		done <- ind.Health(ctx)
	}()

	var h Health
	select {
	case h = <-done:
	case <-ctx.Done():
		h = Down().WithError(ErrCheckTimeout)
	}

	if h.Status == "" {
		h.Status = StatusUnknown
	}

	if h.Status == StatusDown {
		e.cfg.logger.WarnContext(ctx, "health check failed",
			slog.String("check", name),
			slog.Any("details", h.Details),
		)
	}
	if e.cfg.observer != nil {
		e.cfg.observer(name, h.Status, time.Since(start))
	}

	return h
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
