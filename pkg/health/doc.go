// Package health provides a pull-based health model and HTTP probe endpoints.
//
// Components report their state through an [Indicator]. Indicators are
// registered by name in a [Registry], grouped into probe [Group]s, and served
// by an [Endpoint]. Each probe request evaluates the relevant indicators
// synchronously; nothing polls in the background.
//
// # Statuses
//
// An indicator returns a [Health] with one of four statuses. When several
// results are combined by [Aggregate], the most severe one wins:
//
//	DOWN > OUT_OF_SERVICE > UP > UNKNOWN
//
// [HTTPStatus] maps DOWN and OUT_OF_SERVICE to 503 and everything else to 200.
//
// # Quick Start
//
//	reg := health.NewRegistry()
//	_ = reg.Register("db", health.FromCheck(pool.Ping))
//	_ = reg.Register("queue", health.IndicatorFunc(func(ctx context.Context) health.Health {
//	    if q.Backlog() > 10_000 {
//	        return health.OutOfService().WithDetail("backlog", q.Backlog())
//	    }
//	    return health.Up()
//	}))
//
//	endpoint, err := health.NewEndpoint(reg, []health.Group{
//	    {Name: health.GroupLiveness, Include: []string{"queue"}},
//	    {Name: health.GroupReadiness, Include: []string{"db", "queue"}},
//	}, health.WithTimeout(3*time.Second))
//
//	r := chi.NewRouter()
//	r.Mount("/actuator/health", endpoint.Handler())
//
// # Endpoints
//
//	GET /actuator/health            all indicators
//	GET /actuator/health/readiness  the readiness group
//	GET /actuator/health/db         a single indicator
//
// Unknown names respond 404. The body is {"status":"UP"} unless
// [WithShowDetails]([ShowAlways]) is set, in which case component results
// and details are included:
//
//	{
//	  "status": "DOWN",
//	  "components": {
//	    "db":    {"status": "DOWN", "details": {"error": "connection refused"}},
//	    "queue": {"status": "UP"}
//	  }
//	}
//
// # Timeouts and Caching
//
// Indicators run in parallel and share one time budget ([WithTimeout],
// 5 seconds by default). An indicator that panics or outlives the budget is
// reported as DOWN.
//
// [WithCacheTTL] keeps results for a short time. Call [Endpoint.Invalidate]
// when the state behind an indicator changes so that the next probe sees it.
//
// # Kubernetes Configuration
//
//	livenessProbe:
//	  httpGet:
//	    path: /actuator/health/liveness
//	    port: 8080
//	readinessProbe:
//	  httpGet:
//	    path: /actuator/health/readiness
//	    port: 8080
package health
