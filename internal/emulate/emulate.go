package emulate

import (
	"net/http"

	"github.com/dmitrymomot/healthdemo/internal"
	"github.com/dmitrymomot/healthdemo/pkg/availability"
	"github.com/dmitrymomot/healthdemo/pkg/dependency"
)

// Source is recorded on every state change made through these endpoints.
const Source = "emulate"

// Toggle paths.
const (
	PathLivenessIssue     = "/emulate-liveness-issue"
	PathLivenessRecovery  = "/emulate-liveness-recovery"
	PathReadinessIssue    = "/emulate-readiness-issue"
	PathReadinessRecovery = "/emulate-readiness-recovery"
	PathDependencyDown    = "/emulate-dependency-down"
	PathDependencyUp      = "/emulate-dependency-up"
)

// Handler serves GET endpoints that flip the availability states and the
// dependency flag. Every endpoint responds 200 with an empty body and is
// idempotent.
type Handler struct {
	availability *availability.Availability
	dependency   *dependency.State
}

// New returns a Handler operating on the given state holders.
func New(a *availability.Availability, d *dependency.State) *Handler {
	return &Handler{availability: a, dependency: d}
}

// Routes implements internal.Handler.
func (h *Handler) Routes(r internal.Router) {
	r.GET(PathLivenessIssue, h.livenessIssue)
	r.GET(PathLivenessRecovery, h.livenessRecovery)
	r.GET(PathReadinessIssue, h.readinessIssue)
	r.GET(PathReadinessRecovery, h.readinessRecovery)
	r.GET(PathDependencyDown, h.dependencyDown)
	r.GET(PathDependencyUp, h.dependencyUp)
}

// livenessIssue marks the application BROKEN; an orchestrator restarts it.
func (h *Handler) livenessIssue(c internal.Context) error {
	return h.setLiveness(c, availability.Broken)
}

func (h *Handler) livenessRecovery(c internal.Context) error {
	return h.setLiveness(c, availability.Correct)
}

// readinessIssue takes the instance out of load balancing without a restart.
func (h *Handler) readinessIssue(c internal.Context) error {
	return h.setReadiness(c, availability.RefusingTraffic)
}

func (h *Handler) readinessRecovery(c internal.Context) error {
	return h.setReadiness(c, availability.AcceptingTraffic)
}

// dependencyDown makes the dependency indicator, and with it readiness and
// the overall health, report DOWN.
func (h *Handler) dependencyDown(c internal.Context) error {
	return h.setDependency(c, false)
}

func (h *Handler) dependencyUp(c internal.Context) error {
	return h.setDependency(c, true)
}

func (h *Handler) setLiveness(c internal.Context, state availability.LivenessState) error {
	c.LogInfo("emulating liveness change", "state", string(state))
	h.availability.SetLiveness(c, state, Source)
	return c.NoContent(http.StatusOK)
}

func (h *Handler) setReadiness(c internal.Context, state availability.ReadinessState) error {
	c.LogInfo("emulating readiness change", "state", string(state))
	h.availability.SetReadiness(c, state, Source)
	return c.NoContent(http.StatusOK)
}

func (h *Handler) setDependency(c internal.Context, up bool) error {
	c.LogInfo("emulating dependency change", "up", up)
	h.dependency.Set(c, up, Source)
	return c.NoContent(http.StatusOK)
}
