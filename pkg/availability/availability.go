package availability

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

// LivenessState reports whether the application's internal state is intact.
type LivenessState string

const (
	// Correct means the application is working and its internal state is valid.
	Correct LivenessState = "CORRECT"
	// Broken means the application cannot recover; the orchestrator should restart it.
	Broken LivenessState = "BROKEN"
)

// ReadinessState reports whether the application should receive traffic.
type ReadinessState string

const (
	// AcceptingTraffic means the application is ready to serve requests.
	AcceptingTraffic ReadinessState = "ACCEPTING_TRAFFIC"
	// RefusingTraffic means load balancers should stop routing requests here.
	RefusingTraffic ReadinessState = "REFUSING_TRAFFIC"
)

// Kind names an availability axis.
type Kind string

const (
	// KindLiveness is the axis holding a LivenessState.
	KindLiveness Kind = "liveness"
	// KindReadiness is the axis holding a ReadinessState.
	KindReadiness Kind = "readiness"
)

// SourceInitial is the source recorded for the states set by New.
const SourceInitial = "initial"

// Event describes a single state change.
type Event struct {
	At     time.Time
	Kind   Kind
	State  string
	Source string
}

// Observer is notified synchronously after every state change.
type Observer func(ctx context.Context, e Event)

// Availability holds the liveness and readiness states of the application.
// Reads are lock-free. Writes are last-write-wins per axis and are safe for
// concurrent use.
type Availability struct {
	liveness  atomic.Pointer[Event]
	readiness atomic.Pointer[Event]

	mu        sync.Mutex
	observers []subscription
	nextID    uint64

	logger *slog.Logger
	now    func() time.Time
}

type subscription struct {
	id uint64
	fn Observer
}

// New returns a holder in the initial state: CORRECT and ACCEPTING_TRAFFIC.
func New(opts ...Option) *Availability {
	a := &Availability{
		logger: logger.NewNope(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}

	at := a.now()
	a.liveness.Store(&Event{At: at, Kind: KindLiveness, State: string(Correct), Source: SourceInitial})
	a.readiness.Store(&Event{At: at, Kind: KindReadiness, State: string(AcceptingTraffic), Source: SourceInitial})

	return a
}

// Liveness returns the current liveness state.
func (a *Availability) Liveness() LivenessState {
	return LivenessState(a.liveness.Load().State)
}

// Readiness returns the current readiness state.
func (a *Availability) Readiness() ReadinessState {
	return ReadinessState(a.readiness.Load().State)
}

// SetLiveness records a liveness change. Setting the current state again
// still records a new event and notifies observers.
func (a *Availability) SetLiveness(ctx context.Context, state LivenessState, source string) {
	a.publish(ctx, &a.liveness, KindLiveness, string(state), source)
}

// SetReadiness records a readiness change. Setting the current state again
// still records a new event and notifies observers.
func (a *Availability) SetReadiness(ctx context.Context, state ReadinessState, source string) {
	a.publish(ctx, &a.readiness, KindReadiness, string(state), source)
}

// LastChange returns the most recent event for kind.
// The second result is false for an unknown kind.
func (a *Availability) LastChange(kind Kind) (Event, bool) {
	switch kind {
	case KindLiveness:
		return *a.liveness.Load(), true
	case KindReadiness:
		return *a.readiness.Load(), true
	default:
		return Event{}, false
	}
}

// Subscribe registers fn for future state changes and returns a function
// that removes it. Observers run in registration order on the caller's
// goroutine, so they must not block.
func (a *Availability) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.observers = append(a.observers, subscription{id: id, fn: fn})
	a.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			for i, s := range a.observers {
				if s.id == id {
					a.observers = append(a.observers[:i:i], a.observers[i+1:]...)
					return
				}
			}
		})
	}
}

func (a *Availability) publish(ctx context.Context, slot *atomic.Pointer[Event], kind Kind, state, source string) {
	e := &Event{At: a.now(), Kind: kind, State: state, Source: source}
	prev := slot.Swap(e)

	a.logger.InfoContext(ctx, "availability state changed",
		slog.String("kind", string(kind)),
		slog.String("from", prev.State),
		slog.String("to", state),
		slog.String("source", source),
	)

	a.mu.Lock()
	observers := make([]subscription, len(a.observers))
	copy(observers, a.observers)
	a.mu.Unlock()

	for _, s := range observers {
		s.fn(ctx, *e)
	}
}
