package dependency

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/dmitrymomot/healthdemo/pkg/logger"
)

// Observer is notified synchronously after every Set call.
type Observer func(ctx context.Context, up bool, source string)

// State is the reported availability of the external dependency.
// The zero value is not usable; call New.
type State struct {
	up atomic.Bool

	mu        sync.Mutex
	observers []subscription
	nextID    uint64

	logger *slog.Logger
}

type subscription struct {
	id uint64
	fn Observer
}

// Option configures a State.
type Option func(*State)

// WithInitial sets the initial value. The default is up.
func WithInitial(up bool) Option {
	return func(s *State) {
		s.up.Store(up)
	}
}

// WithLogger sets the logger used for change records.
func WithLogger(l *slog.Logger) Option {
	return func(s *State) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a State that reports the dependency as up unless WithInitial says otherwise.
func New(opts ...Option) *State {
	s := &State{
		logger: logger.NewNope(),
	}
	s.up.Store(true)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsUp reports whether the dependency is currently considered available.
func (s *State) IsUp() bool {
	return s.up.Load()
}

// Set stores the new value and notifies observers, even when the value is unchanged.
func (s *State) Set(ctx context.Context, up bool, source string) {
	prev := s.up.Swap(up)

	s.logger.InfoContext(ctx, "dependency state changed",
		slog.Bool("from", prev),
		slog.Bool("to", up),
		slog.String("source", source),
	)

	s.mu.Lock()
	observers := make([]subscription, len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, o := range observers {
		o.fn(ctx, up, source)
	}
}

// Subscribe registers fn and returns a function that removes it.
func (s *State) Subscribe(fn Observer) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.observers = append(s.observers, subscription{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, o := range s.observers {
				if o.id == id {
					s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
					return
				}
			}
		})
	}
}
