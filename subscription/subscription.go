package subscription

import (
	"sync"

	"github.com/google/uuid"
)

// Update is one full result of a watched query, or the error that prevented
// computing it.
type Update[T any] struct {
	Value T
	Err   error
}

// Subscription delivers the latest result of a query. A subscriber that
// falls behind only ever sees the newest result.
type Subscription[T any] struct {
	id       string
	registry *Registry
	match    Matcher
	load     func() (T, error)
	updates  chan Update[T]

	refreshMu sync.Mutex // one load at a time, so results never go back in time
	mu        sync.Mutex
	closed    bool
	once      sync.Once
}

// Subscribe registers a watch and delivers its first result before returning.
func Subscribe[T any](registry *Registry, match Matcher, load func() (T, error)) *Subscription[T] {
	s := &Subscription[T]{
		id:       uuid.NewString(),
		registry: registry,
		match:    match,
		load:     load,
		updates:  make(chan Update[T], 1),
	}
	registry.add(s.id, s)
	s.refresh()
	return s
}

func (s *Subscription[T]) ID() string {
	return s.id
}

// Updates is closed once the subscription is closed.
func (s *Subscription[T]) Updates() <-chan Update[T] {
	return s.updates
}

// Close stops deliveries. Calling it more than once is harmless.
func (s *Subscription[T]) Close() {
	s.once.Do(func() {
		s.registry.remove(s.id)
		s.mu.Lock()
		s.closed = true
		close(s.updates)
		s.mu.Unlock()
	})
}

func (s *Subscription[T]) matches(key string) bool {
	return s.match(key)
}

func (s *Subscription[T]) close() {
	s.Close()
}

func (s *Subscription[T]) refresh() {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	value, err := s.load()
	if err != nil {
		s.registry.log.Warn("Subscription refresh failed", "subscription", s.id, "error", err)
	}
	s.deliver(Update[T]{Value: value, Err: err})
}

func (s *Subscription[T]) deliver(u Update[T]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	// Replace a result the subscriber has not read yet.
	select {
	case <-s.updates:
	default:
	}
	select {
	case s.updates <- u:
	default:
	}
}
