// Package subscription turns store changes into refreshed query results.
// The store tells the registry which keys a commit touched; the registry
// worker recomputes every watch matching one of them and pushes the full
// result to its subscriber. The writer never waits on a subscriber.
package subscription

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"chat-store/observability"
)

// Matcher tells whether a changed key may affect a watch.
type Matcher func(key string) bool

// KeyMatcher watches a single document.
func KeyMatcher(key string) Matcher {
	return func(k string) bool { return k == key }
}

// PrefixMatcher watches every document of a namespace.
func PrefixMatcher(prefix string) Matcher {
	return func(k string) bool { return strings.HasPrefix(k, prefix) }
}

// AnyMatcher combines matchers, for results joining several namespaces.
func AnyMatcher(matchers ...Matcher) Matcher {
	return func(k string) bool {
		for _, m := range matchers {
			if m(k) {
				return true
			}
		}
		return false
	}
}

type watch interface {
	matches(key string) bool
	refresh()
	close()
}

type Registry struct {
	mu      sync.RWMutex
	watches map[string]watch // subscription id -> watch

	dirtyMu sync.Mutex
	dirty   map[string]struct{}
	signal  chan struct{}

	log *slog.Logger
}

func NewRegistry(log *slog.Logger) *Registry {
	return &Registry{
		watches: make(map[string]watch),
		dirty:   make(map[string]struct{}),
		signal:  make(chan struct{}, 1),
		log:     log,
	}
}

// Changed records the keys of a committed batch and wakes the worker.
// It never blocks.
func (r *Registry) Changed(keys []string) {
	r.dirtyMu.Lock()
	for _, k := range keys {
		r.dirty[k] = struct{}{}
	}
	r.dirtyMu.Unlock()

	select {
	case r.signal <- struct{}{}:
	default:
	}
}

// Run refreshes affected watches until ctx is done.
func (r *Registry) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-r.signal:
			r.Flush()
		}
	}
}

// Flush refreshes, on the calling goroutine, every watch affected by the
// changes recorded so far.
func (r *Registry) Flush() {
	r.dirtyMu.Lock()
	dirty := r.dirty
	r.dirty = make(map[string]struct{})
	r.dirtyMu.Unlock()
	if len(dirty) == 0 {
		return
	}

	for _, w := range r.affected(dirty) {
		w.refresh()
		observability.SubscriptionRefreshes.Inc()
	}
}

func (r *Registry) affected(dirty map[string]struct{}) []watch {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var res []watch
	for _, w := range r.watches {
		for key := range dirty {
			if w.matches(key) {
				res = append(res, w)
				break
			}
		}
	}
	return res
}

// Len counts the open subscriptions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.watches)
}

// Close releases every subscription still open.
func (r *Registry) Close() {
	r.mu.RLock()
	open := make([]watch, 0, len(r.watches))
	for _, w := range r.watches {
		open = append(open, w)
	}
	r.mu.RUnlock()

	for _, w := range open {
		w.close()
	}
}

func (r *Registry) add(id string, w watch) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watches[id] = w
	observability.ActiveSubscriptions.Inc()
}

func (r *Registry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.watches[id]; ok {
		delete(r.watches, id)
		observability.ActiveSubscriptions.Dec()
	}
}
