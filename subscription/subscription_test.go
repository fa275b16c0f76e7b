package subscription

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func newRegistry() *Registry {
	return NewRegistry(logs.GetLoggerFromLevel(slog.LevelDebug))
}

func receive[T any](t *testing.T, s *Subscription[T]) Update[T] {
	t.Helper()
	select {
	case u, ok := <-s.Updates():
		require.True(t, ok, "updates closed")
		return u
	case <-time.After(time.Second):
		require.FailNow(t, "no update delivered")
		return Update[T]{}
	}
}

func requireNoUpdate[T any](t *testing.T, s *Subscription[T]) {
	t.Helper()
	select {
	case u := <-s.Updates():
		require.FailNow(t, "unexpected update", "%v", u)
	default:
	}
}

func TestSubscribe_DeliversInitialResult(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()

	sub := Subscribe(registry, KeyMatcher("Peer:01"), func() (string, error) { return "alice", nil })
	defer sub.Close()

	u := receive(t, sub)
	req.NoError(u.Err)
	req.Equal("alice", u.Value)
	req.Equal(1, registry.Len())
}

func TestRegistry_RefreshesOnlyMatchingWatches(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	var peers, messages atomic.Int32

	peerSub := Subscribe(registry, PrefixMatcher("Peer:"), func() (int32, error) { return peers.Add(1), nil })
	messageSub := Subscribe(registry, PrefixMatcher("Message:"), func() (int32, error) { return messages.Add(1), nil })
	receive(t, peerSub)
	receive(t, messageSub)

	// When a peer changes
	registry.Changed([]string{"Peer:01"})
	registry.Flush()

	// Then only the peer watch is recomputed
	req.Equal(int32(2), receive(t, peerSub).Value)
	requireNoUpdate(t, messageSub)
}

func TestSubscription_SlowSubscriberSeesLatestOnly(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	var version atomic.Int32

	sub := Subscribe(registry, KeyMatcher("Chatroom:01"), func() (int32, error) { return version.Add(1), nil })
	defer sub.Close()

	// Given three refreshes nobody reads
	for range 3 {
		registry.Changed([]string{"Chatroom:01"})
		registry.Flush()
	}

	// Then only the newest result is pending
	req.Equal(int32(4), receive(t, sub).Value)
	requireNoUpdate(t, sub)
}

func TestSubscription_LoadErrorReachesSubscriber(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	fail := atomic.Bool{}

	sub := Subscribe(registry, KeyMatcher("Message:01"), func() (string, error) {
		if fail.Load() {
			return "", fmt.Errorf("corrupted")
		}
		return "ok", nil
	})
	defer sub.Close()
	receive(t, sub)

	fail.Store(true)
	registry.Changed([]string{"Message:01"})
	registry.Flush()

	u := receive(t, sub)
	req.EqualError(u.Err, "corrupted")
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	sub := Subscribe(registry, KeyMatcher("Vcard:01"), func() (int, error) { return 1, nil })
	receive(t, sub)

	sub.Close()
	sub.Close()

	_, ok := <-sub.Updates()
	req.False(ok)
	req.Zero(registry.Len())

	// A change after close reaches nobody and does not panic
	registry.Changed([]string{"Vcard:01"})
	registry.Flush()
}

func TestSubscription_ConcurrentCloseAndRefresh(t *testing.T) {
	registry := newRegistry()
	sub := Subscribe(registry, PrefixMatcher(""), func() (int, error) { return 1, nil })

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for range 100 {
			registry.Changed([]string{"any"})
			registry.Flush()
		}
	}()
	go func() {
		defer wg.Done()
		sub.Close()
	}()
	wg.Wait()
}

func TestRegistry_RunDeliversChanges(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- registry.Run(ctx) }()

	var version atomic.Int32
	sub := Subscribe(registry, KeyMatcher("Peer:01"), func() (int32, error) { return version.Add(1), nil })
	defer sub.Close()
	req.Equal(int32(1), receive(t, sub).Value)

	// When the store reports a change
	registry.Changed([]string{"Peer:01"})

	// Then the worker delivers the recomputed result
	req.Equal(int32(2), receive(t, sub).Value)

	cancel()
	select {
	case err := <-done:
		req.NoError(err)
	case <-time.After(time.Second):
		req.Fail("registry worker did not stop")
	}
}

func TestRegistry_CloseReleasesEverything(t *testing.T) {
	req := require.New(t)
	registry := newRegistry()
	a := Subscribe(registry, KeyMatcher("a"), func() (int, error) { return 1, nil })
	b := Subscribe(registry, KeyMatcher("b"), func() (int, error) { return 1, nil })

	registry.Close()

	req.Zero(registry.Len())
	for _, s := range []*Subscription[int]{a, b} {
		receive(t, s)
		_, ok := <-s.Updates()
		req.False(ok)
	}
}

func TestAnyMatcher(t *testing.T) {
	req := require.New(t)
	m := AnyMatcher(PrefixMatcher("Peer:"), KeyMatcher("Vcard:01"))

	req.True(m("Peer:02"))
	req.True(m("Vcard:01"))
	req.False(m("Vcard:02"))
}
