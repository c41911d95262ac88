package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"eventinvite/internal/domain"
)

// sweepStore counts sweep attempts and fails the first `failures` of them.
type sweepStore struct {
	mockEventStore
	mu       sync.Mutex
	calls    int
	failures int
	swept    chan struct{}
}

func (s *sweepStore) RemoveExpired(ctx context.Context, maxAge time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.calls <= s.failures {
		return 0, domain.ErrUnavailable
	}
	select {
	case s.swept <- struct{}{}:
	default:
	}
	return 1, nil
}

func (s *sweepStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func TestPurger_RetriesUntilSweepSucceeds(t *testing.T) {
	store := &sweepStore{failures: 2, swept: make(chan struct{}, 1)}
	purger := NewPurger(store, discardLogger(), 5*time.Millisecond, 90*24*time.Hour, time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		purger.Run(ctx)
		close(done)
	}()

	select {
	case <-store.swept:
	case <-time.After(2 * time.Second):
		t.Fatal("sweep never succeeded")
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("purger did not stop on cancellation")
	}

	// two failed attempts, then the one that succeeded
	require.GreaterOrEqual(t, store.callCount(), 3)
}

func TestPurger_StopsBeforeFirstSweepOnCancel(t *testing.T) {
	store := &sweepStore{swept: make(chan struct{}, 1)}
	purger := NewPurger(store, discardLogger(), time.Hour, 90*24*time.Hour, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		purger.Run(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("purger did not stop on cancellation")
	}
	require.Zero(t, store.callCount())
}
