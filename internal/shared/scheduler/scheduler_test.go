package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsImmediatelyOnStart(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.Every("probe", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	}))

	s.Start()
	t.Cleanup(func() { _ = s.Shutdown() })

	assert.Eventually(t, func() bool { return runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_ShutdownCancelsContext(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	started := make(chan struct{})
	done := make(chan struct{})
	require.NoError(t, s.Every("blocking", time.Hour, func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		close(done)
		return ctx.Err()
	}))

	s.Start()
	<-started
	require.NoError(t, s.Shutdown())

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not observe cancellation")
	}
}
