package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRealtimeRunsCallbacksOnClockGoroutine(t *testing.T) {
	rt := NewRealtime(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	errCh := make(chan error, 1)
	go func() { errCh <- rt.Run(ctx) }()

	fired := make(chan struct{}, 1)
	require.NoError(t, rt.Do(ctx, func() {
		var h Handle
		h = rt.Schedule(2*time.Millisecond, func() {
			rt.Cancel(h)
			fired <- struct{}{}
		})
	}))

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("scheduled callback never ran")
	}

	cancel()
	assert.NoError(t, <-errCh)
	assert.ErrorIs(t, rt.Do(context.Background(), func() {}), ErrStopped)
}
