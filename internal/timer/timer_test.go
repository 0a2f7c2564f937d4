package timer

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingTicker struct {
	calls atomic.Int32
	err   error
}

func (c *countingTicker) Tick(ctx context.Context) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSpec(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     string
	}{
		{"should tick every second", time.Second, "@every 1s"},
		{"should truncate to whole seconds", 2500 * time.Millisecond, "@every 2s"},
		{"should never go below one second", time.Millisecond, "@every 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Spec(tt.interval))
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("should reject sub-second intervals", func(t *testing.T) {
		_, err := New(&countingTicker{}, 500*time.Millisecond, nil)
		assert.Error(t, err)
	})

	t.Run("should log tick failures and keep going", func(t *testing.T) {
		ticker := &countingTicker{err: errors.New("disk full")}
		tm, err := New(ticker, time.Second, nil)
		require.NoError(t, err)

		tm.run()
		tm.run()
		assert.Equal(t, int32(2), ticker.calls.Load())
	})
}

func TestTimer_StartStop(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for a real tick")
	}

	ticker := &countingTicker{}
	tm, err := New(ticker, time.Second, nil)
	require.NoError(t, err)

	tm.Start()
	tm.Start()
	assert.Eventually(t, func() bool { return ticker.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, tm.Stop(ctx))
	require.NoError(t, tm.Stop(ctx))

	stopped := ticker.calls.Load()
	time.Sleep(1200 * time.Millisecond)
	assert.Equal(t, stopped, ticker.calls.Load())
}
