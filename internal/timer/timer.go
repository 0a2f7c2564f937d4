// Package timer drives the per-second tick of running task timers.
package timer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"paper2plan/internal/logging"

	"github.com/robfig/cron/v3"
)

// Ticker advances running timers by one step
type Ticker interface {
	Tick(ctx context.Context) (int, error)
}

// Timer calls a Ticker on a fixed interval. A tick that is still running
// when the next one is due is skipped rather than queued.
type Timer struct {
	mu       sync.Mutex
	cron     *cron.Cron
	ticker   Ticker
	interval time.Duration
	logger   *slog.Logger
	timeout  time.Duration
	running  bool
}

// New creates a stopped timer. Intervals are whole seconds; anything
// shorter than a second is rejected.
func New(ticker Ticker, interval time.Duration, logger *slog.Logger) (*Timer, error) {
	if interval < time.Second {
		return nil, fmt.Errorf("tick interval must be at least 1s, got %s", interval)
	}
	if logger == nil {
		logger = logging.Discard()
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	t := &Timer{
		cron:     c,
		ticker:   ticker,
		interval: interval,
		logger:   logger,
		timeout:  interval,
	}
	if _, err := c.AddFunc(Spec(interval), t.run); err != nil {
		return nil, fmt.Errorf("failed to schedule tick: %w", err)
	}
	return t, nil
}

// Spec is the cron schedule for an interval
func Spec(interval time.Duration) string {
	seconds := int(interval / time.Second)
	if seconds <= 0 {
		seconds = 1
	}
	return fmt.Sprintf("@every %ds", seconds)
}

// Start begins ticking. Starting twice is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.cron.Start()
	t.running = true
	logging.Debugf("timer started, ticking %s\n", Spec(t.interval))
}

// Stop halts ticking and waits for an in-flight tick or ctx, whichever
// comes first.
func (t *Timer) Stop(ctx context.Context) error {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return nil
	}
	t.running = false
	done := t.cron.Stop()
	t.mu.Unlock()

	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (t *Timer) run() {
	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()

	if _, err := t.ticker.Tick(ctx); err != nil {
		t.logger.Error("timer tick failed", "error", err)
	}
}
