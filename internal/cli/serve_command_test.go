package cli

import (
	"context"
	"errors"
	"io"
	"sort"
	"testing"
	"time"

	"paper2plan/internal/config"
	"paper2plan/internal/server"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubShutdown replaces the signal wait with one that runs the given
// operations right away and returns code
func stubShutdown(t *testing.T, code int, run func(ops map[string]gfshutdown.Operation)) {
	t.Helper()
	orig := awaitShutdown
	awaitShutdown = func(ctx context.Context, timeout time.Duration, ops map[string]gfshutdown.Operation) int {
		run(ops)
		return code
	}
	t.Cleanup(func() { awaitShutdown = orig })
}

// memoryStorage is a fiber.Storage that remembers whether it was closed
type memoryStorage struct {
	data   map[string][]byte
	closed bool
}

func (m *memoryStorage) Get(key string) ([]byte, error) { return m.data[key], nil }

func (m *memoryStorage) Set(key string, val []byte, exp time.Duration) error {
	m.data[key] = val
	return nil
}

func (m *memoryStorage) Delete(key string) error {
	delete(m.data, key)
	return nil
}

func (m *memoryStorage) Reset() error {
	m.data = map[string][]byte{}
	return nil
}

func (m *memoryStorage) Close() error {
	m.closed = true
	return nil
}

func newTestServe(app *App, listened chan<- struct{}) *ServeCommand {
	cmd := NewServeCommand(app)
	cmd.AccessLog = io.Discard
	cmd.listen = func(*server.Server) error {
		if listened != nil {
			close(listened)
		}
		return nil
	}
	return cmd
}

func TestServeCommand_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("should start and stop the server and the timer", func(t *testing.T) {
		app, out := setupTestApp(t, nil)
		app.planner.Config.Server.Port = 3999

		var names []string
		var timerErr error
		stubShutdown(t, 0, func(ops map[string]gfshutdown.Operation) {
			for name := range ops {
				names = append(names, name)
			}
			timerErr = ops["timer"](context.Background())
		})

		listened := make(chan struct{})
		require.NoError(t, newTestServe(app, listened).Execute(ctx, nil))

		select {
		case <-listened:
		case <-time.After(time.Second):
			t.Fatal("server was never started")
		}
		sort.Strings(names)
		assert.Equal(t, []string{"http", "timer"}, names)
		assert.NoError(t, timerErr)
		assert.Equal(t, "paper2plan listening on :3999\n", out.String())
	})

	t.Run("should fail on a nonzero exit code", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		stubShutdown(t, 1, func(ops map[string]gfshutdown.Operation) {
			_ = ops["timer"](context.Background())
		})

		err := newTestServe(app, nil).Execute(ctx, nil)
		require.Error(t, err)
		assert.Equal(t, "shutdown finished with exit code 1", err.Error())
	})

	t.Run("should log listen failures without stopping", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		stubShutdown(t, 0, func(ops map[string]gfshutdown.Operation) {
			_ = ops["timer"](context.Background())
		})

		cmd := newTestServe(app, nil)
		cmd.listen = func(*server.Server) error { return errors.New("address already in use") }
		assert.NoError(t, cmd.Execute(ctx, nil))
	})

	t.Run("should share rate limits through the configured storage", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		storage := &memoryStorage{data: map[string][]byte{}}

		var names []string
		stubShutdown(t, 0, func(ops map[string]gfshutdown.Operation) {
			for name, op := range ops {
				names = append(names, name)
				_ = op(context.Background())
			}
		})

		cmd := newTestServe(app, nil)
		cmd.limiterStorage = func(config.CacheConfig) (fiber.Storage, error) { return storage, nil }
		require.NoError(t, cmd.Execute(ctx, nil))

		sort.Strings(names)
		assert.Equal(t, []string{"http", "ratelimit", "timer"}, names)
		assert.True(t, storage.closed)
	})

	t.Run("should count in memory when the storage is unreachable", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)

		var names []string
		stubShutdown(t, 0, func(ops map[string]gfshutdown.Operation) {
			for name := range ops {
				names = append(names, name)
			}
			_ = ops["timer"](context.Background())
		})

		cmd := newTestServe(app, nil)
		cmd.limiterStorage = func(config.CacheConfig) (fiber.Storage, error) {
			return nil, errors.New("connection refused")
		}
		require.NoError(t, cmd.Execute(ctx, nil))

		sort.Strings(names)
		assert.Equal(t, []string{"http", "timer"}, names)
	})

	t.Run("should refuse a sub-second tick", func(t *testing.T) {
		app, _ := setupTestApp(t, nil)
		app.planner.Config.Timer.TickInterval = 500 * time.Millisecond
		stubShutdown(t, 0, func(ops map[string]gfshutdown.Operation) {
			t.Fatal("shutdown should not be awaited")
		})

		err := newTestServe(app, nil).Execute(ctx, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create task timer")
	})

	t.Run("should need a planner", func(t *testing.T) {
		cmd := newTestServe(NewApp(nil, io.Discard), nil)

		err := cmd.Execute(ctx, nil)
		require.Error(t, err)
		assert.Equal(t, ExitUnavailable, NewErrorHandler().ExitCode(err))
	})
}
