package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"paper2plan/internal/cache"
	"paper2plan/internal/config"
	"paper2plan/internal/errors"
	"paper2plan/internal/server"
	"paper2plan/internal/timer"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/gofiber/fiber/v2"
)

// limiterPrefix namespaces rate limit counts in a shared Redis
const limiterPrefix = "p2p:"

// awaitShutdown blocks until SIGINT or SIGTERM, runs the operations and
// returns the exit code. Swapped in tests.
var awaitShutdown = func(ctx context.Context, timeout time.Duration, ops map[string]gfshutdown.Operation) int {
	return <-gfshutdown.GracefulShutdown(ctx, timeout, ops)
}

// ServeCommand handles "serve"
type ServeCommand struct {
	app *App

	// AccessLog receives one line per HTTP request; nil means stdout
	AccessLog io.Writer

	listen         func(*server.Server) error
	limiterStorage func(config.CacheConfig) (fiber.Storage, error)
}

// NewServeCommand creates a new serve handler
func NewServeCommand(app *App) *ServeCommand {
	return &ServeCommand{
		app:            app,
		listen:         (*server.Server).Listen,
		limiterStorage: cache.NewLimiterStorage,
	}
}

// Execute runs the HTTP API and the task timer until the process is
// signalled, then stops both within the shutdown timeout
func (c *ServeCommand) Execute(ctx context.Context, args []string) error {
	srv, tmr, ops, err := c.build()
	if err != nil {
		return err
	}
	logger := c.app.planner.Logger
	cfg := c.app.planner.Config

	tmr.Start()
	go func() {
		if err := c.listen(srv); err != nil {
			logger.Error("http server stopped", "error", err)
		}
	}()
	c.app.printf("paper2plan listening on :%d\n", cfg.Server.Port)

	code := awaitShutdown(context.Background(), cfg.Server.ShutdownTimeout, ops)
	if code != 0 {
		return fmt.Errorf("shutdown finished with exit code %d", code)
	}
	return nil
}

// build wires the server and the timer over the attached planner and
// returns the operations that stop them
func (c *ServeCommand) build() (*server.Server, *timer.Timer, map[string]gfshutdown.Operation, error) {
	if c.app.planner == nil {
		return nil, nil, nil, errors.NewUnavailableError("planner", "planner is not initialized")
	}
	p := c.app.planner

	tmr, err := timer.New(p.Services.TaskService, p.Config.Timer.TickInterval, p.Logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create task timer: %w", err)
	}

	storage, err := c.limiterStorage(p.Config.Cache)
	if err != nil {
		p.Logger.Warn("rate limit storage unavailable, counting in memory", "error", err)
		storage = nil
	}

	srv := server.New(p.Config, p.Services, p.Planner, server.Options{
		Logger:         p.Logger,
		AccessLog:      c.AccessLog,
		LimiterStorage: storage,
		LimiterPrefix:  limiterPrefix,
	})

	ops := map[string]gfshutdown.Operation{
		"http":  srv.Shutdown,
		"timer": tmr.Stop,
	}
	if storage != nil {
		ops["ratelimit"] = func(ctx context.Context) error {
			return storage.Close()
		}
	}
	return srv, tmr, ops, nil
}
