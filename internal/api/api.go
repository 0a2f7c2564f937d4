// Package api assembles the planner application from configuration and
// exposes the read models shared by the HTTP server and the CLI.
package api

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"

	"paper2plan/internal/ai"
	"paper2plan/internal/cache"
	"paper2plan/internal/config"
	"paper2plan/internal/export"
	"paper2plan/internal/logging"
	"paper2plan/internal/planner"
	"paper2plan/internal/repository/sqlite"
	"paper2plan/internal/services"
	"paper2plan/internal/validation"
)

// Dependencies replaces parts of the default wiring. Nil fields are built
// from the configuration.
type Dependencies struct {
	Repository sqlite.Repository
	Cache      cache.Store
	Gateway    ai.Service
	Logger     *slog.Logger
}

// App is a fully wired planner
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *planner.Store
	Services *services.ServiceContainer
	Planner  PlannerAPI

	closers []func() error
}

// New opens the database, loads the planner state and wires the services
func New(ctx context.Context, cfg *config.Config, deps Dependencies) (*App, error) {
	app := &App{Config: cfg, Logger: deps.Logger}
	if app.Logger == nil {
		app.Logger = logging.New(cfg.Application.Verbose)
	}

	repo := deps.Repository
	if repo == nil {
		var err error
		repo, err = config.NewRepositoryFactory(cfg).Create()
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, repo.Close)
	}

	store, err := planner.Open(ctx, repo, app.Logger)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to load planner state: %w", err)
	}
	app.Store = store

	gateway := deps.Gateway
	if gateway == nil {
		estimates := deps.Cache
		if estimates == nil {
			estimates, err = cache.New(ctx, cfg.Cache)
			if err != nil {
				app.Logger.Warn("estimate cache unavailable, using memory", "error", err)
				estimates = cache.NewMemory(cfg.Cache.TTL)
			}
			app.closers = append(app.closers, estimates.Close)
		}
		gateway = ai.NewFromConfig(cfg.AI, estimates, app.Logger)
	}

	app.Services = services.NewServiceContainer(
		store,
		gateway,
		validation.NewValidatorWithConfig(cfg),
		export.OptionsFromConfig(cfg.Export),
		app.Logger,
	)
	app.Planner = NewPlannerAPI(app.Services)

	logging.Debugf("app ready: provider %s, environment %s\n", gateway.ProviderInfo().Provider, cfg.Application.Environment)
	return app, nil
}

// Close releases everything New opened, in reverse order
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return stderrors.Join(errs...)
}
