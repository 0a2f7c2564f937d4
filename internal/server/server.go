// Package server exposes the planner and the AI pass-through endpoints
// over HTTP.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"paper2plan/internal/api"
	"paper2plan/internal/cache"
	"paper2plan/internal/config"
	"paper2plan/internal/logging"
	"paper2plan/internal/services"
	"paper2plan/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

const rateLimitMessage = "Too many requests from this IP, please try again later."

// Options adjust the server beyond its configuration
type Options struct {
	Logger    *slog.Logger
	AccessLog io.Writer

	// LimiterStorage shares rate limit counts between processes; nil keeps
	// them in memory
	LimiterStorage fiber.Storage
	// LimiterPrefix namespaces the counts in LimiterStorage
	LimiterPrefix string
}

// Server is the HTTP front of the planner
type Server struct {
	app      *fiber.App
	cfg      config.ServerConfig
	services *services.ServiceContainer
	planner  api.PlannerAPI
	logger   *slog.Logger
	opts     Options

	imageValidator *validation.ImageValidator
	taskValidator  *validation.TaskValidator
	chatValidator  *validation.ChatValidator
}

// New builds the Fiber app with middleware and routes; it does not listen
func New(cfg *config.Config, container *services.ServiceContainer, plannerAPI api.PlannerAPI, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.AccessLog == nil {
		opts.AccessLog = os.Stdout
	}

	validator := validation.NewValidatorWithConfig(cfg)
	s := &Server{
		cfg:            cfg.Server,
		services:       container,
		planner:        plannerAPI,
		logger:         opts.Logger,
		opts:           opts,
		imageValidator: validation.NewImageValidator(validator),
		taskValidator:  validation.NewTaskValidator(validator),
		chatValidator:  validation.NewChatValidator(validator),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "paper2plan",
		DisableStartupMessage: true,
		BodyLimit:             cfg.Server.BodyLimit,
		ErrorHandler:          s.errorHandler,
		// params and bodies outlive the request once stored in the planner
		Immutable: true,
	})

	s.app.Use(recover.New())
	s.app.Use(logger.New(logger.Config{
		Format: "${time} ${status} ${method} ${path} ${latency}\n",
		Output: opts.AccessLog,
	}))
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.CORSOrigin,
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	s.setupRoutes()
	return s
}

// App returns the underlying Fiber app
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on the configured port until Shutdown
func (s *Server) Listen() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.logger.Info("http server listening", "addr", addr, "cors_origin", s.cfg.CORSOrigin)
	return s.app.Listen(addr)
}

// refresh loads planner changes made by CLI commands since the last request
func (s *Server) refresh(c *fiber.Ctx) error {
	if err := s.services.Refresh(c.UserContext()); err != nil {
		s.logger.Warn("failed to refresh planner state", "error", err)
	}
	return c.Next()
}

// Shutdown stops accepting requests and waits for in-flight ones or ctx
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)

	r := s.app.Group("/api", limiter.New(limiter.Config{
		Max:        s.cfg.RateLimitMax,
		Expiration: s.cfg.RateLimitWindow,
		Storage:    s.opts.LimiterStorage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return cache.LimiterKey(s.opts.LimiterPrefix, c.IP())
		},
		LimitReached: func(c *fiber.Ctx) error {
			return fail(c, fiber.StatusTooManyRequests, rateLimitMessage)
		},
	}), s.refresh)

	// AI pass-through
	r.Get("/provider-info", s.providerInfo)
	r.Post("/provider-config", s.providerConfig)
	r.Post("/analyze-image", s.analyzeImage)
	r.Post("/suggest-schedule", s.suggestSchedule)
	r.Post("/chat", s.chat)
	r.Post("/estimate-duration", s.estimateDuration)

	// Planner state
	r.Get("/overview", s.overview)
	r.Get("/week", s.week)

	r.Get("/tasks", s.listTasks)
	r.Post("/tasks", s.createTask)
	r.Patch("/tasks/:id", s.renameTask)
	r.Delete("/tasks/:id", s.deleteTask)
	r.Post("/tasks/:id/complete", s.toggleComplete)
	r.Post("/tasks/:id/timer", s.toggleTimer)
	r.Post("/tasks/:id/estimate", s.estimateTask)

	r.Get("/events", s.listEvents)
	r.Post("/events", s.createEvent)
	r.Post("/events/drop", s.dropTask)
	r.Put("/events/:id", s.updateEvent)
	r.Delete("/events/:id", s.deleteEvent)

	r.Get("/calendars", s.listCalendars)
	r.Post("/calendars/:id/visibility", s.toggleVisibility)

	r.Get("/theme", s.getTheme)
	r.Put("/theme", s.setTheme)

	r.Post("/import", s.importImage)
	r.Post("/schedule/magic", s.magicSchedule)
	r.Post("/schedule/undo", s.undoSchedule)

	r.Get("/export.ics", s.exportICS)
	r.Get("/print/:side", s.printSide)

	r.Get("/assistant", s.transcript)
	r.Post("/assistant", s.sendMessage)
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"provider":  s.services.Gateway.ProviderInfo(),
	})
}
