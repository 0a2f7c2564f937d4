package server

import (
	"strings"

	"paper2plan/internal/ai"
	"paper2plan/internal/domain"
	"paper2plan/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type analyzeImageRequest struct {
	Image string `json:"image"`
}

type suggestScheduleRequest struct {
	Tasks          []domain.Task          `json:"tasks"`
	ExistingEvents []domain.CalendarEvent `json:"existingEvents"`
	CurrentDate    string                 `json:"currentDate"`
}

type chatRequest struct {
	Messages    []domain.ChatMessage   `json:"messages"`
	Tasks       []domain.Task          `json:"tasks"`
	Events      []domain.CalendarEvent `json:"events"`
	CurrentDate string                 `json:"currentDate"`
}

type estimateRequest struct {
	TaskTitle string `json:"taskTitle"`
}

func (s *Server) providerInfo(c *fiber.Ctx) error {
	return ok(c, s.services.Gateway.ProviderInfo())
}

func (s *Server) providerConfig(c *fiber.Ctx) error {
	var req ai.ProviderConfig
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	info, err := s.services.Gateway.SetProviderConfig(req)
	if err != nil {
		return err
	}
	s.logger.Info("ai provider changed", "provider", info.Provider, "model", info.Model, "enabled", info.Enabled)
	return ok(c, info)
}

func (s *Server) analyzeImage(c *fiber.Ctx) error {
	var req analyzeImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.imageValidator.ValidatePayload(req.Image); err != nil {
		return validation.ToAppError(err)
	}

	result, err := s.services.Gateway.AnalyzeImage(c.UserContext(), req.Image)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (s *Server) suggestSchedule(c *fiber.Ctx) error {
	var req suggestScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if strings.TrimSpace(req.CurrentDate) == "" {
		return badRequest(c, "currentDate is required")
	}

	result, err := s.services.Gateway.SuggestSchedule(c.UserContext(), req.Tasks, req.ExistingEvents, req.CurrentDate)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (s *Server) chat(c *fiber.Ctx) error {
	var req chatRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.chatValidator.ValidateMessages(req.Messages); err != nil {
		return validation.ToAppError(err)
	}
	if strings.TrimSpace(req.CurrentDate) == "" {
		return badRequest(c, "currentDate is required")
	}

	reply, err := s.services.Gateway.Chat(c.UserContext(), req.Messages, req.Tasks, req.Events, req.CurrentDate)
	if err != nil {
		return err
	}
	return ok(c, reply)
}

func (s *Server) estimateDuration(c *fiber.Ctx) error {
	var req estimateRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if err := s.taskValidator.ValidateEstimateTitle(req.TaskTitle); err != nil {
		return validation.ToAppError(err)
	}

	estimate, err := s.services.Gateway.EstimateDuration(c.UserContext(), req.TaskTitle)
	if err != nil {
		return err
	}
	return ok(c, estimate)
}
