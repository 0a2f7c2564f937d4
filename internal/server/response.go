package server

import (
	"errors"

	apperrors "paper2plan/internal/errors"

	"github.com/gofiber/fiber/v2"
)

// Envelope wraps every JSON response
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(Envelope{Success: true, Data: data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(Envelope{Success: true, Data: data})
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(Envelope{Success: false, Error: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return fail(c, fiber.StatusBadRequest, message)
}

// StatusFor maps an application error to its HTTP status
func StatusFor(err error) int {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code
	}

	appErr, isApp := apperrors.AsAppError(err)
	if !isApp {
		return fiber.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
		return fiber.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return fiber.StatusNotFound
	case apperrors.ErrorTypeConflict:
		return fiber.StatusConflict
	case apperrors.ErrorTypeUnavailable:
		return fiber.StatusServiceUnavailable
	case apperrors.ErrorTypeUpstream:
		return fiber.StatusBadGateway
	case apperrors.ErrorTypeTimeout:
		return fiber.StatusGatewayTimeout
	default:
		return fiber.StatusInternalServerError
	}
}

// errorHandler renders handler errors in the envelope. Unexpected errors
// are logged and their details withheld.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	status := StatusFor(err)

	var message string
	var fe *fiber.Error
	switch {
	case errors.As(err, &fe):
		message = fe.Message
	case apperrors.IsAppError(err):
		message = apperrors.GetUserMessage(err)
	default:
		message = "An unexpected error occurred. Please try again."
	}

	if status >= fiber.StatusInternalServerError && apperrors.ShouldLogError(err) {
		s.logger.Error("request failed", "method", c.Method(), "path", c.Path(), "status", status, "error", err)
	}
	return fail(c, status, message)
}
