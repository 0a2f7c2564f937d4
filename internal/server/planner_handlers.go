package server

import (
	"bytes"
	"io"
	"strings"
	"time"

	"paper2plan/internal/domain"
	apperrors "paper2plan/internal/errors"
	"paper2plan/internal/imposition"
	"paper2plan/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
)

type titleRequest struct {
	Title string `json:"title"`
}

type dropRequest struct {
	TaskID    string `json:"taskId"`
	DayOfWeek *int   `json:"dayOfWeek,omitempty"`
	Date      string `json:"date,omitempty"`
}

type themeRequest struct {
	Theme string `json:"theme"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func (s *Server) overview(c *fiber.Ctx) error {
	return ok(c, s.planner.GetOverview())
}

func (s *Server) week(c *fiber.Ctx) error {
	day := time.Now()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(domain.DateLayout, raw, time.Local)
		if err != nil {
			return apperrors.NewInvalidInputError("date", raw, "expected YYYY-MM-DD")
		}
		day = parsed
	}
	return ok(c, s.planner.GetWeek(day))
}

func (s *Server) listTasks(c *fiber.Ctx) error {
	return ok(c, s.services.TaskService.List())
}

func (s *Server) createTask(c *fiber.Ctx) error {
	var req titleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	task, err := s.services.TaskService.Create(c.UserContext(), req.Title)
	if err != nil {
		return err
	}
	return created(c, task)
}

func (s *Server) renameTask(c *fiber.Ctx) error {
	var req titleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	task, err := s.services.TaskService.Rename(c.UserContext(), c.Params("id"), req.Title)
	if err != nil {
		return err
	}
	if task == nil {
		return ok(c, fiber.Map{"deleted": true})
	}
	return ok(c, task)
}

func (s *Server) deleteTask(c *fiber.Ctx) error {
	if err := s.services.TaskService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (s *Server) toggleComplete(c *fiber.Ctx) error {
	task, err := s.services.TaskService.ToggleComplete(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, task)
}

func (s *Server) toggleTimer(c *fiber.Ctx) error {
	task, err := s.services.TaskService.ToggleTimer(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, task)
}

func (s *Server) estimateTask(c *fiber.Ctx) error {
	task, err := s.services.TaskService.Estimate(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, task)
}

func (s *Server) listEvents(c *fiber.Ctx) error {
	if c.QueryBool("visible") {
		return ok(c, s.services.EventService.ListVisible())
	}
	return ok(c, s.services.EventService.List())
}

func (s *Server) createEvent(c *fiber.Ctx) error {
	var req services.EventInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.ID = ""
	event, err := s.services.EventService.Save(c.UserContext(), req)
	if err != nil {
		return err
	}
	return created(c, event)
}

func (s *Server) updateEvent(c *fiber.Ctx) error {
	var req services.EventInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	req.ID = utils.CopyString(c.Params("id"))
	event, err := s.services.EventService.Save(c.UserContext(), req)
	if err != nil {
		return err
	}
	return ok(c, event)
}

func (s *Server) deleteEvent(c *fiber.Ctx) error {
	if err := s.services.EventService.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return ok(c, fiber.Map{"deleted": true})
}

func (s *Server) dropTask(c *fiber.Ctx) error {
	var req dropRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	event, err := s.services.EventService.DropTask(c.UserContext(), req.TaskID, services.DropTarget{
		DayOfWeek: req.DayOfWeek,
		Date:      req.Date,
	})
	if err != nil {
		return err
	}
	return created(c, event)
}

func (s *Server) listCalendars(c *fiber.Ctx) error {
	return ok(c, s.services.CalendarService.List())
}

func (s *Server) toggleVisibility(c *fiber.Ctx) error {
	cal, err := s.services.CalendarService.ToggleVisibility(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return ok(c, cal)
}

func (s *Server) getTheme(c *fiber.Ctx) error {
	return ok(c, fiber.Map{"theme": s.services.ThemeService.Get()})
}

func (s *Server) setTheme(c *fiber.Ctx) error {
	var req themeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	theme, err := s.services.ThemeService.Set(c.UserContext(), req.Theme)
	if err != nil {
		return err
	}
	return ok(c, fiber.Map{"theme": theme})
}

// importImage accepts either a multipart "image" file or a JSON body with
// a base64 image
func (s *Server) importImage(c *fiber.Ctx) error {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		fh, err := c.FormFile("image")
		if err != nil {
			return badRequest(c, "image file is required")
		}
		f, err := fh.Open()
		if err != nil {
			return err
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			return err
		}
		result, err := s.services.ImportService.ImportBytes(c.UserContext(), fh.Header.Get(fiber.HeaderContentType), data)
		if err != nil {
			return err
		}
		return ok(c, result)
	}

	var req analyzeImageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	result, err := s.services.ImportService.Import(c.UserContext(), req.Image)
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (s *Server) magicSchedule(c *fiber.Ctx) error {
	result, err := s.services.ScheduleService.MagicSchedule(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, result)
}

func (s *Server) undoSchedule(c *fiber.Ctx) error {
	events, err := s.services.ScheduleService.Undo(c.UserContext())
	if err != nil {
		return err
	}
	return ok(c, events)
}

func (s *Server) exportICS(c *fiber.Ctx) error {
	var buf bytes.Buffer
	if _, err := s.services.ExportService.WriteICS(&buf); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/calendar; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="paper2plan.ics"`)
	return c.Send(buf.Bytes())
}

func (s *Server) printSide(c *fiber.Ctx) error {
	side, valid := imposition.ParseSide(c.Params("side"))
	if !valid {
		return apperrors.NewInvalidInputError("side", c.Params("side"), "must be A or B")
	}

	var buf bytes.Buffer
	if err := s.services.PrintService.Render(&buf, side); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

func (s *Server) transcript(c *fiber.Ctx) error {
	return ok(c, s.services.ChatService.Transcript())
}

func (s *Server) sendMessage(c *fiber.Ctx) error {
	var req messageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	result, err := s.services.ChatService.Send(c.UserContext(), req.Message)
	if err != nil {
		return err
	}
	return ok(c, result)
}
