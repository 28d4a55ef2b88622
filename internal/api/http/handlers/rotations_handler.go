package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/view"
)

// RotationsHandler exposes rotation assignment and the calendar feed.
type RotationsHandler struct {
	schedule *service.ScheduleService
	views    *view.Renderer
}

// NewRotationsHandler constructs the handler.
func NewRotationsHandler(schedule *service.ScheduleService, views *view.Renderer) *RotationsHandler {
	return &RotationsHandler{schedule: schedule, views: views}
}

// CreateForm handles GET /createRotation.
func (h *RotationsHandler) CreateForm(c *fiber.Ctx) error {
	employees, err := h.schedule.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	shifts, err := h.schedule.ListShifts(c.UserContext())
	if err != nil {
		return err
	}
	return h.views.Render(c, "createRotation.html", fiber.Map{
		"Employees": employees,
		"Shifts":    shifts,
	})
}

// Create handles POST /createRotation.
func (h *RotationsHandler) Create(c *fiber.Ctx) error {
	var req dto.RotationForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid Date, expected YYYY-MM-DD")
	}

	if _, err := h.schedule.AssignRotation(c.UserContext(), date, req.EmployeeID, req.ShiftID); err != nil {
		return err
	}
	return c.Redirect("/createRotation", fiber.StatusFound)
}

// Feed handles GET /api/rotations, the JSON calendar feed.
func (h *RotationsHandler) Feed(c *fiber.Ctx) error {
	rows, err := h.schedule.RotationEvents(c.UserContext())
	if err != nil {
		return err
	}

	events := make([]dto.CalendarEvent, 0, len(rows))
	for _, row := range rows {
		events = append(events, dto.CalendarEvent{
			Title: fmt.Sprintf("%s (%s)", row.EmployeeName, row.ShiftName),
			Start: row.Date.Format(time.DateOnly),
		})
	}
	return c.JSON(events)
}
