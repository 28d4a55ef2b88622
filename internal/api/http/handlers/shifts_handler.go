package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/domain"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/view"
)

// ShiftsHandler exposes the shift CRUD forms.
type ShiftsHandler struct {
	schedule *service.ScheduleService
	views    *view.Renderer
}

// NewShiftsHandler constructs the handler.
func NewShiftsHandler(schedule *service.ScheduleService, views *view.Renderer) *ShiftsHandler {
	return &ShiftsHandler{schedule: schedule, views: views}
}

// CreateForm handles GET /createShift.
func (h *ShiftsHandler) CreateForm(c *fiber.Ctx) error {
	return h.views.Render(c, "createShift.html", nil)
}

// Create handles POST /createShift.
func (h *ShiftsHandler) Create(c *fiber.Ctx) error {
	var req dto.ShiftForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "Name required")
	}

	shift := &domain.Shift{
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Length:    req.Length,
	}
	if err := h.schedule.CreateShift(c.UserContext(), shift); err != nil {
		return err
	}
	return c.Redirect("/viewShifts", fiber.StatusFound)
}

// List handles GET /viewShifts.
func (h *ShiftsHandler) List(c *fiber.Ctx) error {
	shifts, err := h.schedule.ListShifts(c.UserContext())
	if err != nil {
		return err
	}
	return h.views.Render(c, "viewShifts.html", fiber.Map{"Shifts": shifts})
}

// EditForm handles GET /editShifts/:id.
func (h *ShiftsHandler) EditForm(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid shift id")
	}

	shift, err := h.schedule.GetShift(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.views.Render(c, "editShifts.html", fiber.Map{"Shift": shift})
}

// Update handles POST /updateShift/:id.
func (h *ShiftsHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid shift id")
	}

	var req dto.ShiftForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	shift := &domain.Shift{
		ID:        id,
		Name:      req.Name,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Length:    req.Length,
	}
	if err := h.schedule.UpdateShift(c.UserContext(), shift); err != nil {
		return err
	}
	return c.Redirect("/viewShifts", fiber.StatusFound)
}
