package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/dto"
	"github.com/spec-kit/shift-scheduler/internal/service"
	"github.com/spec-kit/shift-scheduler/internal/view"
)

// EmployeesHandler exposes the employee CRUD forms.
type EmployeesHandler struct {
	schedule *service.ScheduleService
	views    *view.Renderer
}

// NewEmployeesHandler constructs the handler.
func NewEmployeesHandler(schedule *service.ScheduleService, views *view.Renderer) *EmployeesHandler {
	return &EmployeesHandler{schedule: schedule, views: views}
}

// CreateForm handles GET / and GET /createEmployee.
func (h *EmployeesHandler) CreateForm(c *fiber.Ctx) error {
	return h.views.Render(c, "createEmployee.html", nil)
}

// Create handles POST /createEmployee.
func (h *EmployeesHandler) Create(c *fiber.Ctx) error {
	var req dto.EmployeeForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" {
		return fiber.NewError(http.StatusBadRequest, "Name required")
	}

	if _, err := h.schedule.CreateEmployee(c.UserContext(), req.Name, req.PositionPercent); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// List handles GET /viewEmployees.
func (h *EmployeesHandler) List(c *fiber.Ctx) error {
	employees, err := h.schedule.ListEmployees(c.UserContext())
	if err != nil {
		return err
	}
	return h.views.Render(c, "viewEmployees.html", fiber.Map{"Employees": employees})
}

// EditForm handles GET /editEmployee/:id.
func (h *EmployeesHandler) EditForm(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid employee id")
	}

	employee, err := h.schedule.GetEmployee(c.UserContext(), id)
	if err != nil {
		return err
	}
	return h.views.Render(c, "editEmployee.html", fiber.Map{"Employee": employee})
}

// Update handles POST /updateEmployee/:id.
func (h *EmployeesHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid employee id")
	}

	var req dto.EmployeeForm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	if err := h.schedule.UpdateEmployee(c.UserContext(), id, req.Name, req.PositionPercent); err != nil {
		return err
	}
	return c.Redirect("/viewEmployees", fiber.StatusFound)
}
