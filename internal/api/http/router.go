package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shift-scheduler/internal/api/http/handlers"
	"github.com/spec-kit/shift-scheduler/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Employees *handlers.EmployeesHandler
	Shifts    *handlers.ShiftsHandler
	Rotations *handlers.RotationsHandler
	Guard     *auth.Guard
}

// RegisterRoutes wires HTTP routes. Route paths mirror the original HTML
// forms; only /protected sits behind the cookie guard.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Get("/register", cfg.Auth.RegisterForm)
	app.Post("/register", cfg.Auth.Register)
	app.Get("/login", cfg.Auth.LoginForm)
	app.Post("/login", cfg.Auth.Login)
	app.Get("/logout", cfg.Auth.Logout)
	app.Get("/protected", cfg.Guard.Handle, cfg.Auth.Protected)

	app.Get("/", cfg.Employees.CreateForm)
	app.Get("/createEmployee", cfg.Employees.CreateForm)
	app.Post("/createEmployee", cfg.Employees.Create)
	app.Get("/viewEmployees", cfg.Employees.List)
	app.Get("/editEmployee/:id", cfg.Employees.EditForm)
	app.Post("/updateEmployee/:id", cfg.Employees.Update)

	app.Get("/createShift", cfg.Shifts.CreateForm)
	app.Post("/createShift", cfg.Shifts.Create)
	app.Get("/viewShifts", cfg.Shifts.List)
	app.Get("/editShifts/:id", cfg.Shifts.EditForm)
	app.Post("/updateShift/:id", cfg.Shifts.Update)

	app.Get("/createRotation", cfg.Rotations.CreateForm)
	app.Post("/createRotation", cfg.Rotations.Create)
	app.Get("/api/rotations", cfg.Rotations.Feed)
}
