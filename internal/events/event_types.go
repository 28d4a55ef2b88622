package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventUserLoggedIn     EventType = "user_logged_in"
	EventEmployeeCreated  EventType = "employee_created"
	EventShiftCreated     EventType = "shift_created"
	EventRotationAssigned EventType = "rotation_assigned"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	UserID int64 `json:"user_id"`
}

// EmployeeCreatedPayload payload.
type EmployeeCreatedPayload struct {
	EmployeeID      int64  `json:"employee_id"`
	Name            string `json:"name"`
	PositionPercent int    `json:"position_percent"`
}

// ShiftCreatedPayload payload.
type ShiftCreatedPayload struct {
	ShiftID int64  `json:"shift_id"`
	Name    string `json:"name"`
}

// RotationAssignedPayload payload.
type RotationAssignedPayload struct {
	RotationID int64  `json:"rotation_id"`
	EmployeeID int64  `json:"employee_id"`
	ShiftID    int64  `json:"shift_id"`
	Date       string `json:"date"`
}
