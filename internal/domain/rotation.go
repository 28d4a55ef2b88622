package domain

import "time"

// Rotation assigns one employee to one shift on a calendar date.
type Rotation struct {
	ID         int64
	Date       time.Time
	EmployeeID int64
	ShiftID    int64
}

// RotationEvent is a denormalized rotation row joined with employee and
// shift names, shaped for the calendar feed.
type RotationEvent struct {
	Date         time.Time
	EmployeeName string
	ShiftName    string
}
