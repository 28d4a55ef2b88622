package domain

// Employee is a staff member who can be assigned to shifts.
// PositionPercent is the employment fraction (100 = full time).
type Employee struct {
	ID              int64
	Name            string
	PositionPercent int
}
