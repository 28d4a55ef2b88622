package dto

// EmployeeForm carries the employee create/update form fields.
// Field names match the HTML form inputs.
type EmployeeForm struct {
	Name            string `form:"Name"`
	PositionPercent int    `form:"PositionPercent"`
}

// ShiftForm carries the shift create/update form fields.
type ShiftForm struct {
	Name      string  `form:"Name"`
	StartTime string  `form:"StartTime"`
	EndTime   string  `form:"EndTime"`
	Length    float64 `form:"Length"`
}

// RotationForm carries the rotation assignment form fields.
type RotationForm struct {
	Date       string `form:"Date"`
	EmployeeID int64  `form:"EmployeeID"`
	ShiftID    int64  `form:"ShiftID"`
}

// CalendarEvent is one entry of the rotation calendar feed.
type CalendarEvent struct {
	Title string `json:"title"`
	Start string `json:"start"`
}
