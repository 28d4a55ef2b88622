package domain

// Shift describes a recurring work period, e.g. "Night 22:00-07:00".
// Times are stored as entered on the form ("HH:MM"); Length is hours.
type Shift struct {
	ID        int64
	Name      string
	StartTime string
	EndTime   string
	Length    float64
}
