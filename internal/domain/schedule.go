package domain

import "time"

// SlotGranularityMinutes is the fixed step between bookable slots.
const SlotGranularityMinutes = 30

// Time-of-day and calendar-date formats used on the wire.
const (
	TimeFormat = "15:04"
	DateFormat = "02-01-2006" // DD-MM-YYYY
)

// Weekday names used as Schedule.DayOfWeek values. The mapping from a calendar
// date is a fixed table (see WeekdayName), never locale formatting.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayName maps a time.Weekday to the schedule day name.
func WeekdayName(w time.Weekday) string {
	switch w {
	case time.Monday:
		return "Monday"
	case time.Tuesday:
		return "Tuesday"
	case time.Wednesday:
		return "Wednesday"
	case time.Thursday:
		return "Thursday"
	case time.Friday:
		return "Friday"
	case time.Saturday:
		return "Saturday"
	default:
		return "Sunday"
	}
}

// Schedule is the operating window for one day of the week. At most one row
// exists per DayOfWeek (unique index at the storage layer).
type Schedule struct {
	ID          int64     `json:"id"`
	DayOfWeek   string    `json:"day_of_week"`
	StartTime   string    `json:"start_time"` // HH:MM, 24h
	EndTime     string    `json:"end_time"`   // HH:MM, 24h
	IsAvailable bool      `json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
