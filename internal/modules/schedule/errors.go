package schedule

import "errors"

var (
	ErrValidation          = errors.New("validation error")
	ErrInvalidRange        = errors.New("start time is after end time")
	ErrDayAlreadyScheduled = errors.New("day of week already has a schedule")
	ErrNotFound            = errors.New("schedule not found")
)
