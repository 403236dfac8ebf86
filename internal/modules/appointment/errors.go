package appointment

import "errors"

var (
	ErrValidation              = errors.New("validation error")
	ErrInvalidRange            = errors.New("invalid schedule time range")
	ErrServiceNotFound         = errors.New("service not found")
	ErrUserNotFound            = errors.New("user not found")
	ErrSlotTaken               = errors.New("time slot already booked")
	ErrNotFound                = errors.New("appointment not found")
	ErrForbidden               = errors.New("forbidden")
	ErrInvalidStatusTransition = errors.New("invalid status transition")
	ErrStoreUnavailable        = errors.New("store unavailable")
)
