package domain

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrSlotTaken          = errors.New("slot is already booked")
	ErrSlotLocked         = errors.New("slot is being booked by someone else")
	ErrVenueHasBookings   = errors.New("venue has existing bookings")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrForbidden          = errors.New("operation not allowed for this user")
)
