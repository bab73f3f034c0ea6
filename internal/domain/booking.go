package domain

import "time"

const (
	// Bookings carry date and time as strings in these layouts. Slot
	// conflicts are exact matches on the (venue, date, time) triple, so the
	// formats are part of the uniqueness contract and are validated before
	// anything is stored.
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Booking struct {
	ID            int64
	Reference     string
	UserID        int64
	VenueID       int64
	Date          string
	Time          string
	RequesterName string
	Verified      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
