package domain

import "time"

const (
	RatingMin = 1
	RatingMax = 5
)

type Review struct {
	ID        int64
	VenueID   int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
