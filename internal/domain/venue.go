package domain

import "time"

type VenueType string

const (
	VenueTypeIndoor      VenueType = "Indoor"
	VenueTypeOutdoor     VenueType = "Outdoor"
	VenueTypePlayStation VenueType = "PlayStation"
)

func (t VenueType) Valid() bool {
	switch t {
	case VenueTypeIndoor, VenueTypeOutdoor, VenueTypePlayStation:
		return true
	}
	return false
}

type Venue struct {
	ID          int64
	Name        string
	Type        VenueType
	Description string
	PriceCents  int64
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
