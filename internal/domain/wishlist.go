package domain

import "time"

// WishlistEntry is unique per (UserID, VenueID); adding an existing pair
// toggles it off instead of duplicating it.
type WishlistEntry struct {
	ID        int64
	UserID    int64
	VenueID   int64
	CreatedAt time.Time
}
