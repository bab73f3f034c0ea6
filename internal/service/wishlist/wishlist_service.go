package wishlist

import (
	"context"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/dkurbatov/venuebooking/internal/repository"
)

type WishlistUseCase interface {
	List(ctx context.Context, userID int64) ([]domain.WishlistEntry, error)
	Toggle(ctx context.Context, userID, venueID int64) (added bool, err error)
	Remove(ctx context.Context, userID, venueID int64) (removed bool, err error)
}

type WishlistService struct {
	entries repository.WishlistRepository
	venues  repository.VenueRepository
}

func NewWishlistService(entries repository.WishlistRepository, venues repository.VenueRepository) *WishlistService {
	return &WishlistService{entries: entries, venues: venues}
}

func (s *WishlistService) List(ctx context.Context, userID int64) ([]domain.WishlistEntry, error) {
	return s.entries.ListByUser(ctx, userID)
}

// Toggle is the single wishlist mutation: it adds the pair when absent and
// removes it when present, so client and server can never disagree about
// duplicates.
func (s *WishlistService) Toggle(ctx context.Context, userID, venueID int64) (bool, error) {
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return false, err
	}
	return s.entries.Toggle(ctx, userID, venueID)
}

// Remove is idempotent: removing an absent pair reports removed=false
// without an error.
func (s *WishlistService) Remove(ctx context.Context, userID, venueID int64) (bool, error) {
	return s.entries.Remove(ctx, userID, venueID)
}

var _ WishlistUseCase = (*WishlistService)(nil)
