package reviews

import (
	"context"
	"errors"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/dkurbatov/venuebooking/internal/repository"
	"github.com/go-playground/validator/v10"
)

type ReviewUseCase interface {
	ListByVenue(ctx context.Context, venueID int64) ([]domain.Review, error)
	Create(ctx context.Context, user *domain.User, venueID int64, input ReviewInput) (*domain.Review, error)
	Update(ctx context.Context, user *domain.User, id int64, input ReviewInput) (*domain.Review, error)
	Delete(ctx context.Context, user *domain.User, id int64) error
}

type ReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

type ReviewService struct {
	reviews  repository.ReviewRepository
	venues   repository.VenueRepository
	validate *validator.Validate
}

func NewReviewService(reviews repository.ReviewRepository, venues repository.VenueRepository) *ReviewService {
	return &ReviewService{reviews: reviews, venues: venues, validate: validator.New()}
}

func (s *ReviewService) ListByVenue(ctx context.Context, venueID int64) ([]domain.Review, error) {
	return s.reviews.ListByVenue(ctx, venueID)
}

func (s *ReviewService) Create(ctx context.Context, user *domain.User, venueID int64, input ReviewInput) (*domain.Review, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	if _, err := s.venues.GetByID(ctx, venueID); err != nil {
		return nil, err
	}

	review := &domain.Review{
		VenueID: venueID,
		UserID:  user.ID,
		Rating:  input.Rating,
		Comment: input.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Update(ctx context.Context, user *domain.User, id int64, input ReviewInput) (*domain.Review, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if review.UserID != user.ID {
		return nil, domain.ErrForbidden
	}

	review.Rating = input.Rating
	review.Comment = input.Comment
	if err := s.reviews.Update(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, user *domain.User, id int64) error {
	review, err := s.reviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if review.UserID != user.ID {
		return domain.ErrForbidden
	}
	return s.reviews.Delete(ctx, id)
}

// Rating bounds are checked here, before any storage call, so an invalid
// rating never reaches the database.
func (s *ReviewService) validateInput(input ReviewInput) error {
	if err := s.validate.Struct(input); err != nil {
		return errors.New("rating must be an integer between 1 and 5")
	}
	return nil
}

var _ ReviewUseCase = (*ReviewService)(nil)
