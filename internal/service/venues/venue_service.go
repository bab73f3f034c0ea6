package venues

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/dkurbatov/venuebooking/internal/repository"
	"github.com/go-playground/validator/v10"
)

type VenueUseCase interface {
	List(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error)
	Get(ctx context.Context, id int64) (*domain.Venue, error)
	Create(ctx context.Context, input VenueInput) (*domain.Venue, error)
	Update(ctx context.Context, id int64, input VenueInput) (*domain.Venue, error)
	Delete(ctx context.Context, id int64) error
}

type Cache interface {
	GetVenues(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error)
	SetVenues(ctx context.Context, venueType domain.VenueType, venues []domain.Venue) error
	InvalidateVenues(ctx context.Context) error
}

type VenueInput struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required,oneof=Indoor Outdoor PlayStation"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

type VenueService struct {
	repo     repository.VenueRepository
	cache    Cache
	validate *validator.Validate
}

func NewVenueService(repo repository.VenueRepository, cache Cache) *VenueService {
	return &VenueService{repo: repo, cache: cache, validate: validator.New()}
}

func (s *VenueService) List(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error) {
	if venueType != "" && !venueType.Valid() {
		return nil, fmt.Errorf("unknown venue type %q", venueType)
	}

	if s.cache != nil {
		if cached, err := s.cache.GetVenues(ctx, venueType); err == nil && cached != nil {
			return cached, nil
		}
	}

	venues, err := s.repo.List(ctx, venueType)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.SetVenues(ctx, venueType, venues)
	}
	return venues, nil
}

func (s *VenueService) Get(ctx context.Context, id int64) (*domain.Venue, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *VenueService) Create(ctx context.Context, input VenueInput) (*domain.Venue, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	venue := &domain.Venue{
		Name:        input.Name,
		Type:        domain.VenueType(input.Type),
		Description: input.Description,
		PriceCents:  input.PriceCents,
		ImageURL:    input.ImageURL,
	}
	if err := s.repo.Create(ctx, venue); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return venue, nil
}

// Update applies the full input onto the stored record, last write wins
// per field.
func (s *VenueService) Update(ctx context.Context, id int64, input VenueInput) (*domain.Venue, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	venue, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	venue.Name = input.Name
	venue.Type = domain.VenueType(input.Type)
	venue.Description = input.Description
	venue.PriceCents = input.PriceCents
	venue.ImageURL = input.ImageURL

	if err := s.repo.Update(ctx, venue); err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return venue, nil
}

// Delete enforces the reject policy: a venue with bookings cannot be
// removed until its bookings are dealt with.
func (s *VenueService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *VenueService) invalidate(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.InvalidateVenues(ctx)
	}
}

func (s *VenueService) validateInput(input VenueInput) error {
	err := s.validate.Struct(input)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		messages := make([]string, 0, len(fieldErrs))
		for _, fe := range fieldErrs {
			switch fe.Field() {
			case "Name":
				messages = append(messages, "name is required")
			case "Type":
				messages = append(messages, "type must be one of Indoor, Outdoor, PlayStation")
			case "PriceCents":
				messages = append(messages, "price must not be negative")
			case "ImageURL":
				messages = append(messages, "image_url must be a valid URL")
			default:
				messages = append(messages, fe.Field()+" is invalid")
			}
		}
		return errors.New(strings.Join(messages, "; "))
	}
	return err
}

var _ VenueUseCase = (*VenueService)(nil)
