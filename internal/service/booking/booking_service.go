package booking

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/dkurbatov/venuebooking/internal/kafka"
	"github.com/dkurbatov/venuebooking/internal/repository"
	"github.com/google/uuid"
)

type BookingUseCase interface {
	CheckAvailability(ctx context.Context, venueID int64, date, timeOfDay string) (bool, error)
	Create(ctx context.Context, user *domain.User, input CreateBookingInput) (*domain.Booking, error)
	Update(ctx context.Context, user *domain.User, id int64, input UpdateBookingInput) (*domain.Booking, error)
	Delete(ctx context.Context, user *domain.User, id int64) error
	Verify(ctx context.Context, id int64, verified bool) (*domain.Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error)
	ListAll(ctx context.Context) ([]domain.Booking, error)
	PurgeExpired(ctx context.Context) ([]domain.Booking, error)
}

type Cache interface {
	AcquireSlotLock(ctx context.Context, venueID int64, date, timeOfDay string, ttl time.Duration) (bool, error)
	ReleaseSlotLock(ctx context.Context, venueID int64, date, timeOfDay string) error
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type BookingService struct {
	bookings           repository.BookingRepository
	venues             repository.VenueRepository
	users              repository.UserRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	slotLockTTL        time.Duration
}

type CreateBookingInput struct {
	VenueID       int64  `json:"venue_id"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	RequesterName string `json:"requester_name"`
}

type UpdateBookingInput struct {
	Date          string `json:"date"`
	Time          string `json:"time"`
	RequesterName string `json:"requester_name"`
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	venues repository.VenueRepository,
	users repository.UserRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	slotLockTTL time.Duration,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		venues:       venues,
		users:        users,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		slotLockTTL:  slotLockTTL,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// CheckAvailability reports whether the slot is free under the exact-match
// policy: a slot conflicts only when venue, date and time are all equal.
func (s *BookingService) CheckAvailability(ctx context.Context, venueID int64, date, timeOfDay string) (bool, error) {
	if err := validateSlot(date, timeOfDay); err != nil {
		return false, err
	}

	existing, err := s.bookings.ListByVenueDate(ctx, venueID, date)
	if err != nil {
		return false, err
	}
	for _, b := range existing {
		if b.Time == timeOfDay {
			return false, nil
		}
	}
	return true, nil
}

// Create books a slot. The availability pre-check keeps the common path
// cheap and the redis lock narrows the race window, but the final word
// belongs to the unique index: a concurrent create for the same slot
// surfaces as domain.ErrSlotTaken, never as a second booking.
func (s *BookingService) Create(ctx context.Context, user *domain.User, input CreateBookingInput) (*domain.Booking, error) {
	if err := validateSlot(input.Date, input.Time); err != nil {
		return nil, err
	}
	if input.RequesterName == "" {
		return nil, errors.New("requester name is required")
	}

	venue, err := s.venues.GetByID(ctx, input.VenueID)
	if err != nil {
		return nil, err
	}

	available, err := s.CheckAvailability(ctx, input.VenueID, input.Date, input.Time)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, domain.ErrSlotTaken
	}

	locked := false
	if s.cache != nil {
		ok, err := s.cache.AcquireSlotLock(ctx, input.VenueID, input.Date, input.Time, s.slotLockTTL)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrSlotLocked
		}
		locked = true
	}

	booking := &domain.Booking{
		Reference:     uuid.NewString(),
		UserID:        user.ID,
		VenueID:       input.VenueID,
		Date:          input.Date,
		Time:          input.Time,
		RequesterName: input.RequesterName,
	}

	err = s.bookings.Create(ctx, booking)
	if locked {
		_ = s.cache.ReleaseSlotLock(ctx, input.VenueID, input.Date, input.Time)
	}
	if err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingCreated, booking, venue.Name, user.Email)
	return booking, nil
}

func (s *BookingService) Update(ctx context.Context, user *domain.User, id int64, input UpdateBookingInput) (*domain.Booking, error) {
	if err := validateSlot(input.Date, input.Time); err != nil {
		return nil, err
	}
	if input.RequesterName == "" {
		return nil, errors.New("requester name is required")
	}

	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.UserID != user.ID {
		return nil, domain.ErrForbidden
	}

	if input.Date != current.Date || input.Time != current.Time {
		available, err := s.CheckAvailability(ctx, current.VenueID, input.Date, input.Time)
		if err != nil {
			return nil, err
		}
		if !available {
			return nil, domain.ErrSlotTaken
		}
	}

	updated := *current
	updated.Date = input.Date
	updated.Time = input.Time
	updated.RequesterName = input.RequesterName
	if err := s.bookings.Update(ctx, &updated); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventBookingUpdated, &updated, "", user.Email)
	return &updated, nil
}

func (s *BookingService) Delete(ctx context.Context, user *domain.User, id int64) error {
	current, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current.UserID != user.ID && !user.IsAdmin() {
		return domain.ErrForbidden
	}

	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventBookingCancelled, current, "", "")
	return nil
}

func (s *BookingService) Verify(ctx context.Context, id int64, verified bool) (*domain.Booking, error) {
	updated, err := s.bookings.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, err
	}

	eventType := kafka.EventBookingVerified
	if !verified {
		eventType = kafka.EventBookingRejected
	}
	s.publish(ctx, eventType, updated, "", "")
	return updated, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int64) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]domain.Booking, error) {
	return s.bookings.ListAll(ctx)
}

// PurgeExpired removes unverified bookings whose date has passed. Verified
// bookings are kept as history.
func (s *BookingService) PurgeExpired(ctx context.Context) ([]domain.Booking, error) {
	today := time.Now().Format(domain.DateLayout)
	purged, err := s.bookings.PurgeUnverifiedBefore(ctx, today)
	if err != nil {
		return nil, err
	}
	for i := range purged {
		b := purged[i]
		s.publish(ctx, kafka.EventBookingPurged, &b, "", "")
	}
	return purged, nil
}

// publish emits the event on the booking topic and, when configured, the
// notifications topic. Callers pass venueName and email when they already
// hold them; empty values are resolved here, after the producer check, so
// disabled events cost no extra lookups.
func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking, venueName, email string) {
	if s.producer == nil || s.bookingTopic == "" {
		return
	}
	if venueName == "" {
		venueName = s.venueName(ctx, booking.VenueID)
	}
	if email == "" {
		email = s.userEmail(ctx, booking.UserID)
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		Reference: booking.Reference,
		VenueID:   booking.VenueID,
		VenueName: venueName,
		Date:      booking.Date,
		Time:      booking.Time,
		Email:     email,
		Verified:  booking.Verified,
	}
	if err := s.producer.Publish(ctx, s.bookingTopic, booking.Reference, event); err != nil {
		log.Printf("failed to publish %s event for booking %s: %v", eventType, booking.Reference, err)
		return
	}
	if s.notificationsTopic != "" && email != "" {
		if err := s.producer.Publish(ctx, s.notificationsTopic, booking.Reference, event); err != nil {
			log.Printf("failed to publish %s notification for booking %s: %v", eventType, booking.Reference, err)
		}
	}
}

func (s *BookingService) venueName(ctx context.Context, venueID int64) string {
	venue, err := s.venues.GetByID(ctx, venueID)
	if err != nil {
		return ""
	}
	return venue.Name
}

func (s *BookingService) userEmail(ctx context.Context, userID int64) string {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Email
}

func validateSlot(date, timeOfDay string) error {
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return errors.New("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(domain.TimeLayout, timeOfDay); err != nil {
		return errors.New("time must be in HH:MM format")
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
