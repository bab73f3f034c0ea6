package reviews

import (
	"context"
	"testing"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReviewRepository struct {
	mock.Mock
}

func (m *MockReviewRepository) ListByVenue(ctx context.Context, venueID int64) ([]domain.Review, error) {
	args := m.Called(ctx, venueID)
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVenueRepository struct {
	mock.Mock
}

func (m *MockVenueRepository) List(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error) {
	args := m.Called(ctx, venueType)
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) GetByID(ctx context.Context, id int64) (*domain.Venue, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Venue), args.Error(1)
}

func (m *MockVenueRepository) Create(ctx context.Context, venue *domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockVenueRepository) Update(ctx context.Context, venue *domain.Venue) error {
	args := m.Called(ctx, venue)
	return args.Error(0)
}

func (m *MockVenueRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var author = &domain.User{ID: 7, Email: "booker@example.com", Role: domain.RoleUser}

func TestReviewService_Create_Success(t *testing.T) {
	reviews := &MockReviewRepository{}
	venues := &MockVenueRepository{}
	service := NewReviewService(reviews, venues)
	ctx := context.Background()

	venues.On("GetByID", ctx, int64(3)).Return(&domain.Venue{ID: 3, Name: "Court-1"}, nil).Once()
	reviews.On("Create", ctx, mock.AnythingOfType("*domain.Review")).Return(nil).Once()

	review, err := service.Create(ctx, author, 3, ReviewInput{Rating: 4, Comment: "clean floor"})
	assert.NoError(t, err)
	assert.Equal(t, int64(3), review.VenueID)
	assert.Equal(t, author.ID, review.UserID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_Create_RatingOutOfRange(t *testing.T) {
	reviews := &MockReviewRepository{}
	venues := &MockVenueRepository{}
	service := NewReviewService(reviews, venues)
	ctx := context.Background()

	for _, rating := range []int{0, -1, 6, 42} {
		review, err := service.Create(ctx, author, 3, ReviewInput{Rating: rating})
		assert.Nil(t, review)
		assert.EqualError(t, err, "rating must be an integer between 1 and 5")
	}
	venues.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	reviews.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestReviewService_Create_VenueNotFound(t *testing.T) {
	reviews := &MockReviewRepository{}
	venues := &MockVenueRepository{}
	service := NewReviewService(reviews, venues)
	ctx := context.Background()

	venues.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound).Once()

	review, err := service.Create(ctx, author, 99, ReviewInput{Rating: 5})
	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReviewService_Update_AuthorOnly(t *testing.T) {
	reviews := &MockReviewRepository{}
	service := NewReviewService(reviews, &MockVenueRepository{})
	ctx := context.Background()

	stored := &domain.Review{ID: 5, VenueID: 3, UserID: 42, Rating: 2}
	reviews.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()

	review, err := service.Update(ctx, author, 5, ReviewInput{Rating: 5})
	assert.Nil(t, review)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	reviews.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReviewService_Update_Success(t *testing.T) {
	reviews := &MockReviewRepository{}
	service := NewReviewService(reviews, &MockVenueRepository{})
	ctx := context.Background()

	stored := &domain.Review{ID: 5, VenueID: 3, UserID: author.ID, Rating: 2, Comment: "meh"}
	reviews.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
	reviews.On("Update", ctx, stored).Return(nil).Once()

	review, err := service.Update(ctx, author, 5, ReviewInput{Rating: 5, Comment: "resurfaced since"})
	assert.NoError(t, err)
	assert.Equal(t, 5, review.Rating)
	assert.Equal(t, "resurfaced since", review.Comment)
}

func TestReviewService_Delete_AuthorOnly(t *testing.T) {
	reviews := &MockReviewRepository{}
	service := NewReviewService(reviews, &MockVenueRepository{})
	ctx := context.Background()

	stored := &domain.Review{ID: 5, VenueID: 3, UserID: 42}
	reviews.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()

	err := service.Delete(ctx, author, 5)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	reviews.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReviewService_Delete_Success(t *testing.T) {
	reviews := &MockReviewRepository{}
	service := NewReviewService(reviews, &MockVenueRepository{})
	ctx := context.Background()

	stored := &domain.Review{ID: 5, VenueID: 3, UserID: author.ID}
	reviews.On("GetByID", ctx, int64(5)).Return(stored, nil).Once()
	reviews.On("Delete", ctx, int64(5)).Return(nil).Once()

	assert.NoError(t, service.Delete(ctx, author, 5))
	reviews.AssertExpectations(t)
}
