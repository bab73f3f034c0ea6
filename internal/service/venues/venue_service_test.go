package venues

import (
	"context"
	"testing"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

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

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetVenues(ctx context.Context, venueType domain.VenueType) ([]domain.Venue, error) {
	args := m.Called(ctx, venueType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Venue), args.Error(1)
}

func (m *MockCache) SetVenues(ctx context.Context, venueType domain.VenueType, venues []domain.Venue) error {
	args := m.Called(ctx, venueType, venues)
	return args.Error(0)
}

func (m *MockCache) InvalidateVenues(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestVenueService_List_CacheMissThenFill(t *testing.T) {
	repo := &MockVenueRepository{}
	cache := &MockCache{}
	service := NewVenueService(repo, cache)
	ctx := context.Background()

	venues := []domain.Venue{{ID: 1, Name: "Court-1", Type: domain.VenueTypeIndoor, PriceCents: 5000}}
	cache.On("GetVenues", ctx, domain.VenueTypeIndoor).Return(nil, nil).Once()
	repo.On("List", ctx, domain.VenueTypeIndoor).Return(venues, nil).Once()
	cache.On("SetVenues", ctx, domain.VenueTypeIndoor, venues).Return(nil).Once()

	result, err := service.List(ctx, domain.VenueTypeIndoor)
	assert.NoError(t, err)
	assert.Equal(t, venues, result)
	cache.AssertExpectations(t)
	repo.AssertExpectations(t)
}

func TestVenueService_List_CacheHitSkipsRepo(t *testing.T) {
	repo := &MockVenueRepository{}
	cache := &MockCache{}
	service := NewVenueService(repo, cache)
	ctx := context.Background()

	cached := []domain.Venue{{ID: 2, Name: "Pitch", Type: domain.VenueTypeOutdoor}}
	cache.On("GetVenues", ctx, domain.VenueTypeOutdoor).Return(cached, nil).Once()

	result, err := service.List(ctx, domain.VenueTypeOutdoor)
	assert.NoError(t, err)
	assert.Equal(t, cached, result)
	repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestVenueService_List_UnknownType(t *testing.T) {
	service := NewVenueService(&MockVenueRepository{}, nil)

	result, err := service.List(context.Background(), "Bowling")
	assert.Nil(t, result)
	assert.EqualError(t, err, `unknown venue type "Bowling"`)
}

func TestVenueService_Create_Validation(t *testing.T) {
	service := NewVenueService(&MockVenueRepository{}, nil)
	ctx := context.Background()

	testCases := []struct {
		name  string
		input VenueInput
	}{
		{name: "missing name", input: VenueInput{Type: "Indoor", PriceCents: 100}},
		{name: "unknown type", input: VenueInput{Name: "Court-1", Type: "Bowling", PriceCents: 100}},
		{name: "negative price", input: VenueInput{Name: "Court-1", Type: "Indoor", PriceCents: -1}},
		{name: "bad image url", input: VenueInput{Name: "Court-1", Type: "Indoor", PriceCents: 100, ImageURL: "not a url"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			venue, err := service.Create(ctx, tc.input)
			assert.Nil(t, venue)
			assert.Error(t, err)
		})
	}
}

func TestVenueService_Create_Success(t *testing.T) {
	repo := &MockVenueRepository{}
	cache := &MockCache{}
	service := NewVenueService(repo, cache)
	ctx := context.Background()

	input := VenueInput{Name: "PS5 Station", Type: "PlayStation", Description: "two controllers", PriceCents: 1500, ImageURL: "https://img.example.com/ps5.png"}
	repo.On("Create", ctx, mock.AnythingOfType("*domain.Venue")).Return(nil).Once()
	cache.On("InvalidateVenues", ctx).Return(nil).Once()

	venue, err := service.Create(ctx, input)
	assert.NoError(t, err)
	assert.Equal(t, input.Name, venue.Name)
	assert.Equal(t, domain.VenueTypePlayStation, venue.Type)
	assert.Equal(t, input.PriceCents, venue.PriceCents)
	cache.AssertExpectations(t)
}

func TestVenueService_Update_AppliesAllFields(t *testing.T) {
	repo := &MockVenueRepository{}
	cache := &MockCache{}
	service := NewVenueService(repo, cache)
	ctx := context.Background()

	stored := &domain.Venue{ID: 4, Name: "Old", Type: domain.VenueTypeIndoor, PriceCents: 100}
	repo.On("GetByID", ctx, int64(4)).Return(stored, nil).Once()
	repo.On("Update", ctx, mock.AnythingOfType("*domain.Venue")).Return(nil).Once()
	cache.On("InvalidateVenues", ctx).Return(nil).Once()

	updated, err := service.Update(ctx, 4, VenueInput{Name: "New", Type: "Outdoor", Description: "resurfaced", PriceCents: 200})
	assert.NoError(t, err)
	assert.Equal(t, "New", updated.Name)
	assert.Equal(t, domain.VenueTypeOutdoor, updated.Type)
	assert.Equal(t, int64(200), updated.PriceCents)
}

func TestVenueService_Delete_RejectedWithBookings(t *testing.T) {
	repo := &MockVenueRepository{}
	cache := &MockCache{}
	service := NewVenueService(repo, cache)
	ctx := context.Background()

	repo.On("Delete", ctx, int64(4)).Return(domain.ErrVenueHasBookings).Once()

	err := service.Delete(ctx, 4)
	assert.ErrorIs(t, err, domain.ErrVenueHasBookings)
	cache.AssertNotCalled(t, "InvalidateVenues", mock.Anything)
}
