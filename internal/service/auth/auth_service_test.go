package auth

import (
	"context"
	"testing"
	"time"

	"github.com/dkurbatov/venuebooking/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	args := m.Called(ctx, jti, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	args := m.Called(ctx, jti)
	return args.Bool(0), args.Error(1)
}

func newTestService(users *MockUserRepository, tokens TokenStore) *AuthService {
	return NewAuthService(users, tokens, "test-secret", time.Hour)
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestAuthService_Register_NormalizesEmail(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users, nil)
	ctx := context.Background()

	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Run(func(args mock.Arguments) {
		user := args.Get(1).(*domain.User)
		user.ID = 7
	}).Return(nil).Once()

	user, err := service.Register(ctx, "  Booker@Example.COM ", "longenough")
	assert.NoError(t, err)
	assert.Equal(t, "booker@example.com", user.Email)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "longenough", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("longenough")))
}

func TestAuthService_Register_Rejections(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users, nil)
	ctx := context.Background()

	testCases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "empty email", email: "", password: "longenough"},
		{name: "email without at-sign", email: "booker.example.com", password: "longenough"},
		{name: "short password", email: "booker@example.com", password: "short"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			user, err := service.Register(ctx, tc.email, tc.password)
			assert.Nil(t, user)
			assert.Error(t, err)
		})
	}
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_EmailTaken(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users, nil)
	ctx := context.Background()

	users.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(domain.ErrEmailTaken).Once()

	user, err := service.Register(ctx, "booker@example.com", "longenough")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_LoginAndAuthenticate(t *testing.T) {
	users := &MockUserRepository{}
	tokens := &MockTokenStore{}
	service := newTestService(users, tokens)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Email: "booker@example.com", PasswordHash: hashOf(t, "longenough"), Role: domain.RoleUser}
	users.On("GetByEmail", ctx, "booker@example.com").Return(stored, nil).Once()
	tokens.On("IsTokenRevoked", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()

	token, user, err := service.Login(ctx, "Booker@example.com", "longenough")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, stored, user)

	authed, err := service.Authenticate(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(7), authed.ID)
	assert.Equal(t, "booker@example.com", authed.Email)
	assert.Equal(t, domain.RoleUser, authed.Role)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users, nil)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Email: "booker@example.com", PasswordHash: hashOf(t, "longenough")}
	users.On("GetByEmail", ctx, "booker@example.com").Return(stored, nil).Once()

	token, user, err := service.Login(ctx, "booker@example.com", "wrongpassword")
	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	users := &MockUserRepository{}
	service := newTestService(users, nil)
	ctx := context.Background()

	users.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound).Once()

	token, user, err := service.Login(ctx, "nobody@example.com", "longenough")
	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_Logout_RevokesRemainingLifetime(t *testing.T) {
	users := &MockUserRepository{}
	tokens := &MockTokenStore{}
	service := newTestService(users, tokens)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Email: "booker@example.com", PasswordHash: hashOf(t, "longenough")}
	users.On("GetByEmail", ctx, "booker@example.com").Return(stored, nil).Once()

	token, _, err := service.Login(ctx, "booker@example.com", "longenough")
	assert.NoError(t, err)

	tokens.On("RevokeToken", ctx, mock.AnythingOfType("string"), mock.MatchedBy(func(ttl time.Duration) bool {
		return ttl > 50*time.Minute && ttl <= time.Hour
	})).Return(nil).Once()

	assert.NoError(t, service.Logout(ctx, token))
	tokens.AssertExpectations(t)
}

func TestAuthService_Authenticate_RevokedToken(t *testing.T) {
	users := &MockUserRepository{}
	tokens := &MockTokenStore{}
	service := newTestService(users, tokens)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Email: "booker@example.com", PasswordHash: hashOf(t, "longenough")}
	users.On("GetByEmail", ctx, "booker@example.com").Return(stored, nil).Once()
	tokens.On("IsTokenRevoked", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()

	token, _, err := service.Login(ctx, "booker@example.com", "longenough")
	assert.NoError(t, err)

	user, err := service.Authenticate(ctx, token)
	assert.Nil(t, user)
	assert.EqualError(t, err, "session has been signed out")
}

func TestAuthService_Authenticate_Garbage(t *testing.T) {
	service := newTestService(&MockUserRepository{}, nil)

	user, err := service.Authenticate(context.Background(), "not.a.token")
	assert.Nil(t, user)
	assert.EqualError(t, err, "invalid or expired token")
}

func TestAuthService_Authenticate_WrongSecret(t *testing.T) {
	users := &MockUserRepository{}
	issuer := newTestService(users, nil)
	verifier := NewAuthService(users, nil, "another-secret", time.Hour)
	ctx := context.Background()

	stored := &domain.User{ID: 7, Email: "booker@example.com", PasswordHash: hashOf(t, "longenough")}
	users.On("GetByEmail", ctx, "booker@example.com").Return(stored, nil).Once()

	token, _, err := issuer.Login(ctx, "booker@example.com", "longenough")
	assert.NoError(t, err)

	user, err := verifier.Authenticate(ctx, token)
	assert.Nil(t, user)
	assert.EqualError(t, err, "invalid or expired token")
}
