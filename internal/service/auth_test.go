package service_test

import (
	"context"
	"testing"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/security"
	"visithub-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockTokenManager struct {
	mock.Mock
}

func (m *MockTokenManager) GenerateAccessToken(userID int32, isAdmin bool) (string, error) {
	args := m.Called(userID, isAdmin)
	return args.String(0), args.Error(1)
}
func (m *MockTokenManager) ValidateToken(tokenString string) (*security.ActorClaims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.ActorClaims), args.Error(1)
}

func hashPassword(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(hash)
}

func TestLogin_Success(t *testing.T) {
	userRepo := new(MockUserRepo)
	tokens := new(MockTokenManager)
	svc := service.NewAuthService(userRepo, tokens)

	user := &domain.User{
		ID:           5,
		Email:        "lead@example.com",
		PasswordHash: hashPassword(t, "correct horse"),
		Role:         domain.UserRoleAdmin,
		Status:       domain.UserStatusActive,
	}
	userRepo.On("GetByEmail", mock.Anything, "lead@example.com").Return(user, nil)
	tokens.On("GenerateAccessToken", int32(5), true).Return("signed-token", nil)

	token, got, err := svc.Login(context.Background(), "lead@example.com", "correct horse")

	assert.NoError(t, err)
	assert.Equal(t, "signed-token", token)
	assert.Equal(t, user, got)
}

func TestLogin_WrongPassword(t *testing.T) {
	userRepo := new(MockUserRepo)
	tokens := new(MockTokenManager)
	svc := service.NewAuthService(userRepo, tokens)

	user := &domain.User{
		ID:           5,
		Email:        "lead@example.com",
		PasswordHash: hashPassword(t, "correct horse"),
		Status:       domain.UserStatusActive,
	}
	userRepo.On("GetByEmail", mock.Anything, "lead@example.com").Return(user, nil)

	_, _, err := svc.Login(context.Background(), "lead@example.com", "battery staple")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	tokens.AssertNotCalled(t, "GenerateAccessToken", mock.Anything, mock.Anything)
}

func TestLogin_UnknownEmail(t *testing.T) {
	userRepo := new(MockUserRepo)
	tokens := new(MockTokenManager)
	svc := service.NewAuthService(userRepo, tokens)

	userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	// Unknown accounts and bad passwords are indistinguishable to callers.
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLogin_PendingAccountRefused(t *testing.T) {
	userRepo := new(MockUserRepo)
	tokens := new(MockTokenManager)
	svc := service.NewAuthService(userRepo, tokens)

	user := &domain.User{
		ID:           6,
		Email:        "new@example.com",
		PasswordHash: hashPassword(t, "correct horse"),
		Status:       domain.UserStatusPending,
	}
	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(user, nil)

	_, _, err := svc.Login(context.Background(), "new@example.com", "correct horse")

	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}
