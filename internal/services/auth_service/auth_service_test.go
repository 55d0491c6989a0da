package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"heritage_cms/internal/config"
	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenRepository struct {
	mock.Mock
}

func (m *MockTokenRepository) SaveRefreshToken(ctx context.Context, email, token string, exp time.Duration) error {
	args := m.Called(ctx, email, token, exp)
	return args.Error(0)
}

func (m *MockTokenRepository) GetRefreshToken(ctx context.Context, email, token string) (bool, error) {
	args := m.Called(ctx, email, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) DeleteRefreshToken(ctx context.Context, email, token string) error {
	args := m.Called(ctx, email, token)
	return args.Error(0)
}

func newTestAuthService(tokens *MockTokenRepository) *AuthService {
	return NewAuthService(
		slog.Default(),
		tokens,
		config.AdminConfig{Email: "admin@example.org", Password: "correct horse"},
		config.TokenConfig{Secret: "test-secret", TTL: time.Hour, RefreshTTL: 24 * time.Hour},
	)
}

func TestAuthService_Login_Success(t *testing.T) {
	ctx := context.Background()
	mockTokens := new(MockTokenRepository)
	service := newTestAuthService(mockTokens)

	mockTokens.On("SaveRefreshToken", ctx, "admin@example.org", mock.AnythingOfType("string"), 24*time.Hour).
		Return(nil).Once()

	pair, err := service.Login(ctx, "admin@example.org", "correct horse")

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := jwt.Parse(pair.AccessToken, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.org", claims["email"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
}

func TestAuthService_Login_WrongCredentials(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"wrong password", "admin@example.org", "guess"},
		{"wrong email", "intruder@example.org", "correct horse"},
		{"both wrong", "intruder@example.org", "guess"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockTokens := new(MockTokenRepository)
			service := newTestAuthService(mockTokens)

			_, err := service.Login(ctx, tt.email, tt.password)

			assert.ErrorIs(t, err, ErrInvalidCredentials)
			mockTokens.AssertNotCalled(t, "SaveRefreshToken")
		})
	}
}

func TestAuthService_Refresh_RotatesPair(t *testing.T) {
	ctx := context.Background()
	mockTokens := new(MockTokenRepository)
	service := newTestAuthService(mockTokens)

	mockTokens.On("GetRefreshToken", ctx, "admin@example.org", "old-token").
		Return(true, nil).Once()
	mockTokens.On("DeleteRefreshToken", ctx, "admin@example.org", "old-token").
		Return(nil).Once()
	mockTokens.On("SaveRefreshToken", ctx, "admin@example.org", mock.AnythingOfType("string"), 24*time.Hour).
		Return(nil).Once()

	pair, err := service.Refresh(ctx, "old-token")

	require.NoError(t, err)
	assert.NotEqual(t, "old-token", pair.RefreshToken)
	mockTokens.AssertExpectations(t)
}

func TestAuthService_Refresh_UnknownToken(t *testing.T) {
	ctx := context.Background()
	mockTokens := new(MockTokenRepository)
	service := newTestAuthService(mockTokens)

	mockTokens.On("GetRefreshToken", ctx, "admin@example.org", "forged").
		Return(false, nil).Once()

	_, err := service.Refresh(ctx, "forged")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
	mockTokens.AssertNotCalled(t, "SaveRefreshToken")
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()
	mockTokens := new(MockTokenRepository)
	service := newTestAuthService(mockTokens)

	mockTokens.On("DeleteRefreshToken", ctx, "admin@example.org", "live-token").
		Return(nil).Once()

	err := service.Logout(ctx, "live-token")

	assert.NoError(t, err)
	mockTokens.AssertExpectations(t)
}
