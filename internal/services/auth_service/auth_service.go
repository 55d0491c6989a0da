package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"heritage_cms/internal/config"
	"heritage_cms/internal/domain/models"
	"heritage_cms/internal/lib/jwt"
	"heritage_cms/internal/lib/logger/sl"
	"heritage_cms/internal/repository"

	"github.com/google/uuid"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the single configured admin identity and
// manages the token pair. Access tokens are stateless JWTs; refresh
// tokens are opaque and tracked in Redis so they can be rotated and
// revoked.
type AuthService struct {
	log    *slog.Logger
	tokens repository.TokenRepository

	adminEmail    string
	adminPassword string
	secret        string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(log *slog.Logger, tokens repository.TokenRepository, admin config.AdminConfig, token config.TokenConfig) *AuthService {
	return &AuthService{
		log:           log,
		tokens:        tokens,
		adminEmail:    admin.Email,
		adminPassword: admin.Password,
		secret:        token.Secret,
		accessTTL:     token.TTL,
		refreshTTL:    token.RefreshTTL,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "auth_service.Login"

	log := s.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting to login admin")

	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(s.adminEmail)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.adminPassword)) == 1
	if !emailOK || !passOK {
		log.Warn("invalid credentials")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issuePair(ctx, op)
	if err != nil {
		log.Error("failed to issue token pair", sl.Err(err))
		return nil, err
	}

	log.Info("admin logged in successfully")

	return pair, nil
}

// Refresh rotates the token pair: the presented refresh token is
// checked against the store, revoked, and replaced.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	const op = "auth_service.Refresh"

	log := s.log.With(slog.String("op", op))

	ok, err := s.tokens.GetRefreshToken(ctx, s.adminEmail, refreshToken)
	if err != nil {
		log.Error("failed to look up refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		log.Warn("unknown refresh token")
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := s.tokens.DeleteRefreshToken(ctx, s.adminEmail, refreshToken); err != nil {
		log.Error("failed to revoke refresh token", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issuePair(ctx, op)
	if err != nil {
		log.Error("failed to issue token pair", sl.Err(err))
		return nil, err
	}

	log.Info("token pair rotated")

	return pair, nil
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth_service.Logout"

	if err := s.tokens.DeleteRefreshToken(ctx, s.adminEmail, refreshToken); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *AuthService) issuePair(ctx context.Context, op string) (*models.TokenPair, error) {
	access, err := jwt.NewToken(s.adminEmail, models.RoleAdmin, s.secret, s.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh := uuid.NewString()
	if err := s.tokens.SaveRefreshToken(ctx, s.adminEmail, refresh, s.refreshTTL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}
