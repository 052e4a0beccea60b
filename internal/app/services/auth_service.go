package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lucasferr/cursada/internal/app/models"
	"github.com/lucasferr/cursada/internal/app/repositories"
	"github.com/lucasferr/cursada/internal/pkg/apperrors"
	"github.com/lucasferr/cursada/internal/pkg/auth"
	"github.com/lucasferr/cursada/internal/pkg/email"
	"github.com/lucasferr/cursada/internal/pkg/logger"
	"github.com/lucasferr/cursada/internal/pkg/validation"
)

// TokenPair is the result of a successful login or refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
}

// AuthService handles registration, login and token refresh.
type AuthService interface {
	Register(ctx context.Context, user *models.User, plainPassword string) (*models.User, error)
	Login(ctx context.Context, emailAddr, password string) (*models.User, *TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, id int64) (*models.User, error)
	ListInstructors(ctx context.Context) ([]*models.User, error)
}

type authService struct {
	users      *repositories.UserRepository
	tokens     *repositories.TokenRepository
	jwtService *auth.JWTService
	emails     email.EmailService
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users *repositories.UserRepository,
	tokens *repositories.TokenRepository,
	jwtService *auth.JWTService,
	emails email.EmailService,
) AuthService {
	return &authService{
		users:      users,
		tokens:     tokens,
		jwtService: jwtService,
		emails:     emails,
	}
}

// Register creates a new user account with the given role and sends a
// welcome email best-effort.
func (s *authService) Register(ctx context.Context, user *models.User, plainPassword string) (*models.User, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))

	if !validation.IsValidEmail(user.Email) {
		return nil, fmt.Errorf("%w: invalid email address", apperrors.ErrValidationFailed)
	}
	if err := validation.ValidatePassword(plainPassword); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidationFailed, err)
	}

	exists, err := s.users.EmailExists(ctx, user.Email)
	if err != nil {
		return nil, storageFailure(err)
	}
	if exists {
		return nil, apperrors.ErrEmailAlreadyExists
	}

	hashed, err := auth.HashPassword(plainPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = hashed
	user.IsActive = true

	if user.RoleType == "" {
		user.RoleType = models.RoleStudent
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	go func() {
		if err := s.emails.SendWelcomeEmail(user.Email, user.FullName()); err != nil {
			logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		}
	}()

	return user, nil
}

// Login authenticates the user and issues a token pair. The refresh token is
// persisted so it can be revoked.
func (s *authService) Login(ctx context.Context, emailAddr, password string) (*models.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(emailAddr)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, storageFailure(err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	pair, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to record last login")
	}

	return user, pair, nil
}

// RefreshToken exchanges a valid refresh token for a new token pair. The old
// refresh token is rotated out.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	userID, err := s.tokens.UserFor(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, apperrors.ErrTokenInvalid) {
			return nil, err
		}
		return nil, storageFailure(err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, storageFailure(err)
	}

	if !user.IsActive {
		return nil, apperrors.ErrAccountDisabled
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return nil, storageFailure(err)
	}

	return s.issueTokens(ctx, user)
}

// Logout revokes the refresh token
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if err := s.tokens.Delete(ctx, refreshToken); err != nil {
		return storageFailure(err)
	}
	return nil
}

// GetUser returns the user with the given ID
func (s *authService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageFailure(err)
	}
	return user, nil
}

// ListInstructors returns every active instructor account
func (s *authService) ListInstructors(ctx context.Context) ([]*models.User, error) {
	instructors, err := s.users.GetInstructors(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return instructors, nil
}

func (s *authService) issueTokens(ctx context.Context, user *models.User) (*TokenPair, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtService.GenerateTokenPair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	if err := s.tokens.Save(ctx, user.ID, refreshToken, s.jwtService.GetRefreshTokenExpiry()); err != nil {
		return nil, storageFailure(err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}
