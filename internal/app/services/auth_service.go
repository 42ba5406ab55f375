package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/repositories"
	"github.com/yigit/lmsadmin/internal/metrics"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/auth"
	"github.com/yigit/lmsadmin/internal/pkg/validation"
)

// AuthService handles authentication and user creation
type AuthService struct {
	userRepo   repositories.IUserRepository
	jwtService *auth.JWTService
	revocation auth.RevocationStore
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	jwtService *auth.JWTService,
	revocation auth.RevocationStore,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		revocation: revocation,
		logger:     logger,
	}
}

// Login verifies the credentials and issues an access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*models.User, *dto.TokenResponse, error) {
	email := validation.NormalizeEmail(req.Email)
	if msg := validateEmail(email); msg != "" {
		return nil, nil, apperrors.NewFieldError("email", msg)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			metrics.Record(metrics.EventLoginFailed)
			return nil, nil, apperrors.ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		metrics.Record(metrics.EventLoginFailed)
		s.logger.Info().Int64("userID", user.ID).Msg("Login rejected, wrong password")
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, nil, apperrors.ErrAccountDisabled
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		// a stale last_login_at must not block the login
		s.logger.Warn().Err(err).Int64("userID", user.ID).Msg("Failed to update last login")
	}

	metrics.Record(metrics.EventLoginSucceeded)
	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.RoleType)).Msg("User logged in")
	return user, &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   expiresIn,
	}, nil
}

// Logout revokes the bearer token or session the principal authenticated with, so a
// copied token or cookie stops working before it expires.
func (s *AuthService) Logout(ctx context.Context, principal auth.Principal) error {
	if principal.TokenID == "" {
		return nil
	}

	if err := s.revocation.Revoke(ctx, principal.TokenID, time.Unix(principal.TokenExpiry, 0)); err != nil {
		return fmt.Errorf("error revoking %s: %w", principal.Source, err)
	}

	s.logger.Info().Int64("userID", principal.UserID).Str("source", string(principal.Source)).Str("tokenID", principal.TokenID).Msg("Credential revoked")
	return nil
}

// CreateUser creates a person record and, for mentors and students, the matching profile row.
// The returned profile id is 0 for admins.
func (s *AuthService) CreateUser(ctx context.Context, actorID int64, req *dto.CreateUserRequest) (*models.User, int64, error) {
	email := validation.NormalizeEmail(req.Email)
	if msg := validateEmail(email); msg != "" {
		return nil, 0, apperrors.NewFieldError("email", msg)
	}
	if msg := validation.NewStringValidation(req.Password).WithMinLength(validation.PasswordMinLength).Validate(); msg != "" {
		return nil, 0, apperrors.NewFieldError("password", msg)
	}
	if len(req.Password) > validation.PasswordMaxLength {
		return nil, 0, apperrors.NewFieldError("password", fmt.Sprintf("Ensure this field has no more than %d bytes.", validation.PasswordMaxLength))
	}
	if !req.Role.Valid() {
		return nil, 0, apperrors.NewFieldError("role", fmt.Sprintf("\"%s\" is not a valid choice.", req.Role))
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, 0, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		RoleType:  req.Role,
		IsActive:  true,
	}

	profileID, err := s.userRepo.CreateWithProfile(ctx, user)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, 0, apperrors.NewDuplicateError(err, fmt.Sprintf("%s is already present", email))
		}
		return nil, 0, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info().Int64("userID", user.ID).Int64("actorID", actorID).Str("role", string(user.RoleType)).Msg("User created by admin")
	return user, profileID, nil
}

func validateEmail(email string) string {
	return validation.NewStringValidation(email).
		WithPattern(validation.CompiledPatterns.Email, "Enter a valid email address.").
		Validate()
}
