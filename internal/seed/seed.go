package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/repositories"
	"github.com/yigit/lmsadmin/internal/config"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/auth"
)

// CreateDefaultAdmin creates the administrator configured under admin: unless a user with
// that email already exists. It is a no-op when no admin email is configured.
func CreateDefaultAdmin(ctx context.Context, userRepo repositories.IUserRepository, cfg *config.Config, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(cfg.Admin.Email))
	if email == "" {
		lgr.Info().Msg("No default admin configured, skipping seed")
		return nil
	}

	existing, err := userRepo.GetByEmail(ctx, email)
	if err == nil {
		lgr.Info().Int64("userID", existing.ID).Str("email", email).Msg("Default admin already present")
		return nil
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return fmt.Errorf("failed to look up default admin: %w", err)
	}

	hashed, err := auth.HashPassword(cfg.Admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash default admin password: %w", err)
	}

	admin := &models.User{
		Email:     email,
		Password:  hashed,
		FirstName: cfg.Admin.FirstName,
		LastName:  cfg.Admin.LastName,
		RoleType:  models.RoleAdmin,
		IsActive:  true,
	}
	if _, err := userRepo.CreateWithProfile(ctx, admin); err != nil {
		// Another instance may have seeded concurrently.
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create default admin: %w", err)
	}

	lgr.Info().Int64("userID", admin.ID).Str("email", email).Msg("Default admin created")
	return nil
}
