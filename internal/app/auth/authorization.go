package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/repositories"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	pkgauth "github.com/yigit/lmsadmin/internal/pkg/auth"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
)

// AuthorizationService confirms a principal against the current user row, so a
// deactivated or demoted user loses access before their token or session expires.
type AuthorizationService struct {
	userRepo repositories.IUserRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(userRepo repositories.IUserRepository) *AuthorizationService {
	return &AuthorizationService{
		userRepo: userRepo,
	}
}

// Authorize returns nil when the principal's user still exists, is active and holds one of roles
func (s *AuthorizationService) Authorize(ctx context.Context, principal pkgauth.Principal, roles ...models.RoleType) error {
	if !principal.HasRole(roles...) {
		return apperrors.ErrPermissionDenied
	}

	user, err := s.userRepo.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrUnauthenticated
		}
		logger.Error().Err(err).Int64("userID", principal.UserID).Msg("Error getting user by ID in Authorize")
		return fmt.Errorf("error loading principal: %w", err)
	}

	if !user.IsActive {
		return apperrors.ErrAccountDisabled
	}

	for _, role := range roles {
		if user.RoleType == role {
			return nil
		}
	}
	return apperrors.ErrPermissionDenied
}
