package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/auth"
	"github.com/yigit/lmsadmin/internal/pkg/logger"
)

// Authorizer confirms that a principal may act with one of roles
type Authorizer interface {
	Authorize(ctx context.Context, principal auth.Principal, roles ...models.RoleType) error
}

// AuthMiddleware for authentication and authorization
type AuthMiddleware struct {
	jwtService *auth.JWTService
	sessions   *auth.SessionManager
	revocation auth.RevocationStore
	authorizer Authorizer
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(jwtService *auth.JWTService, sessions *auth.SessionManager, revocation auth.RevocationStore, authorizer Authorizer) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		sessions:   sessions,
		revocation: revocation,
		authorizer: authorizer,
	}
}

// Authenticate resolves the principal from a bearer token or, failing that, the
// session cookie. Anonymous requests pass through; a bad bearer token is rejected
// while a revoked session is ignored.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if header := c.GetHeader("Authorization"); strings.TrimSpace(header) != "" {
			principal, err := m.bearerPrincipal(c.Request.Context(), header)
			if err != nil {
				HandleAPIError(c, err)
				return
			}
			setPrincipal(c, principal)
			c.Next()
			return
		}

		if principal, ok := m.sessions.Load(c.Request); ok {
			revoked, err := m.revocation.IsRevoked(c.Request.Context(), principal.TokenID)
			if err != nil {
				logger.Error().Err(err).Str("sessionID", principal.TokenID).Msg("Failed to check session revocation")
				HandleAPIError(c, err)
				return
			}
			// a logged out session is treated as anonymous so login still works
			if !revoked {
				setPrincipal(c, principal)
			}
		}
		c.Next()
	}
}

func (m *AuthMiddleware) bearerPrincipal(ctx context.Context, header string) (auth.Principal, error) {
	token, err := auth.ExtractBearerToken(header)
	if err != nil {
		return auth.Principal{}, err
	}

	claims, err := m.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		return auth.Principal{}, err
	}

	revoked, err := m.revocation.IsRevoked(ctx, claims.ID)
	if err != nil {
		logger.Error().Err(err).Str("tokenID", claims.ID).Msg("Failed to check token revocation")
		return auth.Principal{}, err
	}
	if revoked {
		return auth.Principal{}, apperrors.ErrTokenRevoked
	}

	principal := auth.Principal{
		UserID:  claims.UserID,
		Email:   claims.Email,
		Role:    models.RoleType(claims.RoleType),
		Source:  auth.SourceBearer,
		TokenID: claims.ID,
	}
	if claims.ExpiresAt != nil {
		principal.TokenExpiry = claims.ExpiresAt.Unix()
	}
	return principal, nil
}

// RoleRequired rejects the request before the handler runs unless the principal
// holds one of roles: 401 without a principal, 403 with the wrong role.
func (m *AuthMiddleware) RoleRequired(roles ...models.RoleType) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			HandleAPIError(c, apperrors.ErrUnauthenticated)
			return
		}

		if err := m.authorizer.Authorize(c.Request.Context(), principal, roles...); err != nil {
			logger.Info().Int64("userID", principal.UserID).Str("role", string(principal.Role)).Str("path", c.FullPath()).Msg("Access denied")
			HandleAPIError(c, err)
			return
		}

		c.Next()
	}
}

// setPrincipal stores the principal on the request context, which handlers read it from
func setPrincipal(c *gin.Context, principal auth.Principal) {
	c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))
}

// CurrentPrincipal returns the authenticated caller of the request
func CurrentPrincipal(c *gin.Context) (auth.Principal, bool) {
	return auth.PrincipalFrom(c.Request.Context())
}
