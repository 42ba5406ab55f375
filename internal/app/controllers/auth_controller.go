// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/lmsadmin/internal/app/models"
	"github.com/yigit/lmsadmin/internal/app/models/dto"
	"github.com/yigit/lmsadmin/internal/app/services"
	"github.com/yigit/lmsadmin/internal/middleware"
	"github.com/yigit/lmsadmin/internal/pkg/apperrors"
	"github.com/yigit/lmsadmin/internal/pkg/auth"
)

// AuthController handles login, logout and user creation
type AuthController struct {
	authService *services.AuthService
	sessions    *auth.SessionManager
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, sessions *auth.SessionManager, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		logger:      logger,
	}
}

// Login handles user login
// @Summary Log in
// @Description Starts a cookie session and returns a bearer token for non-browser clients
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{response=dto.LoginResponse}
// @Failure 400 {object} dto.APIResponse "Invalid request format"
// @Failure 401 {object} dto.APIResponse "Invalid credentials"
// @Failure 403 {object} dto.APIResponse "Account is disabled"
// @Router /auth/login/ [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, token, err := c.authService.Login(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.Start(ctx.Writer, ctx.Request, user); err != nil {
		c.logger.Error().Err(err).Int64("userID", user.ID).Msg("Failed to start session")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.Data(dto.LoginResponse{
		Token: *token,
		User:  dto.NewUserResponse(user),
	}))
}

// Logout ends the session and revokes the presented bearer token
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Logged out"
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Router /auth/logout/ [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	if err := c.authService.Logout(ctx.Request.Context(), principal); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.sessions.End(ctx.Writer, ctx.Request); err != nil {
		c.logger.Warn().Err(err).Int64("userID", principal.UserID).Msg("Failed to clear session cookie")
	}

	ctx.JSON(http.StatusOK, dto.Message("Logged out"))
}

// Me returns the authenticated principal
// @Summary Current principal
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{response=dto.PrincipalResponse}
// @Failure 401 {object} dto.APIResponse "Unauthenticated"
// @Router /auth/me/ [get]
func (c *AuthController) Me(ctx *gin.Context) {
	principal, ok := middleware.CurrentPrincipal(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrUnauthenticated)
		return
	}

	ctx.JSON(http.StatusOK, dto.Data(dto.PrincipalResponse{
		UserID: principal.UserID,
		Email:  principal.Email,
		Role:   string(principal.Role),
		Via:    string(principal.Source),
	}))
}

// CreateUser lets an admin create a person record with its mentor or student profile
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{response=dto.UserResponse}
// @Failure 400 {object} dto.APIResponse "Validation error or <email> is already present"
// @Router /users/ [post]
func (c *AuthController) CreateUser(ctx *gin.Context) {
	principal, _ := middleware.CurrentPrincipal(ctx)

	var req dto.CreateUserRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	user, profileID, err := c.authService.CreateUser(ctx.Request.Context(), principal.UserID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewUserResponse(user)
	switch user.RoleType {
	case models.RoleMentor:
		resp.MentorID = &profileID
	case models.RoleStudent:
		resp.StudentID = &profileID
	}
	ctx.JSON(http.StatusCreated, dto.Data(resp))
}
