package dto

import (
	"github.com/yigit/lmsadmin/internal/app/models"
)

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}

// CreateUserRequest is used by an admin to create a person record
type CreateUserRequest struct {
	Email     string          `json:"email" binding:"required,email"`
	Password  string          `json:"password" binding:"required,min=8,max=72"`
	FirstName string          `json:"first_name" binding:"required,max=100"`
	LastName  string          `json:"last_name" binding:"required,max=100"`
	Role      models.RoleType `json:"role" binding:"required,oneof=ADMIN MENTOR STUDENT"`
}

// UserResponse represents basic user information
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	// MentorID or StudentID is set for users created with those roles
	MentorID  *int64 `json:"mentor_id,omitempty"`
	StudentID *int64 `json:"student_id,omitempty"`
}

// NewUserResponse converts a user model
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      string(u.RoleType),
	}
}

// PrincipalResponse describes the caller of /auth/me/
type PrincipalResponse struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Via    string `json:"via"`
}
