package dto

import (
	"time"

	"github.com/finance-tracker/savings-ledger/internal/application/usecase/auth"
	"github.com/finance-tracker/savings-ledger/internal/domain/entity"
)

// RegisterRequest represents the request body for user registration.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for user login.
type LoginRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest represents the request body for token refresh.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// LogoutRequest represents the request body for user logout.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents the request body for PATCH /users/me.
// An empty birth_date clears it.
type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	PhoneNumber        *string `json:"phone_number,omitempty"`
	BirthDate          *string `json:"birth_date,omitempty"`
	EmailNotifications *bool   `json:"email_notifications,omitempty"`
}

// AuthResponse represents the response for authentication endpoints.
type AuthResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

// UserResponse represents the user data in API responses.
type UserResponse struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	PhoneNumber        string    `json:"phone_number"`
	BirthDate          *string   `json:"birth_date"`
	EmailNotifications bool      `json:"email_notifications"`
	CreatedAt          time.Time `json:"created_at"`
}

// ToUserResponse converts a domain User entity to a UserResponse DTO.
func ToUserResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:                 user.ID.String(),
		Email:              user.Email,
		Name:               user.Name,
		PhoneNumber:        user.PhoneNumber,
		BirthDate:          formatOptionalDate(user.BirthDate),
		EmailNotifications: user.EmailNotifications,
		CreatedAt:          user.CreatedAt,
	}
}

// ToAuthResponse converts an AuthOutput to an AuthResponse DTO.
func ToAuthResponse(output *auth.AuthOutput) AuthResponse {
	return AuthResponse{
		AccessToken:  output.AccessToken,
		RefreshToken: output.RefreshToken,
		User:         ToUserResponse(output.User),
	}
}
