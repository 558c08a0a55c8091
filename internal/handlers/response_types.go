package handlers

import (
	"github.com/careerforge/careerforge/internal/domains/user"
)

// Response wrapper types for Swagger documentation

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Operation completed successfully"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"Validation error details"`
}

// EngineResponse is the envelope for the engine admin endpoints
type EngineResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// RegisterResponse represents the response for user registration
type RegisterResponse struct {
	Message string            `json:"message" example:"User registered successfully"`
	User    user.UserResponse `json:"user"`
}

// LoginResponse represents the response for user login
type LoginResponse struct {
	Message string            `json:"message" example:"Login successful"`
	User    user.UserResponse `json:"user"`
	Tokens  user.AuthTokens   `json:"tokens"`
}

// ProfileResponse represents the response for getting user profile
type ProfileResponse struct {
	User user.UserResponse `json:"user"`
}

// UpdateProfileResponse represents the response for updating user profile
type UpdateProfileResponse struct {
	Message string            `json:"message" example:"Profile updated successfully"`
	User    user.UserResponse `json:"user"`
}
