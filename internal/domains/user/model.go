package user

import "time"

// User is the domain account object.
type User struct {
	ID          string
	DisplayName string
	Email       string
	Password    string // bcrypt hash
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateUserRequest is the registration input.
type CreateUserRequest struct {
	DisplayName string `json:"displayName" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the login input.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest carries optional profile changes.
type UpdateUserRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
}

// UserResponse is the public account shape.
type UserResponse struct {
	ID          string    `json:"id"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToResponse strips private fields for API output.
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		CreatedAt:   u.CreatedAt,
	}
}
