// Package types provides type definitions for structured data shared across the service.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// authValidator is shared by the request Validate methods; validator.New
// caches struct metadata, so one instance serves all request types.
var authValidator = validator.New()

// CreateUserRequest is the payload for registering a new account.
type CreateUserRequest struct {
	Name     string `json:"name" validate:"required,min=1"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone,omitempty"`
}

// LoginRequest is the payload for password login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest is the payload for changing an account password.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}

// User is the API-facing user profile. It never carries the password hash;
// PasswordSet only reports whether one exists.
type User struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	PasswordSet bool      `json:"password_set"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginResponse pairs the authenticated profile with its bearer token.
// Returned by both login and registration.
type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

// Validate checks the registration payload against its field constraints.
func (r *CreateUserRequest) Validate() error {
	return authValidator.Struct(r)
}

// Validate checks the login payload against its field constraints.
func (r *LoginRequest) Validate() error {
	return authValidator.Struct(r)
}

// Validate checks the password-change payload against its field constraints.
func (r *UpdatePasswordRequest) Validate() error {
	return authValidator.Struct(r)
}
