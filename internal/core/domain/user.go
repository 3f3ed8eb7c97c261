package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("email or username already registered")
var ErrInvalidCredentials = errors.New("incorrect email or password")
var ErrInvalidToken = errors.New("invalid token")
var ErrTooManyAttempts = errors.New("too many login attempts")
var ErrMissingFields = errors.New("username, email and password are required")
var ErrForbidden = errors.New("access forbidden")

// User models a registered account. The password hash never leaves the
// server: it is excluded from every JSON representation.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
