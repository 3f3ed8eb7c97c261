package handler

import "github.com/studytrack/task-system/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse is returned by register and login: a token plus the public
// view of the user. The password hash is never part of it.
type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
