package server

import "appdeck/internal/models"

// ErrorCode identifies the failure class in structured error responses.
type ErrorCode string

const (
	ErrorCodeValidation   ErrorCode = "validation_failed"
	ErrorCodeInvalidToken ErrorCode = "invalid_token"
	ErrorCodeNotFound     ErrorCode = "not_found"
	ErrorCodeInternal     ErrorCode = "internal_error"
)

type errorResponse struct {
	Error     string    `json:"error"`
	ErrorCode ErrorCode `json:"error_code,omitempty"`
}

// FieldErrors maps input field names to validation messages, mirroring the
// shape clients get for bad signup or app payloads.
type FieldErrors map[string][]string

func (f FieldErrors) add(field, msg string) {
	f[field] = append(f[field], msg)
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type createAppRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// updateAppRequest uses pointers so absent fields are distinguishable from
// empty ones; only supplied fields are changed.
type updateAppRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type planRequest struct {
	Plan string `json:"plan"`
}

type tokenUserResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
