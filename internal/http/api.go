package http

import (
	"fmt"
	"net/http"

	"github.com/waypoint-labs/waypoint/internal/domain"
	"github.com/waypoint-labs/waypoint/pkg/httpx"
)

// APIError is the structured error contract shared by every endpoint. It
// implements the error interface and knows how to write itself as an HTTP
// response.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "duplicate_email")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Write writes this APIError to an HTTP response writer.
func (e *APIError) Write(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Code, e.Description)
}

// WithDescription returns a copy of the error carrying a more specific
// description, e.g. field-level validation detail.
func (e *APIError) WithDescription(desc string) *APIError {
	return &APIError{
		StatusCode:  e.StatusCode,
		Code:        e.Code,
		Description: desc,
	}
}

var (
	// ErrValidation is returned for malformed or missing request fields.
	// Handlers attach field-level detail via WithDescription.
	ErrValidation = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        "validation_error",
		Description: "the request is malformed or missing required fields",
	}

	// ErrDuplicateEmail is returned when registering an email that is
	// already taken.
	ErrDuplicateEmail = &APIError{
		StatusCode:  http.StatusConflict,
		Code:        "duplicate_email",
		Description: "email already exists",
	}

	// ErrInvalidCredentials deliberately covers both unknown email and
	// wrong password so callers cannot enumerate accounts.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_credentials",
		Description: "invalid email or password",
	}

	// ErrMissingToken is returned when the Authorization header is absent
	// or not a Bearer scheme.
	ErrMissingToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "missing_token",
		Description: "authentication token is missing",
	}

	// ErrInvalidToken is returned for tokens with a bad signature or shape.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "invalid_token",
		Description: "token is invalid",
	}

	// ErrExpiredToken is returned for tokens past their expiry instant.
	ErrExpiredToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "expired_token",
		Description: "token has expired",
	}

	// ErrUserNotFound is returned when a token is valid but its subject no
	// longer exists.
	ErrUserNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        "user_not_found",
		Description: "user not found",
	}

	// ErrForbidden is returned for authenticated callers lacking the
	// required role.
	ErrForbidden = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        "forbidden",
		Description: "Admin access required",
	}

	// ErrAdminSecretMissing is returned when Admin registration is
	// attempted without the admin secret.
	ErrAdminSecretMissing = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        "admin_secret_required",
		Description: "admin_secret_key is required to register an Admin",
	}

	// ErrAdminSecretMismatch is returned when the supplied admin secret is
	// wrong.
	ErrAdminSecretMismatch = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        "admin_secret_mismatch",
		Description: "admin_secret_key is incorrect",
	}

	// ErrDestinationNotFound is returned for operations on an unknown
	// destination.
	ErrDestinationNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        "not_found",
		Description: "destination not found",
	}

	// ErrServer is returned for unexpected internal failures, including
	// store I/O faults. Those are never reported as "no data".
	ErrServer = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        "server_error",
		Description: "internal server error",
	}
)

// Request and response bodies.

type RegisterRequest struct {
	Name           string `json:"name" validate:"required"`
	Email          string `json:"email" validate:"required,tld_email"`
	Password       string `json:"password" validate:"required"`
	Role           string `json:"role" validate:"required,oneof=User Admin"`
	AdminSecretKey string `json:"admin_secret_key,omitempty"`
}

type RegisterResponse struct {
	Message string `json:"message"`
	UserID  string `json:"user_id"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,tld_email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Message string      `json:"message"`
	Token   string      `json:"token"`
	Role    domain.Role `json:"role"`
}

type VerifyRequest struct {
	Token string `json:"token" validate:"required"`
}

type VerifyResponse struct {
	Valid            bool   `json:"valid"`
	UserID           string `json:"user_id,omitempty"`
	Role             string `json:"role,omitempty"`
	Error            string `json:"error,omitempty"`
	ErrorDescription string `json:"error_description,omitempty"`
}

type RolesResponse struct {
	UserID string      `json:"user_id"`
	Role   domain.Role `json:"role"`
}

type CreateDestinationRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

type CreateDestinationResponse struct {
	Message       string `json:"message"`
	DestinationID string `json:"destination_id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthChecks struct {
	Database string `json:"database"`
}

type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}
