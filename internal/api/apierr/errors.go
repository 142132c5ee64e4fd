package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dashgames/scrambledash/internal/model"
	"github.com/dashgames/scrambledash/internal/services/gate"
)

// APIError represents an API error response. RetryAfter is only set on
// cooldown refusals, formatted HH:MM:SS.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	RetryAfter string `json:"retryAfter,omitempty"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest      = "INVALID_REQUEST"
	CodeNameRequired        = "NAME_REQUIRED"
	CodeNameTaken           = "NAME_TAKEN"
	CodePlayerNotFound      = "PLAYER_NOT_FOUND"
	CodeSessionNotFound     = "SESSION_NOT_FOUND"
	CodeRoundNotFound       = "ROUND_NOT_FOUND"
	CodeRoundEnded          = "ROUND_ENDED"
	CodeNoQuestionOpen      = "NO_QUESTION_OPEN"
	CodeOnCooldown          = "ON_COOLDOWN"
	CodeDeviceAlreadyPlayed = "DEVICE_ALREADY_PLAYED"
	CodeCatalogNotLoaded    = "CATALOG_NOT_LOADED"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeInternalError       = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	// Cooldown refusals carry the remaining wait
	var cooldownErr *gate.CooldownError
	if errors.As(err, &cooldownErr) {
		return newCooldownHTTPError(cooldownErr)
	}

	// Map model errors
	switch {
	case errors.Is(err, model.ErrNameRequired):
		return &httpError{http.StatusBadRequest, APIError{Code: CodeNameRequired, Message: "Player name is required"}}
	case errors.Is(err, model.ErrNameTaken):
		return &httpError{http.StatusConflict, APIError{Code: CodeNameTaken, Message: "Player name is already taken"}}
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodePlayerNotFound, Message: "Player not found"}}
	case errors.Is(err, model.ErrSessionNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeSessionNotFound, Message: "Game session not found"}}
	case errors.Is(err, model.ErrRoundNotFound):
		return &httpError{http.StatusNotFound, APIError{Code: CodeRoundNotFound, Message: "Round not found"}}
	case errors.Is(err, model.ErrRoundEnded):
		return &httpError{http.StatusConflict, APIError{Code: CodeRoundEnded, Message: "Round has ended"}}
	case errors.Is(err, model.ErrNoOpenQuestion):
		return &httpError{http.StatusConflict, APIError{Code: CodeNoQuestionOpen, Message: "No question is awaiting an answer"}}
	case errors.Is(err, model.ErrOnCooldown):
		return &httpError{http.StatusForbidden, APIError{Code: CodeOnCooldown, Message: "You have already played today"}}
	case errors.Is(err, model.ErrDeviceAlreadyPlayed):
		return &httpError{http.StatusForbidden, APIError{Code: CodeDeviceAlreadyPlayed, Message: "This device has already played today"}}
	case errors.Is(err, model.ErrCatalogNotLoaded), errors.Is(err, model.ErrCatalogEmpty):
		return &httpError{http.StatusServiceUnavailable, APIError{Code: CodeCatalogNotLoaded, Message: "Acronym catalog is not available"}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
	}
}

func newCooldownHTTPError(cooldownErr *gate.CooldownError) *httpError {
	code := CodeOnCooldown
	message := "You have already played today"
	if errors.Is(cooldownErr.Err, model.ErrDeviceAlreadyPlayed) {
		code = CodeDeviceAlreadyPlayed
		message = "This device has already played today"
	}
	return &httpError{http.StatusForbidden, APIError{
		Code:       code,
		Message:    message,
		RetryAfter: gate.FormatWait(cooldownErr.Wait),
	}}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{Code: CodeInvalidRequest, Message: message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{Code: CodeUnauthorized, Message: "Admin authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{Code: CodeInternalError, Message: "Internal server error"}}
}
