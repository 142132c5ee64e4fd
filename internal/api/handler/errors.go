package handler

import (
	"net/http"

	"github.com/dashgames/scrambledash/internal/api/apierr"
)

// Re-export from apierr for convenience
type APIError = apierr.APIError
type ErrorResponse = apierr.ErrorResponse

// Re-export error codes
const (
	CodeInvalidRequest      = apierr.CodeInvalidRequest
	CodeNameRequired        = apierr.CodeNameRequired
	CodeNameTaken           = apierr.CodeNameTaken
	CodePlayerNotFound      = apierr.CodePlayerNotFound
	CodeSessionNotFound     = apierr.CodeSessionNotFound
	CodeRoundNotFound       = apierr.CodeRoundNotFound
	CodeRoundEnded          = apierr.CodeRoundEnded
	CodeNoQuestionOpen      = apierr.CodeNoQuestionOpen
	CodeOnCooldown          = apierr.CodeOnCooldown
	CodeDeviceAlreadyPlayed = apierr.CodeDeviceAlreadyPlayed
	CodeCatalogNotLoaded    = apierr.CodeCatalogNotLoaded
	CodeUnauthorized        = apierr.CodeUnauthorized
	CodeInternalError       = apierr.CodeInternalError
)

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	apierr.WriteError(w, err)
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return apierr.NewInvalidRequestError(message)
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return apierr.NewUnauthorizedError()
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return apierr.NewInternalError()
}
