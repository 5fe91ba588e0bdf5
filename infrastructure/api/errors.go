// Package api provides the REST API layer for the CodeVault service.
package api

import (
	"github.com/codevault/codevault/infrastructure/api/middleware"
)

// Base API errors as sentinels.
var (
	// ErrAPI is the base error for all API-related errors.
	ErrAPI = middleware.ErrAPI

	// ErrServer indicates the server returned an error response.
	ErrServer = middleware.ErrServer
)

// APIError represents a structured API error with additional context.
type APIError = middleware.APIError

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return middleware.NewAPIError(code, message, cause)
}

// ServerError represents a server-side error.
type ServerError = middleware.ServerError

// NewServerError creates a new ServerError.
func NewServerError(statusCode int, message string) *ServerError {
	return middleware.NewServerError(statusCode, message)
}
