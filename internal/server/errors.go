// Package server provides the HTTP REST API for readiness assessments.
package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/readiness-check/internal/assessment"
)

// ErrRoleNotFound indicates a quiz was requested for an unknown role
type ErrRoleNotFound struct {
	Role string
}

func (e *ErrRoleNotFound) Error() string {
	return "role not found: " + e.Role
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var ve *assessment.ValidationError
	var roleErr *ErrRoleNotFound
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.Is(err, assessment.ErrNotFound), errors.As(err, &roleErr):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Message string                  `json:"message"`
	Errors  []assessment.FieldError `json:"errors,omitempty"`
}

// publicError converts err into the body shown to clients. Internal details are never exposed.
func publicError(err error) (int, errorBody) {
	status := HTTPStatus(err)

	var ve *assessment.ValidationError
	var roleErr *ErrRoleNotFound
	switch {
	case errors.As(err, &ve):
		return status, errorBody{Message: ve.Message, Errors: ve.Errors}
	case errors.Is(err, assessment.ErrNotFound):
		return status, errorBody{Message: "Assessment not found"}
	case errors.As(err, &roleErr):
		return status, errorBody{Message: "Role not found"}
	default:
		return status, errorBody{Message: "Internal server error"}
	}
}
