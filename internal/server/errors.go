// Package server provides the HTTP REST API for the assessment service.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/muzamilsyed/aynstyn/internal/analysis"
	"github.com/muzamilsyed/aynstyn/internal/feedback"
	"github.com/muzamilsyed/aynstyn/internal/speech"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrAssessmentNotFound indicates a stored assessment was not found
type ErrAssessmentNotFound struct {
	ID uuid.UUID
}

func (e *ErrAssessmentNotFound) Error() string {
	return fmt.Sprintf("assessment not found: %s", e.ID)
}

// ErrStoreUnavailable indicates persistence is not configured
type ErrStoreUnavailable struct{}

func (e *ErrStoreUnavailable) Error() string {
	return "assessment store is not configured"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Speech errors carry a user-facing message and are the client's problem;
// upstream model failures map to 502.
func HTTPStatus(err error) int {
	var (
		validation   *ErrValidation
		notFound     *ErrAssessmentNotFound
		noStore      *ErrStoreUnavailable
		badField     *analysis.ValidationError
		userFacing   speech.UserFacing
		apiCall      *analysis.APICallError
		parseFailure *analysis.ParseError
		synthesis    *feedback.SynthesisError
	)
	switch {
	case errors.As(err, &validation), errors.As(err, &badField):
		return http.StatusBadRequest
	case errors.As(err, &userFacing):
		return http.StatusUnprocessableEntity
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &noStore):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiCall), errors.As(err, &parseFailure), errors.As(err, &synthesis):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the message safe to show the end user for an error.
func UserMessage(err error) string {
	var userFacing speech.UserFacing
	if errors.As(err, &userFacing) {
		return userFacing.UserMessage()
	}
	return err.Error()
}
