// Package server provides the HTTP REST API for the recommendation survey.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/minji/esg-compass/internal/fetch"
	"github.com/minji/esg-compass/internal/ranking"
	"github.com/minji/esg-compass/internal/scoring"
	"github.com/minji/esg-compass/internal/survey"
)

// ErrSessionNotFound indicates the survey session does not exist.
type ErrSessionNotFound struct {
	ID uuid.UUID
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// ErrValidation indicates request validation failure.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error.
func HTTPStatus(err error) int {
	var notFound *ErrSessionNotFound
	var wrongStep *survey.ErrWrongStep
	var validation *ErrValidation
	var fetchErr *fetch.Error

	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &wrongStep):
		return http.StatusConflict
	case errors.As(err, &validation),
		errors.Is(err, scoring.ErrNoGoalsSelected):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr),
		errors.Is(err, ranking.ErrNoRecords):
		// Load failures: the dataset could not back a real ranking.
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
