// Package server provides the HTTP REST API for resume ATS analysis.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-ats/internal/schemas"
	"github.com/jonathan/resume-ats/internal/session"
	"github.com/jonathan/resume-ats/internal/types"
)

// ErrNoReport is returned when a session has not completed an analysis yet
var ErrNoReport = errors.New("no completed analysis for this session")

// ErrNothingRestorable is returned when a session has no autosave within the restore window
var ErrNothingRestorable = errors.New("no restorable autosave for this session")

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrBodyTooLarge indicates the request body exceeded the configured limit
type ErrBodyTooLarge struct {
	Limit int64
}

func (e *ErrBodyTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrValidation, *schemas.ValidationError, *types.UnknownFieldError:
		return http.StatusBadRequest
	case *ErrBodyTooLarge:
		return http.StatusRequestEntityTooLarge
	case *session.NotFoundError, *types.EntryNotFoundError:
		return http.StatusNotFound
	case *session.CancelledError:
		if errors.Is(err, context.DeadlineExceeded) {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	}

	switch {
	case errors.Is(err, session.ErrBlankJobDescription):
		return http.StatusUnprocessableEntity
	case errors.Is(err, session.ErrAnalysisInProgress):
		return http.StatusConflict
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrNoReport), errors.Is(err, ErrNothingRestorable):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
