package session

import (
	"errors"
	"fmt"
)

// ErrBlankJobDescription is returned when a run is triggered without a job
// description. No scoring happens and the latest report is left as it was.
var ErrBlankJobDescription = errors.New("job description is blank")

// ErrAnalysisInProgress is returned when a run is triggered while another run
// on the same controller has not finished.
var ErrAnalysisInProgress = errors.New("analysis already in progress")

// ErrTooManySessions is returned when the registry is full
var ErrTooManySessions = errors.New("too many sessions")

// NotFoundError is returned when a session ID is not in the registry
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("session not found: %s", e.ID)
}

// CancelledError wraps the context error of a run abandoned before it published
type CancelledError struct {
	Cause error
}

func (e *CancelledError) Error() string {
	return fmt.Sprintf("analysis cancelled: %v", e.Cause)
}

func (e *CancelledError) Unwrap() error {
	return e.Cause
}
