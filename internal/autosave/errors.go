package autosave

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no snapshot is stored under the key
var ErrNotFound = errors.New("no autosaved state")

// ErrExpired is returned when the stored snapshot is too old to restore
var ErrExpired = errors.New("autosaved state expired")

// DecodeError is returned when a stored blob is not a valid snapshot
type DecodeError struct {
	Key   string
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed autosave blob %s: %v", e.Key, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// StoreError is returned when the backing store fails
type StoreError struct {
	Op    string
	Key   string
	Cause error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("autosave %s %s: %v", e.Op, e.Key, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}
