package oui

import (
	"errors"
	"fmt"
)

// Returned when a registry payload parses to zero usable records.
var ErrEmptyRegistry = errors.New("registry contains no usable records")

// Returned when a registry payload cannot be decoded at all.
type FormatError struct {
	Format string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot decode %s registry data: %s", e.Format, e.Reason)
}

// Returned when the database file does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no vendor database at %s", e.Path)
}

// Returned when the database file exists but cannot be decoded or fails
// validation.
type CorruptError struct {
	Path   string
	Reason string
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("vendor database %s is corrupt: %s", e.Path, e.Reason)
}

// Returned when the database cannot be written to disk.
type PersistenceError struct {
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save vendor database %s: %v", e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// Returned when no vendor name contains a search query.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("no vendor found with name %q", e.Query)
}
