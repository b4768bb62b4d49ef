package usecase

import "sighting_backend/internal/shared/apperror"

// Client-facing messages for sighting failures.
const (
	MsgSightingNotFound = "sighting not found"
	MsgInvalidUserID    = "invalid user ID"
	MsgMissingFields    = "missing required fields"
	MsgEmptyField       = "description and location must not be empty"
)

var (
	// ErrSightingNotFound is returned when no sighting has the requested ID.
	ErrSightingNotFound = apperror.NotFound(MsgSightingNotFound)

	// ErrMissingFields is returned when a create request lacks a required field.
	ErrMissingFields = apperror.Invalid(MsgMissingFields)

	// ErrEmptyField is returned when an update supplies a blank text field.
	ErrEmptyField = apperror.Invalid(MsgEmptyField)

	// ErrInvalidUserID is returned when an update reassigns a sighting to user 0.
	ErrInvalidUserID = apperror.Invalid(MsgInvalidUserID)
)
