package usecase

import "sighting_backend/internal/shared/apperror"

// Client-facing messages for user failures.
const (
	MsgUserNotFound       = "user not found"
	MsgMissingNameOrEmail = "missing name or email"
	MsgEmailExists        = "email already exists"
	MsgEmptyField         = "name and email must not be empty"
)

var (
	// ErrUserNotFound is returned when no user has the requested ID.
	ErrUserNotFound = apperror.NotFound(MsgUserNotFound)

	// ErrMissingNameOrEmail is returned when a create request lacks name or email.
	ErrMissingNameOrEmail = apperror.Invalid(MsgMissingNameOrEmail)

	// ErrEmptyField is returned when an update supplies a blank name or email.
	ErrEmptyField = apperror.Invalid(MsgEmptyField)
)
