// Package apperror defines the typed error taxonomy shared by the storage,
// usecase and transport layers.
//
// Storage adapters translate driver errors into these kinds once; handlers map
// a kind to an HTTP status once. Nothing in between inspects vendor codes.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by how the caller should react to it.
type Kind int

const (
	// KindInternal is an unclassified failure (connectivity, unexpected store error).
	KindInternal Kind = iota
	// KindInvalid means the request input is malformed or incomplete.
	KindInvalid
	// KindNotFound means the addressed record does not exist.
	KindNotFound
	// KindConflict means a store constraint rejected the write
	// (duplicate unique value, dangling foreign key).
	KindConflict
)

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is an error carrying a Kind and a client-safe message.
// Err holds the underlying cause, if any, and is never shown to clients
// except through an explicit details field.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Invalid returns a KindInvalid error with the given message.
func Invalid(msg string) error {
	return &Error{Kind: KindInvalid, Msg: msg}
}

// NotFound returns a KindNotFound error with the given message.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// Conflict returns a KindConflict error wrapping the store error that caused it.
func Conflict(msg string, cause error) error {
	return &Error{Kind: KindConflict, Msg: msg, Err: cause}
}

// Internal wraps an unclassified error. A nil cause yields nil.
func Internal(msg string, cause error) error {
	if cause == nil {
		return nil
	}
	return &Error{Kind: KindInternal, Msg: msg, Err: cause}
}

// KindOf reports the kind of err. Errors outside the taxonomy are KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// Message returns the client-safe message of err, or "" if err is not an *Error.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return ""
}

// Is reports whether err belongs to the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
