// Package dto defines data transfer objects for the sightings HTTP API.
package dto

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrUserIDFormat is returned when userId is neither a JSON number nor a numeric string.
var ErrUserIDFormat = errors.New("userId must be a positive integer")

// ErrDateTimeFormat is returned when dateTime matches none of the accepted layouts.
var ErrDateTimeFormat = errors.New("unrecognized dateTime format")

// CreateSightingReq represents the request body for POST /sightings.
type CreateSightingReq struct {
	Description string `json:"description" binding:"required"`
	DateTime    string `json:"dateTime" binding:"required"`
	Location    string `json:"location" binding:"required"`
	UserID      UserID `json:"userId" binding:"required"`
}

// UpdateSightingReq represents the request body for PUT /sightings/:id.
// Absent fields are left unchanged.
type UpdateSightingReq struct {
	Description *string `json:"description"`
	DateTime    *string `json:"dateTime"`
	Location    *string `json:"location"`
	UserID      *UserID `json:"userId"`
}

// UserID accepts 7, 7.0 and "7" on the wire.
type UserID uint

// UnmarshalJSON implements json.Unmarshaler.
func (u *UserID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	s := strings.TrimSpace(strings.Trim(string(b), `"`))
	if s == "" {
		*u = 0
		return nil
	}
	if n, err := strconv.ParseUint(s, 10, 64); err == nil {
		*u = UserID(n)
		return nil
	}
	n, ok := wholeNumber(s)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUserIDFormat, s)
	}
	*u = UserID(n)
	return nil
}

// wholeNumber accepts decimal forms such as 7.0 or 1e1 that denote a non-negative integer.
func wholeNumber(s string) (uint64, bool) {
	if strings.ContainsAny(s, "xX_") {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, false
	}
	return uint64(f), true
}

// dateTimeLayouts are tried in order. Layouts without a zone are read as UTC.
var dateTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateTime parses an observation timestamp as sent by clients
// (ISO 8601 with or without zone, or an HTML datetime-local value).
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrDateTimeFormat, s)
}
