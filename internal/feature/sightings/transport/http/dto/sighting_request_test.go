package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    UserID
		wantErr bool
	}{
		{name: "number", input: `{"userId":7}`, want: 7},
		{name: "numeric string", input: `{"userId":"42"}`, want: 42},
		{name: "padded string", input: `{"userId":" 3 "}`, want: 3},
		{name: "empty string is zero", input: `{"userId":""}`, want: 0},
		{name: "null leaves zero", input: `{"userId":null}`, want: 0},
		{name: "absent", input: `{}`, want: 0},
		{name: "whole decimal", input: `{"userId":7.0}`, want: 7},
		{name: "exponent", input: `{"userId":1e1}`, want: 10},
		{name: "whole decimal string", input: `{"userId":"3.00"}`, want: 3},
		{name: "word", input: `{"userId":"abc"}`, wantErr: true},
		{name: "negative decimal", input: `{"userId":-2.0}`, wantErr: true},
		{name: "hex string", input: `{"userId":"0x10"}`, wantErr: true},
		{name: "infinity string", input: `{"userId":"Infinity"}`, wantErr: true},
		{name: "negative", input: `{"userId":-1}`, wantErr: true},
		{name: "fraction", input: `{"userId":1.5}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var req struct {
				UserID UserID `json:"userId"`
			}
			err := json.Unmarshal([]byte(tt.input), &req)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUserIDFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, req.UserID)
		})
	}
}

func TestUpdateSightingReq_AbsentVersusPresent(t *testing.T) {
	t.Parallel()

	var req UpdateSightingReq
	require.NoError(t, json.Unmarshal([]byte(`{"location":"Harbor","userId":"5"}`), &req))

	assert.Nil(t, req.Description)
	assert.Nil(t, req.DateTime)
	require.NotNil(t, req.Location)
	assert.Equal(t, "Harbor", *req.Location)
	require.NotNil(t, req.UserID)
	assert.Equal(t, UserID(5), *req.UserID)
}

func TestParseDateTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "RFC3339 UTC",
			input: "2024-01-01T10:00:00Z",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "RFC3339 with offset keeps the instant",
			input: "2024-01-01T19:00:00+09:00",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional seconds",
			input: "2024-01-01T10:00:00.250Z",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 250_000_000, time.UTC),
		},
		{
			name:  "zone-less seconds read as UTC",
			input: "2024-01-01T10:00:00",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "datetime-local value",
			input: "2024-01-01T10:00",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "space separated",
			input: "2024-01-01 10:00:00",
			want:  time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "date only",
			input: " 2024-01-01 ",
			want:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{name: "garbage", input: "yesterday", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "invalid month", input: "2024-13-01", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateTime(tt.input)

			if tt.wantErr {
				assert.ErrorIs(t, err, ErrDateTimeFormat)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}
}
