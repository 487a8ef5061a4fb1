package sqlite

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB(t *testing.T) {
	tests := []struct {
		name     string
		input    time.Time
		expected string
	}{
		{
			name:     "UTC time",
			input:    time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
			expected: "2024-01-15T14:30:00Z",
		},
		{
			name:     "Nanoseconds kept",
			input:    time.Date(2024, 1, 15, 14, 30, 0, 123456789, time.UTC),
			expected: "2024-01-15T14:30:00.123456789Z",
		},
		{
			name:     "Offset converted to UTC",
			input:    time.Date(2024, 1, 15, 14, 30, 0, 0, time.FixedZone("CET", 3600)),
			expected: "2024-01-15T13:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimeForDB(tt.input))
		})
	}
}

func TestParseTimeFromDB(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    time.Time
		expectError bool
	}{
		{
			name:     "Valid RFC3339 UTC",
			input:    "2024-01-15T14:30:00Z",
			expected: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "Valid RFC3339 with offset",
			input:    "2024-01-15T15:30:00+01:00",
			expected: time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC),
		},
		{
			name:        "Invalid format",
			input:       "2024-01-15 14:30:00",
			expectError: true,
		},
		{
			name:        "Empty string",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseTimeFromDB(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.expected.Equal(result), "got %v, want %v", result, tt.expected)
			assert.Equal(t, time.UTC, result.Location())
		})
	}
}

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2024, 3, 10, 8, 15, 42, 987654321, time.UTC)

	parsed, err := ParseTimeFromDB(FormatTimeForDB(original))

	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func TestNullableString(t *testing.T) {
	assert.Equal(t, sql.NullString{}, NullableString(nil))

	s := "note"
	assert.Equal(t, sql.NullString{String: "note", Valid: true}, NullableString(&s))

	empty := ""
	assert.Equal(t, sql.NullString{String: "", Valid: true}, NullableString(&empty))
}

func TestStringPtrFromDB(t *testing.T) {
	assert.Nil(t, StringPtrFromDB(sql.NullString{}))

	result := StringPtrFromDB(sql.NullString{String: "note", Valid: true})
	require.NotNil(t, result)
	assert.Equal(t, "note", *result)
}

func TestBoolToDB(t *testing.T) {
	assert.Equal(t, 1, BoolToDB(true))
	assert.Equal(t, 0, BoolToDB(false))

	yes := true
	assert.Nil(t, BoolPtrToDB(nil))
	assert.Equal(t, 1, BoolPtrToDB(&yes))
}
