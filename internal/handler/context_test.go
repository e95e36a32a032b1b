package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    string
		expectError bool
	}{
		{
			name:     "already padded",
			input:    "09:05",
			expected: "09:05",
		},
		{
			// time.Parse accepts a single-digit hour; without canonicalizing,
			// "9:05" would sort after "10:00" lexicographically.
			name:     "unpadded hour is zero-padded",
			input:    "9:05",
			expected: "09:05",
		},
		{
			name:     "midnight",
			input:    "0:00",
			expected: "00:00",
		},
		{
			name:        "hour out of range",
			input:       "24:00",
			expectError: true,
		},
		{
			name:        "not a time",
			input:       "bogus",
			expectError: true,
		},
		{
			name:        "empty",
			input:       "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTime(tt.input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2026-06-15")
	assert.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, 15, d.Day())

	_, err = parseDate("15-06-2026")
	assert.Error(t, err)
}
