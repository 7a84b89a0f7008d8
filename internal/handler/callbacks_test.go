package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanCallbackData(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "normal token",
			input:    "cal:day:1990:6:15",
			expected: "cal:day:1990:6:15",
		},
		{
			name:     "token with surrounding whitespace",
			input:    "  confirm_birthday  ",
			expected: "confirm_birthday",
		},
		{
			name:     "token with newline",
			input:    "cal:\nchange",
			expected: "cal:change",
		},
		{
			name:     "token with tab",
			input:    "optout_\tconfirm",
			expected: "optout_confirm",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "only whitespace",
			input:    "   ",
			expected: "",
		},
		{
			name:     "token with unprintable characters",
			input:    "noop\x00\x01",
			expected: "noop",
		},
		{
			name:     "timezone token survives",
			input:    "confirm_timezone:Europe/Paris",
			expected: "confirm_timezone:Europe/Paris",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanCallbackData(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}
