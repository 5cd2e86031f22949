package runner

import (
	"strings"
	"testing"

	"github.com/aretw0/turing/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput_Room(t *testing.T) {
	limit := 16

	tests := []struct {
		name      string
		inputSize int
		wantErr   bool
	}{
		{"Under Limit", limit - 1, false},
		{"Exact Limit", limit, false},
		{"Over Limit", limit + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SanitizeInput(strings.Repeat("1", tt.inputSize), nil, limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInputTooLarge)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSanitizeInput_StripsWhitespaceAndControls(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Plain", "110111", "110111"},
		{"Spaces", "11 0 111", "110111"},
		{"Trailing Newline", "110111\r\n", "110111"},
		{"ANSI Code", "\x1b1\x1b0", "10"},
		{"Null Byte", "1\x000", "10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input, domain.Symbols("01"), 256)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestSanitizeInput_Rejects(t *testing.T) {
	_, err := SanitizeInput("1\xff0", nil, 256)
	assert.ErrorIs(t, err, ErrInvalidUTF8)

	_, err = SanitizeInput("12a2", domain.Symbols("01"), 256)
	assert.ErrorIs(t, err, ErrUnknownSymbols)
	assert.ErrorContains(t, err, "2,a")
}
