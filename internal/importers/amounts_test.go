package importers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBedrag(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"85", "85"},
		{"85,5", "85.5"},
		{"85.50", "85.5"},
		{"€ 1.250,50", "1250.5"},
		{"120 EUR", "120"},
		{"12,345", "12.35"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBedrag(tt.input)
			require.NoError(t, err)
			require.True(t, got.Valid)
			assert.Equal(t, tt.expected, got.Decimal.String())
		})
	}
}

func TestParseBedrag_EmptyIsNull(t *testing.T) {
	for _, input := range []string{"", "  ", "-", "€"} {
		got, err := ParseBedrag(input)
		require.NoError(t, err)
		assert.False(t, got.Valid, input)
	}
}

func TestParseBedrag_Invalid(t *testing.T) {
	_, err := ParseBedrag("gratis")
	assert.Error(t, err)
}

func TestParsePerunage(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"", 1},
		{"ja", 1},
		{"nee", 0},
		{"100%", 1},
		{"50 %", 0.5},
		{"0,25", 0.25},
		{"75", 0.75},
		{"1", 1},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePerunage(tt.input)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	for _, input := range []string{"veel", "150%", "-0.5"} {
		_, err := ParsePerunage(input)
		assert.Error(t, err, input)
	}
}
