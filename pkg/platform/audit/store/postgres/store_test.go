package postgres

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampLimit(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{name: "within range unchanged", input: 50, expected: 50},
		{name: "at max unchanged", input: maxListLimit, expected: maxListLimit},
		{name: "above max clamped", input: maxListLimit + 1, expected: maxListLimit},
		{name: "huge value clamped", input: math.MaxInt64, expected: maxListLimit},
		{name: "zero means max", input: 0, expected: maxListLimit},
		{name: "negative means max", input: -3, expected: maxListLimit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, clampLimit(tt.input))
		})
	}
}
