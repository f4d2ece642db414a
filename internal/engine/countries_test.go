package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCountry(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AU", "Australia"},
		{"au", "Australia"},
		{" nz ", "New Zealand"},
		{"UK", "United Kingdom"},
		{"GB", "United Kingdom"},
		{"US", "United States"},
		{"Australia", "Australia"},
		{"France", "France"},
		{"FR", "FR"}, // unmapped code passes through
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeCountry(tt.in), "input %q", tt.in)
	}
}
