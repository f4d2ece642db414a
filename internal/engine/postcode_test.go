package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchPostcode(t *testing.T) {
	tests := []struct {
		name     string
		postcode string
		pattern  string
		want     bool
	}{
		{"universal", "2000", "*", true},
		{"universal empty postcode", "", "*", true},
		{"exact match", "2000", "2000", true},
		{"exact mismatch", "2001", "2000", false},
		{"range inside", "2000", "2000-2999", true},
		{"range upper bound", "2999", "2000-2999", true},
		{"range outside", "3000", "2000-2999", false},
		{"range lower miss", "1999", "2000-2999", false},
		{"glob prefix", "2abc", "2*", true},
		{"glob prefix miss", "3abc", "2*", false},
		{"glob middle", "2050", "2*0", true},
		{"glob escapes metacharacters", "20.0", "20.0", true},
		{"dot is literal not any", "20x0", "20.*", false},
		{"no match fallthrough", "2000", "abcd", false},
		{"empty pattern", "2000", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPostcode(tt.postcode, tt.pattern))
		})
	}
}

// Range comparison is lexicographic by design: a five-digit postcode sorts
// below "2999" even though it is numerically larger. Locked in as the
// compatibility contract.
func TestMatchPostcodeLexicographicRange(t *testing.T) {
	assert.False(t, MatchPostcode("10000", "2000-2999"))
	assert.True(t, MatchPostcode("21", "2000-2999")) // "21" > "2000" lexicographically
}
