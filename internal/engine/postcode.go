package engine

import (
	"regexp"
	"strings"
)

// MatchPostcode reports whether a literal postcode matches a configured
// pattern. Precedence: universal "*", exact equality, inclusive "min-max"
// range, then glob. Range comparison is lexicographic on the raw strings --
// correct for fixed-width numeric postcodes, known to misorder variable-width
// or alphanumeric codes; kept for compatibility with existing merchant
// configuration. A malformed pattern is treated as no match, never an error,
// so one bad entry cannot take out evaluation of the rest of a zone.
func MatchPostcode(postcode, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if postcode == pattern {
		return true
	}
	if strings.Contains(pattern, "-") {
		parts := strings.SplitN(pattern, "-", 2)
		min, max := parts[0], parts[1]
		return postcode >= min && postcode <= max
	}
	if strings.Contains(pattern, "*") {
		return matchGlob(postcode, pattern)
	}
	return false
}

// matchGlob compiles a "*"-wildcard pattern into an anchored regexp with all
// other metacharacters escaped literally.
func matchGlob(postcode, pattern string) bool {
	expr := "^" + strings.ReplaceAll(regexp.QuoteMeta(pattern), `\*`, ".*") + "$"
	re, err := regexp.Compile(expr)
	if err != nil {
		return false
	}
	return re.MatchString(postcode)
}
