// Package engine implements the shipping rate resolution core: zone
// matching, rate evaluation, method resolution, quote assembly, and the
// diagnostic explain path. It is stateless and reads configuration through
// the store.ZoneStore port exactly once per request.
package engine

import "strings"

// countryNames maps known 2-letter codes to the canonical full names used in
// zone definitions. Anything not listed passes through unchanged, so a zone
// configured with full names and a destination sent as a code still compare
// consistently after both sides are normalized.
var countryNames = map[string]string{
	"AU": "Australia",
	"NZ": "New Zealand",
	"US": "United States",
	"UK": "United Kingdom",
	"GB": "United Kingdom",
	"CA": "Canada",
	"SG": "Singapore",
	"MY": "Malaysia",
	"ID": "Indonesia",
	"TH": "Thailand",
	"PH": "Philippines",
	"VN": "Vietnam",
	"JP": "Japan",
	"CN": "China",
	"KR": "South Korea",
	"HK": "Hong Kong",
	"TW": "Taiwan",
	"IN": "India",
}

// NormalizeCountry maps a 2-letter country code to its canonical full name.
// Unrecognized input (already a full name, or an unmapped code) is returned
// unchanged. It never fails.
func NormalizeCountry(input string) string {
	trimmed := strings.TrimSpace(input)
	if name, ok := countryNames[strings.ToUpper(trimmed)]; ok {
		return name
	}
	return trimmed
}
