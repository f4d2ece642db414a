package engine

import (
	"strings"

	"shipquote/internal/model"
)

// ZoneMatches reports whether a zone's geographic constraints admit the
// destination. All configured dimensions must pass; an empty list is a
// wildcard for its dimension. A state restriction is skipped when the
// destination carries no state, and likewise for postcodes -- a deliberately
// permissive default so partial addresses still receive quotes.
func ZoneMatches(zone model.ShippingZone, dest model.Destination) bool {
	if !zone.Active {
		return false
	}
	if len(zone.Countries) > 0 && !countryInZone(zone.Countries, dest.Country) {
		return false
	}
	if len(zone.States) > 0 && dest.State != "" && !stateInZone(zone.States, dest.State) {
		return false
	}
	if len(zone.Postcodes) > 0 && dest.Postcode != "" && !postcodeInZone(zone.Postcodes, dest.Postcode) {
		return false
	}
	return true
}

func countryInZone(countries []string, country string) bool {
	want := NormalizeCountry(country)
	for _, c := range countries {
		if strings.EqualFold(NormalizeCountry(c), want) {
			return true
		}
	}
	return false
}

func stateInZone(states []string, state string) bool {
	for _, s := range states {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(state)) {
			return true
		}
	}
	return false
}

func postcodeInZone(patterns []string, postcode string) bool {
	for _, p := range patterns {
		if MatchPostcode(postcode, p) {
			return true
		}
	}
	return false
}
