package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shipquote/internal/model"
)

func TestZoneMatchesWildcards(t *testing.T) {
	// Empty constraint lists match any destination.
	zone := model.ShippingZone{Name: "Everywhere", Active: true}
	for _, dest := range []model.Destination{
		{Country: "AU"},
		{Country: "France", State: "Nowhere", Postcode: "00000"},
		{Country: "JP", Postcode: "105-0011"},
	} {
		assert.True(t, ZoneMatches(zone, dest), "dest %+v", dest)
	}
}

func TestZoneMatchesInactive(t *testing.T) {
	zone := model.ShippingZone{Name: "Everywhere", Active: false}
	assert.False(t, ZoneMatches(zone, model.Destination{Country: "AU"}))
}

func TestZoneMatchesCountry(t *testing.T) {
	zone := model.ShippingZone{Name: "ANZ", Active: true, Countries: []string{"AU", "New Zealand"}}

	assert.True(t, ZoneMatches(zone, model.Destination{Country: "AU"}))
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "Australia"}))
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "australia"}))
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "NZ"}))
	assert.False(t, ZoneMatches(zone, model.Destination{Country: "US"}))
}

func TestZoneMatchesStateSkippedWhenAbsent(t *testing.T) {
	zone := model.ShippingZone{Name: "NSW only", Active: true, Countries: []string{"AU"}, States: []string{"NSW"}}

	// Permissive default: no state on the destination skips the restriction.
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "AU"}))
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "AU", State: "nsw"}))
	assert.False(t, ZoneMatches(zone, model.Destination{Country: "AU", State: "VIC"}))
}

func TestZoneMatchesPostcode(t *testing.T) {
	zone := model.ShippingZone{
		Name:      "Sydney Metro",
		Active:    true,
		Countries: []string{"AU"},
		Postcodes: []string{"2000-2249", "2555"},
	}

	assert.True(t, ZoneMatches(zone, model.Destination{Country: "AU", Postcode: "2100"}))
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "AU", Postcode: "2555"}))
	assert.False(t, ZoneMatches(zone, model.Destination{Country: "AU", Postcode: "2999"}))
	// No postcode provided skips the restriction.
	assert.True(t, ZoneMatches(zone, model.Destination{Country: "AU"}))
}
