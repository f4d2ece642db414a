package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipquote/internal/model"
)

func TestResolveMethodInactive(t *testing.T) {
	method := model.ShippingMethod{
		Name:   "Standard",
		Active: false,
		Rates:  []model.ShippingRate{{Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 500}, Active: true}},
	}
	_, ok := ResolveMethod(method, model.CartSnapshot{})
	assert.False(t, ok)
}

func TestResolveMethodNoRates(t *testing.T) {
	_, ok := ResolveMethod(model.ShippingMethod{Name: "Standard", Active: true}, model.CartSnapshot{})
	assert.False(t, ok)
}

func TestResolveMethodSkipsInactiveAndInapplicable(t *testing.T) {
	method := model.ShippingMethod{
		Name:   "Standard",
		Active: true,
		Rates: []model.ShippingRate{
			{ID: "r1", Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 100}, Active: false},
			{ID: "r2", Model: model.PricingWeightBased, Weight: &model.WeightPricing{MinWeightGrams: i64(5000), RateCentsPerKg: 10}, Active: true},
			{ID: "r3", Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 900}, Active: true},
		},
	}
	resolved, ok := ResolveMethod(method, model.CartSnapshot{TotalWeightGrams: 1000})
	require.True(t, ok)
	assert.Equal(t, "r3", resolved.Rate.ID)
	assert.Equal(t, int64(900), resolved.Cost)
}

func TestResolveMethodPicksCheapestApplicable(t *testing.T) {
	method := model.ShippingMethod{
		Name:   "Standard",
		Active: true,
		Rates: []model.ShippingRate{
			{ID: "flat", Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 800}, Active: true},
			{ID: "by-weight", Model: model.PricingWeightBased, Weight: &model.WeightPricing{RateCentsPerKg: 100}, Active: true},
		},
	}
	// 2kg at 100c/kg = 200 beats the 800c flat rate.
	resolved, ok := ResolveMethod(method, model.CartSnapshot{TotalWeightGrams: 2000})
	require.True(t, ok)
	assert.Equal(t, "by-weight", resolved.Rate.ID)
	assert.Equal(t, int64(200), resolved.Cost)

	// 10kg at 100c/kg = 1000 loses to the flat rate.
	resolved, ok = ResolveMethod(method, model.CartSnapshot{TotalWeightGrams: 10000})
	require.True(t, ok)
	assert.Equal(t, "flat", resolved.Rate.ID)
	assert.Equal(t, int64(800), resolved.Cost)
}

func TestResolveMethodEqualCostFirstDefinedWins(t *testing.T) {
	method := model.ShippingMethod{
		Name:   "Standard",
		Active: true,
		Rates: []model.ShippingRate{
			{ID: "first", Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 500}, Active: true},
			{ID: "second", Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 500}, Active: true},
		},
	}
	resolved, ok := ResolveMethod(method, model.CartSnapshot{})
	require.True(t, ok)
	assert.Equal(t, "first", resolved.Rate.ID)
}
