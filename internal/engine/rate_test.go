package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shipquote/internal/model"
)

func i64(v int64) *int64 { return &v }
func iptr(v int) *int    { return &v }

func TestRateAppliesFlat(t *testing.T) {
	rate := model.ShippingRate{Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 500}, Active: true}
	assert.True(t, RateApplies(rate, model.CartSnapshot{}))
	assert.True(t, RateApplies(rate, model.CartSnapshot{TotalWeightGrams: 99999, CartTotalCents: 1, ItemCount: 50}))
}

func TestRateAppliesWeightBounds(t *testing.T) {
	rate := model.ShippingRate{
		Model:  model.PricingWeightBased,
		Weight: &model.WeightPricing{MinWeightGrams: i64(500), MaxWeightGrams: i64(2000), RateCentsPerKg: 10},
		Active: true,
	}
	assert.False(t, RateApplies(rate, model.CartSnapshot{TotalWeightGrams: 499}))
	assert.True(t, RateApplies(rate, model.CartSnapshot{TotalWeightGrams: 500}))
	assert.True(t, RateApplies(rate, model.CartSnapshot{TotalWeightGrams: 2000}))
	assert.False(t, RateApplies(rate, model.CartSnapshot{TotalWeightGrams: 2001}))
}

func TestRateAppliesCartTotalBounds(t *testing.T) {
	rate := model.ShippingRate{
		Model:     model.PricingCartTotalBased,
		CartTotal: &model.CartTotalPricing{MinCartTotalCents: i64(1000), MaxCartTotalCents: i64(5000), RateCents: 300},
		Active:    true,
	}
	assert.False(t, RateApplies(rate, model.CartSnapshot{CartTotalCents: 999}))
	assert.True(t, RateApplies(rate, model.CartSnapshot{CartTotalCents: 1000}))
	assert.False(t, RateApplies(rate, model.CartSnapshot{CartTotalCents: 5001}))
}

func TestRateAppliesItemCountBounds(t *testing.T) {
	rate := model.ShippingRate{
		Model:     model.PricingItemCount,
		ItemCount: &model.ItemCountPricing{MinItems: iptr(2), MaxItems: iptr(4), RateCentsPerItem: 100},
		Active:    true,
	}
	assert.False(t, RateApplies(rate, model.CartSnapshot{ItemCount: 1}))
	assert.True(t, RateApplies(rate, model.CartSnapshot{ItemCount: 3}))
	assert.False(t, RateApplies(rate, model.CartSnapshot{ItemCount: 5}))
}

func TestRateAppliesUnknownModel(t *testing.T) {
	rate := model.ShippingRate{Model: "carrier_live", Active: true}
	assert.False(t, RateApplies(rate, model.CartSnapshot{}))

	// Declared model with a missing payload never applies either.
	rate = model.ShippingRate{Model: model.PricingWeightBased, Active: true}
	assert.False(t, RateApplies(rate, model.CartSnapshot{TotalWeightGrams: 100}))
}

func TestRateCostFlat(t *testing.T) {
	rate := model.ShippingRate{Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 500}}
	cost, ok := RateCost(rate, model.CartSnapshot{})
	require.True(t, ok)
	assert.Equal(t, int64(500), cost)
}

func TestRateCostWeightTruncates(t *testing.T) {
	rate := model.ShippingRate{
		Model:  model.PricingWeightBased,
		Weight: &model.WeightPricing{RateCentsPerKg: 10},
	}
	// floor(1500*10/1000) = 15
	cost, ok := RateCost(rate, model.CartSnapshot{TotalWeightGrams: 1500})
	require.True(t, ok)
	assert.Equal(t, int64(15), cost)

	// floor(1999*10/1000) = 19, not 20: truncation is the contract.
	cost, _ = RateCost(rate, model.CartSnapshot{TotalWeightGrams: 1999})
	assert.Equal(t, int64(19), cost)
}

func TestRateCostWeightWithBase(t *testing.T) {
	rate := model.ShippingRate{
		Model:  model.PricingWeightBased,
		Weight: &model.WeightPricing{RateCentsPerKg: 10, BaseRateCents: i64(200)},
	}
	cost, ok := RateCost(rate, model.CartSnapshot{TotalWeightGrams: 1500})
	require.True(t, ok)
	assert.Equal(t, int64(215), cost)
}

func TestRateCostWeightBaseOnlyChargesNothing(t *testing.T) {
	// A base fee without a per-kg rate charges zero; the base is only added
	// alongside a per-kg rate.
	rate := model.ShippingRate{
		Model:  model.PricingWeightBased,
		Weight: &model.WeightPricing{BaseRateCents: i64(200)},
	}
	cost, ok := RateCost(rate, model.CartSnapshot{TotalWeightGrams: 1500})
	require.True(t, ok)
	assert.Equal(t, int64(0), cost)
}

func TestRateCostWeightMonotonic(t *testing.T) {
	rate := model.ShippingRate{
		Model:  model.PricingWeightBased,
		Weight: &model.WeightPricing{RateCentsPerKg: 37, BaseRateCents: i64(120)},
	}
	var prev int64 = -1
	for w := int64(0); w <= 10000; w += 53 {
		cost, ok := RateCost(rate, model.CartSnapshot{TotalWeightGrams: w})
		require.True(t, ok)
		require.GreaterOrEqual(t, cost, prev, "cost must not decrease with weight (w=%d)", w)
		prev = cost
	}
}

func TestRateCostCartTotalIsFlatFee(t *testing.T) {
	// The model name suggests proportional pricing; the behavior is a flat
	// fee gated by the bracket, returned verbatim.
	rate := model.ShippingRate{
		Model:     model.PricingCartTotalBased,
		CartTotal: &model.CartTotalPricing{RateCents: 750},
	}
	for _, total := range []int64{0, 1234, 999999} {
		cost, ok := RateCost(rate, model.CartSnapshot{CartTotalCents: total})
		require.True(t, ok)
		assert.Equal(t, int64(750), cost)
	}
}

func TestRateCostItemCount(t *testing.T) {
	rate := model.ShippingRate{
		Model:     model.PricingItemCount,
		ItemCount: &model.ItemCountPricing{RateCentsPerItem: 150},
	}
	cost, ok := RateCost(rate, model.CartSnapshot{ItemCount: 4})
	require.True(t, ok)
	assert.Equal(t, int64(600), cost)
}

func TestRateCostUnknownModelUndefined(t *testing.T) {
	_, ok := RateCost(model.ShippingRate{Model: "percent_of_total"}, model.CartSnapshot{})
	assert.False(t, ok)
}

func TestFreeShippingThresholdOverridesEveryModel(t *testing.T) {
	cart := model.CartSnapshot{CartTotalCents: 10000, TotalWeightGrams: 9000, ItemCount: 12}
	rates := []model.ShippingRate{
		{Model: model.PricingFlat, Flat: &model.FlatPricing{RateCents: 500}, FreeShippingThresholdCents: i64(10000)},
		{Model: model.PricingWeightBased, Weight: &model.WeightPricing{RateCentsPerKg: 100}, FreeShippingThresholdCents: i64(10000)},
		{Model: model.PricingCartTotalBased, CartTotal: &model.CartTotalPricing{RateCents: 900}, FreeShippingThresholdCents: i64(10000)},
		{Model: model.PricingItemCount, ItemCount: &model.ItemCountPricing{RateCentsPerItem: 50}, FreeShippingThresholdCents: i64(10000)},
	}
	for _, rate := range rates {
		cost, ok := RateCost(rate, cart)
		require.True(t, ok, "model %s", rate.Model)
		assert.Equal(t, int64(0), cost, "model %s", rate.Model)
	}

	// Below the threshold the model formula applies.
	below := model.CartSnapshot{CartTotalCents: 9999}
	cost, ok := RateCost(rates[0], below)
	require.True(t, ok)
	assert.Equal(t, int64(500), cost)
}
