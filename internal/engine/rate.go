package engine

import "shipquote/internal/model"

// RateApplies reports whether the rate's bounds admit the cart. Flat rates
// always apply; the bounded models reject carts outside their bracket. A rate
// with an unrecognized model, or whose payload for the declared model is
// missing, never applies -- merchant misconfiguration degrades to "no option"
// rather than an error.
func RateApplies(rate model.ShippingRate, cart model.CartSnapshot) bool {
	switch rate.Model {
	case model.PricingFlat:
		return rate.Flat != nil
	case model.PricingWeightBased:
		if rate.Weight == nil {
			return false
		}
		w := rate.Weight
		if w.MinWeightGrams != nil && cart.TotalWeightGrams < *w.MinWeightGrams {
			return false
		}
		if w.MaxWeightGrams != nil && cart.TotalWeightGrams > *w.MaxWeightGrams {
			return false
		}
		return true
	case model.PricingCartTotalBased:
		if rate.CartTotal == nil {
			return false
		}
		ct := rate.CartTotal
		if ct.MinCartTotalCents != nil && cart.CartTotalCents < *ct.MinCartTotalCents {
			return false
		}
		if ct.MaxCartTotalCents != nil && cart.CartTotalCents > *ct.MaxCartTotalCents {
			return false
		}
		return true
	case model.PricingItemCount:
		if rate.ItemCount == nil {
			return false
		}
		ic := rate.ItemCount
		if ic.MinItems != nil && cart.ItemCount < *ic.MinItems {
			return false
		}
		if ic.MaxItems != nil && cart.ItemCount > *ic.MaxItems {
			return false
		}
		return true
	default:
		return false
	}
}

// RateCost computes the rate's cost for the cart. The free-shipping threshold
// short-circuits every model to zero. The second return is false when the
// pricing model is unknown or its payload is missing, in which case the cost
// is undefined.
func RateCost(rate model.ShippingRate, cart model.CartSnapshot) (int64, bool) {
	if rate.FreeShippingThresholdCents != nil && cart.CartTotalCents >= *rate.FreeShippingThresholdCents {
		return 0, true
	}
	switch rate.Model {
	case model.PricingFlat:
		if rate.Flat == nil {
			return 0, false
		}
		return rate.Flat.RateCents, true
	case model.PricingWeightBased:
		if rate.Weight == nil {
			return 0, false
		}
		w := rate.Weight
		if w.RateCentsPerKg == 0 {
			// A base fee without a per-kg rate charges nothing.
			return 0, true
		}
		// Integer division is intentional: truncation preserves the
		// historical rounding of per-kilogram pricing.
		cost := cart.TotalWeightGrams * w.RateCentsPerKg / 1000
		if w.BaseRateCents != nil {
			cost += *w.BaseRateCents
		}
		return cost, true
	case model.PricingCartTotalBased:
		if rate.CartTotal == nil {
			return 0, false
		}
		// Flat fee gated by the cart-total bracket, not a percentage.
		return rate.CartTotal.RateCents, true
	case model.PricingItemCount:
		if rate.ItemCount == nil {
			return 0, false
		}
		return rate.ItemCount.RateCentsPerItem * int64(cart.ItemCount), true
	default:
		return 0, false
	}
}
