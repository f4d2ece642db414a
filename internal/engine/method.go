package engine

import "shipquote/internal/model"

// ResolvedRate is the outcome of resolving a method against a cart: the rate
// that won and the cost it produced.
type ResolvedRate struct {
	Rate model.ShippingRate
	Cost int64
}

// ResolveMethod evaluates every active rate owned by the method and selects
// the cheapest applicable one. The second return is false when the method is
// inactive, has no rates, or no rate admits the cart. Cheapest-applicable is
// the adopted policy for multiple simultaneously applicable rates; on equal
// cost the rate defined first wins.
func ResolveMethod(method model.ShippingMethod, cart model.CartSnapshot) (ResolvedRate, bool) {
	if !method.Active {
		return ResolvedRate{}, false
	}
	var best ResolvedRate
	found := false
	for _, rate := range method.Rates {
		if !rate.Active || !RateApplies(rate, cart) {
			continue
		}
		cost, ok := RateCost(rate, cart)
		if !ok {
			continue
		}
		if !found || cost < best.Cost {
			best = ResolvedRate{Rate: rate, Cost: cost}
			found = true
		}
	}
	return best, found
}
