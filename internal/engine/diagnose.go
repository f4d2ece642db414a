package engine

import (
	"context"
	"fmt"
	"strings"

	"shipquote/internal/model"
)

// Explain re-runs zone, method, and rate evaluation for the destination and
// cart, narrating every decision. It is the merchant-facing debugging surface
// for "why is there no shipping option"; the checkout path never calls it.
// The report is a pure function of configuration and input, so calling it
// twice yields identical output.
func (e *Engine) Explain(ctx context.Context, storeID string, dest model.Destination, cart model.CartSnapshot) (model.DiagnosticReport, error) {
	zones, err := e.store.LoadZones(ctx, storeID)
	if err != nil {
		return model.DiagnosticReport{}, fmt.Errorf("load zones: %w", err)
	}

	report := model.DiagnosticReport{
		TotalZones:  len(zones),
		Cart:        cart,
		Destination: dest,
		Zones:       make([]model.ZoneDiagnostic, 0, len(zones)),
	}
	for _, zone := range zones {
		zd := explainZone(zone, dest)
		if zd.Matched {
			report.MatchedZones++
			configured := false
			for _, method := range orderedAllMethods(zone) {
				md := explainMethod(method, cart)
				if md.Available {
					report.AvailableOptions++
				}
				if methodHasActiveRates(method) {
					configured = true
				}
				zd.Methods = append(zd.Methods, md)
			}
			if configured {
				report.ZonesWithAvailableMethods++
			}
		}
		report.Zones = append(report.Zones, zd)
	}
	report.Message = summarize(report)
	return report, nil
}

// summarize picks the single top-level message by priority: no zones
// configured, no zones matched, matched but nothing configured, cart beyond
// all configured limits, then the success summary.
func summarize(r model.DiagnosticReport) string {
	switch {
	case r.TotalZones == 0:
		return "no shipping zones are configured for this store"
	case r.MatchedZones == 0:
		return "no zones match the delivery address"
	case r.ZonesWithAvailableMethods == 0:
		return "zones match the delivery address but have no active shipping methods with rates configured"
	case r.AvailableOptions == 0:
		return "the cart exceeds the configured limits of every applicable shipping rate"
	default:
		return fmt.Sprintf("%d shipping option(s) available for %s (cart total %d cents, weight %dg, %d items)",
			r.AvailableOptions, NormalizeCountry(r.Destination.Country),
			r.Cart.CartTotalCents, r.Cart.TotalWeightGrams, r.Cart.ItemCount)
	}
}

func explainZone(zone model.ShippingZone, dest model.Destination) model.ZoneDiagnostic {
	zd := model.ZoneDiagnostic{ZoneID: zone.ID, ZoneName: zone.Name}
	if !zone.Active {
		zd.Reason = "zone is not active"
		zd.Suggestion = "activate the zone to include it in rate resolution"
		return zd
	}
	country := NormalizeCountry(dest.Country)
	if len(zone.Countries) > 0 && !countryInZone(zone.Countries, dest.Country) {
		zd.Reason = fmt.Sprintf("country %q is not in the zone's countries: [%s]", country, strings.Join(zone.Countries, ", "))
		zd.Suggestion = fmt.Sprintf("add %q to the zone's countries to serve this destination", country)
		return zd
	}
	if len(zone.States) > 0 && dest.State != "" && !stateInZone(zone.States, dest.State) {
		zd.Reason = fmt.Sprintf("state %q is not in the zone's states: [%s]", dest.State, strings.Join(zone.States, ", "))
		zd.Suggestion = fmt.Sprintf("add %q to the zone's states to serve this destination", dest.State)
		return zd
	}
	if len(zone.Postcodes) > 0 && dest.Postcode != "" && !postcodeInZone(zone.Postcodes, dest.Postcode) {
		zd.Reason = fmt.Sprintf("postcode %q matches none of the zone's patterns: [%s]", dest.Postcode, strings.Join(zone.Postcodes, ", "))
		zd.Suggestion = fmt.Sprintf("add an exact, range, or wildcard pattern covering %q", dest.Postcode)
		return zd
	}
	zd.Matched = true
	zd.Reason = "matches the delivery address"
	return zd
}

func explainMethod(method model.ShippingMethod, cart model.CartSnapshot) model.MethodDiagnostic {
	md := model.MethodDiagnostic{MethodID: method.ID, MethodName: method.Name}
	if !method.Active {
		md.Reason = "method is not active"
		md.Suggestion = "activate the method to offer it in this zone"
		return md
	}
	if len(method.Rates) == 0 {
		md.Reason = "no shipping rates configured"
		md.Suggestion = "add at least one rate so the method can price shipments"
		return md
	}
	for _, rate := range method.Rates {
		md.Rates = append(md.Rates, explainRate(rate, cart))
	}
	if resolved, ok := ResolveMethod(method, cart); ok {
		md.Available = true
		cost := resolved.Cost
		md.CostCents = &cost
		md.Reason = fmt.Sprintf("available at %d cents via the cheapest applicable rate", cost)
		return md
	}
	md.Reason = "no rate admits the current cart"
	md.Suggestion = "adjust the rate bounds or add a rate covering this cart"
	return md
}

func explainRate(rate model.ShippingRate, cart model.CartSnapshot) model.RateDiagnostic {
	rd := model.RateDiagnostic{RateID: rate.ID, RateName: rate.Name, Model: rate.Model}
	if !rate.Active {
		rd.Reason = "rate is not active"
		return rd
	}
	rd.FreeShippingNote = freeShippingNote(rate, cart)
	switch rate.Model {
	case model.PricingFlat:
		if rate.Flat == nil {
			rd.Reason = "no flat pricing parameters configured"
			return rd
		}
		rd.Reason = "flat rate always applies"
	case model.PricingWeightBased:
		if rate.Weight == nil {
			rd.Reason = "no weight pricing parameters configured"
			return rd
		}
		w := rate.Weight
		if w.MinWeightGrams != nil && cart.TotalWeightGrams < *w.MinWeightGrams {
			rd.Reason = fmt.Sprintf("weight %dg is below minimum %dg", cart.TotalWeightGrams, *w.MinWeightGrams)
			return rd
		}
		if w.MaxWeightGrams != nil && cart.TotalWeightGrams > *w.MaxWeightGrams {
			rd.Reason = fmt.Sprintf("weight %dg exceeds maximum %dg", cart.TotalWeightGrams, *w.MaxWeightGrams)
			return rd
		}
		rd.Reason = fmt.Sprintf("weight %dg is within the configured range (%s)", cart.TotalWeightGrams, boundsText(w.MinWeightGrams, w.MaxWeightGrams, "g"))
	case model.PricingCartTotalBased:
		if rate.CartTotal == nil {
			rd.Reason = "no cart-total pricing parameters configured"
			return rd
		}
		ct := rate.CartTotal
		if ct.MinCartTotalCents != nil && cart.CartTotalCents < *ct.MinCartTotalCents {
			rd.Reason = fmt.Sprintf("cart total %d cents is below minimum %d cents", cart.CartTotalCents, *ct.MinCartTotalCents)
			return rd
		}
		if ct.MaxCartTotalCents != nil && cart.CartTotalCents > *ct.MaxCartTotalCents {
			rd.Reason = fmt.Sprintf("cart total %d cents exceeds maximum %d cents", cart.CartTotalCents, *ct.MaxCartTotalCents)
			return rd
		}
		rd.Reason = fmt.Sprintf("cart total %d cents is within the configured range (%s)", cart.CartTotalCents, boundsText(ct.MinCartTotalCents, ct.MaxCartTotalCents, " cents"))
	case model.PricingItemCount:
		if rate.ItemCount == nil {
			rd.Reason = "no item-count pricing parameters configured"
			return rd
		}
		ic := rate.ItemCount
		if ic.MinItems != nil && cart.ItemCount < *ic.MinItems {
			rd.Reason = fmt.Sprintf("item count %d is below minimum %d", cart.ItemCount, *ic.MinItems)
			return rd
		}
		if ic.MaxItems != nil && cart.ItemCount > *ic.MaxItems {
			rd.Reason = fmt.Sprintf("item count %d exceeds maximum %d", cart.ItemCount, *ic.MaxItems)
			return rd
		}
		rd.Reason = fmt.Sprintf("item count %d is within the configured range (%s)", cart.ItemCount, intBoundsText(ic.MinItems, ic.MaxItems))
	default:
		rd.Reason = fmt.Sprintf("unrecognized pricing model %q", rate.Model)
		return rd
	}
	rd.Applicable = true
	if cost, ok := RateCost(rate, cart); ok {
		rd.CostCents = &cost
	}
	return rd
}

func freeShippingNote(rate model.ShippingRate, cart model.CartSnapshot) string {
	if rate.FreeShippingThresholdCents == nil {
		return ""
	}
	threshold := *rate.FreeShippingThresholdCents
	if cart.CartTotalCents >= threshold {
		return fmt.Sprintf("free shipping applied: cart total %d cents meets the %d cent threshold", cart.CartTotalCents, threshold)
	}
	return fmt.Sprintf("spend %d cents more to reach the %d cent free shipping threshold", threshold-cart.CartTotalCents, threshold)
}

func boundsText(min, max *int64, unit string) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d%s to %d%s", *min, unit, *max, unit)
	case min != nil:
		return fmt.Sprintf("at least %d%s", *min, unit)
	case max != nil:
		return fmt.Sprintf("at most %d%s", *max, unit)
	default:
		return "unbounded"
	}
}

func intBoundsText(min, max *int) string {
	switch {
	case min != nil && max != nil:
		return fmt.Sprintf("%d to %d", *min, *max)
	case min != nil:
		return fmt.Sprintf("at least %d", *min)
	case max != nil:
		return fmt.Sprintf("at most %d", *max)
	default:
		return "unbounded"
	}
}

// orderedAllMethods sorts every method in the zone (active or not) by display
// order then name; diagnostics narrate inactive methods too.
func orderedAllMethods(zone model.ShippingZone) []model.ShippingMethod {
	methods := make([]model.ShippingMethod, len(zone.Methods))
	copy(methods, zone.Methods)
	sortMethods(methods)
	return methods
}

func methodHasActiveRates(method model.ShippingMethod) bool {
	if !method.Active {
		return false
	}
	for _, r := range method.Rates {
		if r.Active {
			return true
		}
	}
	return false
}
