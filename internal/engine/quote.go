package engine

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"shipquote/internal/model"
	"shipquote/internal/store"
)

var (
	// ErrMethodNotFound is returned by QuoteForMethod for an unknown method id.
	ErrMethodNotFound = errors.New("shipping method not found")
	// ErrMethodNotApplicable is returned when a previously chosen method no
	// longer admits the cart.
	ErrMethodNotApplicable = errors.New("shipping method not applicable to cart")
)

// Engine resolves shipping quotes for a store's configured zones. It holds no
// mutable state; concurrent requests need no coordination.
type Engine struct {
	store store.ZoneStore
	log   *zap.Logger
}

func New(s store.ZoneStore, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{store: s, log: log}
}

// candidate pairs a quote with the sort keys that do not belong in the
// public Quote shape.
type candidate struct {
	quote        model.Quote
	zonePriority int
	displayOrder int
}

// Quote returns every priced shipping option for the destination and cart,
// aggregated across ALL matching zones. Zone priority orders results, it
// never excludes a matching zone. The list is sorted by ascending cost, then
// zone priority descending, then method display order; an empty list is a
// valid result meaning no shipping is available.
func (e *Engine) Quote(ctx context.Context, storeID string, dest model.Destination, cart model.CartSnapshot) ([]model.Quote, error) {
	zones, err := e.store.LoadZones(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}
	var cands []candidate
	for _, zone := range zones {
		if !ZoneMatches(zone, dest) {
			continue
		}
		methods := orderedActiveMethods(zone)
		for _, method := range methods {
			resolved, ok := ResolveMethod(method, cart)
			if !ok {
				continue
			}
			cands = append(cands, candidate{
				quote:        buildQuote(zone, method, resolved),
				zonePriority: zone.Priority,
				displayOrder: method.DisplayOrder,
			})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.quote.CostCents != b.quote.CostCents {
			return a.quote.CostCents < b.quote.CostCents
		}
		if a.zonePriority != b.zonePriority {
			return a.zonePriority > b.zonePriority
		}
		return a.displayOrder < b.displayOrder
	})
	quotes := make([]model.Quote, 0, len(cands))
	for _, c := range cands {
		quotes = append(quotes, c.quote)
	}
	e.log.Debug("quote resolved",
		zap.String("storeId", storeID),
		zap.String("country", dest.Country),
		zap.Int("options", len(quotes)))
	return quotes, nil
}

// IsAvailable reports whether at least one shipping option exists.
func (e *Engine) IsAvailable(ctx context.Context, storeID string, dest model.Destination, cart model.CartSnapshot) (bool, error) {
	quotes, err := e.Quote(ctx, storeID, dest, cart)
	if err != nil {
		return false, err
	}
	return len(quotes) > 0, nil
}

// QuoteForMethod re-validates a previously chosen method against the current
// cart, typically at checkout time after the cart changed. The method's zone
// is presumed already confirmed, so no address re-check happens here.
func (e *Engine) QuoteForMethod(ctx context.Context, storeID, methodID string, cart model.CartSnapshot) (model.Quote, error) {
	zones, err := e.store.LoadZones(ctx, storeID)
	if err != nil {
		return model.Quote{}, fmt.Errorf("load zones: %w", err)
	}
	for _, zone := range zones {
		for _, method := range zone.Methods {
			if method.ID != methodID {
				continue
			}
			resolved, ok := ResolveMethod(method, cart)
			if !ok {
				return model.Quote{}, ErrMethodNotApplicable
			}
			return buildQuote(zone, method, resolved), nil
		}
	}
	return model.Quote{}, ErrMethodNotFound
}

func buildQuote(zone model.ShippingZone, method model.ShippingMethod, resolved ResolvedRate) model.Quote {
	return model.Quote{
		MethodID:         method.ID,
		MethodName:       method.Name,
		ZoneID:           zone.ID,
		ZoneName:         zone.Name,
		Carrier:          method.Carrier,
		ServiceCode:      method.ServiceCode,
		RateID:           resolved.Rate.ID,
		CostCents:        resolved.Cost,
		EstimatedDaysMin: method.EstimatedDaysMin,
		EstimatedDaysMax: method.EstimatedDaysMax,
		DeliveryEstimate: formatEstimate(method.EstimatedDaysMin, method.EstimatedDaysMax),
	}
}

// orderedActiveMethods returns the zone's active methods sorted by display
// order, then name.
func orderedActiveMethods(zone model.ShippingZone) []model.ShippingMethod {
	methods := make([]model.ShippingMethod, 0, len(zone.Methods))
	for _, m := range zone.Methods {
		if m.Active {
			methods = append(methods, m)
		}
	}
	sortMethods(methods)
	return methods
}

func sortMethods(methods []model.ShippingMethod) {
	sort.SliceStable(methods, func(i, j int) bool {
		if methods[i].DisplayOrder != methods[j].DisplayOrder {
			return methods[i].DisplayOrder < methods[j].DisplayOrder
		}
		return methods[i].Name < methods[j].Name
	})
}

func formatEstimate(minDays, maxDays int) string {
	switch {
	case minDays > 0 && maxDays > 0 && minDays != maxDays:
		return fmt.Sprintf("%d-%d business days", minDays, maxDays)
	case minDays > 0 && maxDays == minDays:
		return fmt.Sprintf("%d business days", minDays)
	case maxDays > 0:
		return fmt.Sprintf("up to %d business days", maxDays)
	case minDays > 0:
		return fmt.Sprintf("from %d business days", minDays)
	default:
		return ""
	}
}
