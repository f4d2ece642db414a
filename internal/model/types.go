package model

// Core domain types for shipping zone configuration and quote results.

// PricingModel selects how a ShippingRate computes its cost. Exactly one
// model governs a rate; the matching payload struct carries its parameters.
type PricingModel string

const (
	PricingFlat           PricingModel = "flat"
	PricingWeightBased    PricingModel = "weight_based"
	PricingCartTotalBased PricingModel = "cart_total_based"
	PricingItemCount      PricingModel = "item_count"
)

// ShippingZone is a named geographic filter owned by a store. Empty
// Countries/States/Postcodes lists are wildcards for that dimension.
type ShippingZone struct {
	ID          string           `json:"id" yaml:"id"`
	StoreID     string           `json:"storeId" yaml:"storeId"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Countries   []string         `json:"countries,omitempty" yaml:"countries,omitempty"`
	States      []string         `json:"states,omitempty" yaml:"states,omitempty"`
	Postcodes   []string         `json:"postcodes,omitempty" yaml:"postcodes,omitempty"`
	Active      bool             `json:"active" yaml:"active"`
	Priority    int              `json:"priority" yaml:"priority"`
	Methods     []ShippingMethod `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// ShippingMethod is a named shipping service offered within exactly one zone.
type ShippingMethod struct {
	ID               string         `json:"id" yaml:"id"`
	ZoneID           string         `json:"zoneId" yaml:"zoneId"`
	Name             string         `json:"name" yaml:"name"`
	Description      string         `json:"description,omitempty" yaml:"description,omitempty"`
	Carrier          string         `json:"carrier,omitempty" yaml:"carrier,omitempty"`
	ServiceCode      string         `json:"serviceCode,omitempty" yaml:"serviceCode,omitempty"`
	EstimatedDaysMin int            `json:"estimatedDaysMin,omitempty" yaml:"estimatedDaysMin,omitempty"`
	EstimatedDaysMax int            `json:"estimatedDaysMax,omitempty" yaml:"estimatedDaysMax,omitempty"`
	Active           bool           `json:"active" yaml:"active"`
	DisplayOrder     int            `json:"displayOrder" yaml:"displayOrder"`
	Rates            []ShippingRate `json:"rates,omitempty" yaml:"rates,omitempty"`
}

// ShippingRate is one pricing rule under a method. Model names the governing
// pricing model and exactly one of Flat/Weight/CartTotal/ItemCount carries its
// parameters; the other payloads stay nil rather than holding stale fields.
type ShippingRate struct {
	ID                         string            `json:"id" yaml:"id"`
	MethodID                   string            `json:"methodId" yaml:"methodId"`
	Name                       string            `json:"name,omitempty" yaml:"name,omitempty"`
	Model                      PricingModel      `json:"pricingModel" yaml:"pricingModel"`
	Flat                       *FlatPricing      `json:"flat,omitempty" yaml:"flat,omitempty"`
	Weight                     *WeightPricing    `json:"weight,omitempty" yaml:"weight,omitempty"`
	CartTotal                  *CartTotalPricing `json:"cartTotal,omitempty" yaml:"cartTotal,omitempty"`
	ItemCount                  *ItemCountPricing `json:"itemCount,omitempty" yaml:"itemCount,omitempty"`
	FreeShippingThresholdCents *int64            `json:"freeShippingThresholdCents,omitempty" yaml:"freeShippingThresholdCents,omitempty"`
	Active                     bool              `json:"active" yaml:"active"`
}

// FlatPricing charges a fixed amount with no bounds.
type FlatPricing struct {
	RateCents int64 `json:"rateCents" yaml:"rateCents"`
}

// WeightPricing charges per kilogram within an optional weight bracket.
// Cost is BaseRateCents + floor(weightGrams*RateCentsPerKg/1000); the
// truncating division matches the historical rounding and must be preserved.
type WeightPricing struct {
	MinWeightGrams *int64 `json:"minWeightGrams,omitempty" yaml:"minWeightGrams,omitempty"`
	MaxWeightGrams *int64 `json:"maxWeightGrams,omitempty" yaml:"maxWeightGrams,omitempty"`
	RateCentsPerKg int64  `json:"rateCentsPerKg" yaml:"rateCentsPerKg"`
	BaseRateCents  *int64 `json:"baseRateCents,omitempty" yaml:"baseRateCents,omitempty"`
}

// CartTotalPricing charges a flat fee gated by a cart-total bracket. Despite
// the model name this is not proportional pricing: RateCents is returned
// verbatim when the cart total falls inside the bracket.
type CartTotalPricing struct {
	MinCartTotalCents *int64 `json:"minCartTotalCents,omitempty" yaml:"minCartTotalCents,omitempty"`
	MaxCartTotalCents *int64 `json:"maxCartTotalCents,omitempty" yaml:"maxCartTotalCents,omitempty"`
	RateCents         int64  `json:"rateCents" yaml:"rateCents"`
}

// ItemCountPricing charges per item within an optional item-count bracket.
type ItemCountPricing struct {
	MinItems         *int  `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems         *int  `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`
	RateCentsPerItem int64 `json:"rateCentsPerItem" yaml:"rateCentsPerItem"`
}

// Destination is the delivery address slice the engine needs.
type Destination struct {
	Country  string `json:"country"`
	State    string `json:"state,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// CartItem is one line entry as submitted by the caller.
type CartItem struct {
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity"`
	UnitPriceCents  int64  `json:"unitPriceCents"`
	UnitWeightGrams int64  `json:"unitWeightGrams"`
}

// CartSnapshot holds the three derived scalars the engine evaluates against.
type CartSnapshot struct {
	TotalWeightGrams int64 `json:"totalWeightGrams"`
	CartTotalCents   int64 `json:"cartTotalCents"`
	ItemCount        int   `json:"itemCount"`
}

// Reduce converts cart items to a CartSnapshot. ItemCount is the summed
// quantity across lines, not the number of distinct lines; callers across the
// API rely on this convention.
func Reduce(items []CartItem) CartSnapshot {
	var snap CartSnapshot
	for _, it := range items {
		q := int64(it.Quantity)
		snap.CartTotalCents += q * it.UnitPriceCents
		snap.TotalWeightGrams += q * it.UnitWeightGrams
		snap.ItemCount += it.Quantity
	}
	return snap
}

// Quote is one priced, available shipping option.
type Quote struct {
	MethodID         string `json:"methodId"`
	MethodName       string `json:"methodName"`
	ZoneID           string `json:"zoneId"`
	ZoneName         string `json:"zoneName"`
	Carrier          string `json:"carrier,omitempty"`
	ServiceCode      string `json:"serviceCode,omitempty"`
	RateID           string `json:"rateId"`
	CostCents        int64  `json:"costCents"`
	EstimatedDaysMin int    `json:"estimatedDaysMin,omitempty"`
	EstimatedDaysMax int    `json:"estimatedDaysMax,omitempty"`
	DeliveryEstimate string `json:"deliveryEstimate,omitempty"`
}

// DiagnosticReport explains, zone by zone, why the engine did or did not
// produce options for a destination and cart.
type DiagnosticReport struct {
	Message                   string           `json:"message"`
	TotalZones                int              `json:"totalZones"`
	MatchedZones              int              `json:"matchedZones"`
	ZonesWithAvailableMethods int              `json:"zonesWithAvailableMethods"`
	AvailableOptions          int              `json:"availableOptions"`
	Cart                      CartSnapshot     `json:"cart"`
	Destination               Destination      `json:"destination"`
	Zones                     []ZoneDiagnostic `json:"zones"`
}

type ZoneDiagnostic struct {
	ZoneID     string             `json:"zoneId"`
	ZoneName   string             `json:"zoneName"`
	Matched    bool               `json:"matched"`
	Reason     string             `json:"reason"`
	Suggestion string             `json:"suggestion,omitempty"`
	Methods    []MethodDiagnostic `json:"methods,omitempty"`
}

type MethodDiagnostic struct {
	MethodID   string           `json:"methodId"`
	MethodName string           `json:"methodName"`
	Available  bool             `json:"available"`
	Reason     string           `json:"reason"`
	Suggestion string           `json:"suggestion,omitempty"`
	CostCents  *int64           `json:"costCents,omitempty"`
	Rates      []RateDiagnostic `json:"rates,omitempty"`
}

type RateDiagnostic struct {
	RateID           string       `json:"rateId"`
	RateName         string       `json:"rateName,omitempty"`
	Model            PricingModel `json:"pricingModel"`
	Applicable       bool         `json:"applicable"`
	Reason           string       `json:"reason"`
	FreeShippingNote string       `json:"freeShippingNote,omitempty"`
	CostCents        *int64       `json:"costCents,omitempty"`
}
