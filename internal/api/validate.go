package api

import (
	"fmt"
	"strings"

	"shipquote/internal/model"
)

// destinationPayload is the inbound address slice. Validation happens at
// this boundary so the engine can assume a present country and non-negative
// scalars.
type destinationPayload struct {
	Country  string `json:"country" validate:"required"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
}

type itemPayload struct {
	ProductID       string `json:"productId"`
	Quantity        int    `json:"quantity" validate:"gte=1"`
	UnitPriceCents  int64  `json:"unitPriceCents" validate:"gte=0"`
	UnitWeightGrams int64  `json:"unitWeightGrams" validate:"gte=0"`
}

type quoteRequest struct {
	Destination destinationPayload `json:"destination" validate:"required"`
	Items       []itemPayload      `json:"items" validate:"required,min=1,dive"`
}

// availabilityRequest allows an empty cart: with no items the check answers
// "could anything ship here at all" against a zero snapshot.
type availabilityRequest struct {
	Destination destinationPayload `json:"destination" validate:"required"`
	Items       []itemPayload      `json:"items" validate:"omitempty,dive"`
}

type methodQuoteRequest struct {
	Items []itemPayload `json:"items" validate:"required,min=1,dive"`
}

func (s *Server) validateRequest(req any) error {
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("invalid request: %s", compactValidationError(err))
	}
	return nil
}

func compactValidationError(err error) string {
	// validator's default error text leaks Go struct paths; keep only the
	// field/tag pairs.
	parts := strings.Split(err.Error(), "\n")
	for i, p := range parts {
		parts[i] = strings.TrimPrefix(p, "Key: ")
	}
	return strings.Join(parts, "; ")
}

func (d destinationPayload) toModel() model.Destination {
	return model.Destination{
		Country:  strings.TrimSpace(d.Country),
		State:    strings.TrimSpace(d.State),
		Postcode: strings.TrimSpace(d.Postcode),
	}
}

func toCartItems(items []itemPayload) []model.CartItem {
	out := make([]model.CartItem, 0, len(items))
	for _, it := range items {
		out = append(out, model.CartItem{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			UnitPriceCents:  it.UnitPriceCents,
			UnitWeightGrams: it.UnitWeightGrams,
		})
	}
	return out
}
