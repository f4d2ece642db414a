// Package store provides the zone configuration port consumed by the quote
// engine, with in-memory, YAML file, Postgres, and Redis-cached
// implementations.
package store

import (
	"context"
	"errors"

	"shipquote/internal/model"
)

// ZoneStore is the read port the engine calls once per request. LoadZones
// returns a store's zones fully populated with their methods and rates in a
// single batched fetch; the engine never follows up with per-zone reads.
type ZoneStore interface {
	LoadZones(ctx context.Context, storeID string) ([]model.ShippingZone, error)
}

var ErrNotFound = errors.New("not found")
