package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"shipquote/internal/model"
)

// Memory is a simple in-memory zone store used when no DATABASE_URL is set,
// and by tests.
type Memory struct {
	mu    sync.Mutex
	zones map[string][]model.ShippingZone // storeID -> zones
}

func NewMemory() *Memory {
	return &Memory{zones: map[string][]model.ShippingZone{}}
}

// Seed replaces the zones held for a store. Missing zone, method, and rate
// ids are stamped, and ownership ids are filled in from containment so
// fixtures only need the fields they care about.
func (m *Memory) Seed(storeID string, zones []model.ShippingZone) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for zi := range zones {
		z := &zones[zi]
		if z.ID == "" {
			z.ID = uuid.New().String()
		}
		z.StoreID = storeID
		for mi := range z.Methods {
			mth := &z.Methods[mi]
			if mth.ID == "" {
				mth.ID = uuid.New().String()
			}
			mth.ZoneID = z.ID
			for ri := range mth.Rates {
				r := &mth.Rates[ri]
				if r.ID == "" {
					r.ID = uuid.New().String()
				}
				r.MethodID = mth.ID
			}
		}
	}
	m.zones[storeID] = zones
}

func (m *Memory) LoadZones(ctx context.Context, storeID string) ([]model.ShippingZone, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	zones := m.zones[storeID]
	// Copy so callers cannot mutate seeded configuration.
	out := make([]model.ShippingZone, len(zones))
	copy(out, zones)
	return out, nil
}
