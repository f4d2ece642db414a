package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"shipquote/internal/model"
)

// Postgres loads zone configuration from Postgres. Rates are stored as one
// flat row per rate; scanning rebuilds the tagged pricing union so fields
// irrelevant to a rate's model never leave this package.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(dsn string) (*Postgres, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &Postgres{db: db}, nil
}

// MigrateDir executes the .sql files in dir in lexical order (dev helper).
func (p *Postgres) MigrateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	for _, name := range names {
		b, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if _, err := p.db.Exec(string(b)); err != nil {
			return fmt.Errorf("migrate %s: %w", name, err)
		}
	}
	return nil
}

// LoadZones fetches a store's zones, methods, and rates in three batched
// queries; there is no per-zone follow-up.
func (p *Postgres) LoadZones(ctx context.Context, storeID string) ([]model.ShippingZone, error) {
	zones, zoneIDs, err := p.loadZoneRows(ctx, storeID)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return []model.ShippingZone{}, nil
	}
	methodsByZone, methodIDs, err := p.loadMethodRows(ctx, zoneIDs)
	if err != nil {
		return nil, err
	}
	ratesByMethod, err := p.loadRateRows(ctx, methodIDs)
	if err != nil {
		return nil, err
	}
	for i := range zones {
		methods := methodsByZone[zones[i].ID]
		for j := range methods {
			methods[j].Rates = ratesByMethod[methods[j].ID]
		}
		zones[i].Methods = methods
	}
	return zones, nil
}

func (p *Postgres) loadZoneRows(ctx context.Context, storeID string) ([]model.ShippingZone, []string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id::text, name, COALESCE(description,''), countries, states, postcodes, active, priority
		FROM shipping_zones WHERE store_id=$1 ORDER BY priority DESC, name`, storeID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	var zones []model.ShippingZone
	var ids []string
	for rows.Next() {
		var z model.ShippingZone
		var countries, states, postcodes []byte
		if err := rows.Scan(&z.ID, &z.Name, &z.Description, &countries, &states, &postcodes, &z.Active, &z.Priority); err != nil {
			return nil, nil, err
		}
		z.StoreID = storeID
		z.Countries = fromJSONList(countries)
		z.States = fromJSONList(states)
		z.Postcodes = fromJSONList(postcodes)
		zones = append(zones, z)
		ids = append(ids, z.ID)
	}
	return zones, ids, rows.Err()
}

func (p *Postgres) loadMethodRows(ctx context.Context, zoneIDs []string) (map[string][]model.ShippingMethod, []string, error) {
	q := fmt.Sprintf(`
		SELECT id::text, zone_id::text, name, COALESCE(description,''), COALESCE(carrier,''),
		       COALESCE(service_code,''), COALESCE(est_days_min,0), COALESCE(est_days_max,0),
		       active, display_order
		FROM shipping_methods WHERE zone_id::text IN (%s) ORDER BY display_order, name`, placeholders(len(zoneIDs)))
	rows, err := p.db.QueryContext(ctx, q, anySlice(zoneIDs)...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	byZone := map[string][]model.ShippingMethod{}
	var ids []string
	for rows.Next() {
		var m model.ShippingMethod
		if err := rows.Scan(&m.ID, &m.ZoneID, &m.Name, &m.Description, &m.Carrier,
			&m.ServiceCode, &m.EstimatedDaysMin, &m.EstimatedDaysMax, &m.Active, &m.DisplayOrder); err != nil {
			return nil, nil, err
		}
		byZone[m.ZoneID] = append(byZone[m.ZoneID], m)
		ids = append(ids, m.ID)
	}
	return byZone, ids, rows.Err()
}

func (p *Postgres) loadRateRows(ctx context.Context, methodIDs []string) (map[string][]model.ShippingRate, error) {
	if len(methodIDs) == 0 {
		return map[string][]model.ShippingRate{}, nil
	}
	q := fmt.Sprintf(`
		SELECT id::text, method_id::text, COALESCE(name,''), pricing_model,
		       flat_rate_cents, min_weight_grams, max_weight_grams, weight_rate_cents, base_weight_rate_cents,
		       min_cart_total_cents, max_cart_total_cents, cart_total_rate_cents,
		       min_items, max_items, item_rate_cents,
		       free_shipping_threshold_cents, active
		FROM shipping_rates WHERE method_id::text IN (%s) ORDER BY id`, placeholders(len(methodIDs)))
	rows, err := p.db.QueryContext(ctx, q, anySlice(methodIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	byMethod := map[string][]model.ShippingRate{}
	for rows.Next() {
		var r model.ShippingRate
		var pm string
		var flatRate, minW, maxW, wRate, baseW, minCT, maxCT, ctRate, itemRate, freeShip sql.NullInt64
		var minItems, maxItems sql.NullInt64
		if err := rows.Scan(&r.ID, &r.MethodID, &r.Name, &pm,
			&flatRate, &minW, &maxW, &wRate, &baseW,
			&minCT, &maxCT, &ctRate,
			&minItems, &maxItems, &itemRate,
			&freeShip, &r.Active); err != nil {
			return nil, err
		}
		r.Model = model.PricingModel(pm)
		switch r.Model {
		case model.PricingFlat:
			r.Flat = &model.FlatPricing{RateCents: flatRate.Int64}
		case model.PricingWeightBased:
			r.Weight = &model.WeightPricing{
				MinWeightGrams: nullInt(minW),
				MaxWeightGrams: nullInt(maxW),
				RateCentsPerKg: wRate.Int64,
				BaseRateCents:  nullInt(baseW),
			}
		case model.PricingCartTotalBased:
			r.CartTotal = &model.CartTotalPricing{
				MinCartTotalCents: nullInt(minCT),
				MaxCartTotalCents: nullInt(maxCT),
				RateCents:         ctRate.Int64,
			}
		case model.PricingItemCount:
			r.ItemCount = &model.ItemCountPricing{
				MinItems:         nullIntAsInt(minItems),
				MaxItems:         nullIntAsInt(maxItems),
				RateCentsPerItem: itemRate.Int64,
			}
		}
		// Unknown pricing_model values keep all payloads nil; the engine
		// treats such rates as never applicable.
		r.FreeShippingThresholdCents = nullInt(freeShip)
		byMethod[r.MethodID] = append(byMethod[r.MethodID], r)
	}
	return byMethod, rows.Err()
}

func placeholders(n int) string {
	parts := make([]string, n)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", i+1)
	}
	return strings.Join(parts, ",")
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func nullInt(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullIntAsInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func fromJSONList(b []byte) []string {
	if len(b) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(b, &out); err != nil {
		return nil
	}
	return out
}
