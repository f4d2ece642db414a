package store

import (
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"shipquote/internal/model"
)

// zonesFile is the YAML fixture layout: a flat list of stores, each with its
// zones nested down to rates.
type zonesFile struct {
	Stores []struct {
		ID    string               `yaml:"id"`
		Zones []model.ShippingZone `yaml:"zones"`
	} `yaml:"stores"`
}

// LoadFile reads zone configuration from a YAML file into a seeded Memory
// store. Used for dev and demo setups where no database is available.
func LoadFile(path string) (*Memory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}
	var f zonesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse zones file: %w", err)
	}
	m := NewMemory()
	for _, s := range f.Stores {
		if s.ID == "" {
			return nil, fmt.Errorf("zones file: store with empty id")
		}
		m.Seed(s.ID, s.Zones)
	}
	return m, nil
}
