// Package loader reads building and upgrade definitions from JSON files and
// provides the built-in reference tables.
package loader

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

type buildingJSON struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	BasePrice   float64 `json:"base_price"`
	BaseCPS     float64 `json:"base_cps"`
	PriceGrowth float64 `json:"price_growth"` // omitted means 1.15
}

type unlockJSON struct {
	Building      string  `json:"building,omitempty"`
	BuildingCount int     `json:"building_count,omitempty"`
	Clicks        int64   `json:"clicks,omitempty"`
	EarnedTotal   float64 `json:"earned_total,omitempty"`
}

type upgradeJSON struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Price     float64    `json:"price"`
	Effect    string     `json:"effect"`
	Magnitude float64    `json:"magnitude"`
	Target    string     `json:"target,omitempty"`
	Unlock    unlockJSON `json:"unlock"`
}

type definitionsJSON struct {
	Buildings []buildingJSON `json:"buildings"`
	Upgrades  []upgradeJSON  `json:"upgrades"`
}

// LoadDefinitions reads a definitions file and returns a validated table.
func LoadDefinitions(path string) (*models.Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions: %w", err)
	}
	return ParseDefinitions(data)
}

// ParseDefinitions decodes a JSON definitions document.
func ParseDefinitions(data []byte) (*models.Definitions, error) {
	var doc definitionsJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse definitions: %w", err)
	}
	if len(doc.Buildings) == 0 {
		return nil, fmt.Errorf("definitions contain no buildings")
	}

	buildings := make([]models.Building, 0, len(doc.Buildings))
	for _, b := range doc.Buildings {
		growth := b.PriceGrowth
		if growth == 0 {
			growth = formulas.PriceGrowthFactor
		}
		buildings = append(buildings, models.Building{
			ID:          models.BuildingID(b.ID),
			Name:        b.Name,
			BasePrice:   b.BasePrice,
			BaseCPS:     b.BaseCPS,
			PriceGrowth: growth,
		})
	}

	upgrades := make([]models.Upgrade, 0, len(doc.Upgrades))
	for _, u := range doc.Upgrades {
		kind, err := models.ParseEffectKind(u.Effect)
		if err != nil {
			return nil, fmt.Errorf("upgrade %s: %w", u.ID, err)
		}
		upgrades = append(upgrades, models.Upgrade{
			ID:        u.ID,
			Name:      u.Name,
			Price:     u.Price,
			Kind:      kind,
			Magnitude: u.Magnitude,
			Target:    models.BuildingID(u.Target),
			Unlock: models.UnlockRule{
				Building:      models.BuildingID(u.Unlock.Building),
				BuildingCount: u.Unlock.BuildingCount,
				Clicks:        u.Unlock.Clicks,
				EarnedTotal:   u.Unlock.EarnedTotal,
			},
		})
	}

	return models.NewDefinitions(buildings, upgrades)
}
