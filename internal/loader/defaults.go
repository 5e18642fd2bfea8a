package loader

import (
	"fmt"

	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

// referenceBuildings is the hand-tuned sixteen-building table. From index 1
// on, the generated curves reproduce these values; index 0 is tuned by hand.
var referenceBuildings = []models.Building{
	{ID: models.Cursor, Name: "Cursor", BasePrice: 15, BaseCPS: 0.1},
	{ID: models.Grandma, Name: "Grandma", BasePrice: 100, BaseCPS: 1},
	{ID: models.Farm, Name: "Farm", BasePrice: 1_100, BaseCPS: 8},
	{ID: models.Mine, Name: "Mine", BasePrice: 12_000, BaseCPS: 47},
	{ID: models.Factory, Name: "Factory", BasePrice: 130_000, BaseCPS: 260},
	{ID: models.Bank, Name: "Bank", BasePrice: 1.4e6, BaseCPS: 1_400},
	{ID: models.Temple, Name: "Temple", BasePrice: 2e7, BaseCPS: 7_800},
	{ID: models.WizardTower, Name: "Wizard tower", BasePrice: 3.3e8, BaseCPS: 44_000},
	{ID: models.Shipment, Name: "Shipment", BasePrice: 5.1e9, BaseCPS: 260_000},
	{ID: models.AlchemyLab, Name: "Alchemy lab", BasePrice: 7.5e10, BaseCPS: 1.6e6},
	{ID: models.Portal, Name: "Portal", BasePrice: 1e12, BaseCPS: 1e7},
	{ID: models.TimeMachine, Name: "Time machine", BasePrice: 1.4e13, BaseCPS: 6.5e7},
	{ID: models.AntimatterCondenser, Name: "Antimatter condenser", BasePrice: 1.7e14, BaseCPS: 4.3e8},
	{ID: models.Prism, Name: "Prism", BasePrice: 2.1e15, BaseCPS: 2.9e9},
	{ID: models.Chancemaker, Name: "Chancemaker", BasePrice: 2.6e16, BaseCPS: 2.1e10},
	{ID: models.FractalEngine, Name: "Fractal engine", BasePrice: 3.1e17, BaseCPS: 1.5e11},
}

// referenceUpgrades is the stock upgrade set: click tiers, grandma and farm
// boosters, and the kitchen production line.
var referenceUpgrades = []models.Upgrade{
	{
		ID: "reinforced_index_finger", Name: "Reinforced index finger",
		Price: 100, Kind: models.ClickMultiplier, Magnitude: 1.0,
		Unlock: models.UnlockRule{Clicks: 15},
	},
	{
		ID: "carpal_tunnel_prevention_cream", Name: "Carpal tunnel prevention cream",
		Price: 500, Kind: models.ClickMultiplier, Magnitude: 1.0,
		Unlock: models.UnlockRule{Clicks: 100},
	},
	{
		ID: "ambidextrous", Name: "Ambidextrous",
		Price: 10_000, Kind: models.ClickMultiplier, Magnitude: 1.0,
		Unlock: models.UnlockRule{Clicks: 1_000},
	},
	{
		ID: "forwards_from_grandma", Name: "Forwards from grandma",
		Price: 1_000, Kind: models.BuildingMultiplier, Magnitude: 1.0, Target: models.Grandma,
		Unlock: models.UnlockRule{Building: models.Grandma, BuildingCount: 1},
	},
	{
		ID: "steel_plated_rolling_pins", Name: "Steel-plated rolling pins",
		Price: 5_000, Kind: models.BuildingMultiplier, Magnitude: 1.0, Target: models.Grandma,
		Unlock: models.UnlockRule{Building: models.Grandma, BuildingCount: 5},
	},
	{
		ID: "lubricated_dentures", Name: "Lubricated dentures",
		Price: 50_000, Kind: models.BuildingMultiplier, Magnitude: 1.0, Target: models.Grandma,
		Unlock: models.UnlockRule{Building: models.Grandma, BuildingCount: 25},
	},
	{
		ID: "cheap_hoes", Name: "Cheap hoes",
		Price: 11_000, Kind: models.BuildingMultiplier, Magnitude: 1.0, Target: models.Farm,
		Unlock: models.UnlockRule{Building: models.Farm, BuildingCount: 1},
	},
	{
		ID: "specialized_chocolate_chips", Name: "Specialized chocolate chips",
		Price: 1e6, Kind: models.ProductionMultiplier, Magnitude: 0.01,
		Unlock: models.UnlockRule{EarnedTotal: 1e5},
	},
	{
		ID: "designer_cocoa_beans", Name: "Designer cocoa beans",
		Price: 2e6, Kind: models.ProductionMultiplier, Magnitude: 0.02,
		Unlock: models.UnlockRule{EarnedTotal: 4e5},
	},
	{
		ID: "underworld_ovens", Name: "Underworld ovens",
		Price: 1e7, Kind: models.ProductionMultiplier, Magnitude: 0.03,
		Unlock: models.UnlockRule{EarnedTotal: 3e6},
	},
	{
		ID: "exotic_nuts", Name: "Exotic nuts",
		Price: 1e8, Kind: models.ProductionMultiplier, Magnitude: 0.04,
		Unlock: models.UnlockRule{EarnedTotal: 3e7},
	},
	{
		ID: "arcane_sugar", Name: "Arcane sugar",
		Price: 1e9, Kind: models.ProductionMultiplier, Magnitude: 0.05,
		Unlock: models.UnlockRule{EarnedTotal: 3e8},
	},
}

// DefaultDefinitions returns the built-in reference table.
func DefaultDefinitions() *models.Definitions {
	buildings := make([]models.Building, len(referenceBuildings))
	copy(buildings, referenceBuildings)
	upgrades := make([]models.Upgrade, len(referenceUpgrades))
	copy(upgrades, referenceUpgrades)

	for i := range buildings {
		if buildings[i].PriceGrowth == 0 {
			buildings[i].PriceGrowth = formulas.PriceGrowthFactor
		}
	}

	defs, err := models.NewDefinitions(buildings, upgrades)
	if err != nil {
		// The built-in table is validated by tests; this is unreachable.
		panic(fmt.Sprintf("invalid built-in definitions: %v", err))
	}
	return defs
}

// GeneratedBuilding returns a building definition derived from the growth
// curves, for extending the table past the hand-tuned sixteen.
func GeneratedBuilding(n int) models.Building {
	return models.Building{
		ID:          models.BuildingID(fmt.Sprintf("generated_%d", n)),
		Name:        fmt.Sprintf("Generated building %d", n),
		BasePrice:   formulas.GeneratedBasePrice(n),
		BaseCPS:     formulas.GeneratedBaseCPS(n),
		PriceGrowth: formulas.PriceGrowthFactor,
	}
}
