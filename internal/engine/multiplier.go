package engine

import (
	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

// MultiplierEngine composes every active multiplicative effect. Composition
// across sources is strictly multiplicative, never additive; within one kind
// the order of factors is irrelevant. Pure queries, no side effects.
type MultiplierEngine struct {
	Defs *models.Definitions
}

// NewMultiplierEngine creates a multiplier engine over a definitions table.
func NewMultiplierEngine(defs *models.Definitions) *MultiplierEngine {
	return &MultiplierEngine{Defs: defs}
}

// GlobalMultiplier returns the multiplier applied to total passive
// production: prestige × owned production upgrades × active buffs.
func (m *MultiplierEngine) GlobalMultiplier(state *models.GameState) float64 {
	mult := 1.0

	mult *= 1 + float64(state.PrestigeLevel)*formulas.PrestigePercentPerLevel

	for _, u := range m.Defs.Upgrades {
		if u.Kind == models.ProductionMultiplier && state.HasUpgrade(u.ID) {
			mult *= 1 + u.Magnitude
		}
	}

	mult *= m.BuffCPSMultiplier(state)

	return mult
}

// BuildingMultiplier returns the multiplier applied to one building's
// contribution only, from upgrades targeting that building. Composed with
// the global multiplier afterwards, never folded into it.
func (m *MultiplierEngine) BuildingMultiplier(state *models.GameState, idx int) float64 {
	if idx < 0 || idx >= len(m.Defs.Buildings) {
		return 1.0
	}
	id := m.Defs.Buildings[idx].ID

	mult := 1.0
	for _, u := range m.Defs.Upgrades {
		if u.Kind == models.BuildingMultiplier && u.Target == id && state.HasUpgrade(u.ID) {
			mult *= 1 + u.Magnitude
		}
	}
	return mult
}

// ClickMultiplier returns the multiplier applied to the per-click yield:
// owned click upgrades × active click buffs.
func (m *MultiplierEngine) ClickMultiplier(state *models.GameState) float64 {
	mult := 1.0
	for _, u := range m.Defs.Upgrades {
		if u.Kind == models.ClickMultiplier && state.HasUpgrade(u.ID) {
			mult *= 1 + u.Magnitude
		}
	}
	for _, b := range state.Buffs {
		if b.ClickMult > 0 {
			mult *= b.ClickMult
		}
	}
	return mult
}

// BuffCPSMultiplier returns the product of active buff CPS factors.
func (m *MultiplierEngine) BuffCPSMultiplier(state *models.GameState) float64 {
	mult := 1.0
	for _, b := range state.Buffs {
		if b.CPSMult > 0 {
			mult *= b.CPSMult
		}
	}
	return mult
}
