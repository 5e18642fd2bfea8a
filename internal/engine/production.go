package engine

import (
	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

// ProductionEngine computes instantaneous production from scratch on every
// call. There is no incremental caching: any purchase or upgrade invalidates
// the prior multiplier composition, so recomputing is the only safe option.
type ProductionEngine struct {
	Defs        *models.Definitions
	Multipliers *MultiplierEngine
}

// NewProductionEngine creates a production engine over a definitions table.
func NewProductionEngine(defs *models.Definitions) *ProductionEngine {
	return &ProductionEngine{
		Defs:        defs,
		Multipliers: NewMultiplierEngine(defs),
	}
}

// TotalCPS returns the instantaneous total production rate.
func (p *ProductionEngine) TotalCPS(state *models.GameState) float64 {
	return p.totalCPSCounting(state, -1, 0)
}

// TotalCPSWith returns the total rate as if `extra` additional units of the
// building at idx were owned. A pure hypothetical: the state is never
// touched, so there is no transiently inconsistent window.
func (p *ProductionEngine) TotalCPSWith(state *models.GameState, idx, extra int) float64 {
	return p.totalCPSCounting(state, idx, extra)
}

func (p *ProductionEngine) totalCPSCounting(state *models.GameState, hypoIdx, extra int) float64 {
	global := p.Multipliers.GlobalMultiplier(state)

	total := 0.0
	for i := range p.Defs.Buildings {
		count := state.OwnedCount(i)
		if i == hypoIdx {
			count += extra
		}
		if count <= 0 {
			continue
		}
		total += p.buildingCPSAt(state, i, count, global)
	}
	return total
}

// BuildingCPS returns one building's contribution at its current count.
func (p *ProductionEngine) BuildingCPS(state *models.GameState, idx int) float64 {
	count := state.OwnedCount(idx)
	if count <= 0 {
		return 0
	}
	return p.buildingCPSAt(state, idx, count, p.Multipliers.GlobalMultiplier(state))
}

func (p *ProductionEngine) buildingCPSAt(state *models.GameState, idx, count int, global float64) float64 {
	b := &p.Defs.Buildings[idx]
	return b.BaseCPS * float64(count) * p.Multipliers.BuildingMultiplier(state, idx) * global
}

// Breakdown returns the per-building CPS contribution mapping.
func (p *ProductionEngine) Breakdown(state *models.GameState) map[models.BuildingID]float64 {
	breakdown := make(map[models.BuildingID]float64)
	global := p.Multipliers.GlobalMultiplier(state)
	for i := range p.Defs.Buildings {
		count := state.OwnedCount(i)
		if count <= 0 {
			continue
		}
		breakdown[p.Defs.Buildings[i].ID] = p.buildingCPSAt(state, i, count, global)
	}
	return breakdown
}

// ClickPower returns the per-click yield: 1.0 scaled by click multipliers.
// Independent of passive production.
func (p *ProductionEngine) ClickPower(state *models.GameState) float64 {
	return 1.0 * p.Multipliers.ClickMultiplier(state)
}

// CurrentPrice returns the price of the next unit of the building at idx,
// evaluated at the current owned count.
func (p *ProductionEngine) CurrentPrice(state *models.GameState, idx int) float64 {
	b := &p.Defs.Buildings[idx]
	return formulas.Price(b.BasePrice, b.PriceGrowth, state.OwnedCount(idx))
}
