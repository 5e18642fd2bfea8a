// Package analysis answers planning questions about a game state without
// disturbing it: time to reach a cookie goal, time to afford a price, and
// whether ascending now is worth it. Every query simulates on clones.
package analysis

import (
	"math"

	"github.com/napolitain/clicker-sim/internal/engine"
	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

// MaxGoalHorizonSeconds bounds the search for goal predictions. Goals not
// reached within a simulated year report as unreachable rather than looping.
const MaxGoalHorizonSeconds = 365.25 * 24 * 3600

// Analyzer runs hypothetical simulations against a definitions table.
type Analyzer struct {
	Defs *models.Definitions
	Cfg  models.SimConfig
}

// NewAnalyzer creates an analyzer. The config governs the hypothetical runs
// (auto-buy on or off, click rate), not any live simulation.
func NewAnalyzer(defs *models.Definitions, cfg models.SimConfig) *Analyzer {
	return &Analyzer{Defs: defs, Cfg: cfg}
}

// TimeToGoal predicts the seconds until the lifetime earned total reaches
// the goal, assuming play continues per the config. Returns 0 when the goal
// is already met and +Inf when it is not reached within the horizon.
//
// Binary search over simulated durations: each probe replays from a fresh
// clone, so the caller's state is never touched and probes cannot compound.
func (a *Analyzer) TimeToGoal(state *models.GameState, goal float64) float64 {
	if state.CookiesEarnedTotal >= goal {
		return 0
	}

	dt := a.Cfg.TickSeconds
	if dt <= 0 {
		dt = 1
	}

	reaches := func(duration float64) bool {
		sim := engine.NewSimulator(a.Defs, a.Cfg, state.Clone(), nil)
		if err := sim.RunFor(duration, dt); err != nil {
			return false
		}
		return sim.State().CookiesEarnedTotal >= goal
	}

	if !reaches(MaxGoalHorizonSeconds) {
		return math.Inf(1)
	}

	low, high := 0.0, MaxGoalHorizonSeconds
	for high-low > 1 {
		mid := (low + high) / 2
		if reaches(mid) {
			high = mid
		} else {
			low = mid
		}
	}
	return high
}

// TimeToAfford predicts the seconds until the spendable balance covers the
// price. Same search as TimeToGoal, but against the balance, so purchases
// made along the way count against it.
func (a *Analyzer) TimeToAfford(state *models.GameState, price float64) float64 {
	if state.Cookies >= price {
		return 0
	}

	dt := a.Cfg.TickSeconds
	if dt <= 0 {
		dt = 1
	}

	reaches := func(duration float64) bool {
		sim := engine.NewSimulator(a.Defs, a.Cfg, state.Clone(), nil)
		if err := sim.RunFor(duration, dt); err != nil {
			return false
		}
		return sim.State().Cookies >= price
	}

	if !reaches(MaxGoalHorizonSeconds) {
		return math.Inf(1)
	}

	low, high := 0.0, MaxGoalHorizonSeconds
	for high-low > 1 {
		mid := (low + high) / 2
		if reaches(mid) {
			high = mid
		} else {
			low = mid
		}
	}
	return high
}

// AscensionAdvice summarizes whether resetting now gains prestige.
type AscensionAdvice struct {
	ShouldReset    bool
	CurrentLevel   int
	PotentialLevel int
	PrestigeGain   int
	NextLevelAt    float64 // lifetime total needed for one more level
}

// EvaluateAscension compares the current prestige level against what the
// lifetime total is worth. Pure query.
func (a *Analyzer) EvaluateAscension(state *models.GameState) AscensionAdvice {
	potential := formulas.Prestige(state.CookiesEarnedTotal)
	return AscensionAdvice{
		ShouldReset:    potential > state.PrestigeLevel,
		CurrentLevel:   state.PrestigeLevel,
		PotentialLevel: potential,
		PrestigeGain:   potential - state.PrestigeLevel,
		NextLevelAt:    formulas.CookiesForPrestige(potential + 1),
	}
}
