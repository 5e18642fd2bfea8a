package engine

import (
	"math"
	"reflect"
	"testing"

	"github.com/napolitain/clicker-sim/internal/models"
)

func testDefinitions(t *testing.T) *models.Definitions {
	t.Helper()
	defs, err := models.NewDefinitions(
		[]models.Building{
			{ID: models.Cursor, Name: "Cursor", BasePrice: 15, BaseCPS: 0.1, PriceGrowth: 1.15},
			{ID: models.Grandma, Name: "Grandma", BasePrice: 100, BaseCPS: 1, PriceGrowth: 1.15},
			{ID: models.Farm, Name: "Farm", BasePrice: 1100, BaseCPS: 8, PriceGrowth: 1.15},
		},
		[]models.Upgrade{
			{ID: "rolling_pins", Name: "Rolling pins", Price: 5000, Kind: models.BuildingMultiplier,
				Magnitude: 1.0, Target: models.Grandma,
				Unlock: models.UnlockRule{Building: models.Grandma, BuildingCount: 5}},
			{ID: "thimbles", Name: "Thimbles", Price: 100, Kind: models.ClickMultiplier,
				Magnitude: 1.0, Unlock: models.UnlockRule{Clicks: 15}},
			{ID: "better_flour", Name: "Better flour", Price: 2000, Kind: models.ProductionMultiplier,
				Magnitude: 0.05},
		},
	)
	if err != nil {
		t.Fatalf("Failed to build definitions: %v", err)
	}
	return defs
}

func newTestOptimizer(t *testing.T) *Optimizer {
	t.Helper()
	defs := testDefinitions(t)
	return NewOptimizer(defs, NewProductionEngine(defs))
}

func TestBestOptionRespectsBudget(t *testing.T) {
	opt := newTestOptimizer(t)
	state := models.NewGameState(opt.Defs)

	if best := opt.BestOption(state, 0); best != nil {
		t.Errorf("zero budget returned %v, want nil", best)
	}
	if best := opt.BestOption(state, 14.99); best != nil {
		t.Errorf("budget below cheapest option returned %v, want nil", best)
	}

	best := opt.BestOption(state, 1e9)
	if best == nil {
		t.Fatal("huge budget returned no option")
	}
	if best.Price > 1e9 {
		t.Errorf("best option price %v exceeds budget", best.Price)
	}
}

// TestBestOptionTieBreaksOnPrice builds two candidates with identical
// efficiency and checks the cheaper one wins.
func TestBestOptionTieBreaksOnPrice(t *testing.T) {
	defs, err := models.NewDefinitions(
		[]models.Building{
			// Same gain-per-cookie (0.01), different absolute prices.
			{ID: "small", Name: "Small", BasePrice: 100, BaseCPS: 1, PriceGrowth: 1.15},
			{ID: "large", Name: "Large", BasePrice: 1000, BaseCPS: 10, PriceGrowth: 1.15},
		}, nil)
	if err != nil {
		t.Fatalf("Failed to build definitions: %v", err)
	}
	opt := NewOptimizer(defs, NewProductionEngine(defs))
	state := models.NewGameState(defs)

	best := opt.BestOption(state, 1e6)
	if best == nil {
		t.Fatal("no option returned")
	}
	if best.ID != "small" {
		t.Errorf("tie broke to %s, want the cheaper small", best.ID)
	}
}

func TestBestOptionNeverMutatesState(t *testing.T) {
	opt := newTestOptimizer(t)
	state := models.NewGameState(opt.Defs)
	state.EarnCookies(1e6)
	state.Buildings[1] = 5
	state.Clicks = 20

	before := state.Clone()
	opt.BestOption(state, state.Cookies)
	opt.Options(state, state.Cookies)
	opt.TopN(state, 10)

	if !reflect.DeepEqual(before, state) {
		t.Errorf("optimizer mutated the state:\nbefore %+v\nafter  %+v", before, state)
	}
}

func TestOptionsExcludeLockedAndOwnedUpgrades(t *testing.T) {
	opt := newTestOptimizer(t)
	state := models.NewGameState(opt.Defs)
	state.EarnCookies(1e6)

	// rolling_pins needs 5 grandmas, thimbles needs 15 clicks: both locked.
	for _, o := range opt.Options(state, state.Cookies) {
		if o.ID == "rolling_pins" || o.ID == "thimbles" {
			t.Errorf("locked upgrade %s offered", o.ID)
		}
	}

	state.Clicks = 15
	state.UpgradesOwned["thimbles"] = true
	for _, o := range opt.Options(state, state.Cookies) {
		if o.ID == "thimbles" {
			t.Error("owned upgrade offered again")
		}
	}
}

func TestOptionsRankedByEfficiency(t *testing.T) {
	opt := newTestOptimizer(t)
	state := models.NewGameState(opt.Defs)
	state.Buildings[1] = 10 // give production upgrades something to multiply

	options := opt.Options(state, math.Inf(1))
	for i := 1; i < len(options); i++ {
		if options[i].Efficiency > options[i-1].Efficiency {
			t.Errorf("options out of order at %d: %v after %v",
				i, options[i].Efficiency, options[i-1].Efficiency)
		}
	}
}

func TestUpgradeGainMatchesDirectComputation(t *testing.T) {
	opt := newTestOptimizer(t)
	production := opt.Production
	state := models.NewGameState(opt.Defs)
	state.Buildings[1] = 5 // doubling grandmas is worth 5 CPS

	base := production.TotalCPS(state)
	if base != 5 {
		t.Fatalf("baseline CPS = %v, want 5", base)
	}

	options := opt.Options(state, math.Inf(1))
	for _, o := range options {
		if o.ID == "rolling_pins" {
			if math.Abs(o.CPSGain-5) > 1e-9 {
				t.Errorf("rolling_pins gain = %v, want 5", o.CPSGain)
			}
			return
		}
	}
	t.Fatal("rolling_pins not offered with 5 grandmas")
}

func TestClickUpgradeGainUsesAssumedRate(t *testing.T) {
	opt := newTestOptimizer(t)
	state := models.NewGameState(opt.Defs)
	state.Clicks = 15

	options := opt.Options(state, math.Inf(1))
	for _, o := range options {
		if o.ID == "thimbles" {
			// Doubling a 1.0 click power is +1 per click.
			want := 1.0 * AssumedClicksPerSecond
			if math.Abs(o.CPSGain-want) > 1e-9 {
				t.Errorf("thimbles gain = %v, want %v", o.CPSGain, want)
			}
			return
		}
	}
	t.Fatal("thimbles not offered at 15 clicks")
}

func TestPaybackSeconds(t *testing.T) {
	o := Option{Price: 100, CPSGain: 4}
	if got := o.PaybackSeconds(); got != 25 {
		t.Errorf("payback = %v, want 25", got)
	}
	zero := Option{Price: 100, CPSGain: 0}
	if !math.IsInf(zero.PaybackSeconds(), 1) {
		t.Error("zero-gain payback should be +Inf")
	}
}
