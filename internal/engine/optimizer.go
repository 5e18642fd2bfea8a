package engine

import (
	"math"
	"sort"

	"github.com/napolitain/clicker-sim/internal/models"
)

// AssumedClicksPerSecond converts click-power gains into a CPS-equivalent so
// click upgrades rank on the same axis as buildings. Ten clicks per second
// is the sustained rate the default auto-clicker runs at.
const AssumedClicksPerSecond = 10.0

// OptionKind distinguishes purchase candidates.
type OptionKind int

const (
	BuildingOption OptionKind = iota
	UpgradeOption
)

// String returns a display name for the kind.
func (k OptionKind) String() string {
	if k == BuildingOption {
		return "building"
	}
	return "upgrade"
}

// Option is one ranked purchase candidate.
type Option struct {
	Kind       OptionKind
	ID         string
	Name       string
	Price      float64
	CPSGain    float64 // marginal rate gain (CPS-equivalent for click upgrades)
	Efficiency float64 // CPSGain / Price
}

// PaybackSeconds returns how long the option takes to pay for itself.
func (o Option) PaybackSeconds() float64 {
	if o.CPSGain <= 0 {
		return math.Inf(1)
	}
	return o.Price / o.CPSGain
}

// Optimizer ranks purchase candidates by marginal efficiency. The policy is
// greedy and myopic: one purchase of lookahead, no accounting for the future
// price inflation of foregone options.
type Optimizer struct {
	Defs       *models.Definitions
	Production *ProductionEngine
}

// NewOptimizer creates an optimizer sharing a production engine.
func NewOptimizer(defs *models.Definitions, production *ProductionEngine) *Optimizer {
	return &Optimizer{Defs: defs, Production: production}
}

// BestOption returns the affordable candidate with strictly maximal
// efficiency, ties broken by lowest price. Returns nil when nothing is
// affordable. Never mutates the state.
func (o *Optimizer) BestOption(state *models.GameState, budget float64) *Option {
	var best *Option

	consider := func(opt Option) {
		if opt.Price > budget {
			return
		}
		if best == nil ||
			opt.Efficiency > best.Efficiency ||
			(opt.Efficiency == best.Efficiency && opt.Price < best.Price) {
			copied := opt
			best = &copied
		}
	}

	for i := range o.Defs.Buildings {
		consider(o.buildingOption(state, i))
	}
	for i := range o.Defs.Upgrades {
		u := &o.Defs.Upgrades[i]
		if state.HasUpgrade(u.ID) || !u.Unlock.Satisfied(state, o.Defs) {
			continue
		}
		consider(o.upgradeOption(state, u))
	}

	return best
}

// Options returns every affordable candidate ranked best-first.
func (o *Optimizer) Options(state *models.GameState, budget float64) []Option {
	var options []Option

	for i := range o.Defs.Buildings {
		if opt := o.buildingOption(state, i); opt.Price <= budget {
			options = append(options, opt)
		}
	}
	for i := range o.Defs.Upgrades {
		u := &o.Defs.Upgrades[i]
		if state.HasUpgrade(u.ID) || !u.Unlock.Satisfied(state, o.Defs) {
			continue
		}
		if opt := o.upgradeOption(state, u); opt.Price <= budget {
			options = append(options, opt)
		}
	}

	sortOptions(options)
	return options
}

// TopN returns the n best candidates regardless of budget, for display.
// Locked and owned upgrades are still excluded.
func (o *Optimizer) TopN(state *models.GameState, n int) []Option {
	options := o.Options(state, math.Inf(1))
	if len(options) > n {
		options = options[:n]
	}
	return options
}

func sortOptions(options []Option) {
	sort.SliceStable(options, func(i, j int) bool {
		if options[i].Efficiency != options[j].Efficiency {
			return options[i].Efficiency > options[j].Efficiency
		}
		return options[i].Price < options[j].Price
	})
}

// buildingOption evaluates the marginal gain of owning one more unit via a
// pure hypothetical rate, never a mutate-then-revert.
func (o *Optimizer) buildingOption(state *models.GameState, idx int) Option {
	b := &o.Defs.Buildings[idx]
	price := o.Production.CurrentPrice(state, idx)
	gain := o.Production.TotalCPSWith(state, idx, 1) - o.Production.TotalCPS(state)

	return Option{
		Kind:       BuildingOption,
		ID:         string(b.ID),
		Name:       b.Name,
		Price:      price,
		CPSGain:    gain,
		Efficiency: gain / price,
	}
}

// upgradeOption evaluates an upgrade's marginal gain on a clone of the
// state. Click upgrades convert through AssumedClicksPerSecond.
func (o *Optimizer) upgradeOption(state *models.GameState, u *models.Upgrade) Option {
	var gain float64

	switch u.Kind {
	case models.ClickMultiplier:
		hypo := state.Clone()
		hypo.UpgradesOwned[u.ID] = true
		gain = (o.Production.ClickPower(hypo) - o.Production.ClickPower(state)) * AssumedClicksPerSecond
	case models.ProductionMultiplier, models.BuildingMultiplier:
		hypo := state.Clone()
		hypo.UpgradesOwned[u.ID] = true
		gain = o.Production.TotalCPS(hypo) - o.Production.TotalCPS(state)
	}

	return Option{
		Kind:       UpgradeOption,
		ID:         u.ID,
		Name:       u.Name,
		Price:      u.Price,
		CPSGain:    gain,
		Efficiency: gain / u.Price,
	}
}
