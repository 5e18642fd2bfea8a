package models

import (
	"errors"
	"fmt"
)

// BuildingID identifies a building definition.
type BuildingID string

// Classic building identifiers, in index order.
const (
	Cursor              BuildingID = "cursor"
	Grandma             BuildingID = "grandma"
	Farm                BuildingID = "farm"
	Mine                BuildingID = "mine"
	Factory             BuildingID = "factory"
	Bank                BuildingID = "bank"
	Temple              BuildingID = "temple"
	WizardTower         BuildingID = "wizard_tower"
	Shipment            BuildingID = "shipment"
	AlchemyLab          BuildingID = "alchemy_lab"
	Portal              BuildingID = "portal"
	TimeMachine         BuildingID = "time_machine"
	AntimatterCondenser BuildingID = "antimatter_condenser"
	Prism               BuildingID = "prism"
	Chancemaker         BuildingID = "chancemaker"
	FractalEngine       BuildingID = "fractal_engine"
)

// EffectKind is the closed set of upgrade effect variants.
type EffectKind int

const (
	// ProductionMultiplier scales total passive production.
	ProductionMultiplier EffectKind = iota
	// ClickMultiplier scales the per-click yield.
	ClickMultiplier
	// BuildingMultiplier scales one building's contribution only.
	BuildingMultiplier
)

// String returns the wire name of the effect kind.
func (k EffectKind) String() string {
	switch k {
	case ProductionMultiplier:
		return "production_multiplier"
	case ClickMultiplier:
		return "click_multiplier"
	case BuildingMultiplier:
		return "building_multiplier"
	}
	return fmt.Sprintf("effect_kind(%d)", int(k))
}

// ParseEffectKind converts a wire name to an EffectKind.
func ParseEffectKind(s string) (EffectKind, error) {
	switch s {
	case "production_multiplier":
		return ProductionMultiplier, nil
	case "click_multiplier":
		return ClickMultiplier, nil
	case "building_multiplier":
		return BuildingMultiplier, nil
	}
	return 0, fmt.Errorf("unknown effect kind %q", s)
}

// Building is the immutable static definition of a purchasable producer.
// Owned counts live in GameState, so definitions are shareable read-only data.
type Building struct {
	ID          BuildingID
	Name        string
	BasePrice   float64
	BaseCPS     float64
	PriceGrowth float64 // geometric price factor, 1.15 in the reference table
}

// UnlockRule is a declarative unlock predicate for an upgrade. Zero-value
// fields do not constrain; all set fields must hold.
type UnlockRule struct {
	Building      BuildingID // building whose owned count is checked
	BuildingCount int        // minimum owned count of Building
	Clicks        int64      // minimum lifetime clicks
	EarnedTotal   float64    // minimum lifetime cookies earned
}

// Satisfied reports whether the rule holds for the given state.
func (r UnlockRule) Satisfied(state *GameState, defs *Definitions) bool {
	if r.Building != "" {
		idx, ok := defs.BuildingIndex(r.Building)
		if !ok || state.OwnedCount(idx) < r.BuildingCount {
			return false
		}
	}
	if state.Clicks < r.Clicks {
		return false
	}
	if state.CookiesEarnedTotal < r.EarnedTotal {
		return false
	}
	return true
}

// Upgrade is the immutable static definition of a one-time purchase.
type Upgrade struct {
	ID        string
	Name      string
	Price     float64
	Kind      EffectKind
	Magnitude float64    // 1.0 means +100%, i.e. a ×2 effect
	Target    BuildingID // set only for BuildingMultiplier
	Unlock    UnlockRule
}

// Definition validation errors.
var (
	ErrNonPositivePrice = errors.New("non-positive price")
	ErrDuplicateID      = errors.New("duplicate definition id")
	ErrUnknownTarget    = errors.New("unknown target building")
)

// Definitions is the immutable table of buildings and upgrades, threaded
// explicitly into every engine call. Slice order is the canonical iteration
// order, so all derived computation is deterministic.
type Definitions struct {
	Buildings []Building
	Upgrades  []Upgrade

	buildingIdx map[BuildingID]int
	upgradeIdx  map[string]int
}

// NewDefinitions builds an indexed definitions table. Every price must be
// strictly positive; a zero-price entry would let the auto-buy loop spin
// without reducing the budget.
func NewDefinitions(buildings []Building, upgrades []Upgrade) (*Definitions, error) {
	d := &Definitions{
		Buildings:   buildings,
		Upgrades:    upgrades,
		buildingIdx: make(map[BuildingID]int, len(buildings)),
		upgradeIdx:  make(map[string]int, len(upgrades)),
	}

	for i, b := range buildings {
		if b.BasePrice <= 0 {
			return nil, fmt.Errorf("building %s: %w", b.ID, ErrNonPositivePrice)
		}
		if b.PriceGrowth < 1 {
			return nil, fmt.Errorf("building %s: price growth %v below 1", b.ID, b.PriceGrowth)
		}
		if _, dup := d.buildingIdx[b.ID]; dup {
			return nil, fmt.Errorf("building %s: %w", b.ID, ErrDuplicateID)
		}
		d.buildingIdx[b.ID] = i
	}

	for i, u := range upgrades {
		if u.Price <= 0 {
			return nil, fmt.Errorf("upgrade %s: %w", u.ID, ErrNonPositivePrice)
		}
		if _, dup := d.upgradeIdx[u.ID]; dup {
			return nil, fmt.Errorf("upgrade %s: %w", u.ID, ErrDuplicateID)
		}
		if u.Kind == BuildingMultiplier {
			if _, ok := d.buildingIdx[u.Target]; !ok {
				return nil, fmt.Errorf("upgrade %s: %w: %s", u.ID, ErrUnknownTarget, u.Target)
			}
		}
		d.upgradeIdx[u.ID] = i
	}

	return d, nil
}

// BuildingIndex returns the slice index of a building id.
func (d *Definitions) BuildingIndex(id BuildingID) (int, bool) {
	idx, ok := d.buildingIdx[id]
	return idx, ok
}

// Building returns the definition for a building id.
func (d *Definitions) Building(id BuildingID) (*Building, bool) {
	idx, ok := d.buildingIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Buildings[idx], true
}

// Upgrade returns the definition for an upgrade id.
func (d *Definitions) Upgrade(id string) (*Upgrade, bool) {
	idx, ok := d.upgradeIdx[id]
	if !ok {
		return nil, false
	}
	return &d.Upgrades[idx], true
}
