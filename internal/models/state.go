package models

// Buff is a temporary multiplicative effect with a remaining duration.
type Buff struct {
	Name      string  `json:"name"`
	CPSMult   float64 `json:"cps_mult"`
	ClickMult float64 `json:"click_mult"`
	Remaining float64 `json:"remaining"` // seconds
}

// Stock buffs from the reference game.
func FrenzyBuff(duration float64) Buff {
	return Buff{Name: "frenzy", CPSMult: 7, ClickMult: 1, Remaining: duration}
}

func ElderFrenzyBuff(duration float64) Buff {
	return Buff{Name: "elder_frenzy", CPSMult: 666, ClickMult: 1, Remaining: duration}
}

func ClotBuff(duration float64) Buff {
	return Buff{Name: "clot", CPSMult: 0.5, ClickMult: 1, Remaining: duration}
}

func ClickFrenzyBuff(duration float64) Buff {
	return Buff{Name: "click_frenzy", CPSMult: 1, ClickMult: 777, Remaining: duration}
}

// GameState is the mutable aggregate for one simulation run. Exactly one
// run owns a GameState at a time; comparison scenarios must work on clones.
type GameState struct {
	Cookies            float64 // spendable, never negative
	CookiesEarned      float64 // earned this run, reset on ascension
	CookiesEarnedTotal float64 // lifetime accrual, never reset
	CookiesReset       float64 // lifetime total snapshot at the last ascension

	CPS        float64 // cached rate, recomputed every tick
	ClickPower float64 // cached per-click yield
	Clicks     int64   // lifetime click count

	Buildings     []int // owned counts, indexed in Definitions order
	UpgradesOwned map[string]bool

	PrestigeLevel int
	ElapsedTime   float64 // simulated seconds
	Buffs         []Buff
}

// NewGameState creates an all-zero state sized for the given definitions.
func NewGameState(defs *Definitions) *GameState {
	return &GameState{
		ClickPower:    1.0,
		Buildings:     make([]int, len(defs.Buildings)),
		UpgradesOwned: make(map[string]bool),
	}
}

// Clone creates a deep copy of the state. Nil slices and maps stay nil so a
// clone is indistinguishable from its original under reflect.DeepEqual.
func (s *GameState) Clone() *GameState {
	clone := *s
	if s.Buildings != nil {
		clone.Buildings = make([]int, len(s.Buildings))
		copy(clone.Buildings, s.Buildings)
	}
	if s.UpgradesOwned != nil {
		clone.UpgradesOwned = make(map[string]bool, len(s.UpgradesOwned))
		for id, owned := range s.UpgradesOwned {
			clone.UpgradesOwned[id] = owned
		}
	}
	if s.Buffs != nil {
		clone.Buffs = make([]Buff, len(s.Buffs))
		copy(clone.Buffs, s.Buffs)
	}
	return &clone
}

// OwnedCount returns the owned count for a building index.
func (s *GameState) OwnedCount(idx int) int {
	if idx < 0 || idx >= len(s.Buildings) {
		return 0
	}
	return s.Buildings[idx]
}

// TotalBuildings returns the sum of all owned counts.
func (s *GameState) TotalBuildings() int {
	total := 0
	for _, n := range s.Buildings {
		total += n
	}
	return total
}

// HasUpgrade reports whether an upgrade is owned.
func (s *GameState) HasUpgrade(id string) bool {
	return s.UpgradesOwned[id]
}

// EarnCookies credits both the spendable balance and the earned counters.
func (s *GameState) EarnCookies(amount float64) {
	s.Cookies += amount
	s.CookiesEarned += amount
	s.CookiesEarnedTotal += amount
}

// SpendCookies debits the balance if it covers the amount. Earned counters
// are untouched; spending never reduces lifetime accrual.
func (s *GameState) SpendCookies(amount float64) bool {
	if s.Cookies < amount {
		return false
	}
	s.Cookies -= amount
	return true
}

// AddBuff activates a temporary effect.
func (s *GameState) AddBuff(b Buff) {
	s.Buffs = append(s.Buffs, b)
}

// UpdateBuffs decrements remaining durations and drops expired buffs.
func (s *GameState) UpdateBuffs(dt float64) {
	alive := s.Buffs[:0]
	for _, b := range s.Buffs {
		b.Remaining -= dt
		if b.Remaining > 0 {
			alive = append(alive, b)
		}
	}
	s.Buffs = alive
}
