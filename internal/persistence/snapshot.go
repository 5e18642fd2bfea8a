// Package persistence saves and restores simulation state: flat JSON
// snapshots for save/load round-trips and a sqlite store for run history.
package persistence

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/napolitain/clicker-sim/internal/models"
)

// Snapshot is the serialized form of a GameState. Float fields round-trip
// bit-for-bit through encoding/json, so replaying a loaded snapshot matches
// the original run exactly.
type Snapshot struct {
	Cookies            float64 `json:"cookies"`
	CookiesEarned      float64 `json:"cookies_earned"`
	CookiesEarnedTotal float64 `json:"cookies_earned_total"`
	CookiesReset       float64 `json:"cookies_reset"`

	CPS        float64 `json:"cps"`
	ClickPower float64 `json:"click_power"`
	Clicks     int64   `json:"clicks"`

	Buildings     map[string]int `json:"buildings"`
	UpgradesOwned []string       `json:"upgrades_owned"`

	PrestigeLevel int           `json:"prestige_level"`
	ElapsedTime   float64       `json:"elapsed_time"`
	Buffs         []models.Buff `json:"buffs,omitempty"`
}

// FromState captures a snapshot of the given state. Buildings are keyed by
// id so a snapshot survives reordering of the definitions table.
func FromState(state *models.GameState, defs *models.Definitions) Snapshot {
	snap := Snapshot{
		Cookies:            state.Cookies,
		CookiesEarned:      state.CookiesEarned,
		CookiesEarnedTotal: state.CookiesEarnedTotal,
		CookiesReset:       state.CookiesReset,
		CPS:                state.CPS,
		ClickPower:         state.ClickPower,
		Clicks:             state.Clicks,
		Buildings:          make(map[string]int),
		PrestigeLevel:      state.PrestigeLevel,
		ElapsedTime:        state.ElapsedTime,
	}

	for i, b := range defs.Buildings {
		if n := state.OwnedCount(i); n > 0 {
			snap.Buildings[string(b.ID)] = n
		}
	}
	for _, u := range defs.Upgrades {
		if state.HasUpgrade(u.ID) {
			snap.UpgradesOwned = append(snap.UpgradesOwned, u.ID)
		}
	}
	snap.Buffs = append(snap.Buffs, state.Buffs...)

	return snap
}

// ToState rebuilds a GameState against the given definitions. Snapshot
// entries naming unknown buildings or upgrades are an error, not silently
// dropped.
func (s Snapshot) ToState(defs *models.Definitions) (*models.GameState, error) {
	state := models.NewGameState(defs)
	state.Cookies = s.Cookies
	state.CookiesEarned = s.CookiesEarned
	state.CookiesEarnedTotal = s.CookiesEarnedTotal
	state.CookiesReset = s.CookiesReset
	state.CPS = s.CPS
	state.ClickPower = s.ClickPower
	state.Clicks = s.Clicks
	state.PrestigeLevel = s.PrestigeLevel
	state.ElapsedTime = s.ElapsedTime

	for id, count := range s.Buildings {
		idx, ok := defs.BuildingIndex(models.BuildingID(id))
		if !ok {
			return nil, fmt.Errorf("snapshot references unknown building %q", id)
		}
		state.Buildings[idx] = count
	}
	for _, id := range s.UpgradesOwned {
		if _, ok := defs.Upgrade(id); !ok {
			return nil, fmt.Errorf("snapshot references unknown upgrade %q", id)
		}
		state.UpgradesOwned[id] = true
	}
	state.Buffs = append(state.Buffs, s.Buffs...)

	return state, nil
}

// Save writes a snapshot of the state to a JSON file.
func Save(path string, state *models.GameState, defs *models.Definitions) error {
	data, err := json.MarshalIndent(FromState(state, defs), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return nil
}

// Load reads a JSON snapshot file and rebuilds the state.
func Load(path string, defs *models.Definitions) (*models.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return snap.ToState(defs)
}
