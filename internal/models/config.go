package models

import (
	"encoding/json"
	"fmt"
	"os"
)

// SimConfig controls one simulation run.
type SimConfig struct {
	TickSeconds     float64 `json:"tick_seconds"`
	DurationSeconds float64 `json:"duration_seconds"`
	InitialCookies  float64 `json:"initial_cookies"`
	AutoBuy         bool    `json:"auto_buy"`
	AutoClickRate   float64 `json:"auto_click_rate"`  // clicks per second, 0 disables
	AutoAscendGain  int     `json:"auto_ascend_gain"` // min whole prestige levels, 0 disables
	SnapshotEvery   float64 `json:"snapshot_every"`   // seconds between store snapshots, 0 disables
}

// DefaultSimConfig returns a one-hour auto-buy run at 1s ticks.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		TickSeconds:     1,
		DurationSeconds: 3600,
		AutoBuy:         true,
	}
}

// LoadSimConfig loads and validates a JSON config file.
func LoadSimConfig(path string) (SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return SimConfig{}, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := DefaultSimConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return SimConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := ValidateSimConfig(cfg); err != nil {
		return SimConfig{}, err
	}
	return cfg, nil
}

// ValidateSimConfig rejects configurations the loop cannot run.
func ValidateSimConfig(c SimConfig) error {
	if c.TickSeconds <= 0 {
		return fmt.Errorf("tick_seconds must be positive, got %v", c.TickSeconds)
	}
	if c.DurationSeconds < 0 {
		return fmt.Errorf("duration_seconds must be non-negative, got %v", c.DurationSeconds)
	}
	if c.InitialCookies < 0 {
		return fmt.Errorf("initial_cookies must be non-negative, got %v", c.InitialCookies)
	}
	if c.AutoClickRate < 0 {
		return fmt.Errorf("auto_click_rate must be non-negative, got %v", c.AutoClickRate)
	}
	if c.AutoAscendGain < 0 {
		return fmt.Errorf("auto_ascend_gain must be non-negative, got %d", c.AutoAscendGain)
	}
	return nil
}
