package engine

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/napolitain/clicker-sim/internal/formulas"
	"github.com/napolitain/clicker-sim/internal/models"
)

// maxPurchasesPerTick caps the auto-buy inner loop. Geometric pricing makes
// this unreachable for any budget float64 can hold; hitting it means a
// definitions bug broke the price-must-shrink-budget invariant.
const maxPurchasesPerTick = 10000

// Purchase and loop errors.
var (
	ErrUnknownID         = errors.New("unknown definition id")
	ErrCannotAfford      = errors.New("cannot afford purchase")
	ErrAlreadyOwned      = errors.New("upgrade already owned")
	ErrLocked            = errors.New("upgrade not unlocked")
	ErrPurchaseLoopStuck = errors.New("auto-buy loop exceeded purchase cap")
)

// RunStats accumulates counters over a simulation run.
type RunStats struct {
	Ticks           int64
	CookiesProduced float64
	BuildingsBought int
	UpgradesBought  int
	Ascensions      int
}

// Simulator advances one GameState through fixed ticks. Each tick runs three
// strictly ordered phases: produce, purchase, advance clock. Production
// lands before purchasing, so buying with same-tick income is intended.
type Simulator struct {
	defs       *models.Definitions
	cfg        models.SimConfig
	state      *models.GameState
	production *ProductionEngine
	optimizer  *Optimizer
	logger     *log.Logger

	Stats RunStats
}

// NewSimulator creates a simulator over the given state. A nil state starts
// a fresh run seeded with the config's initial cookies. A nil logger
// discards output.
func NewSimulator(defs *models.Definitions, cfg models.SimConfig, state *models.GameState, logger *log.Logger) *Simulator {
	if state == nil {
		state = models.NewGameState(defs)
		state.EarnCookies(cfg.InitialCookies)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	production := NewProductionEngine(defs)
	return &Simulator{
		defs:       defs,
		cfg:        cfg,
		state:      state,
		production: production,
		optimizer:  NewOptimizer(defs, production),
		logger:     logger,
	}
}

// State returns the simulator's owned game state.
func (s *Simulator) State() *models.GameState {
	return s.state
}

// Definitions returns the definitions table the simulator runs against.
func (s *Simulator) Definitions() *models.Definitions {
	return s.defs
}

// Advance runs a single tick of dt seconds.
func (s *Simulator) Advance(dt float64) error {
	// Phase 1: produce.
	s.state.CPS = s.production.TotalCPS(s.state)
	s.state.ClickPower = s.production.ClickPower(s.state)

	produced := s.state.CPS * dt
	s.state.EarnCookies(produced)
	s.Stats.CookiesProduced += produced

	if s.cfg.AutoClickRate > 0 {
		clicks := s.cfg.AutoClickRate * dt
		s.state.EarnCookies(s.state.ClickPower * clicks)
		s.state.Clicks += int64(clicks)
	}

	s.state.UpdateBuffs(dt)

	// Phase 2: purchase.
	if s.cfg.AutoBuy {
		if err := s.autoBuy(); err != nil {
			return err
		}
	}
	if s.cfg.AutoAscendGain > 0 {
		potential := formulas.Prestige(s.state.CookiesEarnedTotal)
		if potential-s.state.PrestigeLevel >= s.cfg.AutoAscendGain {
			s.Ascend()
		}
	}

	// Phase 3: advance clock.
	s.state.ElapsedTime += dt
	s.Stats.Ticks++

	return nil
}

// RunFor advances the state by floor(duration/dt) fixed ticks. Remainder
// time below one dt is dropped, a documented approximation.
func (s *Simulator) RunFor(duration, dt float64) error {
	ticks := int64(math.Floor(duration / dt))
	for i := int64(0); i < ticks; i++ {
		if err := s.Advance(dt); err != nil {
			return err
		}
	}
	return nil
}

// RunUntil ticks until the condition holds or maxTime elapses. Reports
// whether the condition was met.
func (s *Simulator) RunUntil(cond func(*models.GameState) bool, maxTime, dt float64) (bool, error) {
	for elapsed := 0.0; elapsed < maxTime; elapsed += dt {
		if err := s.Advance(dt); err != nil {
			return false, err
		}
		if cond(s.state) {
			return true, nil
		}
	}
	return false, nil
}

// autoBuy repeatedly applies the optimizer's best option until nothing is
// affordable. Each purchase strictly reduces the balance (prices are
// validated positive), so the loop terminates; the cap is a backstop.
func (s *Simulator) autoBuy() error {
	for i := 0; i < maxPurchasesPerTick; i++ {
		opt := s.optimizer.BestOption(s.state, s.state.Cookies)
		if opt == nil {
			return nil
		}
		if err := s.apply(opt); err != nil {
			return fmt.Errorf("auto-buy: %w", err)
		}
	}

	if s.optimizer.BestOption(s.state, s.state.Cookies) != nil {
		return fmt.Errorf("%w after %d purchases", ErrPurchaseLoopStuck, maxPurchasesPerTick)
	}
	return nil
}

func (s *Simulator) apply(opt *Option) error {
	switch opt.Kind {
	case BuildingOption:
		if err := s.BuyBuilding(models.BuildingID(opt.ID)); err != nil {
			return err
		}
	case UpgradeOption:
		if err := s.BuyUpgrade(opt.ID); err != nil {
			return err
		}
	}
	return nil
}

// Click applies manual clicks at the current click power.
func (s *Simulator) Click(times int) {
	earned := s.production.ClickPower(s.state) * float64(times)
	s.state.EarnCookies(earned)
	s.state.Clicks += int64(times)
}

// BuyBuilding purchases one unit at the current price. On failure the state
// is untouched.
func (s *Simulator) BuyBuilding(id models.BuildingID) error {
	idx, ok := s.defs.BuildingIndex(id)
	if !ok {
		return fmt.Errorf("%w: building %s", ErrUnknownID, id)
	}

	price := s.production.CurrentPrice(s.state, idx)
	if !s.state.SpendCookies(price) {
		return fmt.Errorf("%w: %s costs %.1f, have %.1f", ErrCannotAfford, id, price, s.state.Cookies)
	}

	s.state.Buildings[idx]++
	s.Stats.BuildingsBought++
	s.logger.Debug("bought building", "id", id, "count", s.state.Buildings[idx], "price", price)
	return nil
}

// BuyUpgrade purchases an upgrade once. Already-owned and locked upgrades
// are rejected before any cookies move.
func (s *Simulator) BuyUpgrade(id string) error {
	u, ok := s.defs.Upgrade(id)
	if !ok {
		return fmt.Errorf("%w: upgrade %s", ErrUnknownID, id)
	}
	if s.state.HasUpgrade(id) {
		return fmt.Errorf("%w: %s", ErrAlreadyOwned, id)
	}
	if !u.Unlock.Satisfied(s.state, s.defs) {
		return fmt.Errorf("%w: %s", ErrLocked, id)
	}
	if !s.state.SpendCookies(u.Price) {
		return fmt.Errorf("%w: %s costs %.1f, have %.1f", ErrCannotAfford, id, u.Price, s.state.Cookies)
	}

	s.state.UpgradesOwned[id] = true
	s.Stats.UpgradesBought++
	s.logger.Debug("bought upgrade", "id", id, "price", u.Price)
	return nil
}

// Ascend resets the run for prestige. The new level is recomputed from the
// lifetime total; run-local fields, buildings, upgrades and buffs are
// cleared. Returns the prestige gained (0 means nothing happened).
func (s *Simulator) Ascend() int {
	potential := formulas.Prestige(s.state.CookiesEarnedTotal)
	gain := potential - s.state.PrestigeLevel
	if gain <= 0 {
		return 0
	}

	s.state.PrestigeLevel = potential
	s.state.CookiesReset = s.state.CookiesEarnedTotal

	s.state.Cookies = 0
	s.state.CookiesEarned = 0
	s.state.CPS = 0
	s.state.ClickPower = 1.0
	s.state.Clicks = 0
	for i := range s.state.Buildings {
		s.state.Buildings[i] = 0
	}
	s.state.UpgradesOwned = make(map[string]bool)
	s.state.Buffs = nil

	s.Stats.Ascensions++
	s.logger.Info("ascended", "prestige", potential, "gain", gain)
	return gain
}

// CurrentPrice returns the next-unit price for a building index.
func (s *Simulator) CurrentPrice(idx int) float64 {
	return s.production.CurrentPrice(s.state, idx)
}

// Breakdown returns the current per-building CPS contribution mapping.
func (s *Simulator) Breakdown() map[models.BuildingID]float64 {
	return s.production.Breakdown(s.state)
}

// Recommendations returns the n best purchase options for display.
func (s *Simulator) Recommendations(n int) []Option {
	return s.optimizer.TopN(s.state, n)
}
