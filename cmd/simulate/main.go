package main

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/clicker-sim/internal/engine"
	"github.com/napolitain/clicker-sim/internal/loader"
	"github.com/napolitain/clicker-sim/internal/models"
	"github.com/napolitain/clicker-sim/internal/persistence"
)

var (
	dataFile      string
	configFile    string
	duration      float64
	tick          float64
	initial       float64
	autoBuy       bool
	clickRate     float64
	ascendGain    int
	loadPath      string
	savePath      string
	dbPath        string
	snapshotEvery float64
	quiet         bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Cookie Economy Simulator",
		Long: `A greedy auto-buy simulator for the cookie economy: runs the
production loop over a fixed duration and reports the final state.`,
		Run: runSimulation,
	}

	rootCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Path to definitions JSON (default: built-in table)")
	rootCmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to JSON config file")
	rootCmd.Flags().Float64Var(&duration, "duration", 3600, "Simulated seconds to run")
	rootCmd.Flags().Float64Var(&tick, "tick", 1, "Tick length in seconds")
	rootCmd.Flags().Float64Var(&initial, "initial", 0, "Starting cookies")
	rootCmd.Flags().BoolVar(&autoBuy, "auto-buy", true, "Buy the most efficient option every tick")
	rootCmd.Flags().Float64Var(&clickRate, "click-rate", 0, "Auto-click rate in clicks per second")
	rootCmd.Flags().IntVar(&ascendGain, "ascend-gain", 0, "Auto-ascend when this many prestige levels are pending (0 disables)")
	rootCmd.Flags().StringVar(&loadPath, "load", "", "Resume from a snapshot file")
	rootCmd.Flags().StringVar(&savePath, "save", "", "Write the final state to a snapshot file")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Record the run in a sqlite database")
	rootCmd.Flags().Float64Var(&snapshotEvery, "snapshot-every", 0, "Seconds between database snapshots (0 disables)")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Minimal output")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log every purchase")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runSimulation(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	successColor := color.New(color.FgGreen, color.Bold)
	infoColor := color.New(color.FgYellow)

	if !quiet {
		titleColor.Println("\n╭───────────────────────────╮")
		titleColor.Println("│  Cookie Economy           │")
		titleColor.Println("│  Simulator                │")
		titleColor.Println("╰───────────────────────────╯")
		fmt.Println()
	}

	logger := log.New(os.Stderr)
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}

	defs, err := loadDefinitions()
	if err != nil {
		color.Red("Error loading definitions: %v", err)
		os.Exit(1)
	}
	if !quiet {
		infoColor.Printf("📦 Loaded %d buildings, %d upgrades\n\n", len(defs.Buildings), len(defs.Upgrades))
	}

	cfg := models.DefaultSimConfig()
	if configFile != "" {
		cfg, err = models.LoadSimConfig(configFile)
		if err != nil {
			color.Red("Error loading config: %v", err)
			os.Exit(1)
		}
		if !quiet {
			infoColor.Printf("📄 Loaded config from %s\n\n", configFile)
		}
	}
	applyFlagOverrides(cmd, &cfg)
	if err := models.ValidateSimConfig(cfg); err != nil {
		color.Red("Invalid config: %v", err)
		os.Exit(1)
	}

	var state *models.GameState
	if loadPath != "" {
		state, err = persistence.Load(loadPath, defs)
		if err != nil {
			color.Red("Error loading snapshot: %v", err)
			os.Exit(1)
		}
		if !quiet {
			infoColor.Printf("💾 Resumed from %s at t=%s\n\n", loadPath, formatDuration(state.ElapsedTime))
		}
	}

	sim := engine.NewSimulator(defs, cfg, state, logger)

	var store *persistence.Store
	var runID string
	if dbPath != "" {
		store, err = persistence.OpenStore(dbPath)
		if err != nil {
			color.Red("Error opening database: %v", err)
			os.Exit(1)
		}
		defer store.Close()

		runID, err = store.BeginRun()
		if err != nil {
			color.Red("Error starting run: %v", err)
			os.Exit(1)
		}
	}

	if !quiet {
		infoColor.Printf("🔄 Simulating %s at %.0fs ticks...\n", formatDuration(cfg.DurationSeconds), cfg.TickSeconds)
	}

	started := time.Now()
	if err := runWithSnapshots(sim, cfg, store, runID); err != nil {
		color.Red("Simulation failed: %v", err)
		os.Exit(1)
	}
	elapsed := time.Since(started)

	final := sim.State()
	successColor.Printf("\n✓ Ran %s ticks in %s\n", humanize.Comma(sim.Stats.Ticks), elapsed.Round(time.Millisecond))
	successColor.Printf("✓ Bought %d buildings and %d upgrades\n\n", sim.Stats.BuildingsBought, sim.Stats.UpgradesBought)

	if !quiet {
		printFinalState(sim)
		printBreakdown(sim)
		printRecommendations(sim)
	}

	if store != nil {
		if err := store.FinishRun(runID, persistence.RunSummary{
			DurationSeconds: final.ElapsedTime,
			FinalCookies:    final.Cookies,
			FinalCPS:        final.CPS,
			BuildingsBought: sim.Stats.BuildingsBought,
			UpgradesBought:  sim.Stats.UpgradesBought,
			Ascensions:      sim.Stats.Ascensions,
		}); err != nil {
			color.Red("Error finishing run: %v", err)
			os.Exit(1)
		}
	}

	if savePath != "" {
		if err := persistence.Save(savePath, final, defs); err != nil {
			color.Red("Error saving snapshot: %v", err)
			os.Exit(1)
		}
		if !quiet {
			infoColor.Printf("\n💾 Saved snapshot to %s\n", savePath)
		}
	}
}

func loadDefinitions() (*models.Definitions, error) {
	if dataFile == "" {
		return loader.DefaultDefinitions(), nil
	}
	return loader.LoadDefinitions(dataFile)
}

// applyFlagOverrides lets explicit flags win over the config file.
func applyFlagOverrides(cmd *cobra.Command, cfg *models.SimConfig) {
	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.DurationSeconds = duration
	}
	if flags.Changed("tick") {
		cfg.TickSeconds = tick
	}
	if flags.Changed("initial") {
		cfg.InitialCookies = initial
	}
	if flags.Changed("auto-buy") {
		cfg.AutoBuy = autoBuy
	}
	if flags.Changed("click-rate") {
		cfg.AutoClickRate = clickRate
	}
	if flags.Changed("ascend-gain") {
		cfg.AutoAscendGain = ascendGain
	}
	if flags.Changed("snapshot-every") {
		cfg.SnapshotEvery = snapshotEvery
	}
}

// runWithSnapshots runs the full duration, pausing at snapshot boundaries to
// record intermediate states when a store is attached.
func runWithSnapshots(sim *engine.Simulator, cfg models.SimConfig, store *persistence.Store, runID string) error {
	if store == nil || cfg.SnapshotEvery <= 0 {
		return sim.RunFor(cfg.DurationSeconds, cfg.TickSeconds)
	}

	remaining := cfg.DurationSeconds
	for remaining > 0 {
		chunk := cfg.SnapshotEvery
		if chunk > remaining {
			chunk = remaining
		}
		if err := sim.RunFor(chunk, cfg.TickSeconds); err != nil {
			return err
		}
		remaining -= chunk

		snap := persistence.FromState(sim.State(), sim.Definitions())
		if err := store.RecordSnapshot(runID, sim.State().ElapsedTime, snap); err != nil {
			return err
		}
	}
	return nil
}

func printFinalState(sim *engine.Simulator) {
	state := sim.State()

	fmt.Println("📊 Final State:")
	fmt.Printf("   Cookies: %s (earned %s lifetime)\n",
		humanize.SIWithDigits(state.Cookies, 2, ""),
		humanize.SIWithDigits(state.CookiesEarnedTotal, 2, ""))
	fmt.Printf("   CPS: %s   Click power: %s   Prestige: %d\n",
		humanize.SIWithDigits(state.CPS, 2, ""),
		humanize.SIWithDigits(state.ClickPower, 2, ""),
		state.PrestigeLevel)
	fmt.Printf("   Elapsed: %s   Buildings: %d\n\n", formatDuration(state.ElapsedTime), state.TotalBuildings())
}

func printBreakdown(sim *engine.Simulator) {
	state := sim.State()
	breakdown := sim.Breakdown()
	defs := sim.Definitions()

	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"Building", "Owned", "Next Price", "CPS", "Share"}),
	)

	total := state.CPS
	for i, b := range defs.Buildings {
		count := state.OwnedCount(i)
		if count == 0 {
			continue
		}
		cps := breakdown[b.ID]
		share := 0.0
		if total > 0 {
			share = cps / total * 100
		}
		_ = table.Append([]string{
			b.Name,
			fmt.Sprintf("%d", count),
			humanize.SIWithDigits(sim.CurrentPrice(i), 2, ""),
			humanize.SIWithDigits(cps, 2, ""),
			fmt.Sprintf("%.1f%%", share),
		})
	}
	_ = table.Render()
}

func printRecommendations(sim *engine.Simulator) {
	options := sim.Recommendations(5)
	if len(options) == 0 {
		return
	}

	fmt.Println("\n💡 Next best purchases:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Kind", "Name", "Price", "CPS Gain", "Payback"}),
	)
	for i, o := range options {
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			o.Kind.String(),
			o.Name,
			humanize.SIWithDigits(o.Price, 2, ""),
			humanize.SIWithDigits(o.CPSGain, 3, ""),
			formatDuration(o.PaybackSeconds()),
		})
	}
	_ = table.Render()
}

func formatDuration(seconds float64) string {
	if math.IsInf(seconds, 1) || math.IsNaN(seconds) || seconds > 1e15 {
		return "never"
	}
	s := int64(seconds)
	hours := s / 3600
	minutes := (s % 3600) / 60
	secs := s % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
