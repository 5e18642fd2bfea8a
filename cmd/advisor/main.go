package main

import (
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/napolitain/clicker-sim/internal/analysis"
	"github.com/napolitain/clicker-sim/internal/engine"
	"github.com/napolitain/clicker-sim/internal/loader"
	"github.com/napolitain/clicker-sim/internal/models"
	"github.com/napolitain/clicker-sim/internal/persistence"
)

var (
	dataFile  string
	loadPath  string
	goal      float64
	topN      int
	clickRate float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "advisor",
		Short: "Cookie Economy Purchase Advisor",
		Long: `Ranks the next purchases for a saved game state, evaluates
ascension, and predicts the time to reach a cookie goal.`,
		Run: runAdvisor,
	}

	rootCmd.Flags().StringVarP(&dataFile, "data", "d", "", "Path to definitions JSON (default: built-in table)")
	rootCmd.Flags().StringVar(&loadPath, "load", "", "Snapshot file to advise on (default: fresh state)")
	rootCmd.Flags().Float64Var(&goal, "goal", 0, "Predict time to reach this lifetime cookie total (0 disables)")
	rootCmd.Flags().IntVarP(&topN, "top", "n", 10, "Number of purchase options to show")
	rootCmd.Flags().Float64Var(&clickRate, "click-rate", 0, "Assumed auto-click rate for predictions")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runAdvisor(cmd *cobra.Command, args []string) {
	titleColor := color.New(color.FgCyan, color.Bold)
	infoColor := color.New(color.FgYellow)

	titleColor.Println("\n╭───────────────────────────╮")
	titleColor.Println("│  Cookie Economy           │")
	titleColor.Println("│  Purchase Advisor         │")
	titleColor.Println("╰───────────────────────────╯")
	fmt.Println()

	var defs *models.Definitions
	var err error
	if dataFile == "" {
		defs = loader.DefaultDefinitions()
	} else {
		defs, err = loader.LoadDefinitions(dataFile)
		if err != nil {
			color.Red("Error loading definitions: %v", err)
			os.Exit(1)
		}
	}

	state := models.NewGameState(defs)
	if loadPath != "" {
		state, err = persistence.Load(loadPath, defs)
		if err != nil {
			color.Red("Error loading snapshot: %v", err)
			os.Exit(1)
		}
		infoColor.Printf("💾 Loaded %s: %s cookies, %s CPS, prestige %d\n\n",
			loadPath,
			humanize.SIWithDigits(state.Cookies, 2, ""),
			humanize.SIWithDigits(state.CPS, 2, ""),
			state.PrestigeLevel)
	}

	printOptions(defs, state)
	printAscension(defs, state)

	if goal > 0 {
		printGoal(defs, state)
	}
}

func printOptions(defs *models.Definitions, state *models.GameState) {
	optimizer := engine.NewOptimizer(defs, engine.NewProductionEngine(defs))
	options := optimizer.TopN(state, topN)

	fmt.Println("💡 Ranked purchases:")
	table := tablewriter.NewTable(os.Stdout,
		tablewriter.WithHeader([]string{"#", "Kind", "Name", "Price", "CPS Gain", "Efficiency", "Affordable"}),
	)
	for i, o := range options {
		affordable := ""
		if o.Price <= state.Cookies {
			affordable = "✓"
		}
		_ = table.Append([]string{
			fmt.Sprintf("%d", i+1),
			o.Kind.String(),
			o.Name,
			humanize.SIWithDigits(o.Price, 2, ""),
			humanize.SIWithDigits(o.CPSGain, 3, ""),
			fmt.Sprintf("%.3g", o.Efficiency),
			affordable,
		})
	}
	_ = table.Render()
}

func printAscension(defs *models.Definitions, state *models.GameState) {
	analyzer := newAnalyzer(defs)
	advice := analyzer.EvaluateAscension(state)

	fmt.Println("\n🔮 Ascension:")
	if advice.ShouldReset {
		color.Green("   Resetting now gains %d prestige level(s) (%d → %d)",
			advice.PrestigeGain, advice.CurrentLevel, advice.PotentialLevel)
	} else {
		fmt.Printf("   Not worth it: level %d, next level at %s lifetime cookies\n",
			advice.CurrentLevel, humanize.SIWithDigits(advice.NextLevelAt, 2, ""))
	}
}

func printGoal(defs *models.Definitions, state *models.GameState) {
	analyzer := newAnalyzer(defs)
	eta := analyzer.TimeToGoal(state, goal)

	fmt.Printf("\n🎯 Goal of %s lifetime cookies: ", humanize.SIWithDigits(goal, 2, ""))
	switch {
	case eta == 0:
		color.Green("already reached")
	case math.IsInf(eta, 1):
		color.Red("not reachable within a year")
	default:
		color.Green("~%s away", formatDuration(eta))
	}
}

func newAnalyzer(defs *models.Definitions) *analysis.Analyzer {
	cfg := models.DefaultSimConfig()
	cfg.AutoClickRate = clickRate
	return analysis.NewAnalyzer(defs, cfg)
}

func formatDuration(seconds float64) string {
	s := int64(seconds)
	days := s / 86400
	hours := (s % 86400) / 3600
	minutes := (s % 3600) / 60
	secs := s % 60
	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}
