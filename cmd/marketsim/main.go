package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zappabad/marketsim/internal/game"
	"github.com/zappabad/marketsim/internal/logger"
	"github.com/zappabad/marketsim/internal/market"
	"github.com/zappabad/marketsim/tui"
	"github.com/zappabad/marketsim/tui/styles"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "marketsim",
		Short:         "Turn-based stock market simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(configPath)
		},
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "Configuration file path")

	rootCmd.AddCommand(newPlayCmd(&configPath))
	rootCmd.AddCommand(newSimulateCmd(&configPath))
	rootCmd.AddCommand(newResetCmd(&configPath))
	return rootCmd
}

// loadConfig reads the config file and points the logger at the configured
// log file. quiet keeps records off stderr. The caller closes the log file.
func loadConfig(path string, quiet bool) (game.Config, io.Closer) {
	cfg := game.LoadConfig(path)
	_, closer := logger.Setup(logger.Options{
		File:       cfg.Path(cfg.Log.File),
		MaxSizeMB:  int64(cfg.Log.MaxSizeMB),
		MaxBackups: cfg.Log.MaxBackups,
		Level:      cfg.Log.Level,
		Quiet:      quiet,
	})
	return cfg, closer
}

func newPlayCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start the interactive terminal game",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(*configPath)
		},
	}
}

func runPlay(configPath string) error {
	cfg, logFile := loadConfig(configPath, true)
	defer logFile.Close()
	g := game.New(cfg)

	p := tea.NewProgram(tui.NewModel(g), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	eval := g.FinalEvaluation()
	fmt.Printf("Day %d/%d  net worth %s  (%s)\n",
		g.Market.CurrentDay(), g.Market.MaxDays(), styles.FormatMoney(eval.FinalValue), eval.Rating)
	return nil
}

func newSimulateCmd(configPath *string) *cobra.Command {
	var (
		days int
		seed int64
	)
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the market headlessly and print a report",
		Long: `Advance the market day by day without trading and print the final report.
Example: marketsim simulate --days 30 --seed 42`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logFile := loadConfig(*configPath, false)
			defer logFile.Close()
			if days > 0 {
				cfg.Game.MaxDays = days
			}
			if seed != 0 {
				cfg.Seed = seed
			}
			g := game.New(cfg)

			var results []market.DayResult
			for {
				res, ok := g.Advance()
				if !ok {
					break
				}
				results = append(results, res)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderReport(g, results))
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "Days to simulate (config max_days if 0)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (time-based if 0)")
	return cmd
}

func renderReport(g *game.Game, results []market.DayResult) string {
	var b strings.Builder
	b.WriteString(styles.RenderTitle("Simulation Report", false))
	b.WriteString("\n\n")

	for _, res := range results {
		line := fmt.Sprintf("Day %2d  %s", res.Day, styles.FormatMoney(res.NetWorth))
		if res.MarketNews != nil {
			line += "  " + res.MarketNews.Headline
		}
		if res.StockNews != nil {
			line += "  " + res.StockNews.Headline
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	for _, st := range g.Market.Stocks() {
		b.WriteString(fmt.Sprintf("%-6s %10.2f  %s\n", st.Symbol, st.Price, styles.FormatChange(st.Change())))
	}

	eval := g.FinalEvaluation()
	b.WriteString(fmt.Sprintf("\nStarting cash: %s\nFinal value:   %s\nReturn:        %s%%\n",
		styles.FormatMoney(eval.StartingCash),
		styles.FormatMoney(eval.FinalValue),
		styles.SignedStyle(eval.Profit).Render(eval.ReturnPct.StringFixed(2))))
	b.WriteString(styles.RatingStyle.Render(eval.Rating))

	return styles.ReportBoxStyle.Render(b.String())
}

func newResetCmd(configPath *string) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore the stock and news files to the built-in defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logFile := loadConfig(*configPath, false)
			defer logFile.Close()
			if err := game.RestoreDefaults(cfg, all); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Data files restored.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Also lock every achievement again")
	return cmd
}
