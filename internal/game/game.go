// Package game wires the config file, the JSON stores and the market
// simulator into the object the front-ends drive.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zappabad/marketsim/internal/achievement"
	"github.com/zappabad/marketsim/internal/market"
	"github.com/zappabad/marketsim/internal/news"
	"github.com/zappabad/marketsim/internal/portfolio"
	"github.com/zappabad/marketsim/internal/stock"
)

// ErrUnknownAction is returned by Execute for anything but buy, sell, short or cover.
var ErrUnknownAction = errors.New("unknown action")

// Action is a trade command.
type Action string

const (
	ActionBuy   Action = "buy"
	ActionSell  Action = "sell"
	ActionShort Action = "short"
	ActionCover Action = "cover"
)

// Actions lists the accepted trade commands.
func Actions() []Action {
	return []Action{ActionBuy, ActionSell, ActionShort, ActionCover}
}

// Game owns the stores and the simulator for one session.
type Game struct {
	Market *market.Simulator

	cfg          Config
	stocks       *stock.Store
	news         *news.Store
	achievements *achievement.Manager
}

// New builds a game from cfg. Missing data files are bootstrapped with
// their defaults.
func New(cfg Config) *Game {
	g := &Game{
		cfg:    cfg,
		stocks: stock.NewStore(cfg.Path(cfg.Files.StocksFile)),
		news:   news.NewStore(cfg.Path(cfg.Files.NewsFile)),
	}
	g.achievements = achievement.NewManager(achievement.NewStore(cfg.Path(cfg.Files.AchievementsFile)))
	g.Market = market.New(cfg.MarketConfig(), g.stocks, g.news, g.achievements)

	slog.Info("game ready",
		"stocks", len(g.Market.Stocks()),
		"max_days", cfg.Game.MaxDays,
		"starting_cash", cfg.Game.StartingCash)
	return g
}

// Config returns the config the game was built from.
func (g *Game) Config() Config {
	return g.cfg
}

// Advance simulates one day. ok is false once the game is over.
func (g *Game) Advance() (market.DayResult, bool) {
	if !g.Market.SimulateDay() {
		return market.DayResult{}, false
	}
	return g.Market.LastDay(), true
}

// Execute runs a trade command from raw user input.
func (g *Game) Execute(action, symbol, shares string) (portfolio.Transaction, error) {
	var fn func(string, int) (portfolio.Transaction, error)
	switch Action(strings.ToLower(strings.TrimSpace(action))) {
	case ActionBuy:
		fn = g.Market.Buy
	case ActionSell:
		fn = g.Market.Sell
	case ActionShort:
		fn = g.Market.Short
	case ActionCover:
		fn = g.Market.Cover
	default:
		return portfolio.Transaction{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	n, err := portfolio.ParseShares(shares)
	if err != nil {
		return portfolio.Transaction{}, err
	}
	return fn(symbol, n)
}

// Reset restarts the market, keeping the portfolio unless resetPortfolio.
func (g *Game) Reset(resetPortfolio bool) bool {
	return g.Market.Reset(resetPortfolio)
}

// AddCustomStock adds a stock to the market and appends it to the stocks file.
func (g *Game) AddCustomStock(cfg stock.Config) error {
	if err := g.Market.AddStock(cfg); err != nil {
		return err
	}
	added, _ := g.Market.Stock(strings.ToUpper(strings.TrimSpace(cfg.Symbol)))
	cfgs := append(g.stocks.Load(), added.Config)
	if err := g.stocks.Save(cfgs); err != nil {
		return fmt.Errorf("save stocks: %w", err)
	}
	return nil
}

// Summary values the portfolio at current prices.
func (g *Game) Summary() portfolio.Summary {
	return g.Market.Portfolio().Summary(g.Market.Prices())
}

// FinalEvaluation rates the game so far.
func (g *Game) FinalEvaluation() portfolio.Evaluation {
	return g.Market.Portfolio().FinalEvaluation()
}

// RestoreDefaults rewrites the stock and news files with the built-in
// catalogs, dropping custom stocks. With achievements set, every
// achievement is locked again too.
func RestoreDefaults(cfg Config, achievements bool) error {
	if err := stock.NewStore(cfg.Path(cfg.Files.StocksFile)).Save(stock.Defaults()); err != nil {
		return fmt.Errorf("restore stocks: %w", err)
	}
	if err := news.NewStore(cfg.Path(cfg.Files.NewsFile)).Save(news.DefaultTemplates()); err != nil {
		return fmt.Errorf("restore news: %w", err)
	}
	if achievements {
		if err := achievement.NewStore(cfg.Path(cfg.Files.AchievementsFile)).Save(achievement.Catalog()); err != nil {
			return fmt.Errorf("restore achievements: %w", err)
		}
	}
	slog.Info("data files restored", "achievements", achievements)
	return nil
}
