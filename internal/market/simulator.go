// Package market runs the day-tick simulation: sector shocks, news,
// ongoing events, price updates, dividends and achievement checks.
package market

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zappabad/marketsim/internal/achievement"
	"github.com/zappabad/marketsim/internal/news"
	"github.com/zappabad/marketsim/internal/portfolio"
	"github.com/zappabad/marketsim/internal/stock"
)

// Simulator owns the stocks, the news generator, the portfolio and the
// achievement manager. It is not safe for concurrent use.
type Simulator struct {
	cfg Config
	rng *rand.Rand

	stockSrc    StockSource
	templateSrc TemplateSource

	stocks       map[string]*stock.Stock
	news         *news.Generator
	portfolio    *portfolio.Portfolio
	achievements *achievement.Manager
	ongoing      []OngoingEvent

	currentDay int
	last       DayResult
}

// New builds a simulator at day 0. A nil achievement manager is replaced by
// an in-memory one.
func New(cfg Config, stocks StockSource, templates TemplateSource, achievements *achievement.Manager) *Simulator {
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if cfg.MaxDays < 0 {
		cfg.MaxDays = 0
	}
	if achievements == nil {
		achievements = achievement.NewManager(nil)
	}
	s := &Simulator{
		cfg:          cfg,
		rng:          cfg.Rand,
		stockSrc:     stocks,
		templateSrc:  templates,
		portfolio:    portfolio.New(cfg.StartingCash),
		achievements: achievements,
	}
	s.load()
	return s
}

func (s *Simulator) load() {
	s.stocks = make(map[string]*stock.Stock)
	for _, c := range s.stockSrc.Load() {
		if _, dup := s.stocks[c.Symbol]; dup {
			slog.Warn("duplicate stock symbol, keeping first", "symbol", c.Symbol)
			continue
		}
		s.stocks[c.Symbol] = stock.New(c, s.rng)
	}
	s.news = news.NewGenerator(s.templateSrc.Load(), news.Config{
		MarketChance: s.cfg.NewsEventChance,
		StockChance:  s.cfg.StockNewsChance,
	}, s.rng)
}

// SimulateDay advances one day. It returns false, changing nothing, once
// the final day has been reached.
func (s *Simulator) SimulateDay() bool {
	if s.currentDay >= s.cfg.MaxDays {
		return false
	}
	s.currentDay++
	day := s.currentDay

	movement := make(map[stock.Sector]float64, len(stock.Sectors()))
	for _, sec := range stock.Sectors() {
		movement[sec] = s.rng.NormFloat64() * s.cfg.MarketVolatility
	}

	// Ongoing events go first so a new event is not decayed on its first day.
	s.applyOngoing(movement)

	marketNews := s.news.GenerateMarketNews(day)
	if marketNews != nil {
		applyImpact(movement, marketNews.Impact, 1.0)
		if marketNews.Ongoing() {
			s.ongoing = append(s.ongoing, OngoingEvent{
				Event:         *marketNews,
				DaysRemaining: marketNews.Duration - 1,
				ImpactFactor:  1.0,
			})
		}
	}

	stockNews := s.news.GenerateStockNews(day)
	hit := ""
	if stockNews != nil {
		if _, ok := s.stocks[stockNews.Impact.Symbol]; ok {
			hit = stockNews.Impact.Symbol
		} else {
			slog.Warn("stock news for unknown symbol", "symbol", stockNews.Impact.Symbol, "headline", stockNews.Headline)
		}
	}

	symbols := s.symbols()
	for _, sym := range symbols {
		st := s.stocks[sym]
		if sym == hit {
			st.ApplyShock(stockNews.Impact.Delta)
			continue
		}
		st.UpdatePrice(movement[st.Sector])
	}

	dividends := s.payDividends(day, symbols)
	netWorth := s.portfolio.UpdateNetWorth(s.Prices())

	unlocked := s.achievements.CheckAchievements(s, s.portfolio)
	for _, a := range unlocked {
		s.news.AddAchievementNews(day, a.Name, a.Description)
	}

	s.last = DayResult{
		Day:            day,
		SectorMovement: movement,
		MarketNews:     marketNews,
		StockNews:      stockNews,
		Dividends:      dividends,
		Unlocked:       unlocked,
		NetWorth:       netWorth,
	}
	slog.Debug("day simulated",
		"day", day,
		"net_worth", netWorth.StringFixed(2),
		"ongoing", len(s.ongoing),
		"dividends", len(dividends),
		"unlocked", len(unlocked))
	return true
}

// applyOngoing decays every ongoing event, adds its impact to movement and
// drops the ones that have run out.
func (s *Simulator) applyOngoing(movement map[stock.Sector]float64) {
	kept := s.ongoing[:0]
	for _, ev := range s.ongoing {
		ev.DaysRemaining--
		ev.ImpactFactor *= DecayRate
		applyImpact(movement, ev.Event.Impact, ev.ImpactFactor)
		if ev.DaysRemaining > 0 {
			kept = append(kept, ev)
		}
	}
	s.ongoing = kept
}

func applyImpact(movement map[stock.Sector]float64, impact news.Impact, factor float64) {
	switch imp := impact.(type) {
	case news.AllSectors:
		for sec := range movement {
			movement[sec] += imp.Delta * factor
		}
	case news.OneSector:
		movement[imp.Sector] += imp.Delta * factor
	}
}

// payDividends credits long holders only. Short positions neither receive
// nor owe dividends.
func (s *Simulator) payDividends(day int, symbols []string) []Dividend {
	var paid []Dividend
	for _, sym := range symbols {
		st := s.stocks[sym]
		perShare := st.CheckDividend(day)
		if perShare <= 0 {
			continue
		}
		held := s.portfolio.Shares(sym)
		if held <= 0 {
			continue
		}
		amount := decimal.NewFromFloat(perShare).Mul(decimal.NewFromInt(int64(held)))
		s.portfolio.CreditCash(amount)
		s.portfolio.AddDividendTransaction(day, sym, amount)
		s.news.AddDividendNews(day, st.Name, sym, amount.InexactFloat64())
		paid = append(paid, Dividend{Symbol: sym, Name: st.Name, PerShare: perShare, Shares: held, Amount: amount})
	}
	return paid
}

// Reset returns to day 0, reloads stocks and news templates and clears
// ongoing events. The portfolio is replaced only if resetPortfolio is set.
func (s *Simulator) Reset(resetPortfolio bool) bool {
	s.currentDay = 0
	s.ongoing = nil
	s.last = DayResult{}
	s.load()
	if resetPortfolio {
		s.portfolio = portfolio.New(s.cfg.StartingCash)
	}
	slog.Info("market reset", "reset_portfolio", resetPortfolio, "stocks", len(s.stocks))
	return true
}

// AddStock adds a custom stock to the running market.
func (s *Simulator) AddStock(cfg stock.Config) error {
	cfg.Symbol = strings.ToUpper(strings.TrimSpace(cfg.Symbol))
	cfg.Name = strings.TrimSpace(cfg.Name)
	switch {
	case cfg.Symbol == "":
		return fmt.Errorf("%w: empty symbol", ErrInvalidStock)
	case cfg.Name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidStock)
	case !cfg.Sector.Valid():
		return fmt.Errorf("%w: unknown sector %q", ErrInvalidStock, cfg.Sector)
	case cfg.Price <= 0:
		return fmt.Errorf("%w: price must be positive", ErrInvalidStock)
	case cfg.Volatility < 0:
		return fmt.Errorf("%w: volatility must not be negative", ErrInvalidStock)
	case cfg.PaysDividend && cfg.DividendYield <= 0:
		return fmt.Errorf("%w: dividend yield must be positive", ErrInvalidStock)
	}
	if _, ok := s.stocks[cfg.Symbol]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateStock, cfg.Symbol)
	}
	s.stocks[cfg.Symbol] = stock.New(cfg, s.rng)
	slog.Info("custom stock added", "symbol", cfg.Symbol, "sector", cfg.Sector, "price", cfg.Price)
	return nil
}

// Buy buys shares of symbol at the current price.
func (s *Simulator) Buy(symbol string, shares int) (portfolio.Transaction, error) {
	return s.trade(symbol, shares, s.portfolio.Buy)
}

// Sell sells shares of symbol at the current price.
func (s *Simulator) Sell(symbol string, shares int) (portfolio.Transaction, error) {
	return s.trade(symbol, shares, s.portfolio.Sell)
}

// Short shorts shares of symbol at the current price.
func (s *Simulator) Short(symbol string, shares int) (portfolio.Transaction, error) {
	return s.trade(symbol, shares, s.portfolio.Short)
}

// Cover covers shares of a short in symbol at the current price.
func (s *Simulator) Cover(symbol string, shares int) (portfolio.Transaction, error) {
	return s.trade(symbol, shares, s.portfolio.Cover)
}

type tradeFunc func(symbol string, shares int, price float64, day int) (portfolio.Transaction, error)

func (s *Simulator) trade(symbol string, shares int, fn tradeFunc) (portfolio.Transaction, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	st, ok := s.stocks[symbol]
	if !ok {
		return portfolio.Transaction{}, fmt.Errorf("%w: %s", ErrUnknownStock, symbol)
	}
	tx, err := fn(symbol, shares, st.Price, s.currentDay)
	if err != nil {
		return tx, err
	}
	slog.Info("trade", "type", tx.Type, "symbol", symbol, "shares", shares, "price", st.Price, "id", tx.ID)
	return tx, nil
}

func (s *Simulator) symbols() []string {
	out := make([]string, 0, len(s.stocks))
	for sym := range s.stocks {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func (s *Simulator) CurrentDay() int { return s.currentDay }
func (s *Simulator) MaxDays() int    { return s.cfg.MaxDays }
func (s *Simulator) Finished() bool  { return s.currentDay >= s.cfg.MaxDays }

// Stocks returns copies of every stock sorted by symbol.
func (s *Simulator) Stocks() []stock.Stock {
	out := make([]stock.Stock, 0, len(s.stocks))
	for _, sym := range s.symbols() {
		out = append(out, snapshot(s.stocks[sym]))
	}
	return out
}

// Stock returns a copy of the stock with symbol.
func (s *Simulator) Stock(symbol string) (stock.Stock, bool) {
	st, ok := s.stocks[strings.ToUpper(symbol)]
	if !ok {
		return stock.Stock{}, false
	}
	return snapshot(st), true
}

func snapshot(st *stock.Stock) stock.Stock {
	cp := *st
	cp.History = append([]float64(nil), st.History...)
	return cp
}

// Configs returns the persistable config of every stock, sorted by symbol.
func (s *Simulator) Configs() []stock.Config {
	out := make([]stock.Config, 0, len(s.stocks))
	for _, sym := range s.symbols() {
		out = append(out, s.stocks[sym].Config)
	}
	return out
}

// Prices returns the current price of every stock.
func (s *Simulator) Prices() map[string]float64 {
	out := make(map[string]float64, len(s.stocks))
	for sym, st := range s.stocks {
		out[sym] = st.Price
	}
	return out
}

// Feed returns the whole news feed, newest first.
func (s *Simulator) Feed() []news.FeedEntry {
	return s.news.Feed().Entries()
}

// LatestNews returns up to n feed entries, newest first.
func (s *Simulator) LatestNews(n int) []news.FeedEntry {
	return s.news.Feed().Latest(n)
}

// Portfolio returns the live portfolio. Trades must go through the
// simulator so prices and days stay consistent.
func (s *Simulator) Portfolio() *portfolio.Portfolio {
	return s.portfolio
}

// Achievements returns every achievement in catalog order.
func (s *Simulator) Achievements() []achievement.Achievement {
	return s.achievements.All()
}

// OngoingEvents returns a copy of the events still in effect.
func (s *Simulator) OngoingEvents() []OngoingEvent {
	return append([]OngoingEvent(nil), s.ongoing...)
}

// LastDay returns the result of the most recent SimulateDay.
func (s *Simulator) LastDay() DayResult {
	return s.last
}
