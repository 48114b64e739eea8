// Package news draws market and stock headlines from a template catalog
// and keeps the day-stamped news feed.
package news

import (
	"fmt"
	"math/rand"
)

// Generator picks headlines and records everything newsworthy in its feed.
type Generator struct {
	cfg          Config
	marketEvents []MarketEvent
	stockEvents  []StockEvent
	feed         *Feed
	rng          *rand.Rand
}

// NewGenerator creates a generator over the given templates with an empty feed.
// Chances outside [0,1] fall back to DefaultConfig.
func NewGenerator(t Templates, cfg Config, rng *rand.Rand) *Generator {
	def := DefaultConfig()
	if cfg.MarketChance < 0 || cfg.MarketChance > 1 {
		cfg.MarketChance = def.MarketChance
	}
	if cfg.StockChance < 0 || cfg.StockChance > 1 {
		cfg.StockChance = def.StockChance
	}
	return &Generator{
		cfg:          cfg,
		marketEvents: append([]MarketEvent(nil), t.MarketNews...),
		stockEvents:  append([]StockEvent(nil), t.StockNews...),
		feed:         NewFeed(),
		rng:          rng,
	}
}

// GenerateMarketNews rolls for a market-wide headline. On a hit it picks one
// template uniformly (with replacement), posts it to the feed and returns it.
func (g *Generator) GenerateMarketNews(day int) *MarketEvent {
	if len(g.marketEvents) == 0 || g.rng.Float64() >= g.cfg.MarketChance {
		return nil
	}
	ev := g.marketEvents[g.rng.Intn(len(g.marketEvents))]
	g.feed.Add(FeedEntry{Day: day, Kind: KindMarket, Text: ev.Headline})
	return &ev
}

// GenerateStockNews rolls for a stock-specific headline independently of
// market news.
func (g *Generator) GenerateStockNews(day int) *StockEvent {
	if len(g.stockEvents) == 0 || g.rng.Float64() >= g.cfg.StockChance {
		return nil
	}
	ev := g.stockEvents[g.rng.Intn(len(g.stockEvents))]
	g.feed.Add(FeedEntry{Day: day, Kind: KindStock, Text: ev.Headline})
	return &ev
}

// AddDividendNews posts a dividend payout. amount is the total credited.
func (g *Generator) AddDividendNews(day int, name, symbol string, amount float64) {
	g.feed.Add(FeedEntry{
		Day:  day,
		Kind: KindDividend,
		Text: fmt.Sprintf("Received $%.2f in dividends from %s (%s)", amount, name, symbol),
	})
}

// AddAchievementNews posts an unlocked achievement.
func (g *Generator) AddAchievementNews(day int, name, description string) {
	g.feed.Add(FeedEntry{
		Day:  day,
		Kind: KindAchievement,
		Text: fmt.Sprintf("Achievement unlocked: %s - %s", name, description),
	})
}

// Feed returns the live feed.
func (g *Generator) Feed() *Feed {
	return g.feed
}

// Templates returns a copy of the catalog the generator draws from.
func (g *Generator) Templates() Templates {
	return Templates{
		MarketNews: append([]MarketEvent(nil), g.marketEvents...),
		StockNews:  append([]StockEvent(nil), g.stockEvents...),
	}
}
