package market

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/zappabad/marketsim/internal/achievement"
	"github.com/zappabad/marketsim/internal/news"
	"github.com/zappabad/marketsim/internal/stock"
)

// DecayRate scales an ongoing event's impact each day after the first.
const DecayRate = 0.8

var (
	ErrUnknownStock   = errors.New("unknown stock")
	ErrDuplicateStock = errors.New("stock already exists")
	ErrInvalidStock   = errors.New("invalid stock")
)

// StockSource supplies the stock catalog on construction and reset.
type StockSource interface {
	Load() []stock.Config
}

// TemplateSource supplies the news templates on construction and reset.
type TemplateSource interface {
	Load() news.Templates
}

// OngoingEvent is a multi-day market event still acting on sectors.
type OngoingEvent struct {
	Event         news.MarketEvent
	DaysRemaining int
	ImpactFactor  float64
}

// Dividend is one payout credited to the portfolio.
type Dividend struct {
	Symbol   string
	Name     string
	PerShare float64
	Shares   int
	Amount   decimal.Decimal
}

// DayResult records what happened on one simulated day.
type DayResult struct {
	Day            int
	SectorMovement map[stock.Sector]float64
	MarketNews     *news.MarketEvent
	StockNews      *news.StockEvent
	Dividends      []Dividend
	Unlocked       []achievement.Achievement
	NetWorth       decimal.Decimal
}
