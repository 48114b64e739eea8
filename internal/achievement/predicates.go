package achievement

import (
	"github.com/shopspring/decimal"

	"github.com/zappabad/marketsim/internal/portfolio"
)

// MarketState is the market view the predicates read.
type MarketState interface {
	CurrentDay() int
	MaxDays() int
}

// PortfolioState is the portfolio view the predicates read.
type PortfolioState interface {
	Transactions() []portfolio.Transaction
	Positions() map[string]int
	NetWorth() decimal.Decimal
	StartingCash() decimal.Decimal
}

type predicate func(m MarketState, p PortfolioState) bool

const (
	dayTraderTrades   = 10
	diversifiedCount  = 5
	weekOneDays       = 7
	monthOneDays      = 30
	bigSpenderTotal   = 10000
	dividendCollected = 100
)

var predicates = map[string]predicate{
	FirstTrade: func(_ MarketState, p PortfolioState) bool {
		return countTrades(p.Transactions(), func(portfolio.Transaction) bool { return true }) >= 1
	},
	DayTrader: func(m MarketState, p PortfolioState) bool {
		day := m.CurrentDay()
		return countTrades(p.Transactions(), func(tx portfolio.Transaction) bool { return tx.Day == day }) >= dayTraderTrades
	},
	BigSpender: func(_ MarketState, p PortfolioState) bool {
		limit := decimal.NewFromInt(bigSpenderTotal)
		return countTrades(p.Transactions(), func(tx portfolio.Transaction) bool { return tx.Total.GreaterThanOrEqual(limit) }) > 0
	},
	Diversified: func(_ MarketState, p PortfolioState) bool {
		return len(p.Positions()) >= diversifiedCount
	},
	Profit10:   returnAtLeast(10),
	Profit50:   returnAtLeast(50),
	Doubled:    returnAtLeast(100),
	PaperHands: func(_ MarketState, p PortfolioState) bool { return returnPct(p).LessThanOrEqual(decimal.NewFromInt(-25)) },
	WeekOne:    func(m MarketState, _ PortfolioState) bool { return m.CurrentDay() >= weekOneDays },
	MonthOne:   func(m MarketState, _ PortfolioState) bool { return m.CurrentDay() >= monthOneDays },
	FinishLine: func(m MarketState, _ PortfolioState) bool { return m.CurrentDay() == m.MaxDays() },
	ShortSeller: func(_ MarketState, p PortfolioState) bool {
		for _, tx := range p.Transactions() {
			if tx.Type == portfolio.TxShort {
				return true
			}
		}
		return false
	},
	DividendCollector: func(_ MarketState, p PortfolioState) bool {
		sum := decimal.Zero
		for _, tx := range p.Transactions() {
			if tx.Type == portfolio.TxDividend {
				sum = sum.Add(tx.Total)
			}
		}
		return sum.GreaterThanOrEqual(decimal.NewFromInt(dividendCollected))
	},
}

// countTrades counts non-dividend transactions matching keep.
func countTrades(txs []portfolio.Transaction, keep func(portfolio.Transaction) bool) int {
	n := 0
	for _, tx := range txs {
		if tx.Type != portfolio.TxDividend && keep(tx) {
			n++
		}
	}
	return n
}

func returnPct(p PortfolioState) decimal.Decimal {
	start := p.StartingCash()
	if !start.IsPositive() {
		return decimal.Zero
	}
	return p.NetWorth().Sub(start).Div(start).Mul(decimal.NewFromInt(100))
}

func returnAtLeast(pct int64) predicate {
	return func(_ MarketState, p PortfolioState) bool {
		return returnPct(p).GreaterThanOrEqual(decimal.NewFromInt(pct))
	}
}
