package market

import (
	"math/rand"

	"github.com/shopspring/decimal"
)

// Config holds the simulator settings.
type Config struct {
	MaxDays      int
	StartingCash decimal.Decimal
	// NewsEventChance and StockNewsChance are daily probabilities in [0,1].
	NewsEventChance  float64
	StockNewsChance  float64
	MarketVolatility float64 // stddev multiplier of the daily sector draw
	// Rand drives every random draw. Nil means a time-seeded source.
	Rand *rand.Rand
}

// DefaultConfig returns a 30-day game with $10,000.
func DefaultConfig() Config {
	return Config{
		MaxDays:          30,
		StartingCash:     decimal.NewFromInt(10000),
		NewsEventChance:  0.3,
		StockNewsChance:  0.2,
		MarketVolatility: 1.0,
	}
}
