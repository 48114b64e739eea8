package news

// Config holds the daily news odds.
type Config struct {
	// MarketChance is the probability of a market-wide headline per day.
	MarketChance float64
	// StockChance is the probability of a stock-specific headline per day.
	StockChance float64
}

// DefaultConfig returns a Config with the standard odds.
func DefaultConfig() Config {
	return Config{
		MarketChance: 0.3,
		StockChance:  0.2,
	}
}
