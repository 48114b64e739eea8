// Package stock models a single simulated instrument: its price series,
// volatility model and dividend schedule.
package stock

import (
	"math/rand"
)

const (
	// MinPrice is the floor every price update clamps to.
	MinPrice = 0.1
	// NoDividend marks a stock that never pays.
	NoDividend = -1

	minDividendGap = 5
	maxDividendGap = 10
)

// Stock is a live instrument owned by the market simulator.
type Stock struct {
	Config

	// History holds every price, oldest first. History[len-1] == Price.
	History         []float64
	NextDividendDay int

	rng *rand.Rand
}

// New creates a stock from its config. Dividend payers get their first
// payout scheduled within [5,10] days.
func New(cfg Config, rng *rand.Rand) *Stock {
	if cfg.Price < MinPrice {
		cfg.Price = MinPrice
	}
	s := &Stock{
		Config:          cfg,
		History:         []float64{cfg.Price},
		NextDividendDay: NoDividend,
		rng:             rng,
	}
	if cfg.PaysDividend {
		s.NextDividendDay = s.dividendGap()
	}
	return s
}

// UpdatePrice moves the price by a normal draw with mean 0 and stddev
// Volatility, plus sectorInfluence, both in percent.
func (s *Stock) UpdatePrice(sectorInfluence float64) {
	change := s.rng.NormFloat64()*s.Volatility + sectorInfluence
	s.apply(change)
}

// ApplyShock moves the price by changePct with no random component.
func (s *Stock) ApplyShock(changePct float64) {
	s.apply(changePct)
}

func (s *Stock) apply(changePct float64) {
	price := s.Price * (1 + changePct/100)
	if price < MinPrice {
		price = MinPrice
	}
	s.Price = price
	s.History = append(s.History, price)
}

// CheckDividend returns the per-share dividend if today is a payout day and
// reschedules the next one. It returns 0 on every other day.
func (s *Stock) CheckDividend(currentDay int) float64 {
	if !s.PaysDividend || currentDay != s.NextDividendDay {
		return 0
	}
	dividend := s.Price * s.DividendYield / 100
	s.NextDividendDay = currentDay + s.dividendGap()
	return dividend
}

// Change returns the percent change over the last update, or 0 before the first.
func (s *Stock) Change() float64 {
	n := len(s.History)
	if n < 2 || s.History[n-2] == 0 {
		return 0
	}
	return (s.History[n-1] - s.History[n-2]) / s.History[n-2] * 100
}

func (s *Stock) dividendGap() int {
	return minDividendGap + s.rng.Intn(maxDividendGap-minDividendGap+1)
}
