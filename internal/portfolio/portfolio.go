// Package portfolio is the cash and position ledger. Every trade validates
// first and mutates only on success, so a failed call leaves no trace.
package portfolio

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Portfolio holds cash, signed positions (negative = short) and history.
type Portfolio struct {
	cash         decimal.Decimal
	startingCash decimal.Decimal
	positions    map[string]int
	transactions []Transaction
	netWorth     []decimal.Decimal
}

// New creates a portfolio with the given starting cash.
func New(startingCash decimal.Decimal) *Portfolio {
	return &Portfolio{
		cash:         startingCash,
		startingCash: startingCash,
		positions:    make(map[string]int),
		netWorth:     []decimal.Decimal{startingCash},
	}
}

// ParseShares turns user input into a positive whole share count.
func ParseShares(s string) (int, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if err := validShares(n); err != nil {
			return 0, err
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || f < 1 || f > MaxShares {
		return 0, fmt.Errorf("%w: %q", ErrInvalidShares, s)
	}
	return int(f), nil
}

// MaxShares caps a single trade so positions cannot overflow.
const MaxShares = math.MaxInt32

func validShares(n int) error {
	if n <= 0 || n > MaxShares {
		return fmt.Errorf("%w: %d", ErrInvalidShares, n)
	}
	return nil
}

// Buy opens or adds to a long position.
func (p *Portfolio) Buy(symbol string, shares int, price float64, day int) (Transaction, error) {
	if err := validShares(shares); err != nil {
		return Transaction{}, err
	}
	px := decimal.NewFromFloat(price)
	cost := px.Mul(decimal.NewFromInt(int64(shares)))
	if cost.GreaterThan(p.cash) {
		return Transaction{}, fmt.Errorf("%w: need $%s, have $%s", ErrInsufficientCash, cost.StringFixed(2), p.cash.StringFixed(2))
	}

	p.cash = p.cash.Sub(cost)
	p.adjust(symbol, shares)
	return p.record(day, TxBuy, symbol, shares, px, cost), nil
}

// Sell closes some or all of a long position. Short or absent positions
// have nothing to sell.
func (p *Portfolio) Sell(symbol string, shares int, price float64, day int) (Transaction, error) {
	if err := validShares(shares); err != nil {
		return Transaction{}, err
	}
	held := p.positions[symbol]
	if held < shares {
		return Transaction{}, fmt.Errorf("%w: have %d %s, want to sell %d", ErrInsufficientShares, max(held, 0), symbol, shares)
	}

	px := decimal.NewFromFloat(price)
	proceeds := px.Mul(decimal.NewFromInt(int64(shares)))
	p.cash = p.cash.Add(proceeds)
	p.adjust(symbol, -shares)
	return p.record(day, TxSell, symbol, shares, px, proceeds), nil
}

// Short borrows and sells shares. Borrowing is always available.
func (p *Portfolio) Short(symbol string, shares int, price float64, day int) (Transaction, error) {
	if err := validShares(shares); err != nil {
		return Transaction{}, err
	}

	px := decimal.NewFromFloat(price)
	proceeds := px.Mul(decimal.NewFromInt(int64(shares)))
	p.cash = p.cash.Add(proceeds)
	p.adjust(symbol, -shares)
	return p.record(day, TxShort, symbol, shares, px, proceeds), nil
}

// Cover buys back shorted shares.
func (p *Portfolio) Cover(symbol string, shares int, price float64, day int) (Transaction, error) {
	if err := validShares(shares); err != nil {
		return Transaction{}, err
	}
	held := p.positions[symbol]
	if held >= 0 {
		return Transaction{}, fmt.Errorf("%w in %s", ErrNoShortPosition, symbol)
	}
	if -held < shares {
		return Transaction{}, fmt.Errorf("%w: short %d %s, want to cover %d", ErrShortTooSmall, -held, symbol, shares)
	}
	px := decimal.NewFromFloat(price)
	cost := px.Mul(decimal.NewFromInt(int64(shares)))
	if cost.GreaterThan(p.cash) {
		return Transaction{}, fmt.Errorf("%w: need $%s, have $%s", ErrInsufficientCash, cost.StringFixed(2), p.cash.StringFixed(2))
	}

	p.cash = p.cash.Sub(cost)
	p.adjust(symbol, shares)
	return p.record(day, TxCover, symbol, shares, px, cost), nil
}

// CreditCash adds a positive amount to cash. Non-positive amounts are ignored.
func (p *Portfolio) CreditCash(amount decimal.Decimal) {
	if !amount.IsPositive() {
		return
	}
	p.cash = p.cash.Add(amount)
}

// AddDividendTransaction logs a dividend already credited via CreditCash.
func (p *Portfolio) AddDividendTransaction(day int, symbol string, amount decimal.Decimal) Transaction {
	return p.record(day, TxDividend, symbol, 0, decimal.Zero, amount)
}

// UpdateNetWorth marks every position to market, appends the result to the
// history and returns it. Symbols missing from prices count as zero.
func (p *Portfolio) UpdateNetWorth(prices map[string]float64) decimal.Decimal {
	nw := p.value(prices)
	p.netWorth = append(p.netWorth, nw)
	return nw
}

func (p *Portfolio) value(prices map[string]float64) decimal.Decimal {
	total := p.cash
	for sym, shares := range p.positions {
		price, ok := prices[sym]
		if !ok {
			slog.Debug("no price for position, valuing at zero", "symbol", sym, "shares", shares)
			continue
		}
		total = total.Add(decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(shares))))
	}
	return total
}

// Summary values the portfolio at prices without recording anything.
func (p *Portfolio) Summary(prices map[string]float64) Summary {
	holdings := make([]Holding, 0, len(p.positions))
	for _, sym := range p.symbols() {
		shares := p.positions[sym]
		px := decimal.Zero
		if price, ok := prices[sym]; ok {
			px = decimal.NewFromFloat(price)
		}
		holdings = append(holdings, Holding{
			Symbol: sym,
			Shares: shares,
			Price:  px,
			Value:  px.Mul(decimal.NewFromInt(int64(shares))),
		})
	}
	nw := p.value(prices)
	pl := nw.Sub(p.startingCash)
	return Summary{
		Cash:          p.cash,
		Holdings:      holdings,
		NetWorth:      nw,
		ProfitLoss:    pl,
		ProfitLossPct: p.pct(pl),
	}
}

// FinalEvaluation rates the latest recorded net worth against starting cash.
func (p *Portfolio) FinalEvaluation() Evaluation {
	final := p.NetWorth()
	profit := final.Sub(p.startingCash)
	ret := p.pct(profit)
	return Evaluation{
		StartingCash: p.startingCash,
		FinalValue:   final,
		Profit:       profit,
		ReturnPct:    ret,
		Rating:       Rating(ret),
	}
}

func (p *Portfolio) pct(amount decimal.Decimal) decimal.Decimal {
	if p.startingCash.IsZero() {
		return decimal.Zero
	}
	return amount.Div(p.startingCash).Mul(hundred)
}

func (p *Portfolio) adjust(symbol string, delta int) {
	n := p.positions[symbol] + delta
	if n == 0 {
		delete(p.positions, symbol)
		return
	}
	p.positions[symbol] = n
}

func (p *Portfolio) record(day int, typ TxType, symbol string, shares int, price, total decimal.Decimal) Transaction {
	tx := Transaction{
		ID:     uuid.New(),
		Day:    day,
		Type:   typ,
		Symbol: symbol,
		Shares: shares,
		Price:  price,
		Total:  total,
	}
	p.transactions = append(p.transactions, tx)
	return tx
}

func (p *Portfolio) symbols() []string {
	out := make([]string, 0, len(p.positions))
	for sym := range p.positions {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

func (p *Portfolio) Cash() decimal.Decimal         { return p.cash }
func (p *Portfolio) StartingCash() decimal.Decimal { return p.startingCash }

// Shares returns the signed position in symbol, 0 if none.
func (p *Portfolio) Shares(symbol string) int { return p.positions[symbol] }

// Positions returns a copy of the position map.
func (p *Portfolio) Positions() map[string]int {
	out := make(map[string]int, len(p.positions))
	for k, v := range p.positions {
		out[k] = v
	}
	return out
}

// Transactions returns a copy of the ledger, oldest first.
func (p *Portfolio) Transactions() []Transaction {
	return append([]Transaction(nil), p.transactions...)
}

// NetWorthHistory returns a copy of the recorded net worth series.
func (p *Portfolio) NetWorthHistory() []decimal.Decimal {
	return append([]decimal.Decimal(nil), p.netWorth...)
}

// NetWorth returns the most recently recorded net worth.
func (p *Portfolio) NetWorth() decimal.Decimal {
	return p.netWorth[len(p.netWorth)-1]
}
