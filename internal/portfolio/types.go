package portfolio

import (
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TxType is the kind of ledger entry.
type TxType string

const (
	TxBuy      TxType = "BUY"
	TxSell     TxType = "SELL"
	TxShort    TxType = "SHORT"
	TxCover    TxType = "COVER"
	TxDividend TxType = "DIVIDEND"
)

var (
	ErrInvalidShares      = errors.New("invalid number of shares")
	ErrInsufficientCash   = errors.New("not enough cash")
	ErrInsufficientShares = errors.New("not enough shares")
	ErrNoShortPosition    = errors.New("no short position")
	ErrShortTooSmall      = errors.New("short position smaller than requested cover")
)

// Transaction is one append-only ledger record.
type Transaction struct {
	ID     uuid.UUID       `json:"id"`
	Day    int             `json:"day"`
	Type   TxType          `json:"type"`
	Symbol string          `json:"symbol"`
	Shares int             `json:"shares"`
	Price  decimal.Decimal `json:"price"`
	Total  decimal.Decimal `json:"total"`
}

// Holding is one summary row. Shares is negative for a short.
type Holding struct {
	Symbol string
	Shares int
	Price  decimal.Decimal
	Value  decimal.Decimal
}

// Short reports whether the holding is a short position.
func (h Holding) Short() bool {
	return h.Shares < 0
}

// Summary is a read-only snapshot of the portfolio at given prices.
type Summary struct {
	Cash          decimal.Decimal
	Holdings      []Holding
	NetWorth      decimal.Decimal
	ProfitLoss    decimal.Decimal
	ProfitLossPct decimal.Decimal
}

// Evaluation is the end-of-game verdict.
type Evaluation struct {
	StartingCash decimal.Decimal
	FinalValue   decimal.Decimal
	Profit       decimal.Decimal
	ReturnPct    decimal.Decimal
	Rating       string
}

type ratingTier struct {
	min   decimal.Decimal
	label string
}

// Ordered high to low; the last tier catches everything below.
var ratingTiers = []ratingTier{
	{decimal.NewFromInt(50), "Wall Street Legend"},
	{decimal.NewFromInt(20), "Expert Trader"},
	{decimal.NewFromInt(5), "Savvy Investor"},
	{decimal.NewFromInt(0), "Cautious Investor"},
	{decimal.NewFromInt(-10), "Novice Trader"},
}

const bottomRating = "Better Luck Next Time"

// Rating maps a total return percentage to its tier.
func Rating(returnPct decimal.Decimal) string {
	for _, tier := range ratingTiers {
		if returnPct.GreaterThanOrEqual(tier.min) {
			return tier.label
		}
	}
	return bottomRating
}
