package news

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zappabad/marketsim/internal/stock"
)

// AllSectorsKey is the wire value of "sector" for market-wide impact.
const AllSectorsKey = "all"

// ErrInvalidImpact is returned when an impact object names neither a sector nor a stock.
var ErrInvalidImpact = errors.New("invalid news impact")

// Impact is where a news event lands and by how much, in percent.
// It is one of AllSectors, OneSector or OneStock.
type Impact interface {
	Change() float64
	isImpact()
}

// AllSectors moves every sector.
type AllSectors struct {
	Delta float64
}

// OneSector moves a single sector.
type OneSector struct {
	Sector stock.Sector
	Delta  float64
}

// OneStock moves a single stock directly.
type OneStock struct {
	Symbol string
	Delta  float64
}

func (i AllSectors) Change() float64 { return i.Delta }
func (i OneSector) Change() float64  { return i.Delta }
func (i OneStock) Change() float64   { return i.Delta }

func (AllSectors) isImpact() {}
func (OneSector) isImpact()  {}
func (OneStock) isImpact()   {}

// impactJSON is the on-disk shape: {"sector": "all"|name, "change": n} or {"stock": sym, "change": n}.
type impactJSON struct {
	Sector string  `json:"sector,omitempty"`
	Stock  string  `json:"stock,omitempty"`
	Change float64 `json:"change"`
}

func encodeImpact(i Impact) (impactJSON, error) {
	switch v := i.(type) {
	case AllSectors:
		return impactJSON{Sector: AllSectorsKey, Change: v.Delta}, nil
	case OneSector:
		return impactJSON{Sector: string(v.Sector), Change: v.Delta}, nil
	case OneStock:
		if v.Symbol == "" {
			return impactJSON{}, fmt.Errorf("%w: missing stock", ErrInvalidImpact)
		}
		return impactJSON{Stock: v.Symbol, Change: v.Delta}, nil
	default:
		return impactJSON{}, fmt.Errorf("%w: %T", ErrInvalidImpact, i)
	}
}

func decodeImpact(raw impactJSON) (Impact, error) {
	switch {
	case raw.Stock != "":
		return OneStock{Symbol: raw.Stock, Delta: raw.Change}, nil
	case raw.Sector == AllSectorsKey:
		return AllSectors{Delta: raw.Change}, nil
	case raw.Sector != "":
		return OneSector{Sector: stock.Sector(raw.Sector), Delta: raw.Change}, nil
	default:
		return nil, ErrInvalidImpact
	}
}

// MarketEvent is a market-wide or sector-wide news template.
// Duration > 1 makes it an ongoing event that keeps acting on later days.
type MarketEvent struct {
	Headline string
	Impact   Impact // AllSectors or OneSector
	Duration int
}

type marketEventJSON struct {
	Headline string     `json:"headline"`
	Impact   impactJSON `json:"impact"`
	Duration int        `json:"duration,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (e MarketEvent) MarshalJSON() ([]byte, error) {
	imp, err := encodeImpact(e.Impact)
	if err != nil {
		return nil, err
	}
	return json.Marshal(marketEventJSON{Headline: e.Headline, Impact: imp, Duration: e.Duration})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *MarketEvent) UnmarshalJSON(b []byte) error {
	var raw marketEventJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	imp, err := decodeImpact(raw.Impact)
	if err != nil {
		return fmt.Errorf("market news %q: %w", raw.Headline, err)
	}
	if _, ok := imp.(OneStock); ok {
		return fmt.Errorf("market news %q: %w: stock impact", raw.Headline, ErrInvalidImpact)
	}
	*e = MarketEvent{Headline: raw.Headline, Impact: imp, Duration: raw.Duration}
	return nil
}

// Ongoing reports whether the event spans more than one day.
func (e MarketEvent) Ongoing() bool {
	return e.Duration > 1
}

// StockEvent is a news template that hits one stock directly.
type StockEvent struct {
	Headline string
	Impact   OneStock
}

type stockEventJSON struct {
	Headline string     `json:"headline"`
	Impact   impactJSON `json:"impact"`
}

// MarshalJSON implements json.Marshaler.
func (e StockEvent) MarshalJSON() ([]byte, error) {
	imp, err := encodeImpact(e.Impact)
	if err != nil {
		return nil, err
	}
	return json.Marshal(stockEventJSON{Headline: e.Headline, Impact: imp})
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *StockEvent) UnmarshalJSON(b []byte) error {
	var raw stockEventJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	if raw.Impact.Stock == "" {
		return fmt.Errorf("stock news %q: %w: missing stock", raw.Headline, ErrInvalidImpact)
	}
	*e = StockEvent{
		Headline: raw.Headline,
		Impact:   OneStock{Symbol: raw.Impact.Stock, Delta: raw.Impact.Change},
	}
	return nil
}

// Templates is the full news definitions file.
type Templates struct {
	MarketNews []MarketEvent `json:"market_news"`
	StockNews  []StockEvent  `json:"stock_news"`
}

// Kind tags a feed entry.
type Kind int

const (
	KindMarket Kind = iota
	KindStock
	KindDividend
	KindAchievement
)

func (k Kind) String() string {
	switch k {
	case KindMarket:
		return "MARKET"
	case KindStock:
		return "STOCK"
	case KindDividend:
		return "DIVIDEND"
	case KindAchievement:
		return "ACHIEVEMENT"
	default:
		return "UNKNOWN"
	}
}

// FeedEntry is one line of the news feed.
type FeedEntry struct {
	Day  int
	Kind Kind
	Text string
}

// String renders the entry with its day stamp.
func (e FeedEntry) String() string {
	return fmt.Sprintf("Day %d: %s", e.Day, e.Text)
}
