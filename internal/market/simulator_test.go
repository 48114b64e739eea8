package market

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/marketsim/internal/achievement"
	"github.com/zappabad/marketsim/internal/news"
	"github.com/zappabad/marketsim/internal/portfolio"
	"github.com/zappabad/marketsim/internal/stock"
)

type stockList []stock.Config

func (l stockList) Load() []stock.Config { return append([]stock.Config(nil), l...) }

type templateSet news.Templates

func (t templateSet) Load() news.Templates { return news.Templates(t) }

func quietConfig(seed int64) Config {
	cfg := DefaultConfig()
	cfg.MarketVolatility = 0
	cfg.NewsEventChance = 0
	cfg.StockNewsChance = 0
	cfg.Rand = rand.New(rand.NewSource(seed))
	return cfg
}

func flat(symbol string, sector stock.Sector) stock.Config {
	return stock.Config{Name: symbol + " Inc", Symbol: symbol, Price: 100, Volatility: 0, Sector: sector}
}

func defaultSim(maxDays int, seed int64) *Simulator {
	cfg := DefaultConfig()
	cfg.MaxDays = maxDays
	cfg.Rand = rand.New(rand.NewSource(seed))
	return New(cfg, stockList(stock.Defaults()), templateSet(news.DefaultTemplates()), nil)
}

func TestSimulateDayStopsAtMaxDays(t *testing.T) {
	s := defaultSim(5, 1)

	for i := 1; i <= 5; i++ {
		require.True(t, s.SimulateDay(), "day %d", i)
		assert.Equal(t, i, s.CurrentDay())
	}
	assert.True(t, s.Finished())

	before := s.Prices()
	assert.False(t, s.SimulateDay())
	assert.Equal(t, 5, s.CurrentDay())
	assert.Equal(t, before, s.Prices())

	for _, st := range s.Stocks() {
		assert.Len(t, st.History, 6, st.Symbol)
		assert.Equal(t, st.Price, st.History[len(st.History)-1])
	}
	assert.Len(t, s.Portfolio().NetWorthHistory(), 6)
}

func TestPricesNeverBelowFloor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDays = 300
	cfg.MarketVolatility = 25
	cfg.NewsEventChance = 1
	cfg.StockNewsChance = 1
	cfg.Rand = rand.New(rand.NewSource(3))
	s := New(cfg, stockList(stock.Defaults()), templateSet(news.DefaultTemplates()), nil)

	for s.SimulateDay() {
		for _, st := range s.Stocks() {
			require.GreaterOrEqual(t, st.Price, stock.MinPrice)
		}
	}
	for _, st := range s.Stocks() {
		assert.Len(t, st.History, 301)
	}
}

func TestSameSeedSameMarket(t *testing.T) {
	a := defaultSim(20, 99)
	b := defaultSim(20, 99)
	for a.SimulateDay() {
		b.SimulateDay()
	}
	assert.Equal(t, a.Prices(), b.Prices())
	assert.Equal(t, a.Feed(), b.Feed())
}

func TestOngoingEventDecay(t *testing.T) {
	s := New(quietConfig(1), stockList{flat("AAA", stock.SectorEnergy)}, templateSet{}, nil)
	s.ongoing = []OngoingEvent{{
		Event:         news.MarketEvent{Headline: "x", Impact: news.AllSectors{Delta: 10}, Duration: 3},
		DaysRemaining: 2,
		ImpactFactor:  1,
	}}

	var impacts []float64
	for len(s.ongoing) > 0 {
		movement := map[stock.Sector]float64{stock.SectorEnergy: 0}
		s.applyOngoing(movement)
		impacts = append(impacts, movement[stock.SectorEnergy])
	}

	require.Len(t, impacts, 2)
	assert.InDelta(t, 8.0, impacts[0], 1e-9)
	assert.InDelta(t, 6.4, impacts[1], 1e-9)
	assert.Less(t, impacts[1], impacts[0])
	assert.Empty(t, s.ongoing)
}

func TestMultiDayEventLifecycle(t *testing.T) {
	cfg := quietConfig(1)
	cfg.NewsEventChance = 1
	tpl := templateSet{MarketNews: []news.MarketEvent{
		{Headline: "Boom", Impact: news.AllSectors{Delta: 10}, Duration: 3},
	}}
	s := New(cfg, stockList{flat("AAA", stock.SectorEnergy)}, tpl, nil)

	require.True(t, s.SimulateDay())
	st, _ := s.Stock("AAA")
	assert.InDelta(t, 110.0, st.Price, 1e-9)
	ongoing := s.OngoingEvents()
	require.Len(t, ongoing, 1)
	assert.Equal(t, 2, ongoing[0].DaysRemaining)
	assert.Equal(t, 1.0, ongoing[0].ImpactFactor)

	// day 2: 10*0.8 from day one's event plus a fresh 10
	require.True(t, s.SimulateDay())
	st, _ = s.Stock("AAA")
	assert.InDelta(t, 129.8, st.Price, 1e-9)
	assert.Len(t, s.OngoingEvents(), 2)

	// day 3: 6.4 + 8 + 10, and day one's event expires
	require.True(t, s.SimulateDay())
	st, _ = s.Stock("AAA")
	assert.InDelta(t, 129.8*1.244, st.Price, 1e-9)
	ongoing = s.OngoingEvents()
	require.Len(t, ongoing, 2)
	assert.Equal(t, 1, ongoing[0].DaysRemaining)
	assert.InDelta(t, 0.8, ongoing[0].ImpactFactor, 1e-12)
	assert.Equal(t, 2, ongoing[1].DaysRemaining)
}

func TestSingleDayEventIsNotRegistered(t *testing.T) {
	cfg := quietConfig(1)
	cfg.NewsEventChance = 1
	tpl := templateSet{MarketNews: []news.MarketEvent{
		{Headline: "Blip", Impact: news.OneSector{Sector: stock.SectorEnergy, Delta: -5}},
	}}
	s := New(cfg, stockList{flat("AAA", stock.SectorEnergy), flat("BBB", stock.SectorFinance)}, tpl, nil)

	require.True(t, s.SimulateDay())
	assert.Empty(t, s.OngoingEvents())

	a, _ := s.Stock("AAA")
	b, _ := s.Stock("BBB")
	assert.InDelta(t, 95.0, a.Price, 1e-9)
	assert.InDelta(t, 100.0, b.Price, 1e-9)
	assert.InDelta(t, -5.0, s.LastDay().SectorMovement[stock.SectorEnergy], 1e-9)
}

func TestDirectStockNewsOverridesSectorMovement(t *testing.T) {
	cfg := quietConfig(1)
	cfg.NewsEventChance = 1
	cfg.StockNewsChance = 1
	tpl := templateSet{
		MarketNews: []news.MarketEvent{
			{Headline: "Tech rally", Impact: news.OneSector{Sector: stock.SectorTechnology, Delta: 10}, Duration: 3},
		},
		StockNews: []news.StockEvent{
			{Headline: "TECH launch", Impact: news.OneStock{Symbol: "TECH", Delta: 5}},
		},
	}
	s := New(cfg, stockList{flat("TECH", stock.SectorTechnology), flat("OTHR", stock.SectorTechnology)}, tpl, nil)

	require.True(t, s.SimulateDay())
	tech, _ := s.Stock("TECH")
	othr, _ := s.Stock("OTHR")
	assert.InDelta(t, 105.0, tech.Price, 1e-9)
	assert.InDelta(t, 110.0, othr.Price, 1e-9)

	// the ongoing tech event is ignored for the directly hit stock too
	require.True(t, s.SimulateDay())
	tech, _ = s.Stock("TECH")
	othr, _ = s.Stock("OTHR")
	assert.InDelta(t, 110.25, tech.Price, 1e-9)
	assert.InDelta(t, 129.8, othr.Price, 1e-9)
	require.NotNil(t, s.LastDay().StockNews)
	assert.Equal(t, "TECH", s.LastDay().StockNews.Impact.Symbol)
}

func TestStockNewsForUnknownSymbolIsIgnored(t *testing.T) {
	cfg := quietConfig(1)
	cfg.StockNewsChance = 1
	tpl := templateSet{StockNews: []news.StockEvent{
		{Headline: "Ghost", Impact: news.OneStock{Symbol: "GHOST", Delta: 50}},
	}}
	s := New(cfg, stockList{flat("AAA", stock.SectorEnergy)}, tpl, nil)

	require.True(t, s.SimulateDay())
	a, _ := s.Stock("AAA")
	assert.InDelta(t, 100.0, a.Price, 1e-9)
}

func TestDividendsPaidToLongsOnly(t *testing.T) {
	payer := func(sym string) stock.Config {
		c := flat(sym, stock.SectorFinance)
		c.PaysDividend = true
		c.DividendYield = 10
		return c
	}
	s := New(quietConfig(1), stockList{payer("LONGD"), payer("SHRTD")}, templateSet{}, nil)
	s.stocks["LONGD"].NextDividendDay = 1
	s.stocks["SHRTD"].NextDividendDay = 1

	_, err := s.Buy("LONGD", 10)
	require.NoError(t, err)
	_, err = s.Short("SHRTD", 10)
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(10000).Equal(s.Portfolio().Cash()))

	require.True(t, s.SimulateDay())

	assert.True(t, decimal.NewFromInt(10100).Equal(s.Portfolio().Cash()), s.Portfolio().Cash().String())
	day := s.LastDay()
	require.Len(t, day.Dividends, 1)
	assert.Equal(t, "LONGD", day.Dividends[0].Symbol)
	assert.Equal(t, 10, day.Dividends[0].Shares)
	assert.True(t, decimal.NewFromInt(100).Equal(day.Dividends[0].Amount))

	var dividendTxs []portfolio.Transaction
	for _, tx := range s.Portfolio().Transactions() {
		if tx.Type == portfolio.TxDividend {
			dividendTxs = append(dividendTxs, tx)
		}
	}
	require.Len(t, dividendTxs, 1)
	assert.Equal(t, "LONGD", dividendTxs[0].Symbol)

	var kinds []news.Kind
	for _, e := range s.Feed() {
		assert.True(t, strings.HasPrefix(e.String(), "Day 1: "), e.String())
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, news.KindDividend)
	assert.Contains(t, kinds, news.KindAchievement)

	var unlocked []string
	for _, a := range day.Unlocked {
		unlocked = append(unlocked, a.ID)
	}
	assert.Equal(t, []string{achievement.FirstTrade, achievement.ShortSeller, achievement.DividendCollector}, unlocked)
}

func TestTradesUseCurrentPriceAndDay(t *testing.T) {
	s := New(quietConfig(1), stockList{flat("AAA", stock.SectorEnergy)}, templateSet{}, nil)
	require.True(t, s.SimulateDay())
	require.True(t, s.SimulateDay())

	tx, err := s.Buy("aaa", 3)
	require.NoError(t, err)
	assert.Equal(t, 2, tx.Day)
	assert.Equal(t, "AAA", tx.Symbol)
	assert.True(t, decimal.NewFromInt(300).Equal(tx.Total))
}

func TestTradeUnknownStock(t *testing.T) {
	s := New(quietConfig(1), stockList{flat("AAA", stock.SectorEnergy)}, templateSet{}, nil)
	for _, fn := range []func(string, int) (portfolio.Transaction, error){s.Buy, s.Sell, s.Short, s.Cover} {
		_, err := fn("NOPE", 1)
		assert.ErrorIs(t, err, ErrUnknownStock)
	}
	assert.Empty(t, s.Portfolio().Transactions())
	assert.True(t, decimal.NewFromInt(10000).Equal(s.Portfolio().Cash()))
}

func TestAddStock(t *testing.T) {
	s := New(quietConfig(1), stockList{flat("AAA", stock.SectorEnergy)}, templateSet{}, nil)

	err := s.AddStock(stock.Config{Name: "New Co", Symbol: " newc ", Price: 12, Volatility: 1, Sector: stock.SectorConsumer})
	require.NoError(t, err)
	st, ok := s.Stock("NEWC")
	require.True(t, ok)
	assert.Equal(t, []float64{12}, st.History)
	assert.Len(t, s.Stocks(), 2)

	err = s.AddStock(stock.Config{Name: "Dup", Symbol: "AAA", Price: 1, Sector: stock.SectorEnergy})
	assert.ErrorIs(t, err, ErrDuplicateStock)

	bad := []stock.Config{
		{Name: "X", Symbol: "", Price: 1, Sector: stock.SectorEnergy},
		{Name: "", Symbol: "X", Price: 1, Sector: stock.SectorEnergy},
		{Name: "X", Symbol: "X", Price: 1, Sector: "Crypto"},
		{Name: "X", Symbol: "X", Price: 0, Sector: stock.SectorEnergy},
		{Name: "X", Symbol: "X", Price: 1, Volatility: -1, Sector: stock.SectorEnergy},
		{Name: "X", Symbol: "X", Price: 1, Sector: stock.SectorEnergy, PaysDividend: true},
	}
	for _, c := range bad {
		assert.ErrorIs(t, s.AddStock(c), ErrInvalidStock, "%+v", c)
	}
	assert.Len(t, s.Stocks(), 2)
}

func TestReset(t *testing.T) {
	s := defaultSim(10, 5)
	_, err := s.Buy("TECH", 2)
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		s.SimulateDay()
	}
	p := s.Portfolio()

	require.True(t, s.Reset(false))
	assert.Equal(t, 0, s.CurrentDay())
	assert.Empty(t, s.OngoingEvents())
	assert.Empty(t, s.Feed())
	assert.Same(t, p, s.Portfolio())
	assert.Equal(t, 2, s.Portfolio().Shares("TECH"))
	for _, st := range s.Stocks() {
		assert.Len(t, st.History, 1, st.Symbol)
	}

	require.True(t, s.Reset(true))
	assert.NotSame(t, p, s.Portfolio())
	assert.Empty(t, s.Portfolio().Positions())
	assert.True(t, decimal.NewFromInt(10000).Equal(s.Portfolio().Cash()))
	assert.True(t, s.SimulateDay())
}

func TestAchievementsSurfaceInFeed(t *testing.T) {
	cfg := quietConfig(1)
	cfg.MaxDays = 7
	s := New(cfg, stockList{flat("AAA", stock.SectorEnergy)}, templateSet{}, achievement.NewManager(nil))

	for s.SimulateDay() {
	}
	feed := s.Feed()
	require.NotEmpty(t, feed)
	assert.Equal(t, news.KindAchievement, feed[0].Kind)
	assert.Equal(t, 7, feed[0].Day)

	var unlocked []string
	for _, a := range s.Achievements() {
		if a.Unlocked {
			unlocked = append(unlocked, a.ID)
		}
	}
	assert.ElementsMatch(t, []string{achievement.WeekOne, achievement.FinishLine}, unlocked)
}
