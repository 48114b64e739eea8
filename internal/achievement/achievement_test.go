package achievement

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zappabad/marketsim/internal/portfolio"
)

type fakeMarket struct {
	day, maxDays int
}

func (f fakeMarket) CurrentDay() int { return f.day }
func (f fakeMarket) MaxDays() int    { return f.maxDays }

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "achievements.json")
	m := NewManager(NewStore(path))
	m.now = func() time.Time { return fixedNow }
	return m, path
}

func ids(as []Achievement) []string {
	out := make([]string, len(as))
	for i, a := range as {
		out[i] = a.ID
	}
	return out
}

func TestUnlockIsIdempotent(t *testing.T) {
	m, _ := newManager(t)

	a, ok := m.Unlock(FirstTrade)
	require.True(t, ok)
	assert.True(t, a.Unlocked)
	require.NotNil(t, a.UnlockDate)
	assert.Equal(t, fixedNow, *a.UnlockDate)

	m.now = func() time.Time { return fixedNow.Add(time.Hour) }
	_, ok = m.Unlock(FirstTrade)
	assert.False(t, ok)

	got, _ := m.Get(FirstTrade)
	assert.Equal(t, fixedNow, *got.UnlockDate)
	assert.Equal(t, 1, m.UnlockedCount())
}

func TestUnlockUnknown(t *testing.T) {
	m, _ := newManager(t)
	_, ok := m.Unlock("no_such_thing")
	assert.False(t, ok)
}

func TestUnlockPersistsImmediately(t *testing.T) {
	m, path := newManager(t)
	_, ok := m.Unlock(WeekOne)
	require.True(t, ok)

	reloaded := NewManager(NewStore(path))
	got, _ := reloaded.Get(WeekOne)
	assert.True(t, got.Unlocked)
	require.NotNil(t, got.UnlockDate)
	assert.True(t, fixedNow.Equal(*got.UnlockDate))

	_, ok = reloaded.Unlock(WeekOne)
	assert.False(t, ok)
}

func TestStoreBootstrapsCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	items := NewStore(path).Load()
	assert.Equal(t, Catalog(), items)

	_, err := os.Stat(path)
	require.NoError(t, err)
}

func TestStoreCorruptFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "achievements.json")
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))
	assert.Equal(t, Catalog(), NewStore(path).Load())
}

func TestCheckAchievementsReturnsNewUnlocksInCatalogOrder(t *testing.T) {
	m, _ := newManager(t)
	p := portfolio.New(decimal.NewFromInt(10000))

	_, err := p.Short("B", 1, 10, 1)
	require.NoError(t, err)
	_, err = p.Buy("A", 100, 100, 1)
	require.NoError(t, err)

	got := m.CheckAchievements(fakeMarket{day: 1, maxDays: 30}, p)
	assert.Equal(t, []string{FirstTrade, BigSpender, ShortSeller}, ids(got))

	again := m.CheckAchievements(fakeMarket{day: 1, maxDays: 30}, p)
	assert.Empty(t, again)
}

func TestDayBasedAchievements(t *testing.T) {
	m, _ := newManager(t)
	p := portfolio.New(decimal.NewFromInt(10000))

	assert.Empty(t, m.CheckAchievements(fakeMarket{day: 6, maxDays: 30}, p))
	assert.Equal(t, []string{WeekOne}, ids(m.CheckAchievements(fakeMarket{day: 7, maxDays: 30}, p)))
	assert.Equal(t, []string{MonthOne, FinishLine}, ids(m.CheckAchievements(fakeMarket{day: 30, maxDays: 30}, p)))
}

func TestFinishLineOnShortGame(t *testing.T) {
	m, _ := newManager(t)
	p := portfolio.New(decimal.NewFromInt(10000))
	assert.Equal(t, []string{FinishLine}, ids(m.CheckAchievements(fakeMarket{day: 5, maxDays: 5}, p)))
}

func TestDayTraderCountsOnlyToday(t *testing.T) {
	m, _ := newManager(t)
	p := portfolio.New(decimal.NewFromInt(10000))
	for i := 0; i < 9; i++ {
		_, err := p.Buy("A", 1, 1, 1)
		require.NoError(t, err)
	}
	_, err := p.Buy("A", 1, 1, 2)
	require.NoError(t, err)

	got := m.CheckAchievements(fakeMarket{day: 2, maxDays: 30}, p)
	assert.NotContains(t, ids(got), DayTrader)

	_, err = p.Sell("A", 1, 1, 1)
	require.NoError(t, err)
	got = m.CheckAchievements(fakeMarket{day: 1, maxDays: 30}, p)
	assert.Contains(t, ids(got), DayTrader)
}

func TestWealthAchievements(t *testing.T) {
	m, _ := newManager(t)
	p := portfolio.New(decimal.NewFromInt(1000))
	_, err := p.Buy("A", 10, 100, 1)
	require.NoError(t, err)

	p.UpdateNetWorth(map[string]float64{"A": 70})
	got := m.CheckAchievements(fakeMarket{day: 1, maxDays: 30}, p)
	assert.Contains(t, ids(got), PaperHands)

	p.UpdateNetWorth(map[string]float64{"A": 160})
	got = m.CheckAchievements(fakeMarket{day: 2, maxDays: 30}, p)
	assert.Equal(t, []string{Profit10, Profit50}, ids(got))

	p.UpdateNetWorth(map[string]float64{"A": 200})
	got = m.CheckAchievements(fakeMarket{day: 3, maxDays: 30}, p)
	assert.Equal(t, []string{Doubled}, ids(got))
}

func TestDiversifiedAndDividends(t *testing.T) {
	m, _ := newManager(t)
	p := portfolio.New(decimal.NewFromInt(10000))
	for _, sym := range []string{"A", "B", "C", "D"} {
		_, err := p.Buy(sym, 1, 1, 1)
		require.NoError(t, err)
	}
	p.AddDividendTransaction(2, "A", decimal.NewFromInt(60))
	got := m.CheckAchievements(fakeMarket{day: 2, maxDays: 30}, p)
	assert.NotContains(t, ids(got), Diversified)
	assert.NotContains(t, ids(got), DividendCollector)

	_, err := p.Buy("E", 1, 1, 3)
	require.NoError(t, err)
	p.AddDividendTransaction(3, "B", decimal.NewFromInt(40))
	got = m.CheckAchievements(fakeMarket{day: 3, maxDays: 30}, p)
	assert.Equal(t, []string{Diversified, DividendCollector}, ids(got))
}

func TestInMemoryManager(t *testing.T) {
	m := NewManager(nil)
	assert.Len(t, m.All(), len(Catalog()))
	_, ok := m.Unlock(Doubled)
	assert.True(t, ok)
}

func TestCatalogHasPredicates(t *testing.T) {
	for _, a := range Catalog() {
		_, ok := predicates[a.ID]
		assert.True(t, ok, a.ID)
		assert.False(t, a.Unlocked, a.ID)
	}
}
