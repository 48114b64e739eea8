package stock

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(42))
}

func TestUpdatePriceKeepsFloorAndHistory(t *testing.T) {
	s := New(Config{Name: "Penny", Symbol: "PNY", Price: 0.5, Volatility: 40, Sector: SectorEnergy}, newRand())

	for day := 1; day <= 500; day++ {
		s.UpdatePrice(-30)
		require.GreaterOrEqual(t, s.Price, MinPrice, "day %d", day)
		require.Len(t, s.History, day+1)
		require.Equal(t, s.Price, s.History[len(s.History)-1])
	}
}

func TestApplyShock(t *testing.T) {
	s := New(Config{Symbol: "AAA", Price: 100, Volatility: 2, Sector: SectorFinance}, newRand())

	s.ApplyShock(10)
	assert.InDelta(t, 110.0, s.Price, 1e-9)
	assert.InDelta(t, 10.0, s.Change(), 1e-9)

	s.ApplyShock(-200)
	assert.Equal(t, MinPrice, s.Price)
	assert.Equal(t, []float64{100, s.History[1], MinPrice}, s.History)
}

func TestNewClampsPriceAndSchedulesDividend(t *testing.T) {
	s := New(Config{Symbol: "DIV", Price: 0, PaysDividend: true, DividendYield: 1}, newRand())
	assert.Equal(t, MinPrice, s.Price)
	assert.GreaterOrEqual(t, s.NextDividendDay, 5)
	assert.LessOrEqual(t, s.NextDividendDay, 10)

	none := New(Config{Symbol: "NOD", Price: 10}, newRand())
	assert.Equal(t, NoDividend, none.NextDividendDay)
	assert.Zero(t, none.CheckDividend(NoDividend))
}

func TestCheckDividend(t *testing.T) {
	s := New(Config{Symbol: "DIV", Price: 100, PaysDividend: true, DividendYield: 2}, newRand())
	s.NextDividendDay = 3

	assert.Zero(t, s.CheckDividend(2))
	assert.Equal(t, 3, s.NextDividendDay, "schedule only moves on a paying day")

	assert.InDelta(t, 2.0, s.CheckDividend(3), 1e-9)
	assert.GreaterOrEqual(t, s.NextDividendDay, 8)
	assert.LessOrEqual(t, s.NextDividendDay, 13)

	assert.Zero(t, s.CheckDividend(3), "same day does not pay twice")
}

func TestSectors(t *testing.T) {
	got := Sectors()
	require.Len(t, got, 6)
	assert.Equal(t, SectorTechnology, got[0])

	got[0] = "Mutated"
	assert.Equal(t, SectorTechnology, Sectors()[0])

	assert.True(t, SectorConsumer.Valid())
	assert.False(t, Sector("Crypto").Valid())
}

func TestDefaultsAreValid(t *testing.T) {
	seen := map[string]bool{}
	for _, cfg := range Defaults() {
		assert.False(t, seen[cfg.Symbol], "duplicate symbol %s", cfg.Symbol)
		seen[cfg.Symbol] = true
		assert.True(t, cfg.Sector.Valid(), cfg.Symbol)
		assert.Greater(t, cfg.Price, MinPrice, cfg.Symbol)
	}
}

func TestStoreBootstrapsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.json")
	store := NewStore(path)

	cfgs := store.Load()
	assert.Equal(t, Defaults(), cfgs)
	_, err := os.Stat(path)
	require.NoError(t, err, "defaults should be written back")

	custom := append(cfgs, Config{Name: "Custom", Symbol: "CUST", Price: 12, Volatility: 1, Sector: SectorConsumer})
	require.NoError(t, store.Save(custom))
	assert.Equal(t, custom, store.Load())
}

func TestStoreFallsBackOnCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stocks.json")
	require.NoError(t, os.WriteFile(path, []byte("[{"), 0o644))

	assert.Equal(t, Defaults(), NewStore(path).Load())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[{", string(b), "corrupt file is left for inspection")
}
