package game

import (
	"errors"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/zappabad/marketsim/internal/market"
	"github.com/zappabad/marketsim/internal/storage"
)

// Environment overrides applied after the config file is read.
const (
	EnvStartingCash = "MARKETSIM_STARTING_CASH"
	EnvMaxDays      = "MARKETSIM_MAX_DAYS"
	EnvSeed         = "MARKETSIM_SEED"
	EnvLogLevel     = "MARKETSIM_LOG_LEVEL"
)

// Config mirrors config.json.
type Config struct {
	Game       GameSettings       `json:"game"`
	Files      FileSettings       `json:"files"`
	Simulation SimulationSettings `json:"simulation"`
	Log        LogSettings        `json:"log"`

	// Seed fixes the random source; 0 means time-seeded. Env only.
	Seed int64 `json:"-"`

	// dir is where relative file paths are resolved from.
	dir string
}

type GameSettings struct {
	StartingCash float64 `json:"starting_cash"`
	MaxDays      int     `json:"max_days"`
}

type FileSettings struct {
	StocksFile       string `json:"stocks_file"`
	NewsFile         string `json:"news_file"`
	AchievementsFile string `json:"achievements_file"`
}

type SimulationSettings struct {
	NewsEventChance  float64 `json:"news_event_chance"`
	StockNewsChance  float64 `json:"stock_news_chance"`
	MarketVolatility float64 `json:"market_volatility"`
}

type LogSettings struct {
	File       string `json:"file"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	Level      string `json:"level"`
}

// DefaultConfig returns the config written on first run.
func DefaultConfig() Config {
	m := market.DefaultConfig()
	return Config{
		Game: GameSettings{
			StartingCash: m.StartingCash.InexactFloat64(),
			MaxDays:      m.MaxDays,
		},
		Files: FileSettings{
			StocksFile:       "stocks.json",
			NewsFile:         "news.json",
			AchievementsFile: "achievements.json",
		},
		Simulation: SimulationSettings{
			NewsEventChance:  m.NewsEventChance,
			StockNewsChance:  m.StockNewsChance,
			MarketVolatility: m.MarketVolatility,
		},
		Log: LogSettings{
			File:       "marketsim.log",
			MaxSizeMB:  5,
			MaxBackups: 3,
			Level:      "info",
		},
	}
}

// LoadConfig reads path, writing the defaults there if it is missing. A
// corrupt file is logged and replaced by the defaults in memory. .env and
// environment overrides are applied last.
func LoadConfig(path string) Config {
	cfg := DefaultConfig()
	err := storage.ReadJSON(path, &cfg)
	switch {
	case errors.Is(err, storage.ErrNotExist):
		slog.Info("config file missing, writing defaults", "path", path)
		if err := storage.WriteJSON(path, cfg); err != nil {
			slog.Warn("failed to write default config", "path", path, "err", err)
		}
	case err != nil:
		slog.Warn("failed to load config, using defaults", "path", path, "err", err)
		cfg = DefaultConfig()
	}
	cfg.dir = filepath.Dir(path)

	_ = godotenv.Load()
	cfg.loadFromEnv()
	cfg.sanitize()
	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv(EnvStartingCash); val != "" {
		if v, err := strconv.ParseFloat(val, 64); err == nil {
			c.Game.StartingCash = v
		}
	}
	if val := os.Getenv(EnvMaxDays); val != "" {
		if v, err := strconv.Atoi(val); err == nil {
			c.Game.MaxDays = v
		}
	}
	if val := os.Getenv(EnvSeed); val != "" {
		if v, err := strconv.ParseInt(val, 10, 64); err == nil {
			c.Seed = v
		}
	}
	if val := os.Getenv(EnvLogLevel); val != "" {
		c.Log.Level = val
	}
}

// sanitize replaces values the simulator cannot run with.
func (c *Config) sanitize() {
	def := DefaultConfig()
	if c.Game.StartingCash <= 0 {
		c.Game.StartingCash = def.Game.StartingCash
	}
	if c.Game.MaxDays <= 0 {
		c.Game.MaxDays = def.Game.MaxDays
	}
	if c.Files.StocksFile == "" {
		c.Files.StocksFile = def.Files.StocksFile
	}
	if c.Files.NewsFile == "" {
		c.Files.NewsFile = def.Files.NewsFile
	}
	if c.Files.AchievementsFile == "" {
		c.Files.AchievementsFile = def.Files.AchievementsFile
	}
	if !validChance(c.Simulation.NewsEventChance) {
		c.Simulation.NewsEventChance = def.Simulation.NewsEventChance
	}
	if !validChance(c.Simulation.StockNewsChance) {
		c.Simulation.StockNewsChance = def.Simulation.StockNewsChance
	}
	if c.Simulation.MarketVolatility < 0 {
		c.Simulation.MarketVolatility = def.Simulation.MarketVolatility
	}
}

func validChance(p float64) bool {
	return p >= 0 && p <= 1
}

// Path resolves a configured file name against the config file's directory.
func (c Config) Path(name string) string {
	if name == "" || filepath.IsAbs(name) || c.dir == "" {
		return name
	}
	return filepath.Join(c.dir, name)
}

// MarketConfig converts the file settings into simulator settings.
func (c Config) MarketConfig() market.Config {
	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return market.Config{
		MaxDays:          c.Game.MaxDays,
		StartingCash:     decimal.NewFromFloat(c.Game.StartingCash),
		NewsEventChance:  c.Simulation.NewsEventChance,
		StockNewsChance:  c.Simulation.StockNewsChance,
		MarketVolatility: c.Simulation.MarketVolatility,
		Rand:             rand.New(rand.NewSource(seed)),
	}
}
