package stock

// Sector groups stocks that share a correlated daily shock.
type Sector string

const (
	SectorTechnology Sector = "Technology"
	SectorFinance    Sector = "Finance"
	SectorHealthcare Sector = "Healthcare"
	SectorEnergy     Sector = "Energy"
	SectorConsumer   Sector = "Consumer"
	SectorIndustrial Sector = "Industrial"
)

var sectors = []Sector{
	SectorTechnology,
	SectorFinance,
	SectorHealthcare,
	SectorEnergy,
	SectorConsumer,
	SectorIndustrial,
}

// Sectors returns the fixed, ordered sector set.
func Sectors() []Sector {
	out := make([]Sector, len(sectors))
	copy(out, sectors)
	return out
}

// Valid reports whether s is one of the known sectors.
func (s Sector) Valid() bool {
	for _, known := range sectors {
		if s == known {
			return true
		}
	}
	return false
}

// Config is the persisted, round-trippable part of a stock.
// Price history and dividend schedule are not persisted.
type Config struct {
	Name          string  `json:"name"`
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Volatility    float64 `json:"volatility"` // stddev of the daily % change
	Sector        Sector  `json:"sector"`
	PaysDividend  bool    `json:"pays_dividend"`
	DividendYield float64 `json:"dividend_yield"` // percent of price per payout
}

var defaultStocks = []Config{
	{Name: "TechCorp", Symbol: "TECH", Price: 150.00, Volatility: 2.5, Sector: SectorTechnology, PaysDividend: false},
	{Name: "Quantum Systems", Symbol: "QSYS", Price: 85.00, Volatility: 3.2, Sector: SectorTechnology, PaysDividend: false},
	{Name: "CloudNine Software", Symbol: "CLDN", Price: 210.00, Volatility: 2.8, Sector: SectorTechnology, PaysDividend: true, DividendYield: 0.5},
	{Name: "First Capital Bank", Symbol: "FCB", Price: 60.00, Volatility: 1.5, Sector: SectorFinance, PaysDividend: true, DividendYield: 1.2},
	{Name: "Ledger Trust", Symbol: "LDGR", Price: 95.00, Volatility: 1.8, Sector: SectorFinance, PaysDividend: true, DividendYield: 0.9},
	{Name: "MediLife", Symbol: "MEDI", Price: 120.00, Volatility: 1.7, Sector: SectorHealthcare, PaysDividend: true, DividendYield: 0.8},
	{Name: "GeneWorks", Symbol: "GENW", Price: 45.00, Volatility: 3.5, Sector: SectorHealthcare, PaysDividend: false},
	{Name: "PetroMax", Symbol: "PMAX", Price: 75.00, Volatility: 2.2, Sector: SectorEnergy, PaysDividend: true, DividendYield: 1.5},
	{Name: "SunVolt Power", Symbol: "SUNV", Price: 32.00, Volatility: 3.0, Sector: SectorEnergy, PaysDividend: false},
	{Name: "ShopRight", Symbol: "SHOP", Price: 55.00, Volatility: 1.6, Sector: SectorConsumer, PaysDividend: true, DividendYield: 1.0},
	{Name: "Fizzy Drinks Co", Symbol: "FIZZ", Price: 40.00, Volatility: 1.2, Sector: SectorConsumer, PaysDividend: true, DividendYield: 1.3},
	{Name: "Iron Forge Industries", Symbol: "IRON", Price: 88.00, Volatility: 1.9, Sector: SectorIndustrial, PaysDividend: true, DividendYield: 0.7},
}

// Defaults returns a copy of the built-in stock catalog.
func Defaults() []Config {
	out := make([]Config, len(defaultStocks))
	copy(out, defaultStocks)
	return out
}
