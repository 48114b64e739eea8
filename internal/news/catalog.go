package news

import "github.com/zappabad/marketsim/internal/stock"

var defaultMarketNews = []MarketEvent{
	{Headline: "Central bank cuts interest rates", Impact: AllSectors{Delta: 2.5}, Duration: 3},
	{Headline: "Recession fears grip investors", Impact: AllSectors{Delta: -3.0}, Duration: 4},
	{Headline: "Strong jobs report lifts sentiment", Impact: AllSectors{Delta: 1.5}},
	{Headline: "Trade dispute escalates overseas", Impact: AllSectors{Delta: -2.0}, Duration: 2},
	{Headline: "Chip shortage eases across the industry", Impact: OneSector{Sector: stock.SectorTechnology, Delta: 3.5}},
	{Headline: "Major data breach rattles tech stocks", Impact: OneSector{Sector: stock.SectorTechnology, Delta: -4.0}, Duration: 2},
	{Headline: "Regulators approve bank stress test results", Impact: OneSector{Sector: stock.SectorFinance, Delta: 2.0}},
	{Headline: "Credit crunch hits lenders", Impact: OneSector{Sector: stock.SectorFinance, Delta: -3.5}, Duration: 3},
	{Headline: "Breakthrough drug trial results announced", Impact: OneSector{Sector: stock.SectorHealthcare, Delta: 3.0}},
	{Headline: "Drug pricing reform bill advances", Impact: OneSector{Sector: stock.SectorHealthcare, Delta: -2.5}, Duration: 2},
	{Headline: "Oil prices surge on supply cuts", Impact: OneSector{Sector: stock.SectorEnergy, Delta: 4.0}, Duration: 3},
	{Headline: "Mild winter depresses energy demand", Impact: OneSector{Sector: stock.SectorEnergy, Delta: -2.0}},
	{Headline: "Holiday sales beat expectations", Impact: OneSector{Sector: stock.SectorConsumer, Delta: 2.5}},
	{Headline: "Consumer confidence slumps", Impact: OneSector{Sector: stock.SectorConsumer, Delta: -2.5}, Duration: 2},
	{Headline: "Infrastructure bill passes", Impact: OneSector{Sector: stock.SectorIndustrial, Delta: 3.0}, Duration: 4},
	{Headline: "Factory orders fall sharply", Impact: OneSector{Sector: stock.SectorIndustrial, Delta: -2.0}},
}

var defaultStockNews = []StockEvent{
	{Headline: "TechCorp unveils next-gen AI platform", Impact: OneStock{Symbol: "TECH", Delta: 8.0}},
	{Headline: "TechCorp CEO resigns unexpectedly", Impact: OneStock{Symbol: "TECH", Delta: -7.0}},
	{Headline: "Quantum Systems lands defense contract", Impact: OneStock{Symbol: "QSYS", Delta: 10.0}},
	{Headline: "CloudNine Software suffers global outage", Impact: OneStock{Symbol: "CLDN", Delta: -6.0}},
	{Headline: "First Capital Bank beats earnings", Impact: OneStock{Symbol: "FCB", Delta: 4.0}},
	{Headline: "Ledger Trust under investigation", Impact: OneStock{Symbol: "LDGR", Delta: -9.0}},
	{Headline: "MediLife vaccine gets approval", Impact: OneStock{Symbol: "MEDI", Delta: 12.0}},
	{Headline: "GeneWorks trial halted", Impact: OneStock{Symbol: "GENW", Delta: -15.0}},
	{Headline: "PetroMax discovers new oil field", Impact: OneStock{Symbol: "PMAX", Delta: 7.0}},
	{Headline: "SunVolt panel recall announced", Impact: OneStock{Symbol: "SUNV", Delta: -8.0}},
	{Headline: "ShopRight expands overseas", Impact: OneStock{Symbol: "SHOP", Delta: 5.0}},
	{Headline: "Fizzy Drinks Co launches viral new flavor", Impact: OneStock{Symbol: "FIZZ", Delta: 6.0}},
	{Headline: "Iron Forge wins rail contract", Impact: OneStock{Symbol: "IRON", Delta: 5.5}},
}

// DefaultTemplates returns a copy of the built-in news catalog.
func DefaultTemplates() Templates {
	return Templates{
		MarketNews: append([]MarketEvent(nil), defaultMarketNews...),
		StockNews:  append([]StockEvent(nil), defaultStockNews...),
	}
}
