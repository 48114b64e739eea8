package achievement

import "time"

// Category groups achievements for display.
type Category string

const (
	CategoryTrading   Category = "trading"
	CategoryWealth    Category = "wealth"
	CategoryMilestone Category = "milestone"
	CategoryStrategy  Category = "strategy"
)

// Achievement is one unlockable badge. Unlocked never reverts and
// UnlockDate is stamped once, on the first unlock.
type Achievement struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Category    Category   `json:"category"`
	Icon        string     `json:"icon,omitempty"`
	Hidden      bool       `json:"hidden"`
	Unlocked    bool       `json:"unlocked"`
	UnlockDate  *time.Time `json:"unlock_date"`
}

const (
	FirstTrade        = "first_trade"
	DayTrader         = "day_trader"
	BigSpender        = "big_spender"
	Diversified       = "diversified"
	Profit10          = "profit_10"
	Profit50          = "profit_50"
	Doubled           = "doubled"
	PaperHands        = "paper_hands"
	WeekOne           = "week_one"
	MonthOne          = "month_one"
	FinishLine        = "finish_line"
	ShortSeller       = "short_seller"
	DividendCollector = "dividend_collector"
)

var catalog = []Achievement{
	{ID: FirstTrade, Name: "First Trade", Description: "Make your first trade", Category: CategoryTrading, Icon: "🤝"},
	{ID: DayTrader, Name: "Day Trader", Description: "Make 10 trades in a single day", Category: CategoryTrading, Icon: "⚡"},
	{ID: BigSpender, Name: "Big Spender", Description: "Make a single trade worth $10,000 or more", Category: CategoryTrading, Icon: "💸"},
	{ID: Diversified, Name: "Diversified", Description: "Hold positions in 5 different stocks", Category: CategoryStrategy, Icon: "🧺"},
	{ID: Profit10, Name: "In the Green", Description: "Grow your net worth by 10%", Category: CategoryWealth, Icon: "📈"},
	{ID: Profit50, Name: "Market Mover", Description: "Grow your net worth by 50%", Category: CategoryWealth, Icon: "🚀"},
	{ID: Doubled, Name: "Double Up", Description: "Double your starting cash", Category: CategoryWealth, Icon: "💰"},
	{ID: PaperHands, Name: "Paper Hands", Description: "Lose 25% of your starting cash", Category: CategoryWealth, Icon: "📉", Hidden: true},
	{ID: WeekOne, Name: "First Week", Description: "Survive 7 trading days", Category: CategoryMilestone, Icon: "📅"},
	{ID: MonthOne, Name: "First Month", Description: "Survive 30 trading days", Category: CategoryMilestone, Icon: "🗓"},
	{ID: FinishLine, Name: "Finish Line", Description: "Reach the final trading day", Category: CategoryMilestone, Icon: "🏁"},
	{ID: ShortSeller, Name: "Short Seller", Description: "Open your first short position", Category: CategoryStrategy, Icon: "🐻", Hidden: true},
	{ID: DividendCollector, Name: "Dividend Collector", Description: "Collect $100 in dividends", Category: CategoryStrategy, Icon: "🪙"},
}

// Catalog returns a fresh, all-locked copy of the built-in achievements.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	copy(out, catalog)
	return out
}
