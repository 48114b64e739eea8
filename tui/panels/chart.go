package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/marketsim/internal/stock"
	"github.com/zappabad/marketsim/tui/styles"
)

// Candle is one simulated day: the move from the previous close to today's.
type Candle struct {
	Day   int
	Open  float64
	Close float64
}

// Up reports whether the day closed at or above its open.
func (c Candle) Up() bool {
	return c.Close >= c.Open
}

func (c Candle) high() float64 { return max(c.Open, c.Close) }
func (c Candle) low() float64  { return min(c.Open, c.Close) }

// Candles turns a price history into daily candles. Day 0 has no candle.
func Candles(history []float64) []Candle {
	if len(history) < 2 {
		return nil
	}
	out := make([]Candle, 0, len(history)-1)
	for i := 1; i < len(history); i++ {
		out = append(out, Candle{Day: i, Open: history[i-1], Close: history[i]})
	}
	return out
}

// ChartPanel draws the daily candles of one stock.
type ChartPanel struct {
	symbol  string
	candles []Candle

	focused bool
	width   int
	height  int
}

// NewChartPanel creates an empty chart.
func NewChartPanel() *ChartPanel {
	return &ChartPanel{}
}

// Init initializes the panel.
func (p *ChartPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *ChartPanel) Update(msg tea.Msg) (*ChartPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *ChartPanel) View() string {
	name := "No stock"
	if p.symbol != "" {
		name = p.symbol
	}

	var content string
	if len(p.candles) == 0 {
		content = styles.MutedStyle.Render("No price moves yet...")
	} else {
		content = p.renderChart(p.width-12, max(p.height-6, 5))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle(fmt.Sprintf("📉 Chart - %s", name), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content)

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *ChartPanel) renderChart(width, height int) string {
	// 9 chars for the price axis, 2 per candle
	show := max((width-10)/2, 1)
	candles := p.candles
	if len(candles) > show {
		candles = candles[len(candles)-show:]
	}

	lo, hi := candles[0].low(), candles[0].high()
	for _, c := range candles {
		lo = min(lo, c.low())
		hi = max(hi, c.high())
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = hi * 0.01
	}
	lo -= pad
	hi += pad

	rows := max(height-3, 5)
	step := (hi - lo) / float64(rows-1)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		price := hi - float64(row)*step
		b.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%8.2f │", price)))
		for _, c := range candles {
			style := styles.BarUpStyle
			if !c.Up() {
				style = styles.BarDownStyle
			}
			// a row is filled when its band overlaps the candle body
			char := " "
			if price-step/2 <= c.high() && price+step/2 >= c.low() {
				char = "┃"
			}
			b.WriteString(style.Render(char) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.ChartAxisStyle.Render("─────────┴" + strings.Repeat("──", len(candles))))
	b.WriteString("\n")
	b.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("          day %d → %d", candles[0].Day, candles[len(candles)-1].Day)))
	return b.String()
}

// SetFocus sets the focus state of the panel.
func (p *ChartPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *ChartPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetStock charts st.
func (p *ChartPanel) SetStock(st stock.Stock) {
	p.symbol = st.Symbol
	p.candles = Candles(st.History)
}

// Symbol returns the charted symbol.
func (p *ChartPanel) Symbol() string {
	return p.symbol
}
