package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/marketsim/internal/stock"
	"github.com/zappabad/marketsim/tui/styles"
)

// MarketPanel lists every stock with its price and last change.
type MarketPanel struct {
	stocks        []stock.Stock
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewMarketPanel creates an empty market panel.
func NewMarketPanel() *MarketPanel {
	return &MarketPanel{}
}

// Init initializes the panel.
func (p *MarketPanel) Init() tea.Cmd {
	return nil
}

// Update moves the selection and announces the newly selected symbol.
func (p *MarketPanel) Update(msg tea.Msg) (*MarketPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}
	prev := p.selectedIndex
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.selectedIndex > 0 {
			p.selectedIndex--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if p.selectedIndex < len(p.stocks)-1 {
			p.selectedIndex++
		}
	}
	if p.selectedIndex == prev {
		return p, nil
	}
	sym := p.SelectedSymbol()
	return p, func() tea.Msg { return StockSelectedMsg{Symbol: sym} }
}

// View renders the panel.
func (p *MarketPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-6s %-20s %-11s %10s %9s", "Symbol", "Name", "Sector", "Price", "Change")
	content.WriteString(styles.HeaderStyle.Render(header))

	for i, st := range p.stocks {
		name := st.Name
		if len(name) > 20 {
			name = name[:19] + "…"
		}
		div := " "
		if st.PaysDividend {
			div = "$"
		}
		row := fmt.Sprintf("%-6s %-20s %-11s %10.2f%s", st.Symbol, name, st.Sector, st.Price, div)

		style := styles.RowStyle
		if i == p.selectedIndex && p.focused {
			style = styles.SelectedRowStyle
		}
		content.WriteString("\n")
		content.WriteString(style.Render(row) + " " + styles.FormatChange(st.Change()))
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📈 Market", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *MarketPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *MarketPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetStocks replaces the listed stocks, keeping the selection in range.
func (p *MarketPanel) SetStocks(stocks []stock.Stock) {
	p.stocks = stocks
	if p.selectedIndex >= len(stocks) {
		p.selectedIndex = max(len(stocks)-1, 0)
	}
}

// SelectedSymbol returns the highlighted symbol, or "" if the list is empty.
func (p *MarketPanel) SelectedSymbol() string {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.stocks) {
		return p.stocks[p.selectedIndex].Symbol
	}
	return ""
}

// StockSelectedMsg is sent when the market selection changes.
type StockSelectedMsg struct {
	Symbol string
}
