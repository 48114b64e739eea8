package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/marketsim/internal/portfolio"
	"github.com/zappabad/marketsim/tui/styles"
)

// PortfolioPanel shows cash, holdings and profit/loss.
type PortfolioPanel struct {
	summary portfolio.Summary
	day     int
	maxDays int

	focused bool
	width   int
	height  int
}

// NewPortfolioPanel creates an empty portfolio panel.
func NewPortfolioPanel() *PortfolioPanel {
	return &PortfolioPanel{}
}

// Init initializes the panel.
func (p *PortfolioPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *PortfolioPanel) Update(msg tea.Msg) (*PortfolioPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *PortfolioPanel) View() string {
	var content strings.Builder
	s := p.summary

	content.WriteString(styles.LabelStyle.Render(fmt.Sprintf("Day %d of %d", p.day, p.maxDays)))
	content.WriteString("\n")
	content.WriteString(styles.LabelStyle.Render("Cash      ") + styles.RowStyle.Render(styles.FormatMoney(s.Cash)))
	content.WriteString("\n")
	content.WriteString(styles.LabelStyle.Render("Net worth ") + styles.RowStyle.Render(styles.FormatMoney(s.NetWorth)))
	content.WriteString("\n")
	pl := fmt.Sprintf("%s (%s%%)", styles.FormatMoney(s.ProfitLoss), s.ProfitLossPct.StringFixed(2))
	content.WriteString(styles.LabelStyle.Render("P/L       ") + styles.SignedStyle(s.ProfitLoss).Render(pl))
	content.WriteString("\n\n")

	if len(s.Holdings) == 0 {
		content.WriteString(styles.MutedStyle.Render("No positions"))
	} else {
		content.WriteString(styles.HeaderStyle.Render(fmt.Sprintf("%-6s %-5s %7s %10s %12s", "Symbol", "Side", "Shares", "Price", "Value")))
		for _, h := range s.Holdings {
			side, style := "LONG", styles.LongStyle
			shares := h.Shares
			if h.Short() {
				side, style = "SHORT", styles.ShortStyle
				shares = -shares
			}
			row := fmt.Sprintf("%-6s %s %7d %10s %12s",
				h.Symbol, style.Render(fmt.Sprintf("%-5s", side)), shares, h.Price.StringFixed(2), styles.FormatMoney(h.Value))
			content.WriteString("\n")
			content.WriteString(row)
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("💼 Portfolio", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *PortfolioPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *PortfolioPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSummary replaces the displayed summary and clock.
func (p *PortfolioPanel) SetSummary(s portfolio.Summary, day, maxDays int) {
	p.summary = s
	p.day = day
	p.maxDays = maxDays
}
