package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/marketsim/internal/game"
	"github.com/zappabad/marketsim/tui/panels"
	"github.com/zappabad/marketsim/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusMarket PanelFocus = iota
	FocusChart
	FocusPortfolio
	FocusNews
	FocusTrade
	focusCount
)

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Next      key.Binding
	Prev      key.Binding
	Advance   key.Binding
	Reset     key.Binding
	ResetAll  key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	Next:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "panels")),
	Prev:      key.NewBinding(key.WithKeys("shift+tab")),
	Advance:   key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("^N", "next day")),
	Reset:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("^R", "new market")),
	ResetAll:  key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("^X", "new game")),
}

// Model is the main TUI application model. All game calls happen inside
// Update so the simulation stays single-threaded.
type Model struct {
	game *game.Game

	marketPanel    *panels.MarketPanel
	chartPanel     *panels.ChartPanel
	portfolioPanel *panels.PortfolioPanel
	newsPanel      *panels.NewsPanel
	tradePanel     *panels.TradeInputPanel

	focusedPanel PanelFocus

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model over g.
func NewModel(g *game.Game) *Model {
	m := &Model{
		game:           g,
		marketPanel:    panels.NewMarketPanel(),
		chartPanel:     panels.NewChartPanel(),
		portfolioPanel: panels.NewPortfolioPanel(),
		newsPanel:      panels.NewNewsPanel(),
		tradePanel:     panels.NewTradeInputPanel(nil),
		focusedPanel:   FocusMarket,
		statusMsg:      "Welcome! Press ^N to open the market.",
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.marketPanel.Init(),
		m.chartPanel.Init(),
		m.portfolioPanel.Init(),
		m.newsPanel.Init(),
		m.tradePanel.Init(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, keys.Quit) && m.focusedPanel != FocusTrade:
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			m.setFocus((m.focusedPanel + 1) % focusCount)
			return m, nil
		case key.Matches(msg, keys.Prev):
			m.setFocus((m.focusedPanel + focusCount - 1) % focusCount)
			return m, nil
		case key.Matches(msg, keys.Advance):
			m.advance()
			return m, nil
		case key.Matches(msg, keys.Reset):
			m.reset(false)
			return m, nil
		case key.Matches(msg, keys.ResetAll):
			m.reset(true)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.StockSelectedMsg:
		m.showStock(msg.Symbol)
		m.tradePanel.SetSymbol(msg.Symbol)

	case panels.TradeSubmitMsg:
		m.trade(msg)
	}

	m.updateFocusedPanel(msg, &cmds)
	return m, tea.Batch(cmds...)
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusMarket:
		m.marketPanel, cmd = m.marketPanel.Update(msg)
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	case FocusPortfolio:
		m.portfolioPanel, cmd = m.portfolioPanel.Update(msg)
	case FocusNews:
		m.newsPanel, cmd = m.newsPanel.Update(msg)
	case FocusTrade:
		m.tradePanel, cmd = m.tradePanel.Update(msg)
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) advance() {
	res, ok := m.game.Advance()
	if !ok {
		m.statusMsg = m.finalStatus()
		return
	}
	m.refresh()

	status := fmt.Sprintf("Day %d closed. Net worth %s", res.Day, styles.FormatMoney(res.NetWorth))
	if n := len(res.Unlocked); n > 0 {
		status += fmt.Sprintf(" · 🏆 %d achievement(s)", n)
	}
	if m.game.Market.Finished() {
		status = m.finalStatus()
	}
	m.statusMsg = status
}

func (m *Model) finalStatus() string {
	ev := m.game.FinalEvaluation()
	return fmt.Sprintf("Game over: %s (%s%%) - %s",
		styles.FormatMoney(ev.Profit), ev.ReturnPct.StringFixed(2), styles.RatingStyle.Render(ev.Rating))
}

func (m *Model) reset(all bool) {
	m.game.Reset(all)
	m.refresh()
	if all {
		m.statusMsg = "New game started."
	} else {
		m.statusMsg = "Market reset. Portfolio kept."
	}
}

func (m *Model) trade(msg panels.TradeSubmitMsg) {
	tx, err := m.game.Execute(msg.Action, msg.Symbol, msg.Shares)
	if err != nil {
		m.statusMsg = "❌ " + err.Error()
		return
	}
	m.refresh()
	m.statusMsg = fmt.Sprintf("✓ %s %d %s @ %s", tx.Type, tx.Shares, tx.Symbol, styles.FormatMoney(tx.Price))
}

// refresh copies game state into every panel.
func (m *Model) refresh() {
	stocks := m.game.Market.Stocks()
	m.marketPanel.SetStocks(stocks)

	symbols := make([]string, len(stocks))
	for i, st := range stocks {
		symbols[i] = st.Symbol
	}
	m.tradePanel.SetSymbols(symbols)

	m.showStock(m.marketPanel.SelectedSymbol())
	m.portfolioPanel.SetSummary(m.game.Summary(), m.game.Market.CurrentDay(), m.game.Market.MaxDays())
	m.newsPanel.SetEntries(m.game.Market.Feed())
}

func (m *Model) showStock(symbol string) {
	if st, ok := m.game.Market.Stock(symbol); ok {
		m.chartPanel.SetStock(st)
	}
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	m.marketPanel.SetFocus(m.focusedPanel == FocusMarket)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.portfolioPanel.SetFocus(m.focusedPanel == FocusPortfolio)
	m.newsPanel.SetFocus(m.focusedPanel == FocusNews)

	// ┌──────────────┬──────────┬───────────┐
	// │    Market    │  Chart   │ Portfolio │
	// ├──────────────┴──────┬───┴───────────┤
	// │        News         │     Trade     │
	// └─────────────────────┴───────────────┘
	leftWidth := m.width * 2 / 5
	middleWidth := (m.width - leftWidth) / 2
	rightWidth := m.width - leftWidth - middleWidth

	topHeight := (m.height - 1) * 3 / 5
	bottomHeight := m.height - 1 - topHeight

	m.marketPanel.SetSize(leftWidth, topHeight)
	m.chartPanel.SetSize(middleWidth, topHeight)
	m.portfolioPanel.SetSize(rightWidth, topHeight)

	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.marketPanel.View(),
		m.chartPanel.View(),
		m.portfolioPanel.View(),
	)

	newsWidth := m.width * 3 / 5
	m.newsPanel.SetSize(newsWidth, bottomHeight)
	m.tradePanel.SetSize(m.width-newsWidth, bottomHeight)

	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.newsPanel.View(),
		m.tradePanel.View(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, m.renderStatusBar())
}

func (m *Model) renderStatusBar() string {
	var help string
	for i, b := range []key.Binding{keys.Advance, keys.Next, keys.Reset, keys.ResetAll, keys.Quit} {
		if i > 0 {
			help += " │ "
		}
		h := b.Help()
		help += styles.StatusBarKeyStyle.Render(h.Key) + styles.StatusBarDescStyle.Render(" "+h.Desc)
	}

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}
	return styles.StatusBarStyle.Width(m.width).Render(help + status)
}

func (m *Model) setFocus(panel PanelFocus) {
	m.focusedPanel = panel
	m.tradePanel.SetFocus(panel == FocusTrade)
}

// Status returns the current status line text.
func (m *Model) Status() string {
	return m.statusMsg
}
