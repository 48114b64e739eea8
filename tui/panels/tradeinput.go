package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/marketsim/tui/styles"
)

// TradeField is the focused field of the trade form.
type TradeField int

const (
	FieldSymbol TradeField = iota
	FieldAction
	FieldShares
	FieldSubmit
)

var tradeActions = []string{"BUY", "SELL", "SHORT", "COVER"}

// TradeInputPanel is the trade form: symbol with autocomplete, action and
// share count.
type TradeInputPanel struct {
	symbols     []string
	symbolInput textinput.Model
	sharesInput textinput.Model

	showDropdown  bool
	filtered      []string
	dropdownIndex int

	actionIndex  int
	currentField TradeField

	focused bool
	width   int
	height  int
}

// NewTradeInputPanel creates the form over the tradable symbols.
func NewTradeInputPanel(symbols []string) *TradeInputPanel {
	symbolInput := textinput.New()
	symbolInput.Placeholder = "Search symbol..."
	symbolInput.Width = 12
	symbolInput.CharLimit = 8

	sharesInput := textinput.New()
	sharesInput.Placeholder = "Shares"
	sharesInput.Width = 10
	sharesInput.CharLimit = 9

	return &TradeInputPanel{
		symbols:     symbols,
		symbolInput: symbolInput,
		sharesInput: sharesInput,
		filtered:    symbols,
	}
}

// Init initializes the panel.
func (p *TradeInputPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the panel.
func (p *TradeInputPanel) Update(msg tea.Msg) (*TradeInputPanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down"))):
			if p.showDropdown {
				if p.dropdownIndex < len(p.filtered)-1 {
					p.dropdownIndex++
				}
				return p, nil
			}
			p.nextField()
			return p, nil

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up"))):
			if p.showDropdown {
				if p.dropdownIndex > 0 {
					p.dropdownIndex--
				}
				return p, nil
			}
			p.prevField()
			return p, nil

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("enter"))):
			if p.currentField == FieldSubmit || p.currentField == FieldShares {
				return p, p.submit()
			}
			p.nextField()
			return p, nil

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("esc"))):
			p.showDropdown = false
			return p, nil

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("left"))):
			if p.currentField == FieldAction {
				p.actionIndex = (p.actionIndex + len(tradeActions) - 1) % len(tradeActions)
				return p, nil
			}

		case key.Matches(keyMsg, key.NewBinding(key.WithKeys("right"))):
			if p.currentField == FieldAction {
				p.actionIndex = (p.actionIndex + 1) % len(tradeActions)
				return p, nil
			}
		}
	}

	var cmd tea.Cmd
	switch p.currentField {
	case FieldSymbol:
		p.symbolInput, cmd = p.symbolInput.Update(msg)
		p.filter(p.symbolInput.Value())
		p.showDropdown = p.symbolInput.Value() != "" && len(p.filtered) > 0
	case FieldShares:
		p.sharesInput, cmd = p.sharesInput.Update(msg)
	}
	return p, cmd
}

// View renders the panel.
func (p *TradeInputPanel) View() string {
	var content strings.Builder

	content.WriteString(p.renderField("Symbol", FieldSymbol, p.renderSymbolField()))
	content.WriteString("\n")
	content.WriteString(p.renderField("Action", FieldAction, p.renderActionField()))
	content.WriteString("\n")

	sharesStyle := styles.InputStyle
	if p.currentField == FieldShares && p.focused {
		sharesStyle = styles.FocusedInputStyle
	}
	content.WriteString(p.renderField("Shares", FieldShares, sharesStyle.Render(p.sharesInput.View())))
	content.WriteString("\n")

	submitStyle := styles.InputStyle
	if p.currentField == FieldSubmit && p.focused {
		submitStyle = styles.FocusedInputStyle.Bold(true).Foreground(styles.PrimaryColor)
	}
	content.WriteString(submitStyle.Render("  [Place Trade]  "))
	content.WriteString("\n")
	content.WriteString(p.renderSummary())

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📝 Trade", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *TradeInputPanel) renderField(label string, field TradeField, input string) string {
	labelStyle := styles.LabelStyle
	if p.currentField == field && p.focused {
		labelStyle = labelStyle.Foreground(styles.PrimaryColor)
	}
	return labelStyle.Render(fmt.Sprintf("%-8s", label)) + input
}

func (p *TradeInputPanel) renderSymbolField() string {
	var b strings.Builder

	inputStyle := styles.InputStyle
	if p.currentField == FieldSymbol && p.focused {
		inputStyle = styles.FocusedInputStyle
	}
	b.WriteString(inputStyle.Render(p.symbolInput.View()))

	if p.showDropdown {
		for i, item := range p.filtered[:min(5, len(p.filtered))] {
			style := styles.DropdownItemStyle
			if i == p.dropdownIndex {
				style = styles.DropdownSelectedStyle
			}
			b.WriteString("\n        " + style.Render(highlightMatch(item, p.symbolInput.Value())))
		}
	}
	return b.String()
}

func (p *TradeInputPanel) renderActionField() string {
	items := make([]string, len(tradeActions))
	for i, a := range tradeActions {
		style := styles.DropdownItemStyle
		if i == p.actionIndex {
			if p.currentField == FieldAction && p.focused {
				style = styles.DropdownSelectedStyle
			} else {
				style = style.Bold(true)
			}
			if a == "BUY" || a == "COVER" {
				style = style.Foreground(styles.GainColor)
			} else {
				style = style.Foreground(styles.LossColor)
			}
		}
		items[i] = style.Render(a)
	}
	return strings.Join(items, "|")
}

func (p *TradeInputPanel) renderSummary() string {
	sym := strings.ToUpper(p.symbolInput.Value())
	if sym == "" {
		sym = "---"
	}
	shares := p.sharesInput.Value()
	if shares == "" {
		shares = "0"
	}
	return styles.HeaderStyle.Render("Trade: ") + fmt.Sprintf("%s %s x%s", tradeActions[p.actionIndex], sym, shares)
}

func (p *TradeInputPanel) filter(query string) {
	query = strings.ToUpper(query)
	p.filtered = nil
	p.dropdownIndex = 0
	for _, sym := range p.symbols {
		if strings.Contains(sym, query) {
			p.filtered = append(p.filtered, sym)
		}
	}
}

func highlightMatch(item, query string) string {
	idx := strings.Index(item, strings.ToUpper(query))
	if query == "" || idx < 0 {
		return item
	}
	end := idx + len(query)
	return item[:idx] + styles.DropdownMatchStyle.Render(item[idx:end]) + item[end:]
}

func (p *TradeInputPanel) acceptDropdown() {
	if p.showDropdown && p.dropdownIndex < len(p.filtered) {
		p.symbolInput.SetValue(p.filtered[p.dropdownIndex])
	}
	p.showDropdown = false
}

func (p *TradeInputPanel) nextField() {
	p.acceptDropdown()
	p.currentField = (p.currentField + 1) % (FieldSubmit + 1)
	p.syncFocus()
}

func (p *TradeInputPanel) prevField() {
	p.showDropdown = false
	p.currentField = (p.currentField + FieldSubmit) % (FieldSubmit + 1)
	p.syncFocus()
}

func (p *TradeInputPanel) syncFocus() {
	p.symbolInput.Blur()
	p.sharesInput.Blur()
	if !p.focused {
		return
	}
	switch p.currentField {
	case FieldSymbol:
		p.symbolInput.Focus()
	case FieldShares:
		p.sharesInput.Focus()
	}
}

func (p *TradeInputPanel) submit() tea.Cmd {
	msg := TradeSubmitMsg{
		Action: strings.ToLower(tradeActions[p.actionIndex]),
		Symbol: strings.ToUpper(strings.TrimSpace(p.symbolInput.Value())),
		Shares: strings.TrimSpace(p.sharesInput.Value()),
	}
	if msg.Symbol == "" {
		return nil
	}
	p.sharesInput.SetValue("")
	return func() tea.Msg { return msg }
}

// SetFocus sets the focus state of the panel.
func (p *TradeInputPanel) SetFocus(focused bool) {
	p.focused = focused
	p.syncFocus()
}

// SetSize sets the panel dimensions.
func (p *TradeInputPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSymbol pre-fills the symbol field.
func (p *TradeInputPanel) SetSymbol(symbol string) {
	p.symbolInput.SetValue(symbol)
	p.showDropdown = false
}

// SetSymbols replaces the autocomplete list.
func (p *TradeInputPanel) SetSymbols(symbols []string) {
	p.symbols = symbols
	p.filtered = symbols
}

// TradeSubmitMsg carries raw trade input; validation happens in the game.
type TradeSubmitMsg struct {
	Action string
	Symbol string
	Shares string
}
