package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/marketsim/internal/news"
	"github.com/zappabad/marketsim/tui/styles"
)

// NewsPanel shows the news feed, newest first.
type NewsPanel struct {
	entries      []news.FeedEntry
	scrollOffset int
	focused      bool
	width        int
	height       int
}

// NewNewsPanel creates a new news panel.
func NewNewsPanel() *NewsPanel {
	return &NewsPanel{}
}

// Init initializes the panel.
func (p *NewsPanel) Init() tea.Cmd {
	return nil
}

// Update scrolls the feed.
func (p *NewsPanel) Update(msg tea.Msg) (*NewsPanel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !p.focused {
		return p, nil
	}
	switch {
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("up", "k"))):
		if p.scrollOffset > 0 {
			p.scrollOffset--
		}
	case key.Matches(keyMsg, key.NewBinding(key.WithKeys("down", "j"))):
		if p.scrollOffset < len(p.entries)-p.visible() {
			p.scrollOffset++
		}
	}
	return p, nil
}

func (p *NewsPanel) visible() int {
	return max(p.height-4, 1)
}

// View renders the panel.
func (p *NewsPanel) View() string {
	var content strings.Builder

	if len(p.entries) == 0 {
		content.WriteString(styles.MutedStyle.Render("No news yet. Advance a day."))
	} else {
		end := min(p.scrollOffset+p.visible(), len(p.entries))
		for i := p.scrollOffset; i < end; i++ {
			e := p.entries[i]
			text := e.Text
			if limit := p.width - 16; limit > 3 && len(text) > limit {
				text = text[:limit-3] + "..."
			}
			line := styles.DayStyle.Render(fmt.Sprintf("Day %-3d", e.Day)) + " " + kindStyle(e.Kind).Render(text)
			content.WriteString(line)
			if i < end-1 {
				content.WriteString("\n")
			}
		}
		if len(p.entries) > p.visible() {
			content.WriteString("\n")
			content.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" (%d-%d of %d)", p.scrollOffset+1, end, len(p.entries))))
		}
	}

	panelStyle := styles.PanelStyle
	if p.focused {
		panelStyle = styles.FocusedPanelStyle
	}

	title := styles.RenderTitle("📰 News", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return panelStyle.Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func kindStyle(k news.Kind) lipgloss.Style {
	switch k {
	case news.KindStock:
		return styles.NewsStockStyle
	case news.KindDividend:
		return styles.NewsDividendStyle
	case news.KindAchievement:
		return styles.NewsAchievementStyle
	default:
		return styles.NewsMarketStyle
	}
}

// SetFocus sets the focus state of the panel.
func (p *NewsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *NewsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetEntries replaces the feed. A grown feed scrolls back to the top so the
// newest entries are visible.
func (p *NewsPanel) SetEntries(entries []news.FeedEntry) {
	if len(entries) != len(p.entries) {
		p.scrollOffset = 0
	}
	p.entries = entries
}
