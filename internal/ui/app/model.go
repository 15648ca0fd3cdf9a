package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"retrolog/internal/modules/analytics/dto"
	"retrolog/internal/ui/components"
	"retrolog/internal/ui/theme"
	dashboardview "retrolog/internal/ui/views/dashboard"
	insightsview "retrolog/internal/ui/views/insights"
	patternsview "retrolog/internal/ui/views/patterns"
	trendsview "retrolog/internal/ui/views/trends"
)

// AnalyticsPort is everything the dashboard reads or writes.
type AnalyticsPort interface {
	Dashboard(ctx context.Context, input dto.RangeInput) (dto.DashboardOutput, error)
	Charts(ctx context.Context, input dto.RangeInput) (dto.ChartsOutput, error)
	WorkLogStats(ctx context.Context, input dto.RangeInput) (dto.WorkLogStatsOutput, error)
	Patterns(ctx context.Context, input dto.RangeInput) (dto.PatternsOutput, error)
	ListInsights(ctx context.Context, input dto.ListInsightsInput) ([]dto.InsightOutput, error)
	GenerateInsight(ctx context.Context, input dto.InsightInput) (dto.InsightOutput, error)
	SetInsightActive(ctx context.Context, input dto.SetInsightActiveInput) (dto.InsightOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabDashboard tabID = iota
	tabTrends
	tabPatterns
	tabInsights
	tabCount
)

var tabLabels = [tabCount]string{"Dashboard", "Trends", "Patterns", "Insights"}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Refresh key.Binding
	Archive key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Archive: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "archive/restore insight")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Refresh, k.Archive},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model owns tab routing, the query every tab shares, the help overlay and
// the command palette. Rendering is delegated to the sub-views.
type Model struct {
	query dto.RangeInput

	dashView     dashboardview.Model
	trendsView   trendsview.Model
	patternsView patternsview.Model
	insightsView insightsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

func NewModel(analytics AnalyticsPort, user string) Model {
	return Model{
		query:        dto.RangeInput{UserID: user},
		dashView:     dashboardview.New(analytics),
		trendsView:   trendsview.New(analytics),
		patternsView: patternsview.New(analytics),
		insightsView: insightsview.New(analytics),
		activeTab:    tabDashboard,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "last 30 days",
	}
}

func (m Model) Init() tea.Cmd {
	return m.reload()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	// The palette intercepts all input while open.
	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	// Load results go to their view regardless of the visible tab.
	case dashboardview.LoadedMsg:
		if msg.Err != nil {
			m.status = "dashboard: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.dashView, cmd = m.dashView.Update(msg)
		return m, cmd
	case trendsview.LoadedMsg:
		var cmd tea.Cmd
		m.trendsView, cmd = m.trendsView.Update(msg)
		return m, cmd
	case patternsview.LoadedMsg:
		var cmd tea.Cmd
		m.patternsView, cmd = m.patternsView.Update(msg)
		return m, cmd
	case insightsview.LoadedMsg:
		var cmd tea.Cmd
		m.insightsView, cmd = m.insightsView.Update(msg)
		return m, cmd
	case insightsview.ChangedMsg:
		if msg.Err != nil {
			m.status = "insight: " + msg.Err.Error()
		} else {
			m.status = fmt.Sprintf("insight %s saved", msg.Insight.Kind)
		}
		var cmd tea.Cmd
		m.insightsView, cmd = m.insightsView.Update(msg)
		return m, cmd

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		// Yield to sub-view when its search filter is active.
		if m.subViewFiltering() {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case ":":
			return m, m.palette.Open()
		case "r":
			return m, m.reload()
		}
	}

	// Everything else goes to the visible tab.
	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabDashboard:
		m.dashView, tabCmd = m.dashView.Update(msg)
	case tabTrends:
		m.trendsView, tabCmd = m.trendsView.Update(msg)
	case tabPatterns:
		m.patternsView, tabCmd = m.patternsView.Update(msg)
	case tabInsights:
		m.insightsView, tabCmd = m.insightsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	default:
		content = m.activeView()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) activeView() string {
	switch m.activeTab {
	case tabDashboard:
		return m.dashView.View()
	case tabTrends:
		return m.trendsView.View()
	case tabPatterns:
		return m.patternsView.View()
	case tabInsights:
		return m.insightsView.View()
	}
	return ""
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	bar := "retrolog  " + strings.Join(parts, theme.Muted.Render(" │ "))
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Title.Render(m.query.UserID) + "  " + m.status
	right := theme.Muted.Render("?:help  tab:switch  :::palette  r:refresh  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "range":
		if len(parts) != 3 {
			m.status = "usage: range <from> <to>"
			return m, nil
		}
		from, errFrom := time.Parse("2006-01-02", parts[1])
		to, errTo := time.Parse("2006-01-02", parts[2])
		if errFrom != nil || errTo != nil {
			m.status = "dates must be YYYY-MM-DD"
			return m, nil
		}
		m.query.From, m.query.To = from, to
		m.status = parts[1] + " .. " + parts[2]
		return m, m.reload()

	case "last":
		if len(parts) != 2 {
			m.status = "usage: last <days>"
			return m, nil
		}
		days, err := strconv.Atoi(parts[1])
		if err != nil || days < 1 {
			m.status = "days must be a positive number"
			return m, nil
		}
		today := time.Now().UTC().Truncate(24 * time.Hour)
		m.query.From, m.query.To = today.AddDate(0, 0, -(days-1)), today
		m.status = fmt.Sprintf("last %d days", days)
		return m, m.reload()

	case "granularity":
		if len(parts) != 2 {
			m.status = "usage: granularity <day|week|month|quarter|year>"
			return m, nil
		}
		m.query.Granularity = parts[1]
		m.activeTab = tabTrends
		return m, m.trendsView.Load(m.query)

	case "user":
		if len(parts) != 2 {
			m.status = "usage: user <id>"
			return m, nil
		}
		m.query.UserID = parts[1]
		return m, m.reload()

	case "insight":
		if len(parts) != 2 {
			m.status = "usage: insight <emotion|productivity|pattern|comprehensive>"
			return m, nil
		}
		m.activeTab = tabInsights
		m.status = "generating " + parts[1] + " insight"
		return m, m.insightsView.Generate(parts[1], m.query)

	case "refresh":
		return m, m.reload()
	}
	m.status = "unknown command: " + parts[0]
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) reload() tea.Cmd {
	return tea.Batch(
		m.dashView.Load(m.query),
		m.trendsView.Load(m.query),
		m.patternsView.Load(m.query),
		m.insightsView.Load(m.query.UserID),
	)
}

// subViewFiltering reports whether the active tab's list filter is open, in
// which case global key bindings yield to free typing.
func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabPatterns:
		return m.patternsView.Filtering()
	case tabInsights:
		return m.insightsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 4}
	m.dashView, _ = m.dashView.Update(sz)
	m.trendsView, _ = m.trendsView.Update(sz)
	m.patternsView, _ = m.patternsView.Update(sz)
	m.insightsView, _ = m.insightsView.Update(sz)
}
