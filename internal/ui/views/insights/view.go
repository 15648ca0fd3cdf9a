package insights

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"retrolog/internal/modules/analytics/dto"
	"retrolog/internal/ui/theme"
)

type Port interface {
	ListInsights(ctx context.Context, input dto.ListInsightsInput) ([]dto.InsightOutput, error)
	GenerateInsight(ctx context.Context, input dto.InsightInput) (dto.InsightOutput, error)
	SetInsightActive(ctx context.Context, input dto.SetInsightActiveInput) (dto.InsightOutput, error)
}

type LoadedMsg struct {
	Insights []dto.InsightOutput
	Err      error
}

// ChangedMsg reports a generated or toggled insight; the list reloads after it.
type ChangedMsg struct {
	Insight dto.InsightOutput
	Err     error
}

type insightItem struct{ insight dto.InsightOutput }

func (i insightItem) Title() string {
	title := string(i.insight.Kind)
	if !i.insight.Active {
		title += " (archived)"
	}
	return title
}

func (i insightItem) Description() string {
	return fmt.Sprintf("%s · %s..%s · confidence %.2f",
		i.insight.GeneratedAt.Format("2006-01-02 15:04"),
		i.insight.PeriodStart.Format("Jan 2"),
		i.insight.PeriodEnd.Format("Jan 2"),
		i.insight.Confidence)
}

func (i insightItem) FilterValue() string { return string(i.insight.Kind) }

type Model struct {
	port    Port
	user    string
	list    list.Model
	content viewport.Model
	width   int
	height  int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Insights"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text).Padding(1)
	return Model{port: port, list: l, content: vp}
}

// Load lists the stored insights of user, newest first.
func (m *Model) Load(user string) tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.user = user
	port := m.port
	return func() tea.Msg {
		out, err := port.ListInsights(context.Background(), dto.ListInsightsInput{UserID: user, Limit: 100})
		return LoadedMsg{Insights: out, Err: err}
	}
}

// Generate stores a new insight of kind for input.
func (m *Model) Generate(kind string, input dto.RangeInput) tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		out, err := port.GenerateInsight(context.Background(), dto.InsightInput{RangeInput: input, Kind: kind, Persist: true, WithSuggestions: true})
		return ChangedMsg{Insight: out, Err: err}
	}
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width*4/10, msg.Height)
		m.content.Width = msg.Width - msg.Width*4/10 - 2
		m.content.Height = msg.Height
	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Insights: " + msg.Err.Error()
			return m, nil
		}
		m.list.Title = "Insights"
		items := make([]list.Item, len(msg.Insights))
		for i, in := range msg.Insights {
			items[i] = insightItem{insight: in}
		}
		cmds = append(cmds, m.list.SetItems(items))
	case ChangedMsg:
		if msg.Err != nil {
			m.content.SetContent(theme.Bad.Render(msg.Err.Error()))
			return m, nil
		}
		return m, m.Load(m.user)
	case tea.KeyMsg:
		if msg.String() == "a" && !m.Filtering() {
			if item, ok := m.list.SelectedItem().(insightItem); ok && m.port != nil {
				return m, m.toggleCmd(item.insight)
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	if item, ok := m.list.SelectedItem().(insightItem); ok {
		m.content.SetContent(renderContent(item.insight))
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listPane := lipgloss.NewStyle().Width(m.width * 4 / 10).Height(m.height).Render(m.list.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, m.content.View())
}

func (m Model) toggleCmd(insight dto.InsightOutput) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.SetInsightActive(context.Background(), dto.SetInsightActiveInput{ID: insight.ID, Active: !insight.Active})
		return ChangedMsg{Insight: out, Err: err}
	}
}

func renderContent(insight dto.InsightOutput) string {
	header := theme.Title.Render(string(insight.Type)) + "  " + theme.Muted.Render(insight.DataSource) + "\n" +
		theme.Muted.Render("a: archive/restore") + "\n\n"
	var pretty bytes.Buffer
	if err := json.Indent(&pretty, insight.Content, "", "  "); err != nil {
		return header + string(insight.Content)
	}
	return header + pretty.String()
}
