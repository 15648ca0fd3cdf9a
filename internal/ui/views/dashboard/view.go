package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"retrolog/internal/modules/analytics/dto"
	"retrolog/internal/ui/theme"
)

type Port interface {
	Dashboard(ctx context.Context, input dto.RangeInput) (dto.DashboardOutput, error)
}

type LoadedMsg struct {
	Dashboard dto.DashboardOutput
	Err       error
}

type Model struct {
	port    Port
	data    dto.DashboardOutput
	err     error
	body    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	vp := viewport.New(0, 0)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, body: vp, spinner: sp}
}

// Load fetches the dashboard for input.
func (m *Model) Load(input dto.RangeInput) tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.loading = true
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out, err := port.Dashboard(context.Background(), input)
		return LoadedMsg{Dashboard: out, Err: err}
	})
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.body.Width = msg.Width
		m.body.Height = msg.Height
		m.body.SetContent(m.render())
	case LoadedMsg:
		m.loading = false
		m.data, m.err = msg.Dashboard, msg.Err
		m.body.SetContent(m.render())
		m.body.GotoTop()
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.body, cmd = m.body.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.spinner.View()+" Computing…")
	}
	return m.body.View()
}

func (m Model) render() string {
	if m.err != nil {
		return theme.Bad.Render("dashboard: " + m.err.Error())
	}
	d := m.data
	p := d.Period
	if p.Days == 0 {
		return theme.Muted.Render("no data loaded")
	}

	half := m.width/2 - 2
	if half < 30 {
		half = 30
	}
	period := []string{
		theme.Title.Render(fmt.Sprintf("%s → %s", p.Start.Format("Jan 2"), p.End.Format("Jan 2, 2006"))),
		row("Sessions", fmt.Sprintf("%d (%.0f%% done)", p.SessionsCount, p.SessionCompletionRate)),
		row("Items", fmt.Sprintf("%d (%.0f%% done)", p.ItemsCount, p.ItemCompletionRate)),
		row("Reflection", fmt.Sprintf("%.0f%% of days", p.ReflectionFrequencyRate)),
		row("Marks", fmt.Sprintf("%d", p.MarksCount)),
	}
	for _, c := range []string{"keep", "problem", "try"} {
		period = append(period, row("  "+c, fmt.Sprintf("%d", categoryCount(p.CategoryCounts, c))))
	}

	scores := []string{
		theme.Title.Render("Scores"),
		row("Emotion", score(p.AverageEmotion)+"  "+theme.Trend(string(d.Trends.Emotion))),
		row("Impact", score(p.AverageImpact)+"  "+theme.Trend(string(d.Trends.Impact))),
		row("Productivity", score(d.Productivity)+"  "+theme.Trend(string(d.Trends.Productivity))),
		row("Streak", fmt.Sprintf("%d days", d.Streak.Current)),
		row("Longest", fmt.Sprintf("%d days", d.Streak.LongestFullHistory)),
	}
	if d.WorkLogsAvailable {
		scores = append(scores, row("Work", fmt.Sprintf("%s in %d logs", d.Work.TotalFormatted, d.Work.Count)))
	}

	top := lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Pane.Width(half).Render(strings.Join(period, "\n")),
		theme.Pane.Width(half).Render(strings.Join(scores, "\n")),
	)

	var recs strings.Builder
	recs.WriteString(theme.Title.Render("Recommendations") + "\n")
	if len(d.Recommendations) == 0 {
		recs.WriteString(theme.Good.Render("Nothing to flag for this period."))
	}
	for _, r := range d.Recommendations {
		fmt.Fprintf(&recs, "%s %s\n  %s\n", theme.Priority(string(r.Priority)), theme.Hot.Render(r.Title), theme.Muted.Render(r.Description))
		for _, a := range r.Actions {
			recs.WriteString("   · " + a + "\n")
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, top, theme.Pane.Width(2*half+2).Render(strings.TrimRight(recs.String(), "\n")))
}

func row(label, value string) string {
	return theme.Muted.Render(fmt.Sprintf("%-13s", label)) + value
}

func score(v *float64) string {
	if v == nil {
		return theme.Muted.Render("–")
	}
	return fmt.Sprintf("%.2f", *v)
}

func categoryCount[K ~string](counts map[K]int, name string) int {
	return counts[K(name)]
}
