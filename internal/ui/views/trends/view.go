package trends

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"retrolog/internal/modules/analytics/dto"
	"retrolog/internal/ui/components"
	"retrolog/internal/ui/theme"
)

const sparkHeight = 3

type Port interface {
	Charts(ctx context.Context, input dto.RangeInput) (dto.ChartsOutput, error)
	WorkLogStats(ctx context.Context, input dto.RangeInput) (dto.WorkLogStatsOutput, error)
}

type LoadedMsg struct {
	Charts dto.ChartsOutput
	Work   dto.WorkLogStatsOutput
	Err    error
}

type Model struct {
	port    Port
	charts  dto.ChartsOutput
	work    dto.WorkLogStatsOutput
	err     error
	body    viewport.Model
	spinner spinner.Model
	loading bool
	width   int
	height  int
}

func New(port Port) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
	return Model{port: port, body: viewport.New(0, 0), spinner: sp}
}

// Load fetches both chart sets for input; the work log stats share its granularity.
func (m *Model) Load(input dto.RangeInput) tea.Cmd {
	if m.port == nil {
		return nil
	}
	m.loading = true
	port := m.port
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		ctx := context.Background()
		charts, err := port.Charts(ctx, input)
		if err != nil {
			return LoadedMsg{Err: err}
		}
		work, err := port.WorkLogStats(ctx, input)
		return LoadedMsg{Charts: charts, Work: work, Err: err}
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
		m.charts, m.work, m.err = msg.Charts, msg.Work, msg.Err
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
		return theme.Bad.Render("trends: " + m.err.Error())
	}
	c := m.charts
	if len(c.Items) == 0 {
		return theme.Muted.Render("no data loaded")
	}
	width := m.width - 8
	if width < 20 {
		width = 20
	}

	var sb strings.Builder
	sb.WriteString(theme.Title.Render(fmt.Sprintf("Trends by %s (%d buckets)", c.Granularity, len(c.Items))) + "\n\n")
	sb.WriteString(chart("Items", theme.Muted.Render(fmt.Sprintf("%d total", totalOf(c.Items))), bucketTotals(c.Items), width))
	sb.WriteString(chart("Emotion", theme.Trend(string(c.Trends.Emotion)), averages(c.Emotion), width))
	sb.WriteString(chart("Impact", theme.Trend(string(c.Trends.Impact)), averages(c.Impact), width))
	sb.WriteString(chart("Productivity", theme.Trend(string(c.Trends.Productivity)), averages(c.Productivity), width))

	if m.work.Available {
		minutes := make([]*float64, len(m.work.Minutes))
		for i, s := range m.work.Minutes {
			v := s.Total
			minutes[i] = &v
		}
		sb.WriteString(chart("Work minutes", theme.Muted.Render(m.work.Summary.TotalFormatted), minutes, width))
	}
	sb.WriteString(theme.Muted.Render(labelsLine(c.Items, width)))
	return sb.String()
}

func chart(title, note string, values []*float64, width int) string {
	return theme.Title.Render(title) + "  " + note + "\n" + components.Sparkline(values, width, sparkHeight) + "\n\n"
}

func averages(points []dto.SeriesPoint) []*float64 {
	out := make([]*float64, len(points))
	for i, p := range points {
		out[i] = p.Average
	}
	return out
}

func bucketTotals(buckets []dto.Bucket) []*float64 {
	out := make([]*float64, len(buckets))
	for i, b := range buckets {
		v := float64(b.Total)
		out[i] = &v
	}
	return out
}

func totalOf(buckets []dto.Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Total
	}
	return n
}

// labelsLine shows the first and last bucket labels under the charts.
func labelsLine(buckets []dto.Bucket, width int) string {
	if len(buckets) == 0 {
		return ""
	}
	first, last := buckets[0].Label, buckets[len(buckets)-1].Label
	gap := width - len(first) - len(last)
	if gap < 1 {
		gap = 1
	}
	return first + strings.Repeat(" ", gap) + last
}
