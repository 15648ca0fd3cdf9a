package patterns

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"retrolog/internal/modules/analytics/dto"
	"retrolog/internal/ui/theme"
)

type Port interface {
	Patterns(ctx context.Context, input dto.RangeInput) (dto.PatternsOutput, error)
}

type LoadedMsg struct {
	Report dto.PatternsOutput
	Err    error
}

type entry struct {
	title string
	desc  string
}

func (e entry) Title() string       { return e.title }
func (e entry) Description() string { return e.desc }
func (e entry) FilterValue() string { return e.title }

type Model struct {
	port   Port
	list   list.Model
	width  int
	height int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Patterns"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	return Model{port: port, list: l}
}

func (m *Model) Load(input dto.RangeInput) tea.Cmd {
	if m.port == nil {
		return nil
	}
	port := m.port
	return func() tea.Msg {
		out, err := port.Patterns(context.Background(), input)
		return LoadedMsg{Report: out, Err: err}
	}
}

// Filtering reports whether the list's search filter has focus.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height)
	case LoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Patterns: " + msg.Err.Error()
			return m, m.list.SetItems(nil)
		}
		m.list.Title = "Patterns"
		return m, m.list.SetItems(entries(msg.Report))
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	return m.list.View()
}

func entries(r dto.PatternsOutput) []list.Item {
	items := []list.Item{}
	for _, t := range r.RecurringThemes {
		items = append(items, entry{title: "#" + t.Tag, desc: fmt.Sprintf("theme · %d items", t.Count)})
	}
	for _, s := range r.SuccessPatterns {
		desc := fmt.Sprintf("success · %d completed · %s impact", s.CompletedCount, s.Classification)
		if s.AverageImpact != nil {
			desc += fmt.Sprintf(" (%.1f)", *s.AverageImpact)
		}
		items = append(items, entry{title: string(s.Category) + " wins", desc: desc})
	}
	for _, p := range r.ProblemPatterns {
		desc := fmt.Sprintf("problem · %d overdue", p.OverdueCount)
		if p.AverageEmotion != nil {
			desc += fmt.Sprintf(" · emotion %.1f", *p.AverageEmotion)
		}
		items = append(items, entry{title: string(p.Category) + " backlog", desc: desc})
	}
	for _, pair := range r.TagPairs {
		items = append(items, entry{title: pair.A + " + " + pair.B, desc: fmt.Sprintf("tag pair · together %d times", pair.Count)})
	}
	for _, w := range r.Weekdays {
		if w.Sessions == 0 && w.Items == 0 {
			continue
		}
		items = append(items, entry{title: w.Weekday, desc: fmt.Sprintf("weekday · %d sessions · %d items", w.Sessions, w.Items)})
	}
	return items
}
