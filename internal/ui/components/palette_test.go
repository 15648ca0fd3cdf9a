package components

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestMatchHintsByPrefix(t *testing.T) {
	t.Parallel()
	got := matchHints("gra")
	if len(got) != 1 || got[0] != "granularity <day|week|month|quarter|year>" {
		t.Fatalf("unexpected hints %v", got)
	}
	if all := matchHints(""); len(all) != len(PaletteHints) {
		t.Fatalf("empty input should list every hint, got %d", len(all))
	}
}

func TestPaletteSubmitsTrimmedInput(t *testing.T) {
	t.Parallel()
	p := NewPalette()
	p.Open()
	for _, r := range " last 7 " {
		p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	p, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if p.Visible() {
		t.Fatalf("palette should close on enter")
	}
	msg, ok := cmd().(PaletteSubmitMsg)
	if !ok || msg.Input != "last 7" {
		t.Fatalf("unexpected message %#v", cmd())
	}
}
