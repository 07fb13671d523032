package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/avelez/pitchnote/internal/scale"
)

func matchFor(t *testing.T, f scale.Frequency) scale.Match {
	t.Helper()
	match, err := scale.ClosestNote(f)
	if err != nil {
		t.Fatalf("ClosestNote(%v): %v", f, err)
	}
	return match
}

func TestUpdateMatchShowsNote(t *testing.T) {
	m := NewModel(false)

	updated, _ := m.Update(UpdateMatchMsg{
		Match:     matchFor(t, 440.0),
		Frequency: 440.0,
	})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "A4") {
		t.Errorf("view does not show A4:\n%s", view)
	}
	if !strings.Contains(view, "in tune") {
		t.Errorf("view does not show in-tune state:\n%s", view)
	}
}

func TestUpdateMatchShowsCentsWhenOffTune(t *testing.T) {
	m := NewModel(false)

	updated, _ := m.Update(UpdateMatchMsg{
		Match:     matchFor(t, 446.16),
		Frequency: 446.16,
	})
	m = updated.(Model)

	view := m.View()
	if !strings.Contains(view, "cents") {
		t.Errorf("view does not show cents deviation:\n%s", view)
	}
	if strings.Contains(view, "in tune") {
		t.Errorf("24 cents sharp reported as in tune:\n%s", view)
	}
}

func TestClearNoteReturnsToListening(t *testing.T) {
	m := NewModel(false)

	updated, _ := m.Update(UpdateMatchMsg{
		Match:     matchFor(t, 440.0),
		Frequency: 440.0,
	})
	m = updated.(Model)
	updated, _ = m.Update(ClearNoteMsg{})
	m = updated.(Model)

	// The note was never stable, so clearing returns to the idle view.
	if view := m.View(); !strings.Contains(view, "Listening") {
		t.Errorf("expected listening prompt after clear:\n%s", view)
	}
}

func TestQuitKeys(t *testing.T) {
	m := NewModel(false)
	for _, key := range []string{"q", "ctrl+c"} {
		var msg tea.Msg
		if key == "q" {
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
		} else {
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		}
		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %s did not quit", key)
		}
	}
}
