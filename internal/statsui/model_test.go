package statsui

import (
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaymody/lpm/internal/model"
	"github.com/jaymody/lpm/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "lpm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return NewModel(st, model.StatsConfig{CurveWindow: 20})
}

func TestFilterInputAcceptsQ(t *testing.T) {
	m := newTestModel(t)
	m.startFilter()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatalf("q inside the filter form must not quit")
		}
	}
	if !m.filterMode {
		t.Fatalf("expected filter form to stay open")
	}
	if got := m.filterInputs[0].Value(); got != "q" {
		t.Fatalf("expected q to reach the lang input, got %q", got)
	}
}

func TestQQuitsOutsideFilter(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, quit := cmd().(tea.QuitMsg); !quit {
		t.Fatalf("expected q to quit")
	}
}
