package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaymody/lpm/internal/model"
	"github.com/jaymody/lpm/internal/snippets"
	"github.com/jaymody/lpm/internal/store"
)

func newTestModel(t *testing.T, snips []model.Snippet) (*Model, *store.Store) {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "lpm.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	cfg := model.Config{MaxLines: 40, MaxCols: 80}
	return NewModel(cfg, st, snippets.NewLibrary(snips)), st
}

func testSnippet() model.Snippet {
	return model.Snippet{
		ID: 0,
		Lines: []string{
			"def f(x):",
			"    return x",
			"",
			"print(f(1))",
		},
		URL:      "https://github.com/user/repo/blob/abc/file.py#L1-L4",
		Author:   "user/repo",
		Language: "python",
	}
}

func typeString(m *Model, s string) {
	for _, r := range s {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func pressKey(m *Model, key tea.KeyType) {
	m.Update(tea.KeyMsg{Type: key})
}

func TestTypingFullSnippetRecordsSession(t *testing.T) {
	m, st := newTestModel(t, []model.Snippet{testSnippet()})
	if m.state != stateBrowsing {
		t.Fatalf("expected browsing state at start")
	}
	if m.col != 0 {
		t.Fatalf("expected cursor at first column, got %d", m.col)
	}

	typeString(m, "def f(x):")
	if m.state != stateTyping {
		t.Fatalf("expected typing state after first keystroke")
	}
	if m.correct != 9 || m.incorrect != 0 {
		t.Fatalf("unexpected counts: correct=%d incorrect=%d", m.correct, m.incorrect)
	}

	pressKey(m, tea.KeyEnter)
	if m.row != 1 || m.col != 4 {
		t.Fatalf("expected cursor at row 1 col 4, got row %d col %d", m.row, m.col)
	}
	typeString(m, "return x")

	// Enter skips the blank line and lands on the final line.
	pressKey(m, tea.KeyEnter)
	if m.row != 3 || m.col != 0 {
		t.Fatalf("expected blank line skipped, got row %d col %d", m.row, m.col)
	}

	typeString(m, "print(f(1))")
	if m.state != stateDone {
		t.Fatalf("expected done state after finishing snippet")
	}
	if m.linesDone != 3 {
		t.Fatalf("expected 3 completed lines, got %d", m.linesDone)
	}

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("expected 1 recorded session, got %d", len(sessions))
	}
	if sessions[0].Correct != 28 || sessions[0].Incorrect != 0 {
		t.Fatalf("unexpected recorded counts: %+v", sessions[0])
	}
	if sessions[0].Language != "python" {
		t.Fatalf("unexpected language: %q", sessions[0].Language)
	}
}

func TestTrailingBlankLineCompletesSession(t *testing.T) {
	snip := model.Snippet{
		ID:       0,
		Lines:    []string{"ab", ""},
		URL:      "https://github.com/user/repo/blob/abc/f#L1-L2",
		Author:   "user/repo",
		Language: "python",
	}
	m, st := newTestModel(t, []model.Snippet{snip})

	typeString(m, "ab")
	if m.state != stateTyping {
		t.Fatalf("expected typing state before the final enter")
	}
	pressKey(m, tea.KeyEnter)
	if m.state != stateDone {
		t.Fatalf("expected enter onto the blank final line to complete the session, got state=%d row=%d col=%d", m.state, m.row, m.col)
	}
	if m.linesDone != 1 {
		t.Fatalf("expected 1 completed line, got %d", m.linesDone)
	}

	sessions, err := st.ListSessions(context.Background(), model.StatsConfig{})
	if err != nil {
		t.Fatalf("list sessions: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Lines != 1 {
		t.Fatalf("unexpected recorded sessions: %+v", sessions)
	}
}

func TestWrongKeysCountAsIncorrect(t *testing.T) {
	m, _ := newTestModel(t, []model.Snippet{testSnippet()})
	typeString(m, "xyz")
	if m.incorrect != 3 || m.correct != 0 {
		t.Fatalf("unexpected counts: correct=%d incorrect=%d", m.correct, m.incorrect)
	}
	if m.marks[0][0] != markWrong {
		t.Fatalf("expected wrong mark at first char")
	}
}

func TestBackspaceClearsMarkAndStopsAtStart(t *testing.T) {
	m, _ := newTestModel(t, []model.Snippet{testSnippet()})
	typeString(m, "de")
	pressKey(m, tea.KeyBackspace)
	if m.col != 1 {
		t.Fatalf("expected col 1 after backspace, got %d", m.col)
	}
	if m.marks[0][1] != markNone {
		t.Fatalf("expected mark cleared at col 1")
	}
	pressKey(m, tea.KeyBackspace)
	pressKey(m, tea.KeyBackspace) // at start of snippet: no-op
	if m.row != 0 || m.col != 0 {
		t.Fatalf("expected cursor pinned at start, got row %d col %d", m.row, m.col)
	}
}

func TestBackspaceCrossesLineBoundary(t *testing.T) {
	m, _ := newTestModel(t, []model.Snippet{testSnippet()})
	typeString(m, "def f(x):")
	pressKey(m, tea.KeyEnter)
	pressKey(m, tea.KeyBackspace)
	if m.row != 0 || m.col != 8 {
		t.Fatalf("expected cursor on last char of previous line, got row %d col %d", m.row, m.col)
	}
}

func TestEnterIgnoredMidLine(t *testing.T) {
	m, _ := newTestModel(t, []model.Snippet{testSnippet()})
	typeString(m, "def")
	pressKey(m, tea.KeyEnter)
	if m.row != 0 || m.col != 3 {
		t.Fatalf("expected enter to be ignored mid-line, got row %d col %d", m.row, m.col)
	}
}

func TestEscapeAbandonsAttempt(t *testing.T) {
	m, _ := newTestModel(t, []model.Snippet{testSnippet()})
	typeString(m, "def")
	pressKey(m, tea.KeyEsc)
	if m.state != stateBrowsing {
		t.Fatalf("expected browsing state after escape")
	}
	if m.correct != 0 || m.col != 0 {
		t.Fatalf("expected attempt reset, got correct=%d col=%d", m.correct, m.col)
	}
}

func TestDoneStateStartsNewAttemptOnKeystroke(t *testing.T) {
	single := model.Snippet{
		ID:       0,
		Lines:    []string{"ab"},
		URL:      "https://github.com/user/repo/blob/abc/f#L1-L1",
		Author:   "user/repo",
		Language: "python",
	}
	m, _ := newTestModel(t, []model.Snippet{single})
	typeString(m, "ab")
	if m.state != stateDone {
		t.Fatalf("expected done state")
	}
	typeString(m, "a")
	if m.state != stateTyping {
		t.Fatalf("expected new attempt to start from done state")
	}
	if m.correct != 1 {
		t.Fatalf("expected the triggering keystroke to count, got %d", m.correct)
	}
}

func TestStatBarFormats(t *testing.T) {
	m, _ := newTestModel(t, []model.Snippet{testSnippet()})
	m.state = stateTyping
	m.startedAt = time.Unix(0, 0)
	m.now = m.startedAt.Add(30 * time.Second)
	m.linesDone = 3
	m.correct = 95
	m.incorrect = 5
	bar := m.statBar()
	for _, want := range []string{"30.0s", "6.00 lpm", "38.00 wpm", "190.00 cpm", "95.00% acc"} {
		if !strings.Contains(bar, want) {
			t.Fatalf("stat bar missing %q: %s", want, bar)
		}
	}
}
