// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaymody/lpm/internal/model"
	"github.com/jaymody/lpm/internal/snippets"
	statsPkg "github.com/jaymody/lpm/internal/stats"
	"github.com/jaymody/lpm/internal/store"
)

type sessionState int

const (
	stateBrowsing sessionState = iota
	stateTyping
	stateDone
)

type mark uint8

const (
	markNone mark = iota
	markCorrect
	markWrong
)

type tickMsg time.Time

const tickInterval = 250 * time.Millisecond

// Model implements the Bubble Tea typing UI.
type Model struct {
	cfg     model.Config
	store   *store.Store
	library *snippets.Library

	width  int
	height int

	state sessionState
	runes [][]rune
	marks [][]mark
	row   int
	col   int

	startedAt time.Time
	now       time.Time
	linesDone int
	correct   int
	incorrect int

	lastLPM float64
	lastWPM float64
	lastCPM float64
	lastAcc float64
	lastDur int64
}

// NewModel constructs a typing TUI model over a snippet library.
func NewModel(cfg model.Config, st *store.Store, lib *snippets.Library) *Model {
	m := &Model{
		cfg:     cfg,
		store:   st,
		library: lib,
	}
	m.resetSnippet()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tickMsg:
		if m.state != stateTyping {
			return m, nil
		}
		m.now = time.Time(msg)
		return m, tick()
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.state {
		case stateBrowsing:
			return m.updateBrowsing(msg)
		case stateTyping:
			return m.updateTyping(msg)
		default:
			return m.updateDone(msg)
		}
	default:
		return m, nil
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		m.library.Prev()
		m.resetSnippet()
		return m, nil
	case tea.KeyRight:
		m.library.Next()
		m.resetSnippet()
		return m, nil
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyBackspace, tea.KeyDelete:
		return m, nil
	case tea.KeySpace:
		m.startAttempt()
		m.typeRunes([]rune{' '})
		return m, tick()
	case tea.KeyRunes:
		m.startAttempt()
		m.typeRunes(msg.Runes)
		return m, tick()
	default:
		return m, nil
	}
}

func (m *Model) updateTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.now = time.Now()
	switch msg.Type {
	case tea.KeyEsc:
		m.resetSnippet()
		return m, nil
	case tea.KeyEnter:
		m.handleEnter()
	case tea.KeyBackspace, tea.KeyDelete:
		m.handleBackspace()
	case tea.KeySpace:
		m.typeRunes([]rune{' '})
	case tea.KeyRunes:
		m.typeRunes(msg.Runes)
	}
	return m, nil
}

func (m *Model) updateDone(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyLeft:
		m.library.Prev()
		m.resetSnippet()
		return m, nil
	case tea.KeyRight:
		m.library.Next()
		m.resetSnippet()
		return m, nil
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyEnter, tea.KeyBackspace, tea.KeyDelete:
		return m, nil
	case tea.KeySpace:
		m.resetSnippet()
		m.startAttempt()
		m.typeRunes([]rune{' '})
		return m, tick()
	case tea.KeyRunes:
		m.resetSnippet()
		m.startAttempt()
		m.typeRunes(msg.Runes)
		return m, tick()
	default:
		return m, nil
	}
}

func (m *Model) resetSnippet() {
	snip := m.library.Current()
	m.runes = make([][]rune, len(snip.Lines))
	m.marks = make([][]mark, len(snip.Lines))
	for i, line := range snip.Lines {
		m.runes[i] = []rune(line)
		m.marks[i] = make([]mark, len(m.runes[i]))
	}
	m.row = 0
	m.col = m.indent(0)
	m.state = stateBrowsing
	m.startedAt = time.Time{}
	m.now = time.Time{}
	m.linesDone = 0
	m.correct = 0
	m.incorrect = 0
}

func (m *Model) startAttempt() {
	m.startedAt = time.Now()
	m.now = m.startedAt
	m.linesDone = 0
	m.correct = 0
	m.incorrect = 0
	m.state = stateTyping
}

func (m *Model) indent(row int) int {
	count := 0
	for _, r := range m.runes[row] {
		if r != ' ' {
			break
		}
		count++
	}
	return count
}

func (m *Model) atEndOfLine() bool {
	return m.col == len(m.runes[m.row]) && m.row != len(m.runes)-1
}

func (m *Model) atEndOfSnippet() bool {
	return m.col == len(m.runes[m.row]) && m.row == len(m.runes)-1
}

func (m *Model) handleEnter() {
	if !m.atEndOfLine() {
		return
	}
	m.linesDone++
	m.row++
	for m.row < len(m.runes)-1 && len(m.runes[m.row]) == 0 {
		m.row++
	}
	m.col = m.indent(m.row)
	// Landing on a blank final line means there is nothing left to type.
	if m.atEndOfSnippet() {
		m.finishAttempt()
	}
}

func (m *Model) handleBackspace() {
	if m.row == 0 && m.col == m.indent(0) {
		return
	}
	if m.col == m.indent(m.row) {
		m.row--
		m.col = len(m.runes[m.row]) - 1
		if m.col < 0 {
			m.col = 0
		}
	} else {
		m.col--
	}
	if m.col < len(m.marks[m.row]) {
		m.marks[m.row][m.col] = markNone
	}
}

func (m *Model) typeRunes(runes []rune) {
	for _, r := range runes {
		if m.state != stateTyping {
			return
		}
		if m.col >= len(m.runes[m.row]) {
			// Waiting for Enter at the end of a line.
			return
		}
		if r == m.runes[m.row][m.col] {
			m.correct++
			m.marks[m.row][m.col] = markCorrect
		} else {
			m.incorrect++
			m.marks[m.row][m.col] = markWrong
		}
		m.col++
		if m.atEndOfSnippet() {
			m.linesDone++
			m.finishAttempt()
			return
		}
	}
}

func (m *Model) finishAttempt() {
	endedAt := time.Now()
	m.now = endedAt
	snip := m.library.Current()
	stats := model.SessionStats{
		StartedAt:  m.startedAt,
		EndedAt:    endedAt,
		Language:   snip.Language,
		SnippetURL: snip.URL,
		Lines:      m.linesDone,
		Correct:    m.correct,
		Incorrect:  m.incorrect,
		DurationMs: endedAt.Sub(m.startedAt).Milliseconds(),
	}
	if _, err := m.store.InsertSession(context.Background(), stats); err != nil {
		logErrf("failed to save session: %v\n", err)
	}
	m.lastLPM, m.lastWPM, m.lastCPM, m.lastAcc = statsPkg.SessionMetrics(stats.Lines, stats.Correct, stats.Incorrect, stats.DurationMs)
	m.lastDur = stats.DurationMs
	m.state = stateDone
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
