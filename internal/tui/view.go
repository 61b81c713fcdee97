package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	statsPkg "github.com/jaymody/lpm/internal/stats"
)

var (
	textStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#3BD671"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Underline(true)
	authorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#4FD6E0"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D75FD7"))
	topBarStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// View implements tea.Model.
func (m *Model) View() string {
	if len(m.runes) == 0 {
		return ""
	}
	if msg := m.sizeWarning(); msg != "" {
		return msg
	}

	var b strings.Builder
	b.WriteString(topBarStyle.Render(m.statBarPadded()))
	b.WriteString("\n\n")
	b.WriteString(authorStyle.Render(m.sourceLine()))
	b.WriteString("\n\n")
	for i := range m.runes {
		b.WriteString(m.renderLine(i))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(promptStyle.Render(m.prompt()))
	return b.String()
}

// sizeWarning reports when the terminal is too small for the current snippet.
func (m *Model) sizeWarning() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	needRows := len(m.runes) + 6
	needCols := 0
	for _, line := range m.runes {
		if w := runewidth.StringWidth(string(line)); w > needCols {
			needCols = w
		}
	}
	if m.height < needRows {
		return fmt.Sprintf("lpm needs at least %d rows for this snippet; expand your terminal or lower max-lines", needRows)
	}
	if m.width < needCols {
		return fmt.Sprintf("lpm needs at least %d columns for this snippet; expand your terminal or lower max-cols", needCols)
	}
	return ""
}

func (m *Model) statBarPadded() string {
	bar := m.statBar()
	if m.width > 0 {
		bar = runewidth.FillRight(bar, m.width-1)
	}
	return bar
}

func (m *Model) statBar() string {
	var elapsedMs int64
	lines, correct, incorrect := m.linesDone, m.correct, m.incorrect
	switch m.state {
	case stateTyping:
		elapsedMs = m.now.Sub(m.startedAt).Milliseconds()
	case stateDone:
		elapsedMs = m.lastDur
	}
	lpm, wpm, cpm, acc := statsPkg.SessionMetrics(lines, correct, incorrect, elapsedMs)
	if m.state == stateDone {
		lpm, wpm, cpm, acc = m.lastLPM, m.lastWPM, m.lastCPM, m.lastAcc
	}
	return fmt.Sprintf("%6.1fs | %6.2f lpm | %6.2f wpm | %7.2f cpm | %6.2f%% acc",
		float64(elapsedMs)/1000, lpm, wpm, cpm, acc*100)
}

func (m *Model) sourceLine() string {
	snip := m.library.Current()
	if m.width > 0 && runewidth.StringWidth(snip.URL) > m.width-1 {
		return snip.Author
	}
	return snip.URL
}

func (m *Model) renderLine(row int) string {
	var b strings.Builder
	for col, r := range m.runes[row] {
		atCursor := row == m.row && col == m.col && m.state != stateDone
		switch {
		case atCursor:
			b.WriteString(cursorStyle.Render(string(r)))
		case m.marks[row][col] == markCorrect:
			b.WriteString(correctStyle.Render(string(r)))
		case m.marks[row][col] == markWrong:
			b.WriteString(incorrectStyle.Render(string(r)))
		default:
			b.WriteString(textStyle.Render(string(r)))
		}
	}
	if row == m.row && m.col == len(m.runes[row]) && m.state != stateDone {
		b.WriteString(cursorStyle.Render(" "))
	}
	return b.String()
}

func (m *Model) prompt() string {
	switch m.state {
	case stateDone:
		return fmt.Sprintf("You scored %.2f lpm, press ESC to quit, ARROWS to browse, or start typing!", m.lastLPM)
	case stateBrowsing:
		return "press ESC to quit, ARROWS to browse, or start typing!"
	default:
		return ""
	}
}
