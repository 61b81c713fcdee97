package snippets

import "strings"

const tabWidth = 4

// Normalize prepares raw source lines for typing: trailing whitespace is
// stripped, tabs become spaces, and the indentation of the first line is
// removed from every line (capped at each line's own indentation).
func Normalize(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", tabWidth))
		out[i] = line
	}
	if len(out) == 0 {
		return out
	}
	first := indentOf(out[0])
	for i, line := range out {
		cut := indentOf(line)
		if cut > first {
			cut = first
		}
		out[i] = line[cut:]
	}
	return out
}

func indentOf(line string) int {
	return len(line) - len(strings.TrimLeft(line, " "))
}
