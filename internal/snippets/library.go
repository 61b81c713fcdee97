package snippets

import (
	"math/rand"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/jaymody/lpm/internal/model"
)

// Library holds an ordered set of snippets with a browse cursor.
type Library struct {
	snippets []model.Snippet
	index    int
	rnd      *rand.Rand
}

// NewLibrary builds a shuffled library from the given snippets.
func NewLibrary(snips []model.Snippet) *Library {
	lib := &Library{
		snippets: snips,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	lib.Shuffle()
	return lib
}

// Len returns the number of snippets.
func (l *Library) Len() int {
	return len(l.snippets)
}

// Shuffle randomizes snippet order and resets the cursor.
func (l *Library) Shuffle() {
	l.rnd.Shuffle(len(l.snippets), func(i, j int) {
		l.snippets[i], l.snippets[j] = l.snippets[j], l.snippets[i]
	})
	l.index = 0
}

// Current returns the snippet under the cursor.
func (l *Library) Current() model.Snippet {
	return l.snippets[l.index]
}

// Next advances the cursor, wrapping at the end.
func (l *Library) Next() model.Snippet {
	l.index = (l.index + 1) % len(l.snippets)
	return l.snippets[l.index]
}

// Prev moves the cursor back, wrapping at the start.
func (l *Library) Prev() model.Snippet {
	l.index = (l.index - 1 + len(l.snippets)) % len(l.snippets)
	return l.snippets[l.index]
}

// Filter keeps snippets in the language whitelist that fit the terminal
// budget. An empty whitelist keeps every language.
func Filter(snips []model.Snippet, languages []string, maxLines, maxCols int) []model.Snippet {
	whitelist := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		whitelist[lang] = struct{}{}
	}
	out := make([]model.Snippet, 0, len(snips))
	for _, snip := range snips {
		if len(whitelist) > 0 {
			if _, ok := whitelist[snip.Language]; !ok {
				continue
			}
		}
		if len(snip.Lines) > maxLines {
			continue
		}
		if widest(snip.Lines) > maxCols {
			continue
		}
		out = append(out, snip)
	}
	return out
}

func widest(lines []string) int {
	max := 0
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > max {
			max = w
		}
	}
	return max
}
