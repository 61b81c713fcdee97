// Package snippets loads, stores, and serves code snippets.
package snippets

import (
	"fmt"
	"strconv"
	"strings"
)

// Permalink is a parsed GitHub permalink with a line range, e.g.
// https://github.com/user/repo/blob/<sha>/path/file.py#L12-L34.
type Permalink struct {
	Author string
	RawURL string
	Start  int
	End    int
}

// ParsePermalink extracts the author, raw-content URL, and line range from a
// GitHub permalink.
func ParsePermalink(url string) (Permalink, error) {
	base, frag, ok := strings.Cut(url, "#")
	if !ok {
		return Permalink{}, fmt.Errorf("permalink %q has no line range", url)
	}
	head, _, ok := strings.Cut(base, "/blob/")
	if !ok {
		return Permalink{}, fmt.Errorf("permalink %q has no /blob/ segment", url)
	}

	author := head
	if i := strings.Index(head, "github.com/"); i >= 0 {
		author = head[i+len("github.com/"):]
	} else if parts := strings.Split(strings.TrimSuffix(head, "/"), "/"); len(parts) >= 2 {
		author = strings.Join(parts[len(parts)-2:], "/")
	}
	author = strings.Trim(author, "/")

	start, end, err := parseLineRange(frag)
	if err != nil {
		return Permalink{}, fmt.Errorf("permalink %q: %w", url, err)
	}

	return Permalink{
		Author: author,
		RawURL: strings.Replace(base, "/blob/", "/raw/", 1),
		Start:  start,
		End:    end,
	}, nil
}

func parseLineRange(frag string) (int, int, error) {
	first, second, ok := strings.Cut(frag, "-")
	if !ok {
		return 0, 0, fmt.Errorf("line range %q is not of form L<start>-L<end>", frag)
	}
	start, err := parseLineNumber(first)
	if err != nil {
		return 0, 0, err
	}
	end, err := parseLineNumber(second)
	if err != nil {
		return 0, 0, err
	}
	if start < 1 || end < start {
		return 0, 0, fmt.Errorf("invalid line range L%d-L%d", start, end)
	}
	return start, end, nil
}

func parseLineNumber(s string) (int, error) {
	if !strings.HasPrefix(s, "L") {
		return 0, fmt.Errorf("line anchor %q does not start with L", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("line anchor %q is not numeric", s)
	}
	return n, nil
}
