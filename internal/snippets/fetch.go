package snippets

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/jaymody/lpm/internal/model"
)

const fetchTimeout = 30 * time.Second

// Fetcher downloads snippets from GitHub permalinks.
type Fetcher struct {
	client *http.Client
}

// NewFetcher returns a Fetcher with a default HTTP client.
func NewFetcher() *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: fetchTimeout}}
}

// Fetch downloads a single snippet from a permalink.
func (f *Fetcher) Fetch(ctx context.Context, id int, url, language string) (model.Snippet, error) {
	link, err := ParsePermalink(url)
	if err != nil {
		return model.Snippet{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link.RawURL, nil)
	if err != nil {
		return model.Snippet{}, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return model.Snippet{}, fmt.Errorf("failed to fetch %s: %w", link.RawURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return model.Snippet{}, fmt.Errorf("unexpected status for %s: %s", link.RawURL, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Snippet{}, fmt.Errorf("failed to read %s: %w", link.RawURL, err)
	}

	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")
	// The final newline terminates the last line rather than starting a new one.
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	start, end := link.Start, link.End
	if start > len(lines) {
		return model.Snippet{}, fmt.Errorf("line range L%d-L%d exceeds file length %d", start, end, len(lines))
	}
	if end > len(lines) {
		end = len(lines)
	}

	return model.Snippet{
		ID:       id,
		Lines:    Normalize(lines[start-1 : end]),
		URL:      url,
		Author:   link.Author,
		Language: language,
	}, nil
}

// FetchAll downloads every permalink in sources. URLs that fail are skipped
// and returned so the caller can report them.
func (f *Fetcher) FetchAll(ctx context.Context, sources map[string][]string) ([]model.Snippet, []string) {
	languages := make([]string, 0, len(sources))
	for lang := range sources {
		languages = append(languages, lang)
	}
	sort.Strings(languages)

	var snips []model.Snippet
	var skipped []string
	id := 0
	for _, lang := range languages {
		for _, url := range sources[lang] {
			snip, err := f.Fetch(ctx, id, url, lang)
			if err != nil {
				skipped = append(skipped, url)
				continue
			}
			snips = append(snips, snip)
			id++
		}
	}
	return snips, skipped
}
