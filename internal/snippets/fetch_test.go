package snippets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const testFile = `package main

import "fmt"

func main() {
	fmt.Println("hello")
}
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/raw/") {
			http.NotFound(w, r)
			return
		}
		if strings.Contains(r.URL.Path, "missing") {
			http.NotFound(w, r)
			return
		}
		if _, err := w.Write([]byte(testFile)); err != nil {
			t.Errorf("write response: %v", err)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchSlicesLineRange(t *testing.T) {
	server := newTestServer(t)
	fetcher := NewFetcher()
	snip, err := fetcher.Fetch(context.Background(), 0, server.URL+"/user/repo/blob/abc/main.go#L5-L7", "go")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if snip.Author != "user/repo" {
		t.Fatalf("unexpected author: %q", snip.Author)
	}
	if len(snip.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %#v", len(snip.Lines), snip.Lines)
	}
	if snip.Lines[0] != "func main() {" {
		t.Fatalf("unexpected first line: %q", snip.Lines[0])
	}
	if snip.Lines[1] != `    fmt.Println("hello")` {
		t.Fatalf("expected tab expansion, got %q", snip.Lines[1])
	}
}

func TestFetchClampsEndOfFile(t *testing.T) {
	server := newTestServer(t)
	fetcher := NewFetcher()
	snip, err := fetcher.Fetch(context.Background(), 0, server.URL+"/user/repo/blob/abc/main.go#L5-L99", "go")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// The file's trailing newline must not produce a blank final line.
	if len(snip.Lines) != 3 {
		t.Fatalf("expected 3 lines, got %d: %#v", len(snip.Lines), snip.Lines)
	}
	if snip.Lines[2] != "}" {
		t.Fatalf("unexpected last line: %q", snip.Lines[2])
	}
}

func TestFetchAllSkipsFailures(t *testing.T) {
	server := newTestServer(t)
	fetcher := NewFetcher()
	sources := map[string][]string{
		"go": {
			server.URL + "/user/repo/blob/abc/main.go#L1-L2",
			server.URL + "/user/repo/blob/abc/missing.go#L1-L2",
		},
	}
	snips, skipped := fetcher.FetchAll(context.Background(), sources)
	if len(snips) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(snips))
	}
	if len(skipped) != 1 || !strings.Contains(skipped[0], "missing.go") {
		t.Fatalf("expected missing.go to be skipped, got %v", skipped)
	}
	if snips[0].Language != "go" {
		t.Fatalf("unexpected language: %q", snips[0].Language)
	}
}
