package snippets

import "testing"

func TestParsePermalink(t *testing.T) {
	url := "https://github.com/jaymody/linkipedia/blob/09f3ca27/src/main/java/com/linkipedia/Graph.java#L9-L31"
	link, err := ParsePermalink(url)
	if err != nil {
		t.Fatalf("parse permalink: %v", err)
	}
	if link.Author != "jaymody/linkipedia" {
		t.Fatalf("unexpected author: %q", link.Author)
	}
	if link.RawURL != "https://github.com/jaymody/linkipedia/raw/09f3ca27/src/main/java/com/linkipedia/Graph.java" {
		t.Fatalf("unexpected raw url: %q", link.RawURL)
	}
	if link.Start != 9 || link.End != 31 {
		t.Fatalf("unexpected range: L%d-L%d", link.Start, link.End)
	}
}

func TestParsePermalinkNonGithubHost(t *testing.T) {
	link, err := ParsePermalink("http://127.0.0.1:8080/user/repo/blob/abc/file.py#L1-L3")
	if err != nil {
		t.Fatalf("parse permalink: %v", err)
	}
	if link.Author != "user/repo" {
		t.Fatalf("unexpected author: %q", link.Author)
	}
}

func TestParsePermalinkErrors(t *testing.T) {
	bad := []string{
		"https://github.com/user/repo/blob/abc/file.py",
		"https://github.com/user/repo/file.py#L1-L3",
		"https://github.com/user/repo/blob/abc/file.py#L5",
		"https://github.com/user/repo/blob/abc/file.py#L9-L3",
		"https://github.com/user/repo/blob/abc/file.py#Lx-Ly",
	}
	for _, url := range bad {
		if _, err := ParsePermalink(url); err == nil {
			t.Fatalf("expected error for %q", url)
		}
	}
}
