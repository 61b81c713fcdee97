package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestLoadConfigParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `[practice]
languages = ["python", "go"]
max-lines = 20
max-cols = 100

[sources]
go = ["https://github.com/user/repo/blob/abc/main.go#L1-L10"]
python = []
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Languages == nil || !reflect.DeepEqual(*cfg.Practice.Languages, []string{"python", "go"}) {
		t.Fatalf("unexpected languages: %v", cfg.Practice.Languages)
	}
	if cfg.Practice.MaxLines == nil || *cfg.Practice.MaxLines != 20 {
		t.Fatalf("unexpected max-lines: %v", cfg.Practice.MaxLines)
	}
	if cfg.Practice.MaxCols == nil || *cfg.Practice.MaxCols != 100 {
		t.Fatalf("unexpected max-cols: %v", cfg.Practice.MaxCols)
	}
	if len(cfg.Sources["go"]) != 1 {
		t.Fatalf("unexpected go sources: %v", cfg.Sources["go"])
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config should not error, got %v", err)
	}
	if cfg.Practice.Languages != nil || cfg.Sources != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestMergeSources(t *testing.T) {
	merged := MergeSources(map[string][]string{
		"go":     {"https://github.com/user/repo/blob/abc/main.go#L1-L5"},
		"python": {"https://github.com/user/repo/blob/abc/app.py#L1-L5"},
		"java":   {},
	})
	if len(merged["go"]) != 1 {
		t.Fatalf("expected added language, got %v", merged["go"])
	}
	if len(merged["python"]) != 1 {
		t.Fatalf("expected python list replaced, got %d entries", len(merged["python"]))
	}
	if _, ok := merged["java"]; ok {
		t.Fatalf("expected empty list to remove the language")
	}
	if len(merged["javascript"]) != len(DefaultSources["javascript"]) {
		t.Fatalf("expected untouched defaults to pass through")
	}
}
