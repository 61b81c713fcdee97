package config

import (
	"path/filepath"
	"testing"
)

func TestXDGEnvOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/conf")
	t.Setenv("XDG_DATA_HOME", "/tmp/data")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/conf", "lpm", "config.toml") {
		t.Fatalf("unexpected config path: %s", got)
	}
	if got := DefaultSnippetsPath(); got != filepath.Join("/tmp/data", "lpm", "snippets.json") {
		t.Fatalf("unexpected snippets path: %s", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/tmp/data", "lpm", "lpm.db") {
		t.Fatalf("unexpected db path: %s", got)
	}
}

func TestXDGHomeFallback(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("HOME", "/home/someone")
	if got := XDGConfigHome(); got != filepath.Join("/home/someone", ".config") {
		t.Fatalf("unexpected config home: %s", got)
	}
}
