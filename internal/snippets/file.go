package snippets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jaymody/lpm/internal/model"
)

// Load reads the snippet database from a JSON file.
func Load(path string) ([]model.Snippet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snips []model.Snippet
	if err := json.Unmarshal(data, &snips); err != nil {
		return nil, fmt.Errorf("failed to decode snippet database: %w", err)
	}
	return snips, nil
}

// Save writes the snippet database atomically via a temp file.
func Save(path string, snips []model.Snippet) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snippet dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "snippets-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snippet file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	enc := json.NewEncoder(tmpFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(snips); err != nil {
		return fmt.Errorf("failed to encode snippet database: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close snippet file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write snippet database: %w", err)
	}
	return nil
}
