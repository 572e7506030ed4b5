package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/topoforge/rugosity/internal/rugosity"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadAndApplyPartial(t *testing.T) {
	path := writeConfig(t, "params.json", `{"window_size": 9, "tile_rows": 256}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	opts := rugosity.Options{WindowSize: 3, Chunked: true, TileRows: 512, TileCols: 512}
	cfg.Apply(&opts)

	if opts.WindowSize != 9 {
		t.Errorf("WindowSize = %d, want 9", opts.WindowSize)
	}
	if opts.TileRows != 256 {
		t.Errorf("TileRows = %d, want 256", opts.TileRows)
	}
	// Fields absent from the file keep their defaults.
	if !opts.Chunked {
		t.Errorf("Chunked was reset by a partial config")
	}
	if opts.TileCols != 512 {
		t.Errorf("TileCols = %d, want 512", opts.TileCols)
	}
}

func TestLoadRejectsNonJSONExtension(t *testing.T) {
	path := writeConfig(t, "params.yaml", `window_size: 9`)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for non-JSON extension")
	}
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := writeConfig(t, "params.json", `{"window_size": `)
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed JSON")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
