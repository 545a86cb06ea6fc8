package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CINEBOOK_DATA_DIR", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Rows != 10 || cfg.Cols != 10 {
		t.Fatalf("expected 10x10 default grid, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if got := filepath.Base(cfg.BookingsFile); got != "movie_bookings.csv" {
		t.Fatalf("expected default ledger name, got %q", got)
	}
	if filepath.Dir(cfg.BookingsFile) != cfg.DataDir {
		t.Fatalf("expected ledger under data dir, got %q", cfg.BookingsFile)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("CINEBOOK_DATA_DIR", t.TempDir())
	t.Setenv("CINEBOOK_ROWS", "8")
	t.Setenv("CINEBOOK_COLS", "12")
	t.Setenv("CINEBOOK_BOOKINGS_FILE", "/tmp/ledger.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if cfg.Rows != 8 || cfg.Cols != 12 {
		t.Fatalf("expected 8x12 grid, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.BookingsFile != "/tmp/ledger.csv" {
		t.Fatalf("expected override honored, got %q", cfg.BookingsFile)
	}
}

func TestLoad_RejectsBadGrid(t *testing.T) {
	t.Setenv("CINEBOOK_ROWS", "ten")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric rows")
	}
}
