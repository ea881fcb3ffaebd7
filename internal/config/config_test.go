package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.ChartDays != 30 {
		t.Errorf("ChartDays = %d, want 30", cfg.General.ChartDays)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("Theme = %q, want flexoki-dark", cfg.Appearance.Theme)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataDir = "/tmp/study-data"
	cfg.General.ChartDays = 14
	cfg.Appearance.Theme = "terminal"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists() = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestDataDirResolution(t *testing.T) {
	t.Setenv("STUDYTRACK_DATA_DIR", "")

	cfg := DefaultConfig()
	home, _ := os.UserHomeDir()
	if got := DataDir(cfg); got != filepath.Join(home, ".studytrack") {
		t.Errorf("default DataDir = %q", got)
	}

	cfg.General.DataDir = "/data/study"
	if got := DataDir(cfg); got != "/data/study" {
		t.Errorf("config DataDir = %q, want /data/study", got)
	}

	t.Setenv("STUDYTRACK_DATA_DIR", "/env/study")
	if got := DataDir(cfg); got != "/env/study" {
		t.Errorf("env DataDir = %q, want /env/study", got)
	}
}
