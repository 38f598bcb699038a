package config

import (
	"path/filepath"
	"runtime"
	"testing"
)

func TestGetConfigDir(t *testing.T) {
	dir, err := GetConfigDir()
	if err != nil {
		t.Fatalf("GetConfigDir() error: %v", err)
	}
	if filepath.Base(dir) != "mgce" {
		t.Errorf("expected dir to end with 'mgce', got %q", filepath.Base(dir))
	}
}

func TestXDGDirs(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG test not applicable on Windows")
	}
	cfgHome := t.TempDir()
	dataHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", cfgHome)
	t.Setenv("XDG_DATA_HOME", dataHome)

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"config dir", GetConfigDir, filepath.Join(cfgHome, "mgce")},
		{"config path", GetConfigPath, filepath.Join(cfgHome, "mgce", "config.toml")},
		{"cards dir", GetCardsDir, filepath.Join(cfgHome, "mgce", "cards")},
		{"broker store", GetBrokerStorePath, filepath.Join(cfgHome, "mgce", "brokers.enc")},
		{"data dir", GetDataDir, filepath.Join(dataHome, "mgce")},
		{"log path", GetLogPath, filepath.Join(dataHome, "mgce", "mgce.log")},
	}
	for _, tt := range tests {
		got, err := tt.fn()
		if err != nil {
			t.Fatalf("%s: error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestResolveCardsDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CardsDir = "/srv/cards"
	got, _ := cfg.ResolveCardsDir()
	if got != "/srv/cards" {
		t.Errorf("expected configured dir, got %q", got)
	}
}
