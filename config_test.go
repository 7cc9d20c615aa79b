package slither

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ListenAddr != DefaultListenAddr {
		t.Errorf("listen addr = %q, want %q", cfg.ListenAddr, DefaultListenAddr)
	}
	if cfg.BotsPerRoom != BotsPerRoom {
		t.Errorf("bots per room = %d, want %d", cfg.BotsPerRoom, BotsPerRoom)
	}
	if cfg.JoinCooldown != JoinCooldown {
		t.Errorf("join cooldown = %v, want %v", cfg.JoinCooldown, JoinCooldown)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("empty-path config = %+v, want defaults", cfg)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("SLITHER_LISTEN_ADDR", ":9999")
	t.Setenv("SLITHER_BOTS_PER_ROOM", "3")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("listen addr = %q, want :9999", cfg.ListenAddr)
	}
	if cfg.BotsPerRoom != 3 {
		t.Errorf("bots per room = %d, want 3", cfg.BotsPerRoom)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slither.yaml")
	body := "listen_addr: \":7777\"\nweights_path: /tmp/w.json\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ListenAddr != ":7777" {
		t.Errorf("listen addr = %q, want :7777", cfg.ListenAddr)
	}
	if cfg.WeightsPath != "/tmp/w.json" {
		t.Errorf("weights path = %q", cfg.WeightsPath)
	}
	if cfg.BotsPerRoom != BotsPerRoom {
		t.Errorf("unset key must keep its default, got %d", cfg.BotsPerRoom)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/does/not/exist.yaml"); err == nil {
		t.Error("missing config file must be reported")
	}
}
