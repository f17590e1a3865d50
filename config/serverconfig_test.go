package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":25565" {
		t.Fatalf("got %q want default listen addr", cfg.ListenAddr)
	}
	if !cfg.Debug {
		t.Fatalf("expected debug true")
	}
}

func TestLoadSeedPreferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.yaml")
	content := "seed_preferences:\n  CustomMOTD: \"hello\"\n  EnableFlying: \"true\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Seed["CustomMOTD"] != "hello" {
		t.Fatalf("got %+v", cfg.Seed)
	}
}
