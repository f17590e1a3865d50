// Package config loads the YAML bootstrap file cmd/mcproxy reads at
// startup, standing in for the values the GUI's "Run" button would
// otherwise supply interactively.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ServerConfig is the top-level shape of the bootstrap YAML file.
type ServerConfig struct {
	ListenAddr string            `yaml:"listen_addr"`
	ServerAddr string            `yaml:"server_addr"`
	Debug      bool              `yaml:"debug"`
	PrefsFile  string            `yaml:"prefs_file"`
	Seed       map[string]string `yaml:"seed_preferences"`
}

// Defaults are applied for any field the file leaves zero-valued.
func Defaults() ServerConfig {
	return ServerConfig{
		ListenAddr: ":25565",
		ServerAddr: "localhost:25566",
		PrefsFile:  "preferences.json",
	}
}

// Load reads and parses path, applying Defaults for any field the file
// leaves unset.
func Load(path string) (ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg := Defaults()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = Defaults().ListenAddr
	}
	if cfg.ServerAddr == "" {
		cfg.ServerAddr = Defaults().ServerAddr
	}
	if cfg.PrefsFile == "" {
		cfg.PrefsFile = Defaults().PrefsFile
	}
	return cfg, nil
}
