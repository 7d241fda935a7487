package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/idilsaglam/todolists/internal/store/jsonstore"
)

const (
	DefaultServer = "http://localhost:8080"
	DefaultTheme  = "classic"

	configFileName = "config.json"
)

// Config holds client settings. Zero fields in the file or env fall
// through to the previous layer.
type Config struct {
	Server  string `json:"server,omitempty"`
	Theme   string `json:"theme,omitempty"`
	LogFile string `json:"logFile,omitempty"`
}

// Dir is ~/.todolists unless TODOLISTS_CONFIG_DIR is set.
func Dir() (string, error) {
	if d := strings.TrimSpace(os.Getenv("TODOLISTS_CONFIG_DIR")); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".todolists"), nil
}

// Path is the location of config.json.
func Path() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFileName), nil
}

// Load resolves defaults, then the config file, then the environment.
func Load() (Config, error) {
	cfg := Config{Server: DefaultServer, Theme: DefaultTheme}

	p, err := Path()
	if err != nil {
		return cfg, err
	}
	var file Config
	if _, err := jsonstore.Load(p, &file); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg = cfg.merge(file)

	cfg = cfg.merge(Config{
		Server:  os.Getenv("TODOLISTS_SERVER"),
		Theme:   os.Getenv("TODOLISTS_THEME"),
		LogFile: os.Getenv("TODOLISTS_LOG"),
	})
	return cfg, nil
}

// Save writes the config file.
func Save(cfg Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return jsonstore.Save(p, cfg, 0o644)
}

func (c Config) merge(over Config) Config {
	if s := strings.TrimRight(strings.TrimSpace(over.Server), "/"); s != "" {
		c.Server = s
	}
	if s := strings.TrimSpace(over.Theme); s != "" {
		c.Theme = s
	}
	if s := strings.TrimSpace(over.LogFile); s != "" {
		c.LogFile = s
	}
	return c
}

// WithOverrides applies non-empty flag values on top of c.
func (c Config) WithOverrides(server, theme, logFile string) Config {
	return c.merge(Config{Server: server, Theme: theme, LogFile: logFile})
}
