package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sitescrape"
	"github.com/fwojciec/sitescrape/toml"
	"github.com/fwojciec/sitescrape/yaml"
)

const defaultConfigName = "scrape.toml"

// configPath returns the explicit path when given. Otherwise it prefers
// ./scrape.toml and falls back to the user config directory when only that
// one exists.
func (m *Main) configPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	local := filepath.Join(".", defaultConfigName)
	if _, err := os.Stat(local); err == nil || m.ConfigHome == "" {
		return local
	}
	home := filepath.Join(m.ConfigHome, defaultConfigName)
	if _, err := os.Stat(home); err == nil {
		return home
	}
	return local
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func loadConfig(path string) (*sitescrape.Config, error) {
	if isYAML(path) {
		return yaml.LoadConfig(path)
	}
	return toml.LoadConfig(path)
}

func writeConfig(path string, cfg *sitescrape.Config) error {
	if isYAML(path) {
		return yaml.WriteConfig(path, cfg)
	}
	return toml.WriteConfig(path, cfg)
}
