// Package config loads pyvet's ambient settings from YAML and the
// environment. Rule behavior is deliberately not configurable here, only
// where the tool reads, caches and stores.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// defaultFile is the config file looked up in the working directory when
// no path is given.
const defaultFile = "pyvet.yml"

type Config struct {
	Scan struct {
		Exclude []string `yaml:"exclude"` // extra directory names to skip
		Jobs    int      `yaml:"jobs"`
	} `yaml:"scan"`
	Report struct {
		Output string `yaml:"output"` // findings report file
	} `yaml:"report"`
	Cache struct {
		Dir      string `yaml:"dir"`
		Disabled bool   `yaml:"disabled"`
	} `yaml:"cache"`
	History struct {
		Path string `yaml:"path"` // sqlite database file
	} `yaml:"history"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"` // text or json
	} `yaml:"log"`
}

// Default returns the settings used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.Report.Output = "report.json"
	cfg.History.Path = "pyvet.db"
	cfg.Log.Level = "info"
	cfg.Log.Format = "text"
	return cfg
}

// Load builds the effective config. A missing default file is fine; a
// missing explicit path is an error.
func Load(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Overlay the YAML config when present
	explicit := path != ""
	if !explicit {
		path = defaultFile
	}
	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case explicit || !errors.Is(err, fs.ErrNotExist):
		return nil, err
	}

	// 3. Override with environment variables if present
	if out := os.Getenv("PYVET_OUTPUT"); out != "" {
		cfg.Report.Output = out
	}
	if dir := os.Getenv("PYVET_CACHE_DIR"); dir != "" {
		cfg.Cache.Dir = dir
	}
	if db := os.Getenv("PYVET_DB"); db != "" {
		cfg.History.Path = db
	}
	if level := os.Getenv("PYVET_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("PYVET_LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}
	if jobs := os.Getenv("PYVET_JOBS"); jobs != "" {
		if n, err := strconv.Atoi(jobs); err == nil {
			cfg.Scan.Jobs = n
		}
	}

	return cfg, nil
}
