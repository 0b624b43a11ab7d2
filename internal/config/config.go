package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultFile is looked up in the working directory when no path is given.
const DefaultFile = "momentum.yaml"

// Config holds runtime settings. Values come from an optional YAML file;
// environment variables override the file.
type Config struct {
	DBPath          string `yaml:"db_path" env:"MOMENTUM_DB"`
	LogLevel        string `yaml:"log_level" env:"MOMENTUM_LOG_LEVEL" env-default:"warn"`
	LogFormat       string `yaml:"log_format" env:"MOMENTUM_LOG_FORMAT" env-default:"console"`
	EnteredBy       string `yaml:"entered_by" env:"MOMENTUM_USER"`
	HistoryPageSize int    `yaml:"history_page_size" env:"MOMENTUM_HISTORY_PAGE_SIZE" env-default:"20"`
	ExportDir       string `yaml:"export_dir" env:"MOMENTUM_EXPORT_DIR" env-default:"."`
}

// Load reads path (or momentum.yaml when path is empty). A missing file is
// not an error: environment and defaults still apply.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	cfg := &Config{}
	_, statErr := os.Stat(path)
	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	case errors.Is(statErr, os.ErrNotExist) && !explicit:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("reading config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("config file %s: %w", path, statErr)
	}

	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolve() error {
	if c.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		c.DBPath = filepath.Join(home, ".momentum", "momentum.db")
	}
	if c.EnteredBy == "" {
		c.EnteredBy = os.Getenv("USER")
	}
	if c.HistoryPageSize <= 0 {
		return fmt.Errorf("history_page_size must be positive, got %d", c.HistoryPageSize)
	}

	c.LogFormat = strings.ToLower(c.LogFormat)
	if c.LogFormat != "console" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be console or json, got %q", c.LogFormat)
	}
	return nil
}
