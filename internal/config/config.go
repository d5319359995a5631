package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper/internal/mines"
)

const (
	ModeDevelopment = "development"
	ModeProduction  = "production"
)

type Log struct {
	File       string `toml:"file"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days"`
}

type Config struct {
	Mode  string `toml:"mode"`
	Rows  int    `toml:"rows"`
	Cols  int    `toml:"cols"`
	Mines int    `toml:"mines"`
	// Seed of the mine placement; 0 picks one at startup.
	Seed uint64 `toml:"seed"`
	// Layout, if set, is a file with one row of the grid per line, 'x' for a
	// mine. It takes precedence over Rows, Cols and Mines.
	Layout string `toml:"layout"`
	Log    Log    `toml:"log"`
}

func Default() Config {
	return Config{
		Mode:  ModeProduction,
		Rows:  9,
		Cols:  9,
		Mines: 10,
		Log: Log{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads the TOML file at path on top of [Default]. An empty path yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("unable to read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("unable to parse config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Development() bool {
	return c.Mode != ModeProduction
}

func (c Config) Production() bool {
	return c.Mode == ModeProduction
}

func (c Config) Params() mines.Params {
	return mines.Params{Rows: c.Rows, Cols: c.Cols, Mines: c.Mines}
}

func (c Config) Validate() error {
	if c.Mode != ModeDevelopment && c.Mode != ModeProduction {
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		return errors.New("log rotation limits cannot be negative")
	}
	if c.Layout != "" {
		return nil
	}
	return c.Params().Validate()
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":     c.Mode,
		"rows":     c.Rows,
		"cols":     c.Cols,
		"mines":    c.Mines,
		"seed":     c.Seed,
		"layout":   c.Layout,
		"log_file": c.Log.File,
	}
}
