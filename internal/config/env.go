package config

import (
	"fmt"
	"os"
	"strconv"
)

// ApplyEnv overrides c with the MINES_* environment variables that are set.
// DEVELOPMENT, when set to anything but "0", forces development mode.
func (c *Config) ApplyEnv() error {
	if mode, ok := os.LookupEnv("MINES_MODE"); ok {
		c.Mode = mode
	}
	if development, ok := os.LookupEnv("DEVELOPMENT"); ok && development != "0" {
		c.Mode = ModeDevelopment
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"MINES_ROWS", &c.Rows},
		{"MINES_COLS", &c.Cols},
		{"MINES_MINES", &c.Mines},
	}
	for _, v := range ints {
		s, ok := os.LookupEnv(v.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("unable to convert %s to int: %w", v.key, err)
		}
		*v.dst = n
	}

	if s, ok := os.LookupEnv("MINES_SEED"); ok {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return fmt.Errorf("unable to convert MINES_SEED to uint: %w", err)
		}
		c.Seed = seed
	}
	if layout, ok := os.LookupEnv("MINES_LAYOUT"); ok {
		c.Layout = layout
	}
	if file, ok := os.LookupEnv("MINES_LOG_FILE"); ok {
		c.Log.File = file
	}
	return nil
}
