package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// ReadLayout reads a grid layout file, one row per line. Trailing empty lines
// and carriage returns are dropped; everything else is passed through for
// [mines.ParseLayout] to validate.
func ReadLayout(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open layout %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to read layout %s: %w", path, err)
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines, nil
}
