package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// parseKeyValues reads KEY=VALUE lines.  Blank lines and '#' comments are
// skipped; anything else without an '=' is ignored rather than fatal, since
// these files are hand-edited.
func parseKeyValues(text string) map[string]string {
	values := map[string]string{}

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		values[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}

	return values
}

// applyEnvFile loads a .env-style file and applies its values as process
// environment overrides.  A missing file is fine; an unreadable one is not.
func applyEnvFile(path string) error {
	source, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config: couldn't read env file %s: %w", path, err)
	}

	for key, value := range parseKeyValues(string(source)) {
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("config: couldn't set %s from env file: %w", key, err)
		}
	}

	return nil
}

// loadKeyValueFile parses a key/value config file; a missing file yields an
// empty map.
func loadKeyValueFile(path string) (map[string]string, error) {
	source, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config: couldn't read config file %s: %w", path, err)
	}

	return parseKeyValues(string(source)), nil
}
