// Package config resolves the downloader's configuration from a directory
// holding an optional .env-style file and an optional confluence.config
// key/value file, plus the process environment.  The result is an immutable
// value handed to every component by parameter; nothing downstream reads
// ambient environment state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	homedir "github.com/mitchellh/go-homedir"
)

const (
	EnvFileName    = ".env"
	ConfigFileName = "confluence.config"

	// Environment variables.  Credentials come exclusively from here (or the
	// .env file, which is applied as environment overrides before anything
	// else is resolved).
	EnvEmail   = "CONF_EMAIL"
	EnvToken   = "CONF_TOKEN"
	EnvBaseURL = "BASE_URL"

	// confluence.config keys.
	KeyBaseURL = "BaseUrl"
	KeyPageID  = "PageId"
)

// Config is the resolved configuration for one run.  Read-only after Load.
type Config struct {
	BaseURL    string
	RootPageID string
	Email      string
	Token      string
}

// Load resolves configuration from the given directory.  Both files are
// optional; missing required fields produce a single error enumerating every
// absent field by name, so a run never starts partially configured.
func Load(dir string) (Config, error) {
	dir, err := homedir.Expand(dir)
	if err != nil {
		return Config{}, fmt.Errorf("config: couldn't expand homedir in '%s': %w", dir, err)
	}

	// Environment-file values become process environment overrides before
	// the config file is consulted.
	if err := applyEnvFile(filepath.Join(dir, EnvFileName)); err != nil {
		return Config{}, err
	}

	fileValues, err := loadKeyValueFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		BaseURL:    strings.TrimRight(fileValues[KeyBaseURL], "/"),
		RootPageID: fileValues[KeyPageID],
		Email:      os.Getenv(EnvEmail),
		Token:      os.Getenv(EnvToken),
	}

	// The config file's BaseUrl wins; BASE_URL is the fallback for
	// config-file-less runs.
	if cfg.BaseURL == "" {
		cfg.BaseURL = strings.TrimRight(os.Getenv(EnvBaseURL), "/")
	}

	missing := []string{}
	if cfg.BaseURL == "" {
		missing = append(missing, fmt.Sprintf("%s (or %s)", KeyBaseURL, EnvBaseURL))
	}
	if cfg.RootPageID == "" {
		missing = append(missing, KeyPageID)
	}
	if cfg.Email == "" {
		missing = append(missing, EnvEmail)
	}
	if cfg.Token == "" {
		missing = append(missing, EnvToken)
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("config: missing required configuration: %s (looked in %s)",
			strings.Join(missing, ", "), dir)
	}

	return cfg, nil
}
