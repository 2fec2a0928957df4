package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestLoadResolvesAllSources(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, `
# site settings
BaseUrl = https://example.atlassian.net/
PageId = 123456
`)
	writeFile(t, dir, EnvFileName, `
# credentials
CONF_EMAIL=someone@example.com
CONF_TOKEN=tok-abc
`)
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvToken, "")

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "https://example.atlassian.net", cfg.BaseURL, "trailing slash should be trimmed")
	assert.Equal(t, "123456", cfg.RootPageID)
	assert.Equal(t, "someone@example.com", cfg.Email)
	assert.Equal(t, "tok-abc", cfg.Token)
}

func TestLoadMissingTokenNamesIt(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "BaseUrl=https://example.atlassian.net\nPageId=1\n")
	t.Setenv(EnvEmail, "someone@example.com")
	t.Setenv(EnvToken, "")

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CONF_TOKEN")
	assert.NotContains(t, err.Error(), "CONF_EMAIL")
}

func TestLoadEnumeratesEveryMissingField(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvEmail, "")
	t.Setenv(EnvToken, "")
	t.Setenv(EnvBaseURL, "")

	_, err := Load(dir)
	require.Error(t, err)
	for _, want := range []string{KeyBaseURL, KeyPageID, EnvEmail, EnvToken} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestLoadBaseURLEnvFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "PageId=42\n")
	t.Setenv(EnvEmail, "someone@example.com")
	t.Setenv(EnvToken, "tok")
	t.Setenv(EnvBaseURL, "https://fallback.atlassian.net/")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://fallback.atlassian.net", cfg.BaseURL)
}

func TestLoadConfigFileBaseURLWins(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ConfigFileName, "BaseUrl=https://primary.atlassian.net\nPageId=42\n")
	t.Setenv(EnvEmail, "someone@example.com")
	t.Setenv(EnvToken, "tok")
	t.Setenv(EnvBaseURL, "https://fallback.atlassian.net")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://primary.atlassian.net", cfg.BaseURL)
}

func TestParseKeyValues(t *testing.T) {
	values := parseKeyValues("# comment\n\nA=1\n  B = two \nnot a pair\nC=a=b\n")

	assert.Equal(t, map[string]string{
		"A": "1",
		"B": "two",
		"C": "a=b",
	}, values)
}
