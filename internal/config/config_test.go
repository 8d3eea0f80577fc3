package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig_Valid(t *testing.T) {
	path := writeConfig(t, `{"api_key": "key-123", "port": 9090, "speech_enabled": true}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "key-123", cfg.APIKey)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.SpeechEnabled)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_BadJSON(t *testing.T) {
	path := writeConfig(t, `{not json`)
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestFromEnv_FillsOnlyEmptyFields(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://env")

	cfg := &Config{DatabaseURL: "postgres://explicit"}
	cfg.FromEnv()

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://explicit", cfg.DatabaseURL, "explicit value wins")
}

func TestValidate_PortRange(t *testing.T) {
	assert.NoError(t, (&Config{Port: 8080}).Validate())
	assert.Error(t, (&Config{Port: -1}).Validate())
	assert.Error(t, (&Config{Port: 70000}).Validate())
}
