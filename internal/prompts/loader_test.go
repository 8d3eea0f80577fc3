package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_KnownPrompt(t *testing.T) {
	prompt, err := Get("detection.json", "classify-language")
	require.NoError(t, err)
	assert.Contains(t, prompt, "ISO 639-1")
	assert.Contains(t, prompt, "{{.Text}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("detection.json", "does-not-exist")
	assert.Error(t, err)
}

func TestGet_UnknownFile(t *testing.T) {
	_, err := Get("missing.json", "classify-language")
	assert.Error(t, err)
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	result := Format("Explain {{.Topic}} of {{.Subject}}", map[string]string{
		"Topic":   "inertia",
		"Subject": "Physics",
	})
	assert.Equal(t, "Explain inertia of Physics", result)
}

func TestGetLocale_KnownLanguage(t *testing.T) {
	entry, err := GetLocale("feedback_locales.json", "es")
	require.NoError(t, err)
	assert.Contains(t, entry.System, "español")
	assert.Contains(t, entry.User, "{{.Subject}}")
}

func TestGetLocale_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	entry, err := GetLocale("feedback_locales.json", "zz")
	require.NoError(t, err)
	assert.Contains(t, entry.System, "English")
}

func TestGetLocale_EveryEntryHasPlaceholders(t *testing.T) {
	for _, lang := range []string{"en", "es", "fr", "de", "hi"} {
		entry, err := GetLocale("feedback_locales.json", lang)
		require.NoError(t, err, lang)
		for _, ph := range []string{"{{.Subject}}", "{{.Score}}", "{{.Input}}"} {
			assert.True(t, strings.Contains(entry.User, ph), "%s missing %s", lang, ph)
		}
	}
}
