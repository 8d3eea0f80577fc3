package prompts

import (
	"encoding/json"
	"fmt"
	"sync"
)

// LocalePrompt holds the system and user prompt templates for one language.
// Entries are authored natively per language rather than machine-translated,
// which produces noticeably better phrasing from the model.
type LocalePrompt struct {
	System string `json:"system"`
	User   string `json:"user"`
}

// defaultLocale is used when a language has no authored entry.
const defaultLocale = "en"

var (
	localeCache = make(map[string]map[string]LocalePrompt)
	localeMu    sync.RWMutex
)

// GetLocale retrieves the prompt pair for a language from a locale-table file.
// Unknown language codes fall back to the "en" entry. Adding a language is a
// data change to the JSON file, not a code change.
func GetLocale(filename, lang string) (LocalePrompt, error) {
	table, err := loadLocaleFile(filename)
	if err != nil {
		return LocalePrompt{}, err
	}

	if entry, ok := table[lang]; ok {
		return entry, nil
	}
	if entry, ok := table[defaultLocale]; ok {
		return entry, nil
	}
	return LocalePrompt{}, fmt.Errorf("locale file %s has no %q entry", filename, defaultLocale)
}

// MustGetLocale retrieves a locale prompt pair, panicking if the table or its
// default entry is missing.
func MustGetLocale(filename, lang string) LocalePrompt {
	entry, err := GetLocale(filename, lang)
	if err != nil {
		panic(fmt.Sprintf("failed to load locale prompt: %v", err))
	}
	return entry
}

func loadLocaleFile(filename string) (map[string]LocalePrompt, error) {
	localeMu.RLock()
	if table, exists := localeCache[filename]; exists {
		localeMu.RUnlock()
		return table, nil
	}
	localeMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read locale file %s: %w", filename, err)
	}

	var table map[string]LocalePrompt
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse locale file %s: %w", filename, err)
	}

	localeMu.Lock()
	localeCache[filename] = table
	localeMu.Unlock()

	return table, nil
}
