package timeline

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

//go:embed fallback_timelines.json
var fallbackData []byte

// fallbackTables maps language code to a pre-authored six-event timeline.
// Loaded once at process start; the synthesis logic never touches the file.
var fallbackTables map[string][]types.TimelineEvent

func init() {
	if err := json.Unmarshal(fallbackData, &fallbackTables); err != nil {
		panic(fmt.Sprintf("timeline: invalid fallback tables: %v", err))
	}
	for lang, events := range fallbackTables {
		if len(events) != types.TimelineLength {
			panic(fmt.Sprintf("timeline: fallback table %q has %d events, want %d", lang, len(events), types.TimelineLength))
		}
	}
	if _, ok := fallbackTables[language.Default]; !ok {
		panic("timeline: fallback tables missing the default language entry")
	}
}

// Fallback returns the pre-authored timeline for a language. Unknown codes
// resolve to the default language's table. The returned slice is a copy.
func Fallback(lang string) []types.TimelineEvent {
	table, ok := fallbackTables[lang]
	if !ok {
		table = fallbackTables[language.Default]
	}
	events := make([]types.TimelineEvent, len(table))
	copy(events, table)
	return events
}
