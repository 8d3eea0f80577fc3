// Package timeline produces a six-event historical timeline for a subject in
// a requested language. The stage never raises an error: any failure or
// malformed result substitutes a fixed per-language fallback timeline.
package timeline

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/prompts"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

// Synthesize requests a timeline for the subject in the target language.
// The result always holds exactly types.TimelineLength events, whether from
// the live path or the fallback table.
func Synthesize(ctx context.Context, client llm.Client, subject, lang string) []types.TimelineEvent {
	if client == nil {
		return Fallback(lang)
	}

	template := prompts.MustGet("timeline.json", "generate-timeline")
	user := prompts.Format(template, map[string]string{
		"Subject":  subject,
		"Language": language.Name(lang),
	})

	resp, err := client.GenerateJSON(ctx, llm.Request{User: user, Temperature: 0.4}, llm.TierStandard)
	if err != nil {
		log.Printf("timeline: synthesis for %q failed, using %s fallback: %v", subject, lang, err)
		return Fallback(lang)
	}

	events, ok := parseEvents(resp)
	if !ok {
		log.Printf("timeline: malformed synthesis for %q, using %s fallback", subject, lang)
		return Fallback(lang)
	}
	return events
}

// parseEvents validates the live response. Entries missing any field are
// dropped; anything other than a full set of six well-formed events is
// rejected so every caller sees a timeline of fixed length.
func parseEvents(raw string) ([]types.TimelineEvent, bool) {
	var events []types.TimelineEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		// Some models wrap the array in an object.
		var wrapped struct {
			Timeline []types.TimelineEvent `json:"timeline"`
			Events   []types.TimelineEvent `json:"events"`
		}
		if err := json.Unmarshal([]byte(raw), &wrapped); err != nil {
			return nil, false
		}
		events = wrapped.Timeline
		if len(events) == 0 {
			events = wrapped.Events
		}
	}

	valid := make([]types.TimelineEvent, 0, len(events))
	for _, event := range events {
		if strings.TrimSpace(event.Year) == "" ||
			strings.TrimSpace(event.Title) == "" ||
			strings.TrimSpace(event.Description) == "" {
			continue
		}
		valid = append(valid, event)
	}

	if len(valid) != types.TimelineLength {
		return nil, false
	}
	return valid, true
}
