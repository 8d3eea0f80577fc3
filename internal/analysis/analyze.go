// Package analysis sends a subject and the learner's explanation to the
// completion service and extracts a structured knowledge analysis. Malformed
// pieces of the response are coerced to safe empty values at this boundary;
// a failed call is a hard error because no deterministic fallback can judge
// understanding.
package analysis

import (
	"context"
	_ "embed"
	"encoding/json"
	"log"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/prompts"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

//go:embed schema.json
var envelopeSchema string

// RawAnalysis is the analyzer's structured output before score refinement.
type RawAnalysis struct {
	Score         int                   `json:"score"`
	CoveredTopics []types.TopicRef      `json:"covered_topics"`
	MissingTopics []types.TopicRef      `json:"missing_topics"`
	TopicCoverage []types.TopicCoverage `json:"topic_coverage"`
	Feedback      string                `json:"feedback"`
}

// Analyze evaluates the explanation of subject in the detected language.
func Analyze(ctx context.Context, client llm.Client, subject, input, lang string) (*RawAnalysis, error) {
	if strings.TrimSpace(subject) == "" {
		return nil, &ValidationError{Field: "subject", Message: "subject must not be empty"}
	}
	if strings.TrimSpace(input) == "" {
		return nil, &ValidationError{Field: "input", Message: "input must not be empty"}
	}

	system := prompts.MustGet("analysis.json", "system")
	template := prompts.MustGet("analysis.json", "analyze-knowledge")
	user := prompts.Format(template, map[string]string{
		"Subject":  subject,
		"Input":    input,
		"Language": language.Name(lang),
	})

	resp, err := client.GenerateJSON(ctx, llm.Request{System: system, User: user}, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "knowledge analysis request failed", Cause: err}
	}

	return parseEnvelope(resp)
}

// parseEnvelope validates the response shape and coerces each field
// individually. Collections that are absent or malformed become empty, a
// non-numeric score becomes 0. Only an envelope that is not a JSON object at
// all is a parse error.
func parseEnvelope(raw string) (*RawAnalysis, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(envelopeSchema),
		gojsonschema.NewStringLoader(raw),
	)
	if err != nil {
		return nil, &ParseError{Message: "response is not valid JSON", Cause: err}
	}
	if !result.Valid() {
		return nil, &ParseError{Message: "response is not an analysis envelope: " + schemaErrors(result)}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, &ParseError{Message: "response is not a JSON object", Cause: err}
	}

	analysis := &RawAnalysis{
		Score:         coerceScore(fields["score"]),
		CoveredTopics: coerceTopics(fields["covered_topics"], "covered_topics"),
		MissingTopics: coerceTopics(fields["missing_topics"], "missing_topics"),
		TopicCoverage: coerceCoverage(fields["topic_coverage"]),
		Feedback:      coerceString(fields["feedback"]),
	}
	return analysis, nil
}

func coerceScore(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var score float64
	if err := json.Unmarshal(raw, &score); err != nil {
		// Models occasionally quote the number.
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if err := json.Unmarshal([]byte(strings.TrimSpace(s)), &score); err != nil {
				log.Printf("analysis: non-numeric score %q coerced to 0", s)
				return 0
			}
		} else {
			log.Printf("analysis: malformed score coerced to 0")
			return 0
		}
	}
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return int(score)
}

func coerceTopics(raw json.RawMessage, field string) []types.TopicRef {
	if len(raw) == 0 {
		return []types.TopicRef{}
	}
	var topics []types.TopicRef
	if err := json.Unmarshal(raw, &topics); err != nil {
		log.Printf("analysis: malformed %s coerced to empty: %v", field, err)
		return []types.TopicRef{}
	}
	kept := make([]types.TopicRef, 0, len(topics))
	for _, topic := range topics {
		if strings.TrimSpace(topic.Name) != "" {
			kept = append(kept, topic)
		}
	}
	return kept
}

func coerceCoverage(raw json.RawMessage) []types.TopicCoverage {
	if len(raw) == 0 {
		return []types.TopicCoverage{}
	}
	var coverage []types.TopicCoverage
	if err := json.Unmarshal(raw, &coverage); err != nil {
		log.Printf("analysis: malformed topic_coverage coerced to empty: %v", err)
		return []types.TopicCoverage{}
	}
	kept := make([]types.TopicCoverage, 0, len(coverage))
	for _, entry := range coverage {
		if strings.TrimSpace(entry.Name) == "" {
			continue
		}
		if entry.Percentage < 0 {
			entry.Percentage = 0
		}
		if entry.Percentage > 100 {
			entry.Percentage = 100
		}
		kept = append(kept, entry)
	}
	return kept
}

func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func schemaErrors(result *gojsonschema.Result) string {
	msgs := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		msgs = append(msgs, desc.String())
	}
	return strings.Join(msgs, "; ")
}
