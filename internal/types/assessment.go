// Package types defines the shared data structures for the assessment pipeline.
package types

import "time"

// InputKind distinguishes typed text from recorded audio submissions.
type InputKind string

// Input kinds accepted by the assessment entry point.
const (
	InputText  InputKind = "text"
	InputAudio InputKind = "audio"
)

// AssessmentRequest is the immutable input to a single pipeline invocation.
type AssessmentRequest struct {
	Subject     string    `json:"subject"`
	Input       string    `json:"input,omitempty"`
	Audio       []byte    `json:"audio,omitempty"`
	AudioFormat string    `json:"audio_format,omitempty"`
	Kind        InputKind `json:"input_kind"`
}

// TopicRef names a subject topic, covered or missing.
type TopicRef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// EnrichedTopic is a missing topic expanded with an overview and key points.
type EnrichedTopic struct {
	TopicRef
	Overview  string   `json:"overview"`
	KeyPoints []string `json:"key_points"`
}

// TopicCoverage reports how thoroughly a single topic was addressed, 0-100.
type TopicCoverage struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
}

// AssessmentResult is the fully-assembled output of one pipeline run.
// The pipeline never mutates a result after handing it to the store.
type AssessmentResult struct {
	ID            string          `json:"id"`
	Subject       string          `json:"subject"`
	Language      string          `json:"language"`
	Score         int             `json:"score"`
	CoveredTopics []TopicRef      `json:"covered_topics"`
	MissingTopics []EnrichedTopic `json:"missing_topics"`
	TopicCoverage []TopicCoverage `json:"topic_coverage"`
	Feedback      string          `json:"feedback"`
	CreatedAt     time.Time       `json:"created_at"`
}

// TimelineEvent is one entry of a six-event historical timeline.
// Year is free-form: it may be a range or "Present".
type TimelineEvent struct {
	Year        string `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TimelineLength is the number of events every timeline carries,
// whether synthesized live or taken from the fallback tables.
const TimelineLength = 6

// AssistantSummary holds the narrative feedback produced independently of the
// core result and merged into it by the caller.
type AssistantSummary struct {
	EnhancedFeedback string `json:"enhanced_feedback"`
}
