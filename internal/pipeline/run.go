// Package pipeline provides the high-level orchestration for an assessment:
// speech normalization, language detection, knowledge analysis, score
// refinement, then concurrent topic enrichment and feedback synthesis.
// Each stage carries its own failure policy; the pipeline only fails when a
// stage with no safe fallback fails.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/muzamilsyed/aynstyn/internal/analysis"
	"github.com/muzamilsyed/aynstyn/internal/db"
	"github.com/muzamilsyed/aynstyn/internal/enrichment"
	"github.com/muzamilsyed/aynstyn/internal/feedback"
	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/scoring"
	"github.com/muzamilsyed/aynstyn/internal/session"
	"github.com/muzamilsyed/aynstyn/internal/speech"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

// Pipeline step names reported through the progress callback.
const (
	StepTranscription = "transcription"
	StepLanguage      = "language_detection"
	StepAnalysis      = "knowledge_analysis"
	StepRefinement    = "score_refinement"
	StepEnrichment    = "topic_enrichment"
	StepFeedback      = "feedback_synthesis"
	StepAssembled     = "assembled"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. The concurrent
// stages report from their own goroutines, so the callback must be safe for
// concurrent use.
type ProgressCallback func(event ProgressEvent)

// Options holds the collaborators and knobs for running the pipeline.
type Options struct {
	Client      llm.Client
	Transcriber speech.Transcriber    // nil disables audio submissions
	Store       *db.DB                // nil disables persistence
	Sessions    session.LanguageStore // nil disables the session language default
	SessionID   string
	OnProgress  ProgressCallback
}

// Outcome bundles the assembled result with the independently produced
// assistant summary; the caller merges them.
type Outcome struct {
	Result  *types.AssessmentResult
	Summary types.AssistantSummary
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *Options, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// Assess drives the full pipeline for one request. The request is processed
// in isolation: every value built here is owned by this invocation.
func Assess(ctx context.Context, opts Options, req types.AssessmentRequest) (*Outcome, error) {
	input, err := normalizeInput(ctx, &opts, req)
	if err != nil {
		return nil, err
	}

	// Stage: language detection. Never fails; defaults to English.
	lang := language.Detect(ctx, opts.Client, input)
	emitProgress(&opts, StepLanguage, fmt.Sprintf("Detected language: %s", lang), nil)
	if opts.Sessions != nil {
		opts.Sessions.RememberLanguage(ctx, opts.SessionID, lang)
	}

	// Stage: knowledge analysis. Hard failure; there is no safe fallback for
	// judging what the text means.
	raw, err := analysis.Analyze(ctx, opts.Client, req.Subject, input, lang)
	if err != nil {
		return nil, fmt.Errorf("knowledge analysis failed: %w", err)
	}
	emitProgress(&opts, StepAnalysis, fmt.Sprintf("Raw score %d, %d covered, %d missing",
		raw.Score, len(raw.CoveredTopics), len(raw.MissingTopics)), nil)

	// Stage: deterministic score refinement.
	wordCount := scoring.CountWords(input)
	finalScore := scoring.Refine(raw.Score, len(raw.CoveredTopics), wordCount)
	emitProgress(&opts, StepRefinement, fmt.Sprintf("Refined score: %d (%d words)", finalScore, wordCount), nil)

	// Stages: topic enrichment and feedback synthesis run concurrently.
	// Enrichment degrades per topic and never errors; feedback is a hard
	// failure that cancels the sibling branch.
	var (
		enriched []types.EnrichedTopic
		summary  string
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		enriched = enrichment.EnrichTopics(gCtx, opts.Client, req.Subject, raw.MissingTopics, lang)
		emitProgress(&opts, StepEnrichment, fmt.Sprintf("Enriched %d missing topics", len(enriched)), nil)
		return nil
	})
	g.Go(func() error {
		var err error
		summary, err = feedback.Synthesize(gCtx, opts.Client, feedback.Input{
			Subject:   req.Subject,
			UserInput: input,
			Score:     finalScore,
			Covered:   raw.CoveredTopics,
			Missing:   raw.MissingTopics,
		}, lang)
		if err != nil {
			return err
		}
		emitProgress(&opts, StepFeedback, "Narrative feedback generated", nil)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("feedback synthesis failed: %w", err)
	}

	result := &types.AssessmentResult{
		Subject:       req.Subject,
		Language:      lang,
		Score:         finalScore,
		CoveredTopics: raw.CoveredTopics,
		MissingTopics: enriched,
		TopicCoverage: raw.TopicCoverage,
		Feedback:      raw.Feedback,
		CreatedAt:     time.Now().UTC(),
	}

	// Hand the assembled result to the store. Persistence is best-effort:
	// the user still gets their assessment if the store is down.
	if opts.Store != nil {
		id, err := opts.Store.SaveAssessment(ctx, result)
		if err != nil {
			log.Printf("Warning: failed to persist assessment: %v", err)
		} else {
			result.ID = id.String()
		}
	}
	emitProgress(&opts, StepAssembled, "Assessment assembled", result)

	return &Outcome{
		Result:  result,
		Summary: types.AssistantSummary{EnhancedFeedback: summary},
	}, nil
}

// normalizeInput resolves the request to plain text, transcribing audio
// submissions first. Speech errors are terminal and user-facing.
func normalizeInput(ctx context.Context, opts *Options, req types.AssessmentRequest) (string, error) {
	if req.Kind != types.InputAudio {
		return req.Input, nil
	}

	if opts.Transcriber == nil {
		return "", fmt.Errorf("audio submissions are not enabled")
	}
	text, err := opts.Transcriber.Transcribe(ctx, req.Audio, req.AudioFormat)
	if err != nil {
		return "", err
	}
	emitProgress(opts, StepTranscription, fmt.Sprintf("Transcribed %d bytes of audio", len(req.Audio)), nil)
	return text, nil
}
