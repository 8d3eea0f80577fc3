package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/observability"
	"github.com/muzamilsyed/aynstyn/internal/timeline"
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Generate a six-event historical timeline for a subject",
	RunE:  runTimeline,
}

var (
	timelineSubject string
	timelineLang    string
	timelineAPIKey  string
	timelineJSON    bool
)

func init() {
	timelineCmd.Flags().StringVarP(&timelineSubject, "subject", "s", "", "Subject to build a timeline for (required)")
	timelineCmd.Flags().StringVarP(&timelineLang, "lang", "l", "en", "ISO 639-1 language code for the timeline")
	timelineCmd.Flags().StringVar(&timelineAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	timelineCmd.Flags().BoolVar(&timelineJSON, "json", false, "Print the raw JSON events instead of formatted output")
	rootCmd.AddCommand(timelineCmd)
}

func runTimeline(_ *cobra.Command, _ []string) error {
	if timelineSubject == "" {
		return fmt.Errorf("--subject is required")
	}

	ctx := context.Background()
	apiKey := timelineAPIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}

	// Without a key the synthesizer still produces the static fallback.
	var client llm.Client
	if apiKey != "" {
		created, err := llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create completion client: %w", err)
		}
		defer func() { _ = created.Close() }()
		client = created
	}

	events := timeline.Synthesize(ctx, client, timelineSubject, language.Normalize(timelineLang))

	if timelineJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(events)
	}

	observability.NewPrinter(os.Stdout).PrintTimeline(events)
	return nil
}
