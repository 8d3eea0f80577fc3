package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muzamilsyed/aynstyn/internal/config"
	"github.com/muzamilsyed/aynstyn/internal/db"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/observability"
	"github.com/muzamilsyed/aynstyn/internal/pipeline"
	"github.com/muzamilsyed/aynstyn/internal/session"
	"github.com/muzamilsyed/aynstyn/internal/speech"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Assess a free-form explanation of a subject",
	Long: `Runs the full assessment pipeline on a text or audio answer: language
detection, knowledge analysis, score refinement, topic enrichment and
narrative feedback.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runAssess,
}

var (
	assessConfigPath string
	assessSubject    string
	assessInput      string
	assessInputFile  string
	assessAudioFile  string
	assessSessionID  string
	assessAPIKey     string
	assessJSON       bool
	assessVerbose    bool
)

func init() {
	assessCmd.Flags().StringVar(&assessConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	assessCmd.Flags().StringVarP(&assessSubject, "subject", "s", "", "Subject being assessed (required)")
	assessCmd.Flags().StringVarP(&assessInput, "input", "i", "", "Answer text (mutually exclusive with --input-file and --audio)")
	assessCmd.Flags().StringVar(&assessInputFile, "input-file", "", "Path to a file containing the answer text")
	assessCmd.Flags().StringVar(&assessAudioFile, "audio", "", "Path to an audio recording of the answer")
	assessCmd.Flags().StringVar(&assessSessionID, "session", "", "Session ID for language continuity across requests")
	assessCmd.Flags().StringVar(&assessAPIKey, "api-key", "", "Gemini API key (optional, defaults to GEMINI_API_KEY env var)")
	assessCmd.Flags().BoolVar(&assessJSON, "json", false, "Print the raw JSON result instead of formatted output")
	assessCmd.Flags().BoolVarP(&assessVerbose, "verbose", "v", false, "Print pipeline progress")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadAssessConfig()
	if err != nil {
		return err
	}

	if assessSubject == "" {
		return fmt.Errorf("--subject is required")
	}
	request, err := buildRequest()
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, nil, cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create completion client: %w", err)
	}
	defer func() { _ = client.Close() }()

	opts := pipeline.Options{
		Client:    client,
		SessionID: assessSessionID,
	}
	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer store.Close()
		opts.Store = store
	}
	if cfg.RedisURL != "" {
		sessions, err := session.NewRedisLanguageStore(cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() { _ = sessions.Close() }()
		opts.Sessions = sessions
	}
	if request.Kind == types.InputAudio {
		transcriber, err := speech.NewGoogleTranscriber(ctx)
		if err != nil {
			return fmt.Errorf("failed to create transcriber: %w", err)
		}
		defer func() { _ = transcriber.Close() }()
		opts.Transcriber = transcriber
	}
	if assessVerbose {
		opts.OnProgress = func(event pipeline.ProgressEvent) {
			fmt.Fprintf(os.Stderr, "[%s] %s\n", event.Step, event.Message)
		}
	}

	outcome, err := pipeline.Assess(ctx, opts, request)
	if err != nil {
		return err
	}

	if assessJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string]any{
			"result":            outcome.Result,
			"enhanced_feedback": outcome.Summary.EnhancedFeedback,
		})
	}

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintAssessment(outcome.Result)
	printer.PrintCoverage(outcome.Result.TopicCoverage)
	if outcome.Summary.EnhancedFeedback != "" {
		fmt.Println()
		fmt.Println(outcome.Summary.EnhancedFeedback)
	}
	return nil
}

func loadAssessConfig() (*config.Config, error) {
	cfg := &config.Config{}
	if assessConfigPath != "" {
		loaded, err := config.LoadConfig(assessConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if assessAPIKey != "" {
		cfg.APIKey = assessAPIKey
	}
	cfg.FromEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRequest resolves the answer source. Exactly one of --input,
// --input-file and --audio must be provided.
func buildRequest() (types.AssessmentRequest, error) {
	sources := 0
	for _, s := range []string{assessInput, assessInputFile, assessAudioFile} {
		if s != "" {
			sources++
		}
	}
	if sources != 1 {
		return types.AssessmentRequest{}, fmt.Errorf("exactly one of --input, --input-file or --audio is required")
	}

	request := types.AssessmentRequest{Subject: assessSubject, Kind: types.InputText}
	switch {
	case assessInput != "":
		request.Input = assessInput
	case assessInputFile != "":
		data, err := os.ReadFile(assessInputFile)
		if err != nil {
			return types.AssessmentRequest{}, fmt.Errorf("failed to read input file: %w", err)
		}
		request.Input = strings.TrimSpace(string(data))
	default:
		data, err := os.ReadFile(assessAudioFile)
		if err != nil {
			return types.AssessmentRequest{}, fmt.Errorf("failed to read audio file: %w", err)
		}
		request.Audio = data
		request.AudioFormat = mimeTypeForAudioFile(assessAudioFile)
		request.Kind = types.InputAudio
	}
	return request, nil
}

func mimeTypeForAudioFile(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return "audio/wav"
	case ".ogg":
		return "audio/ogg"
	case ".flac":
		return "audio/flac"
	case ".mp3":
		return "audio/mp3"
	default:
		return "audio/webm"
	}
}
