// Package feedback produces the inspirational narrative summary of an
// assessment in the detected language. Prompts are authored natively per
// language; a post-hoc script check forces one re-translation pass when the
// model ignored the language instruction. There is no fallback content for
// this stage.
package feedback

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/prompts"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

// narrativeTemperature is higher than the structured stages; the narrative
// should read warm, not mechanical.
const narrativeTemperature = 0.7

// Input carries everything the synthesizer needs from the assessment.
type Input struct {
	Subject   string
	UserInput string
	Score     int
	Covered   []types.TopicRef
	Missing   []types.TopicRef
}

// SynthesisError represents a completion-service failure during feedback
// generation. Fabricating a narrative would be worse than failing honestly,
// so it propagates.
type SynthesisError struct {
	Message string
	Cause   error
}

func (e *SynthesisError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("feedback synthesis failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("feedback synthesis failed: %s", e.Message)
}

func (e *SynthesisError) Unwrap() error {
	return e.Cause
}

// Synthesize generates the cleaned narrative summary in the target language.
func Synthesize(ctx context.Context, client llm.Client, in Input, lang string) (string, error) {
	locale := prompts.MustGetLocale("feedback_locales.json", lang)
	user := prompts.Format(locale.User, map[string]string{
		"Subject":       in.Subject,
		"Input":         in.UserInput,
		"Score":         strconv.Itoa(in.Score),
		"CoveredTopics": topicNames(in.Covered),
		"MissingTopics": topicNames(in.Missing),
	})

	text, err := client.Generate(ctx, llm.Request{
		System:      locale.System,
		User:        user,
		Temperature: narrativeTemperature,
	}, llm.TierAdvanced)
	if err != nil {
		return "", &SynthesisError{Message: "narrative request failed", Cause: err}
	}

	if NeedsRetranslation(lang, text) {
		log.Printf("feedback: %s response opened in Latin script, forcing re-translation", lang)
		text, err = retranslate(ctx, client, text, lang)
		if err != nil {
			return "", &SynthesisError{Message: "forced re-translation failed", Cause: err}
		}
	}

	return Clean(text), nil
}

// NeedsRetranslation reports whether a response must be re-translated: the
// target is not the default language, is written in a non-Latin script, and
// the response opening is nonetheless dominated by Latin letters.
func NeedsRetranslation(lang, text string) bool {
	if lang == language.Default {
		return false
	}
	if !language.UsesNonLatinScript(lang) {
		return false
	}
	return DominantLatinScript(text)
}

func retranslate(ctx context.Context, client llm.Client, text, lang string) (string, error) {
	template := prompts.MustGet("feedback.json", "retranslate")
	user := prompts.Format(template, map[string]string{
		"Language": language.Name(lang),
		"Text":     text,
	})
	return client.Generate(ctx, llm.Request{User: user}, llm.TierStandard)
}

func topicNames(topics []types.TopicRef) string {
	if len(topics) == 0 {
		return "-"
	}
	names := make([]string, 0, len(topics))
	for _, topic := range topics {
		names = append(names, topic.Name)
	}
	return strings.Join(names, ", ")
}
