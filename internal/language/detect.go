// Package language classifies the dominant language of a submission. The
// detected code is established once per request and honored by every
// downstream generation stage.
package language

import (
	"context"
	"log"
	"regexp"
	"strings"

	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/prompts"
)

// Default is the language assumed when detection cannot produce a usable code.
const Default = "en"

var codePattern = regexp.MustCompile(`^[a-z]{2}$`)

// Detect classifies the dominant language of text and returns an ISO 639-1
// code. Detection is best-effort: any failure or malformed response falls
// back to Default. This stage never fails the request.
func Detect(ctx context.Context, client llm.Client, text string) string {
	if strings.TrimSpace(text) == "" {
		return Default
	}

	template := prompts.MustGet("detection.json", "classify-language")
	prompt := prompts.Format(template, map[string]string{"Text": truncate(text, 500)})

	resp, err := client.Generate(ctx, llm.Request{User: prompt}, llm.TierLite)
	if err != nil {
		log.Printf("language detection failed, defaulting to %s: %v", Default, err)
		return Default
	}

	return Normalize(resp)
}

// Normalize reduces a raw detector response to a two-letter lowercase code,
// or Default if the response is unusable.
func Normalize(resp string) string {
	code := strings.ToLower(strings.TrimSpace(resp))
	// Tolerate region subtags ("en-US") and stray punctuation.
	code = strings.Trim(code, ".\"'` ")
	if idx := strings.IndexAny(code, "-_"); idx > 0 {
		code = code[:idx]
	}
	if !codePattern.MatchString(code) {
		return Default
	}
	return code
}

// truncate bounds the classification sample; a few hundred characters is
// plenty to identify a language.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
