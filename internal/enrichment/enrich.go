// Package enrichment expands missing topics into short overviews and key
// points. Each topic is requested independently; a failed request degrades
// to placeholder text for that topic only and never aborts the batch.
package enrichment

import (
	"context"
	"encoding/json"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/muzamilsyed/aynstyn/internal/language"
	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/prompts"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

// Placeholder content substituted when an enrichment request fails.
const (
	fallbackOverview = "Overview unavailable"
	fallbackKeyPoint = "Explanation could not be generated"
)

// explanation mirrors the JSON shape requested from the completion service.
type explanation struct {
	Overview  string   `json:"overview"`
	KeyPoints []string `json:"key_points"`
}

// ExplainTopic requests a short overview and key points for a single topic in
// the given language. On any failure it returns the placeholder enrichment;
// it never returns an error to the caller.
func ExplainTopic(ctx context.Context, client llm.Client, subject string, topic types.TopicRef, lang string) types.EnrichedTopic {
	template := prompts.MustGet("enrichment.json", "explain-topic")
	user := prompts.Format(template, map[string]string{
		"Subject":     subject,
		"Topic":       topic.Name,
		"Description": topic.Description,
		"Language":    language.Name(lang),
	})

	resp, err := client.GenerateJSON(ctx, llm.Request{User: user}, llm.TierStandard)
	if err != nil {
		log.Printf("enrichment: topic %q failed, using placeholder: %v", topic.Name, err)
		return placeholder(topic)
	}

	var exp explanation
	if err := json.Unmarshal([]byte(resp), &exp); err != nil {
		log.Printf("enrichment: topic %q returned malformed JSON, using placeholder: %v", topic.Name, err)
		return placeholder(topic)
	}
	if strings.TrimSpace(exp.Overview) == "" || len(exp.KeyPoints) == 0 {
		log.Printf("enrichment: topic %q returned empty explanation, using placeholder", topic.Name)
		return placeholder(topic)
	}

	return types.EnrichedTopic{
		TopicRef:  topic,
		Overview:  strings.TrimSpace(exp.Overview),
		KeyPoints: exp.KeyPoints,
	}
}

// EnrichTopics fans out one request per missing topic and waits for all of
// them. Output order matches input order. Failure boundaries are per topic.
func EnrichTopics(ctx context.Context, client llm.Client, subject string, topics []types.TopicRef, lang string) []types.EnrichedTopic {
	enriched := make([]types.EnrichedTopic, len(topics))

	g, gCtx := errgroup.WithContext(ctx)
	for i, topic := range topics {
		g.Go(func() error {
			enriched[i] = ExplainTopic(gCtx, client, subject, topic, lang)
			return nil
		})
	}
	// Goroutines never return an error; Wait is purely a join.
	_ = g.Wait()

	return enriched
}

func placeholder(topic types.TopicRef) types.EnrichedTopic {
	return types.EnrichedTopic{
		TopicRef:  topic,
		Overview:  fallbackOverview,
		KeyPoints: []string{fallbackKeyPoint},
	}
}
