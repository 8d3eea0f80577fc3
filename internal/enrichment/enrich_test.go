package enrichment

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

func TestExplainTopic_Success(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
			assert.Contains(t, req.User, "Thermodynamics")
			return `{"overview": "Heat is a form of energy transfer.", "key_points": ["First law", "Second law", "Entropy"]}`, nil
		},
	}

	topic := types.TopicRef{Name: "Thermodynamics", Description: "Heat and energy"}
	result := ExplainTopic(context.Background(), client, "Physics", topic, "en")

	assert.Equal(t, "Thermodynamics", result.Name)
	assert.Equal(t, "Heat is a form of energy transfer.", result.Overview)
	assert.Len(t, result.KeyPoints, 3)
}

func TestExplainTopic_FailureYieldsPlaceholder(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "", errors.New("rate limited")
		},
	}

	topic := types.TopicRef{Name: "Entropy", Description: "Disorder"}
	result := ExplainTopic(context.Background(), client, "Physics", topic, "en")

	assert.Equal(t, "Overview unavailable", result.Overview)
	assert.Equal(t, []string{"Explanation could not be generated"}, result.KeyPoints)
	assert.Equal(t, "Entropy", result.Name, "topic identity survives the fallback")
}

func TestExplainTopic_MalformedJSONYieldsPlaceholder(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "not json at all", nil
		},
	}

	result := ExplainTopic(context.Background(), client, "Physics", types.TopicRef{Name: "X"}, "en")
	assert.Equal(t, "Overview unavailable", result.Overview)
}

func TestEnrichTopics_SingleFailureDoesNotAffectSiblings(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
			if strings.Contains(req.User, "Entropy") {
				return "", errors.New("boom")
			}
			return `{"overview": "Fine overview.", "key_points": ["a", "b", "c"]}`, nil
		},
	}

	topics := []types.TopicRef{
		{Name: "Momentum"},
		{Name: "Entropy"},
		{Name: "Waves"},
	}
	enriched := EnrichTopics(context.Background(), client, "Physics", topics, "en")

	require.Len(t, enriched, 3)
	assert.Equal(t, "Fine overview.", enriched[0].Overview)
	assert.Equal(t, "Overview unavailable", enriched[1].Overview)
	assert.Equal(t, "Fine overview.", enriched[2].Overview)
}

func TestEnrichTopics_PreservesOrder(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
			// Echo the topic name back so order is observable.
			for _, name := range []string{"Alpha", "Beta", "Gamma", "Delta"} {
				if strings.Contains(req.User, name) {
					return `{"overview": "` + name + ` overview", "key_points": ["p"]}`, nil
				}
			}
			return "", errors.New("unknown topic")
		},
	}

	topics := []types.TopicRef{{Name: "Alpha"}, {Name: "Beta"}, {Name: "Gamma"}, {Name: "Delta"}}
	enriched := EnrichTopics(context.Background(), client, "History", topics, "en")

	require.Len(t, enriched, 4)
	for i, topic := range topics {
		assert.Equal(t, topic.Name+" overview", enriched[i].Overview)
	}
}

func TestEnrichTopics_EmptyBatch(t *testing.T) {
	var calls atomic.Int32
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			calls.Add(1)
			return "{}", nil
		},
	}

	enriched := EnrichTopics(context.Background(), client, "Physics", nil, "en")
	assert.Empty(t, enriched)
	assert.Equal(t, int32(0), calls.Load())
}
