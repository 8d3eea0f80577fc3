package timeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

func sixEvents() []types.TimelineEvent {
	return []types.TimelineEvent{
		{Year: "1687", Title: "Principia", Description: "Newton publishes the laws of motion."},
		{Year: "1803", Title: "Atomic theory", Description: "Dalton proposes atoms."},
		{Year: "1859", Title: "Evolution", Description: "Darwin publishes On the Origin of Species."},
		{Year: "1905", Title: "Relativity", Description: "Einstein's annus mirabilis."},
		{Year: "1953", Title: "DNA", Description: "The double helix is described."},
		{Year: "Present", Title: "Open questions", Description: "Research continues."},
	}
}

func TestSynthesize_LivePath(t *testing.T) {
	payload, err := json.Marshal(sixEvents())
	require.NoError(t, err)

	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
			assert.Contains(t, req.User, "Science")
			return string(payload), nil
		},
	}

	events := Synthesize(context.Background(), client, "Science", "en")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "1687", events[0].Year)
	assert.Equal(t, "Present", events[5].Year)
}

func TestSynthesize_ServiceFailureUsesFallback(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "", errors.New("unavailable")
		},
	}

	events := Synthesize(context.Background(), client, "Physics", "es")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "Antigüedad", events[0].Year)
}

func TestSynthesize_MalformedResponseUsesFallback(t *testing.T) {
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "not json", nil
		},
	}

	events := Synthesize(context.Background(), client, "Physics", "en")
	require.Len(t, events, types.TimelineLength)
}

func TestSynthesize_NilClientUsesFallback(t *testing.T) {
	events := Synthesize(context.Background(), nil, "Physics", "fr")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "Antiquité", events[0].Year)
}

func TestSynthesize_ShortTimelineUsesFallback(t *testing.T) {
	partial := sixEvents()[:4]
	payload, _ := json.Marshal(partial)
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return string(payload), nil
		},
	}

	events := Synthesize(context.Background(), client, "Physics", "en")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "Antiquity", events[0].Year, "fell back to the pre-authored table")
}

func TestSynthesize_EntriesMissingFieldsAreDropped(t *testing.T) {
	broken := sixEvents()
	broken[2].Title = "" // drops to 5 valid entries, which forces the fallback
	payload, _ := json.Marshal(broken)
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return string(payload), nil
		},
	}

	events := Synthesize(context.Background(), client, "Physics", "en")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "Antiquity", events[0].Year)
}

func TestSynthesize_WrappedArrayAccepted(t *testing.T) {
	payload, _ := json.Marshal(map[string]any{"timeline": sixEvents()})
	client := &llm.MockClient{
		GenerateJSONFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return string(payload), nil
		},
	}

	events := Synthesize(context.Background(), client, "Physics", "en")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "1687", events[0].Year)
}

func TestFallback_UnknownLanguageResolvesToEnglish(t *testing.T) {
	events := Fallback("zz")
	require.Len(t, events, types.TimelineLength)
	assert.Equal(t, "Antiquity", events[0].Year)
}

func TestFallback_EveryTableHasSixEvents(t *testing.T) {
	for _, lang := range []string{"en", "es", "fr", "de", "hi", "unknown"} {
		events := Fallback(lang)
		assert.Len(t, events, types.TimelineLength, lang)
		for i, event := range events {
			assert.NotEmpty(t, event.Year, "%s[%d]", lang, i)
			assert.NotEmpty(t, event.Title, "%s[%d]", lang, i)
			assert.NotEmpty(t, event.Description, "%s[%d]", lang, i)
		}
	}
}

func TestFallback_ReturnsACopy(t *testing.T) {
	first := Fallback("en")
	first[0].Title = "mutated"
	second := Fallback("en")
	assert.NotEqual(t, "mutated", second[0].Title)
}
