package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muzamilsyed/aynstyn/internal/llm"
	"github.com/muzamilsyed/aynstyn/internal/types"
)

func sampleInput() Input {
	return Input{
		Subject:   "Physics",
		UserInput: "Objects attract each other through gravity.",
		Score:     64,
		Covered:   []types.TopicRef{{Name: "Gravity"}},
		Missing:   []types.TopicRef{{Name: "Thermodynamics"}},
	}
}

func TestSynthesize_English(t *testing.T) {
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
			assert.Contains(t, req.System, "English")
			assert.Contains(t, req.User, "Physics")
			assert.Contains(t, req.User, "64")
			return "You clearly understand gravity. Keep exploring heat and energy next.", nil
		},
	}

	text, err := Synthesize(context.Background(), client, sampleInput(), "en")
	require.NoError(t, err)
	assert.Contains(t, text, "gravity")
}

func TestSynthesize_CleansMarkdownArtifacts(t *testing.T) {
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "**Great work!**\n\n\n\n1. You understood gravity.\n- Keep going.", nil
		},
	}

	text, err := Synthesize(context.Background(), client, sampleInput(), "en")
	require.NoError(t, err)
	assert.NotContains(t, text, "**")
	assert.NotContains(t, text, "1. ")
	assert.NotContains(t, text, "- ")
	assert.NotContains(t, text, "\n\n\n")
}

func TestSynthesize_UpstreamFailurePropagates(t *testing.T) {
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "", errors.New("service unavailable")
		},
	}

	_, err := Synthesize(context.Background(), client, sampleInput(), "en")
	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
}

func TestSynthesize_HindiLeakageTriggersRetranslation(t *testing.T) {
	var calls []string
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, req llm.Request, _ llm.ModelTier) (string, error) {
			calls = append(calls, req.User)
			if len(calls) == 1 {
				// Model ignored the Hindi instruction.
				return "You did a wonderful job explaining the basics of physics and motion today.", nil
			}
			return "आपने भौतिकी की मूल बातें बहुत अच्छी तरह समझाईं। ऐसे ही आगे बढ़ते रहिए।", nil
		},
	}

	text, err := Synthesize(context.Background(), client, sampleInput(), "hi")
	require.NoError(t, err)
	require.Len(t, calls, 2, "a re-translation pass must follow the leaked response")
	assert.Contains(t, calls[1], "Hindi")
	assert.True(t, strings.Contains(text, "भौतिकी"))
}

func TestSynthesize_HindiNativeResponseNotRetranslated(t *testing.T) {
	var callCount int
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			callCount++
			return "आपने गुरुत्वाकर्षण को स्पष्ट रूप से समझाया। अगली बार ऊष्मागतिकी पर ध्यान दीजिए।", nil
		},
	}

	_, err := Synthesize(context.Background(), client, sampleInput(), "hi")
	require.NoError(t, err)
	assert.Equal(t, 1, callCount)
}

func TestSynthesize_SpanishLatinResponseNotRetranslated(t *testing.T) {
	var callCount int
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			callCount++
			return "Explicaste la gravedad con mucha claridad. Sigue adelante.", nil
		},
	}

	_, err := Synthesize(context.Background(), client, sampleInput(), "es")
	require.NoError(t, err)
	assert.Equal(t, 1, callCount, "Latin-script targets cannot leak by script")
}

func TestSynthesize_RetranslationFailurePropagates(t *testing.T) {
	var callCount int
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			callCount++
			if callCount == 1 {
				return "An English response where Hindi was requested, start to finish.", nil
			}
			return "", errors.New("translation quota exhausted")
		},
	}

	_, err := Synthesize(context.Background(), client, sampleInput(), "hi")
	var synthErr *SynthesisError
	require.ErrorAs(t, err, &synthErr)
}

func TestNeedsRetranslation(t *testing.T) {
	english := "This is entirely in English prose from the very first word onward."
	hindi := "यह पूरी तरह हिंदी में लिखा गया है और इसमें कोई अंग्रेज़ी नहीं है।"

	assert.False(t, NeedsRetranslation("en", english), "default language never retranslates")
	assert.True(t, NeedsRetranslation("hi", english))
	assert.False(t, NeedsRetranslation("hi", hindi))
	assert.False(t, NeedsRetranslation("es", english), "Latin-script target cannot be judged by script")
}

func TestDominantLatinScript(t *testing.T) {
	assert.True(t, DominantLatinScript("Mostly English text here."))
	assert.False(t, DominantLatinScript("यह हिंदी है और इसमें कुछ भी लैटिन नहीं है।"))
	assert.False(t, DominantLatinScript("1234 !!! ...."), "no letters means no dominance")
	assert.False(t, DominantLatinScript(""))
}

func TestClean(t *testing.T) {
	input := "**Bold opening.**\n\n\n\n2) A numbered thought.\n• A bulleted one.\n\nPlain closing."
	want := "Bold opening.\n\nA numbered thought.\nA bulleted one.\n\nPlain closing."
	assert.Equal(t, want, Clean(input))
}
