package language

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/muzamilsyed/aynstyn/internal/llm"
)

func TestDetect_CleanCode(t *testing.T) {
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "es", nil
		},
	}
	assert.Equal(t, "es", Detect(context.Background(), client, "la gravedad atrae los objetos"))
}

func TestDetect_ServiceFailureDefaultsToEnglish(t *testing.T) {
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			return "", errors.New("timeout")
		},
	}
	assert.Equal(t, "en", Detect(context.Background(), client, "some text"))
}

func TestDetect_EmptyInputDefaultsWithoutCall(t *testing.T) {
	called := false
	client := &llm.MockClient{
		GenerateFunc: func(_ context.Context, _ llm.Request, _ llm.ModelTier) (string, error) {
			called = true
			return "fr", nil
		},
	}
	assert.Equal(t, "en", Detect(context.Background(), client, "   "))
	assert.False(t, called)
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"en", "en"},
		{"  ES \n", "es"},
		{"en-US", "en"},
		{"pt_BR", "pt"},
		{`"fr"`, "fr"},
		{"hi.", "hi"},
		{"The language is Spanish", "en"},
		{"", "en"},
		{"e", "en"},
		{"123", "en"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Normalize(tc.in), "input %q", tc.in)
	}
}

func TestUsesNonLatinScript(t *testing.T) {
	assert.True(t, UsesNonLatinScript("hi"))
	assert.True(t, UsesNonLatinScript("zh"))
	assert.False(t, UsesNonLatinScript("es"))
	assert.False(t, UsesNonLatinScript("en"))
}
