package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCountWords(t *testing.T) {
	assert.Equal(t, 0, CountWords(""))
	assert.Equal(t, 0, CountWords("   \n\t "))
	assert.Equal(t, 3, CountWords("force equals mass"))
	assert.Equal(t, 5, CountWords("  gravity   pulls\nobjects toward  earth "))
}

func TestRefine_ShortInputCappedAtTwenty(t *testing.T) {
	for _, raw := range []int{0, 20, 50, 85, 100} {
		for _, wc := range []int{0, 1, 5, 9} {
			score := Refine(raw, 4, wc)
			assert.LessOrEqual(t, score, 20, "raw=%d wc=%d", raw, wc)
		}
	}
}

func TestRefine_ShortInputKeepsLowRawScore(t *testing.T) {
	assert.Equal(t, 12, Refine(12, 2, 5))
}

func TestRefine_AlwaysInRange(t *testing.T) {
	for raw := 0; raw <= 100; raw += 10 {
		for _, covered := range []int{0, 1, 4, 8} {
			for _, wc := range []int{10, 25, 50, 75, 200} {
				score := Refine(raw, covered, wc)
				assert.GreaterOrEqual(t, score, 0)
				assert.LessOrEqual(t, score, 100)
			}
		}
	}
}

func TestRefine_Deterministic(t *testing.T) {
	first := Refine(73, 3, 42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Refine(73, 3, 42))
	}
}

func TestRefine_ShortBandWeights(t *testing.T) {
	// wc=15, raw=80, covered=2: coverage=50, accuracy=80, insight=70
	// base = 50*0.4 + 80*0.3 + 70*0.3 = 65; lengthFactor = 15/75 = 0.2
	// final = 13; no bonus (wc < 20)
	assert.Equal(t, 13, Refine(80, 2, 15))
}

func TestRefine_LongBandWeights(t *testing.T) {
	// wc=75, raw=80, covered=2: coverage=50, accuracy=80, insight=70
	// base = 50*0.6 + 80*0.25 + 70*0.15 = 60.5; lengthFactor = 1.0
	// no bonus (wc > 50)
	assert.Equal(t, 61, Refine(80, 2, 75))
}

func TestRefine_LengthFactorScalesScore(t *testing.T) {
	// Same inputs, longer answer, factor grows until idealWordCount.
	at30 := Refine(80, 4, 30)
	at50 := Refine(80, 4, 50)
	at75 := Refine(80, 4, 75)
	at200 := Refine(80, 4, 200)
	assert.Less(t, at30, at75)
	assert.Less(t, at50, at75)
	assert.Equal(t, at75, at200, "length factor saturates at the ideal word count")
}

func TestRefine_BonusBoundaries(t *testing.T) {
	// raw=85, covered=4: coverage=100, accuracy=85, insight=75.
	// Short band base = 100*0.4 + 85*0.3 + 75*0.3 = 88.
	// Long band base = 100*0.6 + 85*0.25 + 75*0.15 = 92.5.
	cases := []struct {
		wordCount int
		want      int
	}{
		{19, 22},  // 88 * 19/75, no bonus
		{20, 26},  // 88 * 20/75 * 1.10
		{50, 68},  // 92.5 * 50/75 * 1.10
		{51, 63},  // 92.5 * 51/75, no bonus
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Refine(85, 4, tc.wordCount), "wordCount=%d", tc.wordCount)
	}
}

func TestRefine_BonusRequiresCoverageAndAccuracy(t *testing.T) {
	// covered=2 keeps coverage at 50, below the bonus threshold.
	// Long band base = 50*0.6 + 85*0.25 + 75*0.15 = 62.5; 62.5 * 30/75 = 25
	assert.Equal(t, 25, Refine(85, 2, 30))
	// raw=79 keeps accuracy below the bonus threshold.
	// coverage=100, accuracy=79, insight=69: base = 60 + 19.75 + 10.35 = 90.1
	// 90.1 * 30/75 = 36.04
	assert.Equal(t, 36, Refine(79, 4, 30))
}

func TestRefine_BonusCapsAtHundred(t *testing.T) {
	// raw=100, covered=4 at 50 words: coverage=100, accuracy=100, insight=90.
	// Long band base = 60 + 25 + 13.5 = 98.5; factor 50/75 = 0.6667 -> 65.67
	// bonus -> 72.23 -> 72. Verify the cap with an already-high product.
	score := Refine(100, 4, 50)
	assert.LessOrEqual(t, score, 100)
	assert.Equal(t, 72, score)
}
