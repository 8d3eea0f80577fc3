// Package scoring recomputes the final assessment score from the raw model
// score and the length of the learner's input. Everything here is
// deterministic and side-effect-free.
package scoring

import (
	"math"
	"strings"
)

// Weights for the three score components, selected by input length band.
const (
	shortCoverageWeight = 0.40
	shortAccuracyWeight = 0.30
	shortInsightWeight  = 0.30

	longCoverageWeight = 0.60
	longAccuracyWeight = 0.25
	longInsightWeight  = 0.15
)

const (
	// minWordCount is the hard floor below which the score is capped.
	minWordCount = 10
	// shortBandLimit separates the short and long weighting bands.
	shortBandLimit = 30
	// idealWordCount is the input length at which the length factor saturates.
	idealWordCount = 75
	// shortAnswerCeiling caps scores for inputs under minWordCount words.
	shortAnswerCeiling = 20
	// insightBaselineOffset approximates insight from the raw score. The raw
	// score is not independently judged for insight; this offset is a known
	// simplification carried over from the scoring design.
	insightBaselineOffset = 10
	// pointsPerCoveredTopic converts covered-topic count into a coverage score.
	pointsPerCoveredTopic = 25

	// Bonus window for concise-but-complete answers.
	bonusMinWords    = 20
	bonusMaxWords    = 50
	bonusMinCoverage = 75.0
	bonusMinAccuracy = 80.0
	bonusMultiplier  = 1.10
)

// CountWords counts whitespace-delimited non-empty tokens.
func CountWords(input string) int {
	return len(strings.Fields(input))
}

// Refine recomputes the final score from the raw model score, the number of
// covered topics, and the input word count. Pure function; identical inputs
// always yield identical output.
func Refine(rawScore, coveredTopics, wordCount int) int {
	if wordCount < minWordCount {
		return clamp(min(rawScore, shortAnswerCeiling))
	}

	coverage := math.Min(float64(coveredTopics*pointsPerCoveredTopic), 100)
	accuracy := float64(rawScore)
	insight := math.Max(float64(rawScore-insightBaselineOffset), 0)

	var base float64
	if wordCount < shortBandLimit {
		base = coverage*shortCoverageWeight + accuracy*shortAccuracyWeight + insight*shortInsightWeight
	} else {
		base = coverage*longCoverageWeight + accuracy*longAccuracyWeight + insight*longInsightWeight
	}

	lengthFactor := math.Min(1.0, float64(wordCount)/float64(idealWordCount))
	final := base * lengthFactor

	// Concise-but-complete bonus: a short answer that still hits most topics
	// accurately should not be punished for brevity.
	if wordCount >= bonusMinWords && wordCount <= bonusMaxWords &&
		coverage >= bonusMinCoverage && accuracy >= bonusMinAccuracy {
		final = math.Min(final*bonusMultiplier, 100)
	}

	return clamp(int(math.Round(final)))
}

func clamp(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
