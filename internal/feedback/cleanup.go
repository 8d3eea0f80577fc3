package feedback

import (
	"regexp"
	"strings"
)

var (
	boldMarkers   = regexp.MustCompile(`\*\*|__`)
	listPrefix    = regexp.MustCompile(`^\s*(\d+[.)]\s+|[-*•]\s+)`)
	excessNewline = regexp.MustCompile(`\n{3,}`)
)

// Clean applies the deterministic post-processing to a synthesized narrative:
// bold-emphasis markers are stripped, leading list numbering and bullets are
// removed per line, and runs of blank lines are collapsed. The narrative is
// meant to read as flowing prose, not a formatted document.
func Clean(text string) string {
	text = boldMarkers.ReplaceAllString(text, "")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = listPrefix.ReplaceAllString(line, "")
	}
	text = strings.Join(lines, "\n")

	text = excessNewline.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}
