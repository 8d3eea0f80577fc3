package feedback

import "unicode"

// leakageSampleRunes is how much of the response opening the leakage check
// inspects. The model either followed the language instruction or it did not;
// the first few sentences are enough to tell.
const leakageSampleRunes = 160

// latinDominanceRatio is the fraction of letters that must be Latin for the
// opening to count as leaked.
const latinDominanceRatio = 0.7

// DominantLatinScript reports whether the opening of text is dominated by
// Latin-script letters. Non-letter runes are ignored.
func DominantLatinScript(text string) bool {
	var letters, latin int
	for _, r := range text {
		if letters >= leakageSampleRunes {
			break
		}
		if !unicode.IsLetter(r) {
			continue
		}
		letters++
		if unicode.Is(unicode.Latin, r) {
			latin++
		}
	}
	if letters == 0 {
		return false
	}
	return float64(latin)/float64(letters) >= latinDominanceRatio
}
