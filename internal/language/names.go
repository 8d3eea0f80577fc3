package language

// names maps ISO 639-1 codes to English language names for prompt
// construction ("write entirely in Spanish").
var names = map[string]string{
	"en": "English",
	"es": "Spanish",
	"fr": "French",
	"de": "German",
	"it": "Italian",
	"pt": "Portuguese",
	"nl": "Dutch",
	"ru": "Russian",
	"uk": "Ukrainian",
	"ar": "Arabic",
	"hi": "Hindi",
	"bn": "Bengali",
	"ta": "Tamil",
	"te": "Telugu",
	"ur": "Urdu",
	"zh": "Chinese",
	"ja": "Japanese",
	"ko": "Korean",
	"tr": "Turkish",
	"pl": "Polish",
	"sv": "Swedish",
	"el": "Greek",
	"he": "Hebrew",
	"th": "Thai",
	"vi": "Vietnamese",
	"id": "Indonesian",
}

// Name returns the English name for a language code, falling back to the
// code itself for languages outside the table.
func Name(code string) string {
	if name, ok := names[code]; ok {
		return name
	}
	return code
}

// nonLatinScript lists languages written in a script other than Latin. The
// script-leakage check is only meaningful for these targets; for Latin-script
// languages a Latin-dominated response is expected.
var nonLatinScript = map[string]bool{
	"ru": true, "uk": true, "ar": true, "hi": true, "bn": true,
	"ta": true, "te": true, "ur": true, "zh": true, "ja": true,
	"ko": true, "el": true, "he": true, "th": true,
}

// UsesNonLatinScript reports whether a language is written in a non-Latin
// script.
func UsesNonLatinScript(code string) bool {
	return nonLatinScript[code]
}
