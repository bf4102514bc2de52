package tts

import "github.com/US-AEON/Us-Backend/language"

// voiceTable is the closed per-language voice selection table.
// All entries use female neural voices where Google offers them; Khmer only
// has a standard voice.
var voiceTable = map[language.Language]Voice{
	language.Korean: {
		ID:       "ko-KR-Neural2-A",
		Language: language.Korean,
		Gender:   "FEMALE",
	},
	language.English: {
		ID:       "en-US-Neural2-F",
		Language: language.English,
		Gender:   "FEMALE",
	},
	language.Vietnamese: {
		ID:       "vi-VN-Neural2-A",
		Language: language.Vietnamese,
		Gender:   "FEMALE",
	},
	language.Khmer: {
		ID:       "km-KH-Standard-A",
		Language: language.Khmer,
		Gender:   "FEMALE",
	},
}

// VoiceFor returns the voice for the given language, falling back to the
// default language's voice when the language is unmapped.
func VoiceFor(lang language.Language) Voice {
	if v, ok := voiceTable[lang]; ok {
		return v
	}
	return voiceTable[language.Default]
}
