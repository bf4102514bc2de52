// Package conversation implements one turn of a bilingual voice
// conversation: dual speech recognition to pick a source language,
// context-aware translation planning, speech synthesis of the result,
// and persistence of the finished pair.
package conversation
