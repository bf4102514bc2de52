// Package tts provides text-to-speech services for converting translated
// text back to audio.
//
// The package defines a common Service interface that abstracts TTS
// providers. Synthesis always produces MP3 bytes; voice selection is a
// closed per-language table with a default fallback voice.
//
// # Usage
//
//	service := tts.NewGoogle(os.Getenv("GOOGLE_API_KEY"))
//	audio, err := service.Synthesize(ctx, "Hello world", language.English)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.mp3", audio, 0o644)
package tts
