// Package stt provides speech-to-text services for converting audio to text.
//
// The package defines a common Service interface that abstracts STT providers
// so the conversation pipeline can transcribe speech with any backend.
//
// # Architecture
//
// The package provides:
//   - Service interface for STT providers
//   - Result carrying transcript, confidence, and language hint
//   - Magic-byte audio format detection (WAV/LINEAR16 vs MP3)
//   - A Google Cloud Speech-to-Text implementation
//
// # Usage
//
//	service := stt.NewGoogle(os.Getenv("GOOGLE_API_KEY"))
//	result, err := service.Recognize(ctx, audioData, language.Korean)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("User said:", result.Transcript)
//
// The audio container format is detected from the payload itself; callers
// never declare it. WAV uploads are treated as 16 kHz linear PCM and MP3
// uploads as 44.1 kHz, matching the formats the mobile clients produce.
package stt
