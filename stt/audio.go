package stt

// Format is an audio container format detected from magic bytes.
type Format string

// Supported input formats and their fixed sample rates. The pipeline does
// not decode or resample audio; the rate is implied by the container.
const (
	FormatLinear16 Format = "LINEAR16" // 16 kHz linear PCM inside a WAV container
	FormatMP3      Format = "MP3"      // 44.1 kHz MP3

	sampleRateLinear16 = 16000
	sampleRateMP3      = 44100
)

// SampleRate returns the sample rate implied by the format.
func (f Format) SampleRate() int {
	if f == FormatLinear16 {
		return sampleRateLinear16
	}
	return sampleRateMP3
}

// DetectFormat inspects the payload's magic bytes.
//
// RIFF/WAVE header means LINEAR16; an ID3 tag or an MPEG frame sync means
// MP3. Anything unrecognized defaults to MP3 for compatibility with older
// clients that upload raw MP3 frames.
func DetectFormat(audio []byte) Format {
	if len(audio) >= 12 &&
		string(audio[0:4]) == "RIFF" &&
		string(audio[8:12]) == "WAVE" {
		return FormatLinear16
	}
	if len(audio) >= 3 {
		if string(audio[0:3]) == "ID3" {
			return FormatMP3
		}
		// MPEG frame sync: 11 set bits.
		if audio[0] == 0xff && audio[1]&0xe0 == 0xe0 {
			return FormatMP3
		}
	}
	return FormatMP3
}
