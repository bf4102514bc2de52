package stt

import "testing"

// wavHeader builds a minimal RIFF/WAVE prefix.
func wavHeader() []byte {
	b := make([]byte, 44)
	copy(b[0:4], "RIFF")
	copy(b[8:12], "WAVE")
	return b
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name  string
		audio []byte
		want  Format
	}{
		{"wav header", wavHeader(), FormatLinear16},
		{"id3 tag", []byte("ID3\x04\x00\x00\x00\x00\x00\x00"), FormatMP3},
		{"mpeg frame sync", []byte{0xff, 0xfb, 0x90, 0x00}, FormatMP3},
		{"mpeg frame sync fa", []byte{0xff, 0xfa, 0x90, 0x00}, FormatMP3},
		{"unrecognized defaults to mp3", []byte{0x01, 0x02, 0x03, 0x04}, FormatMP3},
		{"short payload", []byte{0x52}, FormatMP3},
		{"riff without wave", append([]byte("RIFF\x00\x00\x00\x00AVI "), 0x00), FormatMP3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.audio); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormatSampleRate(t *testing.T) {
	if got := FormatLinear16.SampleRate(); got != 16000 {
		t.Errorf("LINEAR16 sample rate = %d, want 16000", got)
	}
	if got := FormatMP3.SampleRate(); got != 44100 {
		t.Errorf("MP3 sample rate = %d, want 44100", got)
	}
}
