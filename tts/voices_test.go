package tts

import (
	"testing"

	"github.com/US-AEON/Us-Backend/language"
)

func TestVoiceFor_MappedLanguages(t *testing.T) {
	tests := []struct {
		lang   language.Language
		wantID string
	}{
		{language.Korean, "ko-KR-Neural2-A"},
		{language.English, "en-US-Neural2-F"},
		{language.Vietnamese, "vi-VN-Neural2-A"},
		{language.Khmer, "km-KH-Standard-A"},
	}

	for _, tt := range tests {
		v := VoiceFor(tt.lang)
		if v.ID != tt.wantID {
			t.Errorf("VoiceFor(%v) = %q, want %q", tt.lang, v.ID, tt.wantID)
		}
		if v.Language != tt.lang {
			t.Errorf("VoiceFor(%v) language = %v", tt.lang, v.Language)
		}
	}
}

func TestVoiceFor_FallbackToDefault(t *testing.T) {
	v := VoiceFor(language.Unknown)
	if v.ID != "ko-KR-Neural2-A" {
		t.Errorf("unmapped language should fall back to the default voice, got %q", v.ID)
	}
}
