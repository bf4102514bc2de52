package tts_test

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/US-AEON/Us-Backend/language"
	"github.com/US-AEON/Us-Backend/tts"
)

func TestNewGoogle(t *testing.T) {
	service := tts.NewGoogle("test-api-key")
	if service == nil {
		t.Fatal("NewGoogle returned nil")
	}
	if service.Name() != "google-tts" {
		t.Errorf("Name() = %q, want %q", service.Name(), "google-tts")
	}
}

func TestGoogleService_Voices(t *testing.T) {
	service := tts.NewGoogle("key")
	voices := service.Voices()
	if len(voices) != 4 {
		t.Fatalf("expected 4 voices, got %d", len(voices))
	}
	for _, v := range voices {
		if v.ID == "" || v.Gender == "" || !v.Language.Valid() {
			t.Errorf("incomplete voice entry: %+v", v)
		}
	}
}

func TestGoogleService_Synthesize_Success(t *testing.T) {
	mp3 := []byte{0xff, 0xfb, 0x01, 0x02, 0x03}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/text:synthesize" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}

		var req struct {
			Input struct {
				Text string `json:"text"`
			} `json:"input"`
			Voice struct {
				LanguageCode string `json:"languageCode"`
				Name         string `json:"name"`
				SsmlGender   string `json:"ssmlGender"`
			} `json:"voice"`
			AudioConfig struct {
				AudioEncoding string `json:"audioEncoding"`
			} `json:"audioConfig"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Input.Text != "Xin chào" {
			t.Errorf("text = %q", req.Input.Text)
		}
		if req.Voice.Name != "vi-VN-Neural2-A" || req.Voice.LanguageCode != "vi-VN" {
			t.Errorf("unexpected voice: %+v", req.Voice)
		}
		if req.Voice.SsmlGender != "FEMALE" {
			t.Errorf("gender = %q, want FEMALE", req.Voice.SsmlGender)
		}
		if req.AudioConfig.AudioEncoding != "MP3" {
			t.Errorf("encoding = %q, want MP3", req.AudioConfig.AudioEncoding)
		}

		_ = json.NewEncoder(w).Encode(map[string]string{
			"audioContent": base64.StdEncoding.EncodeToString(mp3),
		})
	}))
	defer server.Close()

	service := tts.NewGoogle("key", tts.WithGoogleBaseURL(server.URL))
	audio, err := service.Synthesize(context.Background(), "Xin chào", language.Vietnamese)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if string(audio) != string(mp3) {
		t.Errorf("audio did not round trip")
	}
}

func TestGoogleService_Synthesize_EmptyText(t *testing.T) {
	service := tts.NewGoogle("key")
	_, err := service.Synthesize(context.Background(), "", language.Korean)
	if !errors.Is(err, tts.ErrEmptyText) {
		t.Errorf("err = %v, want ErrEmptyText", err)
	}
}

func TestGoogleService_Synthesize_UnsupportedLanguage(t *testing.T) {
	service := tts.NewGoogle("key")
	_, err := service.Synthesize(context.Background(), "hello", language.Unknown)
	if !errors.Is(err, tts.ErrUnsupportedLanguage) {
		t.Errorf("err = %v, want ErrUnsupportedLanguage", err)
	}
}

func TestGoogleService_Synthesize_NoAudioContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	service := tts.NewGoogle("key", tts.WithGoogleBaseURL(server.URL))
	_, err := service.Synthesize(context.Background(), "hello", language.English)
	if !errors.Is(err, tts.ErrNoAudioContent) {
		t.Errorf("err = %v, want ErrNoAudioContent", err)
	}
}

func TestGoogleService_Synthesize_ErrorClassification(t *testing.T) {
	tests := []struct {
		status   int
		wantCode string
	}{
		{http.StatusBadRequest, tts.CodeInvalidArgument},
		{http.StatusUnauthorized, tts.CodePermissionDenied},
		{http.StatusTooManyRequests, tts.CodeQuotaExceeded},
		{http.StatusBadGateway, tts.CodeOther},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = w.Write([]byte(`{"error": {"message": "boom"}}`))
		}))

		service := tts.NewGoogle("key", tts.WithGoogleBaseURL(server.URL))
		_, err := service.Synthesize(context.Background(), "hello", language.Korean)
		server.Close()

		var synthErr *tts.SynthesisError
		if !errors.As(err, &synthErr) {
			t.Fatalf("status %d: err = %v, want SynthesisError", tt.status, err)
		}
		if synthErr.Code != tt.wantCode {
			t.Errorf("status %d: code = %q, want %q", tt.status, synthErr.Code, tt.wantCode)
		}
		if synthErr.Message != "boom" {
			t.Errorf("status %d: message = %q, want boom", tt.status, synthErr.Message)
		}
	}
}
