package providers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/US-AEON/Us-Backend/providers"
)

func TestNewGemini(t *testing.T) {
	p := providers.NewGemini("test-key")
	if p.ID() != "gemini" {
		t.Errorf("ID() = %q, want gemini", p.ID())
	}
	if p.Model() != "gemini-2.0-flash" {
		t.Errorf("Model() = %q", p.Model())
	}
}

func TestGemini_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/models/gemini-2.0-flash:generateContent") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing api key")
		}

		var req struct {
			Contents []struct {
				Role  string `json:"role"`
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "translate this" {
			t.Errorf("unexpected request contents: %+v", req.Contents)
		}

		_, _ = w.Write([]byte(`{
			"candidates": [{
				"content": {"role": "model", "parts": [{"text": "  translated text\n"}]},
				"finishReason": "STOP"
			}]
		}`))
	}))
	defer server.Close()

	p := providers.NewGemini("test-key", providers.WithGeminiBaseURL(server.URL))
	got, err := p.Generate(context.Background(), "translate this")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if got != "translated text" {
		t.Errorf("Generate = %q, want trimmed %q", got, "translated text")
	}
}

func TestGemini_Generate_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates": []}`))
	}))
	defer server.Close()

	p := providers.NewGemini("key", providers.WithGeminiBaseURL(server.URL))
	_, err := p.Generate(context.Background(), "prompt")
	if !errors.Is(err, providers.ErrEmptyResponse) {
		t.Errorf("err = %v, want ErrEmptyResponse", err)
	}
}

func TestGemini_Generate_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error": {"message": "overloaded"}}`))
	}))
	defer server.Close()

	p := providers.NewGemini("key", providers.WithGeminiBaseURL(server.URL))
	_, err := p.Generate(context.Background(), "prompt")
	if !errors.Is(err, providers.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}

	var genErr *providers.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("err = %v, want GenerationError", err)
	}
	if genErr.Message != "overloaded" {
		t.Errorf("message = %q, want overloaded", genErr.Message)
	}
}

func TestGemini_Generate_EmptyPrompt(t *testing.T) {
	p := providers.NewGemini("key")
	if _, err := p.Generate(context.Background(), "  "); err == nil {
		t.Error("expected error for empty prompt")
	}
}

func TestMockProvider(t *testing.T) {
	m := providers.NewMockProviderWithResponses("mock", "first", "second")

	got, err := m.Generate(context.Background(), "a")
	if err != nil || got != "first" {
		t.Errorf("Generate = %q, %v", got, err)
	}
	got, _ = m.Generate(context.Background(), "b")
	if got != "second" {
		t.Errorf("second Generate = %q", got)
	}
	// Last response repeats.
	got, _ = m.Generate(context.Background(), "c")
	if got != "second" {
		t.Errorf("third Generate = %q", got)
	}

	if calls := m.Calls(); len(calls) != 3 || calls[0] != "a" {
		t.Errorf("Calls() = %v", calls)
	}
	if m.LastPrompt() != "c" {
		t.Errorf("LastPrompt() = %q", m.LastPrompt())
	}

	failure := errors.New("boom")
	m.FailWith(failure)
	if _, err := m.Generate(context.Background(), "d"); !errors.Is(err, failure) {
		t.Errorf("err = %v, want boom", err)
	}
}
