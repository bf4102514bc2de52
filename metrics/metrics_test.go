package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

func TestRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if err := Register(reg); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Re-registering the same collectors must fail.
	if err := Register(prometheus.WrapRegistererWithPrefix("", reg)); err == nil {
		t.Error("expected duplicate registration error")
	}
}

func TestObserveHelpers(t *testing.T) {
	// The helpers must not panic regardless of registration state.
	ObserveTurn(StatusSuccess, 1200*time.Millisecond)
	ObserveTurn(StatusError, 10*time.Millisecond)
	RecordDetectedLanguage("ko-KR")
	ObserveProviderRequest("gemini", "generate", StatusSuccess, 800*time.Millisecond)
	RecordSessionSaved()
	RecordTitleFallback()
}
