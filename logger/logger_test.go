package logger

import (
	"strings"
	"testing"
)

func TestRedactSensitiveData_GoogleKey(t *testing.T) {
	input := "calling STT with key=AIzaSyA1234567890abcdefghijklmnopqrstuvw"
	got := RedactSensitiveData(input)

	if strings.Contains(got, "AIzaSyA1234567890abcdefghijklmnopqrstuvw") {
		t.Errorf("API key not redacted: %s", got)
	}
	if !strings.Contains(got, "AIza***REDACTED***") {
		t.Errorf("expected redacted prefix, got: %s", got)
	}
}

func TestRedactSensitiveData_BearerToken(t *testing.T) {
	got := RedactSensitiveData("Authorization: Bearer abc123def456")
	if strings.Contains(got, "abc123def456") {
		t.Errorf("bearer token not redacted: %s", got)
	}
}

func TestRedactSensitiveData_CleanString(t *testing.T) {
	input := "no secrets here"
	if got := RedactSensitiveData(input); got != input {
		t.Errorf("clean string modified: %s", got)
	}
}

func TestSetVerbose(t *testing.T) {
	// Must not panic and must replace the global logger.
	prev := DefaultLogger
	SetVerbose(true)
	if DefaultLogger == prev {
		t.Error("SetVerbose did not replace the logger")
	}
	SetVerbose(false)
}
