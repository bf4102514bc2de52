// Package language defines the closed set of languages supported by the
// conversation pipeline and their BCP-47 codes.
//
// Korean is the default language: every turn races a Korean recognition
// hypothesis against the requested foreign language, and every translation
// is exactly one hop between Korean and that foreign language.
package language

import (
	"errors"
	"fmt"
)

// Language identifies one supported language.
type Language int

// Supported languages. Unknown is the zero value and never appears in a
// valid request; it marks "no language" in persisted documents (e.g. a pair
// without a translation).
const (
	Unknown Language = iota
	Korean
	English
	Vietnamese
	Khmer
)

// Default is the language raced against the requested foreign language
// during dual recognition.
const Default = Korean

// ErrUnsupportedCode is returned when a BCP-47 code is not in the closed set.
var ErrUnsupportedCode = errors.New("unsupported language code")

// Code returns the BCP-47 code for the language. Unknown maps to "".
func (l Language) Code() string {
	switch l {
	case Korean:
		return "ko-KR"
	case English:
		return "en-US"
	case Vietnamese:
		return "vi-VN"
	case Khmer:
		return "km-KH"
	default:
		return ""
	}
}

// DisplayName returns a human-readable name used in prompts and logs.
func (l Language) DisplayName() string {
	switch l {
	case Korean:
		return "Korean"
	case English:
		return "English"
	case Vietnamese:
		return "Vietnamese"
	case Khmer:
		return "Khmer"
	default:
		return "unknown"
	}
}

// String returns the BCP-47 code, or "unknown" for the zero value.
func (l Language) String() string {
	if l == Unknown {
		return "unknown"
	}
	return l.Code()
}

// IsForeign reports whether l is a supported non-default language.
func (l Language) IsForeign() bool {
	switch l {
	case English, Vietnamese, Khmer:
		return true
	default:
		return false
	}
}

// Valid reports whether l is one of the supported languages.
func (l Language) Valid() bool {
	return l == Korean || l.IsForeign()
}

// FromCode resolves a BCP-47 code to a Language.
// Every code maps to exactly one Language; anything else is a validation
// error rather than a warn-and-default.
func FromCode(code string) (Language, error) {
	switch code {
	case "ko-KR":
		return Korean, nil
	case "en-US":
		return English, nil
	case "vi-VN":
		return Vietnamese, nil
	case "km-KH":
		return Khmer, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrUnsupportedCode, code)
	}
}

// Codes returns the BCP-47 codes of all supported languages.
func Codes() []string {
	return []string{
		Korean.Code(),
		English.Code(),
		Vietnamese.Code(),
		Khmer.Code(),
	}
}

// Foreign returns all supported foreign languages.
func Foreign() []Language {
	return []Language{English, Vietnamese, Khmer}
}

// MarshalText implements encoding.TextMarshaler using the BCP-47 code.
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. An empty value decodes
// to Unknown so omitted document fields round-trip.
func (l *Language) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*l = Unknown
		return nil
	}
	lang, err := FromCode(string(text))
	if err != nil {
		return err
	}
	*l = lang
	return nil
}
