package tts

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/US-AEON/Us-Backend/language"
	"github.com/US-AEON/Us-Backend/logger"
)

const (
	googleTTSBaseURL  = "https://texttospeech.googleapis.com/v1"
	googleTTSEndpoint = "/text:synthesize"

	defaultGoogleTimeout   = 60 * time.Second
	defaultGoogleRateQPS   = 10
	defaultGoogleRateBurst = 5

	// Synthesis defaults. The clients play back at normal rate and pitch.
	defaultSpeakingRate = 1.0
	defaultPitch        = 0.0
	defaultVolumeGainDb = 0.0
)

// GoogleService implements TTS using the Google Cloud Text-to-Speech REST API.
type GoogleService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// GoogleOption configures the Google TTS service.
type GoogleOption func(*GoogleService)

// WithGoogleBaseURL sets a custom base URL (for testing or proxies).
func WithGoogleBaseURL(url string) GoogleOption {
	return func(s *GoogleService) {
		s.baseURL = url
	}
}

// WithGoogleClient sets a custom HTTP client.
func WithGoogleClient(client *http.Client) GoogleOption {
	return func(s *GoogleService) {
		s.client = client
	}
}

// WithGoogleRateLimit sets a client-side request rate limit.
func WithGoogleRateLimit(qps float64, burst int) GoogleOption {
	return func(s *GoogleService) {
		s.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

// NewGoogle creates a Google Cloud Text-to-Speech service.
func NewGoogle(apiKey string, opts ...GoogleOption) *GoogleService {
	s := &GoogleService{
		apiKey:  apiKey,
		baseURL: googleTTSBaseURL,
		client:  &http.Client{Timeout: defaultGoogleTimeout},
		limiter: rate.NewLimiter(defaultGoogleRateQPS, defaultGoogleRateBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider identifier.
func (s *GoogleService) Name() string {
	return "google-tts"
}

// Voices returns the closed voice table.
func (s *GoogleService) Voices() []Voice {
	voices := make([]Voice, 0, len(voiceTable))
	for _, v := range voiceTable {
		voices = append(voices, v)
	}
	return voices
}

// Google Cloud TTS API request/response structures.
type googleSynthesizeRequest struct {
	Input       googleSynthesisInput `json:"input"`
	Voice       googleVoiceSelection `json:"voice"`
	AudioConfig googleAudioConfig    `json:"audioConfig"`
}

type googleSynthesisInput struct {
	Text string `json:"text"`
}

type googleVoiceSelection struct {
	LanguageCode string `json:"languageCode"`
	Name         string `json:"name"`
	SsmlGender   string `json:"ssmlGender"`
}

type googleAudioConfig struct {
	AudioEncoding string  `json:"audioEncoding"`
	SpeakingRate  float64 `json:"speakingRate"`
	Pitch         float64 `json:"pitch"`
	VolumeGainDb  float64 `json:"volumeGainDb"`
}

type googleSynthesizeResponse struct {
	AudioContent string `json:"audioContent"` // base64 encoded MP3
}

type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Synthesize converts text to MP3 audio using the Google Cloud TTS API.
func (s *GoogleService) Synthesize(
	ctx context.Context, text string, lang language.Language,
) ([]byte, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if !lang.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, lang)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	voice := VoiceFor(lang)
	logger.ProviderCall(s.Name(), "synthesize",
		"language", lang.Code(),
		"voice", voice.ID,
		"chars", len(text),
	)

	reqBody := googleSynthesizeRequest{
		Input: googleSynthesisInput{Text: text},
		Voice: googleVoiceSelection{
			LanguageCode: voice.Language.Code(),
			Name:         voice.ID,
			SsmlGender:   voice.Gender,
		},
		AudioConfig: googleAudioConfig{
			AudioEncoding: "MP3",
			SpeakingRate:  defaultSpeakingRate,
			Pitch:         defaultPitch,
			VolumeGainDb:  defaultVolumeGainDb,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal synthesize request: %w", err)
	}

	url := s.baseURL + googleTTSEndpoint + "?key=" + s.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, NewSynthesisError(s.Name(), CodeOther, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewSynthesisError(s.Name(), CodeOther, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, s.classifyHTTPError(resp.StatusCode, body)
	}

	var synthResp googleSynthesizeResponse
	if err := json.Unmarshal(body, &synthResp); err != nil {
		return nil, NewSynthesisError(s.Name(), CodeOther, "failed to parse response", err)
	}

	if synthResp.AudioContent == "" {
		return nil, NewSynthesisError(s.Name(), CodeOther, "empty synthesis result", ErrNoAudioContent)
	}

	audio, err := base64.StdEncoding.DecodeString(synthResp.AudioContent)
	if err != nil {
		return nil, NewSynthesisError(s.Name(), CodeOther, "failed to decode audio content", err)
	}

	return audio, nil
}

func (s *GoogleService) classifyHTTPError(status int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", status)

	var errResp googleErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return NewSynthesisError(s.Name(), classifyStatusCode(status), message, nil)
}
