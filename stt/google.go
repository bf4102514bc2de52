package stt

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
	googleSpeechBaseURL    = "https://speech.googleapis.com/v1"
	googleSpeechEndpoint   = "/speech:recognize"
	googleSpeechModel      = "latest_long"
	defaultGoogleTimeout   = 60 * time.Second
	defaultGoogleRateQPS   = 10
	defaultGoogleRateBurst = 5
)

// GoogleService implements STT using the Google Cloud Speech-to-Text REST API.
type GoogleService struct {
	apiKey  string
	baseURL string
	client  *http.Client
	model   string
	limiter *rate.Limiter
}

// GoogleOption configures the Google STT service.
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

// WithGoogleModel sets the recognition model to use.
func WithGoogleModel(model string) GoogleOption {
	return func(s *GoogleService) {
		s.model = model
	}
}

// WithGoogleRateLimit sets a client-side request rate limit.
func WithGoogleRateLimit(qps float64, burst int) GoogleOption {
	return func(s *GoogleService) {
		s.limiter = rate.NewLimiter(rate.Limit(qps), burst)
	}
}

// NewGoogle creates a Google Cloud Speech STT service.
func NewGoogle(apiKey string, opts ...GoogleOption) *GoogleService {
	s := &GoogleService{
		apiKey:  apiKey,
		baseURL: googleSpeechBaseURL,
		client:  &http.Client{Timeout: defaultGoogleTimeout},
		model:   googleSpeechModel,
		limiter: rate.NewLimiter(defaultGoogleRateQPS, defaultGoogleRateBurst),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the provider identifier.
func (s *GoogleService) Name() string {
	return "google-speech"
}

// Google Cloud Speech API request/response structures.
type googleRecognizeRequest struct {
	Audio  googleRecognitionAudio  `json:"audio"`
	Config googleRecognitionConfig `json:"config"`
}

type googleRecognitionAudio struct {
	Content string `json:"content"` // base64 encoded
}

type googleRecognitionConfig struct {
	Encoding                   string `json:"encoding"`
	SampleRateHertz            int    `json:"sampleRateHertz"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
	Model                      string `json:"model"`
}

type googleRecognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
}

type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Recognize converts audio to text using the Google Cloud Speech API.
func (s *GoogleService) Recognize(
	ctx context.Context, audio []byte, lang language.Language,
) (Result, error) {
	if len(audio) == 0 {
		return Result{}, ErrEmptyAudio
	}
	if !lang.Valid() {
		return Result{}, fmt.Errorf("%w: %v", ErrUnsupportedLanguage, lang)
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return Result{}, fmt.Errorf("rate limiter: %w", err)
		}
	}

	format := DetectFormat(audio)
	logger.ProviderCall(s.Name(), "recognize",
		"language", lang.Code(),
		"format", string(format),
		"bytes", len(audio),
	)

	reqBody := googleRecognizeRequest{
		Audio: googleRecognitionAudio{
			Content: base64.StdEncoding.EncodeToString(audio),
		},
		Config: googleRecognitionConfig{
			Encoding:                   string(format),
			SampleRateHertz:            format.SampleRate(),
			LanguageCode:               lang.Code(),
			EnableAutomaticPunctuation: true,
			Model:                      s.model,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return Result{}, fmt.Errorf("failed to marshal recognize request: %w", err)
	}

	url := s.baseURL + googleSpeechEndpoint + "?key=" + s.apiKey
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Result{}, NewRecognitionError(s.Name(), CodeOther, "request failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, NewRecognitionError(s.Name(), CodeOther, "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return Result{}, s.classifyHTTPError(resp.StatusCode, body)
	}

	var recognizeResp googleRecognizeResponse
	if err := json.Unmarshal(body, &recognizeResp); err != nil {
		return Result{}, NewRecognitionError(s.Name(), CodeOther, "failed to parse response", err)
	}

	result := Result{Language: lang}
	if len(recognizeResp.Results) > 0 && len(recognizeResp.Results[0].Alternatives) > 0 {
		alt := recognizeResp.Results[0].Alternatives[0]
		result.Transcript = alt.Transcript
		result.Confidence = alt.Confidence
	}

	if result.Transcript == "" {
		logger.Warn("no speech recognized in audio", "language", lang.Code())
	}

	return result, nil
}

// classifyHTTPError maps a non-200 Google API response to a RecognitionError.
func (s *GoogleService) classifyHTTPError(status int, body []byte) error {
	message := fmt.Sprintf("HTTP %d", status)

	var errResp googleErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		message = errResp.Error.Message
	}

	return NewRecognitionError(s.Name(), classifyStatusCode(status), message, nil)
}
