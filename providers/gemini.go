package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/US-AEON/Us-Backend/logger"
)

const (
	geminiBaseURL      = "https://generativelanguage.googleapis.com/v1beta"
	geminiDefaultModel = "gemini-2.0-flash"

	geminiTimeout = 60 * time.Second

	// Generation defaults. Translation and title summarization both want
	// low-variance output.
	geminiTemperature     = float32(0.2)
	geminiTopP            = float32(0.95)
	geminiMaxOutputTokens = 1024
)

// GeminiProvider implements the Provider interface for Google Gemini.
type GeminiProvider struct {
	model   string
	baseURL string
	apiKey  string
	client  *http.Client
}

// GeminiOption configures a GeminiProvider.
type GeminiOption func(*GeminiProvider)

// WithGeminiBaseURL sets a custom base URL (for testing or proxies).
func WithGeminiBaseURL(url string) GeminiOption {
	return func(p *GeminiProvider) {
		p.baseURL = url
	}
}

// WithGeminiModel sets the model identifier.
func WithGeminiModel(model string) GeminiOption {
	return func(p *GeminiProvider) {
		p.model = model
	}
}

// WithGeminiClient sets a custom HTTP client.
func WithGeminiClient(client *http.Client) GeminiOption {
	return func(p *GeminiProvider) {
		p.client = client
	}
}

// NewGemini creates a new Gemini provider.
func NewGemini(apiKey string, opts ...GeminiOption) *GeminiProvider {
	p := &GeminiProvider{
		model:   geminiDefaultModel,
		baseURL: geminiBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: geminiTimeout},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ID returns the provider identifier.
func (p *GeminiProvider) ID() string {
	return "gemini"
}

// Model returns the model name used by this provider.
func (p *GeminiProvider) Model() string {
	return p.model
}

// Close cleans up provider resources.
func (p *GeminiProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}

// Gemini API request/response structures.
type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text,omitempty"`
}

type geminiGenConfig struct {
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content      geminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type geminiErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// Generate produces text for a single stateless prompt.
func (p *GeminiProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", NewGenerationError(p.ID(), "empty prompt", nil)
	}

	logger.ProviderCall(p.ID(), "generate", "model", p.model, "prompt_chars", len(prompt))

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: geminiGenConfig{
			Temperature:     geminiTemperature,
			TopP:            geminiTopP,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal gemini request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", NewGenerationError(p.ID(), "request failed", fmt.Errorf("%w: %w", ErrUnavailable, err))
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewGenerationError(p.ID(), "failed to read response", err)
	}

	if resp.StatusCode != http.StatusOK {
		message := fmt.Sprintf("HTTP %d", resp.StatusCode)
		var errResp geminiErrorResponse
		if jsonErr := json.Unmarshal(body, &errResp); jsonErr == nil && errResp.Error.Message != "" {
			message = errResp.Error.Message
		}
		return "", NewGenerationError(p.ID(), message, ErrUnavailable)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", NewGenerationError(p.ID(), "failed to parse response", err)
	}

	text := extractText(geminiResp)
	if text == "" {
		return "", NewGenerationError(p.ID(), "no text in response", ErrEmptyResponse)
	}

	return text, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp geminiResponse) string {
	if len(resp.Candidates) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return strings.TrimSpace(sb.String())
}
