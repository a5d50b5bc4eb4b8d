package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.0-flash"

	maxErrorBody    = 512
	maxResponseBody = 64 << 10
)

var (
	ErrMissingAPIKey = errors.New("gemini api key is empty")
	ErrEmptyResponse = errors.New("gemini returned no text")
	ErrLargeResponse = errors.New("gemini response is too large")
)

type Options struct {
	APIKey   string
	Model    string
	Endpoint string
	Timeout  time.Duration
}

// Client calls the generateContent endpoint of the Generative Language API.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	apiKey     string
	model      string
	endpoint   string
}

func New(logger *slog.Logger, opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}

	return &Client{
		logger:     logger.With("component", "gemini"),
		httpClient: &http.Client{Timeout: opts.Timeout},
		apiKey:     opts.APIKey,
		model:      opts.Model,
		endpoint:   strings.TrimRight(opts.Endpoint, "/"),
	}, nil
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

// Generate - sends a single-turn prompt and returns the concatenated text of
// the first candidate.
func (that *Client) Generate(ctx context.Context, prompt string) (string, error) {
	log := that.logger.With("method", "Generate")

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      0,
			MaxOutputTokens:  16,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", that.endpoint, that.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", that.apiKey)

	resp, err := that.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call gemini: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody+1))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if len(raw) > maxResponseBody {
		return "", fmt.Errorf("%w: more than %d bytes", ErrLargeResponse, maxResponseBody)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		excerpt := raw
		if len(excerpt) > maxErrorBody {
			excerpt = excerpt[:maxErrorBody]
		}
		return "", fmt.Errorf("gemini responded %d: %s", resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}

	var sb strings.Builder
	for _, text := range gjson.GetBytes(raw, "candidates.0.content.parts.#.text").Array() {
		sb.WriteString(text.String())
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmptyResponse
	}

	log.DebugContext(ctx, "gemini_raw_response", "model", that.model, "text", text)

	return text, nil
}
