package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/trainingdiary/internal/telemetry/tracing"
)

// API docs: https://ai.google.dev/api/generate-content

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-1.5-flash"

	maxResponseBytes = 2 << 20
)

var (
	// ErrBlocked is returned when the prompt or the answer was stopped by content safety.
	ErrBlocked       = errors.New("generation blocked by content safety")
	ErrEmptyResponse = errors.New("model returned no text")
)

// APIError is a non-2xx answer from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("gemini api error [%d]: %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: httpClient,
	}
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string         `json:"responseMimeType,omitempty"`
	ResponseSchema   map[string]any `json:"responseSchema,omitempty"`
	Temperature      *float64       `json:"temperature,omitempty"`
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

// GenerateJSON sends a single prompt asking for structured output that
// follows schema, and returns the JSON text of the first candidate.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, schema map[string]any) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gemini.generateJSON")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("gemini.model", c.model))
	span.SetAttributes(attribute.Int("gemini.prompt_len", len(prompt)))

	temperature := 0.4
	reqBody, err := json.Marshal(generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
		GenerationConfig: &generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   schema,
			Temperature:      &temperature,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	span.SetAttributes(attribute.Int("gemini.status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := gjson.GetBytes(respBytes, "error.message").String()
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if reason := gjson.GetBytes(respBytes, "promptFeedback.blockReason"); reason.Exists() {
		return "", fmt.Errorf("%w: prompt: %s", ErrBlocked, reason.String())
	}

	candidate := gjson.GetBytes(respBytes, "candidates.0")
	if !candidate.Exists() {
		return "", ErrEmptyResponse
	}
	switch finish := candidate.Get("finishReason").String(); finish {
	case "SAFETY", "PROHIBITED_CONTENT", "BLOCKLIST", "SPII":
		return "", fmt.Errorf("%w: answer: %s", ErrBlocked, finish)
	}

	var text strings.Builder
	for _, p := range candidate.Get("content.parts").Array() {
		text.WriteString(p.Get("text").String())
	}
	if strings.TrimSpace(text.String()) == "" {
		return "", ErrEmptyResponse
	}

	log.Tracef("gemini generated %d bytes of text", text.Len())
	return text.String(), nil
}
