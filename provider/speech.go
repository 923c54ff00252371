package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultSpeechBaseURL = "https://api.elevenlabs.io"
	defaultSpeechModel   = "eleven_flash_v2_5"
)

// SpeechClient implements graph.SpeechSynthesizer against an
// ElevenLabs-style text-to-speech HTTP API. Audio bytes pass through opaque;
// codec handling belongs to the caller.
type SpeechClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	voiceID    string
	modelID    string
}

// SpeechOption configures the speech client.
type SpeechOption func(*SpeechClient)

// WithSpeechBaseURL overrides the API base URL.
func WithSpeechBaseURL(url string) SpeechOption {
	return func(c *SpeechClient) {
		c.baseURL = url
	}
}

// WithSpeechModel overrides the synthesis model.
func WithSpeechModel(modelID string) SpeechOption {
	return func(c *SpeechClient) {
		c.modelID = modelID
	}
}

// WithSpeechHTTPClient overrides the HTTP client.
func WithSpeechHTTPClient(hc *http.Client) SpeechOption {
	return func(c *SpeechClient) {
		c.httpClient = hc
	}
}

// NewSpeechClient creates a speech client for the given voice.
func NewSpeechClient(apiKey, voiceID string, opts ...SpeechOption) *SpeechClient {
	c := &SpeechClient{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultSpeechBaseURL,
		apiKey:     apiKey,
		voiceID:    voiceID,
		modelID:    defaultSpeechModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Synthesize converts text to audio bytes.
func (c *SpeechClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": c.modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, c.voiceID), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("xi-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("speech api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("speech api status %d: %s", resp.StatusCode, truncateBody(body))
	}
	return body, nil
}
