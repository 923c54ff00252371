package provider

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/Alok-Kumar2005/WhatsApp-Agent-Neural-maze/core"
)

const (
	defaultImageBaseURL = "https://api.together.xyz"
	defaultImageModel   = "black-forest-labs/FLUX.1-schnell-Free"
)

// ScenarioSource derives an image prompt from recent messages.
// Anthropic implements it.
type ScenarioSource interface {
	CreateScenario(ctx context.Context, recent []core.Message) (string, error)
}

// ImageClient implements graph.ImageGenerator: scenario derivation is
// delegated to a ScenarioSource, rendering goes to a Together-style
// image-generation HTTP API and lands on disk as PNG bytes.
type ImageClient struct {
	scenarios  ScenarioSource
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// ImageOption configures the image client.
type ImageOption func(*ImageClient)

// WithImageBaseURL overrides the API base URL.
func WithImageBaseURL(url string) ImageOption {
	return func(c *ImageClient) {
		c.baseURL = url
	}
}

// WithImageModel overrides the generation model.
func WithImageModel(model string) ImageOption {
	return func(c *ImageClient) {
		c.model = model
	}
}

// WithImageHTTPClient overrides the HTTP client.
func WithImageHTTPClient(hc *http.Client) ImageOption {
	return func(c *ImageClient) {
		c.httpClient = hc
	}
}

// NewImageClient creates an image client.
func NewImageClient(scenarios ScenarioSource, apiKey string, opts ...ImageOption) *ImageClient {
	c := &ImageClient{
		scenarios:  scenarios,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    defaultImageBaseURL,
		apiKey:     apiKey,
		model:      defaultImageModel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CreateScenario delegates to the scenario source.
func (c *ImageClient) CreateScenario(ctx context.Context, recent []core.Message) (string, error) {
	return c.scenarios.CreateScenario(ctx, recent)
}

// Generate renders the prompt and writes the image to path.
func (c *ImageClient) Generate(ctx context.Context, prompt, path string) error {
	payload, err := json.Marshal(map[string]interface{}{
		"model":           c.model,
		"prompt":          prompt,
		"n":               1,
		"response_format": "b64_json",
	})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/v1/images/generations", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("image api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("image api status %d: %s", resp.StatusCode, truncateBody(body))
	}

	var parsed struct {
		Data []struct {
			B64JSON string `json:"b64_json"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}
	if len(parsed.Data) == 0 || parsed.Data[0].B64JSON == "" {
		return fmt.Errorf("image api returned no image data")
	}

	img, err := base64.StdEncoding.DecodeString(parsed.Data[0].B64JSON)
	if err != nil {
		return fmt.Errorf("decode image: %w", err)
	}
	if err := os.WriteFile(path, img, 0o644); err != nil {
		return fmt.Errorf("write image: %w", err)
	}
	return nil
}

// truncateBody keeps API error bodies short enough for error messages.
func truncateBody(b []byte) string {
	const max = 200
	if len(b) <= max {
		return string(b)
	}
	return string(b[:max]) + "..."
}
