// Package gemini wraps the Gemini SDK behind the single-turn call the
// gateways need.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"google.golang.org/genai"
)

const (
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel    = "gemini-2.5-flash"
)

// ErrEmptyResponse is returned when the provider answers without any text.
var ErrEmptyResponse = errors.New("gemini: empty response")

// Config configures a Client. Endpoint is a base URL, optionally ending in
// an API version segment such as /v1beta.
type Config struct {
	APIKey     string
	Model      string
	Endpoint   string
	HTTPClient *http.Client
}

type Client struct {
	cfg Config

	once   sync.Once
	sdk    *genai.Client
	sdkErr error
}

func New(cfg Config) *Client {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	return &Client{cfg: cfg}
}

// Schema is the response schema handed to the SDK.
type Schema = genai.Schema

const (
	TypeObject = genai.TypeObject
	TypeArray  = genai.TypeArray
	TypeString = genai.TypeString
	TypeNumber = genai.TypeNumber
)

// Request is a single-turn prompt. A non-nil Schema asks for JSON output.
type Request struct {
	Prompt string
	Schema *Schema
}

// Generate sends the prompt and returns the text of the first candidate.
func (c *Client) Generate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(c.cfg.APIKey) == "" {
		return "", errors.New("gemini: api key is required")
	}
	if strings.TrimSpace(req.Prompt) == "" {
		return "", errors.New("gemini: prompt is required")
	}
	sdk, err := c.client(ctx)
	if err != nil {
		return "", err
	}

	var config *genai.GenerateContentConfig
	if req.Schema != nil {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   req.Schema,
		}
	}
	res, err := sdk.Models.GenerateContent(ctx, c.cfg.Model, genai.Text(req.Prompt), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("gemini: request status %d: %s", apiErr.Code, apiErr.Message)
		}
		return "", fmt.Errorf("gemini: request failed: %w", err)
	}
	text := res.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}

// client builds the SDK client on first use. The key travels only in the
// SDK's request header and is never echoed in errors.
func (c *Client) client(ctx context.Context) (*genai.Client, error) {
	c.once.Do(func() {
		base, version := splitEndpoint(c.cfg.Endpoint)
		c.sdk, c.sdkErr = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:     strings.TrimSpace(c.cfg.APIKey),
			Backend:    genai.BackendGeminiAPI,
			HTTPClient: c.cfg.HTTPClient,
			HTTPOptions: genai.HTTPOptions{
				BaseURL:    base,
				APIVersion: version,
			},
		})
		if c.sdkErr != nil {
			c.sdkErr = errors.New("gemini: could not create client")
		}
	})
	return c.sdk, c.sdkErr
}

var versionSegment = regexp.MustCompile(`^v\d+(alpha|beta)?\d*$`)

// splitEndpoint separates a trailing API version segment from endpoint. An
// endpoint without one leaves the version to the SDK default.
func splitEndpoint(endpoint string) (base, version string) {
	u, err := url.Parse(strings.TrimRight(strings.TrimSpace(endpoint), "/"))
	if err != nil {
		return endpoint, ""
	}
	if i := strings.LastIndex(u.Path, "/"); i >= 0 && versionSegment.MatchString(u.Path[i+1:]) {
		version = u.Path[i+1:]
		u.Path = u.Path[:i]
	}
	return u.String() + "/", version
}

// StripFences removes markdown code fences and anything outside the outermost
// JSON object.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start != -1 && end > start {
		s = s[start : end+1]
	}
	return s
}
