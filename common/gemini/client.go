package gemini

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	DefaultBaseUrl     = "https://generativelanguage.googleapis.com"
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.3
)

var ErrNoCandidates = errors.New("model returned no candidates")

type ResponseError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("gemini request failed: %s", e.Status)
}

func (e *ResponseError) Payload() json.RawMessage {
	if json.Valid(e.Body) {
		return e.Body
	}

	return nil
}

type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseUrl     string
	model       string
	temperature float64
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithBaseUrl(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = strings.TrimSuffix(baseUrl, "/")
	}
}

func WithModel(model string) ClientOption {
	return func(c *Client) {
		c.model = model
	}
}

func WithTemperature(temperature float64) ClientOption {
	return func(c *Client) {
		c.temperature = temperature
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		apiKey:      apiKey,
		temperature: DefaultTemperature,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.baseUrl = cmp.Or(c.baseUrl, DefaultBaseUrl)
	c.model = cmp.Or(c.model, DefaultModel)

	return c
}

func (c *Client) Model() string {
	return c.model
}

func (c *Client) GenerateContent(ctx context.Context, body GenerateContentRequest) (GenerateContentResponse, error) {
	b, err := json.Marshal(body)
	if err != nil {
		return GenerateContentResponse{}, err
	}

	surl := c.baseUrl + "/v1beta/models/" + url.PathEscape(c.model) + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, surl, bytes.NewReader(b))
	if err != nil {
		return GenerateContentResponse{}, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return GenerateContentResponse{}, err
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return GenerateContentResponse{}, &ResponseError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	var res GenerateContentResponse
	if err = json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return res, fmt.Errorf("failed to parse response: %w", err)
	}

	return res, nil
}

// Complete runs a single user turn under the given system instruction and returns the reply text.
func (c *Client) Complete(ctx context.Context, query, systemInstruction string) (string, error) {
	temperature := c.temperature
	req := GenerateContentRequest{
		Contents: []Content{
			{
				Role:  RoleUser,
				Parts: []Part{{Text: query}},
			},
		},
		GenerationConfig: &GenerationConfig{
			Temperature: &temperature,
		},
	}

	if systemInstruction != "" {
		req.SystemInstruction = &Content{
			Parts: []Part{{Text: systemInstruction}},
		}
	}

	res, err := c.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}

	text, ok := res.Text()
	if !ok {
		return "", ErrNoCandidates
	}

	return text, nil
}
