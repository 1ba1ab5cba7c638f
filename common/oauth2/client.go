package oauth2

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"golang.org/x/time/rate"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const (
	GrantType         = "grant_type"
	ClientId          = "client_id"
	ClientSecret      = "client_secret"
	ClientCredentials = "client_credentials"
)

type Client[TR any] struct {
	httpClient    *http.Client
	limiter       *rate.Limiter
	tokenEndpoint string
	clientId      string
	clientSecret  string
}

type ClientOption[TR any] func(c *Client[TR])

type TokenResponse struct {
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	AccessToken string `json:"access_token"`
}

// TokenError is returned when the token endpoint answers with a non-200 status.
type TokenError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("oauth2 token request failed: %s", e.Status)
}

func (e *TokenError) Payload() json.RawMessage {
	if json.Valid(e.Body) {
		return e.Body
	}

	return nil
}

func WithHttpClient[TR any](httpClient *http.Client) ClientOption[TR] {
	return func(c *Client[TR]) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter[TR any](limiter *rate.Limiter) ClientOption[TR] {
	return func(c *Client[TR]) {
		c.limiter = limiter
	}
}

func NewClient[TR any](tokenEndpoint, clientId, clientSecret string, opts ...ClientOption[TR]) *Client[TR] {
	c := &Client[TR]{
		tokenEndpoint: tokenEndpoint,
		clientId:      clientId,
		clientSecret:  clientSecret,
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)

	return c
}

func (c *Client[TR]) ClientCredentials(ctx context.Context) (TR, error) {
	form := make(url.Values)
	form.Set(GrantType, ClientCredentials)

	return c.requestToken(ctx, form)
}

func (c *Client[TR]) requestToken(ctx context.Context, form url.Values) (TR, error) {
	form.Set(ClientId, c.clientId)
	form.Set(ClientSecret, c.clientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		var def TR
		return def, err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			var def TR
			return def, err
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var def TR
		return def, err
	}

	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

		var def TR
		return def, &TokenError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	var tr TR
	return tr, json.NewDecoder(resp.Body).Decode(&tr)
}
