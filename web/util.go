package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/labstack/echo/v4"
	"io"
	"net/http"
)

const maxBodySize = 1 << 20

func noCache(c echo.Context) {
	res := c.Response()
	res.Header().Del("Expires")
	res.Header().Set(echo.HeaderCacheControl, "private, no-cache, no-store, max-age=0, must-revalidate")
}

func readBody(c echo.Context) ([]byte, error) {
	b, err := io.ReadAll(io.LimitReader(c.Request().Body, maxBodySize))
	if err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, WithMessage("Invalid request body"), WithCause(err))
	}

	return b, nil
}

// providerDetails describes a failed upstream call for the error envelope.
// The structured payload of the provider is preferred over the error text.
func providerDetails(err error) any {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, amadeus.ErrRateLimitWouldExceedDeadline) {
		return "timeout"
	}

	var p interface{ Payload() json.RawMessage }
	if errors.As(err, &p) {
		if payload := p.Payload(); payload != nil {
			return payload
		}
	}

	return err.Error()
}

type HTTPErrorOption func(e *HTTPError)

type HTTPError struct {
	code    int
	message string
	details any
	cause   error
}

func (e *HTTPError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%d %s: %s", e.code, e.message, e.cause)
	}

	return fmt.Sprintf("%d %s", e.code, e.message)
}

func (e *HTTPError) Unwrap() error {
	return e.cause
}

func WithMessage(message string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.message = message
	}
}

func WithCause(cause error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.cause = cause
	}
}

// WithProviderCause sets cause and derives the details from it.
func WithProviderCause(cause error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.cause = cause
		e.details = providerDetails(cause)
	}
}

func NewHTTPError(code int, opts ...HTTPErrorOption) *HTTPError {
	err := new(HTTPError)
	err.code = code
	err.message = http.StatusText(code)

	for _, opt := range opts {
		opt(err)
	}

	return err
}
