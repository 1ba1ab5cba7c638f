package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"net/http"
	"strconv"
	"time"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeFailure = "failure"
)

var (
	ProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flights_provider_requests_total",
			Help: "Total number of requests sent to upstream providers",
		},
		[]string{"provider", "operation", "outcome"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flights_provider_request_duration_seconds",
			Help:    "Duration of upstream provider requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	HttpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flights_http_requests_total",
			Help: "Total number of handled HTTP requests",
		},
		[]string{"route", "status"},
	)
)

// InstrumentTransport records every round-trip of next under the given provider label.
// The operation label is the request path.
func InstrumentTransport(provider string, next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}

	return roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		operation := req.URL.Path
		start := time.Now()

		resp, err := next.RoundTrip(req)
		ProviderRequestDuration.WithLabelValues(provider, operation).Observe(time.Since(start).Seconds())

		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		} else if resp.StatusCode >= 400 {
			outcome = OutcomeError
		}

		ProviderRequests.WithLabelValues(provider, operation, outcome).Inc()

		return resp, err
	})
}

// InstrumentClient returns a copy of httpClient whose transport is instrumented.
func InstrumentClient(provider string, httpClient *http.Client) *http.Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := *httpClient
	c.Transport = InstrumentTransport(provider, httpClient.Transport)

	return &c
}

func ObserveHttpRequest(route string, status int) {
	HttpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
