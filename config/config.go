package config

import (
	"context"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/gemini"
	"go.uber.org/zap"
	"strings"
	"time"
)

const (
	defaultPort           = 5000
	defaultRequestTimeout = 20 * time.Second
	defaultRateLimit      = 10
)

var defaultAllowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}

type Accessor interface {
	EchoPort() int
	AllowedOrigins() []string
	RequestTimeout() time.Duration
	Logger() (*zap.Logger, error)
	AmadeusClient() (*amadeus.Client, error)
	GeminiClient() (*gemini.Client, error)
	SystemInstruction(ctx context.Context) (string, error)
}

// splitOrigins accepts both list values and comma separated values.
func splitOrigins(values ...string) []string {
	origins := make([]string, 0, len(values))
	for _, v := range values {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return origins
}
