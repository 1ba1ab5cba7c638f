//go:build !lambda

package config

import (
	"context"
	"errors"
	"fmt"
	"github.com/explore-flights/flight-aggregator/common/adapt"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/gemini"
	"github.com/explore-flights/flight-aggregator/common/local"
	"github.com/explore-flights/flight-aggregator/logging"
	"github.com/explore-flights/flight-aggregator/metrics"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"strings"
	"time"
)

var Config = func() *accessor {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.SetEnvPrefix("FLIGHTS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	a := newAccessor(v)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			a.err = fmt.Errorf("error reading config: %w", err)
		}
	}

	return a
}()

type accessor struct {
	v   *viper.Viper
	err error
}

func newAccessor(v *viper.Viper) *accessor {
	v.SetDefault("port", defaultPort)
	v.SetDefault("cors.origins", defaultAllowedOrigins)
	v.SetDefault("request.timeout", defaultRequestTimeout)
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", logging.FormatConsole)
	v.SetDefault("amadeus.base_url", amadeus.DefaultBaseUrl)
	v.SetDefault("amadeus.rate_limit", defaultRateLimit)
	v.SetDefault("gemini.base_url", gemini.DefaultBaseUrl)
	v.SetDefault("gemini.model", gemini.DefaultModel)
	v.SetDefault("gemini.temperature", gemini.DefaultTemperature)
	v.SetDefault("prompt.base_path", "data")
	v.SetDefault("prompt.bucket", "prompts")
	v.SetDefault("prompt.key", "aiprompt.txt")

	return &accessor{v: v}
}

func (a *accessor) EchoPort() int {
	return a.v.GetInt("port")
}

func (a *accessor) AllowedOrigins() []string {
	return splitOrigins(a.v.GetStringSlice("cors.origins")...)
}

func (a *accessor) RequestTimeout() time.Duration {
	return a.v.GetDuration("request.timeout")
}

func (a *accessor) Logger() (*zap.Logger, error) {
	if a.err != nil {
		return nil, a.err
	}

	return logging.New(a.v.GetString("log.level"), a.v.GetString("log.format"))
}

func (a *accessor) AmadeusClient() (*amadeus.Client, error) {
	if a.err != nil {
		return nil, a.err
	}

	clientId, clientSecret := a.v.GetString("amadeus.client_id"), a.v.GetString("amadeus.client_secret")
	if clientId == "" || clientSecret == "" {
		return nil, errors.New("config amadeus.client_id and amadeus.client_secret required")
	}

	return amadeus.NewClient(
		clientId,
		clientSecret,
		amadeus.WithBaseUrl(a.v.GetString("amadeus.base_url")),
		amadeus.WithHttpClient(metrics.InstrumentClient("amadeus", nil)),
		amadeus.WithRateLimiter(rate.NewLimiter(rate.Limit(a.v.GetFloat64("amadeus.rate_limit")), 1)),
	), nil
}

func (a *accessor) GeminiClient() (*gemini.Client, error) {
	if a.err != nil {
		return nil, a.err
	}

	apiKey := a.v.GetString("gemini.api_key")
	if apiKey == "" {
		return nil, errors.New("config gemini.api_key required")
	}

	return gemini.NewClient(
		apiKey,
		gemini.WithBaseUrl(a.v.GetString("gemini.base_url")),
		gemini.WithModel(a.v.GetString("gemini.model")),
		gemini.WithTemperature(a.v.GetFloat64("gemini.temperature")),
		gemini.WithHttpClient(metrics.InstrumentClient("gemini", nil)),
	), nil
}

func (a *accessor) SystemInstruction(ctx context.Context) (string, error) {
	if a.err != nil {
		return "", a.err
	}

	s3c := local.NewS3Client(a.v.GetString("prompt.base_path"))
	b, err := adapt.S3GetRaw(ctx, s3c, a.v.GetString("prompt.bucket"), a.v.GetString("prompt.key"))
	if err != nil {
		return "", fmt.Errorf("failed to read system instruction: %w", err)
	}

	return string(b), nil
}
