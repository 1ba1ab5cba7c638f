//go:build lambda

package config

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/explore-flights/flight-aggregator/common/adapt"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/gemini"
	"github.com/explore-flights/flight-aggregator/common/xsync"
	"github.com/explore-flights/flight-aggregator/logging"
	"github.com/explore-flights/flight-aggregator/metrics"
	"github.com/spf13/cast"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"os"
	"strconv"
	"sync"
	"time"
)

var Config = func() *accessor {
	awsConfig := sync.OnceValues(func() (aws.Config, error) {
		return config.LoadDefaultConfig(context.Background())
	})

	return &accessor{
		awsConfig: awsConfig,
		ssmParams: xsync.NewPreload(func() (map[string]string, error) {
			cfg, err := awsConfig()
			if err != nil {
				return nil, err
			}

			return loadSsmParams(
				context.Background(),
				cfg,
				"FLIGHTS_SSM_AMADEUS_CLIENT_ID",
				"FLIGHTS_SSM_AMADEUS_CLIENT_SECRET",
				"FLIGHTS_SSM_GEMINI_API_KEY",
			)
		}),
	}
}()

type accessor struct {
	awsConfig func() (aws.Config, error)
	ssmParams *xsync.Preload[map[string]string]
}

func (*accessor) EchoPort() int {
	port, _ := strconv.Atoi(os.Getenv("AWS_LWA_PORT"))
	return cmp.Or(port, 8080)
}

func (*accessor) AllowedOrigins() []string {
	origins := splitOrigins(os.Getenv("FLIGHTS_CORS_ORIGINS"))
	if len(origins) < 1 {
		return defaultAllowedOrigins
	}

	return origins
}

func (*accessor) RequestTimeout() time.Duration {
	timeout, _ := cast.ToDurationE(os.Getenv("FLIGHTS_REQUEST_TIMEOUT"))
	return cmp.Or(timeout, defaultRequestTimeout)
}

func (*accessor) Logger() (*zap.Logger, error) {
	return logging.New(cmp.Or(os.Getenv("FLIGHTS_LOG_LEVEL"), "info"), logging.FormatJSON)
}

func (a *accessor) AmadeusClient() (*amadeus.Client, error) {
	params, err := a.ssmParams.Value(context.Background())
	if err != nil {
		return nil, err
	}

	return amadeus.NewClient(
		params["FLIGHTS_SSM_AMADEUS_CLIENT_ID"],
		params["FLIGHTS_SSM_AMADEUS_CLIENT_SECRET"],
		amadeus.WithBaseUrl(cmp.Or(os.Getenv("FLIGHTS_AMADEUS_BASE_URL"), amadeus.DefaultBaseUrl)),
		amadeus.WithHttpClient(metrics.InstrumentClient("amadeus", nil)),
		amadeus.WithRateLimiter(rate.NewLimiter(defaultRateLimit, 1)),
	), nil
}

func (a *accessor) GeminiClient() (*gemini.Client, error) {
	params, err := a.ssmParams.Value(context.Background())
	if err != nil {
		return nil, err
	}

	return gemini.NewClient(
		params["FLIGHTS_SSM_GEMINI_API_KEY"],
		gemini.WithModel(os.Getenv("FLIGHTS_GEMINI_MODEL")),
		gemini.WithHttpClient(metrics.InstrumentClient("gemini", nil)),
	), nil
}

func (a *accessor) SystemInstruction(ctx context.Context) (string, error) {
	bucket, key := os.Getenv("FLIGHTS_PROMPT_BUCKET"), os.Getenv("FLIGHTS_PROMPT_KEY")
	if bucket == "" || key == "" {
		return "", errors.New("env variables FLIGHTS_PROMPT_BUCKET and FLIGHTS_PROMPT_KEY required")
	}

	cfg, err := a.awsConfig()
	if err != nil {
		return "", err
	}

	b, err := adapt.S3GetRaw(ctx, s3.NewFromConfig(cfg), bucket, key)
	if err != nil {
		return "", fmt.Errorf("failed to read system instruction: %w", err)
	}

	return string(b), nil
}

func loadSsmParams(ctx context.Context, cfg aws.Config, envNames ...string) (map[string]string, error) {
	reqNames := make([]string, 0, len(envNames))
	lookup := make(map[string]string)

	for _, envName := range envNames {
		reqName := os.Getenv(envName)
		if reqName == "" {
			return nil, fmt.Errorf("env variable %s required", envName)
		}

		reqNames = append(reqNames, reqName)
		lookup[reqName] = envName
	}

	ssmc := ssm.NewFromConfig(cfg)
	resp, err := ssmc.GetParameters(ctx, &ssm.GetParametersInput{
		Names:          reqNames,
		WithDecryption: aws.Bool(true),
	})

	if err != nil {
		return nil, err
	} else if len(resp.InvalidParameters) > 0 {
		return nil, fmt.Errorf("ssm invalid parameters: %v", resp.InvalidParameters)
	}

	result := make(map[string]string)
	for _, p := range resp.Parameters {
		result[lookup[*p.Name]] = *p.Value
	}

	return result, nil
}
