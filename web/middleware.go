package web

import (
	"context"
	"github.com/explore-flights/flight-aggregator/metrics"
	"github.com/explore-flights/flight-aggregator/web/model"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"time"
)

func NoCacheOnErrorMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			if err != nil {
				noCache(c)
			}

			return err
		}
	}
}

// RequestTimeoutMiddleware bounds the context of every request. Provider calls inherit it.
func RequestTimeoutMiddleware(timeout time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if timeout <= 0 {
			return next
		}

		return func(c echo.Context) error {
			ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
			defer cancel()

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func RequestIDMiddleware() echo.MiddlewareFunc {
	return middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			id, err := model.NewUUID()
			if err != nil {
				return ""
			}

			return id.String()
		},
	})
}

// AccessLogMiddleware logs and counts every request once the error handler has produced the final status.
func AccessLogMiddleware(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		HandleError:   true,
		LogMethod:     true,
		LogURI:        true,
		LogRoutePath:  true,
		LogStatus:     true,
		LogLatency:    true,
		LogRequestID:  true,
		LogRemoteIP:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			metrics.ObserveHttpRequest(v.RoutePath, v.Status)

			log.Info(
				"request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
				zap.String("remote_ip", v.RemoteIP),
			)

			return nil
		},
	})
}
