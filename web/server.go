package web

import (
	lwamw "github.com/its-felix/aws-lwa-go-middleware"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"net/http"
	"time"
)

type ServerOptions struct {
	AllowedOrigins []string
	RequestTimeout time.Duration
}

// NewServer builds the echo instance with the full middleware chain and every route of the service.
func NewServer(log *zap.Logger, opts ServerOptions, flights *FlightsHandler, assistant *AssistantHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.JSONSerializer = JSONSerializer{}
	e.HTTPErrorHandler = ErrorHandler(log)
	e.Use(
		lwamw.EchoMiddleware(
			lwamw.WithMaskError(),
			lwamw.WithRemoveHeaders(),
		),
		RequestIDMiddleware(),
		AccessLogMiddleware(log),
		middleware.Recover(),
		middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     opts.AllowedOrigins,
			AllowMethods:     []string{http.MethodGet, http.MethodPost},
			AllowCredentials: true,
		}),
		NoCacheOnErrorMiddleware(),
	)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	group := e.Group("/api", RequestTimeoutMiddleware(opts.RequestTimeout))
	group.GET("/test", NewTestEndpoint())
	group.POST("/flights/search", flights.Search)
	group.POST("/flights/status", flights.Status)
	group.POST("/flights/ai-assistant", assistant.Ask)

	return e
}
