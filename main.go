package main

import (
	"context"
	"errors"
	"fmt"
	"github.com/explore-flights/flight-aggregator/business/assistant"
	"github.com/explore-flights/flight-aggregator/business/flightsearch"
	"github.com/explore-flights/flight-aggregator/business/flightstatus"
	"github.com/explore-flights/flight-aggregator/config"
	"github.com/explore-flights/flight-aggregator/web"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"net/http"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	log, err := config.Config.Logger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	amc, err := config.Config.AmadeusClient()
	if err != nil {
		log.Fatal("failed to create amadeus client", zap.Error(err))
	}

	gc, err := config.Config.GeminiClient()
	if err != nil {
		log.Fatal("failed to create gemini client", zap.Error(err))
	}

	systemInstruction, err := config.Config.SystemInstruction(ctx)
	if err != nil {
		log.Fatal("failed to load system instruction", zap.Error(err))
	}

	e := web.NewServer(
		log,
		web.ServerOptions{
			AllowedOrigins: config.Config.AllowedOrigins(),
			RequestTimeout: config.Config.RequestTimeout(),
		},
		web.NewFlightsHandler(
			flightsearch.NewSearch(amc),
			flightstatus.NewLookup(amc, log.Named("flightstatus")),
		),
		web.NewAssistantHandler(assistant.New(gc, systemInstruction)),
	)

	if err := run(ctx, e, log); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

func run(ctx context.Context, e *echo.Echo, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-ctx.Done()
		if err := e.Shutdown(context.Background()); err != nil {
			log.Error("error shutting down the echo server", zap.Error(err))
		}
	}()

	port := config.Config.EchoPort()
	log.Info("starting server", zap.Int("port", port))

	if err := e.Start(fmt.Sprintf(":%d", port)); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}

		return err
	}

	return nil
}
