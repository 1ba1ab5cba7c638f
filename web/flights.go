package web

import (
	"context"
	"errors"
	"github.com/explore-flights/flight-aggregator/business/flightsearch"
	"github.com/explore-flights/flight-aggregator/business/flightstatus"
	"github.com/explore-flights/flight-aggregator/web/model"
	"github.com/labstack/echo/v4"
	"net/http"
)

type flightSearcher interface {
	Flights(ctx context.Context, q flightsearch.Query) ([]flightsearch.Flight, error)
}

type statusLookup interface {
	Status(ctx context.Context, q flightstatus.Query) (flightstatus.FlightStatus, error)
}

type FlightsHandler struct {
	search flightSearcher
	status statusLookup
}

func NewFlightsHandler(search flightSearcher, status statusLookup) *FlightsHandler {
	return &FlightsHandler{
		search: search,
		status: status,
	}
}

func (h *FlightsHandler) Search(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	q, err := model.ParseSearchRequest(body)
	if err != nil {
		return err
	}

	flights, err := h.search.Flights(c.Request().Context(), q)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, WithMessage("Failed to search flights"), WithProviderCause(err))
	}

	return c.JSON(http.StatusOK, model.FlightsResponse{Flights: flights})
}

func (h *FlightsHandler) Status(c echo.Context) error {
	body, err := readBody(c)
	if err != nil {
		return err
	}

	q, err := model.ParseStatusRequest(body)
	if err != nil {
		return err
	}

	status, err := h.status.Status(c.Request().Context(), q)
	if err != nil {
		switch {
		case errors.Is(err, flightstatus.ErrNoFlight):
			return NewHTTPError(http.StatusNotFound, WithMessage("No flight status found"), WithCause(err))

		case errors.Is(err, flightstatus.ErrNotFound):
			return NewHTTPError(http.StatusNotFound, WithMessage("Flight departure or arrival info not found"), WithCause(err))

		default:
			return NewHTTPError(http.StatusInternalServerError, WithMessage("Failed to fetch flight status"), WithProviderCause(err))
		}
	}

	return c.JSON(http.StatusOK, model.FlightStatusResponse{Status: status})
}
