package flightstatus

import (
	"errors"
	"fmt"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/xtime"
)

const (
	// Unresolved marks a field the provider data does not resolve yet.
	Unresolved      = "Unknown"
	UnknownAirport  = "Unknown Airport"
	StatusScheduled = "Scheduled"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrNoFlight             = fmt.Errorf("%w: no flight status found", ErrNotFound)
	ErrFlightPointsNotFound = fmt.Errorf("%w: flight departure or arrival info not found", ErrNotFound)
)

type Query struct {
	CarrierCode            string
	FlightNumber           string
	ScheduledDepartureDate xtime.LocalDate
}

type Names struct {
	Airline            string
	OriginAirport      string
	DestinationAirport string
}

type FlightStatus struct {
	AirlineCode            string `json:"airlineCode"`
	AirlineName            string `json:"airlineName"`
	AirlineLogoUrl         string `json:"airlineLogoUrl"`
	FlightNumber           string `json:"flightNumber"`
	Origin                 string `json:"origin"`
	OriginAirportName      string `json:"originAirportName"`
	DepartureTime          string `json:"departureTime"`
	DepartureTerminal      string `json:"departureTerminal"`
	DepartureGate          string `json:"departureGate"`
	Destination            string `json:"destination"`
	DestinationAirportName string `json:"destinationAirportName"`
	ArrivalTime            string `json:"arrivalTime"`
	ArrivalTerminal        string `json:"arrivalTerminal"`
	ArrivalGate            string `json:"arrivalGate"`
	Status                 string `json:"status"`
}

// Endpoints returns the first flight point with a departure leg and the first one with an arrival leg.
func Endpoints(flight amadeus.DatedFlight) (amadeus.FlightPoint, amadeus.FlightPoint, error) {
	var departure, arrival *amadeus.FlightPoint
	for i := range flight.FlightPoints {
		fp := &flight.FlightPoints[i]
		if departure == nil && fp.Departure != nil {
			departure = fp
		}

		if arrival == nil && fp.Arrival != nil {
			arrival = fp
		}
	}

	if departure == nil || arrival == nil {
		return amadeus.FlightPoint{}, amadeus.FlightPoint{}, ErrFlightPointsNotFound
	}

	return *departure, *arrival, nil
}
