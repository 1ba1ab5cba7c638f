package flightsearch

import (
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/xtime"
)

const (
	DefaultLimit = 10
	StatusOnTime = "On Time"
)

type Query struct {
	Origin        string
	Destination   string
	DepartureDate xtime.LocalDate
	ReturnDate    xtime.LocalDate
	Adults        int
	TravelClass   amadeus.TravelClass
}

func (q Query) options() []amadeus.FlightOffersOption {
	opts := []amadeus.FlightOffersOption{
		amadeus.WithOrigin(q.Origin),
		amadeus.WithDestination(q.Destination),
		amadeus.WithDepartureDate(q.DepartureDate),
		amadeus.WithAdults(max(q.Adults, 1)),
		amadeus.WithTravelClass(q.TravelClass),
	}

	if !q.ReturnDate.IsZero() {
		opts = append(opts, amadeus.WithReturnDate(q.ReturnDate))
	}

	return opts
}

// Flight is a single offer flattened to its first outbound segment.
type Flight struct {
	Id             string `json:"id"`
	Airline        string `json:"airline"`
	AirlineLogoUrl string `json:"airlineLogoUrl"`
	FlightNumber   string `json:"flightNumber"`
	Origin         string `json:"origin"`
	Destination    string `json:"destination"`
	DepartureTime  string `json:"departureTime"`
	ArrivalTime    string `json:"arrivalTime"`
	Duration       string `json:"duration"`
	Price          string `json:"price"`
	Currency       string `json:"currency"`
	Status         string `json:"status"`
}
