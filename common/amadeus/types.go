package amadeus

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type LocationSubType string

const SubTypeAirport = LocationSubType("AIRPORT")

type TravelClass string

const (
	TravelClassEconomy        = TravelClass("ECONOMY")
	TravelClassPremiumEconomy = TravelClass("PREMIUM_ECONOMY")
	TravelClassBusiness       = TravelClass("BUSINESS")
	TravelClassFirst          = TravelClass("FIRST")
)

type TimingQualifier string

const (
	QualifierScheduledDeparture = TimingQualifier("STD")
	QualifierScheduledArrival   = TimingQualifier("STA")
)

type dataResponse[T any] struct {
	Data []T `json:"data"`
}

type FlightOffersResponse struct {
	Meta         FlightOffersMeta `json:"meta"`
	Data         []FlightOffer    `json:"data"`
	Dictionaries Dictionaries     `json:"dictionaries"`
}

type FlightOffersMeta struct {
	Count int `json:"count"`
}

type Dictionaries struct {
	Carriers   map[string]string `json:"carriers,omitempty"`
	Aircraft   map[string]string `json:"aircraft,omitempty"`
	Currencies map[string]string `json:"currencies,omitempty"`
}

type FlightOffer struct {
	Id                     string      `json:"id"`
	Source                 string      `json:"source,omitempty"`
	OneWay                 bool        `json:"oneWay"`
	LastTicketingDate      string      `json:"lastTicketingDate,omitempty"`
	NumberOfBookableSeats  int         `json:"numberOfBookableSeats,omitempty"`
	Itineraries            []Itinerary `json:"itineraries"`
	Price                  Price       `json:"price"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes,omitempty"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type Segment struct {
	Id            string         `json:"id,omitempty"`
	CarrierCode   string         `json:"carrierCode"`
	Number        string         `json:"number"`
	Aircraft      *Aircraft      `json:"aircraft,omitempty"`
	Departure     FlightEndpoint `json:"departure"`
	Arrival       FlightEndpoint `json:"arrival"`
	Duration      string         `json:"duration,omitempty"`
	NumberOfStops int            `json:"numberOfStops"`
}

type Aircraft struct {
	Code string `json:"code"`
}

type FlightEndpoint struct {
	IataCode string `json:"iataCode"`
	Terminal string `json:"terminal,omitempty"`
	At       string `json:"at"`
}

type Price struct {
	Currency   string `json:"currency"`
	Total      string `json:"total"`
	Base       string `json:"base,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

type DatedFlight struct {
	Type                   string           `json:"type,omitempty"`
	ScheduledDepartureDate string           `json:"scheduledDepartureDate,omitempty"`
	FlightDesignator       FlightDesignator `json:"flightDesignator"`
	FlightPoints           []FlightPoint    `json:"flightPoints"`
	Status                 string           `json:"status,omitempty"`
}

type FlightDesignator struct {
	CarrierCode       string       `json:"carrierCode"`
	FlightNumber      FlightNumber `json:"flightNumber"`
	OperationalSuffix string       `json:"operationalSuffix,omitempty"`
}

// FlightNumber accepts both the numeric and the string form the API uses.
type FlightNumber string

func (fn *FlightNumber) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}

		*fn = FlightNumber(v)
		return nil
	}

	var v json.Number
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	if _, err := strconv.ParseInt(v.String(), 10, 64); err != nil {
		return err
	}

	*fn = FlightNumber(v.String())
	return nil
}

type FlightPoint struct {
	IataCode  string     `json:"iataCode"`
	Departure *FlightLeg `json:"departure,omitempty"`
	Arrival   *FlightLeg `json:"arrival,omitempty"`
}

type FlightLeg struct {
	Timings []Timing `json:"timings"`
}

// Timing returns the value of the first timing with the given qualifier.
func (l *FlightLeg) Timing(qualifier TimingQualifier) (string, bool) {
	if l == nil {
		return "", false
	}

	for _, t := range l.Timings {
		if t.Qualifier == qualifier && t.Value != "" {
			return t.Value, true
		}
	}

	return "", false
}

type Timing struct {
	Qualifier TimingQualifier `json:"qualifier"`
	Value     string          `json:"value"`
}

type Location struct {
	Type         string          `json:"type"`
	SubType      LocationSubType `json:"subType"`
	Name         string          `json:"name"`
	DetailedName string          `json:"detailedName,omitempty"`
	IataCode     string          `json:"iataCode"`
}

type Airline struct {
	Type         string `json:"type"`
	IataCode     string `json:"iataCode"`
	IcaoCode     string `json:"icaoCode,omitempty"`
	BusinessName string `json:"businessName"`
	CommonName   string `json:"commonName"`
}
