package model

import (
	"fmt"
	"github.com/explore-flights/flight-aggregator/business/flightsearch"
	"github.com/explore-flights/flight-aggregator/business/flightstatus"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/xtime"
	"github.com/spf13/cast"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultAdults = 1
	MaxAdults     = 9

	MessageStatusMissingFields = "Missing required fields: carrierCode, flightNumber, scheduledDepartureDate"
)

var travelClasses = map[string]amadeus.TravelClass{
	"economy":         amadeus.TravelClassEconomy,
	"premium-economy": amadeus.TravelClassPremiumEconomy,
	"business":        amadeus.TravelClassBusiness,
	"first":           amadeus.TravelClassFirst,
}

var searchSchema = mustCompileSchema(`{
	"type": "object",
	"required": ["origin", "destination", "departureDate"],
	"properties": {
		"origin": {"type": "string", "minLength": 1},
		"destination": {"type": "string", "minLength": 1},
		"departureDate": {"type": "string", "minLength": 1},
		"returnDate": {"type": "string"},
		"adults": {
			"oneOf": [
				{"type": "integer"},
				{"type": "string", "pattern": "^[0-9]+$"}
			]
		},
		"travelClass": {"type": "string"}
	}
}`)

var statusSchema = mustCompileSchema(`{
	"type": "object",
	"required": ["carrierCode", "flightNumber", "scheduledDepartureDate"],
	"properties": {
		"carrierCode": {"type": "string", "minLength": 1},
		"flightNumber": {
			"oneOf": [
				{"type": "integer", "minimum": 1},
				{"type": "string", "minLength": 1}
			]
		},
		"scheduledDepartureDate": {"type": "string", "minLength": 1}
	}
}`)

type FlightsResponse struct {
	Flights []flightsearch.Flight `json:"flights"`
}

type FlightStatusResponse struct {
	Status flightstatus.FlightStatus `json:"status"`
}

// TravelClass maps a client travel class to the provider enum. Unknown values map to economy.
func TravelClass(v string) amadeus.TravelClass {
	if tc, ok := travelClasses[v]; ok {
		return tc
	}

	return amadeus.TravelClassEconomy
}

// LocationCode keeps the first three characters of v, upper-cased.
func LocationCode(v string) string {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > 3 {
		v = string([]rune(v)[:3])
	}

	return strings.ToUpper(v)
}

func ParseSearchRequest(body []byte) (flightsearch.Query, error) {
	doc, err := decodeDocument(body)
	if err != nil {
		return flightsearch.Query{}, err
	}

	if err = validate(searchSchema, doc); err != nil {
		return flightsearch.Query{}, err
	}

	var details []string
	q := flightsearch.Query{
		Origin:      LocationCode(doc.string("origin")),
		Destination: LocationCode(doc.string("destination")),
		Adults:      DefaultAdults,
		TravelClass: TravelClass(doc.string("travelClass")),
	}

	if q.DepartureDate, err = xtime.ParseLocalDate(doc.string("departureDate")); err != nil {
		details = append(details, "departureDate: must be formatted as YYYY-MM-DD")
	}

	if v := doc.string("returnDate"); v != "" {
		if q.ReturnDate, err = xtime.ParseLocalDate(v); err != nil {
			details = append(details, "returnDate: must be formatted as YYYY-MM-DD")
		}
	}

	if v, ok := doc["adults"]; ok {
		adults, err := parseAdults(v)
		if err != nil || adults < 1 || adults > MaxAdults {
			details = append(details, fmt.Sprintf("adults: must be a number between 1 and %d", MaxAdults))
		} else {
			q.Adults = adults
		}
	}

	if len(details) > 0 {
		return flightsearch.Query{}, &ValidationError{Message: MessageInvalidFields, Details: details}
	}

	return q, nil
}

func ParseStatusRequest(body []byte) (flightstatus.Query, error) {
	doc, err := decodeDocument(body)
	if err != nil {
		return flightstatus.Query{}, err
	}

	if err = validate(statusSchema, doc); err != nil {
		if ve, ok := err.(*ValidationError); ok && ve.Message == MessageMissingFields {
			ve.Message = MessageStatusMissingFields
		}

		return flightstatus.Query{}, err
	}

	flightNumber, err := cast.ToStringE(doc["flightNumber"])
	if err != nil {
		return flightstatus.Query{}, &ValidationError{Message: MessageInvalidFields, Details: []string{"flightNumber: " + err.Error()}}
	}

	date, err := xtime.ParseLocalDate(doc.string("scheduledDepartureDate"))
	if err != nil {
		return flightstatus.Query{}, &ValidationError{Message: MessageInvalidFields, Details: []string{"scheduledDepartureDate: must be formatted as YYYY-MM-DD"}}
	}

	return flightstatus.Query{
		CarrierCode:            strings.ToUpper(doc.string("carrierCode")),
		FlightNumber:           flightNumber,
		ScheduledDepartureDate: date,
	}, nil
}

// parseAdults reads digit strings as decimal; cast would treat a leading zero as octal.
func parseAdults(v any) (int, error) {
	if s, ok := v.(string); ok {
		return strconv.Atoi(s)
	}

	return cast.ToIntE(v)
}
