package amadeus

import (
	"github.com/explore-flights/flight-aggregator/common/xtime"
	"net/url"
	"strconv"
)

type FlightOffersOption interface {
	Apply(q url.Values)
}

type WithOrigin string

func (opt WithOrigin) Apply(q url.Values) {
	q.Set("originLocationCode", string(opt))
}

type WithDestination string

func (opt WithDestination) Apply(q url.Values) {
	q.Set("destinationLocationCode", string(opt))
}

type WithDepartureDate xtime.LocalDate

func (opt WithDepartureDate) Apply(q url.Values) {
	q.Set("departureDate", xtime.LocalDate(opt).String())
}

type WithReturnDate xtime.LocalDate

func (opt WithReturnDate) Apply(q url.Values) {
	if xtime.LocalDate(opt).IsZero() {
		q.Del("returnDate")
		return
	}

	q.Set("returnDate", xtime.LocalDate(opt).String())
}

type WithAdults int

func (opt WithAdults) Apply(q url.Values) {
	q.Set("adults", strconv.Itoa(int(opt)))
}

type WithTravelClass TravelClass

func (opt WithTravelClass) Apply(q url.Values) {
	q.Set("travelClass", string(opt))
}
