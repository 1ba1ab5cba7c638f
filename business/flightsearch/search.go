package flightsearch

import (
	"cmp"
	"context"
	"github.com/explore-flights/flight-aggregator/business/resolve"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
)

type offersRepo interface {
	FlightOffers(ctx context.Context, options ...amadeus.FlightOffersOption) (amadeus.FlightOffersResponse, error)
}

type Search struct {
	repo  offersRepo
	limit int
}

func NewSearch(repo offersRepo) *Search {
	return &Search{
		repo:  repo,
		limit: DefaultLimit,
	}
}

func (s *Search) Flights(ctx context.Context, q Query) ([]Flight, error) {
	if q.TravelClass == "" {
		q.TravelClass = amadeus.TravelClassEconomy
	}

	res, err := s.repo.FlightOffers(ctx, q.options()...)
	if err != nil {
		return nil, err
	}

	return Normalize(res, s.limit), nil
}

// Normalize flattens at most limit offers of res. Offers without a segment are skipped.
func Normalize(res amadeus.FlightOffersResponse, limit int) []Flight {
	carriers := resolve.Dictionary(res.Dictionaries.Carriers)
	flights := make([]Flight, 0, min(len(res.Data), max(limit, 0)))

	for _, offer := range res.Data {
		if len(flights) >= limit {
			break
		}

		if len(offer.Itineraries) < 1 || len(offer.Itineraries[0].Segments) < 1 {
			continue
		}

		itinerary := offer.Itineraries[0]
		segment := itinerary.Segments[0]
		airline, _ := resolve.Name(context.Background(), segment.CarrierCode, carriers, resolve.Identity)

		flights = append(flights, Flight{
			Id:             offer.Id,
			Airline:        cmp.Or(airline, segment.CarrierCode),
			AirlineLogoUrl: resolve.LogoUrl(segment.CarrierCode),
			FlightNumber:   segment.Number,
			Origin:         segment.Departure.IataCode,
			Destination:    segment.Arrival.IataCode,
			DepartureTime:  segment.Departure.At,
			ArrivalTime:    segment.Arrival.At,
			Duration:       itinerary.Duration,
			Price:          offer.Price.Total,
			Currency:       offer.Price.Currency,
			Status:         StatusOnTime,
		})
	}

	return flights
}
