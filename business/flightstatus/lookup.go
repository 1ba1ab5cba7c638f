package flightstatus

import (
	"cmp"
	"context"
	"errors"
	"github.com/explore-flights/flight-aggregator/business/resolve"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/xtime"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type scheduleRepo interface {
	FlightSchedule(ctx context.Context, carrierCode, flightNumber string, date xtime.LocalDate) ([]amadeus.DatedFlight, error)
	AirportName(ctx context.Context, iataCode string) (string, bool, error)
	AirlineName(ctx context.Context, airlineCode string) (string, bool, error)
}

type Lookup struct {
	repo scheduleRepo
	log  *zap.Logger
}

func NewLookup(repo scheduleRepo, log *zap.Logger) *Lookup {
	if log == nil {
		log = zap.NewNop()
	}

	return &Lookup{
		repo: repo,
		log:  log,
	}
}

func (l *Lookup) Status(ctx context.Context, q Query) (FlightStatus, error) {
	flights, err := l.repo.FlightSchedule(ctx, q.CarrierCode, q.FlightNumber, q.ScheduledDepartureDate)
	if err != nil {
		return FlightStatus{}, err
	}

	if len(flights) < 1 {
		return FlightStatus{}, ErrNoFlight
	}

	flight := flights[0]
	departure, arrival, err := Endpoints(flight)
	if err != nil {
		return FlightStatus{}, err
	}

	names, err := l.names(ctx, q.CarrierCode, departure.IataCode, arrival.IataCode)
	if err != nil {
		return FlightStatus{}, err
	}

	return Normalize(flight, names)
}

func (l *Lookup) names(ctx context.Context, airlineCode, originCode, destinationCode string) (Names, error) {
	var names Names
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		names.OriginAirport, err = l.resolve(ctx, originCode, resolve.SourceFunc(l.repo.AirportName), resolve.Literal(UnknownAirport))
		return err
	})

	g.Go(func() error {
		var err error
		names.DestinationAirport, err = l.resolve(ctx, destinationCode, resolve.SourceFunc(l.repo.AirportName), resolve.Literal(UnknownAirport))
		return err
	})

	g.Go(func() error {
		var err error
		names.Airline, err = l.resolve(ctx, airlineCode, resolve.SourceFunc(l.repo.AirlineName), resolve.Identity)
		return err
	})

	return names, g.Wait()
}

// resolve only fails on context errors; lookup failures are logged and degrade to the fallback.
func (l *Lookup) resolve(ctx context.Context, code string, sources ...resolve.Source) (string, error) {
	name, err := resolve.Name(ctx, code, sources...)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "", err
	} else if err != nil {
		l.log.Warn("name lookup degraded", zap.String("code", code), zap.Error(err))
	}

	return name, nil
}

// Normalize flattens flight into a FlightStatus using the already resolved names.
func Normalize(flight amadeus.DatedFlight, names Names) (FlightStatus, error) {
	departure, arrival, err := Endpoints(flight)
	if err != nil {
		return FlightStatus{}, err
	}

	carrierCode := flight.FlightDesignator.CarrierCode
	departureTime, ok := departure.Departure.Timing(amadeus.QualifierScheduledDeparture)
	if !ok {
		departureTime = Unresolved
	}

	arrivalTime, ok := arrival.Arrival.Timing(amadeus.QualifierScheduledArrival)
	if !ok {
		arrivalTime = Unresolved
	}

	return FlightStatus{
		AirlineCode:            carrierCode,
		AirlineName:            cmp.Or(names.Airline, carrierCode),
		AirlineLogoUrl:         resolve.LogoUrl(carrierCode),
		FlightNumber:           string(flight.FlightDesignator.FlightNumber),
		Origin:                 departure.IataCode,
		OriginAirportName:      cmp.Or(names.OriginAirport, UnknownAirport),
		DepartureTime:          departureTime,
		DepartureTerminal:      Unresolved,
		DepartureGate:          Unresolved,
		Destination:            arrival.IataCode,
		DestinationAirportName: cmp.Or(names.DestinationAirport, UnknownAirport),
		ArrivalTime:            arrivalTime,
		ArrivalTerminal:        Unresolved,
		ArrivalGate:            Unresolved,
		Status:                 cmp.Or(flight.Status, StatusScheduled),
	}, nil
}
