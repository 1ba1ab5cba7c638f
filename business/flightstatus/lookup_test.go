package flightstatus

import (
	"context"
	"errors"
	"github.com/explore-flights/flight-aggregator/common/amadeus"
	"github.com/explore-flights/flight-aggregator/common/xtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"sync/atomic"
	"testing"
)

type fakeRepo struct {
	flights       []amadeus.DatedFlight
	scheduleErr   error
	airports      map[string]string
	airportErr    error
	airlines      map[string]string
	airlineErr    error
	lookupCounter atomic.Int32
}

func (r *fakeRepo) FlightSchedule(ctx context.Context, carrierCode, flightNumber string, date xtime.LocalDate) ([]amadeus.DatedFlight, error) {
	return r.flights, r.scheduleErr
}

func (r *fakeRepo) AirportName(ctx context.Context, iataCode string) (string, bool, error) {
	r.lookupCounter.Add(1)
	if r.airportErr != nil {
		return "", false, r.airportErr
	}

	v, ok := r.airports[iataCode]
	return v, ok, nil
}

func (r *fakeRepo) AirlineName(ctx context.Context, airlineCode string) (string, bool, error) {
	r.lookupCounter.Add(1)
	if r.airlineErr != nil {
		return "", false, r.airlineErr
	}

	v, ok := r.airlines[airlineCode]
	return v, ok, nil
}

func datedFlight() amadeus.DatedFlight {
	return amadeus.DatedFlight{
		FlightDesignator: amadeus.FlightDesignator{CarrierCode: "DL", FlightNumber: "100"},
		FlightPoints: []amadeus.FlightPoint{
			{
				IataCode: "ATL",
				Departure: &amadeus.FlightLeg{
					Timings: []amadeus.Timing{{Qualifier: amadeus.QualifierScheduledDeparture, Value: "2025-06-01T08:00-04:00"}},
				},
			},
			{
				IataCode: "LAX",
				Arrival: &amadeus.FlightLeg{
					Timings: []amadeus.Timing{{Qualifier: amadeus.QualifierScheduledArrival, Value: "2025-06-01T10:00-07:00"}},
				},
			},
		},
	}
}

func query() Query {
	return Query{
		CarrierCode:            "DL",
		FlightNumber:           "100",
		ScheduledDepartureDate: xtime.MustParseLocalDate("2025-06-01"),
	}
}

func TestLookup_Status(t *testing.T) {
	repo := &fakeRepo{
		flights:  []amadeus.DatedFlight{datedFlight()},
		airports: map[string]string{"ATL": "HARTSFIELD-JACKSON ATLANTA INTL", "LAX": "LOS ANGELES INTL"},
		airlines: map[string]string{"DL": "DELTA"},
	}

	status, err := NewLookup(repo, zaptest.NewLogger(t)).Status(context.Background(), query())
	require.NoError(t, err)

	assert.Equal(t, FlightStatus{
		AirlineCode:            "DL",
		AirlineName:            "DELTA",
		AirlineLogoUrl:         "https://pics.avs.io/200/200/DL.png",
		FlightNumber:           "100",
		Origin:                 "ATL",
		OriginAirportName:      "HARTSFIELD-JACKSON ATLANTA INTL",
		DepartureTime:          "2025-06-01T08:00-04:00",
		DepartureTerminal:      "Unknown",
		DepartureGate:          "Unknown",
		Destination:            "LAX",
		DestinationAirportName: "LOS ANGELES INTL",
		ArrivalTime:            "2025-06-01T10:00-07:00",
		ArrivalTerminal:        "Unknown",
		ArrivalGate:            "Unknown",
		Status:                 "Scheduled",
	}, status)
	assert.Equal(t, int32(3), repo.lookupCounter.Load())
}

func TestLookup_Status_NoFlight(t *testing.T) {
	repo := &fakeRepo{}

	_, err := NewLookup(repo, zaptest.NewLogger(t)).Status(context.Background(), query())
	assert.ErrorIs(t, err, ErrNoFlight)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(0), repo.lookupCounter.Load())
}

func TestLookup_Status_MissingArrivalPoint(t *testing.T) {
	f := datedFlight()
	f.FlightPoints = f.FlightPoints[:1]
	repo := &fakeRepo{flights: []amadeus.DatedFlight{f}}

	_, err := NewLookup(repo, zaptest.NewLogger(t)).Status(context.Background(), query())
	assert.ErrorIs(t, err, ErrFlightPointsNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int32(0), repo.lookupCounter.Load())
}

func TestLookup_Status_ScheduleError(t *testing.T) {
	boom := errors.New("boom")
	repo := &fakeRepo{scheduleErr: boom}

	_, err := NewLookup(repo, zaptest.NewLogger(t)).Status(context.Background(), query())
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestLookup_Status_LookupFailuresDegrade(t *testing.T) {
	repo := &fakeRepo{
		flights:    []amadeus.DatedFlight{datedFlight()},
		airportErr: errors.New("locations unavailable"),
		airlineErr: errors.New("airlines unavailable"),
	}

	status, err := NewLookup(repo, zaptest.NewLogger(t)).Status(context.Background(), query())
	require.NoError(t, err)
	assert.Equal(t, "Unknown Airport", status.OriginAirportName)
	assert.Equal(t, "Unknown Airport", status.DestinationAirportName)
	assert.Equal(t, "DL", status.AirlineName)
}

func TestLookup_Status_UnknownNames(t *testing.T) {
	repo := &fakeRepo{flights: []amadeus.DatedFlight{datedFlight()}}

	status, err := NewLookup(repo, nil).Status(context.Background(), query())
	require.NoError(t, err)
	assert.Equal(t, "Unknown Airport", status.OriginAirportName)
	assert.Equal(t, "Unknown Airport", status.DestinationAirportName)
	assert.Equal(t, "DL", status.AirlineName)
}

func TestLookup_Status_ContextDeadline(t *testing.T) {
	repo := &fakeRepo{
		flights:    []amadeus.DatedFlight{datedFlight()},
		airportErr: context.DeadlineExceeded,
	}

	_, err := NewLookup(repo, zaptest.NewLogger(t)).Status(context.Background(), query())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNormalize_MissingTimings(t *testing.T) {
	f := datedFlight()
	f.FlightPoints[0].Departure.Timings = nil
	f.FlightPoints[1].Arrival.Timings = []amadeus.Timing{{Qualifier: "ETA", Value: "2025-06-01T10:05-07:00"}}
	f.Status = "DELAYED"

	status, err := Normalize(f, Names{})
	require.NoError(t, err)
	assert.Equal(t, "Unknown", status.DepartureTime)
	assert.Equal(t, "Unknown", status.ArrivalTime)
	assert.Equal(t, "DELAYED", status.Status)
	assert.Equal(t, "DL", status.AirlineName)
	assert.Equal(t, "Unknown Airport", status.OriginAirportName)
}

func TestNormalize_Idempotent(t *testing.T) {
	names := Names{Airline: "DELTA", OriginAirport: "ATL", DestinationAirport: "LAX"}
	a, errA := Normalize(datedFlight(), names)
	b, errB := Normalize(datedFlight(), names)

	assert.NoError(t, errA)
	assert.NoError(t, errB)
	assert.Equal(t, a, b)
}

func TestEndpoints(t *testing.T) {
	f := amadeus.DatedFlight{
		FlightPoints: []amadeus.FlightPoint{
			{IataCode: "ATL", Departure: &amadeus.FlightLeg{}},
			{IataCode: "DFW", Arrival: &amadeus.FlightLeg{}, Departure: &amadeus.FlightLeg{}},
			{IataCode: "LAX", Arrival: &amadeus.FlightLeg{}},
		},
	}

	departure, arrival, err := Endpoints(f)
	require.NoError(t, err)
	assert.Equal(t, "ATL", departure.IataCode)
	assert.Equal(t, "DFW", arrival.IataCode)

	_, _, err = Endpoints(amadeus.DatedFlight{})
	assert.ErrorIs(t, err, ErrFlightPointsNotFound)
}
