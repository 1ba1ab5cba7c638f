package amadeus

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/explore-flights/flight-aggregator/common/oauth2"
	"github.com/explore-flights/flight-aggregator/common/xtime"
	"golang.org/x/time/rate"
	"io"
	"maps"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultBaseUrl = "https://test.api.amadeus.com"

var (
	ErrRateLimit                    = errors.New("rate limit error")
	ErrRateLimitWouldExceedDeadline = errors.New("rate limit wait would deadline")
)

// ResponseError is returned for every non-2xx answer of the API.
// Body holds at most 64KiB of the response body.
type ResponseError struct {
	StatusCode int
	Status     string
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("amadeus request failed: %s", e.Status)
}

// Payload returns the response body if it is a JSON document, nil otherwise.
func (e *ResponseError) Payload() json.RawMessage {
	if json.Valid(e.Body) {
		return e.Body
	}

	return nil
}

type credentials struct {
	token string
	exp   time.Time
}

type Client struct {
	httpClient   *http.Client
	oauth2Client *oauth2.Client[oauth2.TokenResponse]
	limiter      *rate.Limiter
	mtx          *sync.Mutex
	cred         *atomic.Pointer[credentials]
	baseUrl      string
	leeway       time.Duration
}

type ClientOption func(c *Client)

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithRateLimiter(limiter *rate.Limiter) ClientOption {
	return func(c *Client) {
		c.limiter = limiter
	}
}

func WithBaseUrl(baseUrl string) ClientOption {
	return func(c *Client) {
		c.baseUrl = strings.TrimSuffix(baseUrl, "/")
	}
}

func WithLeeway(leeway time.Duration) ClientOption {
	return func(c *Client) {
		c.leeway = leeway
	}
}

func NewClient(clientId, clientSecret string, opts ...ClientOption) *Client {
	c := &Client{
		mtx:  new(sync.Mutex),
		cred: new(atomic.Pointer[credentials]),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = cmp.Or(c.httpClient, http.DefaultClient)
	c.baseUrl = cmp.Or(c.baseUrl, DefaultBaseUrl)
	c.leeway = cmp.Or(c.leeway, time.Second*15)
	c.oauth2Client = oauth2.NewClient(
		c.baseUrl+"/v1/security/oauth2/token",
		clientId,
		clientSecret,
		oauth2.WithHttpClient[oauth2.TokenResponse](c.httpClient),
		oauth2.WithRateLimiter[oauth2.TokenResponse](c.limiter),
	)

	return c
}

func (c *Client) token(ctx context.Context) (string, error) {
	cred := c.cred.Load()
	if cred != nil && cred.exp.After(time.Now()) {
		return cred.token, nil
	}

	c.mtx.Lock()
	defer c.mtx.Unlock()

	cred = c.cred.Load()
	if cred != nil && cred.exp.After(time.Now()) {
		return cred.token, nil
	}

	res, err := c.oauth2Client.ClientCredentials(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to obtain access token: %w", err)
	}

	cred = &credentials{
		token: res.AccessToken,
		exp:   time.Now().Add(time.Duration(res.ExpiresIn) * time.Second).Add(-c.leeway),
	}
	c.cred.Store(cred)

	return cred.token, nil
}

func (c *Client) doRequest(ctx context.Context, method, surl string, q url.Values) (*http.Response, error) {
	token, err := c.token(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, surl, nil)
	if err != nil {
		return nil, err
	}

	if q != nil {
		fullQuery := req.URL.Query()
		maps.Copy(fullQuery, q)
		req.URL.RawQuery = fullQuery.Encode()
	}

	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/vnd.amadeus+json, application/json")

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, decorateLimiterErr(err)
		}
	}

	return c.httpClient.Do(req)
}

func (c *Client) FlightOffers(ctx context.Context, options ...FlightOffersOption) (FlightOffersResponse, error) {
	q := make(url.Values)
	for _, opt := range options {
		opt.Apply(q)
	}

	return doRequest[FlightOffersResponse](ctx, c, http.MethodGet, "/v2/shopping/flight-offers", q, readJsonFunc[FlightOffersResponse]())
}

func (c *Client) FlightSchedule(ctx context.Context, carrierCode, flightNumber string, date xtime.LocalDate) ([]DatedFlight, error) {
	q := make(url.Values)
	q.Set("carrierCode", carrierCode)
	q.Set("flightNumber", flightNumber)
	q.Set("scheduledDepartureDate", date.String())

	res, err := doRequest[dataResponse[DatedFlight]](ctx, c, http.MethodGet, "/v2/schedule/flights", q, readJsonFunc[dataResponse[DatedFlight]]())
	return res.Data, err
}

func (c *Client) Locations(ctx context.Context, keyword string, subType LocationSubType) ([]Location, error) {
	q := make(url.Values)
	q.Set("keyword", keyword)
	q.Set("subType", string(subType))

	res, err := doRequest[dataResponse[Location]](ctx, c, http.MethodGet, "/v1/reference-data/locations", q, readJsonFunc[dataResponse[Location]]())
	return res.Data, err
}

func (c *Client) Airlines(ctx context.Context, airlineCodes ...string) ([]Airline, error) {
	q := make(url.Values)
	q.Set("airlineCodes", strings.Join(airlineCodes, ","))

	res, err := doRequest[dataResponse[Airline]](ctx, c, http.MethodGet, "/v1/reference-data/airlines", q, readJsonFunc[dataResponse[Airline]]())
	return res.Data, err
}

// AirportName looks up the display name of an airport. ok is false if the API knows no such airport.
func (c *Client) AirportName(ctx context.Context, iataCode string) (string, bool, error) {
	locations, err := c.Locations(ctx, iataCode, SubTypeAirport)
	if err != nil {
		return "", false, err
	}

	if len(locations) < 1 || locations[0].Name == "" {
		return "", false, nil
	}

	return locations[0].Name, true, nil
}

// AirlineName prefers the common name over the business name of the first matching airline.
func (c *Client) AirlineName(ctx context.Context, airlineCode string) (string, bool, error) {
	airlines, err := c.Airlines(ctx, airlineCode)
	if err != nil {
		return "", false, err
	}

	if len(airlines) < 1 {
		return "", false, nil
	}

	name := cmp.Or(airlines[0].CommonName, airlines[0].BusinessName)
	return name, name != "", nil
}

func doRequest[T any](ctx context.Context, c *Client, method, path string, q url.Values, f func(r io.Reader) (T, error)) (T, error) {
	resp, err := c.doRequest(ctx, method, c.baseUrl+path, q)
	if err != nil {
		var def T
		return def, err
	}

	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

		var def T
		return def, &ResponseError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       body,
		}
	}

	r, err := f(resp.Body)
	if err != nil {
		return r, fmt.Errorf("failed to parse response: %w", err)
	}

	return r, nil
}

func readJsonFunc[T any]() func(r io.Reader) (T, error) {
	return func(r io.Reader) (T, error) {
		var res T
		return res, json.NewDecoder(r).Decode(&res)
	}
}

func decorateLimiterErr(err error) error {
	err = errors.Join(err, ErrRateLimit)

	if strings.Contains(err.Error(), "would exceed context deadline") {
		err = errors.Join(err, ErrRateLimitWouldExceedDeadline)
	}

	return err
}
