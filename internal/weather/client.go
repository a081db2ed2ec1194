package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

// Default Open-Meteo endpoints. All three are public and unauthenticated.
const (
	DefaultForecastBaseURL  = "https://api.open-meteo.com/v1/forecast"
	DefaultArchiveBaseURL   = "https://archive-api.open-meteo.com/v1/era5"
	DefaultGeocodingBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

	defaultUserAgent = "weather-mcp-server/1.0"
)

// Parameter lists requested from the provider. The daily/hourly keys below
// are also the JSON keys of the arrays in the response.
const (
	currentParams = "temperature_2m,is_day,showers,cloud_cover,wind_speed_10m," +
		"wind_direction_10m,pressure_msl,snowfall,precipitation,relative_humidity_2m," +
		"apparent_temperature,rain,weather_code,surface_pressure,wind_gusts_10m"
	forecastDailyParams  = "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode"
	forecastHourlyParams = "temperature_2m,precipitation,weathercode"
	archiveDailyParams   = "temperature_2m_max,temperature_2m_min,temperature_2m_mean," +
		"precipitation_sum,rain_sum,snowfall_sum,wind_speed_10m_max,wind_gusts_10m_max"
	archiveHourlyParams = "temperature_2m,relative_humidity_2m,precipitation,rain,snowfall"
)

// ClientConfig overrides the upstream endpoints, mainly for tests.
type ClientConfig struct {
	ForecastBaseURL  string
	ArchiveBaseURL   string
	GeocodingBaseURL string
	UserAgent        string
}

// Client performs single-shot lookups against the Open-Meteo endpoints.
// It issues exactly one outbound GET per call; the injected http.Client
// carries the request timeout and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	cfg        ClientConfig
}

// NewClient creates a Client around the shared HTTP client, filling in the
// default endpoints for any ClientConfig field left empty.
func NewClient(httpClient *http.Client, cfg ClientConfig) *Client {
	if cfg.ForecastBaseURL == "" {
		cfg.ForecastBaseURL = DefaultForecastBaseURL
	}
	if cfg.ArchiveBaseURL == "" {
		cfg.ArchiveBaseURL = DefaultArchiveBaseURL
	}
	if cfg.GeocodingBaseURL == "" {
		cfg.GeocodingBaseURL = DefaultGeocodingBaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return &Client{httpClient: httpClient, cfg: cfg}
}

// DailyArrays holds the index-aligned daily arrays of a provider response.
// Forecast and archive responses populate different subsets.
type DailyArrays struct {
	Time             []string  `json:"time"`
	TemperatureMax   []float64 `json:"temperature_2m_max"`
	TemperatureMin   []float64 `json:"temperature_2m_min"`
	TemperatureMean  []float64 `json:"temperature_2m_mean"`
	PrecipitationSum []float64 `json:"precipitation_sum"`
	RainSum          []float64 `json:"rain_sum"`
	SnowfallSum      []float64 `json:"snowfall_sum"`
	WindSpeedMax     []float64 `json:"wind_speed_10m_max"`
	WindGustsMax     []float64 `json:"wind_gusts_10m_max"`
	WeatherCode      []int     `json:"weathercode"`
}

// HourlyArrays holds the index-aligned hourly arrays of an archive response.
type HourlyArrays struct {
	Time          []string  `json:"time"`
	Temperature   []float64 `json:"temperature_2m"`
	Humidity      []float64 `json:"relative_humidity_2m"`
	Precipitation []float64 `json:"precipitation"`
	Rain          []float64 `json:"rain"`
	Snowfall      []float64 `json:"snowfall"`
}

// CurrentPayload is a decoded current-weather response. Current carries the
// provider's current block as-is; Raw is the complete response.
type CurrentPayload struct {
	Current map[string]any `json:"current"`
	Raw     map[string]any `json:"-"`
}

// SeriesPayload is a decoded forecast or archive response.
type SeriesPayload struct {
	Daily  DailyArrays    `json:"daily"`
	Hourly HourlyArrays   `json:"hourly"`
	Raw    map[string]any `json:"-"`
}

// GeocodingPayload is a decoded geocoding response.
type GeocodingPayload struct {
	Results []LocationMatch `json:"results"`
}

// FetchCurrent performs one GET against the forecast endpoint asking for the
// current-conditions block.
func (c *Client) FetchCurrent(ctx context.Context, coord Coordinate) (*CurrentPayload, error) {
	values := url.Values{}
	setCoordinate(values, coord)
	values.Set("current", currentParams)

	body, err := c.getJSON(ctx, c.cfg.ForecastBaseURL, values)
	if err != nil {
		return nil, err
	}

	var payload CurrentPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewParseError(fmt.Sprintf("decoding current weather response: %v", err))
	}
	// The typed pass succeeded, so this one cannot fail.
	_ = json.Unmarshal(body, &payload.Raw)
	return &payload, nil
}

// FetchForecast performs one GET against the forecast endpoint asking for the
// daily and hourly forecast arrays.
func (c *Client) FetchForecast(ctx context.Context, coord Coordinate) (*SeriesPayload, error) {
	values := url.Values{}
	setCoordinate(values, coord)
	values.Set("daily", forecastDailyParams)
	values.Set("hourly", forecastHourlyParams)
	values.Set("timezone", "auto")

	return c.fetchSeries(ctx, c.cfg.ForecastBaseURL, values, "forecast")
}

// FetchHistorical performs one GET against the archive endpoint for the
// given date range.
func (c *Client) FetchHistorical(ctx context.Context, coord Coordinate, dr DateRange) (*SeriesPayload, error) {
	values := url.Values{}
	setCoordinate(values, coord)
	values.Set("start_date", dr.StartDate)
	values.Set("end_date", dr.EndDate)
	values.Set("daily", archiveDailyParams)
	values.Set("hourly", archiveHourlyParams)
	values.Set("timezone", "auto")

	return c.fetchSeries(ctx, c.cfg.ArchiveBaseURL, values, "archive")
}

// SearchLocations performs one GET against the geocoding endpoint.
func (c *Client) SearchLocations(ctx context.Context, name string, count int) (*GeocodingPayload, error) {
	values := url.Values{}
	values.Set("name", name)
	values.Set("count", strconv.Itoa(count))
	values.Set("format", "json")

	body, err := c.getJSON(ctx, c.cfg.GeocodingBaseURL, values)
	if err != nil {
		return nil, err
	}

	var payload GeocodingPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewParseError(fmt.Sprintf("decoding geocoding response: %v", err))
	}
	return &payload, nil
}

func (c *Client) fetchSeries(ctx context.Context, baseURL string, values url.Values, what string) (*SeriesPayload, error) {
	body, err := c.getJSON(ctx, baseURL, values)
	if err != nil {
		return nil, err
	}

	var payload SeriesPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewParseError(fmt.Sprintf("decoding %s response: %v", what, err))
	}
	_ = json.Unmarshal(body, &payload.Raw)
	return &payload, nil
}

// getJSON issues the single outbound GET and classifies failures:
// transport errors become network errors, non-2xx statuses become upstream
// errors. The body is returned undecoded so callers can keep the raw payload.
func (c *Client) getJSON(ctx context.Context, baseURL string, values url.Values) ([]byte, error) {
	u := fmt.Sprintf("%s?%s", baseURL, values.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, NewNetworkError(fmt.Sprintf("building request: %v", err))
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if urlErr, ok := err.(*url.Error); ok && urlErr.Timeout() {
			return nil, NewNetworkError(fmt.Sprintf("request to %s timed out", urlErr.URL))
		}
		return nil, NewNetworkError(err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, NewUpstreamError(resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewNetworkError(fmt.Sprintf("reading response body: %v", err))
	}
	return body, nil
}

func setCoordinate(values url.Values, coord Coordinate) {
	values.Set("latitude", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	values.Set("longitude", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
}
