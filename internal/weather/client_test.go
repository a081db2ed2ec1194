package weather

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastBody = `{
	"latitude": 40.7128,
	"longitude": -74.0060,
	"daily": {
		"time": ["2024-05-01", "2024-05-02"],
		"temperature_2m_max": [18.1, 19.5],
		"temperature_2m_min": [8.2, 9.0],
		"precipitation_sum": [0.0, 1.2],
		"weathercode": [1, 3]
	}
}`

func TestFetchForecastSendsExactCoordinates(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, forecastBody)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ClientConfig{ForecastBaseURL: ts.URL})
	payload, err := client.FetchForecast(context.Background(), Coordinate{Latitude: 40.7128, Longitude: -74.0060})
	require.NoError(t, err)

	assert.Equal(t, "40.7128", gotQuery.Get("latitude"))
	assert.Equal(t, "-74.006", gotQuery.Get("longitude"))
	assert.Equal(t, "auto", gotQuery.Get("timezone"))
	assert.NotEmpty(t, gotQuery.Get("daily"))
	assert.NotEmpty(t, gotQuery.Get("hourly"))

	require.Len(t, payload.Daily.Time, 2)
	assert.Equal(t, 18.1, payload.Daily.TemperatureMax[0])
	assert.NotNil(t, payload.Raw["daily"])
}

func TestFetchCurrentRequestsCurrentBlock(t *testing.T) {
	var gotQuery url.Values
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"current":{"temperature_2m":14.2,"relative_humidity_2m":71,"wind_speed_10m":9.4}}`)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ClientConfig{ForecastBaseURL: ts.URL})
	payload, err := client.FetchCurrent(context.Background(), Coordinate{Latitude: 49.0, Longitude: -122.05})
	require.NoError(t, err)

	assert.Equal(t, "49", gotQuery.Get("latitude"))
	assert.Equal(t, "-122.05", gotQuery.Get("longitude"))
	assert.Contains(t, gotQuery.Get("current"), "temperature_2m")
	assert.Contains(t, gotQuery.Get("current"), "relative_humidity_2m")
	assert.Equal(t, "weather-mcp-server/1.0", gotUA)

	assert.Equal(t, 14.2, payload.Current["temperature_2m"])
}

func TestFetchHistoricalSendsDateRange(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"daily":{"time":["2023-01-01"],"temperature_2m_max":[3.1],"temperature_2m_min":[-1.2]},"hourly":{"time":["2023-01-01T00:00"],"temperature_2m":[1.0]}}`)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ClientConfig{ArchiveBaseURL: ts.URL})
	dr := DateRange{StartDate: "2023-01-01", EndDate: "2023-01-31"}
	payload, err := client.FetchHistorical(context.Background(), Coordinate{Latitude: 48.8566, Longitude: 2.3522}, dr)
	require.NoError(t, err)

	assert.Equal(t, "2023-01-01", gotQuery.Get("start_date"))
	assert.Equal(t, "2023-01-31", gotQuery.Get("end_date"))
	assert.Equal(t, "48.8566", gotQuery.Get("latitude"))
	require.Len(t, payload.Hourly.Time, 1)
}

func TestNon2xxBecomesUpstreamError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ClientConfig{ForecastBaseURL: ts.URL})
	_, err := client.FetchForecast(context.Background(), Coordinate{})
	require.Error(t, err)

	assert.Equal(t, KindUpstream, KindOf(err))
	assert.Contains(t, err.Error(), "503")
}

func TestMalformedBodyBecomesParseError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"daily": not json`)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ClientConfig{ForecastBaseURL: ts.URL})
	_, err := client.FetchForecast(context.Background(), Coordinate{})
	require.Error(t, err)
	assert.Equal(t, KindParse, KindOf(err))
}

func TestTimeoutBecomesNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
	}))
	defer ts.Close()

	slow := &http.Client{Timeout: 50 * time.Millisecond}
	client := NewClient(slow, ClientConfig{ForecastBaseURL: ts.URL})

	start := time.Now()
	_, err := client.FetchForecast(context.Background(), Coordinate{})
	require.Error(t, err)

	assert.Equal(t, KindNetwork, KindOf(err))
	assert.Contains(t, err.Error(), "timed out")
	assert.Less(t, time.Since(start), 400*time.Millisecond, "call must not outlive the client timeout")
}

func TestConnectionRefusedBecomesNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	target := ts.URL
	ts.Close()

	client := NewClient(&http.Client{Timeout: time.Second}, ClientConfig{ForecastBaseURL: target})
	_, err := client.FetchForecast(context.Background(), Coordinate{})
	require.Error(t, err)
	assert.Equal(t, KindNetwork, KindOf(err))
}

func TestSearchLocations(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"results":[{"name":"Paris","country":"France","latitude":48.8566,"longitude":2.3522,"timezone":"Europe/Paris"}]}`)
	}))
	defer ts.Close()

	client := NewClient(ts.Client(), ClientConfig{GeocodingBaseURL: ts.URL})
	payload, err := client.SearchLocations(context.Background(), "Paris", 5)
	require.NoError(t, err)

	assert.Equal(t, "Paris", gotQuery.Get("name"))
	assert.Equal(t, "5", gotQuery.Get("count"))
	require.Len(t, payload.Results, 1)
	assert.Equal(t, "France", payload.Results[0].Country)
	assert.Equal(t, 48.8566, payload.Results[0].Latitude)
}
