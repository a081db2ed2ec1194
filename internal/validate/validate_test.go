package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-mcp-server/internal/weather"
)

func f(v float64) *float64 { return &v }

func TestCoordinateDefaults(t *testing.T) {
	coord, err := Coordinate(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 49.0, coord.Latitude)
	assert.Equal(t, -122.05, coord.Longitude)
}

func TestCoordinateAcceptsBoundaries(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{-90, 0},
		{90, 0},
		{0, -180},
		{0, 180},
		{40.7128, -74.0060},
	}
	for _, tc := range cases {
		coord, err := Coordinate(f(tc.lat), f(tc.lon))
		require.NoError(t, err)
		assert.Equal(t, tc.lat, coord.Latitude)
		assert.Equal(t, tc.lon, coord.Longitude)
	}
}

func TestCoordinateRejectsLatitudeOutOfRange(t *testing.T) {
	for _, lat := range []float64{-90.01, 90.01, 123.4, -1000} {
		_, err := Coordinate(f(lat), f(0))
		require.Error(t, err, "latitude %v", lat)

		we, ok := err.(*weather.Error)
		require.True(t, ok)
		assert.Equal(t, weather.KindValidation, we.Kind)
		assert.Equal(t, "latitude", we.Field)
		assert.Contains(t, we.Message, "between -90 and 90")
	}
}

func TestCoordinateRejectsLongitudeOutOfRange(t *testing.T) {
	for _, lon := range []float64{-180.01, 180.01, 361} {
		_, err := Coordinate(f(0), f(lon))
		require.Error(t, err, "longitude %v", lon)

		we, ok := err.(*weather.Error)
		require.True(t, ok)
		assert.Equal(t, weather.KindValidation, we.Kind)
		assert.Equal(t, "longitude", we.Field)
		assert.Contains(t, we.Message, "between -180 and 180")
	}
}

func TestDateRangeAcceptsWellFormedDates(t *testing.T) {
	dr, err := DateRange("2023-01-01", "2023-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01", dr.StartDate)
	assert.Equal(t, "2023-01-31", dr.EndDate)
}

func TestDateRangeRejectsBadFormats(t *testing.T) {
	bad := []string{"01-01-2023", "2023/01/01", "2023-1-1", "20230101", "yesterday"}
	for _, s := range bad {
		_, err := DateRange(s, "2023-01-31")
		require.Error(t, err, "start date %q", s)

		we, ok := err.(*weather.Error)
		require.True(t, ok)
		assert.Equal(t, weather.KindValidation, we.Kind)
		assert.Equal(t, "start_date", we.Field)
		assert.Contains(t, we.Message, "YYYY-MM-DD")
	}
}

func TestDateRangeNamesEndDate(t *testing.T) {
	_, err := DateRange("2023-01-01", "31-01-2023")
	require.Error(t, err)

	we, ok := err.(*weather.Error)
	require.True(t, ok)
	assert.Equal(t, "end_date", we.Field)
}

func TestDateRangeRequiresBothDates(t *testing.T) {
	_, err := DateRange("", "2023-01-31")
	require.Error(t, err)
	we := err.(*weather.Error)
	assert.Equal(t, "start_date", we.Field)
	assert.Contains(t, we.Message, "required")

	_, err = DateRange("2023-01-01", "")
	require.Error(t, err)
	we = err.(*weather.Error)
	assert.Equal(t, "end_date", we.Field)
}

func TestLocationNameRequired(t *testing.T) {
	_, err := LocationName("")
	require.Error(t, err)
	assert.Equal(t, weather.KindValidation, weather.KindOf(err))

	name, err := LocationName("Paris")
	require.NoError(t, err)
	assert.Equal(t, "Paris", name)
}
