package weather

import "fmt"

// FormatCurrent shapes a current-weather payload into CurrentConditions.
// The provider's current block is required; individual fields inside it are
// read leniently since the provider omits ones it has no data for.
func FormatCurrent(coord Coordinate, p *CurrentPayload) (*CurrentConditions, error) {
	if p == nil || p.Current == nil {
		return nil, NewFormatError("current weather response is missing the 'current' block")
	}

	cur := p.Current
	return &CurrentConditions{
		Coordinate:          coord,
		Time:                stringField(cur, "time"),
		TemperatureC:        numField(cur, "temperature_2m"),
		ApparentTemperature: numField(cur, "apparent_temperature"),
		HumidityPct:         numField(cur, "relative_humidity_2m"),
		WindSpeedKmh:        numField(cur, "wind_speed_10m"),
		WindDirectionDeg:    numField(cur, "wind_direction_10m"),
		WindGustsKmh:        numField(cur, "wind_gusts_10m"),
		PrecipitationMm:     numField(cur, "precipitation"),
		RainMm:              numField(cur, "rain"),
		ShowersMm:           numField(cur, "showers"),
		SnowfallCm:          numField(cur, "snowfall"),
		CloudCoverPct:       numField(cur, "cloud_cover"),
		PressureMslHpa:      numField(cur, "pressure_msl"),
		WeatherCode:         int(numField(cur, "weather_code")),
		IsDay:               numField(cur, "is_day") == 1,
		Raw:                 p.Raw,
	}, nil
}

// FormatForecast zips the daily forecast arrays into per-day records,
// ordered as delivered (earliest first).
func FormatForecast(coord Coordinate, p *SeriesPayload) (*Forecast, error) {
	if p == nil || len(p.Daily.Time) == 0 {
		return nil, NewFormatError("forecast response is missing the daily time array")
	}

	n := len(p.Daily.Time)
	if err := checkSeriesLen("temperature_2m_max", len(p.Daily.TemperatureMax), n); err != nil {
		return nil, err
	}
	if err := checkSeriesLen("temperature_2m_min", len(p.Daily.TemperatureMin), n); err != nil {
		return nil, err
	}
	if err := checkSeriesLen("precipitation_sum", len(p.Daily.PrecipitationSum), n); err != nil {
		return nil, err
	}
	if err := checkSeriesLen("weathercode", len(p.Daily.WeatherCode), n); err != nil {
		return nil, err
	}

	days := make([]ForecastDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, ForecastDay{
			Date:            p.Daily.Time[i],
			TemperatureMaxC: p.Daily.TemperatureMax[i],
			TemperatureMinC: p.Daily.TemperatureMin[i],
			PrecipitationMm: p.Daily.PrecipitationSum[i],
			WeatherCode:     p.Daily.WeatherCode[i],
		})
	}

	return &Forecast{Coordinate: coord, Days: days}, nil
}

// FormatHistorical shapes an archive payload into complete daily records plus
// a bounded prefix of hourly points. Hourly arrays are read leniently; the
// full raw payload is carried for consumers that need every hour.
func FormatHistorical(coord Coordinate, dr DateRange, p *SeriesPayload, sampleSize int) (*Historical, error) {
	if p == nil || len(p.Daily.Time) == 0 {
		return nil, NewFormatError("archive response is missing the daily time array")
	}

	n := len(p.Daily.Time)
	if err := checkSeriesLen("temperature_2m_max", len(p.Daily.TemperatureMax), n); err != nil {
		return nil, err
	}
	if err := checkSeriesLen("temperature_2m_min", len(p.Daily.TemperatureMin), n); err != nil {
		return nil, err
	}

	days := make([]HistoricalDay, 0, n)
	for i := 0; i < n; i++ {
		days = append(days, HistoricalDay{
			Date:            p.Daily.Time[i],
			TemperatureMaxC: p.Daily.TemperatureMax[i],
			TemperatureMinC: p.Daily.TemperatureMin[i],
			TemperatureAvgC: floatAt(p.Daily.TemperatureMean, i),
			PrecipitationMm: floatAt(p.Daily.PrecipitationSum, i),
			RainMm:          floatAt(p.Daily.RainSum, i),
			SnowfallCm:      floatAt(p.Daily.SnowfallSum, i),
			WindSpeedMaxKmh: floatAt(p.Daily.WindSpeedMax, i),
			WindGustsMaxKmh: floatAt(p.Daily.WindGustsMax, i),
		})
	}

	totalHours := len(p.Hourly.Time)
	if sampleSize < 0 {
		sampleSize = 0
	}
	sampleN := sampleSize
	if totalHours < sampleN {
		sampleN = totalHours
	}

	sample := make([]HourlyPoint, 0, sampleN)
	for i := 0; i < sampleN; i++ {
		sample = append(sample, HourlyPoint{
			Time:            p.Hourly.Time[i],
			TemperatureC:    floatAt(p.Hourly.Temperature, i),
			HumidityPct:     floatAt(p.Hourly.Humidity, i),
			PrecipitationMm: floatAt(p.Hourly.Precipitation, i),
			RainMm:          floatAt(p.Hourly.Rain, i),
			SnowfallCm:      floatAt(p.Hourly.Snowfall, i),
		})
	}

	return &Historical{
		Coordinate:   coord,
		DateRange:    dr,
		Days:         days,
		HourlySample: sample,
		TotalHours:   totalHours,
		Raw:          p.Raw,
	}, nil
}

func checkSeriesLen(name string, got, want int) error {
	if got < want {
		return NewFormatError(fmt.Sprintf("daily array %q has %d entries, expected %d", name, got, want))
	}
	return nil
}

func floatAt(arr []float64, i int) float64 {
	if i < len(arr) {
		return arr[i]
	}
	return 0
}

func numField(m map[string]any, key string) float64 {
	if v, ok := m[key].(float64); ok {
		return v
	}
	return 0
}

func stringField(m map[string]any, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}
