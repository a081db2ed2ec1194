package weather

// Default location used when a caller omits coordinates.
const (
	DefaultLatitude  = 49.0
	DefaultLongitude = -122.05
)

// Coordinate is a validated geographic position.
// Latitude is within [-90, 90], longitude within [-180, 180].
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DateRange is a validated pair of YYYY-MM-DD dates for archive queries.
// Ordering between start and end is not enforced locally; the archive API
// rejects impossible ranges itself.
type DateRange struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// CurrentConditions is the normalized current-weather view returned by the
// current-weather tool, alongside the full raw provider payload.
type CurrentConditions struct {
	Coordinate          Coordinate     `json:"coordinate"`
	Time                string         `json:"time"`
	TemperatureC        float64        `json:"temperatureC"`
	ApparentTemperature float64        `json:"apparentTemperatureC"`
	HumidityPct         float64        `json:"humidityPercent"`
	WindSpeedKmh        float64        `json:"windSpeedKmh"`
	WindDirectionDeg    float64        `json:"windDirectionDeg"`
	WindGustsKmh        float64        `json:"windGustsKmh"`
	PrecipitationMm     float64        `json:"precipitationMm"`
	RainMm              float64        `json:"rainMm"`
	ShowersMm           float64        `json:"showersMm"`
	SnowfallCm          float64        `json:"snowfallCm"`
	CloudCoverPct       float64        `json:"cloudCoverPercent"`
	PressureMslHpa      float64        `json:"pressureMslHpa"`
	WeatherCode         int            `json:"weatherCode"`
	IsDay               bool           `json:"isDay"`
	Raw                 map[string]any `json:"raw"`
}

// ForecastDay is one day of the multi-day forecast, aligned by index from
// the provider's daily arrays.
type ForecastDay struct {
	Date            string  `json:"date"`
	TemperatureMaxC float64 `json:"temperatureMaxC"`
	TemperatureMinC float64 `json:"temperatureMinC"`
	PrecipitationMm float64 `json:"precipitationMm"`
	WeatherCode     int     `json:"weatherCode"`
}

// Forecast is an ordered sequence of per-day records, earliest first.
type Forecast struct {
	Coordinate Coordinate    `json:"coordinate"`
	Days       []ForecastDay `json:"days"`
}

// HistoricalDay is one day of archive data.
type HistoricalDay struct {
	Date            string  `json:"date"`
	TemperatureMaxC float64 `json:"temperatureMaxC"`
	TemperatureMinC float64 `json:"temperatureMinC"`
	TemperatureAvgC float64 `json:"temperatureMeanC"`
	PrecipitationMm float64 `json:"precipitationMm"`
	RainMm          float64 `json:"rainMm"`
	SnowfallCm      float64 `json:"snowfallCm"`
	WindSpeedMaxKmh float64 `json:"windSpeedMaxKmh"`
	WindGustsMaxKmh float64 `json:"windGustsMaxKmh"`
}

// HourlyPoint is one hourly archive sample.
type HourlyPoint struct {
	Time            string  `json:"time"`
	TemperatureC    float64 `json:"temperatureC"`
	HumidityPct     float64 `json:"humidityPercent"`
	PrecipitationMm float64 `json:"precipitationMm"`
	RainMm          float64 `json:"rainMm"`
	SnowfallCm      float64 `json:"snowfallCm"`
}

// Historical is the archive view: complete daily records, a bounded prefix
// of hourly points, and the full raw payload for consumers that need the
// rest of the hours.
type Historical struct {
	Coordinate   Coordinate      `json:"coordinate"`
	DateRange    DateRange       `json:"dateRange"`
	Days         []HistoricalDay `json:"days"`
	HourlySample []HourlyPoint   `json:"hourlySample"`
	TotalHours   int             `json:"totalHours"`
	Raw          map[string]any  `json:"raw"`
}

// LocationMatch is one geocoding result.
type LocationMatch struct {
	Name       string  `json:"name"`
	Country    string  `json:"country"`
	Admin1     string  `json:"admin1,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Population int     `json:"population,omitempty"`
	Timezone   string  `json:"timezone,omitempty"`
}
