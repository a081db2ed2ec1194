// Package tools holds the MCP tool entry points. Each handler is a single
// linear pass: validate the arguments, perform one upstream fetch, format the
// payload. Any failure short-circuits and is returned as a tool error result;
// nothing escapes as a protocol fault.
package tools

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/i474232898/weather-mcp-server/internal/validate"
	"github.com/i474232898/weather-mcp-server/internal/weather"
)

const defaultSearchCount = 5

// Adapter sequences Validator, WeatherClient and ResponseFormatter for the
// registered tools. It holds no per-call state and is safe for concurrent use.
type Adapter struct {
	client           *weather.Client
	hourlySampleSize int
}

// NewAdapter creates the adapter around a shared weather client.
func NewAdapter(client *weather.Client, hourlySampleSize int) *Adapter {
	return &Adapter{client: client, hourlySampleSize: hourlySampleSize}
}

// Register wires the tools into the MCP server.
func Register(server *mcp.Server, a *Adapter) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_current_weather",
		Description: "Get current weather conditions for a location",
	}, a.GetCurrentWeather)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_forecast",
		Description: "Get a multi-day weather forecast for a location",
	}, a.GetForecast)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_historical_weather",
		Description: "Get historical weather data for a location and date range",
	}, a.GetHistoricalWeather)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_locations",
		Description: "Search for locations by name and return their coordinates",
	}, a.SearchLocations)
}

// CoordinateInput is shared by the lookup tools. Omitted coordinates fall
// back to the default location (49.0, -122.05).
type CoordinateInput struct {
	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"Latitude of the location (-90 to 90). Defaults to 49.0."`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"Longitude of the location (-180 to 180). Defaults to -122.05."`
}

// HistoricalInput adds the required archive date range.
type HistoricalInput struct {
	Latitude  *float64 `json:"latitude,omitempty" jsonschema:"Latitude of the location (-90 to 90). Defaults to 49.0."`
	Longitude *float64 `json:"longitude,omitempty" jsonschema:"Longitude of the location (-180 to 180). Defaults to -122.05."`
	StartDate string   `json:"start_date" jsonschema:"Start date in YYYY-MM-DD format."`
	EndDate   string   `json:"end_date" jsonschema:"End date in YYYY-MM-DD format."`
}

// SearchInput names a place to geocode.
type SearchInput struct {
	Name  string `json:"name" jsonschema:"Place name to search for."`
	Count int    `json:"count,omitempty" jsonschema:"Maximum number of matches to return. Defaults to 5."`
}

// SearchOutput wraps the geocoding matches.
type SearchOutput struct {
	Matches []weather.LocationMatch `json:"matches"`
}

// GetCurrentWeather handles the get_current_weather tool.
func (a *Adapter) GetCurrentWeather(ctx context.Context, _ *mcp.CallToolRequest, in CoordinateInput) (*mcp.CallToolResult, any, error) {
	done := callStarted("get_current_weather")

	coord, err := validate.Coordinate(in.Latitude, in.Longitude)
	if err != nil {
		return done(err), nil, nil
	}

	payload, err := a.client.FetchCurrent(ctx, coord)
	if err != nil {
		return done(err), nil, nil
	}

	conditions, err := weather.FormatCurrent(coord, payload)
	if err != nil {
		return done(err), nil, nil
	}

	done(nil)
	return nil, conditions, nil
}

// GetForecast handles the get_forecast tool.
func (a *Adapter) GetForecast(ctx context.Context, _ *mcp.CallToolRequest, in CoordinateInput) (*mcp.CallToolResult, any, error) {
	done := callStarted("get_forecast")

	coord, err := validate.Coordinate(in.Latitude, in.Longitude)
	if err != nil {
		return done(err), nil, nil
	}

	payload, err := a.client.FetchForecast(ctx, coord)
	if err != nil {
		return done(err), nil, nil
	}

	forecast, err := weather.FormatForecast(coord, payload)
	if err != nil {
		return done(err), nil, nil
	}

	done(nil)
	return nil, forecast, nil
}

// GetHistoricalWeather handles the get_historical_weather tool. Validation
// failures return before any network call is made.
func (a *Adapter) GetHistoricalWeather(ctx context.Context, _ *mcp.CallToolRequest, in HistoricalInput) (*mcp.CallToolResult, any, error) {
	done := callStarted("get_historical_weather")

	coord, err := validate.Coordinate(in.Latitude, in.Longitude)
	if err != nil {
		return done(err), nil, nil
	}

	dateRange, err := validate.DateRange(in.StartDate, in.EndDate)
	if err != nil {
		return done(err), nil, nil
	}

	payload, err := a.client.FetchHistorical(ctx, coord, dateRange)
	if err != nil {
		return done(err), nil, nil
	}

	historical, err := weather.FormatHistorical(coord, dateRange, payload, a.hourlySampleSize)
	if err != nil {
		return done(err), nil, nil
	}

	done(nil)
	return nil, historical, nil
}

// SearchLocations handles the search_locations tool.
func (a *Adapter) SearchLocations(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, any, error) {
	done := callStarted("search_locations")

	name, err := validate.LocationName(in.Name)
	if err != nil {
		return done(err), nil, nil
	}

	count := in.Count
	if count <= 0 {
		count = defaultSearchCount
	}

	payload, err := a.client.SearchLocations(ctx, name, count)
	if err != nil {
		return done(err), nil, nil
	}

	done(nil)
	return nil, SearchOutput{Matches: payload.Results}, nil
}

// callStarted logs the call with a request ID and returns a closure that
// logs the outcome and, for failures, builds the tool error result.
func callStarted(tool string) func(error) *mcp.CallToolResult {
	requestID := uuid.NewString()
	start := time.Now()
	log.Printf("INFO: [%s] tool %s called", requestID, tool)

	return func(err error) *mcp.CallToolResult {
		elapsed := time.Since(start).Round(time.Millisecond)
		if err == nil {
			log.Printf("INFO: [%s] tool %s completed in %s", requestID, tool, elapsed)
			return nil
		}
		log.Printf("ERROR: [%s] tool %s failed in %s: %v", requestID, tool, elapsed, err)
		return failureResult(err)
	}
}

// failureResult converts any adapter error into a structured tool error.
// Validation messages are surfaced verbatim; network failures carry generic
// retry guidance; parse and format failures are labeled internal because they
// indicate upstream contract drift rather than caller misuse.
func failureResult(err error) *mcp.CallToolResult {
	msg := err.Error()
	switch weather.KindOf(err) {
	case weather.KindNetwork:
		msg += " (the upstream provider may be temporarily unreachable; the call can be retried)"
	case weather.KindParse, weather.KindFormat:
		msg = "internal error: " + msg
	}

	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
