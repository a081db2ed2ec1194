// Package validate checks raw tool arguments and produces validated domain
// values. All functions are pure: no I/O, no shared state.
package validate

import (
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/i474232898/weather-mcp-server/internal/weather"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Tag for YYYY-MM-DD date strings.
	if err := v.RegisterValidation("dateformat", func(fl validator.FieldLevel) bool {
		return dateRe.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

type coordinateInput struct {
	Latitude  float64 `validate:"gte=-90,lte=90"`
	Longitude float64 `validate:"gte=-180,lte=180"`
}

type dateRangeInput struct {
	StartDate string `validate:"required,dateformat"`
	EndDate   string `validate:"required,dateformat"`
}

// Coordinate validates an optional latitude/longitude pair. Nil values take
// the default location; out-of-range values are rejected with an error
// naming the field, the valid range, and the offending value.
func Coordinate(lat, lon *float64) (weather.Coordinate, error) {
	in := coordinateInput{
		Latitude:  weather.DefaultLatitude,
		Longitude: weather.DefaultLongitude,
	}
	if lat != nil {
		in.Latitude = *lat
	}
	if lon != nil {
		in.Longitude = *lon
	}

	if err := validate.Struct(in); err != nil {
		return weather.Coordinate{}, coordinateError(err)
	}

	return weather.Coordinate{Latitude: in.Latitude, Longitude: in.Longitude}, nil
}

// DateRange validates the required start/end dates of a historical query.
// Absence of either date is itself a validation error; no ordering between
// the two is enforced.
func DateRange(startDate, endDate string) (weather.DateRange, error) {
	in := dateRangeInput{StartDate: startDate, EndDate: endDate}

	if err := validate.Struct(in); err != nil {
		return weather.DateRange{}, dateRangeError(err)
	}

	return weather.DateRange{StartDate: startDate, EndDate: endDate}, nil
}

func coordinateError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return weather.NewValidationError("", err.Error())
	}

	fe := errs[0]
	switch fe.StructField() {
	case "Latitude":
		return weather.NewValidationError("latitude",
			fmt.Sprintf("latitude must be between -90 and 90 degrees, got %v", fe.Value()))
	case "Longitude":
		return weather.NewValidationError("longitude",
			fmt.Sprintf("longitude must be between -180 and 180 degrees, got %v", fe.Value()))
	}
	return weather.NewValidationError("", err.Error())
}

func dateRangeError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return weather.NewValidationError("", err.Error())
	}

	fe := errs[0]
	field := "start_date"
	if fe.StructField() == "EndDate" {
		field = "end_date"
	}

	if fe.Tag() == "required" {
		return weather.NewValidationError(field,
			fmt.Sprintf("%s is required and must use the YYYY-MM-DD format", field))
	}
	return weather.NewValidationError(field,
		fmt.Sprintf("%s must use the YYYY-MM-DD format, got %q", field, fe.Value()))
}

// LocationName validates a geocoding search term.
func LocationName(name string) (string, error) {
	if name == "" {
		return "", weather.NewValidationError("name", "name is required")
	}
	return name, nil
}
