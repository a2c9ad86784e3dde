package energy

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
)

const (
	msgUsageParamsRequired = "City and period parameters are required."
	msgCityNotFound        = "City not found."
	msgInvalidPeriod       = "Invalid period. Use today, week, or month."
	msgCityRequired        = "City parameter is required."
	msgWeatherFailed       = "Failed to fetch weather data."
	msgTemperatureInvalid  = "Temperature query parameter is required and must be a number."
	msgPredictInvalid      = "Both 'power_demand' and 'temp' must be numbers."
	msgPredictFormat       = "Invalid prediction format from ML model."
	msgPredictFailed       = "Failed to get prediction from ML model."
)

// Service dispatches each operation to its collaborator and normalizes the outcome.
// It holds no mutable state; all collaborators are read-only or per-call.
type Service struct {
	catalog   *Catalog
	usage     UsageSource
	weather   WeatherSource
	predictor Predictor
	reporter  Reporter
}

// NewService creates a new Service. A nil reporter discards reports.
func NewService(catalog *Catalog, usage UsageSource, weather WeatherSource, predictor Predictor, reporter Reporter) *Service {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &Service{
		catalog:   catalog,
		usage:     usage,
		weather:   weather,
		predictor: predictor,
		reporter:  reporter,
	}
}

// Cities lists the supported cities.
func (s *Service) Cities() []City {
	return s.catalog.Cities()
}

// Usage looks up historical usage. The city is checked before the period.
func (s *Service) Usage(ctx context.Context, city, period string) (UsageReading, error) {
	if city == "" || period == "" {
		return UsageReading{}, newError(ErrMissingParameter, msgUsageParamsRequired, nil)
	}

	byPeriod, err := s.usage.CityUsage(city)
	if err != nil {
		if errors.Is(err, ErrUnknownCity) {
			return UsageReading{}, newError(ErrUnknownCity, msgCityNotFound, err)
		}
		s.reporter.Report(ctx, "historical", err, "city", city)
		return UsageReading{}, err
	}

	p, err := ParsePeriod(period)
	if err != nil {
		return UsageReading{}, newError(ErrInvalidPeriod, msgInvalidPeriod, err)
	}
	usage, ok := byPeriod[p]
	if !ok {
		return UsageReading{}, newError(ErrInvalidPeriod, msgInvalidPeriod, nil)
	}
	return UsageReading{Usage: usage}, nil
}

// Weather proxies one call to the weather service.
func (s *Service) Weather(ctx context.Context, city string) (WeatherReading, error) {
	if city == "" {
		return WeatherReading{}, newError(ErrMissingParameter, msgCityRequired, nil)
	}

	reading, err := s.weather.Current(ctx, city)
	if err != nil {
		e := upstreamError(err, msgWeatherFailed, msgWeatherFailed)
		s.reporter.Report(ctx, "weather", e, "provider", s.weather.Name(), "city", city)
		return WeatherReading{}, e
	}
	return reading, nil
}

// Policy parses a temperature and returns the tips for its band.
func (s *Service) Policy(temperature string) (Advice, error) {
	t, err := strconv.ParseFloat(strings.TrimSpace(temperature), 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		return Advice{}, newError(ErrInvalidParameter, msgTemperatureInvalid, err)
	}
	return Advice{Temperature: t, Tips: TipsFor(t)}, nil
}

// Predict forwards the request to the ML service and derives the CO2 estimate.
func (s *Service) Predict(ctx context.Context, req PredictionRequest) (PredictionResult, error) {
	if !finite(req.PowerDemand) || !finite(req.Temp) {
		return PredictionResult{}, newError(ErrInvalidParameter, msgPredictInvalid, nil)
	}

	body, err := s.predictor.Predict(ctx, req.Features())
	if err != nil {
		e := upstreamError(err, msgPredictFailed, msgPredictFormat)
		s.reporter.Report(ctx, "predict", e, "provider", s.predictor.Name())
		return PredictionResult{}, e
	}

	predicted, err := ExtractPrediction(body)
	if err != nil {
		e := newError(ErrUpstreamContract, msgPredictFormat, err)
		s.reporter.Report(ctx, "predict", e, "provider", s.predictor.Name(), "body", excerpt(body))
		return PredictionResult{}, e
	}
	return NewPredictionResult(predicted), nil
}

// InvalidPredictionInput builds the error for a prediction body that could not be bound.
func InvalidPredictionInput(cause error) *Error {
	return newError(ErrInvalidParameter, msgPredictInvalid, cause)
}

func upstreamError(err error, unavailableMsg, contractMsg string) *Error {
	if errors.Is(err, ErrUpstreamContract) {
		return newError(ErrUpstreamContract, contractMsg, err)
	}
	return newError(ErrUpstreamUnavailable, unavailableMsg, err)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func excerpt(b []byte) string {
	const limit = 512
	if len(b) > limit {
		return string(b[:limit]) + "..."
	}
	return string(b)
}
