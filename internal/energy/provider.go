package energy

import "context"

// WeatherSource fetches current weather for a city from an external service.
// Implementations wrap ErrUpstreamUnavailable or ErrUpstreamContract in returned errors.
type WeatherSource interface {
	Name() string
	Current(ctx context.Context, city string) (WeatherReading, error)
}

// Predictor sends a feature vector to an external model and returns the raw response body.
type Predictor interface {
	Name() string
	Predict(ctx context.Context, features []float64) ([]byte, error)
}

// UsageSource is the read-only historical usage table.
// CityUsage returns ErrUnknownCity when the city has no entry.
type UsageSource interface {
	CityUsage(city string) (PeriodUsage, error)
}

// Reporter receives failures for diagnostics. attrs are slog-style key/value pairs.
type Reporter interface {
	Report(ctx context.Context, op string, err error, attrs ...any)
}

type nopReporter struct{}

func (nopReporter) Report(context.Context, string, error, ...any) {}
