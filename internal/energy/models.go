package energy

import "fmt"

// City is a supported city. Identity is ID.
type City struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

// UsagePeriod selects a historical usage window.
type UsagePeriod string

const (
	PeriodToday UsagePeriod = "today"
	PeriodWeek  UsagePeriod = "week"
	PeriodMonth UsagePeriod = "month"
)

// ParsePeriod accepts exactly today, week or month.
func ParsePeriod(s string) (UsagePeriod, error) {
	switch p := UsagePeriod(s); p {
	case PeriodToday, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
}

// PeriodUsage holds the usage figures of one city keyed by period.
type PeriodUsage map[UsagePeriod]float64

// UsageReading is the body served for a historical lookup.
type UsageReading struct {
	Usage float64 `json:"usage"`
}

// WeatherReading is the normalized current weather for a city.
type WeatherReading struct {
	City        string  `json:"city"`
	Temperature float64 `json:"temperature"`
	Description string  `json:"description"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"windSpeed"`
}

// Advice is a tip set chosen for a temperature.
type Advice struct {
	Temperature float64 `json:"temperature"`
	Tips        TipSet  `json:"tips"`
}

// PredictionRequest carries the two model features. Both must be numeric; zero is valid.
type PredictionRequest struct {
	PowerDemand float64 `json:"power_demand"`
	Temp        float64 `json:"temp"`
}

// Features returns the model input vector in the order the model expects.
func (r PredictionRequest) Features() []float64 {
	return []float64{r.PowerDemand, r.Temp}
}

// PredictionResult is the prediction plus its derived CO2 estimate.
type PredictionResult struct {
	PredictedPowerDemand float64 `json:"predicted_power_demand"`
	EstimatedCO2Kg       float64 `json:"estimated_CO2_emission_kg"`
	Unit                 string  `json:"unit"`
}
