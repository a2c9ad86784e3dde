package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
)

// DefaultOpenWeatherURL is the OpenWeatherMap current weather endpoint.
const DefaultOpenWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// OpenWeatherProvider implements energy.WeatherSource for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewOpenWeatherProvider(client *http.Client, baseURL, apiKey string, breaker BreakerConfig) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: baseURL,
		client:  client,
		circuit: newBreaker("openweather", breaker),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// Current fetches metric current weather for city and projects it into a WeatherReading.
func (p *OpenWeatherProvider) Current(ctx context.Context, city string) (energy.WeatherReading, error) {
	if p.apiKey == "" {
		return energy.WeatherReading{}, fmt.Errorf("%w: openweather api key is not configured", energy.ErrUpstreamUnavailable)
	}

	values := url.Values{}
	values.Set("q", city)
	values.Set("appid", p.apiKey)
	values.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"?"+values.Encode(), nil)
	if err != nil {
		return energy.WeatherReading{}, fmt.Errorf("%w: building request: %v", energy.ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	body, err := doRequest(p.client, p.circuit, req)
	if err != nil {
		return energy.WeatherReading{}, err
	}
	return parseOpenWeather(body)
}

// openWeatherPayload uses pointers so absent fields can be told apart from zero values.
type openWeatherPayload struct {
	Name *string `json:"name"`
	Main *struct {
		Temp     *float64 `json:"temp"`
		Humidity *float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description *string `json:"description"`
	} `json:"weather"`
	Wind *struct {
		Speed *float64 `json:"speed"`
	} `json:"wind"`
}

func parseOpenWeather(body []byte) (energy.WeatherReading, error) {
	var payload openWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return energy.WeatherReading{}, fmt.Errorf("%w: decoding openweather payload: %v", energy.ErrUpstreamContract, err)
	}

	var missing []string
	if payload.Name == nil {
		missing = append(missing, "name")
	}
	if payload.Main == nil || payload.Main.Temp == nil {
		missing = append(missing, "main.temp")
	}
	if payload.Main == nil || payload.Main.Humidity == nil {
		missing = append(missing, "main.humidity")
	}
	if len(payload.Weather) == 0 || payload.Weather[0].Description == nil {
		missing = append(missing, "weather[0].description")
	}
	if payload.Wind == nil || payload.Wind.Speed == nil {
		missing = append(missing, "wind.speed")
	}
	if len(missing) > 0 {
		return energy.WeatherReading{}, fmt.Errorf("%w: openweather payload missing %s", energy.ErrUpstreamContract, strings.Join(missing, ", "))
	}

	return energy.WeatherReading{
		City:        *payload.Name,
		Temperature: *payload.Main.Temp,
		Description: *payload.Weather[0].Description,
		Humidity:    *payload.Main.Humidity,
		WindSpeed:   *payload.Wind.Speed,
	}, nil
}
