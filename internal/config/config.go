package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Port string

	OpenWeatherAPIKey string
	OpenWeatherURL    string

	// MLBaseURL is the prediction service base; "/predict" is appended.
	MLBaseURL string

	// UpstreamTimeout bounds every outbound call.
	UpstreamTimeout time.Duration

	// HistoricalDataPath points at a YAML usage table. Empty uses the embedded dataset.
	HistoricalDataPath string

	// Circuit breaker per upstream.
	BreakerFailureThreshold uint32
	BreakerCooldown         time.Duration

	// HealthProbeInterval controls upstream reachability probes (0 = disabled).
	HealthProbeInterval time.Duration

	CORSAllowOrigins string

	LogLevel  string
	LogFormat string

	ShutdownTimeout time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		Port:               getenvDefault("PORT", "3000"),
		OpenWeatherAPIKey:  os.Getenv("OPENWEATHER_API_KEY"),
		OpenWeatherURL:     getenvDefault("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/weather"),
		MLBaseURL:          getenvDefault("ML_API_URL", "http://localhost:5000"),
		HistoricalDataPath: os.Getenv("HISTORICAL_DATA_PATH"),
		CORSAllowOrigins:   getenvDefault("CORS_ALLOW_ORIGINS", "*"),
		LogLevel:           getenvDefault("LOG_LEVEL", "info"),
		LogFormat:          getenvDefault("LOG_FORMAT", "text"),
	}

	if _, err := strconv.ParseUint(cfg.Port, 10, 16); err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	for key, raw := range map[string]string{
		"OPENWEATHER_URL": cfg.OpenWeatherURL,
		"ML_API_URL":      cfg.MLBaseURL,
	} {
		if err := validateURL(raw); err != nil {
			return nil, fmt.Errorf("invalid %s: %w", key, err)
		}
	}

	var err error
	if cfg.UpstreamTimeout, err = getenvDuration("UPSTREAM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.UpstreamTimeout <= 0 {
		return nil, fmt.Errorf("invalid UPSTREAM_TIMEOUT: must be positive")
	}
	if cfg.BreakerCooldown, err = getenvDuration("BREAKER_COOLDOWN", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.HealthProbeInterval, err = getenvDuration("HEALTH_PROBE_INTERVAL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getenvDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	threshold, err := strconv.ParseUint(getenvDefault("BREAKER_FAILURE_THRESHOLD", "5"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid BREAKER_FAILURE_THRESHOLD: %w", err)
	}
	cfg.BreakerFailureThreshold = uint32(threshold)

	return cfg, nil
}

func validateURL(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: must not be negative", key)
	}
	return d, nil
}
