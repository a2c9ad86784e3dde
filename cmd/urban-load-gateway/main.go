package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/sony/gobreaker"

	httpapi "github.com/SumanAdhithya30/Urban-Loads/internal/api/http"
	"github.com/SumanAdhithya30/Urban-Loads/internal/config"
	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
	"github.com/SumanAdhithya30/Urban-Loads/internal/energy/providers"
	"github.com/SumanAdhithya30/Urban-Loads/internal/observe"
	"github.com/SumanAdhithya30/Urban-Loads/internal/scheduler"
	"github.com/SumanAdhithya30/Urban-Loads/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observe.NewLogger(os.Stderr, cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		log.Fatalf("invalid LOG_LEVEL %q: %v", cfg.LogLevel, err)
	}
	slog.SetDefault(logger)

	if cfg.OpenWeatherAPIKey == "" {
		logger.Warn("OPENWEATHER_API_KEY is not set; /weather will fail")
	}

	// Historical usage is loaded once and read-only afterwards.
	usage, err := loadUsage(cfg.HistoricalDataPath)
	if err != nil {
		log.Fatalf("failed to load historical usage: %v", err)
	}
	logger.Info("historical usage loaded", "cities", usage.Len(), "path", cfg.HistoricalDataPath)

	// Shared HTTP client for outbound calls.
	httpClient := &http.Client{
		Timeout: cfg.UpstreamTimeout,
	}

	breaker := providers.BreakerConfig{
		FailureThreshold: cfg.BreakerFailureThreshold,
		Cooldown:         cfg.BreakerCooldown,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	}

	weatherSource := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherURL, cfg.OpenWeatherAPIKey, breaker)
	predictor := providers.NewMLPredictor(httpClient, cfg.MLBaseURL, breaker)

	service := energy.NewService(
		energy.NewCatalog(energy.DefaultCities),
		usage,
		weatherSource,
		predictor,
		observe.NewLogReporter(logger),
	)

	prober, err := scheduler.New(httpClient, cfg.HealthProbeInterval, logger,
		scheduler.Target{Name: "weather", URL: cfg.OpenWeatherURL},
		scheduler.Target{Name: "prediction", URL: cfg.MLBaseURL},
	)
	if err != nil {
		log.Fatalf("failed to configure upstream probe: %v", err)
	}
	if err := prober.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer prober.Stop()

	app := httpapi.NewApp(service, prober, httpapi.Options{
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})

	go func() {
		logger.Info("server is running", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Error("fiber server stopped", "error", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("error during shutdown", "error", err)
	}
}

func loadUsage(path string) (*store.UsageTable, error) {
	if path == "" {
		return store.DefaultUsageTable()
	}
	return store.LoadUsageTable(path)
}
