package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/SumanAdhithya30/Urban-Loads/internal/energy"
	"github.com/SumanAdhithya30/Urban-Loads/internal/observe"
	"github.com/SumanAdhithya30/Urban-Loads/internal/scheduler"
)

const (
	serviceName    = "urban-load-gateway"
	requestIDLocal = "requestid"
)

var validate = validator.New()

// Options tunes the Fiber app built by NewApp.
type Options struct {
	CORSAllowOrigins string
	// AccessLog receives one line per request. Nil writes to stderr.
	AccessLog io.Writer
}

// NewApp builds the Fiber app with middleware, the centralized error handler and all routes.
// prober may be nil.
func NewApp(service *energy.Service, prober *scheduler.Prober, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          ErrorHandler,
	})

	accessLog := opts.AccessLog
	if accessLog == nil {
		accessLog = os.Stderr
	}
	origins := opts.CORSAllowOrigins
	if origins == "" {
		origins = "*"
	}

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator:  uuid.NewString,
		ContextKey: requestIDLocal,
	}))
	app.Use(withRequestContext)
	app.Use(logger.New(logger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
		Output: accessLog,
	}))
	app.Use(cors.New(cors.Config{AllowOrigins: origins}))

	app.Get("/health", func(c *fiber.Ctx) error {
		resp := fiber.Map{
			"status":  "ok",
			"service": serviceName,
		}
		if prober != nil {
			resp["upstreams"] = prober.Statuses()
		}
		return c.JSON(resp)
	})

	RegisterRoutes(app, service)
	return app
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
// Handlers return domain errors unchanged; ErrorHandler turns them into responses.
func RegisterRoutes(app *fiber.App, service *energy.Service) {
	app.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(service.Cities())
	})

	app.Get("/historical", func(c *fiber.Ctx) error {
		usage, err := service.Usage(c.UserContext(), c.Query("city"), c.Query("period"))
		if err != nil {
			return err
		}
		return c.JSON(usage)
	})

	app.Get("/weather", func(c *fiber.Ctx) error {
		reading, err := service.Weather(c.UserContext(), c.Query("city"))
		if err != nil {
			return err
		}
		return c.JSON(reading)
	})

	app.Get("/policy", func(c *fiber.Ctx) error {
		advice, err := service.Policy(c.Query("temperature"))
		if err != nil {
			return err
		}
		return c.JSON(advice)
	})

	app.Post("/predict", func(c *fiber.Ctx) error {
		var body predictBody
		if err := body.bind(c.Body()); err != nil {
			return energy.InvalidPredictionInput(err)
		}

		result, err := service.Predict(c.UserContext(), body.toRequest())
		if err != nil {
			return err
		}
		return c.JSON(result)
	})
}

// predictBody uses pointers so a missing field fails validation while 0 is accepted.
// A non-numeric JSON value fails decoding.
type predictBody struct {
	PowerDemand *float64 `json:"power_demand" validate:"required"`
	Temp        *float64 `json:"temp" validate:"required"`
}

func (b *predictBody) bind(raw []byte) error {
	if err := json.Unmarshal(raw, b); err != nil {
		return err
	}
	return validate.Struct(b)
}

func (b predictBody) toRequest() energy.PredictionRequest {
	return energy.PredictionRequest{
		PowerDemand: *b.PowerDemand,
		Temp:        *b.Temp,
	}
}

// ErrorHandler renders every failure as {"error": message}. Upstream detail never reaches
// the client; energy errors carry a client-safe message.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := StatusFor(err)
	msg := energy.ClientMessage(err)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		msg = fe.Message
	}
	return c.Status(code).JSON(fiber.Map{"error": msg})
}

// StatusFor maps a failure kind to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, energy.ErrMissingParameter),
		errors.Is(err, energy.ErrInvalidParameter),
		errors.Is(err, energy.ErrInvalidPeriod):
		return fiber.StatusBadRequest
	case errors.Is(err, energy.ErrUnknownCity):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

func withRequestContext(c *fiber.Ctx) error {
	id, _ := c.Locals(requestIDLocal).(string)
	c.SetUserContext(observe.WithRequestID(c.UserContext(), id))
	return c.Next()
}
