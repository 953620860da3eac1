package httpapi

import (
	"errors"
	"log"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/i474232898/weather-front/internal/weather"
	"github.com/i474232898/weather-front/web"
)

// ProcessTimeHeader carries the seconds spent handling a request.
const ProcessTimeHeader = "X-Process-Time"

// Options selects which site the app serves.
type Options struct {
	// FixedCity serves a single-city page at "/" when set.
	FixedCity string
	// AccessLog enables the fiber request logger.
	AccessLog bool
}

// NewApp builds the fiber application with middleware, views and routes.
func NewApp(opts Options, service *weather.Service) *fiber.App {
	errorHandler := genericErrorHandler
	if opts.FixedCity == "" {
		errorHandler = redirectErrorHandler
	}

	app := fiber.New(fiber.Config{
		AppName:               "weather-front",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		Views:                 web.Engine(),
		ErrorHandler:          errorHandler,
	})

	// Global middleware
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(processTime())
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}?${queryParams}\n",
		}))
	}
	app.Use(recover.New())

	app.Use("/static", filesystem.New(filesystem.Config{Root: web.Static()}))

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-front",
		})
	})

	if opts.FixedCity != "" {
		RegisterFixedCityRoutes(app, service, opts.FixedCity)
	} else {
		RegisterRoutes(app, service)
	}

	return app
}

// processTime sets ProcessTimeHeader on every response, error responses included.
func processTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		if err := c.Next(); err != nil {
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		c.Set(ProcessTimeHeader, strconv.FormatFloat(time.Since(start).Seconds(), 'f', -1, 64))
		return nil
	}
}

// redirectErrorHandler sends routing and HTTP errors back to the home page.
// Transform failures get the generic failure response instead of a redirect.
func redirectErrorHandler(c *fiber.Ctx, err error) error {
	if errors.Is(err, weather.ErrTransform) {
		return genericErrorHandler(c, err)
	}
	var e *fiber.Error
	if errors.As(err, &e) {
		log.Printf("DEBUG: %s %s -> %d, redirecting home", c.Method(), c.OriginalURL(), e.Code)
	} else {
		log.Printf("ERROR: %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return redirectHome(c)
}

// genericErrorHandler is the centralized error response.
func genericErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "weather data unavailable"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	} else {
		log.Printf("ERROR: %s %s: %v", c.Method(), c.OriginalURL(), err)
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}

func redirectHome(c *fiber.Ctx) error {
	return c.Redirect("/", fiber.StatusTemporaryRedirect)
}
