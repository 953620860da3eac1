package httpapi

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-front/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the home page and the city/IP forecast page into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("home", fiber.Map{})
	})

	app.Get("/weather", func(c *fiber.Ctx) error {
		var q weatherQuery
		if err := q.bind(c); err != nil {
			log.Printf("DEBUG: rejected weather query %q: %v", c.Context().QueryArgs().String(), err)
			return redirectHome(c)
		}

		ctx := c.UserContext()

		city := q.City
		if q.IP != "" {
			resolved, err := service.ResolveCity(ctx, q.IP)
			if err != nil {
				log.Printf("ERROR: resolving city for %s: %v", q.IP, err)
				return redirectHome(c)
			}
			city = resolved
		}

		display, err := service.GetForecast(ctx, weather.NormalizeCity(city))
		if err != nil {
			switch {
			case errors.Is(err, weather.ErrCityNotFound):
				return redirectHome(c)
			case errors.Is(err, weather.ErrTransform):
				return err
			default:
				log.Printf("ERROR: forecast for %q: %v", city, err)
				return redirectHome(c)
			}
		}

		return c.Render("weather", fiber.Map{
			"Data":   display,
			"Client": c.IP(),
		})
	})

	// Anything unmatched goes back home.
	app.Use(func(c *fiber.Ctx) error {
		return fiber.ErrNotFound
	})
}

// RegisterFixedCityRoutes serves the forecast of one configured city at "/".
// Every failure, a missing city included, becomes the generic error response.
func RegisterFixedCityRoutes(app *fiber.App, service *weather.Service, city string) {
	normalized := weather.NormalizeCity(city)

	app.Get("/", func(c *fiber.Ctx) error {
		display, err := service.GetForecast(c.UserContext(), normalized)
		if err != nil {
			return err
		}
		return c.Render("weather", fiber.Map{
			"Data": display,
		})
	})
}

// weatherQuery holds the query parameters of the forecast page.
// ip wins over city when both are present.
type weatherQuery struct {
	City string `query:"city" validate:"required_without=IP"`
	IP   string `query:"ip" validate:"omitempty,ip"`
}

func (q *weatherQuery) bind(c *fiber.Ctx) error {
	if err := c.QueryParser(q); err != nil {
		return err
	}
	return validate.Struct(q)
}
