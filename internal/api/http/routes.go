package httpapi

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/TOLUWALASE007/worldclock/internal/catalog"
	"github.com/TOLUWALASE007/worldclock/internal/cityinfo"
	"github.com/TOLUWALASE007/worldclock/internal/clock"
	"github.com/TOLUWALASE007/worldclock/internal/display"
)

var validate = validator.New()

// Options tunes the HTTP handlers.
type Options struct {
	// ClockInterval is the tick cadence of display streams.
	ClockInterval time.Duration
	// KeepAlive is how often an idle stream sends a comment line.
	KeepAlive time.Duration
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *cityinfo.Service, opts Options) {
	if opts.ClockInterval <= 0 {
		opts.ClockInterval = time.Second
	}
	if opts.KeepAlive <= 0 {
		opts.KeepAlive = 15 * time.Second
	}

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/api/v1")

	v1.Get("/cities", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities":  catalog.Cities(),
			"default": catalog.Default(),
		})
	})

	v1.Get("/clock", func(c *fiber.Ctx) error {
		var q timezoneQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		r := clock.ComputeLocalTime(q.Timezone, time.Now())
		return c.JSON(fiber.Map{
			"reading": r,
			"analog":  clock.Analog(r),
			"digital": clock.Digital(r),
		})
	})

	v1.Get("/clock/zone", func(c *fiber.Ctx) error {
		var q timezoneQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		info, err := service.Zone(c.UserContext(), q.Timezone)
		if err != nil {
			log.Warn().Err(err).Str("timezone", q.Timezone).Msg("zone lookup failed")
			return fiber.NewError(fiber.StatusBadGateway, "time zone lookup failed")
		}
		return c.JSON(info)
	})

	v1.Get("/cities/info", func(c *fiber.Ctx) error {
		var q locationQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		loc := q.toLocation()
		b, err := service.Resolve(c.UserContext(), loc)
		if err != nil {
			log.Error().Err(err).Str("city", loc.Key()).Msg("city bundle unavailable")
			return fiber.NewError(fiber.StatusServiceUnavailable, display.UnavailableMessage)
		}

		return c.JSON(cityInfoResponse{
			Bundle:         b,
			HolidayDisplay: cityinfo.DisplayHolidays(b.Holidays, cityinfo.LocalNow(time.Now(), loc)),
		})
	})

	v1.Get("/holidays", func(c *fiber.Ctx) error {
		var q holidayQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		list, err := service.Holidays(c.UserContext(), cityinfo.Location{City: q.City, Country: q.Country})
		if err != nil {
			return fiber.NewError(fiber.StatusBadGateway, "holiday lookup failed")
		}
		return c.JSON(list)
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		var q locationQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		w, err := service.Weather(c.UserContext(), q.toLocation())
		if err != nil {
			log.Warn().Err(err).Str("city", q.City).Msg("weather lookup failed")
			return fiber.NewError(fiber.StatusBadGateway, "weather lookup failed")
		}
		return c.JSON(w)
	})

	v1.Get("/display/stream", func(c *fiber.Ctx) error {
		var q streamQuery
		if err := bindQuery(c, &q); err != nil {
			return err
		}

		city := catalog.Default()
		if q.Timezone != "" {
			var ok bool
			if city, ok = catalog.ByTimeZone(q.Timezone); !ok {
				return fiber.NewError(fiber.StatusBadRequest, "unknown timezone: "+q.Timezone)
			}
		}
		return streamDisplay(c, service, city, opts)
	})
}

// cityInfoResponse is a bundle plus its holidays ordered for display.
type cityInfoResponse struct {
	*cityinfo.Bundle
	HolidayDisplay cityinfo.HolidayList `json:"holidayDisplay"`
}

type timezoneQuery struct {
	Timezone string `query:"timezone" validate:"required,max=64"`
}

type streamQuery struct {
	Timezone string `query:"timezone" validate:"omitempty,max=64"`
}

// holidayQuery selects a country; city, when given, picks the zone "today"
// is judged in.
type holidayQuery struct {
	City    string `query:"city" validate:"omitempty,max=64"`
	Country string `query:"country" validate:"required,max=64"`
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string `query:"city" validate:"required,max=64"`
	Country string `query:"country" validate:"required,max=64"`
}

func (l locationQuery) toLocation() cityinfo.Location {
	return cityinfo.Location{
		City:    l.City,
		Country: l.Country,
	}
}

// bindQuery parses and validates query parameters, mapping failures to 400.
func bindQuery(c *fiber.Ctx, out interface{}) error {
	if err := c.QueryParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(out); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "invalid query parameter: "+verrs[0].Field())
		}
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}
