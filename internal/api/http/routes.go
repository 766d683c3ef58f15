package httpapi

import (
	"errors"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/horizon/internal/quality"
	"github.com/i474232898/horizon/internal/store"
	"github.com/i474232898/horizon/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/quality/params", func(c *fiber.Ctx) error {
		return c.JSON(service.Params())
	})

	v1.Post("/quality", func(c *fiber.Ctx) error {
		var req qualityRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := service.Score(weather.BundleFromHourly(req.Hourly), req.Target)
		if err != nil {
			return toHTTPError(err, "failed to compute quality")
		}
		return c.JSON(report)
	})

	v1.Post("/forecast", func(c *fiber.Ctx) error {
		var req forecastRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		now := time.Now()
		if req.Now != "" {
			ts, err := parseTime(req.Now)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			now = ts
		}

		plan, err := service.Plan(c.UserContext(), req.Forecast, now)
		if err != nil {
			return toHTTPError(err, "failed to plan forecast")
		}
		return c.Status(fiber.StatusCreated).JSON(plan)
	})

	v1.Get("/forecast/latest", func(c *fiber.Ctx) error {
		loc, err := parseLocationQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		plan, err := service.GetLatest(loc)
		if err != nil {
			return toHTTPError(err, "failed to fetch forecast plan")
		}
		return c.JSON(plan)
	})

	v1.Get("/forecast/history", func(c *fiber.Ctx) error {
		var req historyQuery
		if err := req.bind(c); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		plans, err := service.GetRange(req.Location, req.From, req.To)
		if err != nil {
			return toHTTPError(err, "failed to fetch forecast history")
		}

		return c.JSON(fiber.Map{
			"location": req.Location,
			"from":     req.From,
			"to":       req.To,
			"plans":    plans,
		})
	})
}

// ErrorHandler renders every error as a JSON body with the matching status.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// toHTTPError maps domain errors onto status codes. Unknown errors keep
// their detail out of the response.
func toHTTPError(err error, fallback string) error {
	switch {
	case errors.Is(err, quality.ErrInvalidArgument):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrNoUpcomingEvent):
		return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, fallback)
	}
}

type qualityRequest struct {
	Hourly map[string][]float64 `json:"hourly" validate:"required"`
	Target int64                `json:"target" validate:"required"`
}

type forecastRequest struct {
	weather.Forecast
	// Now overrides the planning instant, RFC3339 or unix seconds.
	Now string `json:"now,omitempty"`
}

func parseLocationQuery(c *fiber.Ctx) (weather.Location, error) {
	var loc weather.Location

	latStr, lonStr := c.Query("lat"), c.Query("lon")
	if latStr == "" || lonStr == "" {
		return loc, errors.New("lat and lon query parameters are required")
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return loc, errors.New("invalid lat")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return loc, errors.New("invalid lon")
	}

	loc.Latitude, loc.Longitude = lat, lon
	if err := validate.Struct(loc); err != nil {
		return loc, err
	}
	return loc, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	Location weather.Location
	From     time.Time `validate:"required"`
	To       time.Time `validate:"required,gtefield=From"`
}

func (h *historyQuery) bind(c *fiber.Ctx) error {
	loc, err := parseLocationQuery(c)
	if err != nil {
		return err
	}
	h.Location = loc

	fromStr := c.Query("from")
	toStr := c.Query("to")
	if fromStr == "" || toStr == "" {
		return errors.New("from and to query parameters are required")
	}

	from, err := parseTime(fromStr)
	if err != nil {
		return err
	}
	to, err := parseTime(toStr)
	if err != nil {
		return err
	}

	h.From = from
	h.To = to
	return nil
}

// parseTime tries to parse either RFC3339 or Unix seconds.
func parseTime(s string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return ts, nil
	}
	if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(unix, 0).UTC(), nil
	}
	return time.Time{}, errors.New("invalid time format; use RFC3339 or unix seconds")
}
