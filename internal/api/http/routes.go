package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-finder/internal/store"
	"github.com/i474232898/weather-finder/internal/weather"
)

var validate = validator.New()

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *weather.Service) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather", func(c *fiber.Ctx) error {
		q := searchRequest{Query: c.Query("location")}
		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please enter a location")
		}

		view, err := service.Lookup(c.UserContext(), q.Query)
		if err != nil {
			return viewError(c, view, err)
		}
		return c.JSON(view)
	})

	v1.Post("/sessions", func(c *fiber.Ctx) error {
		id, view, err := service.StartSession(c.UserContext())
		if err != nil {
			return viewError(c, view, err)
		}
		return c.Status(fiber.StatusCreated).JSON(sessionResponse{ID: id, View: view})
	})

	sessions := v1.Group("/sessions")

	sessions.Get("/:id", func(c *fiber.Ctx) error {
		view, err := service.Current(c.Params("id"))
		if err != nil {
			return viewError(c, view, err)
		}
		return c.JSON(view)
	})

	sessions.Delete("/:id", func(c *fiber.Ctx) error {
		if err := service.EndSession(c.Params("id")); err != nil {
			return viewError(c, weather.View{}, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	sessions.Post("/:id/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Please enter a location")
		}

		view, err := service.Search(c.UserContext(), c.Params("id"), req.Query)
		if err != nil {
			return viewError(c, view, err)
		}
		return c.JSON(view)
	})

	sessions.Post("/:id/select", func(c *fiber.Ctx) error {
		var req selectRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		view, err := service.Select(c.UserContext(), c.Params("id"), *req.Index)
		if err != nil {
			return viewError(c, view, err)
		}
		return c.JSON(view)
	})

	sessions.Post("/:id/back", func(c *fiber.Ctx) error {
		view, err := service.Back(c.Params("id"))
		if err != nil {
			return viewError(c, view, err)
		}
		return c.JSON(view)
	})
}

// searchRequest is the body of a search. Blank queries are caught by the orchestrator.
type searchRequest struct {
	Query string `json:"query" validate:"required"`
}

type selectRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

type sessionResponse struct {
	ID   string       `json:"id"`
	View weather.View `json:"view"`
}

// viewError maps service errors to HTTP responses. Conflicts still carry the
// session's current view so clients can re-render.
func viewError(c *fiber.Ctx, view weather.View, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	case errors.Is(err, weather.ErrEmptyQuery):
		return fiber.NewError(fiber.StatusBadRequest, "Please enter a location")
	case errors.Is(err, weather.ErrInvalidCandidate):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, weather.ErrInvalidState), errors.Is(err, weather.ErrSuperseded):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
			"view":    view,
		})
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch weather data")
	}
}
