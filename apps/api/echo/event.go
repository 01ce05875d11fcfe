package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/eventsync/core/event"
)

type eventApi struct {
	svc      *event.Service
	validate *validator.Validate
}

func registerEventAPI(e *echo.Echo, s *server) {
	api := eventApi{
		svc:      s.deps.EventSvc,
		validate: s.deps.Validate,
	}

	g := e.Group("/events", s.authMiddleware)
	g.POST("", api.create)
	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	ev, err := api.svc.Create(ctx.Request().Context(), data, principal.ID)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}

	return ctx.JSON(http.StatusCreated, ev)
}

func (api *eventApi) query(ctx echo.Context) error {
	evs, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying events")
	}

	return ctx.JSON(http.StatusOK, evs)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	ev, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) update(ctx echo.Context) error {
	var data event.UpdateEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	ev, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data, principal.ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ev)
}

func (api *eventApi) destroy(ctx echo.Context) error {
	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), principal.ID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
