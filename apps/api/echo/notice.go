package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/eventsync/core/notice"
)

type noticeApi struct {
	svc      *notice.Service
	validate *validator.Validate
}

func registerNoticeAPI(e *echo.Echo, s *server) {
	api := noticeApi{
		svc:      s.deps.NoticeSvc,
		validate: s.deps.Validate,
	}

	g := e.Group("/notices", s.authMiddleware)
	g.POST("", api.create)
	g.GET("", api.query)
	g.GET("/:id", api.retrieve)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *noticeApi) create(ctx echo.Context) error {
	var data notice.NewNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewNotice")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	n, err := api.svc.Create(ctx.Request().Context(), data, principal.ID)
	if err != nil {
		return errors.Wrap(err, "creating notice")
	}

	return ctx.JSON(http.StatusCreated, n)
}

func (api *noticeApi) query(ctx echo.Context) error {
	notices, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying notices")
	}

	return ctx.JSON(http.StatusOK, notices)
}

func (api *noticeApi) retrieve(ctx echo.Context) error {
	n, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, n)
}

func (api *noticeApi) update(ctx echo.Context) error {
	var data notice.UpdateNotice
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateNotice")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	n, err := api.svc.Update(ctx.Request().Context(), ctx.Param("id"), data, principal.ID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, n)
}

func (api *noticeApi) destroy(ctx echo.Context) error {
	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(ctx.Request().Context(), ctx.Param("id"), principal.ID); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
