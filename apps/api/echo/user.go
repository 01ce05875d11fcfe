package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/eventsync/core/user"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	TokenResponse struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}

	SuccessResponse struct {
		Message string `json:"message"`
	}

	authApi struct {
		svc        user.Service
		tokenSvc   user.TokenService
		validate   *validator.Validate
		translator ut.Translator
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

func registerAuthAPI(e *echo.Echo, s *server) {
	api := authApi{
		svc:        s.deps.UserSvc,
		tokenSvc:   s.deps.TokenSvc,
		validate:   s.deps.Validate,
		translator: s.deps.Translator,
	}

	g := e.Group("/auth")

	// un-authed endpoints
	g.POST("/register", api.register)
	g.POST("/login", api.login)
	g.POST("/logout", api.logout)

	// authed endpoints
	ag := g.Group("", s.authMiddleware)
	ag.GET("/me", api.me)
	ag.GET("/:id", api.retrieve)
	ag.DELETE("/:id", api.destroy)
}

// Handlers

func (api *authApi) register(ctx echo.Context) error {
	var data user.NewUser
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUser")
	}
	if err := data.Validate(ctx.Request().Context(), api.validate, api.svc); err != nil {
		return err
	}

	usr, err := api.svc.Register(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "registering user")
	}

	return ctx.JSON(http.StatusCreated, usr.Public())
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.Authenticate(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return err
	}
	token, err := api.tokenSvc.Issue(ctx.Request().Context(), usr)
	if err != nil {
		return errors.Wrap(err, "issuing token")
	}

	return ctx.JSON(http.StatusOK, TokenResponse{AccessToken: token, TokenType: "bearer"})
}

// logout revokes the presented token. It succeeds even for tokens that are
// expired, malformed or already revoked.
func (api *authApi) logout(ctx echo.Context) error {
	token, err := extractBearerToken(ctx)
	if err != nil {
		return err
	}
	if err := api.tokenSvc.Revoke(ctx.Request().Context(), token); err != nil {
		return errors.Wrap(err, "revoking token")
	}

	return ctx.JSON(http.StatusOK, SuccessResponse{Message: "logged out successfully"})
}

func (api *authApi) me(ctx echo.Context) error {
	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	usr, err := api.svc.GetByID(ctx.Request().Context(), principal.ID)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *authApi) retrieve(ctx echo.Context) error {
	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	if principal.ID != ctx.Param("id") {
		return errHTTPForbidden
	}
	usr, err := api.svc.GetByID(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, usr.Public())
}

func (api *authApi) destroy(ctx echo.Context) error {
	principal, err := getContextPrincipal(ctx)
	if err != nil {
		return err
	}
	id := ctx.Param("id")
	if principal.ID != id {
		return errHTTPForbidden
	}
	if err := api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return err
	}

	return ctx.NoContent(http.StatusNoContent)
}
