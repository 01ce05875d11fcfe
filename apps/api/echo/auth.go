package echoapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/campushq/eventsync/core/user"
)

const ctxPrincipalKey = "principal"

var (
	errAuthRequired  = echo.NewHTTPError(http.StatusUnauthorized, "invalid authentication credentials")
	errHTTPForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")
)

// authMiddleware authenticates requests off the Authorization header and
// stashes the resolved principal in the request context.
func (s *server) authMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, err := extractBearerToken(ctx)
		if err != nil {
			return err
		}
		principal, err := s.deps.TokenSvc.Verify(ctx.Request().Context(), token)
		if err != nil {
			if user.IsAuthError(err) {
				return errAuthRequired
			}
			return err
		}
		ctx.Set(ctxPrincipalKey, principal)
		return next(ctx)
	}
}

// adminMiddleware restricts access to admin principals. It must be chained
// after authMiddleware.
func (s *server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		principal, err := getContextPrincipal(ctx)
		if err != nil {
			return err
		}
		if principal.Role != user.RoleAdmin {
			return errHTTPForbidden
		}
		return next(ctx)
	}
}

func extractBearerToken(ctx echo.Context) (string, error) {
	header := ctx.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", errAuthRequired
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errAuthRequired
	}
	return parts[1], nil
}

func getContextPrincipal(ctx echo.Context) (user.Principal, error) {
	principal, ok := ctx.Get(ctxPrincipalKey).(user.Principal)
	if !ok {
		return user.Principal{}, errors.New("principal missing from context")
	}
	return principal, nil
}
