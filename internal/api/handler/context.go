package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pulsefeed/social-api/internal/core/domain"
)

// ctxCaller rebuilds the caller identity from the claims injected by the Auth
// middleware. Returns nil for anonymous requests.
func ctxCaller(c echo.Context) *domain.Caller {
	id, _ := c.Get("user_id").(string)
	if id == "" {
		return nil
	}
	username, _ := c.Get("username").(string)
	superuser, _ := c.Get("is_superuser").(bool)
	return &domain.Caller{PublicID: id, Username: username, Superuser: superuser}
}

// requireCaller is the fast-fail variant for routes behind the strict Auth
// middleware: a missing identity there means the middleware did not run.
func requireCaller(c echo.Context) (*domain.Caller, error) {
	caller := ctxCaller(c)
	if caller == nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return caller, nil
}
