package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/mhaberler/rikitrakiws/internal/domain"
	"github.com/mhaberler/rikitrakiws/internal/infrastructure"
)

const (
	principalKey = "username"
	claimsKey    = "claims"
)

// RequireToken guards a route with the bearer strategy. The header
// scheme accepts both "Bearer" and the legacy "JWT" prefix still sent
// by older clients. On success the token subject becomes the request
// principal; any failure short-circuits with 401 before the handler
// runs.
func RequireToken(tokens *infrastructure.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return unauthorized(c, "missing authorization header")
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || (parts[0] != "Bearer" && parts[0] != "JWT") {
				return unauthorized(c, "authorization header format must be Bearer {token}")
			}
			claims, err := tokens.Parse(parts[1])
			if err != nil {
				return unauthorized(c, "invalid or expired token")
			}
			c.Set(principalKey, claims.Subject)
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, description string) error {
	return c.JSON(http.StatusUnauthorized, domain.ErrorResponse{
		Error:       domain.ErrorUnauthorized,
		Description: description,
	})
}

// principal returns the authenticated username stored by either auth
// strategy, empty on unauthenticated routes.
func principal(c echo.Context) string {
	username, _ := c.Get(principalKey).(string)
	return username
}
