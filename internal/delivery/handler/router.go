package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/mhaberler/rikitrakiws/internal/infrastructure"
)

// tokenRequestsPerSecond throttles credential guessing on the token
// endpoint.
const tokenRequestsPerSecond rate.Limit = 5

// Services bundles the per-resource usecases the router mounts.
type Services struct {
	Users    UserService
	Vehicles VehicleService
	Tracks   TrackService
}

// Register wires CORS, both auth strategies and the resource handlers
// onto the echo instance under /api/v1. Index provisioning must have
// completed before this is called.
func Register(e *echo.Echo, tokens *infrastructure.TokenService, svc Services) {
	e.Validator = NewValidator()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, "X-Requested-With", echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	users := NewUserHandler(svc.Users)
	vehicles := NewVehicleHandler(svc.Vehicles)
	tracks := NewTrackHandler(svc.Tracks)
	requireToken := RequireToken(tokens)

	api := e.Group("/api/v1")

	api.GET("/token", users.Token,
		middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(tokenRequestsPerSecond)),
		middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{Validator: users.basicValidator}),
	)
	api.POST("/users", users.Register)
	api.GET("/users/me", users.Me, requireToken)
	api.POST("/users/invite", users.Invite, requireToken)

	api.GET("/vehicles/number", vehicles.Count)
	api.GET("/vehicles/", vehicles.List)
	api.POST("/vehicles", vehicles.Create, requireToken)
	api.DELETE("/vehicles/:name", vehicles.Delete, requireToken)

	api.GET("/tracks/number", tracks.Count)
	api.GET("/tracks/", tracks.List)
	api.GET("/tracks/:trackId", tracks.Get)
	api.GET("/tracks/:trackId/GPX", tracks.GPX)
	api.POST("/tracks", tracks.Create, requireToken)
	api.DELETE("/tracks/:trackId", tracks.Delete, requireToken)
}
