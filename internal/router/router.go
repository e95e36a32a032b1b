package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"gatherly/internal/auth"
	"gatherly/internal/config"
	apperrors "gatherly/internal/errors"
	"gatherly/internal/handler"
	"gatherly/internal/model"
)

// Register wires routes and middleware. Authorization is decided here, at the
// boundary: services never look at roles.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	eventHandler *handler.EventHandler,
	rsvpHandler *handler.RsvpHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", healthHandler.Check)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes, rate limited per IP
	public := api.Group("", middleware.RateLimiter(
		middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.RateLimitRPS)),
	))
	public.POST("/auth/register", authHandler.Register)
	public.POST("/auth/login", authHandler.Login)
	public.POST("/auth/refresh", authHandler.Refresh)
	public.POST("/auth/logout", authHandler.Logout)
	public.GET("/events", eventHandler.List)
	public.GET("/events/:id", eventHandler.Get)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))

	secured.GET("/me", authHandler.GetProfile)
	secured.PUT("/me", authHandler.UpdateProfile)

	// RSVP routes
	secured.POST("/rsvps", rsvpHandler.Upsert)
	secured.GET("/rsvps", rsvpHandler.ListMine)
	secured.GET("/rsvps/stats", rsvpHandler.Stats)
	secured.GET("/rsvps/:event_id", rsvpHandler.GetForEvent)
	secured.DELETE("/rsvps/:event_id", rsvpHandler.Delete)

	secured.GET("/events/mine", eventHandler.ListMine)

	// Admin routes
	admin := secured.Group("", RequireRole(model.RoleAdmin))
	admin.POST("/events", eventHandler.Create)
	admin.PUT("/events/:id", eventHandler.Update)
	admin.DELETE("/events/:id", eventHandler.Delete)
	admin.GET("/events/:id/rsvps", eventHandler.RsvpSummary)
	admin.GET("/users", userHandler.List)
	admin.DELETE("/users/:id", userHandler.Delete)
}

// RequireRole rejects requests whose token role is not in the allowed set.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			for _, role := range roles {
				if claims.Role == role {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, apperrors.ErrorResponse{
				Error: "insufficient permissions",
				Code:  "FORBIDDEN",
			})
		}
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
