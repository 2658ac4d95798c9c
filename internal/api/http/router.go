package http

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/messaging-service/internal/api/http/handlers"
	"github.com/spec-kit/messaging-service/internal/auth"
	"github.com/spec-kit/messaging-service/internal/ratelimit"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Users         *handlers.UsersHandler
	Messages      *handlers.MessagesHandler
	Notifications *handlers.NotificationsHandler
	Tokens        auth.TokenVerifier
	Limiter       *ratelimit.Limiter
	Logger        *zap.Logger
}

// RegisterRoutes installs the auth guard and wires HTTP routes. Every route
// is protected unless registered through Public.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) *auth.RouteTable {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	table := auth.NewRouteTable()
	app.Use(auth.NewGuard(cfg.Tokens, table).Handle)

	routes := auth.NewRoutes(app, table)
	routes.Public(fiber.MethodGet, "/health/live", cfg.Health.Live)
	routes.Public(fiber.MethodGet, "/health/ready", cfg.Health.Ready)
	routes.Protected(fiber.MethodGet, "/health/metrics", cfg.Health.Metrics)

	authGroup := routes.Group("/auth")
	authGroup.Public(fiber.MethodPost, "/login", rateLimitMiddleware(cfg.Limiter, "login", logger), cfg.Auth.Login)
	authGroup.Protected(fiber.MethodGet, "/profile", cfg.Auth.Profile)

	users := routes.Group("/users")
	users.Public(fiber.MethodPost, "/signup", rateLimitMiddleware(cfg.Limiter, "signup", logger), cfg.Users.Signup)
	users.Protected(fiber.MethodGet, "/", cfg.Users.Get)
	users.Protected(fiber.MethodPut, "/", cfg.Users.Update)
	users.Protected(fiber.MethodGet, "/status", cfg.Users.Status)
	users.Protected(fiber.MethodGet, "/active", cfg.Users.Active)

	messages := routes.Group("/messages")
	messages.Protected(fiber.MethodPost, "/", cfg.Messages.Send)
	messages.Protected(fiber.MethodGet, "/", cfg.Messages.Received)

	notifications := routes.Group("/notifications")
	notifications.Protected(fiber.MethodGet, "/", cfg.Notifications.ReadAll)

	return table
}
