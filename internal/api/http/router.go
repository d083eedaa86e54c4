package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthhelpdesk/helpdesk-service/internal/api/http/handlers"
	"github.com/healthhelpdesk/helpdesk-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Tickets        *handlers.TicketsHandler
	Chat           *handlers.ChatHandler
	Users          *handlers.UsersHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	api := app.Group("/api")

	api.Post("/tickets", cfg.Tickets.CreateTicket)
	api.Get("/tickets", cfg.Tickets.ListTickets)
	api.Get("/tickets/number/:ticketNumber", cfg.Tickets.GetTicketByNumber)
	api.Get("/tickets/:id", cfg.Tickets.GetTicket)
	api.Put("/tickets/:id", cfg.AuthMiddleware.Handle, cfg.Tickets.UpdateTicket)

	api.Post("/chat", cfg.Chat.PostMessage)
	api.Get("/chat/:sessionId", cfg.Chat.GetHistory)
}
