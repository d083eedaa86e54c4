package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/healthhelpdesk/helpdesk-service/internal/api/dto"
	"github.com/healthhelpdesk/helpdesk-service/internal/service"
	"github.com/healthhelpdesk/helpdesk-service/pkg/util/errorutil"
)

// UsersHandler exposes auth endpoints for dashboard accounts.
type UsersHandler struct {
	auth *service.AuthService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(authService *service.AuthService) *UsersHandler {
	return &UsersHandler{auth: authService}
}

// Register handles POST /auth/register.
func (h *UsersHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	user, token, expiresAt, err := h.auth.Register(c.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}

// Login handles POST /auth/login.
func (h *UsersHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	user, token, expiresAt, err := h.auth.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
			},
			"auth": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
		},
	})
}
