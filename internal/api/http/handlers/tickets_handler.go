package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/healthhelpdesk/helpdesk-service/internal/api/dto"
	"github.com/healthhelpdesk/helpdesk-service/internal/service"
	"github.com/healthhelpdesk/helpdesk-service/pkg/util/errorutil"
)

// TicketsHandler manages ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /api/tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.CreateTicket(c.Context(), service.TicketCreateInput{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// ListTickets GET /api/tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return errorutil.NewValidationError("invalid limit", nil)
		}
		limit = parsed
	}

	tickets, err := h.service.ListTickets(c.Context(), limit)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.FromTicket(&tickets[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /api/tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// GetTicketByNumber GET /api/tickets/number/:ticketNumber.
func (h *TicketsHandler) GetTicketByNumber(c *fiber.Ctx) error {
	ticket, err := h.service.GetTicketByNumber(c.Context(), c.Params("ticketNumber"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}

// UpdateTicket PUT /api/tickets/:id.
func (h *TicketsHandler) UpdateTicket(c *fiber.Ctx) error {
	var req dto.UpdateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.service.UpdateTicket(c.Context(), c.Params("id"), service.TicketUpdateInput{
		Name:        req.Name,
		Email:       req.Email,
		Subject:     req.Subject,
		Description: req.Description,
		Category:    req.Category,
		Priority:    req.Priority,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.FromTicket(ticket)})
}
