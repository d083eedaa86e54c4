package dto

import (
	"time"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Name        string                `json:"name"`
	Email       string                `json:"email"`
	Subject     string                `json:"subject"`
	Description string                `json:"description"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
}

// UpdateTicketRequest carries a partial overwrite.
type UpdateTicketRequest struct {
	Name        *string                `json:"name"`
	Email       *string                `json:"email"`
	Subject     *string                `json:"subject"`
	Description *string                `json:"description"`
	Category    *string                `json:"category"`
	Priority    *domain.TicketPriority `json:"priority"`
	Status      *string                `json:"status"`
}

// TicketResponse response.
type TicketResponse struct {
	ID           string                `json:"id"`
	TicketNumber string                `json:"ticket_number"`
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Subject      string                `json:"subject"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
	Status       string                `json:"status"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// FromTicket maps the domain entity to its response shape.
func FromTicket(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		Name:         ticket.Name,
		Email:        ticket.Email,
		Subject:      ticket.Subject,
		Description:  ticket.Description,
		Category:     ticket.Category,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}
}
