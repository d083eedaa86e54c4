package service

import (
	"context"
	"fmt"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
	"github.com/healthhelpdesk/helpdesk-service/internal/events"
	"github.com/healthhelpdesk/helpdesk-service/internal/repository"
	"github.com/healthhelpdesk/helpdesk-service/pkg/util/errorutil"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const ticketNumberAttempts = 5

// TicketService coordinates ticket workflows.
type TicketService struct {
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{tickets: tickets, dispatcher: dispatcher}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Name        string
	Email       string
	Subject     string
	Description string
	Category    string
	Priority    domain.TicketPriority
}

// TicketUpdateInput carries a partial overwrite; nil fields are untouched.
type TicketUpdateInput struct {
	Name        *string
	Email       *string
	Subject     *string
	Description *string
	Category    *string
	Priority    *domain.TicketPriority
	Status      *string
}

// CreateTicket validates the input, assigns a ticket number and the open
// status, and persists the ticket. Caller-supplied status is ignored.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	if err := validateCreate(input); err != nil {
		return nil, err
	}

	ticketNumber, err := s.allocateTicketNumber(ctx)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		TicketNumber: ticketNumber,
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Subject:      strings.TrimSpace(input.Subject),
		Description:  strings.TrimSpace(input.Description),
		Category:     strings.TrimSpace(input.Category),
		Priority:     input.Priority,
		Status:       domain.TicketStatusOpen,
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketCreated,
		Payload: events.TicketCreatedPayload{
			TicketID:     ticket.ID,
			TicketNumber: ticket.TicketNumber,
			Category:     ticket.Category,
			Priority:     ticket.Priority,
		},
	})
	return ticket, nil
}

// ListTickets returns tickets newest first; a positive limit truncates.
func (s *TicketService) ListTickets(ctx context.Context, limit int) ([]domain.Ticket, error) {
	return s.tickets.List(ctx, limit)
}

// GetTicket fetches a ticket by id.
func (s *TicketService) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errorutil.NewNotFound("ticket", map[string]any{"id": id})
	}
	return ticket, nil
}

// GetTicketByNumber fetches a ticket by its generated number.
func (s *TicketService) GetTicketByNumber(ctx context.Context, ticketNumber string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByNumber(ctx, ticketNumber)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errorutil.NewNotFound("ticket", map[string]any{"ticket_number": ticketNumber})
	}
	return ticket, nil
}

// UpdateTicket merges the supplied fields into an existing ticket. The
// ticket number is immutable; updated_at is always refreshed.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, input TicketUpdateInput) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ticket == nil {
		return nil, errorutil.NewNotFound("ticket", map[string]any{"id": id})
	}

	if input.Priority != nil && !domain.ValidPriority(*input.Priority) {
		return nil, errorutil.NewValidationError("invalid priority", map[string]any{
			"priority": "must be low, medium, or high",
		})
	}

	if input.Name != nil {
		ticket.Name = *input.Name
	}
	if input.Email != nil {
		ticket.Email = *input.Email
	}
	if input.Subject != nil {
		ticket.Subject = *input.Subject
	}
	if input.Description != nil {
		ticket.Description = *input.Description
	}
	if input.Category != nil {
		ticket.Category = *input.Category
	}
	if input.Priority != nil {
		ticket.Priority = *input.Priority
	}
	if input.Status != nil {
		ticket.Status = *input.Status
	}

	if err := s.tickets.Update(ctx, ticket); err != nil {
		if err == repository.ErrNotFound {
			return nil, errorutil.NewNotFound("ticket", map[string]any{"id": id})
		}
		return nil, err
	}
	s.publishEvent(ctx, events.Event{
		Type: events.EventTicketUpdated,
		Payload: events.TicketUpdatedPayload{
			TicketID: ticket.ID,
			Status:   ticket.Status,
		},
	})
	return ticket, nil
}

// allocateTicketNumber draws random HD-#### candidates, retrying on
// collision with an existing ticket. The 4-digit space is small, so the
// retry bound keeps creation from spinning once the space fills up.
func (s *TicketService) allocateTicketNumber(ctx context.Context) (string, error) {
	for i := 0; i < ticketNumberAttempts; i++ {
		candidate := fmt.Sprintf("HD-%04d", rand.Intn(10000))
		existing, err := s.tickets.GetByNumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return candidate, nil
		}
	}
	return "", errorutil.NewConflict("could not allocate a unique ticket number", nil)
}

func validateCreate(input TicketCreateInput) error {
	details := map[string]any{}
	if strings.TrimSpace(input.Name) == "" {
		details["name"] = "Name is required"
	}
	if !emailPattern.MatchString(strings.TrimSpace(input.Email)) {
		details["email"] = "Invalid email address"
	}
	if len(strings.TrimSpace(input.Subject)) < 5 {
		details["subject"] = "Subject must be at least 5 characters"
	}
	if len(strings.TrimSpace(input.Description)) < 10 {
		details["description"] = "Description must be at least 10 characters"
	}
	if strings.TrimSpace(input.Category) == "" {
		details["category"] = "Category is required"
	}
	if !domain.ValidPriority(input.Priority) {
		details["priority"] = "Priority must be low, medium, or high"
	}
	if len(details) > 0 {
		return errorutil.NewValidationError("ticket validation failed", details)
	}
	return nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
