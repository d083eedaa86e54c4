package events

import (
	"time"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated    EventType = "ticket_created"
	EventTicketUpdated    EventType = "ticket_updated"
	EventChatMessageAdded EventType = "chat_message_added"
	EventTicketSuggested  EventType = "ticket_suggested"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	TicketID     string                `json:"ticket_id"`
	TicketNumber string                `json:"ticket_number"`
	Category     string                `json:"category"`
	Priority     domain.TicketPriority `json:"priority"`
}

// TicketUpdatedPayload payload.
type TicketUpdatedPayload struct {
	TicketID string `json:"ticket_id"`
	Status   string `json:"status"`
}

// ChatMessageAddedPayload payload.
type ChatMessageAddedPayload struct {
	SessionID string            `json:"session_id"`
	MessageID string            `json:"message_id"`
	Sender    domain.ChatSender `json:"sender"`
}

// TicketSuggestedPayload is emitted when triage proposes a ticket draft for
// a chat session.
type TicketSuggestedPayload struct {
	SessionID string                `json:"session_id"`
	Subject   string                `json:"subject"`
	Category  string                `json:"category"`
	Priority  domain.TicketPriority `json:"priority"`
}
