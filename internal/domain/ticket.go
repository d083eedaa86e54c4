package domain

import "time"

// TicketPriority enumerates urgency levels accepted on tickets.
type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

// ValidPriority reports whether p is one of the three accepted values.
func ValidPriority(p TicketPriority) bool {
	return p == TicketPriorityLow || p == TicketPriorityMedium || p == TicketPriorityHigh
}

// TicketStatusOpen is assigned to every new ticket. Status is otherwise
// free-form text overwritten directly by updates.
const TicketStatusOpen = "open"

// Ticket is the aggregate for support requests. TicketNumber is assigned
// once at creation and never changes.
type Ticket struct {
	ID           string
	TicketNumber string
	Name         string
	Email        string
	Subject      string
	Description  string
	Category     string
	Priority     TicketPriority
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
