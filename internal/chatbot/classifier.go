package chatbot

import (
	"strings"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// Response is the outcome of triaging one inbound chat message.
type Response struct {
	Message      string       `json:"message"`
	CreateTicket bool         `json:"create_ticket"`
	TicketData   *TicketDraft `json:"ticket_data,omitempty"`
}

// TicketDraft holds candidate ticket fields proposed by triage. It becomes a
// real ticket only after a human confirms it through the ticket form.
type TicketDraft struct {
	Subject     string                `json:"subject"`
	Category    string                `json:"category"`
	Priority    domain.TicketPriority `json:"priority"`
	Description string                `json:"description"`
}

// Classify maps a raw message to a canned reply and optional ticket draft
// using the ordered category rules. It is pure and total, which makes it
// the last-resort fallback when the completion service is unreachable.
func Classify(message string) Response {
	lower := strings.ToLower(message)
	for _, rule := range categoryRules {
		if !containsAny(lower, rule.Keywords) {
			continue
		}
		resp := Response{Message: rule.Reply}
		if rule.Subject != "" {
			resp.CreateTicket = true
			resp.TicketData = &TicketDraft{
				Subject:     rule.Subject,
				Category:    rule.Name,
				Priority:    rule.Priority,
				Description: quoteReport(message),
			}
		}
		return resp
	}
	return Response{Message: defaultGreeting}
}
