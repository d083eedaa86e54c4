package dto

import (
	"time"

	"github.com/healthhelpdesk/helpdesk-service/internal/chatbot"
	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// ChatRequest payload for an inbound chat turn.
type ChatRequest struct {
	SessionID string `json:"session_id"`
	Message   string `json:"message"`
}

// ChatMessageResponse represents one transcript entry.
type ChatMessageResponse struct {
	ID        string            `json:"id"`
	SessionID string            `json:"session_id"`
	Sender    domain.ChatSender `json:"sender"`
	Message   string            `json:"message"`
	CreatedAt time.Time         `json:"created_at"`
}

// ChatResponse bundles the stored turn pair with the triage outcome.
type ChatResponse struct {
	UserMessage  ChatMessageResponse  `json:"user_message"`
	BotMessage   ChatMessageResponse  `json:"bot_message"`
	CreateTicket bool                 `json:"create_ticket"`
	TicketData   *chatbot.TicketDraft `json:"ticket_data,omitempty"`
}

// FromChatMessage maps the domain entity to its response shape.
func FromChatMessage(msg *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        msg.ID,
		SessionID: msg.SessionID,
		Sender:    msg.Sender,
		Message:   msg.Message,
		CreatedAt: msg.CreatedAt,
	}
}
