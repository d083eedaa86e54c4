package domain

import "time"

// ChatSender indicates who authored a chat message.
type ChatSender string

const (
	SenderUser  ChatSender = "user"
	SenderAgent ChatSender = "agent"
)

// ChatMessage is a single turn in a chat session transcript. Messages are
// immutable once created and replay in ascending CreatedAt order.
type ChatMessage struct {
	ID        string
	SessionID string
	Sender    ChatSender
	Message   string
	CreatedAt time.Time
}
