package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/healthhelpdesk/helpdesk-service/internal/chatbot"
	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
	"github.com/healthhelpdesk/helpdesk-service/internal/events"
	"github.com/healthhelpdesk/helpdesk-service/internal/repository"
	"github.com/healthhelpdesk/helpdesk-service/pkg/util/errorutil"
)

// TriageBot produces an assistant reply for an inbound chat message. It is
// expected to always return a usable response.
type TriageBot interface {
	ProcessMessage(ctx context.Context, message, sessionID string) chatbot.Response
}

// SessionTracker records chat session activity. Tracking is best effort and
// never blocks a chat turn.
type SessionTracker interface {
	TouchSession(ctx context.Context, sessionID string) error
}

// ChatResult bundles the persisted turn pair with the triage outcome.
type ChatResult struct {
	UserMessage  *domain.ChatMessage
	BotMessage   *domain.ChatMessage
	CreateTicket bool
	TicketData   *chatbot.TicketDraft
}

// ChatService persists conversation transcripts and runs the triage
// pipeline for each inbound message.
type ChatService struct {
	messages   repository.ChatMessageRepository
	bot        TriageBot
	sessions   SessionTracker
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewChatService constructs the service. sessions may be nil.
func NewChatService(messages repository.ChatMessageRepository, bot TriageBot, sessions SessionTracker, dispatcher events.Dispatcher, logger *zap.Logger) *ChatService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ChatService{
		messages:   messages,
		bot:        bot,
		sessions:   sessions,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// ProcessChat stores the user turn, triages it, stores the assistant turn
// and returns both together with any ticket suggestion.
func (s *ChatService) ProcessChat(ctx context.Context, sessionID, message string) (*ChatResult, error) {
	details := map[string]any{}
	if strings.TrimSpace(sessionID) == "" {
		details["session_id"] = "Session ID is required"
	}
	if strings.TrimSpace(message) == "" {
		details["message"] = "Message is required"
	}
	if len(details) > 0 {
		return nil, errorutil.NewValidationError("session ID and message are required", details)
	}

	userMsg := &domain.ChatMessage{
		SessionID: sessionID,
		Sender:    domain.SenderUser,
		Message:   message,
	}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, err
	}
	s.trackActivity(ctx, sessionID)
	s.publishMessageEvent(ctx, userMsg)

	botResp := s.bot.ProcessMessage(ctx, message, sessionID)

	botMsg := &domain.ChatMessage{
		SessionID: sessionID,
		Sender:    domain.SenderAgent,
		Message:   botResp.Message,
	}
	if err := s.messages.Create(ctx, botMsg); err != nil {
		return nil, err
	}
	s.publishMessageEvent(ctx, botMsg)

	if botResp.CreateTicket && botResp.TicketData != nil {
		s.publishEvent(ctx, events.Event{
			Type: events.EventTicketSuggested,
			Payload: events.TicketSuggestedPayload{
				SessionID: sessionID,
				Subject:   botResp.TicketData.Subject,
				Category:  botResp.TicketData.Category,
				Priority:  botResp.TicketData.Priority,
			},
		})
	}

	return &ChatResult{
		UserMessage:  userMsg,
		BotMessage:   botMsg,
		CreateTicket: botResp.CreateTicket,
		TicketData:   botResp.TicketData,
	}, nil
}

// History returns the transcript for a session in ascending creation order.
func (s *ChatService) History(ctx context.Context, sessionID string) ([]domain.ChatMessage, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, errorutil.NewValidationError("session ID is required", nil)
	}
	return s.messages.ListBySession(ctx, sessionID)
}

func (s *ChatService) trackActivity(ctx context.Context, sessionID string) {
	if s.sessions == nil {
		return
	}
	if err := s.sessions.TouchSession(ctx, sessionID); err != nil {
		s.logger.Debug("session activity tracking failed", zap.Error(err), zap.String("session_id", sessionID))
	}
}

func (s *ChatService) publishMessageEvent(ctx context.Context, msg *domain.ChatMessage) {
	s.publishEvent(ctx, events.Event{
		Type: events.EventChatMessageAdded,
		Payload: events.ChatMessageAddedPayload{
			SessionID: msg.SessionID,
			MessageID: msg.ID,
			Sender:    msg.Sender,
		},
	})
}

func (s *ChatService) publishEvent(ctx context.Context, event events.Event) {
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
