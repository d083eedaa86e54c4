package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhelpdesk/helpdesk-service/internal/chatbot"
	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
	"github.com/healthhelpdesk/helpdesk-service/internal/repository"
)

// stubBot replays a fixed triage response and records what it was asked.
type stubBot struct {
	resp     chatbot.Response
	messages []string
}

func (b *stubBot) ProcessMessage(_ context.Context, message, _ string) chatbot.Response {
	b.messages = append(b.messages, message)
	return b.resp
}

type recordingTracker struct {
	sessions []string
	err      error
}

func (t *recordingTracker) TouchSession(_ context.Context, sessionID string) error {
	t.sessions = append(t.sessions, sessionID)
	return t.err
}

func TestProcessChat_PersistsBothTurns(t *testing.T) {
	repo := repository.NewMemoryChatMessageRepository()
	bot := &stubBot{resp: chatbot.Response{Message: "How can I help?"}}
	svc := NewChatService(repo, bot, nil, nil, nil)

	result, err := svc.ProcessChat(context.Background(), "session-1", "hello")
	require.NoError(t, err)

	require.NotNil(t, result.UserMessage)
	assert.Equal(t, domain.SenderUser, result.UserMessage.Sender)
	assert.Equal(t, "hello", result.UserMessage.Message)
	assert.NotEmpty(t, result.UserMessage.ID)

	require.NotNil(t, result.BotMessage)
	assert.Equal(t, domain.SenderAgent, result.BotMessage.Sender)
	assert.Equal(t, "How can I help?", result.BotMessage.Message)

	assert.Equal(t, []string{"hello"}, bot.messages)

	history, err := svc.History(context.Background(), "session-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, domain.SenderUser, history[0].Sender)
	assert.Equal(t, domain.SenderAgent, history[1].Sender)
}

func TestProcessChat_Validation(t *testing.T) {
	svc := NewChatService(repository.NewMemoryChatMessageRepository(), &stubBot{}, nil, nil, nil)

	t.Run("missing session", func(t *testing.T) {
		_, err := svc.ProcessChat(context.Background(), "  ", "hello")
		require.Error(t, err)
		domainErr := asDomainError(t, err)
		assert.Equal(t, "VALIDATION_FAILED", domainErr.Code)
		assert.Equal(t, "Session ID is required", domainErr.Details["session_id"])
	})

	t.Run("missing message", func(t *testing.T) {
		_, err := svc.ProcessChat(context.Background(), "session-1", "")
		require.Error(t, err)
		domainErr := asDomainError(t, err)
		assert.Equal(t, "Message is required", domainErr.Details["message"])
	})

	t.Run("both missing", func(t *testing.T) {
		_, err := svc.ProcessChat(context.Background(), "", "")
		require.Error(t, err)
		assert.Len(t, asDomainError(t, err).Details, 2)
	})
}

func TestProcessChat_SurfacesTicketSuggestion(t *testing.T) {
	bot := &stubBot{resp: chatbot.Response{
		Message:      "I've prepared a ticket for you.",
		CreateTicket: true,
		TicketData: &chatbot.TicketDraft{
			Subject:     "Login Access Issues",
			Category:    "authentication",
			Priority:    domain.TicketPriorityHigh,
			Description: `User reported: "I can't log in"`,
		},
	}}
	svc := NewChatService(repository.NewMemoryChatMessageRepository(), bot, nil, nil, nil)

	result, err := svc.ProcessChat(context.Background(), "session-1", "I can't log in")
	require.NoError(t, err)

	assert.True(t, result.CreateTicket)
	require.NotNil(t, result.TicketData)
	assert.Equal(t, "Login Access Issues", result.TicketData.Subject)
	assert.Equal(t, domain.TicketPriorityHigh, result.TicketData.Priority)
}

func TestProcessChat_SessionTracking(t *testing.T) {
	t.Run("tracked per turn", func(t *testing.T) {
		tracker := &recordingTracker{}
		svc := NewChatService(repository.NewMemoryChatMessageRepository(), &stubBot{resp: chatbot.Response{Message: "ok"}}, tracker, nil, nil)

		_, err := svc.ProcessChat(context.Background(), "session-1", "hello")
		require.NoError(t, err)
		assert.Equal(t, []string{"session-1"}, tracker.sessions)
	})

	t.Run("tracker failure does not fail the turn", func(t *testing.T) {
		tracker := &recordingTracker{err: errors.New("redis down")}
		svc := NewChatService(repository.NewMemoryChatMessageRepository(), &stubBot{resp: chatbot.Response{Message: "ok"}}, tracker, nil, nil)

		result, err := svc.ProcessChat(context.Background(), "session-1", "hello")
		require.NoError(t, err)
		assert.NotNil(t, result.BotMessage)
	})
}

func TestHistory(t *testing.T) {
	repo := repository.NewMemoryChatMessageRepository()
	svc := NewChatService(repo, &stubBot{resp: chatbot.Response{Message: "ok"}}, nil, nil, nil)

	t.Run("isolated per session", func(t *testing.T) {
		_, err := svc.ProcessChat(context.Background(), "session-a", "first")
		require.NoError(t, err)
		_, err = svc.ProcessChat(context.Background(), "session-b", "other")
		require.NoError(t, err)
		_, err = svc.ProcessChat(context.Background(), "session-a", "second")
		require.NoError(t, err)

		history, err := svc.History(context.Background(), "session-a")
		require.NoError(t, err)
		require.Len(t, history, 4)
		assert.Equal(t, "first", history[0].Message)
		assert.Equal(t, "second", history[2].Message)
		for i := 1; i < len(history); i++ {
			assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt))
		}
	})

	t.Run("unknown session is empty", func(t *testing.T) {
		history, err := svc.History(context.Background(), "session-z")
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("blank session rejected", func(t *testing.T) {
		_, err := svc.History(context.Background(), " ")
		require.Error(t, err)
		assert.Equal(t, "VALIDATION_FAILED", asDomainError(t, err).Code)
	})
}
