package chatbot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhelpdesk/helpdesk-service/internal/config"
	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// fakeClient replays a canned reply or error for each call.
type fakeClient struct {
	reply string
	err   error
	calls int
	opts  CompletionOptions
}

func (f *fakeClient) Complete(_ context.Context, _, _ string, opts CompletionOptions) (string, error) {
	f.calls++
	f.opts = opts
	return f.reply, f.err
}

func newTestGateway(client CompletionClient) *Gateway {
	cfg := config.OpenAIConfig{Model: "gpt-4o", MaxTokens: 500, Temperature: 0.7}
	return NewGateway(cfg, func(string) CompletionClient { return client }, nil)
}

func TestGatewayComplete_ExplicitTicket(t *testing.T) {
	client := &fakeClient{reply: `{
		"message": "I can help escalate that.",
		"create_ticket": true,
		"ticket_data": {
			"subject": "Portal outage",
			"category": "technical",
			"priority": "high",
			"description": "Portal unreachable since this morning"
		}
	}`}

	resp, err := newTestGateway(client).Complete(context.Background(), "the portal is down", "key")
	require.NoError(t, err)

	assert.Equal(t, "I can help escalate that.", resp.Message)
	assert.True(t, resp.CreateTicket)
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, "Portal outage", resp.TicketData.Subject)
	assert.Equal(t, "technical", resp.TicketData.Category)
	assert.Equal(t, domain.TicketPriorityHigh, resp.TicketData.Priority)
	assert.Equal(t, "Portal unreachable since this morning", resp.TicketData.Description)

	assert.True(t, client.opts.JSONMode)
	assert.Equal(t, "gpt-4o", client.opts.Model)
}

func TestGatewayComplete_InvalidPriorityClamped(t *testing.T) {
	client := &fakeClient{reply: `{
		"message": "Escalating.",
		"create_ticket": true,
		"ticket_data": {"subject": "Billing dispute", "priority": "urgent"}
	}`}

	resp, err := newTestGateway(client).Complete(context.Background(), "billing is wrong", "key")
	require.NoError(t, err)
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, domain.TicketPriorityMedium, resp.TicketData.Priority)
	assert.Equal(t, "general", resp.TicketData.Category)
	assert.Equal(t, `User reported: "billing is wrong"`, resp.TicketData.Description)
}

func TestGatewayComplete_TicketWithoutPayload(t *testing.T) {
	client := &fakeClient{reply: `{"message": "Let me file that for you.", "create_ticket": true}`}

	resp, err := newTestGateway(client).Complete(context.Background(), "something is off", "key")
	require.NoError(t, err)
	assert.True(t, resp.CreateTicket)
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, "Support Request", resp.TicketData.Subject)
	assert.Equal(t, "general", resp.TicketData.Category)
	assert.Equal(t, domain.TicketPriorityMedium, resp.TicketData.Priority)
}

func TestGatewayComplete_ExplicitDeclineHonored(t *testing.T) {
	client := &fakeClient{reply: `{"message": "No ticket needed, here is the answer.", "create_ticket": false}`}

	// Even though "login" would match the keyword table, the explicit
	// decline from the model wins.
	resp, err := newTestGateway(client).Complete(context.Background(), "where is the login page", "key")
	require.NoError(t, err)
	assert.False(t, resp.CreateTicket)
	assert.Nil(t, resp.TicketData)
}

func TestGatewayComplete_SilentReplyFallsBackToRules(t *testing.T) {
	t.Run("ticket category", func(t *testing.T) {
		client := &fakeClient{reply: `{"message": "Sorry to hear that."}`}

		resp, err := newTestGateway(client).Complete(context.Background(), "my password reset fails", "key")
		require.NoError(t, err)
		assert.Equal(t, "Sorry to hear that.", resp.Message)
		assert.True(t, resp.CreateTicket)
		require.NotNil(t, resp.TicketData)
		assert.Equal(t, "authentication", resp.TicketData.Category)
	})

	t.Run("informational category", func(t *testing.T) {
		client := &fakeClient{reply: `{"message": "Here is how to find a doctor."}`}

		resp, err := newTestGateway(client).Complete(context.Background(), "find a doctor please", "key")
		require.NoError(t, err)
		assert.False(t, resp.CreateTicket)
		assert.Nil(t, resp.TicketData)
	})

	t.Run("no keyword match", func(t *testing.T) {
		client := &fakeClient{reply: `{"message": "Happy to help."}`}

		resp, err := newTestGateway(client).Complete(context.Background(), "thanks a lot", "key")
		require.NoError(t, err)
		assert.False(t, resp.CreateTicket)
	})
}

func TestGatewayComplete_MissingMessageUsesGreeting(t *testing.T) {
	client := &fakeClient{reply: `{"create_ticket": false}`}

	resp, err := newTestGateway(client).Complete(context.Background(), "hi", "key")
	require.NoError(t, err)
	assert.Equal(t, defaultGreeting, resp.Message)
}

func TestGatewayComplete_MalformedReplyRecovered(t *testing.T) {
	for _, reply := range []string{"not json at all", `{"message": truncated`, ""} {
		t.Run(reply, func(t *testing.T) {
			client := &fakeClient{reply: reply}

			resp, err := newTestGateway(client).Complete(context.Background(), "hello", "key")
			require.NoError(t, err)
			assert.Equal(t, parseTroubleMessage, resp.Message)
			assert.False(t, resp.CreateTicket)
		})
	}
}

func TestGatewayComplete_UpstreamErrorPropagates(t *testing.T) {
	upstream := &UpstreamError{StatusCode: 429, Code: quotaErrorCode}
	client := &fakeClient{err: upstream}

	_, err := newTestGateway(client).Complete(context.Background(), "hello", "key")
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, 1, client.calls)
}
