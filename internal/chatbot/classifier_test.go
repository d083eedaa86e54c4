package chatbot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

func TestClassify_LoginIssue(t *testing.T) {
	resp := Classify("I can't log in to my account")

	assert.True(t, resp.CreateTicket)
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, "Login Access Issues", resp.TicketData.Subject)
	assert.Equal(t, "authentication", resp.TicketData.Category)
	assert.Equal(t, domain.TicketPriorityHigh, resp.TicketData.Priority)
	assert.Equal(t, `User reported: "I can't log in to my account"`, resp.TicketData.Description)
	assert.Contains(t, resp.Message, "login issues")
}

func TestClassify_AuthenticationKeywords(t *testing.T) {
	for _, msg := range []string{
		"I forgot my PASSWORD",
		"login is broken",
		"I cannot sign in anywhere",
		"need to reset password",
	} {
		t.Run(msg, func(t *testing.T) {
			resp := Classify(msg)
			assert.True(t, resp.CreateTicket)
			require.NotNil(t, resp.TicketData)
			assert.Equal(t, "authentication", resp.TicketData.Category)
			assert.Equal(t, domain.TicketPriorityHigh, resp.TicketData.Priority)
		})
	}
}

func TestClassify_ClaimIssue(t *testing.T) {
	resp := Classify("my claim was denied last week")

	assert.True(t, resp.CreateTicket)
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, "Claim Processing Issue", resp.TicketData.Subject)
	assert.Equal(t, "claims", resp.TicketData.Category)
	assert.Equal(t, domain.TicketPriorityMedium, resp.TicketData.Priority)
}

func TestClassify_InformationalCategories(t *testing.T) {
	t.Run("provider lookup", func(t *testing.T) {
		resp := Classify("How do I find a doctor near me?")
		assert.False(t, resp.CreateTicket)
		assert.Nil(t, resp.TicketData)
		assert.Contains(t, resp.Message, "provider directory")
	})

	t.Run("document upload", func(t *testing.T) {
		resp := Classify("how do I upload a document?")
		assert.False(t, resp.CreateTicket)
		assert.Nil(t, resp.TicketData)
		assert.Contains(t, resp.Message, "upload")
	})
}

func TestClassify_TechnicalIssue(t *testing.T) {
	resp := Classify("the page is not working at all")

	assert.True(t, resp.CreateTicket)
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, "Technical Issue Report", resp.TicketData.Subject)
	assert.Equal(t, "technical", resp.TicketData.Category)
}

func TestClassify_Precedence(t *testing.T) {
	// "issue" also matches the technical rule, but authentication comes
	// first in the table.
	resp := Classify("login issue")
	require.NotNil(t, resp.TicketData)
	assert.Equal(t, "authentication", resp.TicketData.Category)
}

func TestClassify_NoMatchReturnsGreeting(t *testing.T) {
	resp := Classify("hello there")

	assert.False(t, resp.CreateTicket)
	assert.Nil(t, resp.TicketData)
	assert.Equal(t, defaultGreeting, resp.Message)
}

func TestClassify_Deterministic(t *testing.T) {
	first := Classify("my claim was rejected")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("my claim was rejected"))
	}
}
