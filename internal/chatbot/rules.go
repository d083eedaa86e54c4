package chatbot

import (
	"strings"

	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

// CategoryRule maps substring keywords to a triage outcome. A rule with an
// empty Subject is informational only and never produces a ticket draft.
type CategoryRule struct {
	Name     string
	Keywords []string
	Subject  string
	Priority domain.TicketPriority
	Reply    string
}

const defaultGreeting = "I'm here to help with your healthcare questions. How can I assist you today?"

// categoryRules is the ordered triage table shared by the keyword classifier
// and the completion gateway's reconciliation step. First match wins.
var categoryRules = []CategoryRule{
	{
		Name:     "authentication",
		Keywords: []string{"login", "password", "account access", "sign in", "can't log in", "cannot sign in", "reset password"},
		Subject:  "Login Access Issues",
		Priority: domain.TicketPriorityHigh,
		Reply:    "I understand you're having login issues. I can help create a ticket for our technical team to assist you. Could you please provide your email address so we can follow up?",
	},
	{
		Name:     "claims",
		Keywords: []string{"claim", "denied", "rejected", "not covered", "bill", "reimbursement"},
		Subject:  "Claim Processing Issue",
		Priority: domain.TicketPriorityMedium,
		Reply:    "I'm sorry to hear about your claim issue. Let me create a ticket for our claims department to look into this. Could you please provide your name and email address so we can follow up with you?",
	},
	{
		Name:     "documentation",
		Keywords: []string{"upload", "document", "file", "attachment", "paperwork"},
		Reply:    "To upload documents, go to 'My Account' > 'Documents' > 'Upload New'. You can upload files up to 10MB in PDF, JPG, or PNG format. Would you like me to create a ticket for additional assistance with document uploads?",
	},
	{
		Name:     "providers",
		Keywords: []string{"doctor", "provider", "specialist", "hospital", "clinic", "in-network"},
		Reply:    "To find in-network providers, you can use our provider directory by clicking on 'Find a Provider' in the main menu. Would you like me to create a ticket if you need more specific help with finding providers?",
	},
	{
		Name:     "technical",
		Keywords: []string{"error", "problem", "not working", "issue", "bug", "glitch"},
		Subject:  "Technical Issue Report",
		Priority: domain.TicketPriorityMedium,
		Reply:    "I'm sorry you're experiencing technical difficulties. I'll create a support ticket for our technical team to investigate this issue. Could you please provide your email address for follow-up?",
	},
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func quoteReport(message string) string {
	return `User reported: "` + message + `"`
}
