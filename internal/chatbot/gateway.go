package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/healthhelpdesk/helpdesk-service/internal/config"
	"github.com/healthhelpdesk/helpdesk-service/internal/domain"
)

const systemPrompt = `You are HealthBot, an intelligent healthcare support assistant for the helpdesk.
Your role is to help users with healthcare-related questions and support issues.

When responding, follow these guidelines:
1. Be polite, professional, and empathetic
2. For simple queries about documentation, providers, or general healthcare information, provide direct helpful answers
3. For technical issues, login problems, or claim disputes, suggest creating a support ticket
4. If you determine a ticket should be created, include appropriate ticket data in your response

Your goal is to resolve simple issues directly and escalate complex issues to human agents via the ticketing system.`

const parseTroubleMessage = "I'm having trouble processing your request. Could you please try again?"

// Gateway calls the completion service and turns its loosely structured JSON
// reply into a well-formed Response. Credential fallback is owned by the
// orchestrator; the gateway runs exactly one attempt per call.
type Gateway struct {
	factory ClientFactory
	cfg     config.OpenAIConfig
	logger  *zap.Logger
}

// NewGateway constructs a gateway. A nil factory defaults to the go-openai
// backed client.
func NewGateway(cfg config.OpenAIConfig, factory ClientFactory, logger *zap.Logger) *Gateway {
	if factory == nil {
		factory = NewOpenAIClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gateway{factory: factory, cfg: cfg, logger: logger}
}

// Complete runs one completion attempt with the given credential and returns
// a well-formed Response, or a typed upstream failure. A malformed reply
// from the model is recovered locally and never propagates to the caller.
func (g *Gateway) Complete(ctx context.Context, message, apiKey string) (Response, error) {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.RequestTimeout())
	defer cancel()

	userPrompt := fmt.Sprintf("User message: %s\n\nAnalyze this message and respond appropriately. If a support ticket should be created, indicate that in your response.", message)

	raw, err := g.factory(apiKey).Complete(ctx, systemPrompt, userPrompt, CompletionOptions{
		Model:       g.cfg.Model,
		MaxTokens:   g.cfg.MaxTokens,
		Temperature: float32(g.cfg.Temperature),
		JSONMode:    true,
	})
	if err != nil {
		return Response{}, err
	}

	var reply rawReply
	if err := json.Unmarshal([]byte(raw), &reply); err != nil {
		g.logger.Warn("completion reply is not valid JSON", zap.Error(err))
		return Response{Message: parseTroubleMessage}, nil
	}
	return reconcile(message, reply), nil
}

// rawReply wraps the untyped record returned by the model. Fields are read
// through safe accessors and validated one by one; the shape is never
// trusted directly.
type rawReply map[string]any

func (r rawReply) has(key string) bool {
	_, ok := r[key]
	return ok
}

func (r rawReply) stringVal(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

func (r rawReply) boolVal(key string) bool {
	if v, ok := r[key].(bool); ok {
		return v
	}
	return false
}

func (r rawReply) object(key string) rawReply {
	if v, ok := r[key].(map[string]any); ok {
		return rawReply(v)
	}
	return nil
}

// reconcile merges the model's reply with the deterministic category table.
// Priority order: an explicit ticket decision from the model wins; a silent
// reply falls back to keyword matching against the shared rules.
func reconcile(message string, reply rawReply) Response {
	resp := Response{Message: reply.stringVal("message")}
	if resp.Message == "" {
		resp.Message = defaultGreeting
	}

	switch {
	case !reply.has("create_ticket"):
		if draft := draftFromRules(message); draft != nil {
			resp.CreateTicket = true
			resp.TicketData = draft
		}
	case reply.boolVal("create_ticket"):
		resp.CreateTicket = true
		resp.TicketData = normalizeDraft(message, reply.object("ticket_data"))
	default:
		// model explicitly declined a ticket
	}
	return resp
}

// normalizeDraft fills a model-supplied ticket payload with defaults and
// clamps priority to the accepted values. A nil payload yields the generic
// support-request draft.
func normalizeDraft(message string, data rawReply) *TicketDraft {
	draft := &TicketDraft{
		Subject:     "Support Request",
		Category:    "general",
		Priority:    domain.TicketPriorityMedium,
		Description: quoteReport(message),
	}
	if data == nil {
		return draft
	}
	if v := data.stringVal("subject"); v != "" {
		draft.Subject = v
	}
	if v := data.stringVal("category"); v != "" {
		draft.Category = v
	}
	if v := data.stringVal("description"); v != "" {
		draft.Description = v
	}
	if p := domain.TicketPriority(data.stringVal("priority")); domain.ValidPriority(p) {
		draft.Priority = p
	}
	return draft
}

// draftFromRules matches the message against the shared category table.
// Informational categories (no subject) never trigger a ticket, and the
// first matching rule decides.
func draftFromRules(message string) *TicketDraft {
	lower := strings.ToLower(message)
	for _, rule := range categoryRules {
		if !containsAny(lower, rule.Keywords) {
			continue
		}
		if rule.Subject == "" {
			return nil
		}
		return &TicketDraft{
			Subject:     rule.Subject,
			Category:    rule.Name,
			Priority:    rule.Priority,
			Description: quoteReport(message),
		}
	}
	return nil
}
