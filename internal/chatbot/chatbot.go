package chatbot

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/healthhelpdesk/helpdesk-service/internal/observability"
)

const backupMarker = "[Using backup API]"

const (
	processingTroubleMessage = "I'm having some trouble processing your request right now. Please try again in a moment."
	bothQuotasMessage        = "Both the primary and backup API keys have exceeded their quota. Please update your OpenAI API key quotas to restore full AI assistance. Basic keyword matching remains available."
	connectivityMessage      = "I'm having some trouble connecting to my knowledge base right now. Please try again shortly."
)

var errNoCredential = errors.New("no completion credential configured")

// Chatbot is the triage pipeline entry point. It tries the completion
// service with the primary credential, retries with the backup credential
// when the primary quota is exhausted, and degrades to canned notices or the
// keyword classifier so the caller always receives a usable response.
type Chatbot struct {
	gateway *Gateway
	primary string
	backup  string
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewChatbot constructs the orchestrator.
func NewChatbot(gateway *Gateway, primaryKey, backupKey string, logger *zap.Logger, metrics *observability.Metrics) *Chatbot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chatbot{
		gateway: gateway,
		primary: primaryKey,
		backup:  backupKey,
		logger:  logger,
		metrics: metrics,
	}
}

// ProcessMessage triages one inbound message. It never fails visibly: any
// failure inside the pipeline, expected or not, is substituted with a canned
// notice or the deterministic keyword classifier result.
func (b *Chatbot) ProcessMessage(ctx context.Context, message, sessionID string) (resp Response) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("triage pipeline panic; using keyword classifier",
				zap.Any("panic", r),
				zap.String("session_id", sessionID))
			b.metrics.RecordTriage("keyword_fallback")
			resp = Classify(message)
		}
	}()

	out, err := b.process(ctx, message)
	if err != nil {
		b.logger.Warn("triage pipeline unavailable; using keyword classifier",
			zap.Error(err),
			zap.String("session_id", sessionID))
		b.metrics.RecordTriage("keyword_fallback")
		return Classify(message)
	}
	return out
}

// process walks the linear credential-fallback sequence: primary attempt,
// quota check, backup attempt, terminal notices. Each terminal state returns
// a fixed response; only a missing credential escapes as an error so the
// caller can substitute the classifier.
func (b *Chatbot) process(ctx context.Context, message string) (Response, error) {
	if b.primary == "" {
		return Response{}, errNoCredential
	}

	resp, err := b.gateway.Complete(ctx, message, b.primary)
	if err == nil {
		b.metrics.RecordTriage("primary")
		return resp, nil
	}

	var upstream *UpstreamError
	quota := errors.As(err, &upstream) && upstream.QuotaExhausted()
	if !quota || b.backup == "" {
		b.logger.Warn("primary completion attempt failed", zap.Error(err))
		b.metrics.RecordTriage("primary_failed")
		return Response{Message: processingTroubleMessage}, nil
	}

	b.logger.Warn("primary credential quota exhausted; trying backup")
	resp, err = b.gateway.Complete(ctx, message, b.backup)
	if err == nil {
		b.metrics.RecordTriage("backup")
		resp.Message = backupMarker + " " + resp.Message
		return resp, nil
	}

	if errors.As(err, &upstream) && upstream.QuotaExhausted() {
		b.logger.Error("both completion credentials exhausted")
		b.metrics.RecordTriage("quota_exhausted")
		return Response{Message: bothQuotasMessage}, nil
	}

	b.logger.Warn("backup completion attempt failed", zap.Error(err))
	b.metrics.RecordTriage("backup_failed")
	return Response{Message: connectivityMessage}, nil
}
