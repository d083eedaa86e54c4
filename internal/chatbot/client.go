package chatbot

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"
)

// CompletionOptions bound a single completion call.
type CompletionOptions struct {
	Model       string
	MaxTokens   int
	Temperature float32
	JSONMode    bool
}

// CompletionClient sends a system/user prompt pair to a completion service
// and returns the raw reply text.
type CompletionClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error)
}

// ClientFactory builds a CompletionClient bound to one API credential. The
// orchestrator uses it to retry with the backup credential.
type ClientFactory func(apiKey string) CompletionClient

const quotaErrorCode = "insufficient_quota"

// UpstreamError is a typed failure from the completion service carrying the
// HTTP status and machine-readable error code of the upstream response.
type UpstreamError struct {
	StatusCode int
	Code       string
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion service error (status %d, code %q): %v", e.StatusCode, e.Code, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// QuotaExhausted reports the one upstream condition that justifies an
// attempt with the backup credential.
func (e *UpstreamError) QuotaExhausted() bool {
	return e.StatusCode == http.StatusTooManyRequests && e.Code == quotaErrorCode
}

type openAIClient struct {
	client *openai.Client
}

// NewOpenAIClient returns a go-openai backed CompletionClient for the key.
func NewOpenAIClient(apiKey string) CompletionClient {
	return &openAIClient{client: openai.NewClient(apiKey)}
}

func (c *openAIClient) Complete(ctx context.Context, systemPrompt, userPrompt string, opts CompletionOptions) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: opts.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if opts.JSONMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", wrapUpstreamError(err)
	}
	if len(resp.Choices) == 0 {
		return "", &UpstreamError{Code: "empty_response", Err: errors.New("completion returned no choices")}
	}
	return resp.Choices[0].Message.Content, nil
}

func wrapUpstreamError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &UpstreamError{
			StatusCode: apiErr.HTTPStatusCode,
			Code:       apiErrorCode(apiErr),
			Err:        err,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &UpstreamError{StatusCode: reqErr.HTTPStatusCode, Err: err}
	}
	return &UpstreamError{Err: err}
}

// apiErrorCode extracts the machine-readable code, which go-openai exposes
// as an untyped value.
func apiErrorCode(apiErr *openai.APIError) string {
	if apiErr.Code == nil {
		return ""
	}
	if code, ok := apiErr.Code.(string); ok {
		return code
	}
	return fmt.Sprintf("%v", apiErr.Code)
}
