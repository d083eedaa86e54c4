package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/healthhelpdesk/helpdesk-service/internal/api/dto"
	"github.com/healthhelpdesk/helpdesk-service/internal/service"
	"github.com/healthhelpdesk/helpdesk-service/pkg/util/errorutil"
)

// ChatHandler exposes the chat widget endpoints.
type ChatHandler struct {
	service *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{service: chatService}
}

// PostMessage POST /api/chat.
func (h *ChatHandler) PostMessage(c *fiber.Ctx) error {
	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return errorutil.NewValidationError("invalid payload", nil)
	}

	result, err := h.service.ProcessChat(c.Context(), req.SessionID, req.Message)
	if err != nil {
		return err
	}
	return c.JSON(dto.ChatResponse{
		UserMessage:  dto.FromChatMessage(result.UserMessage),
		BotMessage:   dto.FromChatMessage(result.BotMessage),
		CreateTicket: result.CreateTicket,
		TicketData:   result.TicketData,
	})
}

// GetHistory GET /api/chat/:sessionId.
func (h *ChatHandler) GetHistory(c *fiber.Ctx) error {
	messages, err := h.service.History(c.Context(), c.Params("sessionId"))
	if err != nil {
		return err
	}
	items := make([]dto.ChatMessageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, dto.FromChatMessage(&messages[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
