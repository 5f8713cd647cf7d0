package handler

import (
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	"resqnet/internal/usecase"
	"resqnet/pkg/response"
)

type ChatHandler struct {
	chatUseCase *usecase.ChatUseCase
}

func NewChatHandler(chatUseCase *usecase.ChatUseCase) *ChatHandler {
	return &ChatHandler{
		chatUseCase: chatUseCase,
	}
}

type sendMessageRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}

// GetConversation returns the messages between the caller and :peerId.
func (h *ChatHandler) GetConversation(c echo.Context) error {
	messages, err := h.chatUseCase.Conversation(c.Request().Context(), middleware.GetSession(c).UserID, c.Param("peerId"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, messages)
}

func (h *ChatHandler) SendMessage(c echo.Context) error {
	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	msg, err := h.chatUseCase.SendMessage(c.Request().Context(), middleware.GetSession(c).UserID, c.Param("peerId"), req.Text)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, msg)
}
