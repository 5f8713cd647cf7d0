package websocket

import (
	"context"
	"encoding/json"
	"time"

	"resqnet/internal/domain/entity"
)

// WebSocket Message Types
const (
	MessageTypePing        = "ping"
	MessageTypePong        = "pong"
	MessageTypeSendMessage = "send_message"
	MessageTypeChatMessage = "chat.message"
	MessageTypeAlert       = "alert.issued"
	MessageTypeError       = "error"
)

// WSMessage is the envelope for every frame in both directions.
type WSMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data"`
	Timestamp string      `json:"timestamp"`
}

type inboundMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type SendMessageData struct {
	ReceiverID string `json:"receiverId"`
	Text       string `json:"text"`
}

type ErrorData struct {
	Message string `json:"message"`
}

// ChatSender persists a chat message sent over the socket.
type ChatSender interface {
	SendMessage(ctx context.Context, senderID, receiverID, text string) (entity.ChatMessage, error)
}

// MessageHandler processes frames sent by clients.
type MessageHandler struct {
	manager *Manager
	chat    ChatSender
	timeout time.Duration
}

func NewMessageHandler(manager *Manager, chat ChatSender) *MessageHandler {
	return &MessageHandler{
		manager: manager,
		chat:    chat,
		timeout: 10 * time.Second,
	}
}

func (h *MessageHandler) HandleMessage(client *Client, raw []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		h.sendError(client, "Invalid message format")
		return
	}

	switch msg.Type {
	case MessageTypePing:
		h.reply(client, MessageTypePong, nil)

	case MessageTypeSendMessage:
		var data SendMessageData
		if err := json.Unmarshal(msg.Data, &data); err != nil || data.ReceiverID == "" || data.Text == "" {
			h.sendError(client, "receiverId and text are required")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		// the chat use case pushes chat.message to both parties
		if _, err := h.chat.SendMessage(ctx, client.UserID, data.ReceiverID, data.Text); err != nil {
			h.sendError(client, err.Error())
		}

	default:
		h.sendError(client, "Unknown message type: "+msg.Type)
	}
}

func (h *MessageHandler) reply(client *Client, msgType string, data interface{}) {
	message, err := encode(msgType, data)
	if err != nil {
		return
	}
	select {
	case client.Send <- message:
	default:
	}
}

func (h *MessageHandler) sendError(client *Client, message string) {
	h.reply(client, MessageTypeError, ErrorData{Message: message})
}
