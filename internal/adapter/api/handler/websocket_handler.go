package handler

import (
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"resqnet/internal/adapter/api/middleware"
	ws "resqnet/internal/infrastructure/websocket"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
	"resqnet/pkg/response"
)

type WebSocketHandler struct {
	wsManager      *ws.Manager
	messageHandler *ws.MessageHandler
	upgrader       gorillaws.Upgrader
}

func NewWebSocketHandler(wsManager *ws.Manager, messageHandler *ws.MessageHandler, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		messageHandler: messageHandler,
		upgrader: gorillaws.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// originChecker allows any origin when the list is empty or contains "*".
func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		for _, o := range allowed {
			if o == "*" || o == origin {
				return true
			}
		}
		return false
	}
}

// HandleWebSocket upgrades an authenticated request and attaches the client to
// the push hub.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	session := middleware.GetSession(c)
	if session == nil {
		return response.Error(c, errors.Unauthorized("Authentication required", nil))
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("WebSocket upgrade failed for %s: %v", session.UserID, err)
		return nil
	}

	client := ws.NewClient(session.UserID, conn)
	if !h.wsManager.Add(client) {
		_ = conn.Close()
		return nil
	}

	go client.WritePump()
	go client.ReadPump(h.wsManager, h.messageHandler)

	return nil
}
