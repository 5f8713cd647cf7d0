package websocket

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"resqnet/pkg/logger"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBufferSize = 64
)

// Client represents one WebSocket connection. A user may hold several.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// NewClient wraps an upgraded connection.
func NewClient(userID string, conn *websocket.Conn) *Client {
	return &Client{
		UserID: userID,
		Conn:   conn,
		Send:   make(chan []byte, sendBufferSize),
	}
}

// Manager tracks active connections and fans out events to them.
type Manager struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	stopOnce   sync.Once
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBufferSize),
		done:       make(chan struct{}),
	}
}

// Start runs the manager's main loop until ctx is cancelled. Once the loop
// exits every connection is closed and later sends are dropped.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		defer m.stop()
		for {
			select {
			case client := <-m.register:
				m.mutex.Lock()
				if m.clients[client.UserID] == nil {
					m.clients[client.UserID] = make(map[*Client]struct{})
				}
				m.clients[client.UserID][client] = struct{}{}
				m.mutex.Unlock()
				logger.Debug("websocket client registered: %s", client.UserID)

			case client := <-m.unregister:
				m.remove(client)
				logger.Debug("websocket client unregistered: %s", client.UserID)

			case message := <-m.broadcast:
				m.mutex.RLock()
				var slow []*Client
				for _, conns := range m.clients {
					for client := range conns {
						select {
						case client.Send <- message:
						default:
							slow = append(slow, client)
						}
					}
				}
				m.mutex.RUnlock()
				for _, client := range slow {
					m.remove(client)
				}

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) stop() {
	m.stopOnce.Do(func() {
		close(m.done)

		m.mutex.Lock()
		defer m.mutex.Unlock()
		for userID, conns := range m.clients {
			for client := range conns {
				close(client.Send)
			}
			delete(m.clients, userID)
		}
	})
}

// Done is closed when the manager has stopped.
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Add hands a connection to the manager. It reports false once the manager
// has stopped, in which case the caller owns the connection.
func (m *Manager) Add(client *Client) bool {
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

// Drop detaches a connection. It never blocks after the manager has stopped.
func (m *Manager) Drop(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
		m.remove(client)
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}
	delete(conns, client)
	close(client.Send)
	if len(conns) == 0 {
		delete(m.clients, client.UserID)
	}
}

// IsConnected reports whether the user has at least one open connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients[userID]) > 0
}

// SendToUser delivers an event to every connection of userID. Connections
// whose buffer is full miss the event.
func (m *Manager) SendToUser(userID, msgType string, data interface{}) {
	message, err := encode(msgType, data)
	if err != nil {
		logger.Error("websocket encode %s: %v", msgType, err)
		return
	}

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for client := range m.clients[userID] {
		select {
		case client.Send <- message:
		default:
			logger.Warn("websocket buffer full for %s, dropping %s", userID, msgType)
		}
	}
}

// Broadcast delivers an event to every connected client.
func (m *Manager) Broadcast(msgType string, data interface{}) {
	message, err := encode(msgType, data)
	if err != nil {
		logger.Error("websocket encode %s: %v", msgType, err)
		return
	}
	select {
	case m.broadcast <- message:
	case <-m.done:
		logger.Debug("websocket manager stopped, dropping %s", msgType)
	}
}

func encode(msgType string, data interface{}) ([]byte, error) {
	return json.Marshal(WSMessage{
		Type:      msgType,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadPump reads client frames and hands them to h until the connection closes.
func (c *Client) ReadPump(m *Manager, h *MessageHandler) {
	defer func() {
		m.Drop(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	_ = c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("websocket read error for %s: %v", c.UserID, err)
			}
			break
		}
		if h != nil {
			h.HandleMessage(c, message)
		}
	}
}

// WritePump sends queued messages and keeps the connection alive with pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("websocket write error for %s: %v", c.UserID, err)
				return
			}

		case <-ticker.C:
			_ = c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
