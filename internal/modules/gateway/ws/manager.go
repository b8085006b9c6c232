// Package ws manages WebSocket connections for the gateway.
package ws

import (
	"context"
	"sync"
	"time"

	"github.com/billyz31/slot_arcade/pkg/logger"
	"github.com/gorilla/websocket"
)

// CloseReason explains why a connection was closed
type CloseReason string

// Close reasons
const (
	ReasonWriteError CloseReason = "write_error"
	ReasonPingError  CloseReason = "ping_error"
	ReasonReadError  CloseReason = "read_error"
	ReasonReplaced   CloseReason = "replaced_by_new_connection"
	ReasonShutdown   CloseReason = "server_shutdown"
	ReasonBufferFull CloseReason = "buffer_full"
	ReasonTimeout    CloseReason = "timeout"
)

// Connection represents one player's WebSocket connection
type Connection struct {
	PlayerID  string
	Conn      *websocket.Conn
	Send      chan []byte
	manager   *Manager
	closeOnce sync.Once
}

// Manager tracks all connections, one per player
type Manager struct {
	clients    map[string]*Connection
	register   chan *Connection
	unregister chan *Connection
	mu         sync.RWMutex
}

// NewManager creates a new connection manager
func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Connection),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
	}
}

// Register registers a new connection for the player
func (m *Manager) Register(conn *websocket.Conn, playerID string) *Connection {
	c := &Connection{
		PlayerID: playerID,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		manager:  m,
	}
	m.register <- c
	return c
}

// Run starts the manager loop
func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			// A player gets one connection; a new one replaces the old
			if old, ok := m.clients[client.PlayerID]; ok {
				old.CloseWithReason(ReasonReplaced, nil)
			}
			m.clients[client.PlayerID] = client
			m.mu.Unlock()

		case client := <-m.unregister:
			m.mu.Lock()
			if current, ok := m.clients[client.PlayerID]; ok && current == client {
				delete(m.clients, client.PlayerID)
				client.CloseWithReason(ReasonShutdown, nil)
			}
			m.mu.Unlock()
		}
	}
}

// SendToPlayer delivers an event to a specific player's connection
func (m *Manager) SendToPlayer(playerID string, message []byte) {
	m.mu.RLock()
	client, ok := m.clients[playerID]
	m.mu.RUnlock()

	if !ok {
		return
	}

	select {
	case client.Send <- message:
	case <-time.After(5 * time.Second):
		// Client too slow to drain its buffer; drop it rather than block
		client.CloseWithReason(ReasonTimeout, nil)
	}
}

// ConnectionCount returns the number of live connections
func (m *Manager) ConnectionCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// Shutdown closes all connections
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, client := range m.clients {
		client.CloseWithReason(ReasonShutdown, nil)
	}
}

// CloseWithReason closes the connection once, logging the reason
func (c *Connection) CloseWithReason(r CloseReason, err error) {
	c.closeOnce.Do(func() {
		logger.Info(context.Background()).
			Str("player_id", c.PlayerID).
			Str("reason", string(r)).
			Err(err).
			Msg("ws connection closed")
		c.Conn.Close()
	})
}

// WritePump pumps queued messages out to the websocket connection
func (c *Connection) WritePump() {
	ticker := time.NewTicker(54 * time.Second) // Ping period
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(30 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.CloseWithReason(ReasonWriteError, err)
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.CloseWithReason(ReasonPingError, err)
				return
			}
		}
	}
}

// ReadPump reads inbound messages and hands them to the message handler
func (c *Connection) ReadPump(handleMessage func(string, []byte)) {
	var readErr error
	defer func() {
		c.manager.unregister <- c
		c.CloseWithReason(ReasonReadError, readErr)
	}()

	c.Conn.SetReadLimit(4096)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				readErr = err
			}
			break
		}

		handleMessage(c.PlayerID, message)
	}
}
