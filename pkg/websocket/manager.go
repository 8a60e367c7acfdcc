package websocket

import (
	"sync"

	"github.com/google/uuid"
)

// Client is one connected user socket.
type Client struct {
	UserID uuid.UUID
	Send   chan []byte
}

// Manager tracks connected users and fans notification payloads out to
// them. Delivery is best-effort: offline users rely on the durable
// notification rows, not on this layer.
type Manager struct {
	clients map[uuid.UUID]*Client
	lock    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[uuid.UUID]*Client),
	}
}

// AddClient registers a connection, replacing any previous one for the same
// user.
func (m *Manager) AddClient(userID uuid.UUID, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if old, ok := m.clients[userID]; ok {
		close(old.Send)
	}
	m.clients[userID] = client
}

// RemoveClient unregisters a connection. A newer connection for the same
// user is left alone.
func (m *Manager) RemoveClient(userID uuid.UUID, client *Client) {
	m.lock.Lock()
	defer m.lock.Unlock()
	if c, ok := m.clients[userID]; ok && c == client {
		close(c.Send)
		delete(m.clients, userID)
	}
}

// SendToUser pushes a payload to a connected user. Drops it silently when
// the user is offline or the send buffer is full. The lock is held across
// the non-blocking send: Add/RemoveClient close the channel under the
// write lock, so the channel cannot close mid-send.
func (m *Manager) SendToUser(userID uuid.UUID, msg []byte) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	client, ok := m.clients[userID]
	if !ok {
		return
	}
	select {
	case client.Send <- msg:
	default:
	}
}

// IsOnline reports whether the user has a registered connection.
func (m *Manager) IsOnline(userID uuid.UUID) bool {
	m.lock.RLock()
	defer m.lock.RUnlock()
	_, ok := m.clients[userID]
	return ok
}
