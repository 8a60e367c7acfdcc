package websocket

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestManagerAddRemove(t *testing.T) {
	m := NewManager()
	userID := uuid.New()

	first := &Client{UserID: userID, Send: make(chan []byte, 1)}
	m.AddClient(userID, first)
	assert.True(t, m.IsOnline(userID))

	// A reconnect replaces the old client and closes its channel.
	second := &Client{UserID: userID, Send: make(chan []byte, 1)}
	m.AddClient(userID, second)
	_, open := <-first.Send
	assert.False(t, open)

	// Removing the stale client leaves the newer one registered.
	m.RemoveClient(userID, first)
	assert.True(t, m.IsOnline(userID))

	m.RemoveClient(userID, second)
	assert.False(t, m.IsOnline(userID))
}

func TestSendToUser(t *testing.T) {
	m := NewManager()
	userID := uuid.New()

	// Offline user: dropped silently.
	m.SendToUser(userID, []byte("x"))

	client := &Client{UserID: userID, Send: make(chan []byte, 1)}
	m.AddClient(userID, client)

	m.SendToUser(userID, []byte("one"))
	assert.Equal(t, []byte("one"), <-client.Send)

	// A full buffer drops instead of blocking.
	m.SendToUser(userID, []byte("two"))
	m.SendToUser(userID, []byte("three"))
	assert.Equal(t, []byte("two"), <-client.Send)
	select {
	case msg := <-client.Send:
		t.Fatalf("unexpected message %q", msg)
	default:
	}
}

// Pushes racing a disconnect must never hit a closed channel. Run with
// -race.
func TestSendToUserDisconnectRace(t *testing.T) {
	m := NewManager()
	userID := uuid.New()

	for i := 0; i < 200; i++ {
		client := &Client{UserID: userID, Send: make(chan []byte, 1)}
		m.AddClient(userID, client)

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				m.SendToUser(userID, []byte("payload"))
			}
		}()
		go func() {
			defer wg.Done()
			m.RemoveClient(userID, client)
		}()
		wg.Wait()
	}
}
