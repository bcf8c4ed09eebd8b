package chat

import (
	"sync"

	"github.com/gorilla/websocket"
)

// wsSender serializes JSON writes to one WebSocket connection. Gorilla
// connections support at most one concurrent writer, while a session's own
// acks and broadcasts from other sessions target the same connection.
type wsSender struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (s *wsSender) SendJSON(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteJSON(v)
}
