package messages

import (
	"sync"

	"golang.org/x/net/websocket"
)

// Hub fans out new messages to the open websocket connections of a
// conversation. Both participants may hold a connection at once; a send
// failure just drops that connection from the set.
type Hub struct {
	mu    sync.RWMutex
	conns map[string]map[*websocket.Conn]struct{} // conversationID -> connections
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[string]map[*websocket.Conn]struct{})}
}

// Register adds a connection to a conversation's set.
func (h *Hub) Register(conversationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[conversationID]
	if !ok {
		set = make(map[*websocket.Conn]struct{})
		h.conns[conversationID] = set
	}
	set[conn] = struct{}{}
}

// Unregister removes a connection; the conversation entry is dropped
// when its set empties.
func (h *Hub) Unregister(conversationID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[conversationID]
	if !ok {
		return
	}
	delete(set, conn)
	if len(set) == 0 {
		delete(h.conns, conversationID)
	}
}

// Broadcast sends a message to every open connection on its
// conversation. Connections that error are unregistered.
func (h *Hub) Broadcast(msg *Message) {
	h.mu.RLock()
	targets := make([]*websocket.Conn, 0, len(h.conns[msg.ConversationID]))
	for conn := range h.conns[msg.ConversationID] {
		targets = append(targets, conn)
	}
	h.mu.RUnlock()

	for _, conn := range targets {
		if err := websocket.JSON.Send(conn, msg); err != nil {
			h.Unregister(msg.ConversationID, conn)
		}
	}
}

// Subscribers reports how many connections a conversation currently has.
func (h *Hub) Subscribers(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[conversationID])
}
