package services

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
)

// Event kinds pushed to connected clients.
const (
	EventDayUpdated = "day.updated"
	EventDayDeleted = "day.deleted"
)

type WSClient struct {
	UserID string
	Conn   *websocket.Conn
}

// RealtimeHub fans day-change events out to a user's open websocket
// connections so other devices refresh without polling.
type RealtimeHub struct {
	mu      sync.RWMutex
	clients map[string]map[*WSClient]struct{}
}

func NewRealtimeHub() *RealtimeHub {
	return &RealtimeHub{clients: make(map[string]map[*WSClient]struct{})}
}

func (h *RealtimeHub) Register(c *WSClient) {
	h.mu.Lock()
	if h.clients[c.UserID] == nil {
		h.clients[c.UserID] = make(map[*WSClient]struct{})
	}
	h.clients[c.UserID][c] = struct{}{}
	h.mu.Unlock()
}

func (h *RealtimeHub) Unregister(c *WSClient) {
	h.mu.Lock()
	if set := h.clients[c.UserID]; set != nil {
		delete(set, c)
		if len(set) == 0 {
			delete(h.clients, c.UserID)
		}
	}
	h.mu.Unlock()
	_ = c.Conn.Close()
}

// Broadcast sends an event to every connection the user has open.
// Safe to call with a nil hub.
func (h *RealtimeHub) Broadcast(userID, kind string, payload any) {
	if h == nil {
		return
	}
	msg, _ := json.Marshal(map[string]any{"kind": kind, "data": payload})
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients[userID] {
		_ = c.Conn.WriteMessage(websocket.TextMessage, msg)
	}
}
