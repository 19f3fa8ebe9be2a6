// Package events pushes session lifecycle events to connected browsers over
// a websocket. The 401 credential wipe publishes here instead of forcing a
// redirect; the front-end decides navigation policy.
package events

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event is a session lifecycle notification
type Event struct {
	Type      string    `json:"type"`
	SessionID string    `json:"session_id"`
	Reason    string    `json:"reason"`
	Timestamp time.Time `json:"timestamp"`
}

type Hub struct {
	clients    map[*websocket.Conn]string // conn -> session id
	clientsMux sync.Mutex
	broadcast  chan Event
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]string),
		broadcast: make(chan Event, 64),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Run delivers broadcast events to subscribed clients
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for conn, sid := range h.clients {
			if sid != event.SessionID {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				conn.Close()
				delete(h.clients, conn)
			}
		}
		h.clientsMux.Unlock()
	}
}

// PublishInvalidation notifies the session's browser that it was signed out
func (h *Hub) PublishInvalidation(sessionID, reason string) {
	select {
	case h.broadcast <- Event{
		Type:      "session_invalidated",
		SessionID: sessionID,
		Reason:    reason,
		Timestamp: time.Now(),
	}:
	default:
		log.Printf("[Events] broadcast buffer full, dropping event")
	}
}

// HandleWS upgrades the connection and subscribes it to its session's events
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Events] websocket upgrade failed: %v", err)
		return
	}

	h.clientsMux.Lock()
	h.clients[conn] = sessionID
	h.clientsMux.Unlock()

	// Drain reads until the client goes away
	go func() {
		defer func() {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
