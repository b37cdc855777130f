package main

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// changeEvent is pushed to /watch subscribers after every successful write.
type changeEvent struct {
	Action     string          `json:"action"`
	Collection string          `json:"collection"`
	ID         string          `json:"id,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
}

type hub struct {
	mu       sync.Mutex
	upgrader websocket.Upgrader
	conns    map[*websocket.Conn]struct{}
}

func newHub() *hub {
	return &hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

func (h *hub) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("watch upgrade failed: %v", err)
		return
	}

	h.mu.Lock()
	h.conns[conn] = struct{}{}
	h.mu.Unlock()

	// Drain incoming frames so close handshakes are processed.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				h.drop(conn)
				return
			}
		}
	}()
}

func (h *hub) broadcast(ev changeEvent) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("encode change event: %v", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			_ = conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = conn.Close()
	delete(h.conns, conn)
}
