// Package feed pushes live back-office updates (new orders, payments,
// buyer registrations) to connected admin dashboards over WebSocket.
package feed

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Update is one line on the admin live feed
type Update struct {
	Kind    string      `json:"kind"` // order, payment, buyer
	Title   string      `json:"title"`
	Payload interface{} `json:"payload,omitempty"`
	At      time.Time   `json:"at"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans updates out to every connected dashboard. Slow or dead clients
// are dropped on write failure.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan Update
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan Update, 64),
	}
}

// Run consumes the broadcast channel; call it once in a goroutine
func (h *Hub) Run() {
	for update := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(update); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}

// Notify queues an update for broadcast without blocking the caller
func (h *Hub) Notify(kind, title string, payload interface{}) {
	update := Update{Kind: kind, Title: title, Payload: payload, At: time.Now()}
	select {
	case h.broadcast <- update:
	default:
		// Feed is best-effort; drop when the buffer is full
	}
}

// HandleWS upgrades an admin connection and holds it until the client leaves
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}
