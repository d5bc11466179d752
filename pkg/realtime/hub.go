// Package realtime pushes inbox change notifications to connected browsers.
package realtime

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"marketplace-web/pkg/auth"
)

const (
	TypeConversationsChanged = "conversations.changed"

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

type Message struct {
	Type string `json:"type"`
}

type Client struct {
	UserID string
	conn   *websocket.Conn
	send   chan []byte
}

type delivery struct {
	userID  string
	payload []byte
}

// Hub tracks live connections per user. A user may have several tabs open.
type Hub struct {
	clients    map[string]map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan delivery
	done       chan struct{}
	mutex      sync.RWMutex
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan delivery, 256),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// Run owns the client set until ctx is cancelled.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mutex.Lock()
			for userID, set := range h.clients {
				for c := range set {
					close(c.send)
				}
				delete(h.clients, userID)
			}
			h.mutex.Unlock()
			return

		case c := <-h.register:
			h.mutex.Lock()
			if h.clients[c.UserID] == nil {
				h.clients[c.UserID] = make(map[*Client]struct{})
			}
			h.clients[c.UserID][c] = struct{}{}
			h.mutex.Unlock()
			log.Printf("🔌 Live inbox connected: user %s", c.UserID)

		case c := <-h.unregister:
			h.mutex.Lock()
			h.remove(c)
			h.mutex.Unlock()

		case d := <-h.broadcast:
			h.mutex.Lock()
			for c := range h.clients[d.userID] {
				select {
				case c.send <- d.payload:
				default:
					h.remove(c)
				}
			}
			h.mutex.Unlock()
		}
	}
}

// remove must be called with the mutex held.
func (h *Hub) remove(c *Client) {
	set, ok := h.clients[c.UserID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.clients, c.UserID)
	}
	log.Printf("🔌 Live inbox disconnected: user %s", c.UserID)
}

func (h *Hub) Connected(userID string) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}

// Notify tells every connection of userID that their conversation list changed.
func (h *Hub) Notify(userID string) {
	data, err := json.Marshal(Message{Type: TypeConversationsChanged})
	if err != nil {
		log.Printf("❌ Error marshaling live message: %v", err)
		return
	}
	select {
	case h.broadcast <- delivery{userID: userID, payload: data}:
	default:
		log.Printf("⚠️ Live inbox queue full, dropping notification for %s", userID)
	}
}

// Invalidator drops cached state for a user before clients refetch it.
type Invalidator interface {
	Invalidate(ctx context.Context, userID string) error
}

// Listen forwards change notifications until changes is closed or ctx ends.
func (h *Hub) Listen(ctx context.Context, changes <-chan string, inv Invalidator) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID, ok := <-changes:
			if !ok {
				return
			}
			if inv != nil {
				if err := inv.Invalidate(ctx, userID); err != nil {
					log.Printf("⚠️ Could not invalidate inbox for %s: %v", userID, err)
				}
			}
			h.Notify(userID)
		}
	}
}

// ServeWS upgrades an authenticated request into a live inbox connection.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ WebSocket upgrade error: %v", err)
		return
	}

	c := &Client{UserID: userID, conn: conn, send: make(chan []byte, 16)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// readPump only watches for the close; clients never send anything we use.
func (h *Hub) readPump(c *Client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("⚠️ WebSocket error: %v", err)
			}
			return
		}
	}
}

func (h *Hub) writePump(c *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
