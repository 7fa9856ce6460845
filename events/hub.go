package events

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pilinks/logger"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The app is served from arbitrary origins (mobile webviews included).
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub relays bus events to connected websocket clients so every client can
// re-fetch the feed after any mutation, regardless of who made it.
type Hub struct {
	mu          sync.Mutex
	conns       map[*websocket.Conn]chan Event
	unsubscribe func()
}

func NewHub(bus *Bus) *Hub {
	h := &Hub{conns: make(map[*websocket.Conn]chan Event)}
	h.unsubscribe = bus.Subscribe(h.broadcast)
	return h
}

// ServeHTTP upgrades the request and keeps the connection registered until
// the client goes away or falls too far behind.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	send := make(chan Event, sendBuffer)
	h.mu.Lock()
	h.conns[conn] = send
	h.mu.Unlock()

	go h.writeLoop(conn, send)
	go h.readLoop(conn)
}

func (h *Hub) broadcast(e Event) {
	var stale []*websocket.Conn

	h.mu.Lock()
	for conn, send := range h.conns {
		select {
		case send <- e:
		default:
			// full buffer means a dead or unreadably slow client
			stale = append(stale, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range stale {
		h.drop(conn)
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan Event) {
	for e := range send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(e); err != nil {
			h.drop(conn)
			return
		}
	}
	conn.Close()
}

// readLoop discards client frames; its only job is noticing the close.
func (h *Hub) readLoop(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.drop(conn)
			return
		}
	}
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	send, ok := h.conns[conn]
	if ok {
		delete(h.conns, conn)
		close(send)
	}
	h.mu.Unlock()
	conn.Close()
}

// Close detaches the hub from the bus and disconnects every client.
func (h *Hub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for conn := range h.conns {
		conns = append(conns, conn)
	}
	h.mu.Unlock()

	for _, conn := range conns {
		h.drop(conn)
	}
}
