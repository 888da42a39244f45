package web

import (
	"net/http"
	"sync"

	"github.com/JulianZulFont/AppDash-2/internal/usecase"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Hub fans refreshed view state out to connected browsers over websockets,
// so the page re-renders without polling the server. A client that fails a
// write is dropped; it reconnects on its own.
type Hub struct {
	mu       sync.Mutex
	writeMu  sync.Mutex // serializes broadcasts; gorilla allows one writer per conn
	conns    map[*websocket.Conn]bool
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

type wsMessage struct {
	Type      string              `json:"type"` // "prices" or "countdown"
	Prices    []usecase.PriceView `json:"prices,omitempty"`
	Countdown int                 `json:"countdown,omitempty"`
}

func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger,
	}
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	h.mu.Lock()
	h.conns[conn] = true
	h.mu.Unlock()

	// Read loop only to detect close; the dashboard never sends data.
	go func() {
		defer h.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.conns, conn)
	h.mu.Unlock()
	conn.Close()
}

// BroadcastPrices pushes the latest price views to every connected client.
func (h *Hub) BroadcastPrices(views []usecase.PriceView) {
	h.broadcast(wsMessage{Type: "prices", Prices: views})
}

// BroadcastCountdown pushes the refresh countdown to every connected client.
func (h *Hub) BroadcastCountdown(seconds int) {
	h.broadcast(wsMessage{Type: "countdown", Countdown: seconds})
}

func (h *Hub) broadcast(msg wsMessage) {
	h.writeMu.Lock()
	defer h.writeMu.Unlock()

	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		if err := c.WriteJSON(msg); err != nil {
			h.drop(c)
		}
	}
}

// ClientCount reports the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// Close disconnects all clients.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*websocket.Conn, 0, len(h.conns))
	for c := range h.conns {
		conns = append(conns, c)
	}
	h.conns = make(map[*websocket.Conn]bool)
	h.mu.Unlock()

	for _, c := range conns {
		c.Close()
	}
}
