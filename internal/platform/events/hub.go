package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SscSPs/player_tracker/internal/core/domain"
	"github.com/SscSPs/player_tracker/internal/core/ports"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	clientSendSize = 32
)

type subscriber struct {
	casinoID string
	tableID  string // Empty for every table of the casino
	send     chan []byte
}

func (s *subscriber) wants(event domain.Event) bool {
	if s.casinoID != event.CasinoID {
		return false
	}
	return s.tableID == "" || s.tableID == event.TableID
}

// Hub pushes floor events to websocket subscribers of the same casino. A subscriber that
// falls behind is disconnected rather than slowing the publisher.
type Hub struct {
	upgrader websocket.Upgrader
	logger   *slog.Logger

	mu   sync.Mutex
	subs map[*subscriber]struct{}
}

var _ ports.EventPublisher = (*Hub)(nil)

// NewHub creates a hub accepting websocket connections from allowedOrigins. An empty list
// allows any origin.
func NewHub(allowedOrigins []string, logger *slog.Logger) *Hub {
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return len(origins) == 0 || origin == "" || origins[origin]
			},
		},
		logger: logger,
		subs:   make(map[*subscriber]struct{}),
	}
}

// Publish queues event for every matching subscriber.
func (h *Hub) Publish(_ context.Context, event domain.Event) error {
	msg, err := json.Marshal(event)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for s := range h.subs {
		if !s.wants(event) {
			continue
		}
		select {
		case s.send <- msg:
		default:
			h.removeLocked(s)
		}
	}
	return nil
}

// Subscribers returns how many connections are open.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (h *Hub) add(s *subscriber) {
	h.mu.Lock()
	h.subs[s] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) remove(s *subscriber) {
	h.mu.Lock()
	h.removeLocked(s)
	h.mu.Unlock()
}

func (h *Hub) removeLocked(s *subscriber) {
	if _, ok := h.subs[s]; ok {
		delete(h.subs, s)
		close(s.send)
	}
}

// Serve upgrades the request and streams events of casinoID, optionally only those of
// tableID, until the client goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, casinoID, tableID string) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	s := &subscriber{casinoID: casinoID, tableID: tableID, send: make(chan []byte, clientSendSize)}
	h.add(s)
	h.logger.Info("Realtime subscriber connected", slog.String("casino_id", casinoID), slog.String("table_id", tableID))

	go h.writePump(conn, s)
	h.readPump(conn, s)
	return nil
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(conn *websocket.Conn, s *subscriber) {
	defer func() {
		h.remove(s)
		_ = conn.Close()
	}()
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(conn *websocket.Conn, s *subscriber) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()
	for {
		select {
		case msg, ok := <-s.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
