package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Jay-Patell/AuctionBotLeague/internal/model"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 45 * time.Second
)

// Hub fans session snapshots out to WebSocket viewers. Every committed
// transition is broadcast; a freshly connected client immediately receives
// the latest snapshot.
type Hub struct {
	sendBuffer int
	logger     *slog.Logger
	upgrader   websocket.Upgrader

	register   chan *client
	unregister chan *client
	broadcast  chan []byte

	// run-loop state, touched only by the run goroutine
	clients map[*client]struct{}

	lastMu sync.RWMutex
	last   []byte

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub creates a hub. sendBuffer is the per-client outbound queue; slow
// clients that fall behind it are dropped.
func NewHub(sendBuffer int, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	if sendBuffer < 1 {
		sendBuffer = 1
	}
	return &Hub{
		sendBuffer: sendBuffer,
		logger:     logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan []byte, 256),
		clients:    make(map[*client]struct{}),
	}
}

// Start begins the broadcast loop.
func (h *Hub) Start(ctx context.Context) error {
	h.ctx, h.cancel = context.WithCancel(ctx)

	h.wg.Add(1)
	go h.run()

	h.logger.Info("stream hub started", "send_buffer", h.sendBuffer)
	return nil
}

// Stop shuts down the hub and disconnects all clients.
func (h *Hub) Stop(ctx context.Context) error {
	if h.cancel != nil {
		h.cancel()
	}

	done := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		h.logger.Info("stream hub stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Publish broadcasts a snapshot to every connected client. Never blocks the
// session: if the hub's queue is full the oldest update is superseded anyway
// by the next one.
func (h *Hub) Publish(snap model.Snapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		h.logger.Error("marshal snapshot", "error", err)
		return
	}

	h.lastMu.Lock()
	h.last = payload
	h.lastMu.Unlock()

	select {
	case h.broadcast <- payload:
	default:
		h.logger.Warn("broadcast queue full, dropping update")
	}
}

// ServeWS upgrades an HTTP request into a snapshot stream.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn: conn,
		send: make(chan []byte, h.sendBuffer),
	}

	// Seed the new viewer with the latest state.
	h.lastMu.RLock()
	if h.last != nil {
		c.send <- h.last
	}
	h.lastMu.RUnlock()

	select {
	case h.register <- c:
	case <-h.ctx.Done():
		conn.Close()
		return
	}

	h.wg.Add(2)
	go h.writePump(c)
	go h.readPump(c)
}

func (h *Hub) run() {
	defer h.wg.Done()

	for {
		select {
		case <-h.ctx.Done():
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.logger.Debug("viewer connected", "viewers", len(h.clients))

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.logger.Debug("viewer disconnected", "viewers", len(h.clients))

		case payload := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- payload:
				default:
					// Client too slow; cut it loose.
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// writePump drains the client's send queue onto the wire.
func (h *Hub) writePump(c *client) {
	defer h.wg.Done()

	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
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

// readPump discards inbound frames (the stream is one-way) and notices
// disconnects.
func (h *Hub) readPump(c *client) {
	defer h.wg.Done()
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
