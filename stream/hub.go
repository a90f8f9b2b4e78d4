// Package stream serves live world snapshots to websocket spectators
package stream

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lixenwraith/tumble/engine"
	"github.com/lixenwraith/tumble/parameter"
	"github.com/lixenwraith/tumble/snapshot"
)

// client is one spectator connection, only its write pump writes to conn
type client struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// Hub broadcasts msgpack snapshots, one binary message per observed frame
// Each spectator first receives a snapshot.Header describing the scene
// Slow spectators drop frames instead of stalling the simulation
type Hub struct {
	upgrader websocket.Upgrader
	header   []byte
	logger   *log.Logger

	mu      sync.RWMutex
	clients map[*client]struct{}
	dropped uint64
	closed  bool
}

// NewHub creates a hub for a scene of the given size
func NewHub(scene string, width, height float64, logger *log.Logger) (*Hub, error) {
	if logger == nil {
		logger = log.Default()
	}
	hdr, err := msgpack.Marshal(&snapshot.Header{Magic: "tumble-live", Version: 1, Scene: scene, Width: width, Height: height})
	if err != nil {
		return nil, err
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		header:  hdr,
		logger:  logger,
		clients: make(map[*client]struct{}),
	}, nil
}

// ServeHTTP upgrades the request and blocks until the spectator leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("[STREAM] upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}

	c := &client{conn: conn, send: make(chan []byte, parameter.StreamSendBuffer)}
	c.send <- h.header

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		conn.Close()
		return
	}
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.logger.Printf("[STREAM] spectator %s joined (%d watching)", r.RemoteAddr, n)

	go h.writePump(c)
	h.readPump(c)

	h.remove(c)
	h.logger.Printf("[STREAM] spectator %s left", r.RemoteAddr)
}

// readPump discards inbound messages, it returns when the peer closes
func (h *Hub) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ping := time.NewTicker(parameter.StreamPingInterval)
	defer func() {
		ping.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(parameter.StreamWriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.BinaryMessage, msg); err != nil {
				return
			}
		case <-ping.C:
			c.conn.SetWriteDeadline(time.Now().Add(parameter.StreamWriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.close()
	}
	h.mu.Unlock()
}

// Observe encodes the world once and queues it for every spectator
func (h *Hub) Observe(w *engine.World) {
	h.mu.RLock()
	idle := len(h.clients) == 0
	h.mu.RUnlock()
	if idle {
		return
	}

	s := snapshot.Capture(w)
	data, err := snapshot.Marshal(&s)
	if err != nil {
		h.logger.Printf("[STREAM] encode step %d: %v", s.Step, err)
		return
	}
	h.Broadcast(data)
}

// Broadcast queues a raw message for every spectator without blocking
func (h *Hub) Broadcast(data []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropped++
		}
	}
}

// Clients returns the number of connected spectators
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Dropped returns frames skipped because a spectator's queue was full
func (h *Hub) Dropped() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dropped
}

// Close disconnects every spectator and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		delete(h.clients, c)
		c.close()
	}
}
