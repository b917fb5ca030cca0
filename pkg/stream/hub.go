package stream

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/sirupsen/logrus"

	"webdesk/pkg/wm"
)

// Message types.
const (
	TypeState  = "state"
	TypeWindow = "window"
)

const (
	sendBuffer   = 32
	writeTimeout = 5 * time.Second
)

// ErrHubClosed is returned by Serve after Close.
var ErrHubClosed = errors.New("stream hub closed")

// Message is one frame sent to a client.
type Message struct {
	Type  string    `json:"type"`
	Event *wm.Event `json:"event,omitempty"`
	State any       `json:"state,omitempty"`
}

// Config holds hub configuration.
type Config struct {
	// MaxClients bounds concurrent connections. Zero means 64.
	MaxClients int
	// OriginPatterns lists the accepted cross-origin hosts.
	OriginPatterns []string
	// State returns the snapshot a new client starts from.
	State  func() any
	Logger logrus.FieldLogger
}

type client struct {
	send   chan Message
	cancel context.CancelFunc
}

// Hub fans window events out to WebSocket clients.
type Hub struct {
	log     logrus.FieldLogger
	state   func() any
	max     int
	origins []string

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	wg      sync.WaitGroup
}

// NewHub creates a hub.
func NewHub(cfg Config) *Hub {
	if cfg.MaxClients <= 0 {
		cfg.MaxClients = 64
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}
	return &Hub{
		log:     cfg.Logger.WithField("component", "stream"),
		state:   cfg.State,
		max:     cfg.MaxClients,
		origins: cfg.OriginPatterns,
		clients: make(map[*client]struct{}),
	}
}

// WindowEvent implements wm.Listener. It never blocks: a client whose
// buffer is full is dropped.
func (h *Hub) WindowEvent(ev wm.Event) {
	h.broadcast(Message{Type: TypeWindow, Event: &ev})
}

func (h *Hub) broadcast(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.send <- msg:
		default:
			h.log.Warn("dropping slow stream client")
			h.removeLocked(c)
		}
	}
}

// Clients returns the number of connected clients.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// ServeHTTP upgrades the request and streams to it until either side
// goes away.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	switch {
	case h.closed:
		h.mu.Unlock()
		http.Error(w, ErrHubClosed.Error(), http.StatusServiceUnavailable)
		return
	case len(h.clients) >= h.max:
		h.mu.Unlock()
		http.Error(w, "too many stream clients", http.StatusServiceUnavailable)
		return
	}
	h.mu.Unlock()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.log.WithError(err).Debug("stream upgrade failed")
		return
	}

	// The hub only writes; CloseRead handles control frames and ends ctx
	// when the peer closes.
	ctx, cancel := context.WithCancel(conn.CloseRead(context.Background()))
	c := &client{send: make(chan Message, sendBuffer), cancel: cancel}
	if !h.add(c) {
		cancel()
		conn.Close(websocket.StatusGoingAway, ErrHubClosed.Error())
		return
	}
	defer h.remove(c)

	if h.state != nil {
		select {
		case c.send <- Message{Type: TypeState, State: h.state()}:
		default:
		}
	}

	h.log.Debug("stream client connected")
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "")
			return
		case msg := <-c.send:
			wctx, wcancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, msg)
			wcancel()
			if err != nil {
				h.log.WithError(err).Debug("stream write failed")
				conn.CloseNow()
				return
			}
		}
	}
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	h.removeLocked(c)
	h.mu.Unlock()
	h.wg.Done()
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.cancel()
	}
}

// Close disconnects every client and waits for their handlers to return.
// Later upgrades are refused.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
	h.mu.Unlock()

	h.wg.Wait()
}
