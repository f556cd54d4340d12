package web

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/vovakirdan/jump-quest/internal/games/jumpquest"
	"github.com/vovakirdan/jump-quest/internal/telemetry"
)

const (
	// MaxSpectators caps concurrent websocket connections.
	MaxSpectators = 200
	// MaxSpectatorsPerIP caps connections from one address.
	MaxSpectatorsPerIP = 8

	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// Frame is one message on the spectator stream.
type Frame struct {
	Session  string              `json:"session"`
	Snapshot *jumpquest.Snapshot `json:"snapshot,omitempty"`
	Ended    bool                `json:"ended,omitempty"`
}

type spectator struct {
	conn    *websocket.Conn
	ip      string
	session string // empty watches every session
	send    chan []byte
}

type message struct {
	session string
	data    []byte
}

// Hub fans out game snapshots to websocket spectators.
type Hub struct {
	mu       sync.RWMutex
	clients  map[*spectator]struct{}
	perIP    map[string]int
	latest   map[string][]byte
	rateHz   float64
	logger   *log.Logger
	origins  []string
	upgrader websocket.Upgrader

	broadcast  chan message
	register   chan *spectator
	unregister chan *spectator
	done       chan struct{}
}

// HubConfig configures a Hub.
type HubConfig struct {
	// PublishHz caps snapshots per second per session.
	PublishHz float64
	// Origins allowed to open the websocket; empty origins (non-browser
	// clients) are always accepted.
	Origins []string
	Logger  *log.Logger
}

// NewHub creates a hub. Run must be started before spectators connect.
func NewHub(cfg HubConfig) *Hub {
	if cfg.PublishHz <= 0 {
		cfg.PublishHz = 10
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	h := &Hub{
		clients:    make(map[*spectator]struct{}),
		perIP:      make(map[string]int),
		latest:     make(map[string][]byte),
		rateHz:     cfg.PublishHz,
		logger:     cfg.Logger,
		origins:    cfg.Origins,
		broadcast:  make(chan message, 256),
		register:   make(chan *spectator),
		unregister: make(chan *spectator),
		done:       make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || originAllowed(h.origins, origin) {
		return true
	}
	h.logger.Warn("spectator rejected", "origin", origin)
	telemetry.RecordConnectionRejected("origin")
	return false
}

// originAllowed matches exact origins, "*" and a trailing ":*" port wildcard.
func originAllowed(allowed []string, origin string) bool {
	for _, a := range allowed {
		switch {
		case a == "*", a == origin:
			return true
		case strings.HasSuffix(a, ":*") && strings.HasPrefix(origin, strings.TrimSuffix(a, "*")):
			return true
		}
	}
	return false
}

// Run serves registrations and broadcasts until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			telemetry.UpdateSpectators(0)
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = struct{}{}
			for id, data := range h.latest {
				if c.session == "" || c.session == id {
					trySend(c, data)
				}
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("spectator connected", "ip", c.ip, "session", c.session, "total", n)
			telemetry.UpdateSpectators(n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				h.perIP[c.ip]--
				if h.perIP[c.ip] <= 0 {
					delete(h.perIP, c.ip)
				}
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			h.logger.Info("spectator disconnected", "ip", c.ip, "total", n)
			telemetry.UpdateSpectators(n)

		case m := <-h.broadcast:
			h.mu.RLock()
			for c := range h.clients {
				if c.session == "" || c.session == m.session {
					trySend(c, m.data)
				}
			}
			h.mu.RUnlock()
			telemetry.IncrementSpectatorMessages()
		}
	}
}

// trySend queues data for c, dropping it when the client is behind.
func trySend(c *spectator, data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (h *Hub) publish(session string, f Frame) {
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	h.mu.Lock()
	if f.Ended {
		delete(h.latest, session)
	} else {
		h.latest[session] = data
	}
	h.mu.Unlock()

	select {
	case h.broadcast <- message{session: session, data: data}:
	default:
	}
}

// Sessions returns the IDs of sessions with a published snapshot.
func (h *Hub) Sessions() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	ids := make([]string, 0, len(h.latest))
	for id := range h.latest {
		ids = append(ids, id)
	}
	return ids
}

// Spectators returns the number of connected spectators.
func (h *Hub) Spectators() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publisher streams one game session's snapshots, throttled.
type Publisher struct {
	hub     *Hub
	session string
	limiter *rate.Limiter
}

// Publisher returns a publisher for session.
func (h *Hub) Publisher(session string) *Publisher {
	return &Publisher{
		hub:     h,
		session: session,
		limiter: rate.NewLimiter(rate.Limit(h.rateHz), 1),
	}
}

// Publish sends snap unless the session is over its rate.
func (p *Publisher) Publish(snap jumpquest.Snapshot) {
	if p == nil || !p.limiter.Allow() {
		return
	}
	p.hub.publish(p.session, Frame{Session: p.session, Snapshot: &snap})
}

// Close announces the end of the session.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	p.hub.publish(p.session, Frame{Session: p.session, Ended: true})
}

// reserve claims a connection slot for ip.
func (h *Hub) reserve(ip string) (bool, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	total := 0
	for _, n := range h.perIP {
		total += n
	}
	switch {
	case total >= MaxSpectators:
		return false, "ws_total_limit"
	case h.perIP[ip] >= MaxSpectatorsPerIP:
		return false, "ws_ip_limit"
	}
	h.perIP[ip]++
	return true, ""
}

func (h *Hub) release(ip string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.perIP[ip]--
	if h.perIP[ip] <= 0 {
		delete(h.perIP, ip)
	}
}

// ServeHTTP upgrades a spectator connection. ?session=ID filters the
// stream to one game.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ip := ClientIP(r)
	if ok, reason := h.reserve(ip); !ok {
		telemetry.RecordConnectionRejected(reason)
		http.Error(w, "Too many spectators", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.release(ip)
		h.logger.Debug("websocket upgrade failed", "err", err)
		return
	}

	c := &spectator{
		conn:    conn,
		ip:      ip,
		session: r.URL.Query().Get("session"),
		send:    make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		h.release(ip)
		conn.Close()
		return
	}

	go h.writePump(c)
	go h.readPump(c)
}

// readPump discards client messages and detects disconnects.
func (h *Hub) readPump(c *spectator) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *spectator) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
