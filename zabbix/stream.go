package zabbix

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	streamWriteWait = 10 * time.Second

	// Client send buffer; a client that can't drain this fast is dropped.
	streamSendBuffer = 64
)

var streamUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards are served from the same host
	},
}

// StreamMessage is the envelope pushed to live-alert subscribers.
type StreamMessage struct {
	Type      string     `json:"type"`
	Alerts    []AlertRow `json:"alerts"`
	Timestamp time.Time  `json:"timestamp"`
}

// AlertHub fans newly observed problem events out to websocket clients. It
// owns a dedicated session: the poller runs concurrently with API request
// handlers and sessions are single-flight by contract.
type AlertHub struct {
	session      *Session
	pollInterval time.Duration
	logger       *log.Logger
	devMode      bool

	mu        sync.Mutex
	clients   map[*streamClient]bool
	lastEvent int64 // highest eventid already broadcast

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type streamClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewAlertHub opens the hub's session. Call Start to begin polling and Stop
// to release everything.
func NewAlertHub(cfg Config) (*AlertHub, error) {
	cfg = applyDefaults(cfg)
	session, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &AlertHub{
		session:      session,
		pollInterval: cfg.Stream.PollInterval,
		logger:       log.Default(),
		devMode:      cfg.DevMode,
		clients:      make(map[*streamClient]bool),
		ctx:          ctx,
		cancel:       cancel,
	}, nil
}

// Start launches the poll loop. The first sweep only records the high-water mark
// so clients receive events that start after they could have connected.
func (h *AlertHub) Start() {
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.sweep(false)

		ticker := time.NewTicker(h.pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-h.ctx.Done():
				return
			case <-ticker.C:
				h.sweep(true)
			}
		}
	}()
}

// Stop halts polling, disconnects clients and closes the hub's session.
func (h *AlertHub) Stop() error {
	h.cancel()
	h.wg.Wait()

	h.mu.Lock()
	for c := range h.clients {
		close(c.send)
		c.conn.Close()
	}
	h.clients = make(map[*streamClient]bool)
	h.mu.Unlock()

	return h.session.Close()
}

// sweep fetches alerts and broadcasts those with an eventid above the water
// mark. Poll failures are logged and retried next tick; a dead database must
// not kill the hub.
func (h *AlertHub) sweep(broadcast bool) {
	resp, err := h.session.GetAlerts(AlertFilter{})
	if err != nil {
		h.logger.Printf("[zabbix] alert sweep failed: %v", err)
		return
	}

	var fresh []AlertRow
	high := h.lastEvent
	for _, a := range resp.Data {
		if a.EventID > h.lastEvent {
			fresh = append(fresh, a)
		}
		if a.EventID > high {
			high = a.EventID
		}
	}
	h.lastEvent = high

	if !broadcast || len(fresh) == 0 {
		return
	}
	payload, err := json.Marshal(StreamMessage{
		Type:      "alerts",
		Alerts:    fresh,
		Timestamp: time.Now(),
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
			// Slow client, drop it.
			delete(h.clients, c)
			close(c.send)
			c.conn.Close()
		}
	}
	h.mu.Unlock()
}

// Handler upgrades the request and keeps the connection until the client
// leaves.
func (h *AlertHub) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := streamUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		client := &streamClient{conn: conn, send: make(chan []byte, streamSendBuffer)}

		h.mu.Lock()
		h.clients[client] = true
		total := len(h.clients)
		h.mu.Unlock()
		if h.devMode {
			h.logger.Printf("[zabbix] stream client connected (total: %d)", total)
		}

		go client.writeLoop()
		client.readLoop(h)
	}
}

func (c *streamClient) writeLoop() {
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readLoop discards inbound frames; the feed is one-way. It returns when the
// peer hangs up, which unregisters the client.
func (c *streamClient) readLoop(h *AlertHub) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
		c.conn.Close()
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// ClientCount reports connected stream clients.
func (h *AlertHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}
