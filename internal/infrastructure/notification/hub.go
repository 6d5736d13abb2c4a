package notification

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"mainta/internal/domain/shared/events"
	"mainta/internal/shared/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Hub broadcasts issue events to connected websocket clients. A client
// whose send queue fills up is dropped rather than blocking the hub.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	done       chan struct{}
	queueSize  int
	upgrader   websocket.Upgrader
	logger     logger.Interface
}

// Client is one websocket subscriber.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

// envelope is the wire format: {"event": "...", "data": {...}}.
type envelope struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

func NewHub(queueSize int, allowedOrigins []string, log logger.Interface) *Hub {
	if queueSize <= 0 {
		queueSize = 32
	}
	if log == nil {
		log = logger.NewLogger()
	}

	return &Hub{
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 64),
		done:       make(chan struct{}),
		queueSize:  queueSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: log.With("component", "notification.hub"),
	}
}

func originChecker(allowedOrigins []string) func(r *http.Request) bool {
	allowAll := len(allowedOrigins) == 0
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if origin == "*" {
			allowAll = true
		}
		allowed[origin] = true
	}

	return func(r *http.Request) bool {
		if allowAll {
			return true
		}
		return allowed[r.Header.Get("Origin")]
	}
}

// Run processes registrations and broadcasts until Stop is called.
func (h *Hub) Run() {
	for {
		select {
		case <-h.done:
			for client := range h.clients {
				close(client.send)
				delete(h.clients, client)
			}
			return
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Debugw("websocket client connected", "clients", len(h.clients))
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
				h.logger.Debugw("websocket client disconnected", "clients", len(h.clients))
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					// Client fell behind, drop it.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Notify implements Sink: the event is serialized once and fanned out to
// every connected client.
func (h *Hub) Notify(event events.DomainEvent) error {
	env := envelope{Event: event.EventName()}
	if pe, ok := event.(payloadEvent); ok {
		env.Data = pe.Payload()
	}

	message, err := json.Marshal(env)
	if err != nil {
		return err
	}

	select {
	case h.broadcast <- message:
	default:
		h.logger.Warnw("broadcast queue full, dropping event", "event", event.EventName())
	}
	return nil
}

// HandleConnection upgrades an HTTP request to a websocket subscription.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request) error {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	client := &Client{
		hub:  h,
		conn: conn,
		send: make(chan []byte, h.queueSize),
	}

	// The run loop stops consuming register once Stop is called; a
	// bare send here would hang the handler during shutdown.
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return nil
	}

	go client.writePump()
	go client.readPump()

	return nil
}

// readPump discards inbound frames; the channel is broadcast-only. It
// exists to notice closes and answer pings.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
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

// writePump pumps broadcast messages to the websocket connection.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
