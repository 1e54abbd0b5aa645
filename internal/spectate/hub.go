// Package spectate streams races to read-only WebSocket spectators.
//
// A Hub keeps the connected clients per race and fans serialized events out
// to them. A Feed is the race.Notifier side: it turns engine events into
// messages and keeps the latest view of its race for new connections and
// the HTTP state endpoint. Server ties both to gorilla/mux routes.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	sendBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message is one frame sent to spectators.
type Message struct {
	Race  string `json:"race"`
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client is one spectator connection.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	raceID string
}

type outbound struct {
	raceID string
	data   []byte
}

// Hub maintains the spectators of every race and broadcasts to them.
type Hub struct {
	// Registered clients by race ID
	races map[string]map[*Client]bool

	broadcast  chan outbound
	register   chan *Client
	unregister chan *Client

	// closed when Run returns
	done chan struct{}

	logger *log.Logger
}

// NewHub creates a hub. Call Run to start it.
func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		races:      make(map[string]map[*Client]bool),
		broadcast:  make(chan outbound, sendBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run serves the hub until ctx is done, then disconnects every client.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, clients := range h.races {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return

		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case msg := <-h.broadcast:
			h.broadcastMessage(msg)
		}
	}
}

// ServeWS upgrades the request and attaches it to raceID. initial, when
// not nil, is the first frame the client receives.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, raceID string, initial []byte) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "race", raceID, "error", err)
		return
	}

	client := &Client{
		hub:    h,
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		raceID: raceID,
	}
	if initial != nil {
		client.send <- initial
	}

	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Broadcast queues an event for the spectators of raceID. It never blocks
// the caller; events are dropped when the hub falls behind.
func (h *Hub) Broadcast(raceID, event string, data any) {
	payload, err := encode(raceID, event, data)
	if err != nil {
		h.logger.Error("cannot encode spectator message", "event", event, "error", err)
		return
	}
	select {
	case h.broadcast <- outbound{raceID: raceID, data: payload}:
	default:
		h.logger.Warn("spectator queue full, dropping event", "race", raceID, "event", event)
	}
}

func encode(raceID, event string, data any) ([]byte, error) {
	return json.Marshal(&Message{Race: raceID, Event: event, Data: data})
}

func (h *Hub) registerClient(client *Client) {
	if h.races[client.raceID] == nil {
		h.races[client.raceID] = make(map[*Client]bool)
	}
	h.races[client.raceID][client] = true
	h.logger.Debug("spectator joined", "race", client.raceID, "spectators", len(h.races[client.raceID]))
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.races[client.raceID]
	if !ok || !clients[client] {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.races, client.raceID)
	}
	h.logger.Debug("spectator left", "race", client.raceID)
}

func (h *Hub) broadcastMessage(msg outbound) {
	for client := range h.races[msg.raceID] {
		select {
		case client.send <- msg.data:
		default:
			// Client's send channel is full, drop it
			h.unregisterClient(client)
		}
	}
}

// readPump only keeps the connection alive; spectators cannot send commands.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "race", c.raceID, "error", err)
			}
			return
		}
	}
}

// writePump sends one message per frame so clients can decode frames as
// they arrive.
func (c *Client) writePump() {
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
				// The hub closed the channel
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
