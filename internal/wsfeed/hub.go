package wsfeed

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// pongWait is the time allowed to read the next pong from the peer.
	pongWait = 60 * time.Second

	// pingPeriod is how often pings are sent; must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// maxMessageSize bounds incoming frames; spectators never send
	// anything but this still guards against a misbehaving client.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client is one spectator connection, scoped to a single map.
type Client struct {
	hub   *Hub
	conn  *websocket.Conn
	send  chan []byte
	mapID string
}

// Hub maintains the set of spectators per map and fans out snapshots.
type Hub struct {
	logger *zap.Logger

	clients map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	broadcast  chan *mapMessage
}

type mapMessage struct {
	mapID string
	data  []byte
}

// NewHub builds an idle Hub; callers must run Run in its own goroutine.
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *mapMessage),
	}
}

// Run drives the hub's event loop until stop is closed.
func (h *Hub) Run(stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case msg := <-h.broadcast:
			h.deliver(msg)
		}
	}
}

// ServeWS upgrades r into a spectator connection for mapID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, mapID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, 16), mapID: mapID}
	h.register <- client

	go client.writePump()
	go client.readPump()
}

// Broadcast encodes snap and fans it out to every spectator on its map.
func (h *Hub) Broadcast(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		h.logger.Warn("failed to marshal snapshot", zap.Error(err))
		return
	}
	h.broadcast <- &mapMessage{mapID: snap.MapID, data: data}
}

func (h *Hub) registerClient(c *Client) {
	if h.clients[c.mapID] == nil {
		h.clients[c.mapID] = make(map[*Client]bool)
	}
	h.clients[c.mapID][c] = true
}

func (h *Hub) unregisterClient(c *Client) {
	clients, ok := h.clients[c.mapID]
	if !ok {
		return
	}
	if _, ok := clients[c]; ok {
		delete(clients, c)
		close(c.send)
		if len(clients) == 0 {
			delete(h.clients, c.mapID)
		}
	}
}

func (h *Hub) deliver(msg *mapMessage) {
	for client := range h.clients[msg.mapID] {
		select {
		case client.send <- msg.data:
		default:
			h.unregisterClient(client)
		}
	}
}

// readPump exists only to detect peer disconnects and keep the read
// deadline alive via pong frames; spectators send no application data.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
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
			break
		}
	}
}

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
