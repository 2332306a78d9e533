package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 64 * 1024
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// Client is one websocket connection. It implements presence.Conn.
type Client struct {
	ws      *websocket.Conn
	writeMu sync.Mutex

	closeOnce sync.Once
	done      chan struct{}

	// username is set by join_room and only touched by the read loop.
	username string
}

func newClient(ws *websocket.Conn) *Client {
	return &Client{ws: ws, done: make(chan struct{})}
}

// Send writes one event. Writes are serialized so frames from concurrent
// relays never interleave.
func (c *Client) Send(ctx context.Context, event string, payload any) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeWait)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.ws.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return c.ws.WriteJSON(Envelope{Event: event, Data: payload})
}

// Close sends a close frame and tears the connection down. Safe to call twice.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		err = c.ws.Close()
	})
	return err
}

// pingLoop keeps idle connections alive until done is closed.
func (c *Client) pingLoop() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		}
	}
}
