// Package realtime serves the /ws endpoint: it upgrades authenticated
// requests to websockets and translates chat events into presence calls.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"github.com/outfitai/outfitai/internal/common"
	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/auth"
	"github.com/outfitai/outfitai/internal/server/metrics"
	"github.com/outfitai/outfitai/internal/server/presence"
)

// Event names.
const (
	EventJoinRoom    = "join_room"
	EventJoined      = "joined"
	EventSendMessage = "send_message"
	EventMessageSent = "message_sent"
	EventError       = "error"
)

const eventTimeout = 10 * time.Second

type inbound struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type sendMessageData struct {
	Sender    string `json:"sender"`
	Recipient string `json:"recipient"`
	Message   string `json:"message"`
}

type messageSentData struct {
	ID        int64 `json:"id"`
	Delivered bool  `json:"delivered"`
}

type errorData struct {
	Msg string `json:"msg"`
}

// Handler upgrades gated requests and runs one read loop per connection.
type Handler struct {
	router   *presence.Router
	upgrader websocket.Upgrader
	log      logging.Logger
	metrics  *metrics.Metrics
}

func NewHandler(router *presence.Router, allowedOrigins []string, log logging.Logger, m *metrics.Metrics) *Handler {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[strings.TrimRight(o, "/")] = struct{}{}
	}

	return &Handler{
		router: router,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				_, ok := allowed[origin]
				return ok
			},
		},
		log:     log.With("module", "realtime"),
		metrics: m,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := auth.IdentityFrom(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn(r.Context(), "upgrade failed", "error", err)
		return
	}

	c := newClient(ws)
	go c.pingLoop()

	h.log.Info(r.Context(), "connection opened", "username", id.Username)
	h.readLoop(r.Context(), c, id)

	if h.router.Unregister(c) {
		h.log.Info(r.Context(), "user offline", "username", c.username)
	}
	_ = c.Close()
}

func (h *Handler) readLoop(ctx context.Context, c *Client, id auth.Identity) {
	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var in inbound
		if err := c.ws.ReadJSON(&in); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.log.Warn(ctx, "read failed", "username", id.Username, "error", err)
			}
			return
		}
		_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
		h.metrics.WebsocketEvents.WithLabelValues(eventLabel(in.Event)).Inc()

		evCtx, cancel := context.WithTimeout(ctx, eventTimeout)
		h.dispatch(evCtx, c, id, in)
		cancel()
	}
}

func (h *Handler) dispatch(ctx context.Context, c *Client, id auth.Identity, in inbound) {
	switch in.Event {
	case EventJoinRoom:
		h.joinRoom(ctx, c, id, in.Data)
	case EventSendMessage:
		h.sendMessage(ctx, c, in.Data)
	default:
		h.sendError(ctx, c, "Unknown event")
	}
}

// joinRoom accepts either "alice" or {"username":"alice"}. A socket may
// only announce the username it authenticated as.
func (h *Handler) joinRoom(ctx context.Context, c *Client, id auth.Identity, data json.RawMessage) {
	username, err := parseUsername(data)
	if err != nil || username == "" {
		h.sendError(ctx, c, "Invalid username")
		return
	}
	if username != id.Username {
		h.log.Warn(ctx, "join_room identity mismatch", "claimed", username, "username", id.Username)
		h.sendError(ctx, c, "Cannot join as another user")
		return
	}

	c.username = username
	h.router.Register(username, c)
	h.log.Info(ctx, "user online", "username", username)
	_ = c.Send(ctx, EventJoined, map[string]string{"username": username})
}

func (h *Handler) sendMessage(ctx context.Context, c *Client, data json.RawMessage) {
	if c.username == "" {
		h.sendError(ctx, c, "Join a room first")
		return
	}

	var in sendMessageData
	if err := json.Unmarshal(data, &in); err != nil {
		h.sendError(ctx, c, "Invalid message")
		return
	}
	if in.Sender != "" && in.Sender != c.username {
		h.sendError(ctx, c, "Cannot send as another user")
		return
	}
	in.Recipient = strings.TrimSpace(in.Recipient)
	if in.Recipient == "" || strings.TrimSpace(in.Message) == "" {
		h.sendError(ctx, c, "Recipient and message are required")
		return
	}

	msg, delivered, err := h.router.Relay(ctx, c.username, in.Recipient, in.Message)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			h.sendError(ctx, c, "User not found")
			return
		}
		h.log.Error(ctx, "relay failed", "sender", c.username, "recipient", in.Recipient, "error", err)
		h.sendError(ctx, c, "Failed to send message")
		return
	}

	_ = c.Send(ctx, EventMessageSent, messageSentData{ID: msg.ID, Delivered: delivered})
}

// eventLabel keeps client-chosen event names out of metric labels.
func eventLabel(event string) string {
	switch event {
	case EventJoinRoom, EventSendMessage:
		return event
	}
	return "unknown"
}

func (h *Handler) sendError(ctx context.Context, c *Client, msg string) {
	_ = c.Send(ctx, EventError, errorData{Msg: msg})
}

func parseUsername(data json.RawMessage) (string, error) {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return strings.TrimSpace(s), nil
	}

	var obj struct {
		Username string `json:"username"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	return strings.TrimSpace(obj.Username), nil
}
