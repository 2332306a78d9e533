// Package presence tracks which users hold a live realtime connection and
// relays chat messages to them after the message has been persisted.
package presence

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/outfitai/outfitai/internal/logging"
	"github.com/outfitai/outfitai/internal/server/metrics"
	"github.com/outfitai/outfitai/internal/server/models"
)

// EventReceiveMessage is pushed to an online recipient.
const EventReceiveMessage = "receive_message"

// Conn is an opaque live connection handle. Handles are compared by
// identity, so implementations must be pointer types.
type Conn interface {
	Send(ctx context.Context, event string, payload any) error
	Close() error
}

// MessageStore persists chat messages. It is the system of record; the
// router only adds best-effort live delivery on top of it.
type MessageStore interface {
	Save(ctx context.Context, sender, recipient, body string) (*models.Message, error)
}

// ReceivedMessage is the receive_message payload.
type ReceivedMessage struct {
	Sender  string `json:"sender"`
	Message string `json:"message"`
}

// Router maps an online username to its most recent connection.
type Router struct {
	mu     sync.RWMutex
	online map[string]Conn

	store   MessageStore
	log     logging.Logger
	metrics *metrics.Metrics
}

func NewRouter(store MessageStore, log logging.Logger, m *metrics.Metrics) *Router {
	return &Router{
		online:  make(map[string]Conn),
		store:   store,
		log:     log.With("module", "presence"),
		metrics: m,
	}
}

// Register binds username to conn, replacing any previous handle.
// The replaced handle is not closed.
func (r *Router) Register(username string, conn Conn) {
	r.mu.Lock()
	r.online[username] = conn
	n := len(r.online)
	r.mu.Unlock()

	r.metrics.PresenceOnline.Set(float64(n))
}

// Lookup returns the live handle for username, if any.
func (r *Router) Lookup(username string) (Conn, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.online[username]
	return c, ok
}

// Unregister removes the entry whose handle is conn. An entry that has
// since been replaced by a newer connection for the same username stays.
func (r *Router) Unregister(conn Conn) bool {
	r.mu.Lock()
	removed := false
	for username, c := range r.online {
		if c == conn {
			delete(r.online, username)
			removed = true
			break
		}
	}
	n := len(r.online)
	r.mu.Unlock()

	if removed {
		r.metrics.PresenceOnline.Set(float64(n))
	}
	return removed
}

// Online returns the sorted usernames currently connected.
func (r *Router) Online() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.online))
	for u := range r.online {
		names = append(names, u)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Relay stores the message and then tries to push it to the recipient.
// A storage error aborts before anything is pushed. An offline recipient
// or a failed push is reported through delivered=false, never as an error.
func (r *Router) Relay(ctx context.Context, sender, recipient, body string) (*models.Message, bool, error) {
	msg, err := r.store.Save(ctx, sender, recipient, body)
	if err != nil {
		return nil, false, fmt.Errorf("persist message: %w", err)
	}

	delivered := false
	if conn, ok := r.Lookup(recipient); ok {
		if err := conn.Send(ctx, EventReceiveMessage, ReceivedMessage{Sender: sender, Message: body}); err != nil {
			r.log.Warn(ctx, "live push failed", "recipient", recipient, "error", err)
		} else {
			delivered = true
		}
	}

	outcome := metrics.DeliveryDeferred
	if delivered {
		outcome = metrics.DeliveryLive
	}
	r.metrics.Relays.WithLabelValues(outcome).Inc()
	r.log.Debug(ctx, "message relayed", "sender", sender, "recipient", recipient, "delivered", delivered)

	return msg, delivered, nil
}

// CloseAll closes every registered connection and empties the table.
func (r *Router) CloseAll() {
	r.mu.Lock()
	conns := make([]Conn, 0, len(r.online))
	for _, c := range r.online {
		conns = append(conns, c)
	}
	r.online = make(map[string]Conn)
	r.mu.Unlock()

	r.metrics.PresenceOnline.Set(0)
	for _, c := range conns {
		_ = c.Close()
	}
}
