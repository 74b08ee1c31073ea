package ws

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// EventType classifies a presence transition.
type EventType string

const (
	EventOnline   EventType = "online"
	EventOffline  EventType = "offline"
	EventReplaced EventType = "replaced"
)

// Event is emitted by the registry on every presence transition and
// consumed by the Tracker off the connection's critical path.
type Event struct {
	Type   EventType
	UserID uint
	At     time.Time
}

// Registry is the single authority for which users currently hold a live
// connection. At most one connection per user: a newer connection replaces
// the previous one.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]*Client
	events  chan Event
	logger  *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		clients: make(map[uint]*Client),
		events:  make(chan Event, 256),
		logger:  logger,
	}
}

// Register installs the mapping and returns the displaced client, if any.
// The registry does not close the displaced connection; the caller does.
func (r *Registry) Register(userID uint, client *Client) *Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.clients[userID]
	r.clients[userID] = client

	if prev == nil {
		r.emit(Event{Type: EventOnline, UserID: userID, At: time.Now()})
	} else {
		r.emit(Event{Type: EventReplaced, UserID: userID, At: time.Now()})
	}
	return prev
}

// Unregister removes the mapping only when client is the one currently
// registered, so a stale close callback cannot evict a newer connection.
// It reports whether removal actually happened.
func (r *Registry) Unregister(userID uint, client *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.clients[userID]
	if !ok || current != client {
		return false
	}
	delete(r.clients, userID)

	r.emit(Event{Type: EventOffline, UserID: userID, At: time.Now()})
	return true
}

// Lookup returns the current live client for the user, if any.
func (r *Registry) Lookup(userID uint) (*Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	client, ok := r.clients[userID]
	return client, ok
}

func (r *Registry) IsOnline(userID uint) bool {
	_, ok := r.Lookup(userID)
	return ok
}

// OnlineUsers returns the ids of all currently connected users.
func (r *Registry) OnlineUsers() []uint {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]uint, 0, len(r.clients))
	for userID := range r.clients {
		ids = append(ids, userID)
	}
	return ids
}

// Events exposes the presence transition stream consumed by the Tracker.
func (r *Registry) Events() <-chan Event {
	return r.events
}

// emit must not block registry mutation; a full buffer drops the event and
// the durable presence row catches up on the next transition.
func (r *Registry) emit(ev Event) {
	select {
	case r.events <- ev:
	default:
		r.logger.Warn("presence event dropped",
			zap.String("event", string(ev.Type)),
			zap.Uint("userId", ev.UserID))
	}
}
