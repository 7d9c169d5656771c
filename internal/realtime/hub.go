package realtime

import (
	"log/slog"
	"sync"

	"github.com/aibekov/task-tracker/internal/metrics"
)

// Event is one realtime message. Data must be JSON-serializable; for
// task.created it is the broadcast payload from the dispatcher.
type Event struct {
	Name string
	Data any
}

// TaskCreatedEvent is the wire name clients listen for.
const TaskCreatedEvent = "task.created"

const subscriptionBuffer = 16

// Subscription is one live listener on a user's private channel. Close
// it when the client disconnects; C is closed afterwards.
type Subscription struct {
	C chan Event

	hub    *Hub
	userID string
	once   sync.Once
}

func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
	})
}

// Hub fans events out to the live subscriptions of a single user's
// channel. Delivery is at-most-once: a subscription whose buffer is
// full simply misses the event, and a user with no subscriptions
// receives nothing. Durability lives in the notifications table, never
// here.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscription]struct{}
	closed bool
	logger *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		subs:   make(map[string]map[*Subscription]struct{}),
		logger: logger.With("component", "realtime_hub"),
	}
}

// Subscribe registers a listener for the user's channel.
func (h *Hub) Subscribe(userID string) *Subscription {
	sub := &Subscription{
		C:      make(chan Event, subscriptionBuffer),
		hub:    h,
		userID: userID,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		close(sub.C)
		return sub
	}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*Subscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	metrics.RealtimeSubscribers.Inc()
	return sub
}

func (h *Hub) unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.subs[sub.userID]; ok {
		if _, member := set[sub]; member {
			delete(set, sub)
			if len(set) == 0 {
				delete(h.subs, sub.userID)
			}
			metrics.RealtimeSubscribers.Dec()
			close(sub.C)
		}
	}
}

// Publish delivers ev to every current subscription of the user and
// returns how many received it. It never blocks: a slow consumer's
// event is dropped and counted, not queued.
func (h *Hub) Publish(userID string, ev Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	set := h.subs[userID]
	if len(set) == 0 {
		metrics.RealtimePublishedTotal.WithLabelValues("no_subscriber").Inc()
		return 0
	}

	delivered := 0
	for sub := range set {
		select {
		case sub.C <- ev:
			delivered++
			metrics.RealtimePublishedTotal.WithLabelValues("delivered").Inc()
		default:
			metrics.RealtimePublishedTotal.WithLabelValues("dropped").Inc()
			h.logger.Warn("subscription buffer full, event dropped",
				"user_id", userID, "event", ev.Name)
		}
	}
	return delivered
}

// Close terminates every subscription. Used on shutdown so SSE handlers
// unblock promptly.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for userID, set := range h.subs {
		for sub := range set {
			close(sub.C)
			metrics.RealtimeSubscribers.Dec()
		}
		delete(h.subs, userID)
	}
}

// SubscriberCount reports live subscriptions for one user.
func (h *Hub) SubscriberCount(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[userID])
}
