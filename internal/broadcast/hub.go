// Package broadcast fans upload lifecycle messages out to live dashboards.
//
// Delivery is best-effort and at-most-once: a subscriber whose buffer is full
// misses the message, and nothing is replayed to late subscribers.
package broadcast

import (
	"context"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"

	"photo-bridge/internal/domain"
)

const subscriberBuffer = 32

type Publisher interface {
	Publish(ctx context.Context, msg domain.StatusMessage)
}

type Broadcaster interface {
	Publisher
	Subscribe() *Subscription
	Unsubscribe(sub *Subscription)
}

// Subscription is one connected dashboard. C is closed on Unsubscribe.
type Subscription struct {
	ID string
	C  <-chan domain.StatusMessage

	ch chan domain.StatusMessage
}

// Hub is the process-local broadcaster.
type Hub struct {
	subscribers cmap.ConcurrentMap[string, *Subscription]
}

func NewHub() *Hub {
	return &Hub{subscribers: cmap.New[*Subscription]()}
}

func (h *Hub) Subscribe() *Subscription {
	ch := make(chan domain.StatusMessage, subscriberBuffer)
	sub := &Subscription{ID: uuid.NewString(), C: ch, ch: ch}
	h.subscribers.Set(sub.ID, sub)
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}
	// Closed under the shard lock so Publish never sends on a closed channel.
	h.subscribers.RemoveCb(sub.ID, func(key string, v *Subscription, exists bool) bool {
		if exists {
			close(v.ch)
		}
		return true
	})
}

func (h *Hub) Publish(_ context.Context, msg domain.StatusMessage) {
	h.subscribers.IterCb(func(_ string, sub *Subscription) {
		select {
		case sub.ch <- msg:
		default:
		}
	})
}

func (h *Hub) Count() int {
	return h.subscribers.Count()
}
