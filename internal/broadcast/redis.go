package broadcast

import (
	"context"
	"encoding/json"
	"sync/atomic"

	"github.com/redis/go-redis/v9"

	"photo-bridge/internal/domain"
	"photo-bridge/internal/logging"
)

// RedisRelay publishes through a Redis channel and feeds everything received
// on it into a local Hub, so every API process sees the same live status.
type RedisRelay struct {
	*Hub
	client  *redis.Client
	channel string
	log     logging.Logger

	// relaying is set while Run is forwarding the channel to the local Hub.
	relaying atomic.Bool
}

func NewRedisRelay(client *redis.Client, channel string, log logging.Logger) *RedisRelay {
	return &RedisRelay{
		Hub:     NewHub(),
		client:  client,
		channel: channel,
		log:     log.With("component", "broadcast", "channel", channel),
	}
}

// Publish falls back to local delivery when Redis is unreachable or when Run
// is not forwarding the channel.
func (r *RedisRelay) Publish(ctx context.Context, msg domain.StatusMessage) {
	payload, err := json.Marshal(msg)
	if err != nil {
		r.log.Error(ctx, "encode status message", "error", err)
		r.Hub.Publish(ctx, msg)
		return
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.log.Warn(ctx, "redis publish failed, delivering locally", "error", err)
		r.Hub.Publish(ctx, msg)
		return
	}
	if !r.relaying.Load() {
		r.Hub.Publish(ctx, msg)
	}
}

// Relaying reports whether Run is currently forwarding the channel.
func (r *RedisRelay) Relaying() bool { return r.relaying.Load() }

// Run forwards channel messages to local subscribers until ctx is done.
func (r *RedisRelay) Run(ctx context.Context) error {
	pubsub := r.client.Subscribe(ctx, r.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}
	r.relaying.Store(true)
	defer r.relaying.Store(false)

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			msg, err := decodeMessage(m.Payload)
			if err != nil {
				r.log.Warn(ctx, "dropping malformed status message", "error", err)
				continue
			}
			r.Hub.Publish(ctx, msg)
		}
	}
}

func decodeMessage(payload string) (domain.StatusMessage, error) {
	var msg domain.StatusMessage
	err := json.Unmarshal([]byte(payload), &msg)
	return msg, err
}
