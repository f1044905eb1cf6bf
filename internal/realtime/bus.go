package realtime

import (
	"context"
	"log"

	"wizard-writing-study/internal/worker"
	"wizard-writing-study/redis"
)

// redis channel prefix for change events
const channelPrefix = "changes:"

// Notifier is the write-side of the change feed. Services notify after every
// storage write; they never wait on delivery.
type Notifier interface {
	Notify(event ChangeEvent)
}

// Bus routes change events from services to subscribed websocket clients.
// With Redis available events travel through pub/sub so that every server
// instance fans out to its own sockets; without it the bus degrades to
// in-process delivery.
type Bus struct {
	hub  *Hub
	pool *worker.WorkerPool
}

func NewBus(hub *Hub, pool *worker.WorkerPool) *Bus {
	return &Bus{hub: hub, pool: pool}
}

// Notify publishes the event in the background so request handlers never
// block on fan-out. Publish failures are logged and dropped, matching the
// no-retry policy of the rest of the system.
func (b *Bus) Notify(event ChangeEvent) {
	b.pool.Submit(func(ctx context.Context) error {
		payload := event.Marshal()

		if redis.RedisClient == nil {
			b.hub.Broadcast(event.Topic(), payload)
			return nil
		}

		return redis.Publish(ctx, channelPrefix+event.Topic(), payload)
	})
}

// Run consumes the Redis change feed and fans messages out to the hub.
// It returns when ctx is cancelled, or immediately when Redis is absent
// (Notify then broadcasts directly).
func (b *Bus) Run(ctx context.Context) {
	pubsub := redis.PSubscribe(ctx, channelPrefix+"*")
	if pubsub == nil {
		return
	}
	defer pubsub.Close()

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				log.Println("Change feed subscription closed")
				return
			}
			topic := msg.Channel[len(channelPrefix):]
			b.hub.Broadcast(topic, []byte(msg.Payload))
		}
	}
}
