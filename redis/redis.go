package redis

import (
	"context"
	"log"

	"wizard-writing-study/internal/config"

	"github.com/redis/go-redis/v9"
)

var Ctx = context.Background()
var RedisClient *redis.Client

func InitRedis() {
	RedisClient = redis.NewClient(&redis.Options{
		Addr: config.AppConfig.RedisAddress,
	})
	_, err := RedisClient.Ping(Ctx).Result()
	if err != nil {
		log.Println("Redis not available. Running with in-process change notifications only.")
		RedisClient = nil
		return
	}

	log.Println("Redis connected successfully.")
}

// Publish sends a payload on the given channel. No-op when Redis is unavailable.
func Publish(ctx context.Context, channel string, payload []byte) error {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.Publish(ctx, channel, payload).Err()
}

// PSubscribe opens a pattern subscription. Returns nil when Redis is unavailable.
func PSubscribe(ctx context.Context, pattern string) *redis.PubSub {
	if RedisClient == nil {
		return nil
	}
	return RedisClient.PSubscribe(ctx, pattern)
}
