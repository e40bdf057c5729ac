package db

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client
var Ctx = context.Background()

const SuggestionTTL = 10 * time.Minute

func ConnectRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		fmt.Println("REDIS_URL environment variable is not set")
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}

	Redis = redis.NewClient(opt)

	_, err = Redis.Ping(Ctx).Result()
	return err
}

func CloseRedis() {
	if Redis != nil {
		Redis.Close()
	}
}

// SuggestionCache caches generated follow-up questions per ticker set.
// Lookups fail open so a dead Redis never blocks a request.
type SuggestionCache struct {
	client *redis.Client
}

func NewSuggestionCache(client *redis.Client) *SuggestionCache {
	return &SuggestionCache{client: client}
}

func (c *SuggestionCache) Get(key string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(Ctx, "suggest:"+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *SuggestionCache) Set(key string, value string) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Set(Ctx, "suggest:"+key, value, SuggestionTTL)
}
