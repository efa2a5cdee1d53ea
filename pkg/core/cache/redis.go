package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// analysisTTL bounds how long a cached analysis is served before the host
// recomputes it.
const analysisTTL = 24 * time.Hour

// Redis is the Repository backed by a Redis instance.
type Redis struct {
	client *redis.Client
	ctx    context.Context
}

// NewRedis connects a Repository to the given address.
func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ctx:    context.Background(),
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(r.ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(r.ctx, key, value, analysisTTL).Err()
}
