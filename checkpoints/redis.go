package checkpoints

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "windfarm:ckpt:"

// RedisStore keeps checkpoints in a Redis instance so that runs on
// different machines can share them
type RedisStore struct {
	ctx    context.Context
	client *redis.Client
}

var _ Store = &RedisStore{}

// NewRedisStore connects to the given address and pings it once
func NewRedisStore(ctx context.Context, addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis at %s: %w", addr, err)
	}
	return &RedisStore{
		ctx:    ctx,
		client: client,
	}, nil
}

func (r *RedisStore) Put(key string, data []byte) error {
	return r.client.Set(r.ctx, redisKeyPrefix+key, data, 0).Err()
}

func (r *RedisStore) Get(key string) ([]byte, error) {
	return r.client.Get(r.ctx, redisKeyPrefix+key).Bytes()
}

func (r *RedisStore) List(prefix string) ([]string, error) {
	found, err := r.client.Keys(r.ctx, redisKeyPrefix+prefix+"*").Result()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(found))
	for _, k := range found {
		keys = append(keys, strings.TrimPrefix(k, redisKeyPrefix))
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
