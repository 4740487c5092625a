// Package redis implements a Redis inventory storage backend.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultPrefix prefixes every key written by the backend.
const DefaultPrefix = "nanoinv:"

const (
	namesKey      = "names"      // list of item names in insertion order
	quantitiesKey = "quantities" // hash of item name to quantity
	savedKey      = "saved"      // item count of the last save
)

// Redis is an inventory storage backend using Redis.
type Redis struct {
	client *redis.Client
	prefix string
}

// Option configures the Redis backend.
type Option func(*Redis)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(r *Redis) {
		r.prefix = prefix
	}
}

// New creates a new Redis inventory storage backend using client.
func New(client *redis.Client, opts ...Option) *Redis {
	r := &Redis{client: client, prefix: DefaultPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewFromURL connects to the Redis server at url (e.g. "redis://localhost:6379/0").
func NewFromURL(ctx context.Context, url string, opts ...Option) (*Redis, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return New(client, opts...), nil
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Save atomically replaces the stored stock.
func (r *Redis) Save(ctx context.Context, stock *storage.Stock) error {
	items := stock.Items()
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, r.key(namesKey), r.key(quantitiesKey))
		if len(items) > 0 {
			names := make([]interface{}, 0, len(items))
			pairs := make([]interface{}, 0, len(items)*2)
			for _, item := range items {
				names = append(names, item.Name)
				pairs = append(pairs, item.Name, item.Quantity)
			}
			pipe.RPush(ctx, r.key(namesKey), names...)
			pipe.HSet(ctx, r.key(quantitiesKey), pairs...)
		}
		pipe.Set(ctx, r.key(savedKey), len(items), 0)
		return nil
	})
	return err
}

// Load retrieves the stored stock in insertion order.
func (r *Redis) Load(ctx context.Context) (*storage.Stock, error) {
	count, err := r.client.Get(ctx, r.key(savedKey)).Int()
	if errors.Is(err, redis.Nil) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get saved count: %w", err)
	}

	names, err := r.client.LRange(ctx, r.key(namesKey), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get names: %w", err)
	}
	if len(names) != count {
		return nil, fmt.Errorf("%w: expected %d items, found %d", storage.ErrMalformed, count, len(names))
	}

	stock := &storage.Stock{}
	if len(names) < 1 {
		return stock, nil
	}

	vals, err := r.client.HMGet(ctx, r.key(quantitiesKey), names...).Result()
	if err != nil {
		return nil, fmt.Errorf("get quantities: %w", err)
	}
	for i, name := range names {
		s, ok := vals[i].(string)
		if !ok {
			return nil, fmt.Errorf("%w: missing quantity for %s", storage.ErrMalformed, name)
		}
		qty, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: quantity for %s: %v", storage.ErrMalformed, name, err)
		}
		stock.Set(name, qty)
	}
	return stock, nil
}
