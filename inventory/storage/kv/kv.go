// Package kv implements an inventory storage backend using a key-value store.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/utils/kv"
)

// DefaultKey is the bucket key that holds the stock snapshot.
const DefaultKey = "stock"

// KV is an inventory storage backend using a key-value store.
// The whole stock is kept as a single JSON value.
type KV struct {
	b   kv.Bucket
	key string
}

// New creates a new inventory storage backend over b.
func New(b kv.Bucket) *KV {
	return &KV{b: b, key: DefaultKey}
}

// Save stores stock, replacing any previous snapshot.
func (s *KV) Save(ctx context.Context, stock *storage.Stock) error {
	if stock == nil {
		stock = &storage.Stock{}
	}
	raw, err := json.Marshal(stock)
	if err != nil {
		return fmt.Errorf("marshal stock: %w", err)
	}
	if err = s.b.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("set stock: %w", err)
	}
	return nil
}

// Load retrieves the stock snapshot.
func (s *KV) Load(ctx context.Context) (*storage.Stock, error) {
	raw, err := s.b.Get(ctx, s.key)
	if errors.Is(err, kv.ErrKeyNotFound) {
		return nil, fmt.Errorf("%w: %v", storage.ErrNotFound, err)
	} else if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}

	stock := &storage.Stock{}
	if err = json.Unmarshal(raw, stock); err != nil {
		return nil, fmt.Errorf("%w: %v", storage.ErrMalformed, err)
	}
	return stock, nil
}
