// Package kvmap implements an in-memory key-value store backed by a Go map.
package kvmap

import (
	"context"
	"fmt"

	"github.com/micromdm/nanoinv/utils/kv"
)

// KVMap is an in-memory key-value store backed by a Go map.
// Values are copied in and out so callers may reuse their buffers.
type KVMap struct {
	m map[string][]byte
}

func NewBucket() *KVMap {
	return &KVMap{m: make(map[string][]byte)}
}

func (s *KVMap) Get(_ context.Context, k string) ([]byte, error) {
	v, ok := s.m[k]
	if !ok {
		return nil, fmt.Errorf("%w: %s", kv.ErrKeyNotFound, k)
	}
	return append([]byte(nil), v...), nil
}

func (s *KVMap) Set(_ context.Context, k string, v []byte) error {
	s.m[k] = append([]byte(nil), v...)
	return nil
}

func (s *KVMap) Has(_ context.Context, k string) (bool, error) {
	_, ok := s.m[k]
	return ok, nil
}
