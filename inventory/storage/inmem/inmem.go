// Package inmem implements an in-memory inventory storage backend.
package inmem

import (
	"github.com/micromdm/nanoinv/inventory/storage/kv"
	"github.com/micromdm/nanoinv/utils/kv/kvmap"
)

// InMem is an in-memory inventory storage backend.
type InMem struct {
	*kv.KV
}

// New creates a new in-memory inventory storage backend.
func New() *InMem {
	return &InMem{KV: kv.New(kvmap.NewBucket())}
}
