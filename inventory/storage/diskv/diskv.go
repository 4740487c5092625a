// Package diskv implements a diskv-backed inventory storage backend.
package diskv

import (
	"path/filepath"

	"github.com/micromdm/nanoinv/inventory/storage/kv"
	"github.com/micromdm/nanoinv/utils/kv/kvdiskv"
)

// Diskv is an on-disk inventory storage backend.
type Diskv struct {
	*kv.KV
}

// New creates a new diskv inventory storage backend rooted at path.
func New(path string) *Diskv {
	return &Diskv{KV: kv.New(kvdiskv.NewFlatBucket(filepath.Join(path, "inventory")))}
}
