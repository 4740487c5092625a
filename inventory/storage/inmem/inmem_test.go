package inmem

import (
	"testing"

	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/inventory/storage/test"
)

func TestInMem(t *testing.T) {
	test.TestOrderedStorage(t, func() storage.Storage { return New() })
}
