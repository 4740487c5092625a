package kvdiskv

import (
	"testing"

	"github.com/micromdm/nanoinv/utils/kv/kvtest"
)

func TestKVDiskv(t *testing.T) {
	kvtest.TestBucket(t, NewFlatBucket(t.TempDir()))
}
