// Package kvtest exercises kv.Bucket implementations.
package kvtest

import (
	"context"
	"errors"
	"testing"

	"github.com/micromdm/nanoinv/utils/kv"
)

// TestBucket runs basic set/get/has checks against b.
func TestBucket(t *testing.T, b kv.Bucket) {
	ctx := context.Background()

	if found, err := b.Has(ctx, "missing"); err != nil {
		t.Fatal(err)
	} else if found {
		t.Error("expected missing key to not be found")
	}

	if _, err := b.Get(ctx, "missing"); !errors.Is(err, kv.ErrKeyNotFound) {
		t.Errorf("want: %v, have: %v", kv.ErrKeyNotFound, err)
	}

	val := []byte("hello")
	if err := b.Set(ctx, "k", val); err != nil {
		t.Fatal(err)
	}
	val[0] = 'j'

	if found, err := b.Has(ctx, "k"); err != nil {
		t.Fatal(err)
	} else if !found {
		t.Error("expected key to be found")
	}

	have, err := b.Get(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if want := "hello"; string(have) != want {
		t.Errorf("want: %v, have: %v", want, string(have))
	}

	if err = b.Set(ctx, "k", []byte("world")); err != nil {
		t.Fatal(err)
	}
	if have, err = b.Get(ctx, "k"); err != nil {
		t.Fatal(err)
	} else if want := "world"; string(have) != want {
		t.Errorf("want: %v, have: %v", want, string(have))
	}
}
