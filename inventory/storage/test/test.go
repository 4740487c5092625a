// Package test runs a common test suite against inventory storage backends.
package test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/micromdm/nanoinv/inventory/storage"
)

// TestStorage runs the storage test suite. newStorage should return
// a backend that has not had any stock saved to it.
func TestStorage(t *testing.T, newStorage func() storage.Storage) {
	s := newStorage()
	ctx := context.Background()

	t.Run("load-empty", func(t *testing.T) {
		_, err := s.Load(ctx)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("want: %v, have: %v", storage.ErrNotFound, err)
		}
	})

	t.Run("round-trip", func(t *testing.T) {
		stock := storage.NewStock(
			storage.Item{Name: "apple", Quantity: 7},
			storage.Item{Name: "banana", Quantity: 2},
			storage.Item{Name: "Ünïcode grapes", Quantity: 12},
			storage.Item{Name: "debt", Quantity: -4},
		)

		if err := s.Save(ctx, stock); err != nil {
			t.Fatal(err)
		}

		loaded, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(stock.Map(), loaded.Map()); diff != "" {
			t.Errorf("loaded stock mismatch (-want +have):\n%s", diff)
		}
	})

	t.Run("overwrite", func(t *testing.T) {
		stock := storage.NewStock(storage.Item{Name: "cherry", Quantity: 1})

		if err := s.Save(ctx, stock); err != nil {
			t.Fatal(err)
		}

		loaded, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}

		if diff := cmp.Diff(stock.Items(), loaded.Items()); diff != "" {
			t.Errorf("loaded stock mismatch (-want +have):\n%s", diff)
		}
	})

	t.Run("save-empty", func(t *testing.T) {
		if err := s.Save(ctx, &storage.Stock{}); err != nil {
			t.Fatal(err)
		}

		loaded, err := s.Load(ctx)
		if err != nil {
			t.Fatal(err)
		}

		if have := loaded.Len(); have != 0 {
			t.Errorf("expected empty stock, have %d items", have)
		}
	})
}

// TestOrderedStorage runs TestStorage and additionally checks that
// the backend preserves item insertion order.
func TestOrderedStorage(t *testing.T, newStorage func() storage.Storage) {
	TestStorage(t, newStorage)

	s := newStorage()
	ctx := context.Background()

	stock := storage.NewStock(
		storage.Item{Name: "zucchini", Quantity: 3},
		storage.Item{Name: "apple", Quantity: 7},
		storage.Item{Name: "mango", Quantity: 1},
	)

	if err := s.Save(ctx, stock); err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(stock.Items(), loaded.Items()); diff != "" {
		t.Errorf("loaded order mismatch (-want +have):\n%s", diff)
	}
}
