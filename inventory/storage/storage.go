// Package storage defines types and interfaces to persist inventory stock.
package storage

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates no stock was ever saved to the backend.
	ErrNotFound = errors.New("inventory data not found")

	// ErrMalformed indicates the saved stock could not be decoded.
	ErrMalformed = errors.New("malformed inventory data")
)

type ReadStorage interface {
	// Load retrieves the saved stock.
	// ErrNotFound is returned (wrapped) when nothing has been saved yet.
	// ErrMalformed is returned (wrapped) when the saved data can not be decoded.
	Load(ctx context.Context) (*Stock, error)
}

type Storage interface {
	ReadStorage

	// Save overwrites any previously saved stock with stock.
	Save(ctx context.Context, stock *Stock) error
}
