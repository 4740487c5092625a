package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/inventory/storage/file"
	"github.com/micromdm/nanoinv/log/ctxlog"
	"github.com/micromdm/nanoinv/log/logkeys"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultPath is the file used by SaveToFile and LoadFromFile when no path is given.
const DefaultPath = "inventory.json"

// Save writes the current inventory to st.
// Any storage error is returned.
func (s *Store) Save(ctx context.Context, st storage.Storage) error {
	ctx, span := s.tracer.Start(ctx, "inventory.Save",
		trace.WithAttributes(attribute.Int("inventory.items", s.stock.Len())),
	)
	defer span.End()

	start := time.Now()
	err := st.Save(ctx, s.stock)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "save failed")
		s.metrics.Persist(OpSave, OutcomeError, time.Since(start))
		return fmt.Errorf("save inventory: %w", err)
	}
	s.metrics.Persist(OpSave, OutcomeOK, time.Since(start))

	ctxlog.Logger(ctx, s.logger).Info(
		logkeys.Message, "inventory data saved",
		logkeys.GenericCount, s.stock.Len(),
	)
	return nil
}

// Load reads inventory stock from st and returns it.
// The Store itself is not modified; see Replace.
//
// If st holds no data a warning is logged and empty stock is returned.
// If st holds data that can not be decoded an error is logged and empty
// stock is returned. Any other storage error is returned.
func (s *Store) Load(ctx context.Context, st storage.ReadStorage) (*storage.Stock, error) {
	ctx, span := s.tracer.Start(ctx, "inventory.Load")
	defer span.End()

	logger := ctxlog.Logger(ctx, s.logger)
	start := time.Now()
	stock, err := st.Load(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.metrics.Persist(OpLoad, OutcomeNotFound, time.Since(start))
		logger.Warn(logkeys.Message, "inventory data not found, starting with empty data", logkeys.Error, err)
		return &storage.Stock{}, nil
	case errors.Is(err, storage.ErrMalformed):
		span.RecordError(err)
		s.metrics.Persist(OpLoad, OutcomeMalformed, time.Since(start))
		logger.Error(logkeys.Message, "decoding inventory data", logkeys.Error, err)
		return &storage.Stock{}, nil
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		s.metrics.Persist(OpLoad, OutcomeError, time.Since(start))
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	if stock == nil {
		stock = &storage.Stock{}
	}
	s.metrics.Persist(OpLoad, OutcomeOK, time.Since(start))
	span.SetAttributes(attribute.Int("inventory.items", stock.Len()))

	logger.Info(
		logkeys.Message, "inventory data loaded",
		logkeys.GenericCount, stock.Len(),
	)
	return stock, nil
}

// SaveToFile writes the inventory as indented JSON to path, overwriting it.
// An empty path means DefaultPath.
func (s *Store) SaveToFile(ctx context.Context, path string) error {
	if path == "" {
		path = DefaultPath
	}
	ctx = ctxlog.NewContext(ctx, ctxlog.Logger(ctx, s.logger).With(logkeys.Path, path))
	return s.Save(ctx, file.New(path))
}

// LoadFromFile reads inventory stock from the JSON file at path.
// An empty path means DefaultPath. A missing or malformed file
// yields empty stock; see Load.
func (s *Store) LoadFromFile(ctx context.Context, path string) (*storage.Stock, error) {
	if path == "" {
		path = DefaultPath
	}
	ctx = ctxlog.NewContext(ctx, ctxlog.Logger(ctx, s.logger).With(logkeys.Path, path))
	return s.Load(ctx, file.New(path))
}
