// Package inventory implements an in-memory inventory of item quantities
// that can be saved to and loaded from a storage backend.
package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/micromdm/nanoinv/audit"
	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/log"
	"github.com/micromdm/nanoinv/log/ctxlog"
	"github.com/micromdm/nanoinv/log/logkeys"
	"github.com/micromdm/nanoinv/utils/uuid"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// DefaultLowStockThreshold is the conventional LowStock threshold.
const DefaultLowStockThreshold = 5

// Operation names used for metrics.
const (
	OpAdd    = "add"
	OpRemove = "remove"
	OpSave   = "save"
	OpLoad   = "load"
)

// Operation outcomes used for metrics.
const (
	OutcomeOK        = "ok"
	OutcomeInvalid   = "invalid"
	OutcomeNotFound  = "not_found"
	OutcomeMalformed = "malformed"
	OutcomeError     = "error"
)

const tracerName = "github.com/micromdm/nanoinv/inventory"

// Metrics records store activity.
type Metrics interface {
	Operation(op, outcome string)
	Persist(op, outcome string, d time.Duration)
	Items(n int)
}

type nopMetrics struct{}

func (nopMetrics) Operation(string, string)              {}
func (nopMetrics) Persist(string, string, time.Duration) {}
func (nopMetrics) Items(int)                             {}

// Store is an in-memory inventory of item quantities.
// Store is not safe for concurrent use.
type Store struct {
	stock *storage.Stock

	logger  log.Logger
	metrics Metrics
	tracer  trace.Tracer
	ider    uuid.IDer
	now     func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the store logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithMetrics sets the store metrics recorder.
func WithMetrics(m Metrics) Option {
	return func(s *Store) {
		s.metrics = m
	}
}

// WithTracer sets the tracer used for storage operations.
func WithTracer(t trace.Tracer) Option {
	return func(s *Store) {
		s.tracer = t
	}
}

// WithIDer sets the generator of audit entry IDs.
func WithIDer(ider uuid.IDer) Option {
	return func(s *Store) {
		s.ider = ider
	}
}

// WithClock sets the time source for audit entries.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// New creates a new empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		stock:   &storage.Stock{},
		logger:  log.NopLogger,
		metrics: nopMetrics{},
		tracer:  otel.Tracer(tracerName),
		ider:    uuid.Ordered,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type addInput struct {
	Item string `validate:"required"`
}

var validate = validator.New()

// Add increases the quantity of item by qty, adding item if it is new.
// An audit entry is appended to logs. A nil logs (or nil *audit.Log)
// gets a fresh empty log, so the entry is discarded.
// Invalid input (an empty item name) is logged as a warning and ignored.
// The sign of qty is not checked.
func (s *Store) Add(ctx context.Context, item string, qty int, logs audit.Sink) {
	logger := ctxlog.Logger(ctx, s.logger).With(logkeys.Item, item, logkeys.Quantity, qty)
	if err := validate.Struct(addInput{Item: item}); err != nil {
		logger.Warn(logkeys.Message, "invalid input for add", logkeys.Error, err)
		s.metrics.Operation(OpAdd, OutcomeInvalid)
		return
	}
	if l, ok := logs.(*audit.Log); logs == nil || (ok && l == nil) {
		logs = audit.NewLog()
	}

	current, _ := s.stock.Get(item)
	s.stock.Set(item, current+qty)

	logs.Append(audit.Entry{
		ID:      s.ider.ID(),
		Time:    s.now(),
		Message: fmt.Sprintf("Added %d of %s", qty, item),
	})
	logger.Info(logkeys.Message, "added item")
	s.metrics.Operation(OpAdd, OutcomeOK)
	s.metrics.Items(s.stock.Len())
}

// Remove decreases the quantity of item by qty.
// Item is deleted once its quantity reaches zero or below.
// Removing an item not in the inventory is logged as a warning and ignored.
// The sign of qty is not checked.
func (s *Store) Remove(ctx context.Context, item string, qty int) {
	logger := ctxlog.Logger(ctx, s.logger).With(logkeys.Item, item, logkeys.Quantity, qty)

	current, ok := s.stock.Get(item)
	if !ok {
		logger.Warn(logkeys.Message, "remove non-existent item")
		s.metrics.Operation(OpRemove, OutcomeNotFound)
		return
	}

	current -= qty
	if current <= 0 {
		s.stock.Delete(item)
		logger.Info(logkeys.Message, "item removed from inventory")
	} else {
		s.stock.Set(item, current)
		logger.Debug(logkeys.Message, "removed quantity", "remaining", current)
	}
	s.metrics.Operation(OpRemove, OutcomeOK)
	s.metrics.Items(s.stock.Len())
}

// Quantity returns the quantity of item or 0 if it is not in the inventory.
func (s *Store) Quantity(item string) int {
	qty, _ := s.stock.Get(item)
	return qty
}

// LowStock returns the names of items with a quantity strictly less
// than threshold in the order they were added.
func (s *Store) LowStock(threshold int) []string {
	low := make([]string, 0)
	for _, item := range s.stock.Items() {
		if item.Quantity < threshold {
			low = append(low, item.Name)
		}
	}
	return low
}

// Items returns the inventory items in the order they were added.
func (s *Store) Items() []storage.Item {
	return s.stock.Items()
}

// Len returns the number of distinct items.
func (s *Store) Len() int {
	return s.stock.Len()
}

// Replace discards the current inventory and adopts a copy of stock.
// Loading stock does not modify the Store; use Replace to apply it.
func (s *Store) Replace(stock *storage.Stock) {
	s.stock = stock.Clone()
	s.metrics.Items(s.stock.Len())
}
