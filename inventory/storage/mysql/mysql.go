// Package mysql implements a MySQL inventory storage backend.
package mysql

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"

	"github.com/micromdm/nanoinv/inventory/storage"
)

// Schema contains the MySQL schema for the inventory storage.
//
//go:embed schema.sql
var Schema string

// MySQLStorage implements a storage.Storage using MySQL.
type MySQLStorage struct {
	db *sql.DB
}

type config struct {
	driver string
	dsn    string
	db     *sql.DB
}

// Option allows configuring a MySQLStorage.
type Option func(*config)

// WithDSN sets the storage MySQL data source name.
func WithDSN(dsn string) Option {
	return func(c *config) {
		c.dsn = dsn
	}
}

// WithDriver sets a custom MySQL driver for the storage.
//
// Default driver is "mysql".
// Value is ignored if WithDB is used.
func WithDriver(driver string) Option {
	return func(c *config) {
		c.driver = driver
	}
}

// WithDB sets a custom MySQL *sql.DB to the storage.
//
// If set, driver passed via WithDriver is ignored.
func WithDB(db *sql.DB) Option {
	return func(c *config) {
		c.db = db
	}
}

// New creates and returns a new MySQLStorage.
func New(opts ...Option) (*MySQLStorage, error) {
	cfg := &config{driver: "mysql"}
	for _, opt := range opts {
		opt(cfg)
	}
	var err error
	if cfg.db == nil {
		cfg.db, err = sql.Open(cfg.driver, cfg.dsn)
		if err != nil {
			return nil, err
		}
	}
	if err = cfg.db.Ping(); err != nil {
		return nil, err
	}
	return &MySQLStorage{db: cfg.db}, nil
}

// Save replaces all stored items with stock in a single transaction.
func (s *MySQLStorage) Save(ctx context.Context, stock *storage.Stock) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, `DELETE FROM inventory_items;`); err != nil {
		return fmt.Errorf("delete items: %w", err)
	}

	for i, item := range stock.Items() {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO inventory_items (name, position, quantity) VALUES (?, ?, ?);`,
			item.Name,
			i,
			item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert item %s: %w", item.Name, err)
		}
	}

	_, err = tx.ExecContext(
		ctx, `
INSERT INTO inventory_saves
	(id, items)
VALUES
	(1, ?) as new
ON DUPLICATE KEY UPDATE
	items = new.items;`,
		stock.Len(),
	)
	if err != nil {
		return fmt.Errorf("record save: %w", err)
	}

	return tx.Commit()
}

// Load retrieves the stored items in their saved order.
// ErrNotFound is returned if Save was never called.
func (s *MySQLStorage) Load(ctx context.Context) (*storage.Stock, error) {
	var items int
	err := s.db.QueryRowContext(ctx, `SELECT items FROM inventory_saves WHERE id = 1;`).Scan(&items)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("select save: %w", err)
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT name, quantity FROM inventory_items ORDER BY position;`,
	)
	if err != nil {
		return nil, fmt.Errorf("select items: %w", err)
	}
	defer rows.Close()

	stock := &storage.Stock{}
	for rows.Next() {
		var name string
		var qty int
		if err = rows.Scan(&name, &qty); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		stock.Set(name, qty)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if stock.Len() != items {
		return stock, fmt.Errorf("%w: expected %d items, found %d", storage.ErrMalformed, items, stock.Len())
	}
	return stock, nil
}
