package main

import (
	"context"
	"fmt"

	"github.com/micromdm/nanoinv/config"
	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/inventory/storage/diskv"
	"github.com/micromdm/nanoinv/inventory/storage/file"
	"github.com/micromdm/nanoinv/inventory/storage/inmem"
	"github.com/micromdm/nanoinv/inventory/storage/mysql"
	"github.com/micromdm/nanoinv/inventory/storage/redis"

	_ "github.com/go-sql-driver/mysql"
)

func parseStorage(ctx context.Context, cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage {
	case config.StorageFile:
		return file.New(cfg.File), nil
	case config.StorageInMem:
		return inmem.New(), nil
	case config.StorageDiskv:
		dsn := cfg.StorageDSN
		if dsn == "" {
			dsn = "db"
		}
		return diskv.New(dsn), nil
	case config.StorageMySQL:
		s, err := mysql.New(mysql.WithDSN(cfg.StorageDSN))
		if err != nil {
			return nil, fmt.Errorf("creating mysql storage: %w", err)
		}
		return s, nil
	case config.StorageRedis:
		s, err := redis.NewFromURL(ctx, cfg.StorageDSN)
		if err != nil {
			return nil, fmt.Errorf("creating redis storage: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Storage)
	}
}
