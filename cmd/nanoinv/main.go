// Package main runs a demonstration of the nanoinv inventory store.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/micromdm/nanoinv/audit"
	"github.com/micromdm/nanoinv/config"
	"github.com/micromdm/nanoinv/inventory"
	"github.com/micromdm/nanoinv/inventory/storage"
	"github.com/micromdm/nanoinv/log"
	"github.com/micromdm/nanoinv/log/ctxlog"
	"github.com/micromdm/nanoinv/log/logkeys"
	"github.com/micromdm/nanoinv/log/zaplog"
	"github.com/micromdm/nanoinv/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

// overridden by -ldflags -X
var version = "unknown"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := zaplog.New(zaplog.WithFile(cfg.LogFile), zaplog.WithDebugFlag(cfg.Debug))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx := ctxlog.NewContext(context.Background(), logger)
	logger.Debug(logkeys.Message, "starting", "version", version, logkeys.Storage, cfg.Storage)

	st, err := parseStorage(ctx, cfg)
	if err != nil {
		logger.Error(logkeys.Message, "parse storage", logkeys.Error, err)
		logger.Sync()
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg)
	if err != nil {
		logger.Error(logkeys.Message, "registering metrics", logkeys.Error, err)
		logger.Sync()
		os.Exit(1)
	}

	inv := inventory.New(
		inventory.WithLogger(logger),
		inventory.WithMetrics(m),
	)

	err = run(ctx, inv, st, cfg.LowStockThreshold, os.Stdout)
	if err != nil {
		logger.Error(logkeys.Message, "inventory operations", logkeys.Error, err)
		logger.Sync()
		os.Exit(1)
	}

	if cfg.MetricsFile != "" {
		if err = metrics.WriteTextfile(cfg.MetricsFile, reg); err != nil {
			logger.Warn(logkeys.Message, "writing metrics", logkeys.Path, cfg.MetricsFile, logkeys.Error, err)
		}
	}
}

// run performs the demonstration sequence against inv, persisting to st.
// Output for the user is written to out.
func run(ctx context.Context, inv *inventory.Store, st storage.Storage, threshold int, out io.Writer) error {
	ctx, span := otel.Tracer("github.com/micromdm/nanoinv/cmd/nanoinv").Start(ctx, "nanoinv.run")
	defer span.End()

	logs := audit.NewLog()
	inv.Add(ctx, "apple", 10, logs)
	inv.Add(ctx, "banana", 2, logs)
	inv.Remove(ctx, "apple", 3)
	inv.Remove(ctx, "orange", 1)

	logger := ctxlog.Logger(ctx, log.NopLogger)

	fmt.Fprintf(out, "Apple stock: %d\n", inv.Quantity("apple"))
	low := inv.LowStock(threshold)
	logger.Debug(logkeys.Message, "low stock", logkeys.Threshold, threshold, logkeys.GenericCount, len(low))
	fmt.Fprintf(out, "Low items: %v\n", low)

	if err := inv.Save(ctx, st); err != nil {
		return err
	}
	// the loaded stock is not applied; the report shows the live inventory.
	if _, err := inv.Load(ctx, st); err != nil {
		return err
	}
	if err := inv.Report(out); err != nil {
		return err
	}

	for _, line := range logs.Lines() {
		logger.Debug(logkeys.Message, "audit", "entry", line)
	}
	logger.Info(logkeys.Message, "Inventory operations completed successfully.")
	return nil
}
