package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"diskops/internal/config"
	"diskops/internal/disk"
	"diskops/internal/exitcodes"
	"diskops/internal/ledger"
	"diskops/internal/logging"
	"diskops/internal/metrics"
	"diskops/internal/units"
)

func main() {
	configPath := flag.String("config", "/etc/diskops/config.yaml", "Path to configuration file")
	serve := flag.Bool("serve", false, "Keep running, rescanning on the configured interval and serving /metrics")
	history := flag.Int("history", 0, "Print the N most recent deletion ledger entries and exit")
	flag.Parse()

	logger := logging.New()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Printf("ERROR: failed to load config: %v", err)
		os.Exit(exitcodes.InvalidConfig)
	}

	metrics.Init()

	var ldg *ledger.DeletionLedger
	if cfg.DatabasePath != "" {
		ldg, err = ledger.Open(cfg.DatabasePath)
		if err != nil {
			logger.Printf("ERROR: failed to open deletion ledger: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		defer ldg.Close()
	}

	if *history > 0 {
		if ldg == nil {
			logger.Printf("ERROR: no database_path configured, ledger history unavailable")
			os.Exit(exitcodes.InvalidConfig)
		}
		if err := printHistory(logger, ldg, *history); err != nil {
			logger.Printf("ERROR: failed to read ledger: %v", err)
			os.Exit(exitcodes.RuntimeError)
		}
		return
	}

	if err := report(logger, cfg); err != nil {
		logger.Printf("ERROR: usage report failed: %v", err)
		os.Exit(exitcodes.RuntimeError)
	}

	if !*serve {
		return
	}

	metrics.StartServer(cfg.PrometheusAddress(), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logger.Printf("received signal %v, shutting down", sig)
		cancel()
	}()

	runLoop(ctx, logger, cfg)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	metrics.Shutdown(shutdownCtx, logger)
}

// report prints per-root and aggregate usage, refreshing the gauges as a
// side effect.
func report(logger *log.Logger, cfg *config.Config) error {
	var total int64
	for _, root := range cfg.DataDirs {
		used, err := disk.UsedSpace(root)
		if err != nil {
			return err
		}
		total += used
		metrics.RecordRootUsage(root, used)

		free, capacity, usedPercent, err := disk.Capacity(root)
		if err != nil {
			logger.Printf("%s: used %s (filesystem stats unavailable: %v)", root, units.Format(used), err)
			continue
		}
		metrics.RecordFilesystem(root, free, capacity)
		logger.Printf("%s: used %s, filesystem %s free of %s (%.1f%% used)",
			root, units.Format(used), humanize.IBytes(uint64(free)), humanize.IBytes(uint64(capacity)), usedPercent)
	}
	logger.Printf("total used across %d data dirs: %s", len(cfg.DataDirs), units.Format(total))
	return nil
}

// runLoop rescans on the configured interval until the context is done.
func runLoop(ctx context.Context, logger *log.Logger, cfg *config.Config) {
	scanner := disk.NewScanner(cfg.DataDirs, logger)

	rescan := func() {
		var total int64
		var err error
		if cfg.Scan.Parallel {
			total, err = scanner.TotalUsedSpaceParallel(ctx)
		} else {
			total, err = scanner.TotalUsedSpace()
		}
		if err != nil {
			logger.Printf("rescan failed: %v", err)
			return
		}
		logger.Printf("rescan complete: total used %s", units.Format(total))
	}

	rescan()

	ticker := time.NewTicker(cfg.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Println("report loop shutting down")
			return
		case <-ticker.C:
			rescan()
		}
	}
}

func printHistory(logger *log.Logger, ldg *ledger.DeletionLedger, limit int) error {
	records, err := ldg.Recent(limit)
	if err != nil {
		return err
	}
	for _, r := range records {
		line := r.Timestamp.Format(time.RFC3339) + " " + r.Status + " " + r.Path + " " + units.Format(r.Size)
		if r.ErrorMessage != "" {
			line += " error=" + r.ErrorMessage
		}
		logger.Println(line)
	}

	counts, err := ldg.CountByStatus()
	if err != nil {
		return err
	}
	freed, err := ldg.TotalBytesFreed(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return err
	}
	logger.Printf("outcomes: deleted=%d missing=%d errors=%d, freed last 7d: %s",
		counts[ledger.StatusDeleted], counts[ledger.StatusMissing], counts[ledger.StatusError],
		humanize.IBytes(uint64(freed)))
	return nil
}
