package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var initOnce sync.Once

// Deletion queue metrics
var (
	// DeletionsTotal counts files removed by the background deletion queue
	DeletionsTotal prometheus.Counter

	// DeletionErrorsTotal counts deletes the OS rejected (queue swallows
	// these by contract, the counter is the only caller-visible trace)
	DeletionErrorsTotal prometheus.Counter

	// DeletionsMissingTotal counts deletes of already-absent paths
	DeletionsMissingTotal prometheus.Counter

	// BytesFreedTotal counts bytes reclaimed by the deletion queue
	BytesFreedTotal prometheus.Counter

	// QueueDepth tracks tasks enqueued but not yet executed
	QueueDepth prometheus.Gauge
)

// Usage scanner metrics
var (
	// ScanDuration tracks how long full usage scans take
	ScanDuration prometheus.Histogram

	// RootUsedBytes tracks scanned bytes per configured data directory
	RootUsedBytes *prometheus.GaugeVec

	// FSFreeBytes tracks free space on the filesystem holding a data directory
	FSFreeBytes *prometheus.GaugeVec

	// FSTotalBytes tracks capacity of the filesystem holding a data directory
	FSTotalBytes *prometheus.GaugeVec
)

// Init initializes and registers all metrics with Prometheus.
// Safe to call multiple times (uses sync.Once).
func Init() {
	initOnce.Do(func() {
		DeletionsTotal = NewCounter(
			"diskops_async_deletions_total",
			"Total files removed by the background deletion queue.",
		)
		DeletionErrorsTotal = NewCounter(
			"diskops_async_deletion_errors_total",
			"Total background deletions rejected by the operating system.",
		)
		DeletionsMissingTotal = NewCounter(
			"diskops_async_deletions_missing_total",
			"Total background deletions of paths that were already absent.",
		)
		BytesFreedTotal = NewCounter(
			"diskops_bytes_freed_total",
			"Total bytes reclaimed by the background deletion queue.",
		)
		QueueDepth = NewGauge(
			"diskops_deletion_queue_depth",
			"Deletion tasks enqueued but not yet executed.",
		)

		ScanDuration = NewDurationHistogram(
			"diskops_usage_scan_duration_seconds",
			"Duration of data-directory usage scans in seconds.",
		)
		RootUsedBytes = NewGaugeVec(
			"diskops_root_used_bytes",
			"Bytes used within a configured data directory (tree scan).",
			[]string{"root"},
		)
		FSFreeBytes = NewGaugeVec(
			"diskops_fs_free_bytes",
			"Free space on the filesystem containing a data directory.",
			[]string{"root"},
		)
		FSTotalBytes = NewGaugeVec(
			"diskops_fs_total_bytes",
			"Capacity of the filesystem containing a data directory.",
			[]string{"root"},
		)

		prometheus.MustRegister(
			DeletionsTotal,
			DeletionErrorsTotal,
			DeletionsMissingTotal,
			BytesFreedTotal,
			QueueDepth,
			ScanDuration,
			RootUsedBytes,
			FSFreeBytes,
			FSTotalBytes,
		)
	})
}

// RecordRootUsage updates the scanned-usage gauge for a data directory.
func RecordRootUsage(root string, usedBytes int64) {
	RootUsedBytes.WithLabelValues(root).Set(float64(usedBytes))
}

// RecordFilesystem updates the statfs-level gauges for a data directory.
func RecordFilesystem(root string, freeBytes, totalBytes int64) {
	FSFreeBytes.WithLabelValues(root).Set(float64(freeBytes))
	FSTotalBytes.WithLabelValues(root).Set(float64(totalBytes))
}
