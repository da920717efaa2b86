package disk

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"diskops/internal/metrics"
)

// UsedSpace returns the total bytes occupied by a file, or recursively by
// all files under a directory. Directories themselves contribute zero;
// only leaf files count. Symlinks are not followed (lstat semantics), which
// also keeps cyclic link structures from recursing forever.
func UsedSpace(path string) (int64, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Mode().IsRegular() {
		return info.Size(), nil
	}
	if !info.IsDir() {
		// Symlinks, sockets, devices: no counted payload.
		return 0, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return 0, fmt.Errorf("list %s: %w", path, err)
	}
	var total int64
	for _, entry := range entries {
		n, err := UsedSpace(filepath.Join(path, entry.Name()))
		if err != nil {
			return 0, err
		}
		total += n
	}
	return total, nil
}

// Scanner computes aggregate usage over the configured data-directory
// roots. Every scan is a full recomputation: the result is a point-in-time
// snapshot and concurrent mutation of the tree is the caller's problem.
type Scanner struct {
	roots  []string
	logger *log.Logger
}

// NewScanner builds a scanner over the given roots, in order.
// logger may be nil.
func NewScanner(roots []string, logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	metrics.Init()
	return &Scanner{roots: roots, logger: logger}
}

// Roots returns the configured data-directory roots.
func (s *Scanner) Roots() []string {
	return s.roots
}

// TotalUsedSpace sums UsedSpace over every configured root.
func (s *Scanner) TotalUsedSpace() (int64, error) {
	start := time.Now()
	var total int64
	for _, root := range s.roots {
		used, err := UsedSpace(root)
		if err != nil {
			return 0, err
		}
		metrics.RecordRootUsage(root, used)
		total += used
	}
	elapsed := time.Since(start)
	metrics.ScanDuration.Observe(elapsed.Seconds())
	s.logger.Printf("usage scan complete: roots=%d total=%d bytes duration=%.3fs", len(s.roots), total, elapsed.Seconds())
	return total, nil
}

// TotalUsedSpaceParallel scans every root concurrently and returns the
// aggregate. The first root that fails aborts the scan with its error;
// roots not yet started are skipped once the group context is cancelled.
func (s *Scanner) TotalUsedSpaceParallel(ctx context.Context) (int64, error) {
	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)

	var total atomic.Int64
	for _, root := range s.roots {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			used, err := UsedSpace(root)
			if err != nil {
				return fmt.Errorf("scan %s: %w", root, err)
			}
			metrics.RecordRootUsage(root, used)
			total.Add(used)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	elapsed := time.Since(start)
	metrics.ScanDuration.Observe(elapsed.Seconds())
	s.logger.Printf("usage scan complete: roots=%d total=%d bytes duration=%.3fs", len(s.roots), total.Load(), elapsed.Seconds())
	return total.Load(), nil
}
