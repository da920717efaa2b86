package fsops

import (
	"log"
	"os"
	"sync"

	"diskops/internal/metrics"
)

// Recorder persists deletion outcomes. Satisfied by *ledger.DeletionLedger.
type Recorder interface {
	RecordDeletion(status, path string, size int64, errMsg string) error
}

// Outcome strings passed to the Recorder.
const (
	outcomeDeleted = "DELETED"
	outcomeMissing = "MISSING"
	outcomeError   = "ERROR"
)

// Queue executes file deletions on a fixed pool of background workers.
// Submission is fire-and-forget: outcomes are logged, counted, and
// optionally recorded to a ledger, never returned to the submitter.
// Tasks are executed at most once, with no retry and no ordering guarantee
// between independently submitted paths.
type Queue struct {
	tasks    chan string
	quit     chan struct{}
	del      Deleter
	logger   *log.Logger
	recorder Recorder

	mu     sync.Mutex
	closed bool

	inflight sync.WaitGroup
}

// NewQueue starts workers goroutines servicing a buffer-sized task channel.
// logger may be nil (defaults to log.Default()); recorder may be nil.
func NewQueue(workers, buffer int, logger *log.Logger, recorder Recorder) *Queue {
	if workers <= 0 {
		workers = 1
	}
	if buffer <= 0 {
		buffer = 1024
	}
	if logger == nil {
		logger = log.Default()
	}
	metrics.Init()

	q := &Queue{
		tasks:    make(chan string, buffer),
		quit:     make(chan struct{}),
		del:      OSDeleter{},
		logger:   logger,
		recorder: recorder,
	}
	for i := 0; i < workers; i++ {
		go q.worker()
	}
	return q
}

// SetDeleter replaces the unlink primitive. Call before the first Submit.
func (q *Queue) SetDeleter(del Deleter) {
	if del != nil {
		q.del = del
	}
}

// Submit enqueues a deletion request and returns without waiting for the
// delete to happen. The path need not exist; a worker finding it absent is
// a non-fatal event. Submissions after Shutdown are dropped.
// Submit only blocks when the task buffer is full.
func (q *Queue) Submit(path string) {
	// The mutex is held across the send: once Shutdown flips closed, no
	// task can slip into the channel behind its drain, so the depth gauge
	// and the in-flight count always settle.
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		q.logger.Printf("deletion queue closed, dropping %s", path)
		return
	}
	q.inflight.Add(1)
	metrics.QueueDepth.Inc()
	q.tasks <- path
}

// Shutdown stops accepting new work and abandons tasks that no worker has
// picked up yet. It does not wait for in-flight deletions to finish.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	q.mu.Unlock()

	close(q.quit)

	// Drain what the workers will never see so the depth gauge and any
	// test waiting on in-flight work settle.
	for {
		select {
		case <-q.tasks:
			metrics.QueueDepth.Dec()
			q.inflight.Done()
		default:
			return
		}
	}
}

func (q *Queue) worker() {
	for {
		select {
		case <-q.quit:
			return
		case path := <-q.tasks:
			metrics.QueueDepth.Dec()
			q.process(path)
			q.inflight.Done()
		}
	}
}

// process attempts one deletion. Failures never propagate to the submitter;
// they surface as a log event, a counter, and a ledger row.
func (q *Queue) process(path string) {
	var size int64
	if info, err := os.Lstat(path); err == nil {
		size = info.Size()
	}

	err := q.del.Remove(path)
	switch {
	case err == nil:
		metrics.DeletionsTotal.Inc()
		metrics.BytesFreedTotal.Add(float64(size))
		q.record(outcomeDeleted, path, size, "")
	case os.IsNotExist(err):
		// Racing deletes of the same path land here; tolerated.
		q.logger.Printf("async delete: %s already absent", path)
		metrics.DeletionsMissingTotal.Inc()
		q.record(outcomeMissing, path, 0, err.Error())
	default:
		q.logger.Printf("async delete failed: %s: %v", path, err)
		metrics.DeletionErrorsTotal.Inc()
		q.record(outcomeError, path, size, err.Error())
	}
}

func (q *Queue) record(status, path string, size int64, errMsg string) {
	if q.recorder == nil {
		return
	}
	if err := q.recorder.RecordDeletion(status, path, size, errMsg); err != nil {
		q.logger.Printf("failed to record deletion of %s: %v", path, err)
	}
}

// wait blocks until every accepted task has been executed or abandoned.
// Test hook; production callers are fire-and-forget by contract.
func (q *Queue) wait() {
	q.inflight.Wait()
}
