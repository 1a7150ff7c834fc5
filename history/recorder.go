package history

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/talentscout/core"
	"github.com/poiesic/talentscout/storage"
)

// Observer is notified after an entry is durably persisted. The popular-query
// clusterer implements this to track queries as they happen.
type Observer interface {
	Observe(entry *core.HistoryEntry)
}

// Recorder persists search history entries asynchronously.
// It manages a worker pool so history writes never block search responses.
type Recorder struct {
	repository  storage.HistoryRepository
	pool        *ants.Pool
	observer    Observer
	maxAttempts int
	baseDelay   time.Duration
	inFlight    sync.WaitGroup
	logger      *slog.Logger
}

// Option configures a Recorder.
type Option func(*Recorder) error

// WithPoolSize sets the worker pool size for concurrent writes.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(r *Recorder) error {
		if size < 1 {
			size = 1
		}

		if r.pool != nil {
			r.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		r.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithObserver registers an observer for persisted entries.
func WithObserver(observer Observer) Option {
	return func(r *Recorder) error {
		r.observer = observer
		return nil
	}
}

// WithRetry tunes the write retry policy. Defaults are 3 attempts starting
// at a 100ms delay.
func WithRetry(maxAttempts int, baseDelay time.Duration) Option {
	return func(r *Recorder) error {
		if maxAttempts <= 0 {
			return ErrInvalidMaxAttempts
		}
		r.maxAttempts = maxAttempts
		r.baseDelay = baseDelay
		return nil
	}
}

// NewRecorder creates a new history recorder.
func NewRecorder(repository storage.HistoryRepository, opts ...Option) (*Recorder, error) {
	if repository == nil {
		return nil, ErrHistoryRepositoryRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	r := &Recorder{
		repository:  repository,
		pool:        pool,
		maxAttempts: 3,
		baseDelay:   100 * time.Millisecond,
		logger:      slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.pool.Release()
			return nil, err
		}
	}

	return r, nil
}

// Record submits one entry for persistence. It returns immediately; the
// write happens on the pool, detached from the caller's cancellation, and a
// failed write is logged rather than surfaced.
func (r *Recorder) Record(ctx context.Context, entry *core.HistoryEntry) {
	// An initiated record outlives the request that triggered it.
	detached := context.WithoutCancel(ctx)

	r.inFlight.Add(1)
	err := r.pool.Submit(func() {
		defer r.inFlight.Done()

		writeErr := retryWithBackoff(detached, func() error {
			_, err := r.repository.AddEntry(detached, entry)
			return err
		}, r.maxAttempts, r.baseDelay)
		if writeErr != nil {
			r.logger.Error("error recording search history", "userId", entry.UserId, "err", writeErr)
			return
		}

		if r.observer != nil {
			r.observer.Observe(entry)
		}
	})
	if err != nil {
		r.inFlight.Done()
		r.logger.Error("error submitting history record", "userId", entry.UserId, "err", err)
	}
}

// Flush blocks until all submitted records have been processed.
func (r *Recorder) Flush() {
	r.inFlight.Wait()
}

// Release drains pending records and releases the worker pool.
// The recorder should not be used after calling Release.
func (r *Recorder) Release() {
	r.inFlight.Wait()
	r.pool.Release()
}
