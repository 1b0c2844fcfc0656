package aggregators

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"portfolio-views/internal/models"
	"portfolio-views/internal/shared/loggers"
	"portfolio-views/internal/shared/metrics"
	"portfolio-views/internal/shared/svcerrors"
)

const (
	DefaultFlushInterval = 5 * time.Second
	DefaultMaxBatchSize  = 1000
)

// BulkIncrementer is the write-back target of a ViewAggregator.
//
//go:generate mockgen -source=view_aggregator.go -destination=./mocks/view_aggregator_mock.go -package=mocks
type BulkIncrementer interface {
	BulkIncrement(ctx context.Context, deltas []models.ViewDelta) (*models.BulkIncrementResult, error)
}

// ViewAggregator coalesces view increments in memory and writes them back in
// bulk, on a fixed interval or as soon as MaxBatchSize distinct usernames are
// pending. At most one flush runs at a time.
//
// Pending counts live only in memory. Anything not flushed before the process
// exits is lost, and a failed flush drops its batch without retrying.
type ViewAggregator interface {
	// Track adds one view for key. It never blocks on I/O.
	Track(key string)
	// Flush writes the pending batch back. It is a no-op when nothing is
	// pending or another flush is in flight.
	Flush(ctx context.Context) error
	// Start runs the background flusher until Stop is called or ctx is done.
	Start(ctx context.Context)
	// Stop ends the background flusher without draining. Safe to call twice.
	Stop()
	// Drain stops the background flusher, waits for its current flush and
	// writes back whatever is still pending.
	Drain(ctx context.Context) error
	// Pending returns the number of distinct usernames waiting for a flush.
	Pending() int
}

type Options struct {
	FlushInterval time.Duration
	MaxBatchSize  int
	// FlushTimeout bounds a single store call. Zero means no bound.
	FlushTimeout time.Duration
}

func (o Options) withDefaults() (Options, error) {
	if o.FlushInterval < 0 || o.MaxBatchSize < 0 || o.FlushTimeout < 0 {
		return o, fmt.Errorf("%w: negative values are not allowed: %+v", ErrInvalidOptions, o)
	}
	if o.FlushInterval == 0 {
		o.FlushInterval = DefaultFlushInterval
	}
	if o.MaxBatchSize == 0 {
		o.MaxBatchSize = DefaultMaxBatchSize
	}
	return o, nil
}

type viewAggregator struct {
	store BulkIncrementer
	opts  Options

	mu       sync.Mutex
	pending  map[string]int64
	flushing bool

	// flushRequests holds at most one threshold request; a full slot means a
	// flush is already on its way.
	flushRequests chan struct{}

	startOnce sync.Once
	stopOnce  sync.Once
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool

	logger loggers.Logger
}

func NewViewAggregator(store BulkIncrementer, opts Options, logger loggers.Logger) (ViewAggregator, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}

	return &viewAggregator{
		store:         store,
		opts:          opts,
		pending:       make(map[string]int64),
		flushRequests: make(chan struct{}, 1),
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
		logger:        logger,
	}, nil
}

func (a *viewAggregator) Track(key string) {
	a.mu.Lock()
	a.pending[key]++
	size := len(a.pending)
	metricPendingKeys.Set(float64(size))
	a.mu.Unlock()

	if size >= a.opts.MaxBatchSize {
		select {
		case a.flushRequests <- struct{}{}:
		default:
		}
	}
}

func (a *viewAggregator) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.pending)
}

func (a *viewAggregator) Flush(ctx context.Context) error {
	batch := a.capture()
	if batch == nil {
		return nil
	}
	defer a.release()

	deltas := models.ViewDeltasFromCounts(batch)
	logger := a.logger.With().
		Int(loggers.FieldBatchKeys, len(deltas)).
		Int64(loggers.FieldBatchViews, models.TotalViews(deltas)).
		Logger()
	ctx = logger.WithContext(ctx)

	if a.opts.FlushTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.FlushTimeout)
		defer cancel()
	}

	result, err := a.bulkIncrement(ctx, deltas)
	if err != nil {
		svcErr, ok := svcerrors.AsServiceError(err)
		if !ok {
			svcErr = errInternalFlushFailed(err)
		}
		metricFlushTotal.WithLabelValues(svcErr.Code).Inc()
		logger.Error().
			Err(svcErr).
			Str(loggers.FieldErrorCode, svcErr.Code).
			Msg("view flush failed, batch dropped")
		return svcErr
	}

	metricFlushTotal.WithLabelValues(metrics.ValueNoError).Inc()
	metricFlushedKeys.Observe(float64(len(deltas)))

	event := logger.Debug()
	if result.Missing > 0 || result.Failed > 0 {
		event = logger.Warn()
	}
	event.
		Int(loggers.FieldApplied, result.Applied).
		Int(loggers.FieldMissing, result.Missing).
		Int(loggers.FieldFailed, result.Failed).
		Msg("view batch flushed")
	return nil
}

// capture swaps the pending map for an empty one and marks a flush in flight.
// It returns nil when there is nothing to do.
func (a *viewAggregator) capture() map[string]int64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.flushing || len(a.pending) == 0 {
		return nil
	}
	a.flushing = true
	batch := a.pending
	a.pending = make(map[string]int64)
	metricPendingKeys.Set(0)
	return batch
}

func (a *viewAggregator) release() {
	a.mu.Lock()
	a.flushing = false
	a.mu.Unlock()
}

// bulkIncrement turns a store panic into an error so the flag is still released
// and the background flusher survives.
func (a *viewAggregator) bulkIncrement(ctx context.Context, deltas []models.ViewDelta) (result *models.BulkIncrementResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msg("view flush panic recovered")

			panicErr, ok := r.(error)
			if !ok {
				panicErr = fmt.Errorf("%v", r)
			}
			err = svcerrors.NewInternalErrorPanic(panicErr)
		}
	}()

	result, err = a.store.BulkIncrement(ctx, deltas)
	if err == nil && result == nil {
		result = &models.BulkIncrementResult{Applied: len(deltas)}
	}
	return result, err
}

func (a *viewAggregator) Start(ctx context.Context) {
	a.startOnce.Do(func() {
		a.mu.Lock()
		a.started = true
		a.mu.Unlock()

		go func() {
			defer close(a.doneCh)
			a.run(ctx)
		}()
	})
}

func (a *viewAggregator) run(ctx context.Context) {
	ticker := time.NewTicker(a.opts.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-a.stopCh:
			return
		case <-ticker.C:
			_ = a.Flush(ctx)
		case <-a.flushRequests:
			_ = a.Flush(ctx)
		}
	}
}

func (a *viewAggregator) Stop() {
	a.stopOnce.Do(func() { close(a.stopCh) })
}

func (a *viewAggregator) Drain(ctx context.Context) error {
	a.Stop()

	a.mu.Lock()
	started := a.started
	a.mu.Unlock()

	if started {
		select {
		case <-a.doneCh:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return a.Flush(ctx)
}
