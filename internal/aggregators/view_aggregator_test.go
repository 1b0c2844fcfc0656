package aggregators

import (
	"bytes"
	"context"
	"fmt"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"portfolio-views/internal/aggregators/mocks"
	"portfolio-views/internal/models"
	"portfolio-views/internal/shared/loggers"
	"portfolio-views/internal/shared/svcerrors"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// recordingStore remembers every bulk call. When gate is set, each call blocks
// until the gate is closed; entered is signalled once the call has started.
type recordingStore struct {
	mu      sync.Mutex
	calls   [][]models.ViewDelta
	err     error
	gate    chan struct{}
	entered chan struct{}
}

func (s *recordingStore) BulkIncrement(ctx context.Context, deltas []models.ViewDelta) (*models.BulkIncrementResult, error) {
	s.mu.Lock()
	s.calls = append(s.calls, sortedDeltas(deltas))
	err := s.err
	gate := s.gate
	entered := s.entered
	s.mu.Unlock()

	if entered != nil {
		entered <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	if err != nil {
		return nil, err
	}
	return &models.BulkIncrementResult{Applied: len(deltas)}, nil
}

func (s *recordingStore) Calls() [][]models.ViewDelta {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]models.ViewDelta(nil), s.calls...)
}

func sortedDeltas(deltas []models.ViewDelta) []models.ViewDelta {
	out := append([]models.ViewDelta(nil), deltas...)
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func newTestAggregator(t *testing.T, store BulkIncrementer, opts Options) ViewAggregator {
	t.Helper()
	aggregator, err := NewViewAggregator(store, opts, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(aggregator.Stop)
	return aggregator
}

func TestViewAggregator_ConcurrentTracksCoalesce(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{MaxBatchSize: 100})

	const viewers = 500
	var wg sync.WaitGroup
	for i := 0; i < viewers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			aggregator.Track("ada")
		}()
	}
	wg.Wait()

	require.NoError(t, aggregator.Flush(context.Background()))

	assert.Equal(t, [][]models.ViewDelta{{{Username: "ada", Delta: viewers}}}, store.Calls())
	assert.Equal(t, 0, aggregator.Pending())
}

func TestViewAggregator_RepeatedKeyIsOneDelta(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{})

	aggregator.Track("ada")
	aggregator.Track("ada")
	aggregator.Track("ada")
	assert.Equal(t, 1, aggregator.Pending())

	require.NoError(t, aggregator.Flush(context.Background()))
	assert.Equal(t, [][]models.ViewDelta{{{Username: "ada", Delta: 3}}}, store.Calls())
}

func TestViewAggregator_EmptyFlushSkipsStore(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{})

	require.NoError(t, aggregator.Flush(context.Background()))
	assert.Empty(t, store.Calls())
}

func TestViewAggregator_ConcurrentFlushIsSkipped(t *testing.T) {
	t.Parallel()

	store := &recordingStore{gate: make(chan struct{}), entered: make(chan struct{}, 1)}
	aggregator := newTestAggregator(t, store, Options{})
	ctx := context.Background()

	aggregator.Track("ada")

	firstDone := make(chan error, 1)
	go func() { firstDone <- aggregator.Flush(ctx) }()
	<-store.entered

	// tracked while the first batch is still being written
	aggregator.Track("grace")
	assert.NoError(t, aggregator.Flush(ctx))
	assert.Len(t, store.Calls(), 1)
	assert.Equal(t, 1, aggregator.Pending())

	close(store.gate)
	require.NoError(t, <-firstDone)

	require.NoError(t, aggregator.Flush(ctx))
	assert.Equal(t, [][]models.ViewDelta{
		{{Username: "ada", Delta: 1}},
		{{Username: "grace", Delta: 1}},
	}, store.Calls())
}

func TestViewAggregator_FailedFlushDropsBatch(t *testing.T) {
	t.Parallel()

	store := &recordingStore{err: errors.New("connection refused")}
	aggregator := newTestAggregator(t, store, Options{})
	ctx := context.Background()

	aggregator.Track("ada")
	aggregator.Track("grace")

	err := aggregator.Flush(ctx)
	require.Error(t, err)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, codeInternalFlushFailed, svcErr.Code)
	assert.Equal(t, 0, aggregator.Pending())

	store.mu.Lock()
	store.err = nil
	store.mu.Unlock()

	// still usable, and the dropped views are not merged back
	aggregator.Track("ada")
	require.NoError(t, aggregator.Flush(ctx))

	calls := store.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []models.ViewDelta{{Username: "ada", Delta: 1}}, calls[1])
}

type panickingStore struct{}

func (panickingStore) BulkIncrement(context.Context, []models.ViewDelta) (*models.BulkIncrementResult, error) {
	panic("driver bug")
}

func TestViewAggregator_StorePanicReleasesFlush(t *testing.T) {
	t.Parallel()

	aggregator := newTestAggregator(t, panickingStore{}, Options{})
	ctx := context.Background()

	aggregator.Track("ada")
	err := aggregator.Flush(ctx)
	svcErr, ok := svcerrors.AsServiceError(err)
	require.True(t, ok)
	assert.True(t, svcErr.IsInternalError())

	aggregator.Track("ada")
	assert.Error(t, aggregator.Flush(ctx), "a second flush must reach the store again")
}

func TestViewAggregator_ThresholdTriggersFlush(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{MaxBatchSize: 2, FlushInterval: time.Hour})
	aggregator.Start(context.Background())

	aggregator.Track("a")
	aggregator.Track("b")

	require.Eventually(t, func() bool { return len(store.Calls()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []models.ViewDelta{{Username: "a", Delta: 1}, {Username: "b", Delta: 1}}, store.Calls()[0])
}

func TestViewAggregator_IntervalTriggersFlush(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{FlushInterval: 10 * time.Millisecond})
	aggregator.Start(context.Background())

	aggregator.Track("ada")

	require.Eventually(t, func() bool { return len(store.Calls()) == 1 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []models.ViewDelta{{Username: "ada", Delta: 1}}, store.Calls()[0])
}

func TestViewAggregator_StopIsIdempotentAndDoesNotDrain(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{FlushInterval: 10 * time.Millisecond})
	aggregator.Start(context.Background())

	aggregator.Stop()
	aggregator.Stop()

	aggregator.Track("ada")
	time.Sleep(50 * time.Millisecond)

	assert.Empty(t, store.Calls())
	assert.Equal(t, 1, aggregator.Pending())
}

func TestViewAggregator_DrainWritesPending(t *testing.T) {
	t.Parallel()

	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{FlushInterval: time.Hour})
	aggregator.Start(context.Background())

	aggregator.Track("ada")
	aggregator.Track("grace")

	require.NoError(t, aggregator.Drain(context.Background()))
	assert.Equal(t, [][]models.ViewDelta{{{Username: "ada", Delta: 1}, {Username: "grace", Delta: 1}}}, store.Calls())
}

func TestViewAggregator_FlushTimeoutBoundsStoreCall(t *testing.T) {
	t.Parallel()

	aggregator := newTestAggregator(t, deadlineStore{}, Options{FlushTimeout: 10 * time.Millisecond})

	aggregator.Track("ada")
	err := aggregator.Flush(context.Background())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type deadlineStore struct{}

func (deadlineStore) BulkIncrement(ctx context.Context, _ []models.ViewDelta) (*models.BulkIncrementResult, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestNewViewAggregator_Options(t *testing.T) {
	t.Parallel()

	_, err := NewViewAggregator(&recordingStore{}, Options{MaxBatchSize: -1}, zerolog.Nop())
	assert.ErrorIs(t, err, ErrInvalidOptions)

	aggregator, err := NewViewAggregator(&recordingStore{}, Options{}, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, DefaultFlushInterval, aggregator.(*viewAggregator).opts.FlushInterval)
	assert.Equal(t, DefaultMaxBatchSize, aggregator.(*viewAggregator).opts.MaxBatchSize)
	assert.Equal(t, time.Duration(0), aggregator.(*viewAggregator).opts.FlushTimeout)
}

func TestViewAggregator_PartialResultIsNotAnError(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := mocks.NewMockBulkIncrementer(ctrl)
	aggregator, err := NewViewAggregator(mockStore, Options{}, zerolog.Nop())
	require.NoError(t, err)

	aggregator.Track("ada")
	aggregator.Track("ghost")

	mockStore.EXPECT().
		BulkIncrement(gomock.Any(), gomock.Len(2)).
		Return(&models.BulkIncrementResult{Applied: 1, Missing: 1}, nil)

	require.NoError(t, aggregator.Flush(context.Background()))
	assert.Zero(t, aggregator.Pending())

	// nothing left, so the store is not called again
	require.NoError(t, aggregator.Flush(context.Background()))
}

func TestViewAggregator_FlushContextCarriesLogger(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	buf := &bytes.Buffer{}
	logger, err := loggers.New("info", loggers.WithOutput(buf))
	require.NoError(t, err)

	mockStore := mocks.NewMockBulkIncrementer(ctrl)
	aggregator, err := NewViewAggregator(mockStore, Options{}, logger)
	require.NoError(t, err)

	aggregator.Track("ada")

	mockStore.EXPECT().
		BulkIncrement(gomock.Any(), gomock.Len(1)).
		DoAndReturn(func(ctx context.Context, deltas []models.ViewDelta) (*models.BulkIncrementResult, error) {
			loggers.Ctx(ctx).Warn().Str(loggers.FieldUsername, "ada").Msg("bulk view increment entry failed")
			return &models.BulkIncrementResult{Failed: 1}, nil
		})

	require.NoError(t, aggregator.Flush(context.Background()))
	assert.Contains(t, buf.String(), "bulk view increment entry failed")
	assert.Contains(t, buf.String(), `"`+loggers.FieldBatchKeys+`":1`)
}

// Not parallel: the pending gauge is process-wide.
func TestViewAggregator_PendingGaugeMatchesPending(t *testing.T) {
	store := &recordingStore{}
	aggregator := newTestAggregator(t, store, Options{MaxBatchSize: 1 << 20})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				aggregator.Track(fmt.Sprintf("user-%d-%d", i, j))
			}
		}(i)
	}
	for i := 0; i < 20; i++ {
		_ = aggregator.Flush(context.Background())
	}
	wg.Wait()

	assert.Equal(t, float64(aggregator.Pending()), testutil.ToFloat64(metricPendingKeys))

	require.NoError(t, aggregator.Flush(context.Background()))
	assert.Zero(t, testutil.ToFloat64(metricPendingKeys))
}
