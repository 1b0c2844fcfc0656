package recorders

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"portfolio-views/internal/models"
	"portfolio-views/internal/shared/loggers"
	"portfolio-views/internal/stores"

	"golang.org/x/sync/singleflight"
)

type Mode string

const (
	ModeDirect   Mode = "direct"
	ModeBuffered Mode = "buffered"
)

// CounterStore is the part of the portfolio store a recorder needs.
type CounterStore interface {
	Fetch(ctx context.Context, username string) (*models.Portfolio, error)
	IncrementAndFetch(ctx context.Context, username string) (*models.Portfolio, error)
}

// Tracker accepts a view for later write-back. Implementations must not block.
type Tracker interface {
	Track(key string)
}

// ViewRecorder records one view of a portfolio and returns the record.
//
// In direct mode the returned record already contains the caller's own view.
// In buffered mode the view is handed to a Tracker after the read, so the
// returned count lags by whatever is still pending.
//
//go:generate mockgen -source=view_recorder.go -destination=./mocks/view_recorder_mock.go -package=mocks
type ViewRecorder interface {
	RecordView(ctx context.Context, username string) (*models.Portfolio, error)
	// Peek reads the record without counting a view.
	Peek(ctx context.Context, username string) (*models.Portfolio, error)
	Mode() Mode
}

type viewRecorder struct {
	store   CounterStore
	tracker Tracker
	mode    Mode

	// reads dedupes concurrent buffered-mode fetches of one username.
	reads singleflight.Group
}

// NewViewRecorder picks the mode once: a nil tracker means direct mode.
func NewViewRecorder(store CounterStore, tracker Tracker) ViewRecorder {
	mode := ModeBuffered
	if tracker == nil {
		mode = ModeDirect
	}
	return &viewRecorder{store: store, tracker: tracker, mode: mode}
}

func (r *viewRecorder) Mode() Mode {
	return r.mode
}

func (r *viewRecorder) RecordView(ctx context.Context, username string) (*models.Portfolio, error) {
	var (
		portfolio *models.Portfolio
		err       error
	)
	switch r.mode {
	case ModeDirect:
		portfolio, err = r.store.IncrementAndFetch(ctx, username)
	default:
		portfolio, err = r.sharedFetch(ctx, username)
		if err == nil {
			r.tracker.Track(username)
		}
	}

	if err != nil {
		outcome := outcomeFailed
		if errors.Is(err, stores.ErrPortfolioNotFound) {
			outcome = outcomeNotFound
		}
		metricViewsRecordedTotal.WithLabelValues(string(r.mode), outcome).Inc()
		return nil, fmt.Errorf("record %s view: %w", r.mode, err)
	}

	metricViewsRecordedTotal.WithLabelValues(string(r.mode), outcomeRecorded).Inc()
	loggers.Ctx(ctx).Debug().
		Str(loggers.FieldUsername, username).
		Str(loggers.FieldViewMode, string(r.mode)).
		Int64("views", portfolio.Views).
		Msg("view recorded")
	return portfolio, nil
}

// sharedFetch lets concurrent viewers of one username share a single store
// read. The read is detached from the cancellation of whichever caller started
// it; each caller stops waiting only when its own ctx is done. Every caller
// gets its own copy of the record, Projects included.
func (r *viewRecorder) sharedFetch(ctx context.Context, username string) (*models.Portfolio, error) {
	readCtx := context.WithoutCancel(ctx)
	results := r.reads.DoChan(username, func() (any, error) {
		return r.store.Fetch(readCtx, username)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		shared := res.Val.(*models.Portfolio)
		portfolio := *shared
		portfolio.Projects = slices.Clone(shared.Projects)
		return &portfolio, nil
	}
}

func (r *viewRecorder) Peek(ctx context.Context, username string) (*models.Portfolio, error) {
	return r.store.Fetch(ctx, username)
}
