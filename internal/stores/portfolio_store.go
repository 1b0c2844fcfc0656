package stores

import (
	"context"
	"errors"

	"portfolio-views/internal/models"
)

var (
	ErrPortfolioNotFound     = errors.New("portfolio not found")
	ErrPortfolioAlreadyExist = errors.New("portfolio already exists")
)

// PortfolioStore persists portfolios keyed by normalized username and owns the
// view counter of each record.
//
// IncrementAndFetch must be a single atomic primitive of the backend, never a
// read-then-write across calls, so concurrent viewers cannot lose updates.
// BulkIncrement applies every delta independently: a missing username is
// counted in BulkIncrementResult.Missing and never fails the call. An error
// return means the backend itself could not be reached.
//
//go:generate mockgen -source=portfolio_store.go -destination=./mocks/portfolio_store_mock.go -package=mocks
type PortfolioStore interface {
	Create(ctx context.Context, portfolio *models.Portfolio) error
	Fetch(ctx context.Context, username string) (*models.Portfolio, error)
	Exists(ctx context.Context, username string) (bool, error)
	IncrementAndFetch(ctx context.Context, username string) (*models.Portfolio, error)
	BulkIncrement(ctx context.Context, deltas []models.ViewDelta) (*models.BulkIncrementResult, error)
	Update(ctx context.Context, username string, update *models.PortfolioUpdate) (*models.Portfolio, error)
}
