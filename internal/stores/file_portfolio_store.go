package stores

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"portfolio-views/internal/models"
	"portfolio-views/internal/shared/filestorages"
	"portfolio-views/internal/shared/loggers"
)

// filePortfolioStore keeps one JSON document per portfolio on the shared file
// storage. Atomicity of the view counter is per process: every mutation of a
// username runs under its key lock, and the file storage publishes each write
// atomically, so readers see either the old or the new document.
type filePortfolioStore struct {
	fileStorage filestorages.FileStorage
	dir         string
	locks       *keyLocks
	now         func() time.Time
}

func NewFilePortfolioStore(fileStorage filestorages.FileStorage) PortfolioStore {
	return &filePortfolioStore{
		fileStorage: fileStorage,
		dir:         "portfolios",
		locks:       newKeyLocks(defaultLockStripes),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *filePortfolioStore) Create(ctx context.Context, portfolio *models.Portfolio) error {
	now := s.now()
	portfolio.CreatedAt = now
	portfolio.UpdatedAt = now

	if err := s.write(ctx, portfolio, false); err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return ErrPortfolioAlreadyExist
		}
		return fmt.Errorf("failed to create portfolio: %w", err)
	}
	return nil
}

func (s *filePortfolioStore) Fetch(ctx context.Context, username string) (*models.Portfolio, error) {
	return s.read(ctx, username)
}

func (s *filePortfolioStore) Exists(ctx context.Context, username string) (bool, error) {
	_, err := s.read(ctx, username)
	if err != nil {
		if errors.Is(err, ErrPortfolioNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *filePortfolioStore) IncrementAndFetch(ctx context.Context, username string) (*models.Portfolio, error) {
	unlock := s.locks.Lock(username)
	defer unlock()

	return s.addViewsLocked(ctx, username, 1)
}

func (s *filePortfolioStore) BulkIncrement(ctx context.Context, deltas []models.ViewDelta) (*models.BulkIncrementResult, error) {
	logger := loggers.Ctx(ctx)
	result := &models.BulkIncrementResult{}

	for _, delta := range deltas {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		err := func() error {
			unlock := s.locks.Lock(delta.Username)
			defer unlock()
			_, err := s.addViewsLocked(ctx, delta.Username, delta.Delta)
			return err
		}()

		switch {
		case err == nil:
			result.Applied++
		case errors.Is(err, ErrPortfolioNotFound):
			result.Missing++
		default:
			result.Failed++
			logger.Warn().
				Err(err).
				Str(loggers.FieldUsername, delta.Username).
				Int64("delta", delta.Delta).
				Msg("bulk view increment entry failed")
		}
	}

	return result, nil
}

func (s *filePortfolioStore) Update(ctx context.Context, username string, update *models.PortfolioUpdate) (*models.Portfolio, error) {
	newUsername := username
	if update.Username != nil {
		newUsername = *update.Username
	}

	unlock := s.locks.Lock(username, newUsername)
	defer unlock()

	portfolio, err := s.read(ctx, username)
	if err != nil {
		return nil, err
	}

	update.Apply(portfolio)
	portfolio.UpdatedAt = s.now()

	if newUsername == username {
		if err := s.write(ctx, portfolio, true); err != nil {
			return nil, fmt.Errorf("failed to update portfolio: %w", err)
		}
		return portfolio, nil
	}

	// rename: publish under the new key first so a taken username leaves the old record intact
	if err := s.write(ctx, portfolio, false); err != nil {
		if errors.Is(err, filestorages.ErrFileAlreadyExists) {
			return nil, ErrPortfolioAlreadyExist
		}
		return nil, fmt.Errorf("failed to update portfolio: %w", err)
	}
	if err := s.fileStorage.Delete(ctx, s.key(username)); err != nil && !errors.Is(err, filestorages.ErrFileNotFound) {
		return nil, fmt.Errorf("failed to remove renamed portfolio: %w", err)
	}
	return portfolio, nil
}

// addViewsLocked expects the key lock of username to be held.
func (s *filePortfolioStore) addViewsLocked(ctx context.Context, username string, delta int64) (*models.Portfolio, error) {
	portfolio, err := s.read(ctx, username)
	if err != nil {
		return nil, err
	}
	portfolio.Views += delta
	portfolio.UpdatedAt = s.now()

	if err := s.write(ctx, portfolio, true); err != nil {
		return nil, fmt.Errorf("failed to write portfolio views: %w", err)
	}
	return portfolio, nil
}

func (s *filePortfolioStore) read(ctx context.Context, username string) (*models.Portfolio, error) {
	readCloser, err := s.fileStorage.Get(ctx, s.key(username))
	if err != nil {
		if errors.Is(err, filestorages.ErrFileNotFound) || errors.Is(err, filestorages.ErrInvalidKey) {
			return nil, ErrPortfolioNotFound
		}
		return nil, fmt.Errorf("failed to get portfolio: %w", err)
	}
	defer readCloser.Close()

	data, err := io.ReadAll(readCloser)
	if err != nil {
		return nil, fmt.Errorf("failed to read portfolio: %w", err)
	}
	var portfolio models.Portfolio
	if err := json.Unmarshal(data, &portfolio); err != nil {
		return nil, fmt.Errorf("failed to unmarshal portfolio: %w", err)
	}
	return &portfolio, nil
}

func (s *filePortfolioStore) write(ctx context.Context, portfolio *models.Portfolio, allowOverwrite bool) error {
	jsonData, err := json.Marshal(portfolio)
	if err != nil {
		return fmt.Errorf("failed to marshal portfolio: %w", err)
	}
	_, err = s.fileStorage.Put(ctx, s.key(portfolio.Username), bytes.NewReader(jsonData), filestorages.PutOptions{AllowOverwrite: allowOverwrite})
	return err
}

func (s *filePortfolioStore) key(username string) string {
	return fmt.Sprintf("%s/%s.json", s.dir, username)
}
