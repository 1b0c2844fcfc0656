package aggregators

import (
	"errors"
	"fmt"

	"portfolio-views/internal/shared/svcerrors"
)

const (
	codeInternalFlushFailed = "AGG_9000"
)

var ErrInvalidOptions = errors.New("invalid aggregator options")

// errInternalFlushFailed returns an error when a captured batch could not be written back.
func errInternalFlushFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalFlushFailed, fmt.Errorf("viewFlushFailed: %w", cause))
}
