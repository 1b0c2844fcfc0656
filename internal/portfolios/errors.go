package portfolios

import (
	"fmt"

	"portfolio-views/internal/shared/svcerrors"
)

// PortfolioService errors
const (
	codeValidationFailed = "PRT_1000"
	codeUsernameTaken    = "PRT_1001"
	codeNotFound         = "PRT_1002"

	codeInternalPortfolioStoreFailed = "PRT_9000"
	codeInternalUploadStoreFailed    = "PRT_9001"
)

// errValidationFailed returns an error for validation failures.
func errValidationFailed(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeValidationFailed, msg, cause)
}

func errUsernameTaken(cause error) *svcerrors.ServiceError {
	return svcerrors.NewResourceConflictError(codeUsernameTaken, "username is already taken", cause)
}

func errPortfolioNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeNotFound, "portfolio not found", cause)
}

// errInternalPortfolioStoreFailed returns an error when a portfolio store operation fails.
func errInternalPortfolioStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalPortfolioStoreFailed, fmt.Errorf("portfolioStoreFailed: %w", cause))
}

// errInternalUploadStoreFailed returns an error when an uploaded file could not be stored.
func errInternalUploadStoreFailed(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInternalError(codeInternalUploadStoreFailed, fmt.Errorf("uploadStoreFailed: %w", cause))
}
