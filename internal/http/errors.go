package http

import (
	"portfolio-views/internal/shared/svcerrors"
)

// Request decoding errors
const (
	codeInvalidRequestBody = "HTTP_1000"
	codeRequestTooLarge    = "HTTP_1001"
	codeUploadNotFound     = "HTTP_1002"
)

func errInvalidRequestBody(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeInvalidRequestBody, msg, cause)
}

func errRequestTooLarge(cause error) *svcerrors.ServiceError {
	return svcerrors.NewInvalidArgumentError(codeRequestTooLarge, "request body too large", cause)
}

func errUploadNotFound(cause error) *svcerrors.ServiceError {
	return svcerrors.NewNotFoundError(codeUploadNotFound, "file not found", cause)
}
