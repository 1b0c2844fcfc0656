package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-views/internal/models"
	"portfolio-views/internal/shared/svcerrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppResponseWriter_LabelsResponses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		write        func(w http.ResponseWriter, r *http.Request)
		wantStatus   int
		wantCode     string
		wantCategory string
	}{
		{
			name: "success envelope carries no error labels",
			write: func(w http.ResponseWriter, r *http.Request) {
				writeSuccessResponse(w, http.StatusOK, "portfolio fetched", &models.Portfolio{Username: "ada", Views: 7})
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "not found",
			write: func(w http.ResponseWriter, r *http.Request) {
				writeErrorResponse(w, r, svcerrors.NewNotFoundError("PRT_1002", "portfolio not found", nil))
			},
			wantStatus:   http.StatusNotFound,
			wantCode:     "PRT_1002",
			wantCategory: "not_found",
		},
		{
			name: "internal",
			write: func(w http.ResponseWriter, r *http.Request) {
				writeErrorResponse(w, r, svcerrors.NewInternalError("SYS_9001", assert.AnError))
			},
			wantStatus:   http.StatusInternalServerError,
			wantCode:     "SYS_9001",
			wantCategory: "internal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rr := httptest.NewRecorder()
			appWriter := newAppResponseWriter(rr, 1)
			tt.write(appWriter, httptest.NewRequest(http.MethodGet, "/portfolios/ada", nil))

			assert.Equal(t, tt.wantStatus, appWriter.Status())
			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantCode, appWriter.ErrorCode())
			assert.Equal(t, tt.wantCategory, appWriter.ErrorCategory())
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Equal(t, rr.Body.Len(), appWriter.BytesWritten())
		})
	}
}

func TestAppResponseWriter_SuccessEnvelopeBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	appWriter := newAppResponseWriter(rr, 1)
	writeSuccessResponse(appWriter, http.StatusCreated, "portfolio created", &models.Portfolio{Username: "ada"})

	var body struct {
		Success bool             `json:"success"`
		Message string           `json:"message"`
		Data    models.Portfolio `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "portfolio created", body.Message)
	assert.Equal(t, "ada", body.Data.Username)
	assert.Zero(t, body.Data.Views)
}

func TestAppResponseWriter_ClearingServiceError(t *testing.T) {
	t.Parallel()

	appWriter := newAppResponseWriter(httptest.NewRecorder(), 1)
	appWriter.SetServiceError(svcerrors.NewInvalidArgumentError("HTTP_1001", "invalid request body", nil))
	assert.Equal(t, "invalid_argument", appWriter.ErrorCategory())

	appWriter.SetServiceError(nil)
	assert.Empty(t, appWriter.ErrorCode())
	assert.Empty(t, appWriter.ErrorCategory())
}
