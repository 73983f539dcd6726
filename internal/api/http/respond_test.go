package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/window"

	"github.com/stretchr/testify/assert"
)

func TestWriteError_GateDenialCarriesOpeningTime(t *testing.T) {
	opensAt := time.Date(2024, 3, 10, 12, 0, 0, 0, window.IST)
	rec := httptest.NewRecorder()

	writeError(rec, &domain.GateDeniedError{Reason: domain.DenyReasonNotOpenYet, OpensAt: &opensAt})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "not-open-yet", resp.Reason)
	assert.Equal(t, "12:00 PM on Mar 10, 2024 (IST)", resp.OpensAt)
	assert.Empty(t, resp.ClosedAt)
}

func TestWriteError_GateDenialCarriesClosingTime(t *testing.T) {
	closedAt := time.Date(2024, 3, 12, 12, 0, 0, 0, window.IST)
	rec := httptest.NewRecorder()

	writeError(rec, &domain.GateDeniedError{Reason: domain.DenyReasonClosed, ClosedAt: &closedAt})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var resp errorResponse
	assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "closed", resp.Reason)
	assert.Equal(t, "12:00 PM on Mar 12, 2024 (IST)", resp.ClosedAt)
}

func TestWriteError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", domain.ErrNotFound, http.StatusNotFound},
		{"invalid transition", domain.ErrInvalidTransition, http.StatusConflict},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tc.err)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
