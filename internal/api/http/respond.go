package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/service"
	"visithub-backend/internal/window"
)

type errorResponse struct {
	Error    string `json:"error"`
	Reason   string `json:"reason,omitempty"`
	OpensAt  string `json:"opens_at,omitempty"`
	ClosedAt string `json:"closed_at,omitempty"`
}

const localTimeFormat = "3:04 PM on Jan 2, 2006 (MST)"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// writeError maps domain errors onto HTTP statuses. Gate denials carry the
// concrete local-time boundary so clients can show when the window opens
// or closed instead of a generic forbidden.
func writeError(w http.ResponseWriter, err error) {
	if ge, ok := domain.AsGateDenied(err); ok {
		resp := errorResponse{Error: ge.Error(), Reason: string(ge.Reason)}
		if ge.OpensAt != nil {
			resp.OpensAt = ge.OpensAt.In(window.IST).Format(localTimeFormat)
		}
		if ge.ClosedAt != nil {
			resp.ClosedAt = ge.ClosedAt.In(window.IST).Format(localTimeFormat)
		}
		writeJSON(w, http.StatusForbidden, resp)
		return
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrInvalidTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrStoreUnavailable):
		logger.Error("Store unavailable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service temporarily unavailable"})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}
