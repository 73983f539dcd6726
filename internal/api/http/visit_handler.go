package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/service"
	"visithub-backend/internal/window"

	"github.com/gorilla/mux"
)

type VisitHandler struct {
	visitSvc    service.VisitService
	maxBodySize int64
}

func NewVisitHandler(visitSvc service.VisitService, maxFileSizeMB int64) *VisitHandler {
	return &VisitHandler{
		visitSvc:    visitSvc,
		maxBodySize: maxFileSizeMB << 20,
	}
}

type createVisitRequest struct {
	TeamID        int32  `json:"team_id"`
	ScheduledDate string `json:"scheduled_date"` // YYYY-MM-DD, service local time
}

func (h *VisitHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var req createVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	scheduled, err := time.ParseInLocation("2006-01-02", req.ScheduledDate, window.IST)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "scheduled_date must be YYYY-MM-DD"})
		return
	}

	visit, err := h.visitSvc.CreateVisit(r.Context(), actor, req.TeamID, scheduled)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, visit)
}

func (h *VisitHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := visitID(w, r)
	if !ok {
		return
	}
	visit, err := h.visitSvc.GetVisit(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visit)
}

func (h *VisitHandler) ListByTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := strconv.ParseInt(mux.Vars(r)["teamID"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid team id"})
		return
	}
	page, _ := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32)
	pageSize, _ := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32)

	visits, total, err := h.visitSvc.ListTeamVisits(r.Context(), int32(teamID), int32(page), int32(pageSize))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"visits": visits, "total": total})
}

// GetWindow surfaces the contribution window read-only for "opens/closes
// at" countdowns, in both UTC and the service local timezone.
func (h *VisitHandler) GetWindow(w http.ResponseWriter, r *http.Request) {
	id, ok := visitID(w, r)
	if !ok {
		return
	}
	start, end, err := h.visitSvc.GetWindow(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"window_start":       start.UTC(),
		"window_end":         end.UTC(),
		"window_start_local": start.In(window.IST).Format(localTimeFormat),
		"window_end_local":   end.In(window.IST).Format(localTimeFormat),
	})
}

func (h *VisitHandler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := visitID(w, r)
	if !ok {
		return
	}

	contentType := r.Header.Get("Content-Type")
	kind := mediaKind(contentType)
	if kind == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unsupported content type"})
		return
	}
	filename := r.URL.Query().Get("filename")
	if filename == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "filename query parameter is required"})
		return
	}

	body := io.LimitReader(r.Body, h.maxBodySize)
	ref, err := h.visitSvc.AddMedia(r.Context(), actor, id, kind, filename, contentType, body)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ref)
}

func (h *VisitHandler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := visitID(w, r)
	if !ok {
		return
	}
	mediaID := mux.Vars(r)["mediaID"]

	if err := h.visitSvc.DeleteMedia(r.Context(), actor, id, mediaID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VisitHandler) UpdateReport(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := visitID(w, r)
	if !ok {
		return
	}

	var report domain.ReportFields
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.visitSvc.UpdateReport(r.Context(), actor, id, report); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *VisitHandler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := visitID(w, r)
	if !ok {
		return
	}

	var report domain.ReportFields
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	visit, err := h.visitSvc.SubmitReport(r.Context(), actor, id, report)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visit)
}

func (h *VisitHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())
	id, ok := visitID(w, r)
	if !ok {
		return
	}
	visit, err := h.visitSvc.CancelVisit(r.Context(), actor, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, visit)
}

func visitID(w http.ResponseWriter, r *http.Request) (int32, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid visit id"})
		return 0, false
	}
	return int32(id), true
}

func mediaKind(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	}
	return ""
}
