package http

import (
	"encoding/json"
	"net/http"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/service"
)

type AdminHandler struct {
	bulkSvc service.BulkService
}

func NewAdminHandler(bulkSvc service.BulkService) *AdminHandler {
	return &AdminHandler{bulkSvc: bulkSvc}
}

type bulkRequestBody struct {
	Action    string  `json:"action"`
	TargetIDs []int32 `json:"target_ids"`
	NewRole   string  `json:"new_role,omitempty"`
}

// ExecuteBulk runs one batch admin action. The idempotency key arrives in
// the Idempotency-Key header so retried requests replay recorded results.
func (h *AdminHandler) ExecuteBulk(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	var body bulkRequestBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if len(body.TargetIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "target_ids is required"})
		return
	}

	req := &domain.BulkRequest{
		Action:         domain.BulkAction(body.Action),
		TargetIDs:      body.TargetIDs,
		ActorID:        actor.ID,
		NewRole:        domain.UserRole(body.NewRole),
		IdempotencyKey: r.Header.Get("Idempotency-Key"),
	}
	if !req.Action.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown action"})
		return
	}
	if req.Action == domain.BulkActionRoleChange &&
		req.NewRole != domain.UserRoleAdmin && req.NewRole != domain.UserRoleVolunteer {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "new_role must be ADMIN or VOLUNTEER"})
		return
	}

	result, err := h.bulkSvc.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
