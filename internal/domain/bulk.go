package domain

type BulkAction string

const (
	BulkActionApprove    BulkAction = "APPROVE"
	BulkActionReject     BulkAction = "REJECT"
	BulkActionRoleChange BulkAction = "ROLE_CHANGE"
	BulkActionDelete     BulkAction = "DELETE"
)

func (a BulkAction) Valid() bool {
	switch a {
	case BulkActionApprove, BulkActionReject, BulkActionRoleChange, BulkActionDelete:
		return true
	}
	return false
}

// BulkRequest is one admin batch action over a list of user targets.
// Duplicate target IDs are tolerated and processed in order.
type BulkRequest struct {
	Action         BulkAction `json:"action"`
	TargetIDs      []int32    `json:"target_ids"`
	ActorID        int32      `json:"actor_id"`
	NewRole        UserRole   `json:"new_role,omitempty"` // role-change only
	IdempotencyKey string     `json:"idempotency_key,omitempty"`
}

// ItemReason is the closed vocabulary for per-item rejections. Callers
// pattern-match on these; raw error text never leaks into results.
type ItemReason string

const (
	ItemReasonNotFound   ItemReason = "not-found"
	ItemReasonLastAdmin  ItemReason = "last-admin"
	ItemReasonTeamLeader ItemReason = "team-leader"
	ItemReasonSelf       ItemReason = "self"
	ItemReasonError      ItemReason = "error"
)

type ItemResult struct {
	TargetID int32      `json:"target_id"`
	OK       bool       `json:"ok"`
	Reason   ItemReason `json:"reason,omitempty"`
}

// BulkResult aggregates a batch run. Idempotent is set when the results
// were replayed from a prior run with the same idempotency key.
type BulkResult struct {
	Matched    int32        `json:"matched"`
	Modified   int32        `json:"modified"`
	Results    []ItemResult `json:"results"`
	Idempotent bool         `json:"idempotent,omitempty"`
}
