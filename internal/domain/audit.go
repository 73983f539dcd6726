package domain

import (
	"encoding/json"
	"time"
)

// AuditEntry is an immutable record of who did what. Metadata carries the
// full per-item results and the idempotency key when one was supplied, so
// the audit table doubles as the idempotency-dedupe index.
type AuditEntry struct {
	ID             string          `json:"id"`
	ActorID        int32           `json:"actor_id"`
	Action         string          `json:"action"`
	TargetType     string          `json:"target_type"`
	TargetID       *int32          `json:"target_id,omitempty"`
	Metadata       json.RawMessage `json:"metadata"`
	IdempotencyKey string          `json:"idempotency_key,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// BulkAuditMetadata is the metadata payload written for bulk runs.
type BulkAuditMetadata struct {
	Matched        int32        `json:"matched"`
	Modified       int32        `json:"modified"`
	Results        []ItemResult `json:"results"`
	IdempotencyKey string       `json:"idempotency_key,omitempty"`
}
