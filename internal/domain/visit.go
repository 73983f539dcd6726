package domain

import "time"

type VisitStatus string

const (
	VisitStatusScheduled VisitStatus = "SCHEDULED"
	VisitStatusCompleted VisitStatus = "COMPLETED"
	VisitStatusCancelled VisitStatus = "CANCELLED"
)

// Terminal reports whether the status accepts no further transitions.
func (s VisitStatus) Terminal() bool {
	return s == VisitStatusCompleted || s == VisitStatusCancelled
}

// Visit is a scheduled team outing. WindowStart/WindowEnd are nil until
// computed; rows created before window support exist are backfilled
// lazily on first gate evaluation and nightly by the backfill job.
type Visit struct {
	ID            int32        `json:"id"`
	TeamID        int32        `json:"team_id"`
	ScheduledDate time.Time    `json:"scheduled_date"`
	Status        VisitStatus  `json:"status"`
	WindowStart   *time.Time   `json:"window_start,omitempty"`
	WindowEnd     *time.Time   `json:"window_end,omitempty"`
	Media         []MediaRef   `json:"media,omitempty"`
	Report        ReportFields `json:"report"`
	SubmittedAt   *time.Time   `json:"submitted_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// ReportFields is the free-form outcome a member records for a visit.
type ReportFields struct {
	Summary   string `json:"summary"`
	Notes     string `json:"notes,omitempty"`
	HeadCount int32  `json:"head_count"`
}

// MediaRef points at one stored attachment. Refs live in their own
// table and are appended one row at a time.
type MediaRef struct {
	ID          string    `json:"id"`
	VisitID     int32     `json:"visit_id"`
	UploaderID  int32     `json:"uploader_id"`
	Kind        string    `json:"kind"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}
