package repository

import (
	"context"
	"errors"
	"time"

	"visithub-backend/internal/domain"
)

// ErrDuplicateIdempotencyKey is returned by AuditRepository.Append when
// another writer already recorded an entry for the same
// (actor, action, idempotency key) triple.
var ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

type VisitRepository interface {
	Create(ctx context.Context, visit *domain.Visit) error
	GetByID(ctx context.Context, id int32) (*domain.Visit, error)
	ListByTeam(ctx context.Context, teamID int32, page, pageSize int32) ([]domain.Visit, int32, error)
	// ListMissingWindow returns scheduled visits whose window fields were
	// never computed, for the nightly backfill job.
	ListMissingWindow(ctx context.Context, limit int32) ([]domain.Visit, error)
	// ListOpeningBetween returns scheduled visits whose window opens in
	// [from, to), for reminder delivery.
	ListOpeningBetween(ctx context.Context, from, to time.Time) ([]domain.Visit, error)

	// SetWindow persists the computed window only if none is stored yet.
	// Concurrent callers computing from the same scheduled date produce
	// identical instants, so whichever write lands first is the one kept.
	SetWindow(ctx context.Context, id int32, start, end time.Time) error
	// UpdateStatus transitions status only when the stored status matches
	// expected, reporting whether the row changed.
	UpdateStatus(ctx context.Context, id int32, expected, next domain.VisitStatus) (bool, error)
	UpdateReport(ctx context.Context, id int32, report domain.ReportFields) error
	// SubmitReport stores the report, stamps submission time and moves the
	// visit to COMPLETED in one statement, guarded on the current status.
	SubmitReport(ctx context.Context, id int32, report domain.ReportFields, submittedAt time.Time) (bool, error)

	// Media rows are appended with a single INSERT so concurrent uploads
	// never overwrite each other's attachments.
	AppendMedia(ctx context.Context, ref *domain.MediaRef) error
	GetMedia(ctx context.Context, visitID int32) ([]domain.MediaRef, error)
	GetMediaByID(ctx context.Context, mediaID string) (*domain.MediaRef, error)
	DeleteMedia(ctx context.Context, visitID int32, mediaID string) error
	// DetachUploaderMedia clears the uploader on every media row the user
	// uploaded so the attachments survive account deletion.
	DetachUploaderMedia(ctx context.Context, uploaderID int32) error
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int32) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error
	UpdateRole(ctx context.Context, id int32, role domain.UserRole) error
	Delete(ctx context.Context, id int32) error
	CountAdmins(ctx context.Context) (int32, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *domain.Team) error
	GetByID(ctx context.Context, id int32) (*domain.Team, error)
	GetMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error)
	IsMember(ctx context.Context, teamID, userID int32) (bool, error)
	AddMember(ctx context.Context, teamID, userID int32) error
	// CountLedTeams reports how many teams the user currently leads; a
	// user leading any team cannot be deleted until leadership moves.
	CountLedTeams(ctx context.Context, userID int32) (int32, error)
	RemoveFromAllTeams(ctx context.Context, userID int32) error
}

// AuditRepository is a write-only ledger plus idempotency-dedupe index.
// Nothing in the system updates or deletes audit rows.
type AuditRepository interface {
	Append(ctx context.Context, entry *domain.AuditEntry) error
	FindByIdempotencyKey(ctx context.Context, actorID int32, action, key string) (*domain.AuditEntry, error)
}
