package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/repository"

	"github.com/lib/pq"
)

// The audit table carries a partial unique index on
// (actor_id, action, idempotency_key), which turns the check-then-act race
// into a conflict the engine can read back.
const uniqueViolation = "23505"

type auditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) repository.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Append(ctx context.Context, e *domain.AuditEntry) error {
	query := `INSERT INTO audit_entries (id, actor_id, action, target_type, target_id, metadata, idempotency_key, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), $8)`
	e.CreatedAt = time.Now().UTC()
	logger.DatabaseCall("INSERT", "audit_entries", "actor_id", e.ActorID, "action", e.Action)
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.ActorID, e.Action, e.TargetType, e.TargetID, []byte(e.Metadata), e.IdempotencyKey, e.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return repository.ErrDuplicateIdempotencyKey
		}
		logger.DatabaseResult("INSERT", 0, err, "actor_id", e.ActorID)
		return err
	}
	return nil
}

func (r *auditRepository) FindByIdempotencyKey(ctx context.Context, actorID int32, action, key string) (*domain.AuditEntry, error) {
	e := &domain.AuditEntry{}
	query := `SELECT id, actor_id, action, target_type, target_id, metadata, COALESCE(idempotency_key, ''), created_at
	          FROM audit_entries WHERE actor_id = $1 AND action = $2 AND idempotency_key = $3`
	var metadata []byte
	err := r.db.QueryRowContext(ctx, query, actorID, action, key).Scan(
		&e.ID, &e.ActorID, &e.Action, &e.TargetType, &e.TargetID, &metadata, &e.IdempotencyKey, &e.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e.Metadata = metadata
	return e, nil
}
