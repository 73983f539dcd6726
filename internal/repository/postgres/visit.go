package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/repository"
)

type visitRepository struct {
	db *sql.DB
}

func NewVisitRepository(db *sql.DB) repository.VisitRepository {
	return &visitRepository{db: db}
}

const visitColumns = `id, team_id, scheduled_date, status, window_start, window_end,
	       report_summary, COALESCE(report_notes, ''), report_head_count,
	       submitted_at, created_at, updated_at`

func (r *visitRepository) Create(ctx context.Context, v *domain.Visit) error {
	query := `INSERT INTO visits (team_id, scheduled_date, status, window_start, window_end, report_summary, report_notes, report_head_count, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9) RETURNING id, created_at, updated_at`
	now := time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		v.TeamID, v.ScheduledDate, v.Status, v.WindowStart, v.WindowEnd,
		v.Report.Summary, v.Report.Notes, v.Report.HeadCount, now,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)
}

func (r *visitRepository) GetByID(ctx context.Context, id int32) (*domain.Visit, error) {
	v := &domain.Visit{}
	query := `SELECT ` + visitColumns + ` FROM visits WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&v.ID, &v.TeamID, &v.ScheduledDate, &v.Status, &v.WindowStart, &v.WindowEnd,
		&v.Report.Summary, &v.Report.Notes, &v.Report.HeadCount,
		&v.SubmittedAt, &v.CreatedAt, &v.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *visitRepository) ListByTeam(ctx context.Context, teamID int32, page, pageSize int32) ([]domain.Visit, int32, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var total int32
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM visits WHERE team_id = $1`, teamID).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + visitColumns + ` FROM visits WHERE team_id = $1 ORDER BY scheduled_date DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, teamID, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	visits, err := scanVisits(rows)
	if err != nil {
		return nil, 0, err
	}
	return visits, total, nil
}

func (r *visitRepository) ListMissingWindow(ctx context.Context, limit int32) ([]domain.Visit, error) {
	logger.DatabaseCall("SELECT", "visits missing window", "limit", limit)
	query := `SELECT ` + visitColumns + ` FROM visits WHERE status = $1 AND window_start IS NULL ORDER BY scheduled_date LIMIT $2`
	rows, err := r.db.QueryContext(ctx, query, domain.VisitStatusScheduled, limit)
	if err != nil {
		logger.DatabaseResult("SELECT", 0, err)
		return nil, err
	}
	defer rows.Close()
	return scanVisits(rows)
}

func (r *visitRepository) ListOpeningBetween(ctx context.Context, from, to time.Time) ([]domain.Visit, error) {
	query := `SELECT ` + visitColumns + ` FROM visits WHERE status = $1 AND window_start >= $2 AND window_start < $3 ORDER BY window_start`
	rows, err := r.db.QueryContext(ctx, query, domain.VisitStatusScheduled, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVisits(rows)
}

// SetWindow only fills empty window fields. The derivation is deterministic
// per scheduled date, so a concurrent loser's no-op is harmless.
func (r *visitRepository) SetWindow(ctx context.Context, id int32, start, end time.Time) error {
	query := `UPDATE visits SET window_start = $1, window_end = $2, updated_at = $3 WHERE id = $4 AND window_start IS NULL`
	_, err := r.db.ExecContext(ctx, query, start, end, time.Now().UTC(), id)
	return err
}

func (r *visitRepository) UpdateStatus(ctx context.Context, id int32, expected, next domain.VisitStatus) (bool, error) {
	query := `UPDATE visits SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, next, time.Now().UTC(), id, expected)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *visitRepository) UpdateReport(ctx context.Context, id int32, report domain.ReportFields) error {
	query := `UPDATE visits SET report_summary = $1, report_notes = $2, report_head_count = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, report.Summary, report.Notes, report.HeadCount, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *visitRepository) SubmitReport(ctx context.Context, id int32, report domain.ReportFields, submittedAt time.Time) (bool, error) {
	query := `UPDATE visits SET report_summary = $1, report_notes = $2, report_head_count = $3, submitted_at = $4, status = $5, updated_at = $6
	          WHERE id = $7 AND status = $8`
	res, err := r.db.ExecContext(ctx, query,
		report.Summary, report.Notes, report.HeadCount, submittedAt,
		domain.VisitStatusCompleted, time.Now().UTC(), id, domain.VisitStatusScheduled)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *visitRepository) AppendMedia(ctx context.Context, m *domain.MediaRef) error {
	query := `INSERT INTO visit_media (id, visit_id, uploader_id, kind, storage_key, content_type, size_bytes, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	m.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, query, m.ID, m.VisitID, m.UploaderID, m.Kind, m.StorageKey, m.ContentType, m.SizeBytes, m.CreatedAt)
	return err
}

func (r *visitRepository) GetMedia(ctx context.Context, visitID int32) ([]domain.MediaRef, error) {
	query := `SELECT id, visit_id, COALESCE(uploader_id, 0), kind, storage_key, content_type, size_bytes, created_at FROM visit_media WHERE visit_id = $1 ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query, visitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var refs []domain.MediaRef
	for rows.Next() {
		var m domain.MediaRef
		if err := rows.Scan(&m.ID, &m.VisitID, &m.UploaderID, &m.Kind, &m.StorageKey, &m.ContentType, &m.SizeBytes, &m.CreatedAt); err != nil {
			return nil, err
		}
		refs = append(refs, m)
	}
	return refs, rows.Err()
}

func (r *visitRepository) GetMediaByID(ctx context.Context, mediaID string) (*domain.MediaRef, error) {
	m := &domain.MediaRef{}
	query := `SELECT id, visit_id, COALESCE(uploader_id, 0), kind, storage_key, content_type, size_bytes, created_at FROM visit_media WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, mediaID).Scan(&m.ID, &m.VisitID, &m.UploaderID, &m.Kind, &m.StorageKey, &m.ContentType, &m.SizeBytes, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *visitRepository) DetachUploaderMedia(ctx context.Context, uploaderID int32) error {
	_, err := r.db.ExecContext(ctx, `UPDATE visit_media SET uploader_id = NULL WHERE uploader_id = $1`, uploaderID)
	return err
}

func (r *visitRepository) DeleteMedia(ctx context.Context, visitID int32, mediaID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM visit_media WHERE id = $1 AND visit_id = $2`, mediaID, visitID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanVisits(rows *sql.Rows) ([]domain.Visit, error) {
	var visits []domain.Visit
	for rows.Next() {
		var v domain.Visit
		if err := rows.Scan(
			&v.ID, &v.TeamID, &v.ScheduledDate, &v.Status, &v.WindowStart, &v.WindowEnd,
			&v.Report.Summary, &v.Report.Notes, &v.Report.HeadCount,
			&v.SubmittedAt, &v.CreatedAt, &v.UpdatedAt,
		); err != nil {
			return nil, err
		}
		visits = append(visits, v)
	}
	return visits, rows.Err()
}
