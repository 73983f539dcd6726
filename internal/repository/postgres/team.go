package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/repository"
)

type teamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) repository.TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `INSERT INTO teams (name, leader_id, created_on) VALUES ($1, $2, $3) RETURNING id`
	t.CreatedOn = time.Now().Format("2006-01-02")
	return r.db.QueryRowContext(ctx, query, t.Name, t.LeaderID, t.CreatedOn).Scan(&t.ID)
}

func (r *teamRepository) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	t := &domain.Team{}
	query := `SELECT id, name, leader_id, created_on FROM teams WHERE id = $1`
	var createdOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name, &t.LeaderID, &createdOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	t.CreatedOn = createdOn.Format("2006-01-02")
	return t, nil
}

func (r *teamRepository) GetMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error) {
	query := `SELECT team_id, user_id, joined_on FROM team_members WHERE team_id = $1`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []domain.TeamMember
	for rows.Next() {
		var m domain.TeamMember
		var joinedOn time.Time
		if err := rows.Scan(&m.TeamID, &m.UserID, &joinedOn); err != nil {
			return nil, err
		}
		m.JoinedOn = joinedOn.Format("2006-01-02")
		members = append(members, m)
	}
	return members, rows.Err()
}

func (r *teamRepository) IsMember(ctx context.Context, teamID, userID int32) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2)`
	if err := r.db.QueryRowContext(ctx, query, teamID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *teamRepository) AddMember(ctx context.Context, teamID, userID int32) error {
	query := `INSERT INTO team_members (team_id, user_id, joined_on) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`
	_, err := r.db.ExecContext(ctx, query, teamID, userID, time.Now().Format("2006-01-02"))
	return err
}

func (r *teamRepository) CountLedTeams(ctx context.Context, userID int32) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE leader_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *teamRepository) RemoveFromAllTeams(ctx context.Context, userID int32) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM team_members WHERE user_id = $1`, userID)
	return err
}
