package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, name, password_hash, role, status, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	now := time.Now().Format("2006-01-02")
	u.CreatedOn = now
	u.UpdatedOn = now
	return r.db.QueryRowContext(ctx, query, u.Email, u.Name, u.PasswordHash, u.Role, u.Status, u.CreatedOn, u.UpdatedOn).Scan(&u.ID)
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, password_hash, role, status, created_on, updated_on FROM users WHERE id = $1`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Status, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT id, email, name, password_hash, role, status, created_on, updated_on FROM users WHERE LOWER(email) = LOWER($1)`
	var createdOn, updatedOn time.Time
	err := r.db.QueryRowContext(ctx, query, email).Scan(&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.Status, &createdOn, &updatedOn)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	u.CreatedOn = createdOn.Format("2006-01-02")
	u.UpdatedOn = updatedOn.Format("2006-01-02")
	return u, nil
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	query := `UPDATE users SET status = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, status, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) UpdateRole(ctx context.Context, id int32, role domain.UserRole) error {
	query := `UPDATE users SET role = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, role, time.Now().Format("2006-01-02"), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *userRepository) CountAdmins(ctx context.Context) (int32, error) {
	var count int32
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role = $1`, domain.UserRoleAdmin).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
