package postgres

import (
	"database/sql"

	"visithub-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.VisitRepository
	repository.UserRepository
	repository.TeamRepository
	repository.AuditRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:              db,
		VisitRepository: NewVisitRepository(db),
		UserRepository:  NewUserRepository(db),
		TeamRepository:  NewTeamRepository(db),
		AuditRepository: NewAuditRepository(db),
	}
}
