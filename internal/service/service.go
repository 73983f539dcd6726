package service

import (
	"context"
	"io"
	"time"

	"visithub-backend/internal/domain"
)

// Authorizer answers the two role questions the gate composes: does the
// actor hold a universal override, and does the actor belong to a team.
type Authorizer interface {
	IsPrivileged(actor domain.Actor) bool
	IsMember(ctx context.Context, actor domain.Actor, teamID int32) (bool, error)
}

// ContributionGate is the combined time and membership predicate consulted
// before every mutating visit operation. A nil return means the mutation is
// allowed; a *domain.GateDeniedError explains the refusal. The gate is
// re-evaluated on every call, never cached across a request.
type ContributionGate interface {
	CanMutate(ctx context.Context, actor domain.Actor, visit *domain.Visit, now time.Time) error
}

type VisitService interface {
	CreateVisit(ctx context.Context, actor domain.Actor, teamID int32, scheduledDate time.Time) (*domain.Visit, error)
	GetVisit(ctx context.Context, id int32) (*domain.Visit, error)
	ListTeamVisits(ctx context.Context, teamID, page, pageSize int32) ([]domain.Visit, int32, error)
	// GetWindow surfaces the window read-only, backfilling it if absent.
	GetWindow(ctx context.Context, id int32) (start, end time.Time, err error)

	AddMedia(ctx context.Context, actor domain.Actor, visitID int32, kind, filename, contentType string, body io.Reader) (*domain.MediaRef, error)
	DeleteMedia(ctx context.Context, actor domain.Actor, visitID int32, mediaID string) error
	UpdateReport(ctx context.Context, actor domain.Actor, visitID int32, report domain.ReportFields) error
	SubmitReport(ctx context.Context, actor domain.Actor, visitID int32, report domain.ReportFields) (*domain.Visit, error)
	CancelVisit(ctx context.Context, actor domain.Actor, visitID int32) (*domain.Visit, error)
}

// BulkService applies one admin action across a list of user targets with
// per-item isolation and idempotency-key replay.
type BulkService interface {
	Execute(ctx context.Context, req *domain.BulkRequest) (*domain.BulkResult, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type EmailService interface {
	SendWindowOpeningReminder(ctx context.Context, email, name, teamName string, opensAt, closesAt time.Time) error
	SendAccountStatusNotification(ctx context.Context, email, name, status string) error
}
