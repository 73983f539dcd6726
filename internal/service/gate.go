package service

import (
	"context"
	"fmt"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/metrics"
	"visithub-backend/internal/repository"
	"visithub-backend/internal/window"
)

type contributionGate struct {
	visitRepo repository.VisitRepository
	auth      Authorizer
}

func NewContributionGate(visitRepo repository.VisitRepository, auth Authorizer) ContributionGate {
	return &contributionGate{visitRepo: visitRepo, auth: auth}
}

// CanMutate checks, in order: terminal status, window open, membership.
// Time gates run before the membership lookup so that requests arriving
// outside the window fail without touching the team store.
func (g *contributionGate) CanMutate(ctx context.Context, actor domain.Actor, visit *domain.Visit, now time.Time) error {
	if visit.Status != domain.VisitStatusScheduled {
		metrics.GateDecisions.WithLabelValues(string(domain.DenyReasonTerminalState)).Inc()
		return &domain.GateDeniedError{Reason: domain.DenyReasonTerminalState}
	}

	if err := g.ensureWindow(ctx, visit); err != nil {
		return err
	}

	start, end := visit.WindowStart.In(window.IST), visit.WindowEnd.In(window.IST)
	if !window.Contains(start, end, now) {
		if now.Before(start) {
			metrics.GateDecisions.WithLabelValues(string(domain.DenyReasonNotOpenYet)).Inc()
			return &domain.GateDeniedError{Reason: domain.DenyReasonNotOpenYet, OpensAt: &start}
		}
		metrics.GateDecisions.WithLabelValues(string(domain.DenyReasonClosed)).Inc()
		return &domain.GateDeniedError{Reason: domain.DenyReasonClosed, ClosedAt: &end}
	}

	if !g.auth.IsPrivileged(actor) {
		member, err := g.auth.IsMember(ctx, actor, visit.TeamID)
		if err != nil {
			return fmt.Errorf("%w: membership lookup: %v", domain.ErrStoreUnavailable, err)
		}
		if !member {
			metrics.GateDecisions.WithLabelValues(string(domain.DenyReasonNotAuthorized)).Inc()
			return &domain.GateDeniedError{Reason: domain.DenyReasonNotAuthorized}
		}
	}

	metrics.GateDecisions.WithLabelValues("allow").Inc()
	return nil
}

// ensureWindow backfills absent window fields. The derivation is
// deterministic per scheduled date, so concurrent callers racing on the
// conditional update all end up with the same stored instants.
func (g *contributionGate) ensureWindow(ctx context.Context, visit *domain.Visit) error {
	if visit.WindowStart != nil && visit.WindowEnd != nil {
		return nil
	}
	start, end := window.Compute(visit.ScheduledDate)
	if err := g.visitRepo.SetWindow(ctx, visit.ID, start, end); err != nil {
		return fmt.Errorf("%w: persist window: %v", domain.ErrStoreUnavailable, err)
	}
	visit.WindowStart = &start
	visit.WindowEnd = &end
	return nil
}
