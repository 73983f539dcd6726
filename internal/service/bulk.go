package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/metrics"
	"visithub-backend/internal/repository"

	"github.com/google/uuid"
)

type bulkService struct {
	userRepo  repository.UserRepository
	teamRepo  repository.TeamRepository
	visitRepo repository.VisitRepository
	auditRepo repository.AuditRepository
	emailSvc  EmailService
}

func NewBulkService(
	userRepo repository.UserRepository,
	teamRepo repository.TeamRepository,
	visitRepo repository.VisitRepository,
	auditRepo repository.AuditRepository,
	emailSvc EmailService,
) BulkService {
	return &bulkService{
		userRepo:  userRepo,
		teamRepo:  teamRepo,
		visitRepo: visitRepo,
		auditRepo: auditRepo,
		emailSvc:  emailSvc,
	}
}

// Execute runs one admin batch. Items succeed or fail independently; a
// rejection never rolls back or blocks the rest of the batch. With an
// idempotency key, a repeat call replays the recorded results and applies
// no further mutation.
func (s *bulkService) Execute(ctx context.Context, req *domain.BulkRequest) (*domain.BulkResult, error) {
	if !req.Action.Valid() {
		return nil, fmt.Errorf("unknown bulk action %q", req.Action)
	}

	if req.IdempotencyKey != "" {
		prior, err := s.auditRepo.FindByIdempotencyKey(ctx, req.ActorID, string(req.Action), req.IdempotencyKey)
		if err != nil {
			return nil, fmt.Errorf("%w: idempotency lookup: %v", domain.ErrStoreUnavailable, err)
		}
		if prior != nil {
			return replayResult(prior)
		}
	}

	results := make([]domain.ItemResult, 0, len(req.TargetIDs))
	var modified int32
	for _, targetID := range req.TargetIDs {
		res := s.applyItem(ctx, req, targetID)
		if res.OK {
			modified++
		}
		outcome := "ok"
		if !res.OK {
			outcome = string(res.Reason)
		}
		metrics.BulkItems.WithLabelValues(string(req.Action), outcome).Inc()
		results = append(results, res)
	}

	result := &domain.BulkResult{
		Matched:  int32(len(req.TargetIDs)),
		Modified: modified,
		Results:  results,
	}

	metadata, err := json.Marshal(domain.BulkAuditMetadata{
		Matched:        result.Matched,
		Modified:       result.Modified,
		Results:        results,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit metadata: %w", err)
	}

	entry := &domain.AuditEntry{
		ID:             uuid.NewString(),
		ActorID:        req.ActorID,
		Action:         string(req.Action),
		TargetType:     "user",
		Metadata:       metadata,
		IdempotencyKey: req.IdempotencyKey,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateIdempotencyKey) {
			// A concurrent call with the same key won the append race.
			// Discard our run and hand back the durable record's results.
			prior, ferr := s.auditRepo.FindByIdempotencyKey(ctx, req.ActorID, string(req.Action), req.IdempotencyKey)
			if ferr != nil || prior == nil {
				return nil, fmt.Errorf("%w: idempotency conflict re-read: %v", domain.ErrStoreUnavailable, ferr)
			}
			return replayResult(prior)
		}
		return nil, fmt.Errorf("failed to append audit entry: %w", err)
	}

	logger.Info("Bulk action executed",
		"action", req.Action, "actor_id", req.ActorID,
		"matched", result.Matched, "modified", result.Modified)
	return result, nil
}

// applyItem guards and applies one target. Reasons come from the closed
// vocabulary; backing-store failures surface as reason "error", never as
// raw error text.
func (s *bulkService) applyItem(ctx context.Context, req *domain.BulkRequest, targetID int32) domain.ItemResult {
	var err error
	switch req.Action {
	case domain.BulkActionApprove:
		err = s.approve(ctx, targetID)
	case domain.BulkActionReject:
		err = s.reject(ctx, targetID)
	case domain.BulkActionRoleChange:
		err = s.changeRole(ctx, targetID, req.NewRole)
	case domain.BulkActionDelete:
		err = s.deleteUser(ctx, req.ActorID, targetID)
	}

	if err == nil {
		return domain.ItemResult{TargetID: targetID, OK: true}
	}

	var reason domain.ItemReason
	switch {
	case errors.Is(err, domain.ErrNotFound):
		reason = domain.ItemReasonNotFound
	case errors.Is(err, errLastAdmin):
		reason = domain.ItemReasonLastAdmin
	case errors.Is(err, errTeamLeader):
		reason = domain.ItemReasonTeamLeader
	case errors.Is(err, errSelfTarget):
		reason = domain.ItemReasonSelf
	default:
		logger.Error("Bulk item failed", "action", req.Action, "target_id", targetID, "error", err)
		reason = domain.ItemReasonError
	}
	return domain.ItemResult{TargetID: targetID, OK: false, Reason: reason}
}

var (
	errLastAdmin  = errors.New("target is the last remaining admin")
	errTeamLeader = errors.New("target leads a team")
	errSelfTarget = errors.New("target is the acting admin")
)

func (s *bulkService) approve(ctx context.Context, targetID int32) error {
	if err := s.userRepo.UpdateStatus(ctx, targetID, domain.UserStatusActive); err != nil {
		return err
	}
	s.notifyStatus(ctx, targetID, string(domain.UserStatusActive))
	return nil
}

func (s *bulkService) reject(ctx context.Context, targetID int32) error {
	if err := s.userRepo.UpdateStatus(ctx, targetID, domain.UserStatusRejected); err != nil {
		return err
	}
	s.notifyStatus(ctx, targetID, string(domain.UserStatusRejected))
	return nil
}

func (s *bulkService) changeRole(ctx context.Context, targetID int32, newRole domain.UserRole) error {
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user.IsAdmin() && newRole != domain.UserRoleAdmin {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return errLastAdmin
		}
	}
	return s.userRepo.UpdateRole(ctx, targetID, newRole)
}

func (s *bulkService) deleteUser(ctx context.Context, actorID, targetID int32) error {
	if targetID == actorID {
		return errSelfTarget
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if user.IsAdmin() {
		admins, err := s.userRepo.CountAdmins(ctx)
		if err != nil {
			return err
		}
		if admins <= 1 {
			return errLastAdmin
		}
	}
	led, err := s.teamRepo.CountLedTeams(ctx, targetID)
	if err != nil {
		return err
	}
	if led > 0 {
		return errTeamLeader
	}
	if err := s.teamRepo.RemoveFromAllTeams(ctx, targetID); err != nil {
		return err
	}
	// Uploaded media stays with its visit; only the uploader link goes,
	// otherwise the user row cannot be removed.
	if err := s.visitRepo.DetachUploaderMedia(ctx, targetID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, targetID)
}

func (s *bulkService) notifyStatus(ctx context.Context, targetID int32, status string) {
	if s.emailSvc == nil {
		return
	}
	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return
	}
	_ = s.emailSvc.SendAccountStatusNotification(ctx, user.Email, user.Name, status)
}

func replayResult(entry *domain.AuditEntry) (*domain.BulkResult, error) {
	var meta domain.BulkAuditMetadata
	if err := json.Unmarshal(entry.Metadata, &meta); err != nil {
		return nil, fmt.Errorf("failed to decode recorded results: %w", err)
	}
	metrics.BulkReplays.Inc()
	return &domain.BulkResult{
		Matched:    meta.Matched,
		Modified:   meta.Modified,
		Results:    meta.Results,
		Idempotent: true,
	}, nil
}
