package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/logger"
	"visithub-backend/internal/repository"
	"visithub-backend/internal/storage"
	"visithub-backend/internal/window"

	"github.com/google/uuid"
)

type visitService struct {
	visitRepo repository.VisitRepository
	auditRepo repository.AuditRepository
	gate      ContributionGate
	store     storage.MediaStorage
	clock     window.Clock
}

func NewVisitService(
	visitRepo repository.VisitRepository,
	auditRepo repository.AuditRepository,
	gate ContributionGate,
	store storage.MediaStorage,
	clock window.Clock,
) VisitService {
	return &visitService{
		visitRepo: visitRepo,
		auditRepo: auditRepo,
		gate:      gate,
		store:     store,
		clock:     clock,
	}
}

func (s *visitService) CreateVisit(ctx context.Context, actor domain.Actor, teamID int32, scheduledDate time.Time) (*domain.Visit, error) {
	if !actor.IsAdmin {
		return nil, &domain.GateDeniedError{Reason: domain.DenyReasonNotAuthorized}
	}

	// The window is derivable at any time, so compute it up front rather
	// than leaving it to the first gate evaluation.
	start, end := window.Compute(scheduledDate)
	visit := &domain.Visit{
		TeamID:        teamID,
		ScheduledDate: scheduledDate,
		Status:        domain.VisitStatusScheduled,
		WindowStart:   &start,
		WindowEnd:     &end,
	}
	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, fmt.Errorf("failed to create visit: %w", err)
	}
	logger.Info("Visit created", "visit_id", visit.ID, "team_id", teamID, "window_start", start)
	return visit, nil
}

func (s *visitService) GetVisit(ctx context.Context, id int32) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	media, err := s.visitRepo.GetMedia(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit media: %w", err)
	}
	visit.Media = media
	return visit, nil
}

func (s *visitService) ListTeamVisits(ctx context.Context, teamID, page, pageSize int32) ([]domain.Visit, int32, error) {
	return s.visitRepo.ListByTeam(ctx, teamID, page, pageSize)
}

func (s *visitService) GetWindow(ctx context.Context, id int32) (time.Time, time.Time, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if visit.WindowStart == nil || visit.WindowEnd == nil {
		start, end := window.Compute(visit.ScheduledDate)
		if err := s.visitRepo.SetWindow(ctx, id, start, end); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("%w: persist window: %v", domain.ErrStoreUnavailable, err)
		}
		visit.WindowStart = &start
		visit.WindowEnd = &end
	}
	return *visit.WindowStart, *visit.WindowEnd, nil
}

func (s *visitService) AddMedia(ctx context.Context, actor domain.Actor, visitID int32, kind, filename, contentType string, body io.Reader) (*domain.MediaRef, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanMutate(ctx, actor, visit, s.clock.Now()); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("visits/%d/%s%s", visitID, uuid.NewString(), filepath.Ext(filename))
	size, err := s.store.Save(ctx, key, body)
	if err != nil {
		return nil, fmt.Errorf("failed to store media file: %w", err)
	}

	// The attachment row is written only after the file landed and the
	// record is fully built; an upload failure leaves no partial ref.
	ref := &domain.MediaRef{
		ID:          uuid.NewString(),
		VisitID:     visitID,
		UploaderID:  actor.ID,
		Kind:        kind,
		StorageKey:  key,
		ContentType: contentType,
		SizeBytes:   size,
	}
	if err := s.visitRepo.AppendMedia(ctx, ref); err != nil {
		_ = s.store.Delete(ctx, key)
		return nil, fmt.Errorf("failed to record media: %w", err)
	}
	return ref, nil
}

func (s *visitService) DeleteMedia(ctx context.Context, actor domain.Actor, visitID int32, mediaID string) error {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if err := s.gate.CanMutate(ctx, actor, visit, s.clock.Now()); err != nil {
		return err
	}

	ref, err := s.visitRepo.GetMediaByID(ctx, mediaID)
	if err != nil {
		return err
	}
	if ref.VisitID != visitID {
		return domain.ErrNotFound
	}
	if err := s.visitRepo.DeleteMedia(ctx, visitID, mediaID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, ref.StorageKey); err != nil {
		logger.Warn("Failed to delete media file from storage", "key", ref.StorageKey, "error", err)
	}
	return nil
}

func (s *visitService) UpdateReport(ctx context.Context, actor domain.Actor, visitID int32, report domain.ReportFields) error {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return err
	}
	if err := s.gate.CanMutate(ctx, actor, visit, s.clock.Now()); err != nil {
		return err
	}
	return s.visitRepo.UpdateReport(ctx, visitID, report)
}

func (s *visitService) SubmitReport(ctx context.Context, actor domain.Actor, visitID int32, report domain.ReportFields) (*domain.Visit, error) {
	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if err := s.gate.CanMutate(ctx, actor, visit, s.clock.Now()); err != nil {
		return nil, err
	}

	submittedAt := s.clock.Now().UTC()
	ok, err := s.visitRepo.SubmitReport(ctx, visitID, report, submittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to submit report: %w", err)
	}
	if !ok {
		// Another caller moved the visit out of SCHEDULED between the
		// gate check and the guarded update.
		return nil, domain.ErrInvalidTransition
	}

	visit.Report = report
	visit.Status = domain.VisitStatusCompleted
	visit.SubmittedAt = &submittedAt
	logger.Info("Visit report submitted", "visit_id", visitID, "actor_id", actor.ID)
	return visit, nil
}

func (s *visitService) CancelVisit(ctx context.Context, actor domain.Actor, visitID int32) (*domain.Visit, error) {
	if !actor.IsAdmin {
		return nil, &domain.GateDeniedError{Reason: domain.DenyReasonNotAuthorized}
	}

	visit, err := s.visitRepo.GetByID(ctx, visitID)
	if err != nil {
		return nil, err
	}
	if visit.Status.Terminal() {
		return nil, domain.ErrInvalidTransition
	}

	ok, err := s.visitRepo.UpdateStatus(ctx, visitID, domain.VisitStatusScheduled, domain.VisitStatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel visit: %w", err)
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	visit.Status = domain.VisitStatusCancelled

	metadata, _ := json.Marshal(map[string]any{"visit_id": visitID})
	entry := &domain.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actor.ID,
		Action:     "VISIT_CANCEL",
		TargetType: "visit",
		TargetID:   &visitID,
		Metadata:   metadata,
	}
	if err := s.auditRepo.Append(ctx, entry); err != nil {
		logger.Error("Failed to append audit entry for visit cancel", "visit_id", visitID, "error", err)
	}
	return visit, nil
}
