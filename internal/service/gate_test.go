package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"visithub-backend/internal/domain"
	"visithub-backend/internal/service"
	"visithub-backend/internal/window"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func scheduledVisit(t *testing.T, date string) *domain.Visit {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, window.IST)
	assert.NoError(t, err)
	start, end := window.Compute(d)
	return &domain.Visit{
		ID:            42,
		TeamID:        7,
		ScheduledDate: d,
		Status:        domain.VisitStatusScheduled,
		WindowStart:   &start,
		WindowEnd:     &end,
	}
}

func TestCanMutate_TerminalStateDominates(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	visit := scheduledVisit(t, "2024-03-10")
	visit.Status = domain.VisitStatusCompleted
	// Even inside the open window, a terminal visit refuses mutation.
	now := visit.WindowStart.Add(time.Hour)

	err := gate.CanMutate(context.Background(), domain.Actor{ID: 1, IsAdmin: true}, visit, now)

	denied, ok := domain.AsGateDenied(err)
	assert.True(t, ok)
	assert.Equal(t, domain.DenyReasonTerminalState, denied.Reason)
	auth.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanMutate_BackfillsMissingWindow(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	visit := scheduledVisit(t, "2024-03-10")
	visit.WindowStart = nil
	visit.WindowEnd = nil
	wantStart, wantEnd := window.Compute(visit.ScheduledDate)

	visitRepo.On("SetWindow", mock.Anything, visit.ID, wantStart, wantEnd).Return(nil)
	auth.On("IsPrivileged", mock.Anything).Return(true)

	now := wantStart.Add(time.Hour)
	err := gate.CanMutate(context.Background(), domain.Actor{ID: 1, IsAdmin: true}, visit, now)

	assert.NoError(t, err)
	assert.NotNil(t, visit.WindowStart)
	assert.True(t, visit.WindowStart.Equal(wantStart))
	assert.True(t, visit.WindowEnd.Equal(wantEnd))
	visitRepo.AssertExpectations(t)
}

func TestCanMutate_BackfillPersistFailure(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	visit := scheduledVisit(t, "2024-03-10")
	visit.WindowStart = nil
	visit.WindowEnd = nil
	visitRepo.On("SetWindow", mock.Anything, visit.ID, mock.Anything, mock.Anything).
		Return(errors.New("connection reset"))

	err := gate.CanMutate(context.Background(), domain.Actor{ID: 1}, visit, time.Now())

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, ok := domain.AsGateDenied(err)
	assert.False(t, ok)
}

func TestCanMutate_NotOpenYet(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	visit := scheduledVisit(t, "2024-03-10")
	// 11:59 AM local on the scheduled day, one minute before opening.
	now := time.Date(2024, 3, 10, 11, 59, 0, 0, window.IST)

	err := gate.CanMutate(context.Background(), domain.Actor{ID: 2}, visit, now)

	denied, ok := domain.AsGateDenied(err)
	assert.True(t, ok)
	assert.Equal(t, domain.DenyReasonNotOpenYet, denied.Reason)
	assert.NotNil(t, denied.OpensAt)
	assert.True(t, denied.OpensAt.Equal(*visit.WindowStart))
	assert.Contains(t, denied.Error(), "12:00 PM on Mar 10, 2024")
	auth.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanMutate_Closed(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	visit := scheduledVisit(t, "2024-03-10")
	// One minute past the 48-hour close.
	now := time.Date(2024, 3, 12, 12, 1, 0, 0, window.IST)

	err := gate.CanMutate(context.Background(), domain.Actor{ID: 2}, visit, now)

	denied, ok := domain.AsGateDenied(err)
	assert.True(t, ok)
	assert.Equal(t, domain.DenyReasonClosed, denied.Reason)
	assert.NotNil(t, denied.ClosedAt)
	assert.True(t, denied.ClosedAt.Equal(*visit.WindowEnd))
	auth.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanMutate_BoundariesInclusive(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)
	auth.On("IsPrivileged", mock.Anything).Return(true)

	visit := scheduledVisit(t, "2024-03-10")

	assert.NoError(t, gate.CanMutate(context.Background(), domain.Actor{ID: 1, IsAdmin: true}, visit, *visit.WindowStart))
	assert.NoError(t, gate.CanMutate(context.Background(), domain.Actor{ID: 1, IsAdmin: true}, visit, *visit.WindowEnd))
}

func TestCanMutate_MidnightInsideWindow(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)
	auth.On("IsPrivileged", mock.Anything).Return(false)
	auth.On("IsMember", mock.Anything, mock.Anything, int32(7)).Return(true, nil)

	visit := scheduledVisit(t, "2024-03-10")
	now := time.Date(2024, 3, 11, 0, 0, 0, 0, window.IST)

	assert.NoError(t, gate.CanMutate(context.Background(), domain.Actor{ID: 2}, visit, now))
}

func TestCanMutate_AdminSkipsMembershipLookup(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	actor := domain.Actor{ID: 1, IsAdmin: true}
	auth.On("IsPrivileged", actor).Return(true)

	visit := scheduledVisit(t, "2024-03-10")
	now := visit.WindowStart.Add(6 * time.Hour)

	assert.NoError(t, gate.CanMutate(context.Background(), actor, visit, now))
	auth.AssertNotCalled(t, "IsMember", mock.Anything, mock.Anything, mock.Anything)
}

func TestCanMutate_NonMemberDenied(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	actor := domain.Actor{ID: 9}
	auth.On("IsPrivileged", actor).Return(false)
	auth.On("IsMember", mock.Anything, actor, int32(7)).Return(false, nil)

	visit := scheduledVisit(t, "2024-03-10")
	now := visit.WindowStart.Add(time.Hour)

	err := gate.CanMutate(context.Background(), actor, visit, now)

	denied, ok := domain.AsGateDenied(err)
	assert.True(t, ok)
	assert.Equal(t, domain.DenyReasonNotAuthorized, denied.Reason)
}

func TestCanMutate_MembershipLookupFailure(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	actor := domain.Actor{ID: 9}
	auth.On("IsPrivileged", actor).Return(false)
	auth.On("IsMember", mock.Anything, actor, int32(7)).Return(false, errors.New("timeout"))

	visit := scheduledVisit(t, "2024-03-10")
	now := visit.WindowStart.Add(time.Hour)

	err := gate.CanMutate(context.Background(), actor, visit, now)

	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	_, ok := domain.AsGateDenied(err)
	assert.False(t, ok)
}

func TestCanMutate_MemberAllowed(t *testing.T) {
	visitRepo := new(MockVisitRepo)
	auth := new(MockAuthorizer)
	gate := service.NewContributionGate(visitRepo, auth)

	actor := domain.Actor{ID: 3}
	auth.On("IsPrivileged", actor).Return(false)
	auth.On("IsMember", mock.Anything, actor, int32(7)).Return(true, nil)

	visit := scheduledVisit(t, "2024-03-10")
	now := visit.WindowStart.Add(24 * time.Hour)

	assert.NoError(t, gate.CanMutate(context.Background(), actor, visit, now))
	auth.AssertExpectations(t)
}
