package service_test

import (
	"context"
	"io"
	"time"

	"visithub-backend/internal/domain"

	"github.com/stretchr/testify/mock"
)

// fixedClock returns a frozen instant for deterministic window-edge tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// MockVisitRepo
type MockVisitRepo struct {
	mock.Mock
}

func (m *MockVisitRepo) Create(ctx context.Context, visit *domain.Visit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}
func (m *MockVisitRepo) GetByID(ctx context.Context, id int32) (*domain.Visit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Visit), args.Error(1)
}
func (m *MockVisitRepo) ListByTeam(ctx context.Context, teamID int32, page, pageSize int32) ([]domain.Visit, int32, error) {
	args := m.Called(ctx, teamID, page, pageSize)
	return args.Get(0).([]domain.Visit), args.Get(1).(int32), args.Error(2)
}
func (m *MockVisitRepo) ListMissingWindow(ctx context.Context, limit int32) ([]domain.Visit, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]domain.Visit), args.Error(1)
}
func (m *MockVisitRepo) ListOpeningBetween(ctx context.Context, from, to time.Time) ([]domain.Visit, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]domain.Visit), args.Error(1)
}
func (m *MockVisitRepo) SetWindow(ctx context.Context, id int32, start, end time.Time) error {
	args := m.Called(ctx, id, start, end)
	return args.Error(0)
}
func (m *MockVisitRepo) UpdateStatus(ctx context.Context, id int32, expected, next domain.VisitStatus) (bool, error) {
	args := m.Called(ctx, id, expected, next)
	return args.Bool(0), args.Error(1)
}
func (m *MockVisitRepo) UpdateReport(ctx context.Context, id int32, report domain.ReportFields) error {
	args := m.Called(ctx, id, report)
	return args.Error(0)
}
func (m *MockVisitRepo) SubmitReport(ctx context.Context, id int32, report domain.ReportFields, submittedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, report, submittedAt)
	return args.Bool(0), args.Error(1)
}
func (m *MockVisitRepo) AppendMedia(ctx context.Context, ref *domain.MediaRef) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}
func (m *MockVisitRepo) GetMedia(ctx context.Context, visitID int32) ([]domain.MediaRef, error) {
	args := m.Called(ctx, visitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MediaRef), args.Error(1)
}
func (m *MockVisitRepo) GetMediaByID(ctx context.Context, mediaID string) (*domain.MediaRef, error) {
	args := m.Called(ctx, mediaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MediaRef), args.Error(1)
}
func (m *MockVisitRepo) DeleteMedia(ctx context.Context, visitID int32, mediaID string) error {
	args := m.Called(ctx, visitID, mediaID)
	return args.Error(0)
}
func (m *MockVisitRepo) DetachUploaderMedia(ctx context.Context, uploaderID int32) error {
	args := m.Called(ctx, uploaderID)
	return args.Error(0)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}
func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
func (m *MockUserRepo) UpdateStatus(ctx context.Context, id int32, status domain.UserStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}
func (m *MockUserRepo) UpdateRole(ctx context.Context, id int32, role domain.UserRole) error {
	args := m.Called(ctx, id, role)
	return args.Error(0)
}
func (m *MockUserRepo) Delete(ctx context.Context, id int32) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
func (m *MockUserRepo) CountAdmins(ctx context.Context) (int32, error) {
	args := m.Called(ctx)
	return args.Get(0).(int32), args.Error(1)
}

// MockTeamRepo
type MockTeamRepo struct {
	mock.Mock
}

func (m *MockTeamRepo) Create(ctx context.Context, team *domain.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}
func (m *MockTeamRepo) GetByID(ctx context.Context, id int32) (*domain.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Team), args.Error(1)
}
func (m *MockTeamRepo) GetMembers(ctx context.Context, teamID int32) ([]domain.TeamMember, error) {
	args := m.Called(ctx, teamID)
	return args.Get(0).([]domain.TeamMember), args.Error(1)
}
func (m *MockTeamRepo) IsMember(ctx context.Context, teamID, userID int32) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}
func (m *MockTeamRepo) AddMember(ctx context.Context, teamID, userID int32) error {
	args := m.Called(ctx, teamID, userID)
	return args.Error(0)
}
func (m *MockTeamRepo) CountLedTeams(ctx context.Context, userID int32) (int32, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int32), args.Error(1)
}
func (m *MockTeamRepo) RemoveFromAllTeams(ctx context.Context, userID int32) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAuditRepo
type MockAuditRepo struct {
	mock.Mock
}

func (m *MockAuditRepo) Append(ctx context.Context, entry *domain.AuditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockAuditRepo) FindByIdempotencyKey(ctx context.Context, actorID int32, action, key string) (*domain.AuditEntry, error) {
	args := m.Called(ctx, actorID, action, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AuditEntry), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendWindowOpeningReminder(ctx context.Context, email, name, teamName string, opensAt, closesAt time.Time) error {
	args := m.Called(ctx, email, name, teamName, opensAt, closesAt)
	return args.Error(0)
}
func (m *MockEmailService) SendAccountStatusNotification(ctx context.Context, email, name, status string) error {
	args := m.Called(ctx, email, name, status)
	return args.Error(0)
}

// MockAuthorizer
type MockAuthorizer struct {
	mock.Mock
}

func (m *MockAuthorizer) IsPrivileged(actor domain.Actor) bool {
	args := m.Called(actor)
	return args.Bool(0)
}
func (m *MockAuthorizer) IsMember(ctx context.Context, actor domain.Actor, teamID int32) (bool, error) {
	args := m.Called(ctx, actor, teamID)
	return args.Bool(0), args.Error(1)
}

// MockMediaStorage
type MockMediaStorage struct {
	mock.Mock
}

func (m *MockMediaStorage) Save(ctx context.Context, key string, reader io.Reader) (int64, error) {
	args := m.Called(ctx, key, reader)
	return args.Get(0).(int64), args.Error(1)
}
func (m *MockMediaStorage) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}
func (m *MockMediaStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
func (m *MockMediaStorage) Exists(ctx context.Context, key string) (bool, int64, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Get(1).(int64), args.Error(2)
}
