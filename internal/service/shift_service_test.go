package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-service/internal/domain"
	"github.com/spec-kit/dispatch-service/internal/events"
	"github.com/spec-kit/dispatch-service/internal/repository"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

type memShiftRepo struct {
	shifts map[string]*domain.Shift
}

func newMemShiftRepo() *memShiftRepo {
	return &memShiftRepo{shifts: make(map[string]*domain.Shift)}
}

func (r *memShiftRepo) Create(_ context.Context, shift *domain.Shift) error {
	clone := *shift
	r.shifts[shift.ID] = &clone
	return nil
}

func (r *memShiftRepo) Update(_ context.Context, shift *domain.Shift) error {
	if _, ok := r.shifts[shift.ID]; !ok {
		return pgx.ErrNoRows
	}
	clone := *shift
	r.shifts[shift.ID] = &clone
	return nil
}

func (r *memShiftRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.shifts[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.shifts, id)
	return nil
}

func (r *memShiftRepo) GetByID(_ context.Context, id string) (*domain.Shift, error) {
	shift, ok := r.shifts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *shift
	return &clone, nil
}

func (r *memShiftRepo) List(_ context.Context, _ repository.ShiftFilter) ([]*domain.Shift, error) {
	out := make([]*domain.Shift, 0, len(r.shifts))
	for _, shift := range r.shifts {
		clone := *shift
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memShiftRepo) CountByType(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, shift := range r.shifts {
		counts[shift.Type]++
	}
	return counts, nil
}

func (r *memShiftRepo) CountByStatus(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int)
	for _, shift := range r.shifts {
		counts[string(shift.Status)]++
	}
	return counts, nil
}

type memAuditRepo struct {
	entries []*domain.AuditEntry
}

func (r *memAuditRepo) Create(_ context.Context, entry *domain.AuditEntry) error {
	r.entries = append(r.entries, entry)
	return nil
}

func (r *memAuditRepo) List(_ context.Context, limit int) ([]*domain.AuditEntry, error) {
	if limit > len(r.entries) {
		limit = len(r.entries)
	}
	return r.entries[:limit], nil
}

func (r *memAuditRepo) actions() []domain.AuditAction {
	out := make([]domain.AuditAction, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, entry.Action)
	}
	return out
}

type capturedEvents struct {
	events []events.Event
}

func (c *capturedEvents) capture(dispatcher events.Dispatcher) {
	handler := func(_ context.Context, event events.Event) error {
		c.events = append(c.events, event)
		return nil
	}
	dispatcher.Subscribe(events.EventShiftApplied, handler)
	dispatcher.Subscribe(events.EventShiftAssigned, handler)
	dispatcher.Subscribe(events.EventShiftRemoved, handler)
}

func newTestShiftService() (*ShiftService, *memShiftRepo, *memAuditRepo, *capturedEvents) {
	shiftRepo := newMemShiftRepo()
	auditRepo := &memAuditRepo{}
	dispatcher := events.NewInMemoryDispatcher()
	captured := &capturedEvents{}
	captured.capture(dispatcher)

	svc := NewShiftService(ShiftDependencies{
		ShiftRepo:  shiftRepo,
		AuditRepo:  auditRepo,
		Dispatcher: dispatcher,
		Logger:     zap.NewNop(),
	})
	return svc, shiftRepo, auditRepo, captured
}

func testShiftInput() ShiftInput {
	return ShiftInput{
		Date:         "2025-01-15",
		Start:        "06:00",
		End:          "14:00",
		Type:         "Frühdienst",
		WorkLocation: "Leitstelle Nord",
	}
}

func TestShiftCreate(t *testing.T) {
	svc, repo, audit, _ := newTestShiftService()

	shift, err := svc.Create(context.Background(), "chef@example.org", testShiftInput())
	require.NoError(t, err)
	assert.NotEmpty(t, shift.ID)
	assert.Equal(t, domain.ShiftStatusOpen, shift.Status)
	assert.Nil(t, shift.AssigneeEmail)

	stored, err := repo.GetByID(context.Background(), shift.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-15", stored.Date)
	assert.Equal(t, []domain.AuditAction{domain.AuditShiftCreated}, audit.actions())
}

func TestShiftGetUnknownIDIsNotFound(t *testing.T) {
	svc, _, _, _ := newTestShiftService()

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	domainErr := apperrors.ToDomainError(err)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestShiftApply(t *testing.T) {
	svc, _, audit, captured := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "anna@example.org", "anna@example.org", shift.ID)
	require.NoError(t, err)

	require.Len(t, captured.events, 1)
	assert.Equal(t, events.EventShiftApplied, captured.events[0].Type)
	payload, ok := captured.events[0].Payload.(events.ShiftAppliedPayload)
	require.True(t, ok)
	assert.Equal(t, "anna@example.org", payload.Applicant)
	assert.Contains(t, audit.actions(), domain.AuditShiftApplied)
}

func TestShiftApplyRejectedWhenNotOpen(t *testing.T) {
	svc, _, _, _ := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)
	_, err = svc.Assign(ctx, "chef@example.org", shift.ID, "ben@example.org")
	require.NoError(t, err)

	_, err = svc.Apply(ctx, "anna@example.org", "anna@example.org", shift.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestShiftAssign(t *testing.T) {
	svc, repo, _, captured := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)

	assigned, err := svc.Assign(ctx, "chef@example.org", shift.ID, "anna@example.org")
	require.NoError(t, err)
	require.NotNil(t, assigned.AssigneeEmail)
	assert.Equal(t, "anna@example.org", *assigned.AssigneeEmail)
	assert.Equal(t, domain.ShiftStatusAssigned, assigned.Status)

	stored, err := repo.GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusAssigned, stored.Status)

	require.Len(t, captured.events, 1)
	assert.Equal(t, events.EventShiftAssigned, captured.events[0].Type)
	payload, ok := captured.events[0].Payload.(events.ShiftAssignmentPayload)
	require.True(t, ok)
	assert.Equal(t, "anna@example.org", payload.Recipient)
	assert.Equal(t, "2025-01-15", payload.Shift.Date)
}

func TestShiftAssignSameAssigneeIsIdempotent(t *testing.T) {
	svc, _, _, captured := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)

	_, err = svc.Assign(ctx, "chef@example.org", shift.ID, "anna@example.org")
	require.NoError(t, err)
	_, err = svc.Assign(ctx, "chef@example.org", shift.ID, "anna@example.org")
	require.NoError(t, err)

	assert.Len(t, captured.events, 1, "re-assigning the same person must not emit a second event")
}

func TestShiftUnassign(t *testing.T) {
	svc, repo, _, captured := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)
	_, err = svc.Assign(ctx, "chef@example.org", shift.ID, "anna@example.org")
	require.NoError(t, err)

	unassigned, err := svc.Unassign(ctx, "chef@example.org", shift.ID)
	require.NoError(t, err)
	assert.Nil(t, unassigned.AssigneeEmail)
	assert.Equal(t, domain.ShiftStatusOpen, unassigned.Status)

	stored, err := repo.GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShiftStatusOpen, stored.Status)

	require.Len(t, captured.events, 2)
	removal := captured.events[1]
	assert.Equal(t, events.EventShiftRemoved, removal.Type)
	payload, ok := removal.Payload.(events.ShiftAssignmentPayload)
	require.True(t, ok)
	assert.Equal(t, "anna@example.org", payload.Recipient, "the removed dispatcher is the notification recipient")
}

func TestShiftUnassignWithoutAssigneeIsConflict(t *testing.T) {
	svc, _, _, _ := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)

	_, err = svc.Unassign(ctx, "chef@example.org", shift.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperrors.ToDomainError(err).Code)
}

func TestShiftDelete(t *testing.T) {
	svc, repo, _, _ := newTestShiftService()
	ctx := context.Background()

	shift, err := svc.Create(ctx, "chef@example.org", testShiftInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "chef@example.org", shift.ID))
	_, err = repo.GetByID(ctx, shift.ID)
	assert.Error(t, err)

	err = svc.Delete(ctx, "chef@example.org", shift.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperrors.ToDomainError(err).Code)
}
