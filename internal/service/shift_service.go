package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-service/internal/domain"
	"github.com/spec-kit/dispatch-service/internal/events"
	"github.com/spec-kit/dispatch-service/internal/repository"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// ShiftService handles shift lifecycle and assignment operations.
type ShiftService struct {
	shifts     repository.ShiftRepository
	audit      repository.AuditRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// ShiftDependencies bundles collaborator requirements.
type ShiftDependencies struct {
	ShiftRepo  repository.ShiftRepository
	AuditRepo  repository.AuditRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewShiftService creates the service.
func NewShiftService(deps ShiftDependencies) *ShiftService {
	return &ShiftService{
		shifts:     deps.ShiftRepo,
		audit:      deps.AuditRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// ShiftInput carries the mutable shift fields.
type ShiftInput struct {
	Date         string
	Start        string
	End          string
	Type         string
	WorkLocation string
}

// Create stores a new open shift.
func (s *ShiftService) Create(ctx context.Context, actor string, input ShiftInput) (*domain.Shift, error) {
	shift := &domain.Shift{
		ID:           uuid.NewString(),
		Date:         input.Date,
		Start:        input.Start,
		End:          input.End,
		Type:         input.Type,
		WorkLocation: input.WorkLocation,
		Status:       domain.ShiftStatusOpen,
	}
	if err := s.shifts.Create(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordAudit(ctx, actor, domain.AuditShiftCreated, shift.ID, map[string]any{
		"date": shift.Date, "type": shift.Type,
	})
	return shift, nil
}

// Update modifies shift base data.
func (s *ShiftService) Update(ctx context.Context, actor, id string, input ShiftInput) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	shift.Date = input.Date
	shift.Start = input.Start
	shift.End = input.End
	shift.Type = input.Type
	shift.WorkLocation = input.WorkLocation
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordAudit(ctx, actor, domain.AuditShiftUpdated, shift.ID, map[string]any{
		"date": shift.Date, "type": shift.Type,
	})
	return shift, nil
}

// Delete removes a shift entirely.
func (s *ShiftService) Delete(ctx context.Context, actor, id string) error {
	if err := s.shifts.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("shift", map[string]any{"shift_id": id})
		}
		return apperrors.MapError(err)
	}
	s.recordAudit(ctx, actor, domain.AuditShiftDeleted, id, nil)
	return nil
}

// Get loads one shift.
func (s *ShiftService) Get(ctx context.Context, id string) (*domain.Shift, error) {
	return s.getShift(ctx, id)
}

// List returns shifts matching the filter.
func (s *ShiftService) List(ctx context.Context, filter repository.ShiftFilter) ([]*domain.Shift, error) {
	shifts, err := s.shifts.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return shifts, nil
}

// Apply registers a dispatcher's interest in an open shift.
func (s *ShiftService) Apply(ctx context.Context, actor, applicantEmail, id string) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.Status != domain.ShiftStatusOpen {
		return nil, apperrors.NewConflict("shift not open for applications", map[string]any{"shift_id": id})
	}
	s.recordAudit(ctx, actor, domain.AuditShiftApplied, shift.ID, map[string]any{
		"applicant": applicantEmail,
	})
	s.publish(ctx, actor, events.EventShiftApplied, shift.ID, events.ShiftAppliedPayload{
		Applicant: applicantEmail,
		Shift:     shift.Snapshot(),
	})
	return shift, nil
}

// Assign gives the shift to a dispatcher and notifies them.
func (s *ShiftService) Assign(ctx context.Context, actor, id, recipientEmail string) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.AssigneeEmail != nil && *shift.AssigneeEmail == recipientEmail {
		return shift, nil
	}
	shift.AssigneeEmail = &recipientEmail
	shift.Status = domain.ShiftStatusAssigned
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordAudit(ctx, actor, domain.AuditShiftAssigned, shift.ID, map[string]any{
		"assignee": recipientEmail,
	})
	s.publish(ctx, actor, events.EventShiftAssigned, shift.ID, events.ShiftAssignmentPayload{
		Recipient: recipientEmail,
		Shift:     shift.Snapshot(),
	})
	return shift, nil
}

// Unassign removes the current assignee and notifies them immediately.
func (s *ShiftService) Unassign(ctx context.Context, actor, id string) (*domain.Shift, error) {
	shift, err := s.getShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.AssigneeEmail == nil {
		return nil, apperrors.NewConflict("shift has no assignee", map[string]any{"shift_id": id})
	}
	recipient := *shift.AssigneeEmail
	shift.AssigneeEmail = nil
	shift.Status = domain.ShiftStatusOpen
	if err := s.shifts.Update(ctx, shift); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordAudit(ctx, actor, domain.AuditShiftRemoved, shift.ID, map[string]any{
		"assignee": recipient,
	})
	s.publish(ctx, actor, events.EventShiftRemoved, shift.ID, events.ShiftAssignmentPayload{
		Recipient: recipient,
		Shift:     shift.Snapshot(),
	})
	return shift, nil
}

func (s *ShiftService) getShift(ctx context.Context, id string) (*domain.Shift, error) {
	shift, err := s.shifts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("shift", map[string]any{"shift_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return shift, nil
}

func (s *ShiftService) recordAudit(ctx context.Context, actor string, action domain.AuditAction, shiftID string, details map[string]any) {
	if s.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:       uuid.NewString(),
		Actor:    actor,
		Action:   action,
		Resource: "shifts/" + shiftID,
		Details:  details,
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Error("failed to record audit entry",
			zap.String("action", string(action)), zap.Error(err))
	}
}

func (s *ShiftService) publish(ctx context.Context, actor string, eventType events.EventType, shiftID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	event := events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ShiftID:   shiftID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Error("event handler failed",
			zap.String("event_type", string(eventType)),
			zap.String("shift_id", shiftID),
			zap.Error(err))
	}
}
