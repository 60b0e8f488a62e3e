package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/dispatch-service/internal/domain"
	"github.com/spec-kit/dispatch-service/internal/repository"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// TemplateService manages reusable shift templates.
type TemplateService struct {
	templates repository.ShiftTemplateRepository
	audit     repository.AuditRepository
	logger    *zap.Logger
}

// NewTemplateService creates the service.
func NewTemplateService(templates repository.ShiftTemplateRepository, audit repository.AuditRepository, logger *zap.Logger) *TemplateService {
	return &TemplateService{templates: templates, audit: audit, logger: logger}
}

// TemplateInput carries the mutable template fields.
type TemplateInput struct {
	Name         string
	Start        string
	End          string
	Type         string
	WorkLocation string
}

// Create stores a new template.
func (s *TemplateService) Create(ctx context.Context, actor string, input TemplateInput) (*domain.ShiftTemplate, error) {
	tpl := &domain.ShiftTemplate{
		ID:           uuid.NewString(),
		Name:         input.Name,
		Start:        input.Start,
		End:          input.End,
		Type:         input.Type,
		WorkLocation: input.WorkLocation,
	}
	if err := s.templates.Create(ctx, tpl); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordChange(ctx, actor, tpl.ID, "created")
	return tpl, nil
}

// Update modifies a template.
func (s *TemplateService) Update(ctx context.Context, actor, id string, input TemplateInput) (*domain.ShiftTemplate, error) {
	tpl, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	tpl.Name = input.Name
	tpl.Start = input.Start
	tpl.End = input.End
	tpl.Type = input.Type
	tpl.WorkLocation = input.WorkLocation
	if err := s.templates.Update(ctx, tpl); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.recordChange(ctx, actor, tpl.ID, "updated")
	return tpl, nil
}

// Delete removes a template.
func (s *TemplateService) Delete(ctx context.Context, actor, id string) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("template", map[string]any{"template_id": id})
		}
		return apperrors.MapError(err)
	}
	s.recordChange(ctx, actor, id, "deleted")
	return nil
}

// List returns all templates.
func (s *TemplateService) List(ctx context.Context) ([]*domain.ShiftTemplate, error) {
	templates, err := s.templates.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return templates, nil
}

func (s *TemplateService) get(ctx context.Context, id string) (*domain.ShiftTemplate, error) {
	tpl, err := s.templates.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("template", map[string]any{"template_id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return tpl, nil
}

func (s *TemplateService) recordChange(ctx context.Context, actor, templateID, change string) {
	if s.audit == nil {
		return
	}
	entry := &domain.AuditEntry{
		ID:       uuid.NewString(),
		Actor:    actor,
		Action:   domain.AuditTemplateChange,
		Resource: "templates/" + templateID,
		Details:  map[string]any{"change": change},
	}
	if err := s.audit.Create(ctx, entry); err != nil {
		s.logger.Error("failed to record audit entry", zap.Error(err))
	}
}
