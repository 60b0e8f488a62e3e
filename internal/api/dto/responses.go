package dto

import (
	"time"

	"github.com/spec-kit/dispatch-service/internal/domain"
)

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ShiftResponse JSON shape for shifts.
type ShiftResponse struct {
	ID            string    `json:"id"`
	Date          string    `json:"date"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Type          string    `json:"type"`
	WorkLocation  string    `json:"workLocation"`
	Status        string    `json:"status"`
	AssigneeEmail *string   `json:"assigneeEmail,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewShiftResponse maps the domain shift.
func NewShiftResponse(shift *domain.Shift) ShiftResponse {
	return ShiftResponse{
		ID:            shift.ID,
		Date:          shift.Date,
		Start:         shift.Start,
		End:           shift.End,
		Type:          shift.Type,
		WorkLocation:  shift.WorkLocation,
		Status:        string(shift.Status),
		AssigneeEmail: shift.AssigneeEmail,
		CreatedAt:     shift.CreatedAt,
		UpdatedAt:     shift.UpdatedAt,
	}
}

// NewShiftListResponse maps a slice of shifts.
func NewShiftListResponse(shifts []*domain.Shift) []ShiftResponse {
	out := make([]ShiftResponse, 0, len(shifts))
	for _, shift := range shifts {
		out = append(out, NewShiftResponse(shift))
	}
	return out
}

// TemplateResponse JSON shape for shift templates.
type TemplateResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Start        string    `json:"start"`
	End          string    `json:"end"`
	Type         string    `json:"type"`
	WorkLocation string    `json:"workLocation"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NewTemplateResponse maps the domain template.
func NewTemplateResponse(tpl *domain.ShiftTemplate) TemplateResponse {
	return TemplateResponse{
		ID:           tpl.ID,
		Name:         tpl.Name,
		Start:        tpl.Start,
		End:          tpl.End,
		Type:         tpl.Type,
		WorkLocation: tpl.WorkLocation,
		CreatedAt:    tpl.CreatedAt,
		UpdatedAt:    tpl.UpdatedAt,
	}
}

// AuditEntryResponse JSON shape for audit entries.
type AuditEntryResponse struct {
	ID        string         `json:"id"`
	Actor     string         `json:"actor"`
	Action    string         `json:"action"`
	Resource  string         `json:"resource"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewAuditEntryResponse maps the domain entry.
func NewAuditEntryResponse(entry *domain.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:        entry.ID,
		Actor:     entry.Actor,
		Action:    string(entry.Action),
		Resource:  entry.Resource,
		Details:   entry.Details,
		CreatedAt: entry.CreatedAt,
	}
}

// PreferenceResponse JSON shape for notification preferences.
type PreferenceResponse struct {
	Recipient          string `json:"recipient"`
	EmailNotifications bool   `json:"emailNotifications"`
}
