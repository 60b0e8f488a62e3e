package domain

import "time"

// AuditAction names an auditable mutation.
type AuditAction string

const (
	AuditShiftCreated   AuditAction = "shift_created"
	AuditShiftUpdated   AuditAction = "shift_updated"
	AuditShiftDeleted   AuditAction = "shift_deleted"
	AuditShiftApplied   AuditAction = "shift_applied"
	AuditShiftAssigned  AuditAction = "shift_assigned"
	AuditShiftRemoved   AuditAction = "shift_unassigned"
	AuditTemplateChange AuditAction = "template_changed"
)

// AuditEntry records who did what to which resource.
type AuditEntry struct {
	ID        string
	Actor     string
	Action    AuditAction
	Resource  string
	Details   map[string]any
	CreatedAt time.Time
}
