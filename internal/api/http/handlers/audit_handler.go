package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/api/dto"
	"github.com/spec-kit/dispatch-service/internal/repository"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// AuditHandler exposes the audit log.
type AuditHandler struct {
	audit repository.AuditRepository
}

// NewAuditHandler constructs handler.
func NewAuditHandler(audit repository.AuditRepository) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List handles GET /audit.
func (h *AuditHandler) List(c *fiber.Ctx) error {
	entries, err := h.audit.List(c.UserContext(), c.QueryInt("limit", 100))
	if err != nil {
		return apperrors.MapError(err)
	}
	out := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.NewAuditEntryResponse(entry))
	}
	return c.JSON(fiber.Map{"data": out})
}
