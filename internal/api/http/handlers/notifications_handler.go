package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/api/dto"
	"github.com/spec-kit/dispatch-service/internal/auth"
	"github.com/spec-kit/dispatch-service/internal/service"
	"github.com/spec-kit/dispatch-service/internal/worker"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// NotificationsHandler exposes preference management and the manual
// digest trigger.
type NotificationsHandler struct {
	notifications *service.NotificationService
	digest        *worker.DigestWorker
	extractor     *auth.Extractor
}

// NewNotificationsHandler constructs handler.
func NewNotificationsHandler(notifications *service.NotificationService, digest *worker.DigestWorker, extractor *auth.Extractor) *NotificationsHandler {
	return &NotificationsHandler{notifications: notifications, digest: digest, extractor: extractor}
}

// GetPreference handles GET /notifications/preferences.
func (h *NotificationsHandler) GetPreference(c *fiber.Ctx) error {
	recipient, err := h.callerEmail(c)
	if err != nil {
		return err
	}
	pref, err := h.notifications.GetPreference(c.UserContext(), recipient)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.PreferenceResponse{
		Recipient:          pref.Recipient,
		EmailNotifications: pref.EmailNotifications,
	}})
}

// UpdatePreference handles PUT /notifications/preferences.
func (h *NotificationsHandler) UpdatePreference(c *fiber.Ctx) error {
	recipient, err := h.callerEmail(c)
	if err != nil {
		return err
	}

	var req dto.PreferenceRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	pref, err := h.notifications.UpdatePreference(c.UserContext(), recipient, *req.EmailNotifications)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": dto.PreferenceResponse{
		Recipient:          pref.Recipient,
		EmailNotifications: pref.EmailNotifications,
	}})
}

// RunDigest handles POST /notifications/digest/run (admin only).
func (h *NotificationsHandler) RunDigest(c *fiber.Ctx) error {
	if err := h.digest.RunNow(c.UserContext()); err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"status": "completed"}})
}

func (h *NotificationsHandler) callerEmail(c *fiber.Ctx) (string, error) {
	identity, ok := h.extractor.Extract(c)
	if !ok || identity.Email == "" {
		return "", apperrors.NewValidationError("caller email not resolvable from credentials", nil)
	}
	return identity.Email, nil
}
