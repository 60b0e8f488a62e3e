package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/api/dto"
	"github.com/spec-kit/dispatch-service/internal/auth"
	"github.com/spec-kit/dispatch-service/internal/domain"
	"github.com/spec-kit/dispatch-service/internal/repository"
	"github.com/spec-kit/dispatch-service/internal/service"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// ShiftsHandler exposes the shift resource.
type ShiftsHandler struct {
	shifts    *service.ShiftService
	extractor *auth.Extractor
}

// NewShiftsHandler constructs handler.
func NewShiftsHandler(shifts *service.ShiftService, extractor *auth.Extractor) *ShiftsHandler {
	return &ShiftsHandler{shifts: shifts, extractor: extractor}
}

// List handles GET /shifts.
func (h *ShiftsHandler) List(c *fiber.Ctx) error {
	filter := repository.ShiftFilter{Limit: c.QueryInt("limit", 0)}
	if from := c.Query("from"); from != "" {
		filter.DateFrom = &from
	}
	if to := c.Query("to"); to != "" {
		filter.DateTo = &to
	}
	if status := c.Query("status"); status != "" {
		shiftStatus := domain.ShiftStatus(status)
		filter.Status = &shiftStatus
	}

	shifts, err := h.shifts.List(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftListResponse(shifts)})
}

// Get handles GET /shifts/:id.
func (h *ShiftsHandler) Get(c *fiber.Ctx) error {
	shift, err := h.shifts.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Create handles POST /shifts.
func (h *ShiftsHandler) Create(c *fiber.Ctx) error {
	input, err := h.parseShiftInput(c)
	if err != nil {
		return err
	}
	shift, err := h.shifts.Create(c.UserContext(), h.extractor.ActorLabel(c), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Update handles PUT /shifts/:id.
func (h *ShiftsHandler) Update(c *fiber.Ctx) error {
	input, err := h.parseShiftInput(c)
	if err != nil {
		return err
	}
	shift, err := h.shifts.Update(c.UserContext(), h.extractor.ActorLabel(c), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Delete handles DELETE /shifts/:id.
func (h *ShiftsHandler) Delete(c *fiber.Ctx) error {
	if err := h.shifts.Delete(c.UserContext(), h.extractor.ActorLabel(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Apply handles POST /shifts/:id/apply.
func (h *ShiftsHandler) Apply(c *fiber.Ctx) error {
	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return apperrors.NewValidationError("invalid payload", nil)
		}
		if err := dto.Validate(req); err != nil {
			return err
		}
	}

	applicant := req.Email
	if applicant == "" {
		if identity, ok := h.extractor.Extract(c); ok {
			applicant = identity.Email
		}
	}
	if applicant == "" {
		return apperrors.NewValidationError("applicant email required", nil)
	}

	shift, err := h.shifts.Apply(c.UserContext(), h.extractor.ActorLabel(c), applicant, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Assign handles POST /shifts/:id/assign.
func (h *ShiftsHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	shift, err := h.shifts.Assign(c.UserContext(), h.extractor.ActorLabel(c), c.Params("id"), req.Email)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

// Unassign handles DELETE /shifts/:id/assign.
func (h *ShiftsHandler) Unassign(c *fiber.Ctx) error {
	shift, err := h.shifts.Unassign(c.UserContext(), h.extractor.ActorLabel(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewShiftResponse(shift)})
}

func (h *ShiftsHandler) parseShiftInput(c *fiber.Ctx) (*service.ShiftInput, error) {
	var req dto.ShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return &service.ShiftInput{
		Date:         req.Date,
		Start:        req.Start,
		End:          req.End,
		Type:         req.Type,
		WorkLocation: req.WorkLocation,
	}, nil
}
