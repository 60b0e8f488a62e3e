package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/dispatch-service/internal/api/dto"
	"github.com/spec-kit/dispatch-service/internal/auth"
	"github.com/spec-kit/dispatch-service/internal/service"
	apperrors "github.com/spec-kit/dispatch-service/pkg/util/errorutil"
)

// TemplatesHandler exposes the shift template resource.
type TemplatesHandler struct {
	templates *service.TemplateService
	extractor *auth.Extractor
}

// NewTemplatesHandler constructs handler.
func NewTemplatesHandler(templates *service.TemplateService, extractor *auth.Extractor) *TemplatesHandler {
	return &TemplatesHandler{templates: templates, extractor: extractor}
}

// List handles GET /templates.
func (h *TemplatesHandler) List(c *fiber.Ctx) error {
	templates, err := h.templates.List(c.UserContext())
	if err != nil {
		return err
	}
	out := make([]dto.TemplateResponse, 0, len(templates))
	for _, tpl := range templates {
		out = append(out, dto.NewTemplateResponse(tpl))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Create handles POST /templates.
func (h *TemplatesHandler) Create(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return err
	}
	tpl, err := h.templates.Create(c.UserContext(), h.extractor.ActorLabel(c), *input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewTemplateResponse(tpl)})
}

// Update handles PUT /templates/:id.
func (h *TemplatesHandler) Update(c *fiber.Ctx) error {
	input, err := h.parseInput(c)
	if err != nil {
		return err
	}
	tpl, err := h.templates.Update(c.UserContext(), h.extractor.ActorLabel(c), c.Params("id"), *input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTemplateResponse(tpl)})
}

// Delete handles DELETE /templates/:id.
func (h *TemplatesHandler) Delete(c *fiber.Ctx) error {
	if err := h.templates.Delete(c.UserContext(), h.extractor.ActorLabel(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func (h *TemplatesHandler) parseInput(c *fiber.Ctx) (*service.TemplateInput, error) {
	var req dto.TemplateRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, apperrors.NewValidationError("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return nil, err
	}
	return &service.TemplateInput{
		Name:         req.Name,
		Start:        req.Start,
		End:          req.End,
		Type:         req.Type,
		WorkLocation: req.WorkLocation,
	}, nil
}
