package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/shared"
)

type GeneratorHandler struct {
	generatorSvc  GeneratorServiceInterface
	monitoringSvc MonitoringServiceInterface
}

func NewGeneratorHandler(generatorSvc GeneratorServiceInterface, monitoringSvc MonitoringServiceInterface) *GeneratorHandler {
	return &GeneratorHandler{
		generatorSvc:  generatorSvc,
		monitoringSvc: monitoringSvc,
	}
}

// @Summary Generate Lesson
// @Description Build a complete lesson payload from the topic templates
// @Tags generator
// @Accept json
// @Produce json
// @Param request body dto.GenerateLessonRequest true "Generator input"
// @Success 200 {object} shared.Response{data=dto.GeneratedLesson}
// @Router /api/v1/generator/lessons [post]
func (h *GeneratorHandler) GenerateLesson(c *fiber.Ctx) error {
	var req dto.GenerateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lesson, err := h.generatorSvc.Generate(&req)
	if err != nil {
		return shared.NewBadRequestError(err, "Failed to generate lesson")
	}

	h.monitoringSvc.RecordLessonGenerated()
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}

// @Summary Get Generator Preset
// @Description Prefilled generator input for a named preset; unknown names fall back to self_introduction
// @Tags generator
// @Accept json
// @Produce json
// @Param name path string true "Preset name"
// @Success 200 {object} shared.Response{data=dto.GenerateLessonRequest}
// @Router /api/v1/generator/presets/{name} [get]
func (h *GeneratorHandler) GetPreset(c *fiber.Ctx) error {
	preset := h.generatorSvc.Preset(c.Params("name"))
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", preset)
}
