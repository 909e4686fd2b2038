package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salon-lingo/admin_api/shared"
)

type StructureHandler struct {
	structureSvc  StructureServiceInterface
	monitoringSvc MonitoringServiceInterface
}

func NewStructureHandler(structureSvc StructureServiceInterface, monitoringSvc MonitoringServiceInterface) *StructureHandler {
	return &StructureHandler{
		structureSvc:  structureSvc,
		monitoringSvc: monitoringSvc,
	}
}

// @Summary Validate Lesson Structure
// @Description Check a lesson's collections against the canonical shape
// @Tags structure
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.StructureValidationResponse}
// @Router /api/v1/lessons/{lessonId}/structure/validate [get]
func (h *StructureHandler) ValidateLesson(c *fiber.Ctx) error {
	result, err := h.structureSvc.ValidateLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Diff Lesson Structure
// @Description Compare a lesson's field set against the canonical one
// @Tags structure
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.StructureDiffResponse}
// @Router /api/v1/lessons/{lessonId}/structure/diff [get]
func (h *StructureHandler) DiffLesson(c *fiber.Ctx) error {
	result, err := h.structureSvc.DiffLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Suggest Migration
// @Description Emit idempotent backfill statements for a lesson's collections
// @Tags structure
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.MigrationSuggestionResponse}
// @Router /api/v1/lessons/{lessonId}/structure/migration [get]
func (h *StructureHandler) SuggestMigration(c *fiber.Ctx) error {
	result, err := h.structureSvc.SuggestMigration(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Repair Lesson Structure
// @Description Apply the backfill semantics directly and persist the result
// @Tags structure
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.StructureValidationResponse}
// @Router /api/v1/lessons/{lessonId}/structure/repair [post]
func (h *StructureHandler) RepairLesson(c *fiber.Ctx) error {
	result, err := h.structureSvc.RepairLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}

// @Summary Curriculum Structure Report
// @Description Compliance statistics across every lesson of a curriculum
// @Tags structure
// @Accept json
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Success 200 {object} shared.Response{data=dto.CurriculumStructureReport}
// @Router /api/v1/curriculums/{curriculumId}/structure [get]
func (h *StructureHandler) AnalyzeCurriculum(c *fiber.Ctx) error {
	report, err := h.structureSvc.AnalyzeCurriculum(c.Params("curriculumId"))
	if err != nil {
		return err
	}

	h.monitoringSvc.RecordStructureReport("api")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", report)
}
