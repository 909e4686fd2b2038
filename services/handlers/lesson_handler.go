package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/shared"
)

type LessonHandler struct {
	lessonSvc     LessonServiceInterface
	monitoringSvc MonitoringServiceInterface
}

func NewLessonHandler(lessonSvc LessonServiceInterface, monitoringSvc MonitoringServiceInterface) *LessonHandler {
	return &LessonHandler{
		lessonSvc:     lessonSvc,
		monitoringSvc: monitoringSvc,
	}
}

// @Summary Get Lesson
// @Description Get a lesson in its canonical shape
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.Lesson}
// @Router /api/v1/lessons/{lessonId} [get]
func (h *LessonHandler) GetLesson(c *fiber.Ctx) error {
	lesson, err := h.lessonSvc.GetLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}

// @Summary List Curriculum Lessons
// @Description Get all lessons of a curriculum ordered by order_index
// @Tags lessons
// @Accept json
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/curriculums/{curriculumId}/lessons [get]
func (h *LessonHandler) GetCurriculumLessons(c *fiber.Ctx) error {
	lessons, err := h.lessonSvc.GetLessonsByCurriculum(c.Params("curriculumId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary Create Lesson
// @Description Create a new lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body dto.CreateLessonRequest true "Lesson"
// @Success 201 {object} shared.Response{data=dto.Lesson}
// @Router /api/v1/lessons [post]
func (h *LessonHandler) CreateLesson(c *fiber.Ctx) error {
	var req dto.CreateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lesson, err := h.lessonSvc.CreateLesson(&req)
	if err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonWrite("create")
	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", lesson)
}

// @Summary Update Lesson
// @Description Partially update a lesson; omitted fields stay untouched
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param request body dto.UpdateLessonRequest true "Changes"
// @Success 200 {object} shared.Response{data=dto.Lesson}
// @Router /api/v1/lessons/{lessonId} [put]
func (h *LessonHandler) UpdateLesson(c *fiber.Ctx) error {
	var req dto.UpdateLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lesson, err := h.lessonSvc.UpdateLesson(c.Params("lessonId"), &req)
	if err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonWrite("update")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lesson)
}

// @Summary Delete Lesson
// @Description Hard-delete a lesson
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/lessons/{lessonId} [delete]
func (h *LessonHandler) DeleteLesson(c *fiber.Ctx) error {
	if err := h.lessonSvc.DeleteLesson(c.Params("lessonId")); err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonWrite("delete")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Duplicate Lesson
// @Description Copy a lesson under a derived title; the copy starts inactive
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 201 {object} shared.Response{data=dto.Lesson}
// @Router /api/v1/lessons/{lessonId}/duplicate [post]
func (h *LessonHandler) DuplicateLesson(c *fiber.Ctx) error {
	lesson, err := h.lessonSvc.DuplicateLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonWrite("duplicate")
	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", lesson)
}

// @Summary Reorder Lessons
// @Description Rewrite order_index to match the given lesson id sequence
// @Tags lessons
// @Accept json
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Param request body dto.ReorderLessonsRequest true "Ordered lesson ids"
// @Success 200 {object} shared.Response
// @Router /api/v1/curriculums/{curriculumId}/lessons/reorder [put]
func (h *LessonHandler) ReorderLessons(c *fiber.Ctx) error {
	var req dto.ReorderLessonsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	if err := h.lessonSvc.ReorderLessons(c.Params("curriculumId"), req.LessonIDs); err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonWrite("reorder")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Bulk Update Lessons
// @Description Apply partial updates sequentially; best-effort with per-item results
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body dto.BulkUpdateLessonsRequest true "Updates"
// @Success 200 {object} shared.Response{data=dto.BulkUpdateLessonsResponse}
// @Router /api/v1/lessons/bulk [put]
func (h *LessonHandler) BulkUpdateLessons(c *fiber.Ctx) error {
	var req dto.BulkUpdateLessonsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	response := h.lessonSvc.BulkUpdateLessons(&req)

	h.monitoringSvc.RecordLessonWrite("bulk_update")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", response)
}

// @Summary Search Lessons
// @Description Search lessons by title/description with optional filters
// @Tags lessons
// @Accept json
// @Produce json
// @Param query query string false "Search text"
// @Param curriculum_id query string false "Filter by curriculum"
// @Param type query string false "Filter by lesson type"
// @Param difficulty query string false "Filter by difficulty"
// @Param limit query int false "Max results"
// @Success 200 {object} shared.Response{data=dto.LessonCollectionResponse}
// @Router /api/v1/lessons/search [get]
func (h *LessonHandler) SearchLessons(c *fiber.Ctx) error {
	var req dto.LessonSearchRequest
	if err := c.QueryParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid query parameters")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lessons, err := h.lessonSvc.SearchLessons(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", lessons)
}

// @Summary Export Lesson
// @Description Export a lesson as pretty-printed JSON of its canonical shape
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=string}
// @Router /api/v1/lessons/{lessonId}/export [get]
func (h *LessonHandler) ExportLesson(c *fiber.Ctx) error {
	payload, err := h.lessonSvc.ExportLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", payload)
}

// @Summary Import Lesson
// @Description Create a lesson from exported JSON, stripping identity fields
// @Tags lessons
// @Accept json
// @Produce json
// @Param request body dto.ImportLessonRequest true "Exported payload"
// @Success 201 {object} shared.Response{data=dto.Lesson}
// @Router /api/v1/lessons/import [post]
func (h *LessonHandler) ImportLesson(c *fiber.Ctx) error {
	var req dto.ImportLessonRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	lesson, err := h.lessonSvc.ImportLesson(&req)
	if err != nil {
		return err
	}

	h.monitoringSvc.RecordLessonWrite("import")
	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", lesson)
}

// @Summary Check Lesson
// @Description Editor-facing validation: structural issues plus editorial warnings
// @Tags lessons
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} shared.Response{data=dto.LessonCheckResponse}
// @Router /api/v1/lessons/{lessonId}/check [get]
func (h *LessonHandler) CheckLesson(c *fiber.Ctx) error {
	result, err := h.lessonSvc.CheckLesson(c.Params("lessonId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", result)
}
