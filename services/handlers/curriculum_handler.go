package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/shared"
)

type CurriculumHandler struct {
	curriculumSvc CurriculumServiceInterface
}

func NewCurriculumHandler(curriculumSvc CurriculumServiceInterface) *CurriculumHandler {
	return &CurriculumHandler{
		curriculumSvc: curriculumSvc,
	}
}

// @Summary List Curriculums
// @Description Get curriculums with optional category filter
// @Tags curriculums
// @Accept json
// @Produce json
// @Param category query string false "Filter by category"
// @Param active query bool false "Only active curriculums"
// @Success 200 {object} shared.Response{data=dto.CurriculumCollectionResponse}
// @Router /api/v1/curriculums [get]
func (h *CurriculumHandler) GetCurriculums(c *fiber.Ctx) error {
	category := c.Query("category")
	activeOnly := c.QueryBool("active", false)

	curriculums, err := h.curriculumSvc.GetCurriculums(category, activeOnly)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", curriculums)
}

// @Summary Get Curriculum
// @Description Get one curriculum with its lesson count
// @Tags curriculums
// @Accept json
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Success 200 {object} shared.Response{data=dto.CurriculumResponse}
// @Router /api/v1/curriculums/{curriculumId} [get]
func (h *CurriculumHandler) GetCurriculum(c *fiber.Ctx) error {
	curriculum, err := h.curriculumSvc.GetCurriculum(c.Params("curriculumId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", curriculum)
}

// @Summary Create Curriculum
// @Description Create a new curriculum
// @Tags curriculums
// @Accept json
// @Produce json
// @Param request body dto.CreateCurriculumRequest true "Curriculum"
// @Success 201 {object} shared.Response{data=dto.CurriculumResponse}
// @Router /api/v1/curriculums [post]
func (h *CurriculumHandler) CreateCurriculum(c *fiber.Ctx) error {
	var req dto.CreateCurriculumRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	curriculum, err := h.curriculumSvc.CreateCurriculum(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", curriculum)
}

// @Summary Update Curriculum
// @Description Partially update a curriculum
// @Tags curriculums
// @Accept json
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Param request body dto.UpdateCurriculumRequest true "Changes"
// @Success 200 {object} shared.Response{data=dto.CurriculumResponse}
// @Router /api/v1/curriculums/{curriculumId} [put]
func (h *CurriculumHandler) UpdateCurriculum(c *fiber.Ctx) error {
	var req dto.UpdateCurriculumRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	curriculum, err := h.curriculumSvc.UpdateCurriculum(c.Params("curriculumId"), &req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", curriculum)
}

// @Summary Delete Curriculum
// @Description Hard-delete a curriculum
// @Tags curriculums
// @Accept json
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/curriculums/{curriculumId} [delete]
func (h *CurriculumHandler) DeleteCurriculum(c *fiber.Ctx) error {
	if err := h.curriculumSvc.DeleteCurriculum(c.Params("curriculumId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Upload Cover Image
// @Description Upload a curriculum cover image and patch its public URL
// @Tags curriculums
// @Accept multipart/form-data
// @Produce json
// @Param curriculumId path string true "Curriculum ID"
// @Param file formData file true "Image file"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/curriculums/{curriculumId}/cover [post]
func (h *CurriculumHandler) UploadCoverImage(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return shared.ResponseBadRequest(c, "Image file is required")
	}

	src, err := file.Open()
	if err != nil {
		return shared.NewBadRequestError(err, "Failed to read uploaded file")
	}
	defer src.Close()

	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	upload, err := h.curriculumSvc.UploadCoverImage(c.Params("curriculumId"), file.Filename, src, file.Size, contentType)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", upload)
}

// @Summary List Courses
// @Description Get the legacy course catalog
// @Tags catalog
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=[]dto.CourseResponse}
// @Router /api/v1/courses [get]
func (h *CurriculumHandler) GetCourses(c *fiber.Ctx) error {
	courses, err := h.curriculumSvc.GetCourses()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", courses)
}

// @Summary List Course Modules
// @Description Get the modules of a legacy course
// @Tags catalog
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} shared.Response{data=[]dto.ModuleResponse}
// @Router /api/v1/courses/{courseId}/modules [get]
func (h *CurriculumHandler) GetCourseModules(c *fiber.Ctx) error {
	modules, err := h.curriculumSvc.GetCourseModules(c.Params("courseId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", modules)
}
