package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/shared"
)

type PromptHandler struct {
	promptSvc PromptServiceInterface
}

func NewPromptHandler(promptSvc PromptServiceInterface) *PromptHandler {
	return &PromptHandler{
		promptSvc: promptSvc,
	}
}

// @Summary List Prompt Configs
// @Description Get AI prompt configurations with optional filters
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param activity_type query string false "Filter by activity type"
// @Param lesson_id query string false "Filter by lesson"
// @Success 200 {object} shared.Response{data=dto.PromptConfigCollectionResponse}
// @Router /api/v1/ai/prompts [get]
func (h *PromptHandler) GetPromptConfigs(c *fiber.Ctx) error {
	var lessonID *string
	if id := c.Query("lesson_id"); id != "" {
		lessonID = &id
	}

	prompts, err := h.promptSvc.GetPromptConfigs(c.Query("activity_type"), lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", prompts)
}

// @Summary Get Prompt Config
// @Description Get one AI prompt configuration
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param promptId path string true "Prompt ID"
// @Success 200 {object} shared.Response{data=dto.PromptConfigResponse}
// @Router /api/v1/ai/prompts/{promptId} [get]
func (h *PromptHandler) GetPromptConfig(c *fiber.Ctx) error {
	prompt, err := h.promptSvc.GetPromptConfig(c.Params("promptId"))
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", prompt)
}

// @Summary Resolve Effective Prompt
// @Description Get the effective prompt for an activity: lesson-scoped row or global default
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param activity_type query string true "Activity type"
// @Param prompt_category query string true "Prompt category"
// @Param lesson_id query string false "Lesson scope"
// @Success 200 {object} shared.Response{data=dto.PromptConfigResponse}
// @Router /api/v1/ai/prompts/resolve [get]
func (h *PromptHandler) ResolvePrompt(c *fiber.Ctx) error {
	activityType := c.Query("activity_type")
	category := c.Query("prompt_category")
	if activityType == "" || category == "" {
		return shared.ResponseBadRequest(c, "activity_type and prompt_category are required")
	}

	var lessonID *string
	if id := c.Query("lesson_id"); id != "" {
		lessonID = &id
	}

	prompt, err := h.promptSvc.ResolvePrompt(activityType, category, lessonID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", prompt)
}

// @Summary Create Prompt Config
// @Description Create an AI prompt configuration
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param request body dto.UpsertPromptConfigRequest true "Prompt"
// @Success 201 {object} shared.Response{data=dto.PromptConfigResponse}
// @Router /api/v1/ai/prompts [post]
func (h *PromptHandler) CreatePromptConfig(c *fiber.Ctx) error {
	var req dto.UpsertPromptConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	prompt, err := h.promptSvc.CreatePromptConfig(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusCreated, "Created", prompt)
}

// @Summary Update Prompt Config
// @Description Update an AI prompt configuration
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param promptId path string true "Prompt ID"
// @Param request body dto.UpsertPromptConfigRequest true "Prompt"
// @Success 200 {object} shared.Response{data=dto.PromptConfigResponse}
// @Router /api/v1/ai/prompts/{promptId} [put]
func (h *PromptHandler) UpdatePromptConfig(c *fiber.Ctx) error {
	var req dto.UpsertPromptConfigRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	prompt, err := h.promptSvc.UpdatePromptConfig(c.Params("promptId"), &req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", prompt)
}

// @Summary Delete Prompt Config
// @Description Delete an AI prompt configuration
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param promptId path string true "Prompt ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/ai/prompts/{promptId} [delete]
func (h *PromptHandler) DeletePromptConfig(c *fiber.Ctx) error {
	if err := h.promptSvc.DeletePromptConfig(c.Params("promptId")); err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", nil)
}

// @Summary Get Global AI Settings
// @Description Get application-wide AI call defaults
// @Tags ai-settings
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=model.AIGlobalSetting}
// @Router /api/v1/ai/settings/global [get]
func (h *PromptHandler) GetGlobalSettings(c *fiber.Ctx) error {
	settings, err := h.promptSvc.GetGlobalSettings()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", settings)
}

// @Summary Update Global AI Settings
// @Description Update application-wide AI call defaults
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param request body dto.GlobalSettingsRequest true "Settings"
// @Success 200 {object} shared.Response{data=model.AIGlobalSetting}
// @Router /api/v1/ai/settings/global [put]
func (h *PromptHandler) UpdateGlobalSettings(c *fiber.Ctx) error {
	var req dto.GlobalSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	settings, err := h.promptSvc.UpdateGlobalSettings(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", settings)
}

// @Summary Get Feedback Settings
// @Description Get AI feedback phrasing settings
// @Tags ai-settings
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=model.AIFeedbackSetting}
// @Router /api/v1/ai/settings/feedback [get]
func (h *PromptHandler) GetFeedbackSettings(c *fiber.Ctx) error {
	settings, err := h.promptSvc.GetFeedbackSettings()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", settings)
}

// @Summary Update Feedback Settings
// @Description Update AI feedback phrasing settings
// @Tags ai-settings
// @Accept json
// @Produce json
// @Param request body dto.FeedbackSettingsRequest true "Settings"
// @Success 200 {object} shared.Response{data=model.AIFeedbackSetting}
// @Router /api/v1/ai/settings/feedback [put]
func (h *PromptHandler) UpdateFeedbackSettings(c *fiber.Ctx) error {
	var req dto.FeedbackSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.ResponseBadRequest(c, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.CreateValidationErrorResponse(err))
	}

	settings, err := h.promptSvc.UpdateFeedbackSettings(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, fiber.StatusOK, "Success", settings)
}
