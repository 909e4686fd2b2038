// services/prompt.go
package services

import (
	"encoding/json"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
)

// PromptService manages AI prompt configurations and the global/feedback
// settings behind the super-admin pages. The ai_settings jsonb column is
// parsed and validated at this boundary; malformed payloads fall back to the
// global defaults instead of propagating.
type PromptService struct {
	appContext.DefaultService

	sqlSvc *PostgresService
}

const PROMPT_SVC = "prompt_svc"

func (svc PromptService) Id() string {
	return PROMPT_SVC
}

func (svc *PromptService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func defaultAISettings() model.AISettings {
	return model.AISettings{MaxTokens: 500, ResponseFormat: "text"}
}

// parseAISettings validates the stored jsonb blob, quarantining malformed
// payloads behind the defaults.
func parseAISettings(raw json.RawMessage) model.AISettings {
	settings := defaultAISettings()
	if len(raw) == 0 || string(raw) == "null" {
		return settings
	}

	var parsed model.AISettings
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return settings
	}

	if parsed.MaxTokens > 0 && parsed.MaxTokens <= 4096 {
		settings.MaxTokens = parsed.MaxTokens
	}
	if parsed.ResponseFormat == "text" || parsed.ResponseFormat == "json" {
		settings.ResponseFormat = parsed.ResponseFormat
	}
	return settings
}

func toPromptResponse(prompt *model.LessonAIPrompt) dto.PromptConfigResponse {
	return dto.PromptConfigResponse{
		ID:             prompt.ID,
		LessonID:       prompt.LessonID,
		ActivityType:   prompt.ActivityType,
		PromptCategory: prompt.PromptCategory,
		PromptContent:  prompt.PromptContent,
		AISettings:     parseAISettings(prompt.AISettings),
		IsActive:       prompt.IsActive,
	}
}

func (svc *PromptService) GetPromptConfig(id string) (*dto.PromptConfigResponse, error) {
	prompt, err := svc.sqlSvc.GetPromptConfig(id)
	if err != nil {
		return nil, err
	}
	response := toPromptResponse(prompt)
	return &response, nil
}

func (svc *PromptService) GetPromptConfigs(activityType string, lessonID *string) (*dto.PromptConfigCollectionResponse, error) {
	prompts, err := svc.sqlSvc.GetPromptConfigs(activityType, lessonID)
	if err != nil {
		return nil, err
	}

	responses := lo.Map(prompts, func(p model.LessonAIPrompt, _ int) dto.PromptConfigResponse {
		return toPromptResponse(&p)
	})
	return &dto.PromptConfigCollectionResponse{Prompts: responses, Total: len(responses)}, nil
}

// ResolvePrompt returns the effective prompt for an activity: the
// lesson-scoped row when one exists, otherwise the global default.
func (svc *PromptService) ResolvePrompt(activityType, category string, lessonID *string) (*dto.PromptConfigResponse, error) {
	prompt, err := svc.sqlSvc.FindPromptConfig(activityType, category, lessonID)
	if err != nil {
		return nil, err
	}
	response := toPromptResponse(prompt)
	return &response, nil
}

func (svc *PromptService) CreatePromptConfig(req *dto.UpsertPromptConfigRequest) (*dto.PromptConfigResponse, error) {
	prompt := &model.LessonAIPrompt{
		ID:             uuid.Must(uuid.NewV7()).String(),
		LessonID:       req.LessonID,
		ActivityType:   req.ActivityType,
		PromptCategory: req.PromptCategory,
		PromptContent:  req.PromptContent,
		IsActive:       true,
	}

	if req.AISettings != nil {
		raw, err := json.Marshal(req.AISettings)
		if err != nil {
			return nil, err
		}
		prompt.AISettings = raw
	}
	if req.IsActive != nil {
		prompt.IsActive = *req.IsActive
	}

	created, err := svc.sqlSvc.CreatePromptConfig(prompt)
	if err != nil {
		return nil, err
	}

	response := toPromptResponse(created)
	return &response, nil
}

func (svc *PromptService) UpdatePromptConfig(id string, req *dto.UpsertPromptConfigRequest) (*dto.PromptConfigResponse, error) {
	prompt, err := svc.sqlSvc.GetPromptConfig(id)
	if err != nil {
		return nil, err
	}

	prompt.LessonID = req.LessonID
	prompt.ActivityType = req.ActivityType
	prompt.PromptCategory = req.PromptCategory
	prompt.PromptContent = req.PromptContent

	if req.AISettings != nil {
		raw, err := json.Marshal(req.AISettings)
		if err != nil {
			return nil, err
		}
		prompt.AISettings = raw
	}
	if req.IsActive != nil {
		prompt.IsActive = *req.IsActive
	}

	saved, err := svc.sqlSvc.SavePromptConfig(prompt)
	if err != nil {
		return nil, err
	}

	response := toPromptResponse(saved)
	return &response, nil
}

func (svc *PromptService) DeletePromptConfig(id string) error {
	return svc.sqlSvc.DeletePromptConfig(id)
}

// ==================== GLOBAL SETTINGS ====================

// GetGlobalSettings returns the singleton row, creating it with defaults on
// first access.
func (svc *PromptService) GetGlobalSettings() (*model.AIGlobalSetting, error) {
	settings, err := svc.sqlSvc.GetGlobalSettings()
	if err == nil {
		return settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = &model.AIGlobalSetting{
		ID:             uuid.Must(uuid.NewV7()).String(),
		MaxTokens:      500,
		ResponseFormat: "text",
		IsActive:       true,
	}
	if err := svc.sqlSvc.SaveGlobalSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (svc *PromptService) UpdateGlobalSettings(req *dto.GlobalSettingsRequest) (*model.AIGlobalSetting, error) {
	settings, err := svc.GetGlobalSettings()
	if err != nil {
		return nil, err
	}

	if req.DefaultSystemPrompt != nil {
		settings.DefaultSystemPrompt = *req.DefaultSystemPrompt
	}
	if req.MaxTokens != nil {
		settings.MaxTokens = *req.MaxTokens
	}
	if req.ResponseFormat != nil {
		settings.ResponseFormat = *req.ResponseFormat
	}
	if req.IsActive != nil {
		settings.IsActive = *req.IsActive
	}

	if err := svc.sqlSvc.SaveGlobalSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// ==================== FEEDBACK SETTINGS ====================

func (svc *PromptService) GetFeedbackSettings() (*model.AIFeedbackSetting, error) {
	settings, err := svc.sqlSvc.GetFeedbackSettings()
	if err == nil {
		return settings, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	settings = &model.AIFeedbackSetting{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Tone:        "encouraging",
		DetailLevel: "standard",
		Language:    "japanese",
		IsActive:    true,
	}
	if err := svc.sqlSvc.SaveFeedbackSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

func (svc *PromptService) UpdateFeedbackSettings(req *dto.FeedbackSettingsRequest) (*model.AIFeedbackSetting, error) {
	settings, err := svc.GetFeedbackSettings()
	if err != nil {
		return nil, err
	}

	if req.Tone != nil {
		settings.Tone = *req.Tone
	}
	if req.DetailLevel != nil {
		settings.DetailLevel = *req.DetailLevel
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
	if req.PromptTemplate != nil {
		settings.PromptTemplate = *req.PromptTemplate
	}
	if req.IsActive != nil {
		settings.IsActive = *req.IsActive
	}

	if err := svc.sqlSvc.SaveFeedbackSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}
