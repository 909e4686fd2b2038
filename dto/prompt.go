package dto

import "github.com/salon-lingo/admin_api/model"

// AI prompt configuration DTOs
type PromptConfigResponse struct {
	ID             string           `json:"id"`
	LessonID       *string          `json:"lesson_id"`
	ActivityType   string           `json:"activity_type"`
	PromptCategory string           `json:"prompt_category"`
	PromptContent  string           `json:"prompt_content"`
	AISettings     model.AISettings `json:"ai_settings"`
	IsActive       bool             `json:"is_active"`
}

type PromptConfigCollectionResponse struct {
	Prompts []PromptConfigResponse `json:"prompts"`
	Total   int                    `json:"total"`
}

type UpsertPromptConfigRequest struct {
	LessonID       *string           `json:"lesson_id"`
	ActivityType   string            `json:"activity_type" validate:"required,oneof=ai_conversation application_practice"`
	PromptCategory string            `json:"prompt_category" validate:"required,oneof=system_prompt evaluation_prompt"`
	PromptContent  string            `json:"prompt_content" validate:"required"`
	AISettings     *model.AISettings `json:"ai_settings"`
	IsActive       *bool             `json:"is_active"`
}

func (r UpsertPromptConfigRequest) Validate() error {
	return validate.Struct(r)
}

type GlobalSettingsRequest struct {
	DefaultSystemPrompt *string `json:"default_system_prompt"`
	MaxTokens           *int    `json:"max_tokens" validate:"omitempty,min=1,max=4096"`
	ResponseFormat      *string `json:"response_format" validate:"omitempty,oneof=text json"`
	IsActive            *bool   `json:"is_active"`
}

func (r GlobalSettingsRequest) Validate() error {
	return validate.Struct(r)
}

type FeedbackSettingsRequest struct {
	Tone           *string `json:"tone" validate:"omitempty,oneof=encouraging neutral strict"`
	DetailLevel    *string `json:"detail_level" validate:"omitempty,oneof=brief standard detailed"`
	Language       *string `json:"language" validate:"omitempty,oneof=japanese english bilingual"`
	PromptTemplate *string `json:"prompt_template"`
	IsActive       *bool   `json:"is_active"`
}

func (r FeedbackSettingsRequest) Validate() error {
	return validate.Struct(r)
}
