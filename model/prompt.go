// model/prompt.go
package model

import (
	"encoding/json"
	"time"
)

// LessonAIPrompt configures one prompt for an activity type. A nil LessonID
// makes the row a global default; a lesson-scoped row overrides it.
// PromptContent may embed {placeholder} tokens resolved by the mobile client.
type LessonAIPrompt struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	LessonID       *string         `json:"lesson_id" gorm:"index"`
	ActivityType   string          `json:"activity_type" gorm:"not null"` // ai_conversation, application_practice
	PromptCategory string          `json:"prompt_category" gorm:"not null"`
	PromptContent  string          `json:"prompt_content" gorm:"type:text"`
	AISettings     json.RawMessage `json:"ai_settings" gorm:"type:jsonb"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// AISettings is the validated shape of the ai_settings jsonb column.
type AISettings struct {
	MaxTokens      int    `json:"max_tokens"`
	ResponseFormat string `json:"response_format"` // text, json
}

// AIGlobalSetting holds application-wide AI call defaults.
type AIGlobalSetting struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	DefaultSystemPrompt string    `json:"default_system_prompt" gorm:"type:text"`
	MaxTokens           int       `json:"max_tokens" gorm:"default:500"`
	ResponseFormat      string    `json:"response_format" gorm:"default:text"`
	IsActive            bool      `json:"is_active" gorm:"default:true"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// AIFeedbackSetting controls how conversational feedback is phrased.
type AIFeedbackSetting struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	Tone           string    `json:"tone" gorm:"default:encouraging"`
	DetailLevel    string    `json:"detail_level" gorm:"default:standard"`
	Language       string    `json:"language" gorm:"default:japanese"`
	PromptTemplate string    `json:"prompt_template" gorm:"type:text"`
	IsActive       bool      `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
