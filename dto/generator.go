package dto

import "github.com/salon-lingo/admin_api/model"

// GenerateLessonRequest feeds the auto generator. Topic is the only required
// field; everything else is prefilled from a preset or left to defaults.
type GenerateLessonRequest struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Topic           string   `json:"topic" validate:"required"`
	DifficultyLevel string   `json:"difficulty_level" validate:"omitempty,lesson_difficulty"`
	KeyWords        []string `json:"key_words"`
	JapaneseContext string   `json:"japanese_context"`
}

func (r GenerateLessonRequest) Validate() error {
	return validate.Struct(r)
}

// GeneratedLesson is a complete lesson payload ready for preview. Persisting
// it goes through the normal lesson create path.
type GeneratedLesson struct {
	Title                      string                      `json:"title"`
	Description                string                      `json:"description"`
	Type                       string                      `json:"type"`
	Difficulty                 string                      `json:"difficulty"`
	EstimatedMinutes           int                         `json:"estimated_minutes"`
	KeyPhrases                 []model.KeyPhrase           `json:"key_phrases"`
	VocabularyQuestions        []model.VocabularyQuestion  `json:"vocabulary_questions"`
	Dialogues                  []model.DialogueLine        `json:"dialogues"`
	ApplicationPractice        []model.ApplicationExercise `json:"application_practice"`
	Objectives                 []string                    `json:"objectives"`
	AIConversationSystemPrompt string                      `json:"ai_conversation_system_prompt"`
}
