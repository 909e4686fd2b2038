package dto

import (
	"time"

	"github.com/salon-lingo/admin_api/model"
)

// Lesson is the canonical in-memory shape every editor form works against.
// Collection fields are always non-nil slices on the read path; the service
// collapses them back to NULL columns on the write path.
type Lesson struct {
	ID               string `json:"id"`
	CurriculumID     string `json:"curriculum_id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Type             string `json:"type"`
	Difficulty       string `json:"difficulty"`
	EstimatedMinutes int    `json:"estimated_minutes"`
	OrderIndex       int    `json:"order_index"`
	IsActive         bool   `json:"is_active"`

	KeyPhrases          []model.KeyPhrase           `json:"key_phrases"`
	VocabularyQuestions []model.VocabularyQuestion  `json:"vocabulary_questions"`
	Dialogues           []model.DialogueLine        `json:"dialogues"`
	GrammarPoints       []model.GrammarPoint        `json:"grammar_points"`
	ApplicationPractice []model.ApplicationExercise `json:"application_practice"`
	ListeningExercises  []model.ListeningExercise   `json:"listening_exercises"`
	Objectives          []string                    `json:"objectives"`

	PronunciationFocus *model.PronunciationFocus   `json:"pronunciation_focus,omitempty"`
	Scenario           *model.ConversationScenario `json:"scenario,omitempty"`
	Metadata           map[string]interface{}      `json:"metadata,omitempty"`

	AIConversationSystemPrompt string `json:"ai_conversation_system_prompt"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CreateLessonRequest struct {
	CurriculumID     string `json:"curriculum_id" validate:"required"`
	Title            string `json:"title" validate:"required,max=200"`
	Description      string `json:"description"`
	Type             string `json:"type" validate:"required,lesson_type"`
	Difficulty       string `json:"difficulty" validate:"required,lesson_difficulty"`
	EstimatedMinutes int    `json:"estimated_minutes" validate:"omitempty,min=1,max=180"`
	OrderIndex       *int   `json:"order_index"`

	KeyPhrases          []model.KeyPhrase           `json:"key_phrases"`
	VocabularyQuestions []model.VocabularyQuestion  `json:"vocabulary_questions"`
	Dialogues           []model.DialogueLine        `json:"dialogues"`
	GrammarPoints       []model.GrammarPoint        `json:"grammar_points"`
	ApplicationPractice []model.ApplicationExercise `json:"application_practice"`
	ListeningExercises  []model.ListeningExercise   `json:"listening_exercises"`
	Objectives          []string                    `json:"objectives"`

	PronunciationFocus *model.PronunciationFocus   `json:"pronunciation_focus"`
	Scenario           *model.ConversationScenario `json:"scenario"`
	Metadata           map[string]interface{}      `json:"metadata"`

	AIConversationSystemPrompt string `json:"ai_conversation_system_prompt"`
}

func (r CreateLessonRequest) Validate() error {
	return validate.Struct(r)
}

// UpdateLessonRequest is a partial update; nil pointers leave fields untouched.
// Collection fields use pointers so "set to empty" and "leave alone" stay
// distinguishable.
type UpdateLessonRequest struct {
	Title            *string `json:"title" validate:"omitempty,max=200"`
	Description      *string `json:"description"`
	Type             *string `json:"type" validate:"omitempty,lesson_type"`
	Difficulty       *string `json:"difficulty" validate:"omitempty,lesson_difficulty"`
	EstimatedMinutes *int    `json:"estimated_minutes" validate:"omitempty,min=1,max=180"`
	OrderIndex       *int    `json:"order_index"`
	IsActive         *bool   `json:"is_active"`

	KeyPhrases          *[]model.KeyPhrase           `json:"key_phrases"`
	VocabularyQuestions *[]model.VocabularyQuestion  `json:"vocabulary_questions"`
	Dialogues           *[]model.DialogueLine        `json:"dialogues"`
	GrammarPoints       *[]model.GrammarPoint        `json:"grammar_points"`
	ApplicationPractice *[]model.ApplicationExercise `json:"application_practice"`
	ListeningExercises  *[]model.ListeningExercise   `json:"listening_exercises"`
	Objectives          *[]string                    `json:"objectives"`

	PronunciationFocus *model.PronunciationFocus   `json:"pronunciation_focus"`
	Scenario           *model.ConversationScenario `json:"scenario"`
	Metadata           map[string]interface{}      `json:"metadata"`

	AIConversationSystemPrompt *string `json:"ai_conversation_system_prompt"`
}

func (r UpdateLessonRequest) Validate() error {
	return validate.Struct(r)
}

type BulkUpdateItem struct {
	ID      string              `json:"id" validate:"required"`
	Changes UpdateLessonRequest `json:"changes"`
}

type BulkUpdateLessonsRequest struct {
	Updates []BulkUpdateItem `json:"updates" validate:"required,min=1,dive"`
}

func (r BulkUpdateLessonsRequest) Validate() error {
	return validate.Struct(r)
}

// BulkUpdateItemResult reports one item's outcome. Bulk updates are
// best-effort: earlier successes stay committed when a later item fails.
type BulkUpdateItemResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

type BulkUpdateLessonsResponse struct {
	Results   []BulkUpdateItemResult `json:"results"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
}

type ReorderLessonsRequest struct {
	LessonIDs []string `json:"lesson_ids" validate:"required,min=1"`
}

func (r ReorderLessonsRequest) Validate() error {
	return validate.Struct(r)
}

type LessonSearchRequest struct {
	Query        string `query:"query"`
	CurriculumID string `query:"curriculum_id"`
	Type         string `query:"type" validate:"omitempty,lesson_type"`
	Difficulty   string `query:"difficulty" validate:"omitempty,lesson_difficulty"`
	Limit        int    `query:"limit" validate:"omitempty,min=1,max=100"`
}

func (r LessonSearchRequest) Validate() error {
	return validate.Struct(r)
}

type LessonCollectionResponse struct {
	Lessons []Lesson `json:"lessons"`
	Total   int      `json:"total"`
}

// LessonCheckResponse is the user-facing superset of the structure validator:
// structural issues plus editorial warnings.
type LessonCheckResponse struct {
	IsValid  bool     `json:"is_valid"`
	Issues   []string `json:"issues"`
	Warnings []string `json:"warnings"`
}

type ImportLessonRequest struct {
	CurriculumID string `json:"curriculum_id"`
	Payload      string `json:"payload" validate:"required"`
}

func (r ImportLessonRequest) Validate() error {
	return validate.Struct(r)
}
