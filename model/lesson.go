// model/lesson.go
package model

import (
	"encoding/json"
	"time"
)

// Lesson is the central content entity. Collection fields are stored as jsonb
// columns; an empty collection is persisted as NULL, never as an empty array.
// Type and LessonType are historically aliased columns that must stay in sync.
type Lesson struct {
	ID           string `json:"id" gorm:"primaryKey"`
	CurriculumID string `json:"curriculum_id" gorm:"not null;index"`
	Title        string `json:"title" gorm:"not null"`
	Description  string `json:"description" gorm:"type:text"`

	Type       string `json:"type" gorm:"column:type"`
	LessonType string `json:"lesson_type"` // legacy alias of Type

	Difficulty       string `json:"difficulty"` // beginner, elementary, intermediate, advanced
	EstimatedMinutes int    `json:"estimated_minutes" gorm:"default:10"`
	OrderIndex       int    `json:"order_index" gorm:"not null"`
	IsActive         bool   `json:"is_active" gorm:"default:true"`

	KeyPhrases          json.RawMessage `json:"key_phrases" gorm:"type:jsonb"`
	VocabularyQuestions json.RawMessage `json:"vocabulary_questions" gorm:"type:jsonb"`
	Dialogues           json.RawMessage `json:"dialogues" gorm:"type:jsonb"`
	GrammarPoints       json.RawMessage `json:"grammar_points" gorm:"type:jsonb"`
	GrammarPointsJSON   json.RawMessage `json:"grammar_points_json" gorm:"column:grammar_points_json;type:jsonb"` // legacy alias of GrammarPoints
	ApplicationPractice json.RawMessage `json:"application_practice" gorm:"type:jsonb"`
	ListeningExercises  json.RawMessage `json:"listening_exercises" gorm:"type:jsonb"`
	Objectives          json.RawMessage `json:"objectives" gorm:"type:jsonb"`
	PronunciationFocus  json.RawMessage `json:"pronunciation_focus" gorm:"type:jsonb"`
	Scenario            json.RawMessage `json:"scenario" gorm:"type:jsonb"`
	Metadata            json.RawMessage `json:"metadata" gorm:"type:jsonb"`

	AIConversationSystemPrompt string `json:"ai_conversation_system_prompt" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KeyPhrase is one ordered member of a lesson's key phrase collection.
// Emotion/Voice/TTSModel are presentation metadata for downstream audio
// synthesis and are not interpreted here.
type KeyPhrase struct {
	Phrase    string   `json:"phrase"`
	Meaning   string   `json:"meaning"`
	Phonetic  string   `json:"phonetic"`
	AudioURL  *string  `json:"audio_url"`
	UsageNote string   `json:"usage_note,omitempty"`
	Examples  []string `json:"examples,omitempty"`
	Emotion   string   `json:"emotion,omitempty"`
	Voice     string   `json:"voice,omitempty"`
	TTSModel  string   `json:"tts_model,omitempty"`
}

// DialogueLine is one scripted conversation turn. Japanese carries the
// translation; legacy rows used a "translation" key instead.
type DialogueLine struct {
	Speaker  string  `json:"speaker"`
	Text     string  `json:"text"`
	Japanese string  `json:"japanese"`
	Audio    *string `json:"audio"`
	Emotion  string  `json:"emotion,omitempty"`
	Voice    string  `json:"voice,omitempty"`
	TTSModel string  `json:"tts_model,omitempty"`
}

// VocabularyQuestion is a multiple choice check. Invariant:
// 0 <= CorrectAnswer < len(Options). Hint was stored as "meaning" in legacy rows.
type VocabularyQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation,omitempty"`
	Hint          string   `json:"hint,omitempty"`
	AudioURL      *string  `json:"audio_url,omitempty"`
	Difficulty    string   `json:"difficulty,omitempty"`
}

type GrammarPoint struct {
	Name           string   `json:"name"`
	Explanation    string   `json:"explanation"`
	Pattern        string   `json:"pattern"`
	Examples       []string `json:"examples"`
	CommonMistakes []string `json:"common_mistakes,omitempty"`
}

type ApplicationExercise struct {
	Prompt             string   `json:"prompt"`
	Task               string   `json:"task"`
	Hints              []string `json:"hints"`
	SampleResponses    []string `json:"sample_responses"`
	EvaluationCriteria []string `json:"evaluation_criteria"`
}

// ConversationScenario is present only on conversation-type lessons.
type ConversationScenario struct {
	Situation       string   `json:"situation"`
	Location        string   `json:"location"`
	AIRole          string   `json:"ai_role"`
	UserRole        string   `json:"user_role"`
	Context         string   `json:"context"`
	SuggestedTopics []string `json:"suggested_topics"`
}

type ListeningExercise struct {
	Instruction string   `json:"instruction"`
	AudioURL    *string  `json:"audio_url,omitempty"`
	Transcript  string   `json:"transcript,omitempty"`
	Questions   []string `json:"questions,omitempty"`
}

type PronunciationFocus struct {
	TargetSounds      []string `json:"target_sounds"`
	PracticeWords     []string `json:"practice_words"`
	PracticeSentences []string `json:"practice_sentences"`
	Tips              []string `json:"tips,omitempty"`
}
