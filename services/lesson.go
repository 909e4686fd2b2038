// services/lesson.go
package services

import (
	"encoding/json"
	"fmt"
	"strings"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

// LessonService owns the normalization boundary between the stored lesson
// shape and the canonical in-memory shape. Field aliases accumulated over
// schema evolution (type/lesson_type, grammar_points/grammar_points_json,
// translation/japanese, meaning/hint) are resolved here and nowhere else.
type LessonService struct {
	appContext.DefaultService

	sqlSvc       *PostgresService
	structureSvc *StructureService
}

const LESSON_SVC = "lesson_svc"

func (svc LessonService) Id() string {
	return LESSON_SVC
}

func (svc *LessonService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.structureSvc = svc.Service(STRUCTURE_SVC).(*StructureService)
	return nil
}

// ==================== READ-PATH NORMALIZATION ====================

// NormalizeLesson converts a stored row into the canonical shape. Collection
// fields come back as non-nil slices; malformed nested data degrades to empty
// rather than failing the read.
func NormalizeLesson(stored *model.Lesson) *dto.Lesson {
	lessonType := stored.Type
	if lessonType == "" {
		lessonType = stored.LessonType
	}

	grammarRaw := stored.GrammarPoints
	if len(grammarRaw) == 0 || string(grammarRaw) == "null" {
		grammarRaw = stored.GrammarPointsJSON
	}

	return &dto.Lesson{
		ID:               stored.ID,
		CurriculumID:     stored.CurriculumID,
		Title:            stored.Title,
		Description:      stored.Description,
		Type:             lessonType,
		Difficulty:       stored.Difficulty,
		EstimatedMinutes: stored.EstimatedMinutes,
		OrderIndex:       stored.OrderIndex,
		IsActive:         stored.IsActive,

		KeyPhrases:          normalizeKeyPhrases(stored.KeyPhrases),
		VocabularyQuestions: normalizeVocabularyQuestions(stored.VocabularyQuestions),
		Dialogues:           normalizeDialogues(stored.Dialogues),
		GrammarPoints:       normalizeGrammarPoints(grammarRaw),
		ApplicationPractice: normalizeTyped[model.ApplicationExercise](stored.ApplicationPractice),
		ListeningExercises:  normalizeTyped[model.ListeningExercise](stored.ListeningExercises),
		Objectives:          normalizeStringList(stored.Objectives),

		PronunciationFocus: normalizePronunciationFocus(stored.PronunciationFocus),
		Scenario:           normalizeScenario(stored.Scenario),
		Metadata:           normalizeMetadata(stored.Metadata),

		AIConversationSystemPrompt: stored.AIConversationSystemPrompt,

		CreatedAt: stored.CreatedAt,
		UpdatedAt: stored.UpdatedAt,
	}
}

func rawItems(raw json.RawMessage) []map[string]interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var items []map[string]interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	return items
}

func itemString(item map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if s, ok := item[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func itemStringPtr(item map[string]interface{}, keys ...string) *string {
	for _, key := range keys {
		if s, ok := item[key].(string); ok && s != "" {
			return &s
		}
	}
	return nil
}

func itemStringList(item map[string]interface{}, key string) []string {
	raw, ok := item[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func normalizeKeyPhrases(raw json.RawMessage) []model.KeyPhrase {
	items := rawItems(raw)
	phrases := make([]model.KeyPhrase, 0, len(items))
	for _, item := range items {
		phrases = append(phrases, model.KeyPhrase{
			Phrase:    itemString(item, "phrase"),
			Meaning:   itemString(item, "meaning"),
			Phonetic:  itemString(item, "phonetic"),
			AudioURL:  itemStringPtr(item, "audio_url"),
			UsageNote: itemString(item, "usage_note"),
			Examples:  itemStringList(item, "examples"),
			Emotion:   itemString(item, "emotion"),
			Voice:     itemString(item, "voice"),
			TTSModel:  itemString(item, "tts_model"),
		})
	}
	return phrases
}

func normalizeDialogues(raw json.RawMessage) []model.DialogueLine {
	items := rawItems(raw)
	lines := make([]model.DialogueLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, model.DialogueLine{
			Speaker:  itemString(item, "speaker"),
			Text:     itemString(item, "text"),
			Japanese: itemString(item, "japanese", "translation"),
			Audio:    itemStringPtr(item, "audio"),
			Emotion:  itemString(item, "emotion"),
			Voice:    itemString(item, "voice"),
			TTSModel: itemString(item, "tts_model"),
		})
	}
	return lines
}

// normalizeVocabularyQuestions resolves the legacy meaning/hint alias and
// clamps out-of-range correct_answer values to zero so the invariant
// 0 <= correct_answer < len(options) always holds downstream.
func normalizeVocabularyQuestions(raw json.RawMessage) []model.VocabularyQuestion {
	items := rawItems(raw)
	questions := make([]model.VocabularyQuestion, 0, len(items))
	for _, item := range items {
		options := itemStringList(item, "options")

		correct := 0
		if n, ok := item["correct_answer"].(float64); ok {
			correct = int(n)
		}
		if correct < 0 || correct >= len(options) {
			correct = 0
		}

		questions = append(questions, model.VocabularyQuestion{
			Question:      itemString(item, "question"),
			Options:       options,
			CorrectAnswer: correct,
			Explanation:   itemString(item, "explanation"),
			Hint:          itemString(item, "hint", "meaning"),
			AudioURL:      itemStringPtr(item, "audio_url"),
			Difficulty:    itemString(item, "difficulty"),
		})
	}
	return questions
}

func normalizeGrammarPoints(raw json.RawMessage) []model.GrammarPoint {
	return normalizeTyped[model.GrammarPoint](raw)
}

func normalizeTyped[T any](raw json.RawMessage) []T {
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func normalizeStringList(raw json.RawMessage) []string {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return []string{}
	}
	if items == nil {
		return []string{}
	}
	return items
}

func normalizePronunciationFocus(raw json.RawMessage) *model.PronunciationFocus {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var focus model.PronunciationFocus
	if err := json.Unmarshal(raw, &focus); err != nil {
		return nil
	}
	if focus.TargetSounds == nil {
		focus.TargetSounds = []string{}
	}
	if focus.PracticeWords == nil {
		focus.PracticeWords = []string{}
	}
	if focus.PracticeSentences == nil {
		focus.PracticeSentences = []string{}
	}
	return &focus
}

func normalizeScenario(raw json.RawMessage) *model.ConversationScenario {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var scenario model.ConversationScenario
	if err := json.Unmarshal(raw, &scenario); err != nil {
		return nil
	}
	return &scenario
}

func normalizeMetadata(raw json.RawMessage) map[string]interface{} {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var metadata map[string]interface{}
	if err := json.Unmarshal(raw, &metadata); err != nil {
		return nil
	}
	return metadata
}

// ==================== WRITE-PATH NORMALIZATION ====================

// DenormalizeLesson converts the canonical shape back into the stored row.
// Empty collections collapse to NULL columns, type mirrors into lesson_type,
// grammar_points mirrors into grammar_points_json, pronunciation_focus nulls
// out when all its sub-lists are empty, and scenario nulls out unless the
// lesson is a conversation.
func DenormalizeLesson(lesson *dto.Lesson) *model.Lesson {
	grammarRaw := marshalCollection(lesson.GrammarPoints)

	stored := &model.Lesson{
		ID:           lesson.ID,
		CurriculumID: lesson.CurriculumID,
		Title:        lesson.Title,
		Description:  lesson.Description,

		Type:       lesson.Type,
		LessonType: lesson.Type,

		Difficulty:       lesson.Difficulty,
		EstimatedMinutes: lesson.EstimatedMinutes,
		OrderIndex:       lesson.OrderIndex,
		IsActive:         lesson.IsActive,

		KeyPhrases:          marshalCollection(lesson.KeyPhrases),
		VocabularyQuestions: marshalCollection(lesson.VocabularyQuestions),
		Dialogues:           marshalCollection(lesson.Dialogues),
		GrammarPoints:       grammarRaw,
		GrammarPointsJSON:   grammarRaw,
		ApplicationPractice: marshalCollection(lesson.ApplicationPractice),
		ListeningExercises:  marshalCollection(lesson.ListeningExercises),
		Objectives:          marshalCollection(lesson.Objectives),

		AIConversationSystemPrompt: lesson.AIConversationSystemPrompt,

		CreatedAt: lesson.CreatedAt,
		UpdatedAt: lesson.UpdatedAt,
	}

	if focus := lesson.PronunciationFocus; focus != nil {
		if len(focus.TargetSounds) > 0 || len(focus.PracticeWords) > 0 || len(focus.PracticeSentences) > 0 {
			stored.PronunciationFocus = mustMarshal(focus)
		}
	}

	if lesson.Type == shared.LessonTypeConversation && lesson.Scenario != nil {
		stored.Scenario = mustMarshal(lesson.Scenario)
	}

	if len(lesson.Metadata) > 0 {
		stored.Metadata = mustMarshal(lesson.Metadata)
	}

	return stored
}

// marshalCollection collapses empty or nil slices to a NULL column.
func marshalCollection[T any](items []T) json.RawMessage {
	if len(items) == 0 {
		return nil
	}
	return mustMarshal(items)
}

func mustMarshal(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Printf("Failed to marshal lesson field: %v", err)
		return nil
	}
	return raw
}

// ==================== CRUD ====================

func (svc *LessonService) GetLesson(id string) (*dto.Lesson, error) {
	stored, err := svc.sqlSvc.GetLesson(id)
	if err != nil {
		return nil, err
	}
	return NormalizeLesson(stored), nil
}

func (svc *LessonService) GetLessonsByCurriculum(curriculumID string) (*dto.LessonCollectionResponse, error) {
	stored, err := svc.sqlSvc.GetLessonsByCurriculum(curriculumID)
	if err != nil {
		return nil, err
	}

	lessons := lo.Map(stored, func(l model.Lesson, _ int) dto.Lesson {
		return *NormalizeLesson(&l)
	})
	return &dto.LessonCollectionResponse{Lessons: lessons, Total: len(lessons)}, nil
}

func (svc *LessonService) CreateLesson(req *dto.CreateLessonRequest) (*dto.Lesson, error) {
	orderIndex := 0
	if req.OrderIndex != nil {
		orderIndex = *req.OrderIndex
	} else {
		next, err := svc.sqlSvc.NextLessonOrderIndex(req.CurriculumID)
		if err != nil {
			return nil, err
		}
		orderIndex = next
	}

	estimated := req.EstimatedMinutes
	if estimated == 0 {
		estimated = 10
	}

	lesson := &dto.Lesson{
		ID:               uuid.Must(uuid.NewV7()).String(),
		CurriculumID:     req.CurriculumID,
		Title:            req.Title,
		Description:      req.Description,
		Type:             req.Type,
		Difficulty:       req.Difficulty,
		EstimatedMinutes: estimated,
		OrderIndex:       orderIndex,
		IsActive:         true,

		KeyPhrases:          req.KeyPhrases,
		VocabularyQuestions: req.VocabularyQuestions,
		Dialogues:           req.Dialogues,
		GrammarPoints:       req.GrammarPoints,
		ApplicationPractice: req.ApplicationPractice,
		ListeningExercises:  req.ListeningExercises,
		Objectives:          req.Objectives,

		PronunciationFocus: req.PronunciationFocus,
		Scenario:           req.Scenario,
		Metadata:           req.Metadata,

		AIConversationSystemPrompt: req.AIConversationSystemPrompt,
	}

	stored, err := svc.sqlSvc.CreateLesson(DenormalizeLesson(lesson))
	if err != nil {
		return nil, err
	}

	svc.structureSvc.InvalidateCurriculum(req.CurriculumID)
	return NormalizeLesson(stored), nil
}

func (svc *LessonService) UpdateLesson(id string, req *dto.UpdateLessonRequest) (*dto.Lesson, error) {
	stored, err := svc.sqlSvc.GetLesson(id)
	if err != nil {
		return nil, err
	}

	lesson := NormalizeLesson(stored)
	applyLessonChanges(lesson, req)

	updated := DenormalizeLesson(lesson)
	updated.CreatedAt = stored.CreatedAt

	saved, err := svc.sqlSvc.SaveLesson(updated)
	if err != nil {
		return nil, err
	}

	svc.structureSvc.InvalidateCurriculum(saved.CurriculumID)
	return NormalizeLesson(saved), nil
}

func applyLessonChanges(lesson *dto.Lesson, req *dto.UpdateLessonRequest) {
	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Description != nil {
		lesson.Description = *req.Description
	}
	if req.Type != nil {
		lesson.Type = *req.Type
	}
	if req.Difficulty != nil {
		lesson.Difficulty = *req.Difficulty
	}
	if req.EstimatedMinutes != nil {
		lesson.EstimatedMinutes = *req.EstimatedMinutes
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}
	if req.IsActive != nil {
		lesson.IsActive = *req.IsActive
	}

	if req.KeyPhrases != nil {
		lesson.KeyPhrases = *req.KeyPhrases
	}
	if req.VocabularyQuestions != nil {
		lesson.VocabularyQuestions = *req.VocabularyQuestions
	}
	if req.Dialogues != nil {
		lesson.Dialogues = *req.Dialogues
	}
	if req.GrammarPoints != nil {
		lesson.GrammarPoints = *req.GrammarPoints
	}
	if req.ApplicationPractice != nil {
		lesson.ApplicationPractice = *req.ApplicationPractice
	}
	if req.ListeningExercises != nil {
		lesson.ListeningExercises = *req.ListeningExercises
	}
	if req.Objectives != nil {
		lesson.Objectives = *req.Objectives
	}

	if req.PronunciationFocus != nil {
		lesson.PronunciationFocus = req.PronunciationFocus
	}
	if req.Scenario != nil {
		lesson.Scenario = req.Scenario
	}
	if req.Metadata != nil {
		lesson.Metadata = req.Metadata
	}

	if req.AIConversationSystemPrompt != nil {
		lesson.AIConversationSystemPrompt = *req.AIConversationSystemPrompt
	}
}

func (svc *LessonService) DeleteLesson(id string) error {
	stored, err := svc.sqlSvc.GetLesson(id)
	if err != nil {
		return err
	}

	if err := svc.sqlSvc.DeleteLesson(id); err != nil {
		return err
	}

	svc.structureSvc.InvalidateCurriculum(stored.CurriculumID)
	return nil
}

// ==================== EDITOR OPERATIONS ====================

// DuplicateLesson copies a lesson under a derived title. The copy always
// starts inactive so editors review it before publishing.
func (svc *LessonService) DuplicateLesson(id string) (*dto.Lesson, error) {
	source, err := svc.GetLesson(id)
	if err != nil {
		return nil, err
	}

	next, err := svc.sqlSvc.NextLessonOrderIndex(source.CurriculumID)
	if err != nil {
		return nil, err
	}

	dup := *source
	dup.ID = uuid.Must(uuid.NewV7()).String()
	dup.Title = source.Title + "（コピー）"
	dup.IsActive = false
	dup.OrderIndex = next

	stored, err := svc.sqlSvc.CreateLesson(DenormalizeLesson(&dup))
	if err != nil {
		return nil, err
	}

	svc.structureSvc.InvalidateCurriculum(dup.CurriculumID)
	return NormalizeLesson(stored), nil
}

// ReorderLessons rewrites order_index to match the given id sequence.
// Writes go one at a time; a failure partway leaves earlier updates in place.
func (svc *LessonService) ReorderLessons(curriculumID string, lessonIDs []string) error {
	for i, id := range lessonIDs {
		err := svc.sqlSvc.UpdateLessonColumns(id, map[string]interface{}{"order_index": i})
		if err != nil {
			return fmt.Errorf("failed to reorder lesson %s: %w", id, err)
		}
	}

	svc.structureSvc.InvalidateCurriculum(curriculumID)
	return nil
}

// BulkUpdateLessons applies updates sequentially with per-item results.
// Best-effort: earlier successes stay committed when a later item fails.
func (svc *LessonService) BulkUpdateLessons(req *dto.BulkUpdateLessonsRequest) *dto.BulkUpdateLessonsResponse {
	response := &dto.BulkUpdateLessonsResponse{
		Results: make([]dto.BulkUpdateItemResult, 0, len(req.Updates)),
	}

	for _, item := range req.Updates {
		_, err := svc.UpdateLesson(item.ID, &item.Changes)
		result := dto.BulkUpdateItemResult{ID: item.ID, Success: err == nil}
		if err != nil {
			result.Error = err.Error()
			response.Failed++
		} else {
			response.Succeeded++
		}
		response.Results = append(response.Results, result)
	}

	return response
}

func (svc *LessonService) SearchLessons(req *dto.LessonSearchRequest) (*dto.LessonCollectionResponse, error) {
	limit := req.Limit
	if limit == 0 {
		limit = 50
	}

	stored, err := svc.sqlSvc.SearchLessons(req.Query, req.CurriculumID, req.Type, req.Difficulty, limit)
	if err != nil {
		return nil, err
	}

	lessons := lo.Map(stored, func(l model.Lesson, _ int) dto.Lesson {
		return *NormalizeLesson(&l)
	})
	return &dto.LessonCollectionResponse{Lessons: lessons, Total: len(lessons)}, nil
}

// ==================== EXPORT / IMPORT ====================

// ExportLesson produces pretty-printed JSON of the canonical lesson shape.
func (svc *LessonService) ExportLesson(id string) (string, error) {
	lesson, err := svc.GetLesson(id)
	if err != nil {
		return "", err
	}
	return ExportLessonJSON(lesson)
}

func ExportLessonJSON(lesson *dto.Lesson) (string, error) {
	raw, err := json.MarshalIndent(lesson, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export lesson: %w", err)
	}
	return string(raw), nil
}

// ImportLessonPayload parses exported JSON, strips identity and timestamp
// fields, optionally rescopes to a target curriculum, and returns a create
// request. Content collections survive the round-trip unchanged.
func ImportLessonPayload(payload, curriculumID string) (*dto.CreateLessonRequest, error) {
	if !gjson.Valid(payload) {
		return nil, fmt.Errorf("payload is not valid JSON")
	}
	if !gjson.Parse(payload).IsObject() {
		return nil, fmt.Errorf("payload must be a JSON object")
	}

	for _, field := range []string{"id", "created_at", "updated_at", "is_active", "order_index"} {
		stripped, err := sjson.Delete(payload, field)
		if err != nil {
			return nil, fmt.Errorf("failed to strip %s: %w", field, err)
		}
		payload = stripped
	}

	if curriculumID != "" {
		rescoped, err := sjson.Set(payload, "curriculum_id", curriculumID)
		if err != nil {
			return nil, fmt.Errorf("failed to rescope curriculum: %w", err)
		}
		payload = rescoped
	}

	var req dto.CreateLessonRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		return nil, fmt.Errorf("failed to parse lesson payload: %w", err)
	}

	return &req, nil
}

func (svc *LessonService) ImportLesson(req *dto.ImportLessonRequest) (*dto.Lesson, error) {
	createReq, err := ImportLessonPayload(req.Payload, req.CurriculumID)
	if err != nil {
		return nil, shared.NewBadRequestError(err, err.Error())
	}

	if err := createReq.Validate(); err != nil {
		return nil, shared.NewBadRequestError(err, "Imported lesson is missing required fields")
	}

	return svc.CreateLesson(createReq)
}

// ==================== VALIDATION ====================

// CheckLesson is the editor-facing superset of the structure validator:
// structural issues plus editorial warnings about required metadata and
// content emptiness.
func (svc *LessonService) CheckLesson(id string) (*dto.LessonCheckResponse, error) {
	stored, err := svc.sqlSvc.GetLesson(id)
	if err != nil {
		return nil, err
	}

	record, err := LessonRecord(stored)
	if err != nil {
		return nil, err
	}

	structural, err := ValidateLessonRecord(record)
	if err != nil {
		return nil, err
	}

	lesson := NormalizeLesson(stored)
	return CheckLessonContent(lesson, structural), nil
}

func CheckLessonContent(lesson *dto.Lesson, structural *dto.StructureValidationResponse) *dto.LessonCheckResponse {
	result := &dto.LessonCheckResponse{
		Issues:   append([]string{}, structural.Issues...),
		Warnings: append([]string{}, structural.Suggestions...),
	}

	if strings.TrimSpace(lesson.Title) == "" {
		result.Issues = append(result.Issues, "タイトルが必要です")
	}
	if lesson.Type == "" {
		result.Issues = append(result.Issues, "レッスンタイプが必要です")
	}
	if lesson.Difficulty == "" {
		result.Issues = append(result.Issues, "難易度が必要です")
	}

	hasContent := len(lesson.KeyPhrases) > 0 ||
		len(lesson.VocabularyQuestions) > 0 ||
		len(lesson.Dialogues) > 0 ||
		len(lesson.GrammarPoints) > 0 ||
		len(lesson.ApplicationPractice) > 0 ||
		len(lesson.ListeningExercises) > 0
	if !hasContent {
		result.Warnings = append(result.Warnings, "コンテンツが登録されていません")
	}

	if lesson.Type == shared.LessonTypeConversation {
		if lesson.Scenario == nil || strings.TrimSpace(lesson.Scenario.Situation) == "" {
			result.Warnings = append(result.Warnings, "会話レッスンにシナリオ（situation）がありません")
		}
	}

	result.IsValid = len(result.Issues) == 0
	return result
}
