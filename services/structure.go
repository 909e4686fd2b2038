// services/structure.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
)

// Canonical lesson shape. Records are inspected as raw JSON objects so the
// analyzer can tell an absent key apart from an explicit null.
var canonicalLessonFields = []string{
	"title",
	"description",
	"order_index",
	"lesson_type",
	"difficulty",
	"estimated_minutes",
	"key_phrases",
	"vocabulary_questions",
	"dialogues",
	"objectives",
	"ai_conversation_system_prompt",
	"grammar_points_json",
	"pronunciation_focus",
	"application_practice",
	"metadata",
}

var canonicalCollections = []string{"key_phrases", "vocabulary_questions", "dialogues"}

var canonicalItemFields = map[string][]string{
	"key_phrases":          {"phrase", "meaning", "phonetic", "audio_url"},
	"vocabulary_questions": {"question", "options", "correct_answer", "explanation"},
	"dialogues":            {"speaker", "text", "japanese", "audio"},
}

// The store and cache surfaces the service needs, satisfied by
// PostgresService and RedisService.
type structureLessonStore interface {
	GetLesson(id string) (*model.Lesson, error)
	GetLessonsByCurriculum(curriculumID string) ([]model.Lesson, error)
	UpdateLessonColumns(id string, columns map[string]interface{}) error
}

type structureReportCache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type StructureService struct {
	appContext.DefaultService
	sqlSvc   structureLessonStore
	redisSvc structureReportCache

	cacheTTL time.Duration
}

const STRUCTURE_SVC = "structure_svc"

func (svc StructureService) Id() string {
	return STRUCTURE_SVC
}

func (svc *StructureService) Configure(ctx *appContext.Context) error {
	svc.cacheTTL = 5 * time.Minute
	return svc.DefaultService.Configure(ctx)
}

func (svc *StructureService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

// LessonRecord converts a stored lesson into the raw object form the
// structure analyzers work on. Going through JSON keeps key presence inside
// the jsonb collections exactly as stored.
func LessonRecord(lesson *model.Lesson) (map[string]interface{}, error) {
	raw, err := json.Marshal(lesson)
	if err != nil {
		return nil, err
	}

	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, err
	}
	return record, nil
}

func hasKey(item map[string]interface{}, key string) bool {
	_, ok := item[key]
	return ok
}

// fieldMissing reports whether the value is absent, null, or an empty string.
func fieldMissing(item map[string]interface{}, key string) bool {
	v, ok := item[key]
	if !ok || v == nil {
		return true
	}
	if s, ok := v.(string); ok {
		return s == ""
	}
	return false
}

func isNumber(v interface{}) bool {
	switch v.(type) {
	case float64, float32, int, int64, json.Number:
		return true
	}
	return false
}

// collectionItems pulls a collection out of the record. Absent or null is a
// legal empty collection; anything else that is not a list is a schema
// violation.
func collectionItems(record map[string]interface{}, name string) ([]interface{}, bool) {
	v, ok := record[name]
	if !ok || v == nil {
		return nil, true
	}
	items, ok := v.([]interface{})
	return items, ok
}

// ValidateLessonRecord checks a lesson's collections against the canonical
// shape. Issues block compliance; suggestions never affect validity.
func ValidateLessonRecord(record map[string]interface{}) (*dto.StructureValidationResponse, error) {
	if record == nil {
		return nil, errors.New("lesson record must be a JSON object")
	}

	result := &dto.StructureValidationResponse{
		Issues:      []string{},
		Suggestions: []string{},
	}

	for _, name := range canonicalCollections {
		items, ok := collectionItems(record, name)
		if !ok {
			result.Issues = append(result.Issues, fmt.Sprintf("%s がリスト形式ではありません", name))
			continue
		}

		for i, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				result.Issues = append(result.Issues, fmt.Sprintf("%s[%d] がオブジェクトではありません", name, i))
				continue
			}

			switch name {
			case "key_phrases":
				if fieldMissing(item, "phrase") {
					result.Issues = append(result.Issues, fmt.Sprintf("key_phrases[%d]: phrase がありません", i))
				}
				if fieldMissing(item, "meaning") {
					result.Issues = append(result.Issues, fmt.Sprintf("key_phrases[%d]: meaning がありません", i))
				}
				if fieldMissing(item, "phonetic") {
					result.Suggestions = append(result.Suggestions, fmt.Sprintf("key_phrases[%d]: phonetic の追加を推奨", i))
				}
				if !hasKey(item, "audio_url") {
					result.Suggestions = append(result.Suggestions, fmt.Sprintf("key_phrases[%d]: audio_url キーがありません", i))
				}

			case "vocabulary_questions":
				if fieldMissing(item, "question") {
					result.Issues = append(result.Issues, fmt.Sprintf("vocabulary_questions[%d]: question がありません", i))
				}
				if options, ok := item["options"].([]interface{}); !ok || len(options) < 2 {
					result.Issues = append(result.Issues, fmt.Sprintf("vocabulary_questions[%d]: options は2件以上のリストが必要です", i))
				}
				if !isNumber(item["correct_answer"]) {
					result.Issues = append(result.Issues, fmt.Sprintf("vocabulary_questions[%d]: correct_answer が数値ではありません", i))
				}
				if fieldMissing(item, "explanation") {
					result.Suggestions = append(result.Suggestions, fmt.Sprintf("vocabulary_questions[%d]: explanation の追加を推奨", i))
				}

			case "dialogues":
				if fieldMissing(item, "speaker") {
					result.Issues = append(result.Issues, fmt.Sprintf("dialogues[%d]: speaker がありません", i))
				}
				if fieldMissing(item, "text") {
					result.Issues = append(result.Issues, fmt.Sprintf("dialogues[%d]: text がありません", i))
				}
				if fieldMissing(item, "japanese") {
					result.Suggestions = append(result.Suggestions, fmt.Sprintf("dialogues[%d]: japanese (翻訳) の追加を推奨", i))
				}
				if !hasKey(item, "audio") {
					result.Suggestions = append(result.Suggestions, fmt.Sprintf("dialogues[%d]: audio キーがありません", i))
				}
			}
		}
	}

	result.IsValid = len(result.Issues) == 0
	return result, nil
}

// DiffLessonRecord compares a lesson's field set against the canonical one.
// Only the first element of each collection is sampled for nested fields;
// heterogeneous collections are deliberately under-reported.
func DiffLessonRecord(record map[string]interface{}) (*dto.StructureDiffResponse, error) {
	if record == nil {
		return nil, errors.New("lesson record must be a JSON object")
	}

	result := &dto.StructureDiffResponse{
		MissingFields:        []string{},
		ExtraFields:          []string{},
		StructureDifferences: []string{},
	}

	canonical := lo.SliceToMap(canonicalLessonFields, func(f string) (string, bool) { return f, true })

	for _, field := range canonicalLessonFields {
		if !hasKey(record, field) {
			result.MissingFields = append(result.MissingFields, field)
		}
	}

	extras := lo.Filter(lo.Keys(record), func(key string, _ int) bool { return !canonical[key] })
	sort.Strings(extras)
	result.ExtraFields = extras

	for _, name := range canonicalCollections {
		items, ok := collectionItems(record, name)
		if !ok || len(items) == 0 {
			continue
		}

		first, ok := items[0].(map[string]interface{})
		if !ok {
			continue
		}

		for _, field := range canonicalItemFields[name] {
			if !hasKey(first, field) {
				result.StructureDifferences = append(result.StructureDifferences,
					fmt.Sprintf("%s.%s フィールドが不足", name, field))
			}
		}
	}

	return result, nil
}

// SuggestLessonMigration emits idempotent jsonb UPDATE statements that would
// normalize the lesson's collections, plus warnings for fields that cannot be
// auto-derived. Statements only rewrite items where the target key is absent,
// so running them twice changes nothing.
func SuggestLessonMigration(record map[string]interface{}) (*dto.MigrationSuggestionResponse, error) {
	if record == nil {
		return nil, errors.New("lesson record must be a JSON object")
	}

	result := &dto.MigrationSuggestionResponse{
		SQLUpdates: []string{},
		Warnings:   []string{},
	}

	lessonID, _ := record["id"].(string)

	if keyPhrasesNeedBackfill(record) {
		result.SQLUpdates = append(result.SQLUpdates, fmt.Sprintf(
			`UPDATE lessons SET key_phrases = (SELECT jsonb_agg(CASE WHEN item ? 'phonetic' AND item ? 'audio_url' THEN item ELSE jsonb_set(jsonb_set(item, '{phonetic}', COALESCE(item->'phonetic', '""'::jsonb), true), '{audio_url}', COALESCE(item->'audio_url', 'null'::jsonb), true) END) FROM jsonb_array_elements(key_phrases) AS item) WHERE id = '%s';`,
			lessonID))
	}

	if vocabularyNeedsBackfill(record) {
		result.SQLUpdates = append(result.SQLUpdates, fmt.Sprintf(
			`UPDATE lessons SET vocabulary_questions = (SELECT jsonb_agg(CASE WHEN item ? 'explanation' THEN item ELSE jsonb_set(item, '{explanation}', '""'::jsonb, true) END) FROM jsonb_array_elements(vocabulary_questions) AS item) WHERE id = '%s';`,
			lessonID))
	}

	if dialoguesNeedBackfill(record) {
		result.SQLUpdates = append(result.SQLUpdates, fmt.Sprintf(
			`UPDATE lessons SET dialogues = (SELECT jsonb_agg(CASE WHEN item ? 'japanese' AND item ? 'audio' THEN item ELSE jsonb_set(jsonb_set(item, '{japanese}', COALESCE(item->'japanese', item->'translation', '""'::jsonb), true), '{audio}', COALESCE(item->'audio', 'null'::jsonb), true) END) FROM jsonb_array_elements(dialogues) AS item) WHERE id = '%s';`,
			lessonID))
	}

	if valueFalsy(record["objectives"]) {
		result.Warnings = append(result.Warnings, "objectives が未設定です。学習目標の追加を推奨します")
	}
	if valueFalsy(record["ai_conversation_system_prompt"]) {
		result.Warnings = append(result.Warnings, "ai_conversation_system_prompt が未設定です。AI会話プロンプトの追加を推奨します")
	}

	return result, nil
}

func valueFalsy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []interface{}:
		return len(t) == 0
	case bool:
		return !t
	}
	return false
}

func keyPhrasesNeedBackfill(record map[string]interface{}) bool {
	items, ok := collectionItems(record, "key_phrases")
	if !ok {
		return false
	}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if !hasKey(item, "phonetic") || !hasKey(item, "audio_url") {
			return true
		}
	}
	return false
}

func vocabularyNeedsBackfill(record map[string]interface{}) bool {
	items, ok := collectionItems(record, "vocabulary_questions")
	if !ok {
		return false
	}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if !hasKey(item, "explanation") {
			return true
		}
	}
	return false
}

func dialoguesNeedBackfill(record map[string]interface{}) bool {
	items, ok := collectionItems(record, "dialogues")
	if !ok {
		return false
	}
	for _, raw := range items {
		item, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if !hasKey(item, "japanese") || !hasKey(item, "audio") {
			return true
		}
	}
	return false
}

// ApplyStructureBackfill performs the same normalization as the suggested SQL,
// in memory. Keys already present are never overwritten, which makes the
// operation idempotent.
func ApplyStructureBackfill(record map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[k] = v
	}

	backfillCollection := func(name string, fill func(map[string]interface{}) map[string]interface{}) {
		items, ok := collectionItems(out, name)
		if !ok || items == nil {
			return
		}
		next := make([]interface{}, len(items))
		for i, raw := range items {
			item, ok := raw.(map[string]interface{})
			if !ok {
				next[i] = raw
				continue
			}
			copied := make(map[string]interface{}, len(item)+2)
			for k, v := range item {
				copied[k] = v
			}
			next[i] = fill(copied)
		}
		out[name] = next
	}

	backfillCollection("key_phrases", func(item map[string]interface{}) map[string]interface{} {
		if !hasKey(item, "phonetic") {
			item["phonetic"] = ""
		}
		if !hasKey(item, "audio_url") {
			item["audio_url"] = nil
		}
		return item
	})

	backfillCollection("vocabulary_questions", func(item map[string]interface{}) map[string]interface{} {
		if !hasKey(item, "explanation") {
			item["explanation"] = ""
		}
		return item
	})

	backfillCollection("dialogues", func(item map[string]interface{}) map[string]interface{} {
		if !hasKey(item, "japanese") {
			if translation, ok := item["translation"].(string); ok {
				item["japanese"] = translation
			} else {
				item["japanese"] = ""
			}
		}
		if !hasKey(item, "audio") {
			item["audio"] = nil
		}
		return item
	})

	return out
}

// AnalyzeLessonRecords runs the validator across a curriculum's lessons and
// tallies compliance statistics.
func AnalyzeLessonRecords(curriculumID string, records []map[string]interface{}) (*dto.CurriculumStructureReport, error) {
	report := &dto.CurriculumStructureReport{
		CurriculumID: curriculumID,
		TotalLessons: len(records),
		CommonIssues: []string{},
	}

	if len(records) == 0 {
		report.StructureCompliance = 100
		return report, nil
	}

	compliant := 0
	var allIssues []string

	for _, record := range records {
		result, err := ValidateLessonRecord(record)
		if err != nil {
			return nil, err
		}
		if result.IsValid {
			compliant++
		} else {
			report.MigrationRequired++
		}
		allIssues = append(allIssues, result.Issues...)
	}

	report.StructureCompliance = int(math.Round(float64(compliant) / float64(len(records)) * 100))

	counts := lo.CountValues(allIssues)
	type issueCount struct {
		issue string
		count int
	}
	ranked := lo.MapToSlice(counts, func(issue string, count int) issueCount {
		return issueCount{issue: issue, count: count}
	})
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		return ranked[i].issue < ranked[j].issue
	})

	for i, ic := range ranked {
		if i >= 5 {
			break
		}
		report.CommonIssues = append(report.CommonIssues, fmt.Sprintf("%s (%d件)", ic.issue, ic.count))
	}

	return report, nil
}

// ==================== SERVICE METHODS ====================

func (svc *StructureService) ValidateLesson(lessonID string) (*dto.StructureValidationResponse, error) {
	record, err := svc.lessonRecord(lessonID)
	if err != nil {
		return nil, err
	}
	return ValidateLessonRecord(record)
}

func (svc *StructureService) DiffLesson(lessonID string) (*dto.StructureDiffResponse, error) {
	record, err := svc.lessonRecord(lessonID)
	if err != nil {
		return nil, err
	}
	return DiffLessonRecord(record)
}

func (svc *StructureService) SuggestMigration(lessonID string) (*dto.MigrationSuggestionResponse, error) {
	record, err := svc.lessonRecord(lessonID)
	if err != nil {
		return nil, err
	}
	return SuggestLessonMigration(record)
}

// RepairLesson applies the backfill semantics directly and persists the
// normalized collections.
func (svc *StructureService) RepairLesson(lessonID string) (*dto.StructureValidationResponse, error) {
	record, err := svc.lessonRecord(lessonID)
	if err != nil {
		return nil, err
	}

	repaired := ApplyStructureBackfill(record)

	columns := map[string]interface{}{}
	for _, name := range canonicalCollections {
		if repaired[name] == nil {
			continue
		}
		raw, err := json.Marshal(repaired[name])
		if err != nil {
			return nil, err
		}
		columns[name] = json.RawMessage(raw)
	}

	if len(columns) > 0 {
		if err := svc.sqlSvc.UpdateLessonColumns(lessonID, columns); err != nil {
			return nil, err
		}
		curriculumID, _ := record["curriculum_id"].(string)
		svc.InvalidateCurriculum(curriculumID)
	}

	return ValidateLessonRecord(repaired)
}

// AnalyzeCurriculum produces the compliance report, cached for a short window
// and invalidated whenever a lesson in the curriculum is written.
func (svc *StructureService) AnalyzeCurriculum(curriculumID string) (*dto.CurriculumStructureReport, error) {
	ctx := context.Background()
	cacheKey := structureReportCacheKey(curriculumID)

	var cached dto.CurriculumStructureReport
	if hit, err := svc.redisSvc.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	} else if err != nil {
		log.Printf("Structure report cache read failed for %s: %v", curriculumID, err)
	}

	lessons, err := svc.sqlSvc.GetLessonsByCurriculum(curriculumID)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]interface{}, len(lessons))
	for i := range lessons {
		record, err := LessonRecord(&lessons[i])
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	report, err := AnalyzeLessonRecords(curriculumID, records)
	if err != nil {
		return nil, err
	}

	if err := svc.redisSvc.Set(ctx, cacheKey, report, svc.cacheTTL); err != nil {
		log.Printf("Structure report cache write failed for %s: %v", curriculumID, err)
	}

	return report, nil
}

func (svc *StructureService) InvalidateCurriculum(curriculumID string) {
	if curriculumID == "" {
		return
	}
	if err := svc.redisSvc.Delete(context.Background(), structureReportCacheKey(curriculumID)); err != nil {
		log.Printf("Structure report cache invalidation failed for %s: %v", curriculumID, err)
	}
}

func structureReportCacheKey(curriculumID string) string {
	return "structure_report:" + curriculumID
}

func (svc *StructureService) lessonRecord(lessonID string) (map[string]interface{}, error) {
	lesson, err := svc.sqlSvc.GetLesson(lessonID)
	if err != nil {
		return nil, err
	}
	return LessonRecord(lesson)
}
