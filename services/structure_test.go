package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
	"gorm.io/gorm"

	"github.com/salon-lingo/admin_api/model"
)

func compliantRecord() map[string]interface{} {
	return map[string]interface{}{
		"id":    "lesson-1",
		"title": "お出迎えの英会話",
		"key_phrases": []interface{}{
			map[string]interface{}{
				"phrase":    "Welcome!",
				"meaning":   "いらっしゃいませ",
				"phonetic":  "ˈwelkəm",
				"audio_url": nil,
			},
		},
		"vocabulary_questions": []interface{}{
			map[string]interface{}{
				"question":       "「welcome」の意味は？",
				"options":        []interface{}{"いらっしゃいませ", "さようなら"},
				"correct_answer": float64(0),
				"explanation":    "挨拶の言葉です",
			},
		},
		"dialogues": []interface{}{
			map[string]interface{}{
				"speaker":  "Stylist",
				"text":     "Welcome!",
				"japanese": "いらっしゃいませ",
				"audio":    nil,
			},
		},
	}
}

func TestValidateLessonRecord(t *testing.T) {
	Convey("Given a fully compliant lesson record", t, func() {
		result, err := ValidateLessonRecord(compliantRecord())

		So(err, ShouldBeNil)
		So(result.IsValid, ShouldBeTrue)
		So(result.Issues, ShouldBeEmpty)
	})

	Convey("Given a record with suggestion-level gaps only", t, func() {
		record := compliantRecord()
		record["key_phrases"] = []interface{}{
			map[string]interface{}{
				"phrase":  "Welcome!",
				"meaning": "いらっしゃいませ",
			},
		}

		result, err := ValidateLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.Suggestions, ShouldNotBeEmpty)

		Convey("Suggestions never affect validity", func() {
			So(result.IsValid, ShouldBeTrue)
			So(result.Issues, ShouldBeEmpty)
		})
	})

	Convey("Given a key phrase missing phrase and meaning", t, func() {
		record := compliantRecord()
		record["key_phrases"] = []interface{}{
			map[string]interface{}{"phonetic": "x"},
		}

		result, err := ValidateLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.IsValid, ShouldBeFalse)
		So(result.Issues, ShouldContain, "key_phrases[0]: phrase がありません")
		So(result.Issues, ShouldContain, "key_phrases[0]: meaning がありません")
	})

	Convey("Given a vocabulary question with bad options and answer", t, func() {
		record := compliantRecord()
		record["vocabulary_questions"] = []interface{}{
			map[string]interface{}{
				"question":       "q",
				"options":        []interface{}{"only one"},
				"correct_answer": "2",
			},
		}

		result, err := ValidateLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.IsValid, ShouldBeFalse)
		So(result.Issues, ShouldContain, "vocabulary_questions[0]: options は2件以上のリストが必要です")
		So(result.Issues, ShouldContain, "vocabulary_questions[0]: correct_answer が数値ではありません")
		So(result.Suggestions, ShouldContain, "vocabulary_questions[0]: explanation の追加を推奨")
	})

	Convey("Given a dialogue missing translation and audio key", t, func() {
		record := compliantRecord()
		record["dialogues"] = []interface{}{
			map[string]interface{}{"speaker": "A", "text": "Hi"},
		}

		result, err := ValidateLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.IsValid, ShouldBeTrue)
		So(result.Suggestions, ShouldContain, "dialogues[0]: japanese (翻訳) の追加を推奨")
		So(result.Suggestions, ShouldContain, "dialogues[0]: audio キーがありません")
	})

	Convey("Given a collection that is not a list", t, func() {
		record := compliantRecord()
		record["key_phrases"] = "not a list"

		result, err := ValidateLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.IsValid, ShouldBeFalse)
		So(result.Issues, ShouldContain, "key_phrases がリスト形式ではありません")
	})

	Convey("Given absent or null collections", t, func() {
		result, err := ValidateLessonRecord(map[string]interface{}{
			"dialogues": nil,
		})

		So(err, ShouldBeNil)
		So(result.IsValid, ShouldBeTrue)
	})

	Convey("Given a nil record", t, func() {
		_, err := ValidateLessonRecord(nil)
		So(err, ShouldNotBeNil)
	})
}

func TestDiffLessonRecord(t *testing.T) {
	Convey("Given a lesson whose first key phrase lacks phonetic and audio_url", t, func() {
		record := map[string]interface{}{
			"title": "t",
			"key_phrases": []interface{}{
				map[string]interface{}{"phrase": "Hello", "meaning": "こんにちは"},
			},
		}

		result, err := DiffLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.StructureDifferences, ShouldContain, "key_phrases.phonetic フィールドが不足")
		So(result.StructureDifferences, ShouldContain, "key_phrases.audio_url フィールドが不足")
	})

	Convey("Given heterogeneous collections only the first element is sampled", t, func() {
		record := map[string]interface{}{
			"dialogues": []interface{}{
				map[string]interface{}{"speaker": "A", "text": "Hi", "japanese": "やあ", "audio": nil},
				map[string]interface{}{"speaker": "B"},
			},
		}

		result, err := DiffLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.StructureDifferences, ShouldBeEmpty)
	})

	Convey("Given missing and extra top-level fields", t, func() {
		record := map[string]interface{}{
			"title":        "t",
			"legacy_notes": "old",
		}

		result, err := DiffLessonRecord(record)

		So(err, ShouldBeNil)
		So(result.MissingFields, ShouldContain, "difficulty")
		So(result.MissingFields, ShouldContain, "key_phrases")
		So(result.MissingFields, ShouldNotContain, "title")
		So(result.ExtraFields, ShouldResemble, []string{"legacy_notes"})
	})

	Convey("Given a nil record", t, func() {
		_, err := DiffLessonRecord(nil)
		So(err, ShouldNotBeNil)
	})
}

func TestSuggestLessonMigration(t *testing.T) {
	Convey("Given a lesson needing collection backfills", t, func() {
		record := map[string]interface{}{
			"id": "lesson-1",
			"key_phrases": []interface{}{
				map[string]interface{}{"phrase": "Hi", "meaning": "やあ"},
			},
			"vocabulary_questions": []interface{}{
				map[string]interface{}{"question": "q", "options": []interface{}{"a", "b"}, "correct_answer": float64(0)},
			},
			"dialogues": []interface{}{
				map[string]interface{}{"speaker": "A", "text": "Hi", "translation": "やあ"},
			},
		}

		result, err := SuggestLessonMigration(record)

		So(err, ShouldBeNil)
		So(result.SQLUpdates, ShouldHaveLength, 3)
		So(result.SQLUpdates[0], ShouldContainSubstring, "WHERE id = 'lesson-1'")
		So(result.SQLUpdates[0], ShouldContainSubstring, "key_phrases")
		So(result.SQLUpdates[2], ShouldContainSubstring, "item->'translation'")

		Convey("Warnings flag the non-derivable fields", func() {
			So(result.Warnings, ShouldHaveLength, 2)
		})
	})

	Convey("Given an already compliant lesson", t, func() {
		record := compliantRecord()
		record["objectives"] = []interface{}{"挨拶ができる"}
		record["ai_conversation_system_prompt"] = "You are a customer."

		result, err := SuggestLessonMigration(record)

		So(err, ShouldBeNil)
		So(result.SQLUpdates, ShouldBeEmpty)
		So(result.Warnings, ShouldBeEmpty)
	})
}

func TestApplyStructureBackfill(t *testing.T) {
	Convey("Given a lesson with legacy-shaped collections", t, func() {
		record := map[string]interface{}{
			"key_phrases": []interface{}{
				map[string]interface{}{"phrase": "Hi", "meaning": "やあ"},
			},
			"vocabulary_questions": []interface{}{
				map[string]interface{}{"question": "q", "options": []interface{}{"a", "b"}, "correct_answer": float64(0)},
			},
			"dialogues": []interface{}{
				map[string]interface{}{"speaker": "A", "text": "Hi", "translation": "やあ"},
			},
		}

		once := ApplyStructureBackfill(record)

		Convey("Missing keys are filled in", func() {
			phrase := once["key_phrases"].([]interface{})[0].(map[string]interface{})
			So(phrase["phonetic"], ShouldEqual, "")
			So(phrase, ShouldContainKey, "audio_url")
			So(phrase["audio_url"], ShouldBeNil)

			question := once["vocabulary_questions"].([]interface{})[0].(map[string]interface{})
			So(question["explanation"], ShouldEqual, "")

			dialogue := once["dialogues"].([]interface{})[0].(map[string]interface{})
			So(dialogue["japanese"], ShouldEqual, "やあ")
			So(dialogue, ShouldContainKey, "audio")
		})

		Convey("Applying the backfill twice changes nothing", func() {
			twice := ApplyStructureBackfill(once)
			So(twice, ShouldResemble, once)
		})

		Convey("Existing values are never overwritten", func() {
			record["key_phrases"] = []interface{}{
				map[string]interface{}{"phrase": "Hi", "meaning": "やあ", "phonetic": "haɪ", "audio_url": "s3://a.mp3"},
			}
			result := ApplyStructureBackfill(record)
			phrase := result["key_phrases"].([]interface{})[0].(map[string]interface{})
			So(phrase["phonetic"], ShouldEqual, "haɪ")
			So(phrase["audio_url"], ShouldEqual, "s3://a.mp3")
		})
	})
}

func TestAnalyzeLessonRecords(t *testing.T) {
	Convey("Given 10 lessons where 3 fail validation", t, func() {
		records := make([]map[string]interface{}, 0, 10)
		for i := 0; i < 7; i++ {
			records = append(records, compliantRecord())
		}
		for i := 0; i < 3; i++ {
			records = append(records, map[string]interface{}{
				"key_phrases": []interface{}{
					map[string]interface{}{"phonetic": "x"},
				},
			})
		}

		report, err := AnalyzeLessonRecords("curriculum-1", records)

		So(err, ShouldBeNil)
		So(report.TotalLessons, ShouldEqual, 10)
		So(report.StructureCompliance, ShouldEqual, 70)
		So(report.MigrationRequired, ShouldEqual, 3)

		Convey("Common issues carry occurrence counts", func() {
			So(report.CommonIssues, ShouldContain, "key_phrases[0]: phrase がありません (3件)")
			So(len(report.CommonIssues), ShouldBeLessThanOrEqualTo, 5)
		})
	})

	Convey("Given an empty curriculum", t, func() {
		report, err := AnalyzeLessonRecords("curriculum-1", nil)

		So(err, ShouldBeNil)
		So(report.TotalLessons, ShouldEqual, 0)
		So(report.StructureCompliance, ShouldEqual, 100)
		So(report.MigrationRequired, ShouldEqual, 0)
	})
}

type memoryLessonStore struct {
	lessons map[string]*model.Lesson
	updated map[string]map[string]interface{}
}

func (s *memoryLessonStore) GetLesson(id string) (*model.Lesson, error) {
	lesson, ok := s.lessons[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return lesson, nil
}

func (s *memoryLessonStore) GetLessonsByCurriculum(curriculumID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	for _, lesson := range s.lessons {
		if lesson.CurriculumID == curriculumID {
			lessons = append(lessons, *lesson)
		}
	}
	return lessons, nil
}

func (s *memoryLessonStore) UpdateLessonColumns(id string, columns map[string]interface{}) error {
	s.updated[id] = columns
	lesson := s.lessons[id]
	if raw, ok := columns["key_phrases"].(json.RawMessage); ok {
		lesson.KeyPhrases = raw
	}
	if raw, ok := columns["vocabulary_questions"].(json.RawMessage); ok {
		lesson.VocabularyQuestions = raw
	}
	if raw, ok := columns["dialogues"].(json.RawMessage); ok {
		lesson.Dialogues = raw
	}
	return nil
}

type memoryReportCache struct {
	entries map[string][]byte
}

func (c *memoryReportCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryReportCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryReportCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func TestRepairLesson(t *testing.T) {
	Convey("Given a curriculum report cached before a repair", t, func() {
		store := &memoryLessonStore{
			lessons: map[string]*model.Lesson{
				"lesson-1": {
					ID:           "lesson-1",
					CurriculumID: "curriculum-1",
					Title:        "お出迎えの英会話",
					KeyPhrases:   json.RawMessage(`[{"phrase":"Hi","meaning":"やあ","phonetic":"haɪ"}]`),
					Dialogues:    json.RawMessage(`[{"speaker":"A","text":"Hi","translation":"やあ"}]`),
				},
			},
			updated: map[string]map[string]interface{}{},
		}
		cache := &memoryReportCache{entries: map[string][]byte{}}
		svc := &StructureService{sqlSvc: store, redisSvc: cache, cacheTTL: 5 * time.Minute}

		_, err := svc.AnalyzeCurriculum("curriculum-1")
		So(err, ShouldBeNil)
		So(cache.entries, ShouldContainKey, structureReportCacheKey("curriculum-1"))

		Convey("Repairing a lesson persists the backfill and drops the cached report", func() {
			result, err := svc.RepairLesson("lesson-1")

			So(err, ShouldBeNil)
			So(result.Suggestions, ShouldBeEmpty)
			So(store.updated, ShouldContainKey, "lesson-1")
			So(cache.entries, ShouldNotContainKey, structureReportCacheKey("curriculum-1"))

			Convey("The next analysis reflects the repaired row", func() {
				record, err := LessonRecord(store.lessons["lesson-1"])
				So(err, ShouldBeNil)

				fresh, err := ValidateLessonRecord(record)
				So(err, ShouldBeNil)
				So(fresh.Suggestions, ShouldBeEmpty)
			})
		})
	})

	Convey("Given a lesson with no stored collections", t, func() {
		store := &memoryLessonStore{
			lessons: map[string]*model.Lesson{
				"lesson-2": {ID: "lesson-2", CurriculumID: "curriculum-1", Title: "空のレッスン"},
			},
			updated: map[string]map[string]interface{}{},
		}
		cacheKey := structureReportCacheKey("curriculum-1")
		cache := &memoryReportCache{entries: map[string][]byte{cacheKey: []byte(`{}`)}}
		svc := &StructureService{sqlSvc: store, redisSvc: cache, cacheTTL: 5 * time.Minute}

		_, err := svc.RepairLesson("lesson-2")

		So(err, ShouldBeNil)

		Convey("Nothing is written and the cached report is kept", func() {
			So(store.updated, ShouldBeEmpty)
			So(cache.entries, ShouldContainKey, cacheKey)
		})
	})
}
