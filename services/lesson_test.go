package services

import (
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

func TestNormalizeLesson(t *testing.T) {
	Convey("Given a stored row with NULL collections", t, func() {
		lesson := NormalizeLesson(&model.Lesson{ID: "l1", Type: shared.LessonTypeGrammar})

		Convey("Every collection expands to an empty list", func() {
			So(lesson.KeyPhrases, ShouldResemble, []model.KeyPhrase{})
			So(lesson.VocabularyQuestions, ShouldResemble, []model.VocabularyQuestion{})
			So(lesson.Dialogues, ShouldResemble, []model.DialogueLine{})
			So(lesson.GrammarPoints, ShouldResemble, []model.GrammarPoint{})
			So(lesson.ApplicationPractice, ShouldResemble, []model.ApplicationExercise{})
			So(lesson.ListeningExercises, ShouldResemble, []model.ListeningExercise{})
			So(lesson.Objectives, ShouldResemble, []string{})
		})

		Convey("Singular fields stay unset", func() {
			So(lesson.PronunciationFocus, ShouldBeNil)
			So(lesson.Scenario, ShouldBeNil)
			So(lesson.Metadata, ShouldBeNil)
		})
	})

	Convey("Given legacy alias fields", t, func() {
		stored := &model.Lesson{
			LessonType:        shared.LessonTypeConversation,
			GrammarPointsJSON: json.RawMessage(`[{"name":"be動詞","explanation":"状態を表す","pattern":"S + be + C","examples":["I am a stylist."]}]`),
			Dialogues:         json.RawMessage(`[{"speaker":"A","text":"Hi","translation":"やあ"}]`),
			VocabularyQuestions: json.RawMessage(
				`[{"question":"q","options":["a","b"],"correct_answer":1,"meaning":"ヒント"}]`),
		}

		lesson := NormalizeLesson(stored)

		Convey("type falls back to lesson_type", func() {
			So(lesson.Type, ShouldEqual, shared.LessonTypeConversation)
		})

		Convey("grammar_points falls back to grammar_points_json", func() {
			So(lesson.GrammarPoints, ShouldHaveLength, 1)
			So(lesson.GrammarPoints[0].Name, ShouldEqual, "be動詞")
		})

		Convey("translation resolves into japanese", func() {
			So(lesson.Dialogues[0].Japanese, ShouldEqual, "やあ")
		})

		Convey("legacy meaning resolves into hint", func() {
			So(lesson.VocabularyQuestions[0].Hint, ShouldEqual, "ヒント")
		})
	})

	Convey("Given malformed nested data", t, func() {
		stored := &model.Lesson{
			KeyPhrases:          json.RawMessage(`"junk"`),
			Dialogues:           json.RawMessage(`{"not":"a list"}`),
			VocabularyQuestions: json.RawMessage(`[{"question":"q","options":["a","b"],"correct_answer":9}]`),
			PronunciationFocus:  json.RawMessage(`[1,2,3]`),
		}

		lesson := NormalizeLesson(stored)

		Convey("Junk degrades to empty instead of failing the read", func() {
			So(lesson.KeyPhrases, ShouldResemble, []model.KeyPhrase{})
			So(lesson.Dialogues, ShouldResemble, []model.DialogueLine{})
			So(lesson.PronunciationFocus, ShouldBeNil)
		})

		Convey("Out-of-range correct_answer is clamped into range", func() {
			q := lesson.VocabularyQuestions[0]
			So(q.CorrectAnswer, ShouldBeGreaterThanOrEqualTo, 0)
			So(q.CorrectAnswer, ShouldBeLessThan, len(q.Options))
		})
	})
}

func TestDenormalizeLesson(t *testing.T) {
	Convey("Given a lesson with empty collections", t, func() {
		lesson := &dto.Lesson{
			ID:         "l1",
			Type:       shared.LessonTypeVocabulary,
			KeyPhrases: []model.KeyPhrase{},
			Objectives: []string{},
		}

		stored := DenormalizeLesson(lesson)

		Convey("Empty lists collapse to NULL columns", func() {
			So(stored.KeyPhrases, ShouldBeNil)
			So(stored.Objectives, ShouldBeNil)
			So(stored.Dialogues, ShouldBeNil)
		})

		Convey("type mirrors into lesson_type", func() {
			So(stored.LessonType, ShouldEqual, shared.LessonTypeVocabulary)
		})

		Convey("Reading the row back yields empty lists again", func() {
			roundTrip := NormalizeLesson(stored)
			So(roundTrip.KeyPhrases, ShouldResemble, []model.KeyPhrase{})
			So(roundTrip.Objectives, ShouldResemble, []string{})
		})
	})

	Convey("Given a grammar lesson with a populated scenario", t, func() {
		lesson := &dto.Lesson{
			Type:     shared.LessonTypeGrammar,
			Scenario: &model.ConversationScenario{Situation: "受付での会話"},
		}

		stored := DenormalizeLesson(lesson)

		Convey("The scenario is nulled out before persistence", func() {
			So(stored.Scenario, ShouldBeNil)
		})
	})

	Convey("Given a conversation lesson with a scenario", t, func() {
		lesson := &dto.Lesson{
			Type:     shared.LessonTypeConversation,
			Scenario: &model.ConversationScenario{Situation: "受付での会話"},
		}

		stored := DenormalizeLesson(lesson)
		So(stored.Scenario, ShouldNotBeNil)
	})

	Convey("Given a pronunciation focus with all sub-lists empty", t, func() {
		lesson := &dto.Lesson{
			Type: shared.LessonTypePronunciation,
			PronunciationFocus: &model.PronunciationFocus{
				TargetSounds:      []string{},
				PracticeWords:     []string{},
				PracticeSentences: []string{},
			},
		}

		stored := DenormalizeLesson(lesson)
		So(stored.PronunciationFocus, ShouldBeNil)

		Convey("A populated focus survives", func() {
			lesson.PronunciationFocus.TargetSounds = []string{"th"}
			So(DenormalizeLesson(lesson).PronunciationFocus, ShouldNotBeNil)
		})
	})

	Convey("Given audio keys holding explicit nulls", t, func() {
		lesson := &dto.Lesson{
			Type:       shared.LessonTypeConversation,
			KeyPhrases: []model.KeyPhrase{{Phrase: "Hi", Meaning: "やあ", Phonetic: "haɪ"}},
			Dialogues:  []model.DialogueLine{{Speaker: "A", Text: "Hi", Japanese: "やあ"}},
		}

		stored := DenormalizeLesson(lesson)

		Convey("The null keys survive the write", func() {
			So(string(stored.KeyPhrases), ShouldContainSubstring, `"audio_url":null`)
			So(string(stored.Dialogues), ShouldContainSubstring, `"audio":null`)
		})

		Convey("A read-modify-write cycle keeps the repaired shape", func() {
			record, err := LessonRecord(DenormalizeLesson(NormalizeLesson(stored)))
			So(err, ShouldBeNil)

			result, err := ValidateLessonRecord(record)
			So(err, ShouldBeNil)
			So(result.Suggestions, ShouldNotContain, "key_phrases[0]: audio_url キーがありません")
			So(result.Suggestions, ShouldNotContain, "dialogues[0]: audio キーがありません")
		})
	})

	Convey("Given grammar points", t, func() {
		lesson := &dto.Lesson{
			Type: shared.LessonTypeGrammar,
			GrammarPoints: []model.GrammarPoint{
				{Name: "be動詞", Explanation: "状態を表す", Pattern: "S + be + C", Examples: []string{"I am a stylist."}},
			},
		}

		stored := DenormalizeLesson(lesson)

		Convey("grammar_points mirrors into grammar_points_json", func() {
			So(stored.GrammarPointsJSON, ShouldResemble, stored.GrammarPoints)
			So(stored.GrammarPoints, ShouldNotBeNil)
		})
	})
}

func exportFixture() *dto.Lesson {
	audio := "s3://phrases/welcome.mp3"
	return &dto.Lesson{
		ID:               "lesson-1",
		CurriculumID:     "curriculum-1",
		Title:            "お出迎えの英会話",
		Description:      "来店時の挨拶",
		Type:             shared.LessonTypeConversation,
		Difficulty:       shared.DifficultyBeginner,
		EstimatedMinutes: 15,
		OrderIndex:       3,
		IsActive:         true,
		KeyPhrases: []model.KeyPhrase{
			{Phrase: "Welcome!", Meaning: "いらっしゃいませ", Phonetic: "ˈwelkəm", AudioURL: &audio},
		},
		VocabularyQuestions: []model.VocabularyQuestion{
			{Question: "「welcome」の意味は？", Options: []string{"いらっしゃいませ", "さようなら"}, CorrectAnswer: 0, Explanation: "挨拶の言葉です"},
		},
		Dialogues: []model.DialogueLine{
			{Speaker: "Stylist", Text: "Welcome!", Japanese: "いらっしゃいませ"},
		},
		Objectives: []string{"来店時の挨拶ができる"},
		Scenario:   &model.ConversationScenario{Situation: "初来店", Location: "受付"},
		PronunciationFocus: &model.PronunciationFocus{
			TargetSounds:      []string{"w"},
			PracticeWords:     []string{"welcome"},
			PracticeSentences: []string{"Welcome to our salon."},
		},
		AIConversationSystemPrompt: "You are a customer.",
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	Convey("Given an exported lesson", t, func() {
		source := exportFixture()

		payload, err := ExportLessonJSON(source)
		So(err, ShouldBeNil)

		Convey("Importing it back preserves every content collection", func() {
			req, err := ImportLessonPayload(payload, "curriculum-2")

			So(err, ShouldBeNil)
			So(req.KeyPhrases, ShouldResemble, source.KeyPhrases)
			So(req.VocabularyQuestions, ShouldResemble, source.VocabularyQuestions)
			So(req.Dialogues, ShouldResemble, source.Dialogues)
			So(req.Objectives, ShouldResemble, source.Objectives)
			So(req.Scenario, ShouldResemble, source.Scenario)
			So(req.PronunciationFocus, ShouldResemble, source.PronunciationFocus)
			So(req.AIConversationSystemPrompt, ShouldEqual, source.AIConversationSystemPrompt)

			Convey("Identity fields are stripped and the curriculum rescoped", func() {
				So(req.CurriculumID, ShouldEqual, "curriculum-2")
				So(req.OrderIndex, ShouldBeNil)
			})
		})

		Convey("Importing without a target keeps the original curriculum", func() {
			req, err := ImportLessonPayload(payload, "")
			So(err, ShouldBeNil)
			So(req.CurriculumID, ShouldEqual, "curriculum-1")
		})
	})

	Convey("Given malformed payloads", t, func() {
		_, err := ImportLessonPayload("not json", "")
		So(err, ShouldNotBeNil)

		_, err = ImportLessonPayload(`[1,2,3]`, "")
		So(err, ShouldNotBeNil)
	})
}

func TestCheckLessonContent(t *testing.T) {
	emptyStructural := &dto.StructureValidationResponse{Issues: []string{}, Suggestions: []string{}}

	Convey("Given a lesson missing required metadata", t, func() {
		lesson := &dto.Lesson{}

		result := CheckLessonContent(lesson, emptyStructural)

		So(result.IsValid, ShouldBeFalse)
		So(result.Issues, ShouldContain, "タイトルが必要です")
		So(result.Issues, ShouldContain, "レッスンタイプが必要です")
		So(result.Issues, ShouldContain, "難易度が必要です")
		So(result.Warnings, ShouldContain, "コンテンツが登録されていません")
	})

	Convey("Given a conversation lesson without a scenario situation", t, func() {
		lesson := &dto.Lesson{
			Title:      "会話レッスン",
			Type:       shared.LessonTypeConversation,
			Difficulty: shared.DifficultyBeginner,
			KeyPhrases: []model.KeyPhrase{{Phrase: "Hi", Meaning: "やあ"}},
		}

		result := CheckLessonContent(lesson, emptyStructural)

		So(result.IsValid, ShouldBeTrue)
		So(result.Warnings, ShouldContain, "会話レッスンにシナリオ（situation）がありません")
	})

	Convey("Given structural issues they flow through", t, func() {
		structural := &dto.StructureValidationResponse{
			Issues:      []string{"key_phrases[0]: phrase がありません"},
			Suggestions: []string{"key_phrases[0]: phonetic の追加を推奨"},
		}
		lesson := &dto.Lesson{
			Title:      "t",
			Type:       shared.LessonTypeVocabulary,
			Difficulty: shared.DifficultyBeginner,
			KeyPhrases: []model.KeyPhrase{{Meaning: "x"}},
		}

		result := CheckLessonContent(lesson, structural)

		So(result.IsValid, ShouldBeFalse)
		So(result.Issues, ShouldContain, "key_phrases[0]: phrase がありません")
		So(result.Warnings, ShouldContain, "key_phrases[0]: phonetic の追加を推奨")
	})
}
