package services

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/shared"
)

func TestGenerateLesson(t *testing.T) {
	Convey("Given a known topic", t, func() {
		lesson, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "hobbies"})

		So(err, ShouldBeNil)
		So(lesson.Type, ShouldEqual, shared.LessonTypeConversation)
		So(lesson.Difficulty, ShouldEqual, shared.DifficultyBeginner)
		So(lesson.KeyPhrases, ShouldNotBeEmpty)

		Convey("At least 5 vocabulary questions are produced", func() {
			So(len(lesson.VocabularyQuestions), ShouldBeGreaterThanOrEqualTo, 5)
		})

		Convey("Every question keeps its answer in range", func() {
			for _, q := range lesson.VocabularyQuestions {
				So(q.CorrectAnswer, ShouldBeGreaterThanOrEqualTo, 0)
				So(q.CorrectAnswer, ShouldBeLessThan, len(q.Options))
				So(len(q.Options), ShouldEqual, 4)
			}
		})

		Convey("The dialogue scaffold has four turns using generated phrases", func() {
			So(lesson.Dialogues, ShouldHaveLength, 4)
			So(lesson.Dialogues[0].Speaker, ShouldEqual, "AI")
			So(lesson.Dialogues[1].Text, ShouldEqual, lesson.KeyPhrases[0].Phrase)
			So(lesson.Dialogues[3].Text, ShouldEqual, lesson.KeyPhrases[1].Phrase)
		})

		Convey("Exercises substitute the topic into their prompts", func() {
			So(lesson.ApplicationPractice, ShouldNotBeEmpty)
			for _, ex := range lesson.ApplicationPractice {
				So(ex.Prompt, ShouldNotContainSubstring, "{topic}")
				So(ex.SampleResponses, ShouldNotBeEmpty)
			}
		})

		Convey("Objectives and system prompt mention the topic", func() {
			So(lesson.Objectives, ShouldHaveLength, 4)
			So(lesson.Objectives[0], ShouldContainSubstring, "hobbies")
			So(lesson.AIConversationSystemPrompt, ShouldContainSubstring, "hobbies")
		})
	})

	Convey("Given a topic absent from the template table", t, func() {
		lesson, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "astrophysics"})

		So(err, ShouldBeNil)

		Convey("The default template still yields a well-formed lesson", func() {
			So(lesson.KeyPhrases, ShouldNotBeEmpty)
			So(len(lesson.VocabularyQuestions), ShouldBeGreaterThanOrEqualTo, 5)
			So(lesson.Dialogues, ShouldHaveLength, 4)
			for _, q := range lesson.VocabularyQuestions {
				So(q.CorrectAnswer, ShouldBeGreaterThanOrEqualTo, 0)
				So(q.CorrectAnswer, ShouldBeLessThan, len(q.Options))
			}
		})
	})

	Convey("Given a Japanese topic alias", t, func() {
		aliased, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "趣味"})
		So(err, ShouldBeNil)

		canonical, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "hobbies"})
		So(err, ShouldBeNil)

		So(aliased.KeyPhrases, ShouldResemble, canonical.KeyPhrases)
	})

	Convey("Given explicit title, difficulty and key words", t, func() {
		lesson, err := GenerateLesson(&dto.GenerateLessonRequest{
			Title:           "週末の過ごし方",
			Topic:           "hobbies",
			DifficultyLevel: shared.DifficultyIntermediate,
			KeyWords:        []string{"camera", "hiking"},
		})

		So(err, ShouldBeNil)
		So(lesson.Title, ShouldEqual, "週末の過ごし方")
		So(lesson.Difficulty, ShouldEqual, shared.DifficultyIntermediate)
		So(lesson.AIConversationSystemPrompt, ShouldContainSubstring, "camera, hiking")
	})

	Convey("Given a missing topic", t, func() {
		_, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "  "})
		So(err, ShouldNotBeNil)

		_, err = GenerateLesson(nil)
		So(err, ShouldNotBeNil)
	})

	Convey("Generation is deterministic", t, func() {
		first, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "family"})
		So(err, ShouldBeNil)

		second, err := GenerateLesson(&dto.GenerateLessonRequest{Topic: "family"})
		So(err, ShouldBeNil)

		So(second, ShouldResemble, first)
	})
}

func TestPresetRequest(t *testing.T) {
	Convey("Given a named preset", t, func() {
		preset := PresetRequest("work")
		So(preset.Topic, ShouldEqual, "work")
		So(preset.Title, ShouldNotBeEmpty)
	})

	Convey("Given an unknown preset name", t, func() {
		preset := PresetRequest("does-not-exist")
		So(preset, ShouldResemble, PresetRequest("self_introduction"))
	})

	Convey("Every advertised preset exists", t, func() {
		for _, name := range PresetNames() {
			preset := PresetRequest(name)
			So(preset.Topic, ShouldNotBeEmpty)
		}
	})
}
