package seeders

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

// CurriculumSeeder loads a sample curriculum with a few lessons so the
// dashboard has content to work with on a fresh install.
type CurriculumSeeder struct {
	db *gorm.DB
}

func NewCurriculumSeeder(db *gorm.DB) *CurriculumSeeder {
	return &CurriculumSeeder{db: db}
}

func (s *CurriculumSeeder) SeedCurriculums() error {
	var count int64
	if err := s.db.Model(&model.Curriculum{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Curriculums already exist, skipping curriculum seeding")
		return nil
	}

	curriculum := model.Curriculum{
		ID:              uuid.Must(uuid.NewV7()).String(),
		Title:           "接客英語の基礎",
		Description:     "美容師のための接客英会話カリキュラム。初めての外国人のお客様にも自信を持って対応できるようになります。",
		DifficultyLevel: 1,
		Category:        shared.CategoryHair,
		IsActive:        true,
	}
	if err := s.db.Create(&curriculum).Error; err != nil {
		return err
	}

	for i, lesson := range s.sampleLessons(curriculum.ID) {
		lesson.OrderIndex = i
		if err := s.db.Create(&lesson).Error; err != nil {
			log.Printf("Error creating sample lesson %q: %v", lesson.Title, err)
			return err
		}
	}

	log.Printf("Created sample curriculum: %s", curriculum.Title)
	return nil
}

func (s *CurriculumSeeder) sampleLessons(curriculumID string) []model.Lesson {
	greetingPhrases := mustJSON([]model.KeyPhrase{
		{Phrase: "Welcome! Do you have an appointment?", Meaning: "いらっしゃいませ！ご予約はございますか？", Phonetic: "ˈwelkəm duː juː hæv ən əˈpɔɪntmənt"},
		{Phrase: "May I take your coat?", Meaning: "コートをお預かりしましょうか？", Phonetic: "meɪ aɪ teɪk jɔːr koʊt"},
	})

	greetingDialogues := mustJSON([]model.DialogueLine{
		{Speaker: "Stylist", Text: "Welcome! Do you have an appointment?", Japanese: "いらっしゃいませ！ご予約はございますか？"},
		{Speaker: "Customer", Text: "Yes, at two o'clock under Smith.", Japanese: "はい、2時にスミスで予約しています。"},
	})

	greetingScenario := mustJSON(model.ConversationScenario{
		Situation: "初めての外国人のお客様が来店",
		Location:  "サロンの受付",
		AIRole:    "外国人のお客様",
		UserRole:  "スタイリスト",
		Context:   "予約確認から席への案内まで",
		SuggestedTopics: []string{
			"予約の確認",
			"荷物のお預かり",
			"席への案内",
		},
	})

	vocabulary := mustJSON([]model.VocabularyQuestion{
		{
			Question:      "「appointment」の意味は？",
			Options:       []string{"予約", "注文", "会議", "挨拶"},
			CorrectAnswer: 0,
			Explanation:   "appointment は「予約」という意味です。",
		},
		{
			Question:      "「welcome」の意味は？",
			Options:       []string{"さようなら", "いらっしゃいませ", "ありがとう", "すみません"},
			CorrectAnswer: 1,
			Explanation:   "welcome は「いらっしゃいませ」という意味です。",
		},
	})

	objectives := mustJSON([]string{
		"来店時の挨拶ができる",
		"予約の確認ができる",
	})

	return []model.Lesson{
		{
			ID:           uuid.Must(uuid.NewV7()).String(),
			CurriculumID: curriculumID,
			Title:        "お出迎えの英会話",
			Description:  "来店時の挨拶と予約確認の基本フレーズ",
			Type:         shared.LessonTypeConversation,
			LessonType:   shared.LessonTypeConversation,
			Difficulty:   shared.DifficultyBeginner,

			EstimatedMinutes: 15,
			IsActive:         true,

			KeyPhrases: greetingPhrases,
			Dialogues:  greetingDialogues,
			Scenario:   greetingScenario,
			Objectives: objectives,

			AIConversationSystemPrompt: "You are a foreign customer visiting a Japanese hair salon for the first time. Speak simple English and let the stylist practice greeting you and confirming your appointment.",
		},
		{
			ID:           uuid.Must(uuid.NewV7()).String(),
			CurriculumID: curriculumID,
			Title:        "接客の基本単語",
			Description:  "受付でよく使う単語のチェック",
			Type:         shared.LessonTypeVocabulary,
			LessonType:   shared.LessonTypeVocabulary,
			Difficulty:   shared.DifficultyBeginner,

			EstimatedMinutes: 10,
			IsActive:         true,

			VocabularyQuestions: vocabulary,
		},
	}
}

func mustJSON(v interface{}) json.RawMessage {
	raw, err := json.Marshal(v)
	if err != nil {
		log.Fatalf("Failed to marshal seed data: %v", err)
	}
	return raw
}
