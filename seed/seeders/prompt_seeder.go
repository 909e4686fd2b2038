package seeders

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

// PromptSeeder installs the global default AI prompts and settings.
type PromptSeeder struct {
	db *gorm.DB
}

func NewPromptSeeder(db *gorm.DB) *PromptSeeder {
	return &PromptSeeder{db: db}
}

func (s *PromptSeeder) SeedPrompts() error {
	var count int64
	if err := s.db.Model(&model.LessonAIPrompt{}).Where("lesson_id IS NULL").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Global prompts already exist, skipping prompt seeding")
		return nil
	}

	settings, err := json.Marshal(model.AISettings{MaxTokens: 500, ResponseFormat: "text"})
	if err != nil {
		return err
	}

	prompts := []model.LessonAIPrompt{
		{
			ID:             uuid.Must(uuid.NewV7()).String(),
			ActivityType:   shared.ActivityAIConversation,
			PromptCategory: shared.PromptCategorySystem,
			PromptContent:  "You are a friendly customer at a Japanese beauty salon. The learner is a {role} practicing English. Today's lesson is about {topic}. Keep your sentences short and correct the learner gently.",
			AISettings:     settings,
			IsActive:       true,
		},
		{
			ID:             uuid.Must(uuid.NewV7()).String(),
			ActivityType:   shared.ActivityApplicationPractice,
			PromptCategory: shared.PromptCategoryEvaluation,
			PromptContent:  "Evaluate the learner's answer to: {prompt}. Grade naturalness and task completion on a 1-5 scale, then give one concrete improvement in Japanese.",
			AISettings:     settings,
			IsActive:       true,
		},
	}

	for _, prompt := range prompts {
		if err := s.db.Create(&prompt).Error; err != nil {
			log.Printf("Error creating default prompt: %v", err)
			return err
		}
	}

	global := model.AIGlobalSetting{
		ID:                  uuid.Must(uuid.NewV7()).String(),
		DefaultSystemPrompt: "You are a supportive English tutor for Japanese beauty professionals.",
		MaxTokens:           500,
		ResponseFormat:      "text",
		IsActive:            true,
	}
	if err := s.db.Create(&global).Error; err != nil {
		return err
	}

	feedback := model.AIFeedbackSetting{
		ID:          uuid.Must(uuid.NewV7()).String(),
		Tone:        "encouraging",
		DetailLevel: "standard",
		Language:    "japanese",
		IsActive:    true,
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return err
	}

	log.Println("Created default AI prompts and settings")
	return nil
}
