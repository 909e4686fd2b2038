package seeders

import (
	"log"

	"gorm.io/gorm"

	"github.com/salon-lingo/admin_api/model"
)

// MainSeeder coordinates the individual seeders.
type MainSeeder struct {
	db *gorm.DB

	adminSeeder      *AdminSeeder
	curriculumSeeder *CurriculumSeeder
	promptSeeder     *PromptSeeder
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{
		db:               db,
		adminSeeder:      NewAdminSeeder(db),
		curriculumSeeder: NewCurriculumSeeder(db),
		promptSeeder:     NewPromptSeeder(db),
	}
}

func (s *MainSeeder) SeedAll() error {
	if err := s.migrate(); err != nil {
		return err
	}
	if err := s.SeedAdmin(); err != nil {
		return err
	}
	if err := s.SeedCurriculums(); err != nil {
		return err
	}
	return s.SeedPrompts()
}

func (s *MainSeeder) SeedAdmin() error {
	return s.adminSeeder.SeedAdmin()
}

func (s *MainSeeder) SeedCurriculums() error {
	return s.curriculumSeeder.SeedCurriculums()
}

func (s *MainSeeder) SeedPrompts() error {
	return s.promptSeeder.SeedPrompts()
}

func (s *MainSeeder) migrate() error {
	log.Println("Running schema migration before seeding...")
	return s.db.AutoMigrate(
		&model.Profile{},
		&model.Curriculum{},
		&model.Lesson{},
		&model.Course{},
		&model.Module{},
		&model.LessonAIPrompt{},
		&model.AIGlobalSetting{},
		&model.AIFeedbackSetting{},
	)
}
