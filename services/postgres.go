// services/postgres.go
package services

import (
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/salon-lingo/admin_api/model"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	database string
}

const POSTGRES_SVC = "postgres_svc"

func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.database = os.Getenv("DATABASE_URL")
	if ds.database == "" {
		host := os.Getenv("DB_HOST")
		if host == "" {
			host = "localhost"
		}
		port := os.Getenv("DB_PORT")
		if port == "" {
			port = "5432"
		}
		user := os.Getenv("DB_USER")
		if user == "" {
			user = "postgres"
		}
		password := os.Getenv("DB_PASSWORD")
		if password == "" {
			password = "postgres"
		}
		dbname := os.Getenv("DB_NAME")
		if dbname == "" {
			dbname = "salon_lingo_admin"
		}
		sslmode := os.Getenv("DB_SSLMODE")
		if sslmode == "" {
			sslmode = "disable"
		}
		timezone := os.Getenv("DB_TIMEZONE")
		if timezone == "" {
			timezone = "UTC"
		}

		ds.database = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			host, user, password, dbname, port, sslmode, timezone)
	}

	return ds.DefaultService.Configure(ctx)
}

func (ds *PostgresService) Start() (err error) {
	maxRetries := 10
	retryDelay := time.Second

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("Attempting to connect to database (attempt %d/%d)...", attempt, maxRetries)

		ds.db, err = gorm.Open(postgres.Open(ds.database), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})

		if err == nil {
			sqlDB, dbErr := ds.db.DB()
			if dbErr == nil {
				pingErr := sqlDB.Ping()
				if pingErr == nil {
					log.Println("Successfully connected to database")
					break
				}
				err = pingErr
			} else {
				err = dbErr
			}
		}

		if attempt == maxRetries {
			log.Printf("Failed to connect to database after %d attempts: %v", maxRetries, err)
			return err
		}

		log.Printf("Database connection failed: %v. Retrying in %v...", err, retryDelay)
		time.Sleep(retryDelay)

		retryDelay *= 2
		if retryDelay > 10*time.Second {
			retryDelay = 10 * time.Second
		}
	}

	models := []interface{}{
		&model.Profile{},

		&model.Curriculum{},
		&model.Lesson{},
		&model.Course{},
		&model.Module{},

		&model.LessonAIPrompt{},
		&model.AIGlobalSetting{},
		&model.AIFeedbackSetting{},
	}

	err = ds.db.AutoMigrate(models...)
	if err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

// ==================== LESSON METHODS ====================

func (ds *PostgresService) GetLesson(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := ds.db.Where("id = ?", id).First(&lesson).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (ds *PostgresService) GetLessonsByCurriculum(curriculumID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := ds.db.Where("curriculum_id = ?", curriculumID).
		Order("order_index ASC").
		Find(&lessons).Error
	return lessons, err
}

func (ds *PostgresService) CreateLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if err := ds.db.Create(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *PostgresService) SaveLesson(lesson *model.Lesson) (*model.Lesson, error) {
	if err := ds.db.Save(lesson).Error; err != nil {
		return nil, err
	}
	return lesson, nil
}

func (ds *PostgresService) UpdateLessonColumns(id string, columns map[string]interface{}) error {
	return ds.db.Model(&model.Lesson{}).Where("id = ?", id).Updates(columns).Error
}

func (ds *PostgresService) DeleteLesson(id string) error {
	return ds.db.Where("id = ?", id).Delete(&model.Lesson{}).Error
}

func (ds *PostgresService) SearchLessons(query, curriculumID, lessonType, difficulty string, limit int) ([]model.Lesson, error) {
	q := ds.db.Model(&model.Lesson{})

	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if curriculumID != "" {
		q = q.Where("curriculum_id = ?", curriculumID)
	}
	if lessonType != "" {
		q = q.Where("lesson_type = ?", lessonType)
	}
	if difficulty != "" {
		q = q.Where("difficulty = ?", difficulty)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var lessons []model.Lesson
	err := q.Order("order_index ASC").Find(&lessons).Error
	return lessons, err
}

func (ds *PostgresService) CountLessonsByCurriculum(curriculumID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.Lesson{}).Where("curriculum_id = ?", curriculumID).Count(&count).Error
	return count, err
}

func (ds *PostgresService) NextLessonOrderIndex(curriculumID string) (int, error) {
	var max *int
	err := ds.db.Model(&model.Lesson{}).
		Where("curriculum_id = ?", curriculumID).
		Select("MAX(order_index)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 0, nil
	}
	return *max + 1, nil
}

// ==================== CURRICULUM METHODS ====================

func (ds *PostgresService) GetCurriculum(id string) (*model.Curriculum, error) {
	var curriculum model.Curriculum
	if err := ds.db.Where("id = ?", id).First(&curriculum).Error; err != nil {
		return nil, err
	}
	return &curriculum, nil
}

func (ds *PostgresService) GetCurriculums(category string, activeOnly bool) ([]model.Curriculum, error) {
	q := ds.db.Model(&model.Curriculum{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var curriculums []model.Curriculum
	err := q.Order("created_at ASC").Find(&curriculums).Error
	return curriculums, err
}

func (ds *PostgresService) CreateCurriculum(curriculum *model.Curriculum) (*model.Curriculum, error) {
	if err := ds.db.Create(curriculum).Error; err != nil {
		return nil, err
	}
	return curriculum, nil
}

func (ds *PostgresService) SaveCurriculum(curriculum *model.Curriculum) (*model.Curriculum, error) {
	if err := ds.db.Save(curriculum).Error; err != nil {
		return nil, err
	}
	return curriculum, nil
}

func (ds *PostgresService) DeleteCurriculum(id string) error {
	return ds.db.Where("id = ?", id).Delete(&model.Curriculum{}).Error
}

// ==================== AI PROMPT METHODS ====================

func (ds *PostgresService) GetPromptConfig(id string) (*model.LessonAIPrompt, error) {
	var prompt model.LessonAIPrompt
	if err := ds.db.Where("id = ?", id).First(&prompt).Error; err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (ds *PostgresService) GetPromptConfigs(activityType string, lessonID *string) ([]model.LessonAIPrompt, error) {
	q := ds.db.Model(&model.LessonAIPrompt{})
	if activityType != "" {
		q = q.Where("activity_type = ?", activityType)
	}
	if lessonID != nil {
		q = q.Where("lesson_id = ?", *lessonID)
	}

	var prompts []model.LessonAIPrompt
	err := q.Order("created_at ASC").Find(&prompts).Error
	return prompts, err
}

// FindPromptConfig looks up a lesson-scoped prompt first and falls back to the
// global default (lesson_id IS NULL).
func (ds *PostgresService) FindPromptConfig(activityType, category string, lessonID *string) (*model.LessonAIPrompt, error) {
	var prompt model.LessonAIPrompt

	if lessonID != nil {
		err := ds.db.Where("activity_type = ? AND prompt_category = ? AND lesson_id = ? AND is_active = ?",
			activityType, category, *lessonID, true).First(&prompt).Error
		if err == nil {
			return &prompt, nil
		}
		if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	err := ds.db.Where("activity_type = ? AND prompt_category = ? AND lesson_id IS NULL AND is_active = ?",
		activityType, category, true).First(&prompt).Error
	if err != nil {
		return nil, err
	}
	return &prompt, nil
}

func (ds *PostgresService) CreatePromptConfig(prompt *model.LessonAIPrompt) (*model.LessonAIPrompt, error) {
	if err := ds.db.Create(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

func (ds *PostgresService) SavePromptConfig(prompt *model.LessonAIPrompt) (*model.LessonAIPrompt, error) {
	if err := ds.db.Save(prompt).Error; err != nil {
		return nil, err
	}
	return prompt, nil
}

func (ds *PostgresService) DeletePromptConfig(id string) error {
	return ds.db.Where("id = ?", id).Delete(&model.LessonAIPrompt{}).Error
}

func (ds *PostgresService) GetGlobalSettings() (*model.AIGlobalSetting, error) {
	var settings model.AIGlobalSetting
	err := ds.db.Order("created_at ASC").First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (ds *PostgresService) SaveGlobalSettings(settings *model.AIGlobalSetting) error {
	return ds.db.Save(settings).Error
}

func (ds *PostgresService) GetFeedbackSettings() (*model.AIFeedbackSetting, error) {
	var settings model.AIFeedbackSetting
	err := ds.db.Order("created_at ASC").First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (ds *PostgresService) SaveFeedbackSettings(settings *model.AIFeedbackSetting) error {
	return ds.db.Save(settings).Error
}

// ==================== PROFILE METHODS ====================

func (ds *PostgresService) GetProfile(id string) (*model.Profile, error) {
	var profile model.Profile
	if err := ds.db.Where("id = ?", id).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (ds *PostgresService) GetProfileByEmail(email string) (*model.Profile, error) {
	var profile model.Profile
	if err := ds.db.Where("email = ?", email).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// ==================== CATALOG METHODS ====================

func (ds *PostgresService) GetCourses() ([]model.Course, error) {
	var courses []model.Course
	err := ds.db.Where("is_active = ?", true).Order("order_index ASC").Find(&courses).Error
	return courses, err
}

func (ds *PostgresService) GetModulesByCourse(courseID string) ([]model.Module, error) {
	var modules []model.Module
	err := ds.db.Where("course_id = ? AND is_active = ?", courseID, true).
		Order("order_index ASC").
		Find(&modules).Error
	return modules, err
}
