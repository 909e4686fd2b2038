package handlers

import (
	"io"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
)

type LessonServiceInterface interface {
	GetLesson(id string) (*dto.Lesson, error)
	GetLessonsByCurriculum(curriculumID string) (*dto.LessonCollectionResponse, error)
	CreateLesson(req *dto.CreateLessonRequest) (*dto.Lesson, error)
	UpdateLesson(id string, req *dto.UpdateLessonRequest) (*dto.Lesson, error)
	DeleteLesson(id string) error
	DuplicateLesson(id string) (*dto.Lesson, error)
	ReorderLessons(curriculumID string, lessonIDs []string) error
	BulkUpdateLessons(req *dto.BulkUpdateLessonsRequest) *dto.BulkUpdateLessonsResponse
	SearchLessons(req *dto.LessonSearchRequest) (*dto.LessonCollectionResponse, error)
	ExportLesson(id string) (string, error)
	ImportLesson(req *dto.ImportLessonRequest) (*dto.Lesson, error)
	CheckLesson(id string) (*dto.LessonCheckResponse, error)
}

type CurriculumServiceInterface interface {
	GetCurriculum(id string) (*dto.CurriculumResponse, error)
	GetCurriculums(category string, activeOnly bool) (*dto.CurriculumCollectionResponse, error)
	CreateCurriculum(req *dto.CreateCurriculumRequest) (*dto.CurriculumResponse, error)
	UpdateCurriculum(id string, req *dto.UpdateCurriculumRequest) (*dto.CurriculumResponse, error)
	DeleteCurriculum(id string) error
	UploadCoverImage(id, fileName string, reader io.Reader, size int64, contentType string) (*dto.MediaUploadResponse, error)
	GetCourses() ([]dto.CourseResponse, error)
	GetCourseModules(courseID string) ([]dto.ModuleResponse, error)
}

type StructureServiceInterface interface {
	ValidateLesson(lessonID string) (*dto.StructureValidationResponse, error)
	DiffLesson(lessonID string) (*dto.StructureDiffResponse, error)
	SuggestMigration(lessonID string) (*dto.MigrationSuggestionResponse, error)
	RepairLesson(lessonID string) (*dto.StructureValidationResponse, error)
	AnalyzeCurriculum(curriculumID string) (*dto.CurriculumStructureReport, error)
}

type GeneratorServiceInterface interface {
	Generate(req *dto.GenerateLessonRequest) (*dto.GeneratedLesson, error)
	Preset(name string) dto.GenerateLessonRequest
}

type PromptServiceInterface interface {
	GetPromptConfig(id string) (*dto.PromptConfigResponse, error)
	GetPromptConfigs(activityType string, lessonID *string) (*dto.PromptConfigCollectionResponse, error)
	ResolvePrompt(activityType, category string, lessonID *string) (*dto.PromptConfigResponse, error)
	CreatePromptConfig(req *dto.UpsertPromptConfigRequest) (*dto.PromptConfigResponse, error)
	UpdatePromptConfig(id string, req *dto.UpsertPromptConfigRequest) (*dto.PromptConfigResponse, error)
	DeletePromptConfig(id string) error
	GetGlobalSettings() (*model.AIGlobalSetting, error)
	UpdateGlobalSettings(req *dto.GlobalSettingsRequest) (*model.AIGlobalSetting, error)
	GetFeedbackSettings() (*model.AIFeedbackSetting, error)
	UpdateFeedbackSettings(req *dto.FeedbackSettingsRequest) (*model.AIFeedbackSetting, error)
}

type MonitoringServiceInterface interface {
	RecordLessonWrite(operation string)
	RecordLessonGenerated()
	RecordStructureReport(source string)
}
