// services/curriculum.go
package services

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/salon-lingo/admin_api/dto"
	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

type CurriculumService struct {
	appContext.DefaultService

	sqlSvc       *PostgresService
	minioSvc     *MinIOService
	structureSvc *StructureService
}

const CURRICULUM_SVC = "curriculum_svc"

func (svc CurriculumService) Id() string {
	return CURRICULUM_SVC
}

func (svc *CurriculumService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.structureSvc = svc.Service(STRUCTURE_SVC).(*StructureService)
	return nil
}

// difficultyScale maps the numeric 1-9 level onto the label and badge color
// the dashboard renders.
type difficultyBand struct {
	label string
	color string
}

var difficultyScale = map[int]difficultyBand{
	1: {label: "入門", color: "#4caf50"},
	2: {label: "初級", color: "#8bc34a"},
	3: {label: "初級+", color: "#cddc39"},
	4: {label: "初中級", color: "#ffeb3b"},
	5: {label: "中級", color: "#ffc107"},
	6: {label: "中級+", color: "#ff9800"},
	7: {label: "中上級", color: "#ff5722"},
	8: {label: "上級", color: "#f44336"},
	9: {label: "上級+", color: "#9c27b0"},
}

// DifficultyBand returns the display label and color for a 1-9 level.
// Out-of-range levels fall back to level 1.
func DifficultyBand(level int) (string, string) {
	band, ok := difficultyScale[level]
	if !ok {
		band = difficultyScale[1]
	}
	return band.label, band.color
}

func (svc *CurriculumService) toResponse(c *model.Curriculum, lessonCount int) dto.CurriculumResponse {
	label, color := DifficultyBand(c.DifficultyLevel)
	return dto.CurriculumResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		DifficultyLevel: c.DifficultyLevel,
		DifficultyLabel: label,
		DifficultyColor: color,
		Category:        c.Category,
		CoverImageURL:   c.CoverImageURL,
		IsActive:        c.IsActive,
		LessonCount:     lessonCount,
	}
}

func (svc *CurriculumService) GetCurriculum(id string) (*dto.CurriculumResponse, error) {
	curriculum, err := svc.sqlSvc.GetCurriculum(id)
	if err != nil {
		return nil, err
	}

	count, err := svc.sqlSvc.CountLessonsByCurriculum(id)
	if err != nil {
		return nil, err
	}

	response := svc.toResponse(curriculum, int(count))
	return &response, nil
}

func (svc *CurriculumService) GetCurriculums(category string, activeOnly bool) (*dto.CurriculumCollectionResponse, error) {
	curriculums, err := svc.sqlSvc.GetCurriculums(category, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CurriculumResponse, 0, len(curriculums))
	for i := range curriculums {
		count, err := svc.sqlSvc.CountLessonsByCurriculum(curriculums[i].ID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, svc.toResponse(&curriculums[i], int(count)))
	}

	return &dto.CurriculumCollectionResponse{Curriculums: responses, Total: len(responses)}, nil
}

func (svc *CurriculumService) CreateCurriculum(req *dto.CreateCurriculumRequest) (*dto.CurriculumResponse, error) {
	curriculum := &model.Curriculum{
		ID:              uuid.Must(uuid.NewV7()).String(),
		Title:           req.Title,
		Description:     req.Description,
		DifficultyLevel: req.DifficultyLevel,
		Category:        req.Category,
		IsActive:        true,
	}

	created, err := svc.sqlSvc.CreateCurriculum(curriculum)
	if err != nil {
		return nil, err
	}

	response := svc.toResponse(created, 0)
	return &response, nil
}

func (svc *CurriculumService) UpdateCurriculum(id string, req *dto.UpdateCurriculumRequest) (*dto.CurriculumResponse, error) {
	curriculum, err := svc.sqlSvc.GetCurriculum(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		curriculum.Title = *req.Title
	}
	if req.Description != nil {
		curriculum.Description = *req.Description
	}
	if req.DifficultyLevel != nil {
		curriculum.DifficultyLevel = *req.DifficultyLevel
	}
	if req.Category != nil {
		curriculum.Category = *req.Category
	}
	if req.IsActive != nil {
		curriculum.IsActive = *req.IsActive
	}

	saved, err := svc.sqlSvc.SaveCurriculum(curriculum)
	if err != nil {
		return nil, err
	}

	count, err := svc.sqlSvc.CountLessonsByCurriculum(id)
	if err != nil {
		return nil, err
	}

	response := svc.toResponse(saved, int(count))
	return &response, nil
}

func (svc *CurriculumService) DeleteCurriculum(id string) error {
	if err := svc.sqlSvc.DeleteCurriculum(id); err != nil {
		return err
	}
	svc.structureSvc.InvalidateCurriculum(id)
	return nil
}

// UploadCoverImage is a two-step sequence: upload the bytes, then patch the
// public URL onto the curriculum row. There is no atomicity between the two
// steps; a crash in between leaves an orphaned object.
func (svc *CurriculumService) UploadCoverImage(id, fileName string, reader io.Reader, size int64, contentType string) (*dto.MediaUploadResponse, error) {
	if _, err := svc.sqlSvc.GetCurriculum(id); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		ext = ".jpg"
	}
	if !lo.Contains([]string{".jpg", ".jpeg", ".png", ".webp"}, ext) {
		return nil, shared.NewBadRequestError(nil, fmt.Sprintf("Unsupported image type: %s", ext))
	}

	objectName := fmt.Sprintf("curriculum-images/%s-%d%s", id, time.Now().Unix(), ext)

	info, err := svc.minioSvc.UploadFile(objectName, reader, size, contentType)
	if err != nil {
		return nil, err
	}

	url, err := svc.minioSvc.GetPublicURL(objectName)
	if err != nil {
		return nil, err
	}

	err = svc.sqlSvc.Db().Model(&model.Curriculum{}).
		Where("id = ?", id).
		Update("cover_image_url", url).Error
	if err != nil {
		return nil, err
	}

	return &dto.MediaUploadResponse{
		URL:      url,
		FileName: objectName,
		FileSize: info.Size,
	}, nil
}

// ==================== LEGACY CATALOG ====================

func (svc *CurriculumService) GetCourses() ([]dto.CourseResponse, error) {
	courses, err := svc.sqlSvc.GetCourses()
	if err != nil {
		return nil, err
	}

	return lo.Map(courses, func(c model.Course, _ int) dto.CourseResponse {
		return dto.CourseResponse{
			ID:          c.ID,
			Title:       c.Title,
			Description: c.Description,
			OrderIndex:  c.OrderIndex,
			IsActive:    c.IsActive,
		}
	}), nil
}

func (svc *CurriculumService) GetCourseModules(courseID string) ([]dto.ModuleResponse, error) {
	modules, err := svc.sqlSvc.GetModulesByCourse(courseID)
	if err != nil {
		return nil, err
	}

	return lo.Map(modules, func(m model.Module, _ int) dto.ModuleResponse {
		return dto.ModuleResponse{
			ID:          m.ID,
			CourseID:    m.CourseID,
			Title:       m.Title,
			Description: m.Description,
			OrderIndex:  m.OrderIndex,
			IsActive:    m.IsActive,
		}
	}), nil
}
