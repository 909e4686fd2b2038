package dto

// Curriculum DTOs
type CurriculumResponse struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	DifficultyLevel int    `json:"difficulty_level"`
	DifficultyLabel string `json:"difficulty_label"`
	DifficultyColor string `json:"difficulty_color"`
	Category        string `json:"category"`
	CoverImageURL   string `json:"cover_image_url"`
	IsActive        bool   `json:"is_active"`
	LessonCount     int    `json:"lesson_count"`
}

type CurriculumCollectionResponse struct {
	Curriculums []CurriculumResponse `json:"curriculums"`
	Total       int                  `json:"total"`
}

type CreateCurriculumRequest struct {
	Title           string `json:"title" validate:"required,max=200"`
	Description     string `json:"description"`
	DifficultyLevel int    `json:"difficulty_level" validate:"required,min=1,max=9"`
	Category        string `json:"category" validate:"required,curriculum_category"`
}

func (r CreateCurriculumRequest) Validate() error {
	return validate.Struct(r)
}

type UpdateCurriculumRequest struct {
	Title           *string `json:"title" validate:"omitempty,max=200"`
	Description     *string `json:"description"`
	DifficultyLevel *int    `json:"difficulty_level" validate:"omitempty,min=1,max=9"`
	Category        *string `json:"category" validate:"omitempty,curriculum_category"`
	IsActive        *bool   `json:"is_active"`
}

func (r UpdateCurriculumRequest) Validate() error {
	return validate.Struct(r)
}

type CourseResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	OrderIndex  int              `json:"order_index"`
	IsActive    bool             `json:"is_active"`
	Modules     []ModuleResponse `json:"modules,omitempty"`
}

type ModuleResponse struct {
	ID          string `json:"id"`
	CourseID    string `json:"course_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`
	IsActive    bool   `json:"is_active"`
}
