// model/curriculum.go
package model

import "time"

// Curriculum groups an ordered collection of lessons for one beauty-industry
// category. DifficultyLevel is the numeric 1-9 scale shown in the editor.
type Curriculum struct {
	ID              string    `json:"id" gorm:"primaryKey"`
	Title           string    `json:"title" gorm:"not null"`
	Description     string    `json:"description" gorm:"type:text"`
	DifficultyLevel int       `json:"difficulty_level" gorm:"default:1"`
	Category        string    `json:"category"` // hair, nail, esthetic, makeup, reception, general
	CoverImageURL   string    `json:"cover_image_url"`
	IsActive        bool      `json:"is_active" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Course and Module are legacy catalog tables kept for the dashboard's
// read-only listings.
type Course struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	OrderIndex  int       `json:"order_index"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Module struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	CourseID    string    `json:"course_id" gorm:"not null;index"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	OrderIndex  int       `json:"order_index"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Course Course `json:"course" gorm:"foreignKey:CourseID"`
}
