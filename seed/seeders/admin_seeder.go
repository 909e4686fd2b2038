package seeders

import (
	"log"
	"os"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/salon-lingo/admin_api/model"
	"github.com/salon-lingo/admin_api/shared"
)

// AdminSeeder creates the initial super-admin editor profile.
type AdminSeeder struct {
	db *gorm.DB
}

func NewAdminSeeder(db *gorm.DB) *AdminSeeder {
	return &AdminSeeder{db: db}
}

func (s *AdminSeeder) SeedAdmin() error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@salon-lingo.jp"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	var existing model.Profile
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin profile already exists, skipping: %s", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.Profile{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Email:        email,
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         shared.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(&admin).Error; err != nil {
		log.Printf("Error creating admin profile: %v", err)
		return err
	}

	log.Printf("Created admin profile: %s", admin.Email)
	return nil
}
