package seeders

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/coursekit-labs/session_api/model"
	"github.com/coursekit-labs/session_api/shared"
)

// UserSeeder creates the default admin and a demo learner account.
type UserSeeder struct {
	db *gorm.DB
}

func NewUserSeeder(db *gorm.DB) *UserSeeder {
	return &UserSeeder{db: db}
}

func (s *UserSeeder) Seed() error {
	log.Println("Seeding users...")

	users := []struct {
		Email    string
		Username string
		Password string
		Role     string
	}{
		{Email: "admin@coursekit.dev", Username: "admin", Password: "Admin#2024!", Role: shared.RoleAdmin},
		{Email: "learner@coursekit.dev", Username: "demo_learner", Password: "Learner#2024!", Role: shared.RoleLearner},
	}

	for _, u := range users {
		var existing model.User
		err := s.db.Where("email = ?", u.Email).First(&existing).Error
		if err == nil {
			log.Printf("User %s already exists, skipping", u.Username)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		id, _ := uuid.NewV7()
		user := model.User{
			ID:       id.String(),
			Email:    u.Email,
			Username: u.Username,
			Password: string(hashed),
			Role:     u.Role,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return err
		}
		log.Printf("Created user: %s (%s)", u.Username, u.Role)
	}

	log.Println("User seeding completed!")
	return nil
}
