package seeders

import (
	"log"

	"gorm.io/gorm"
)

// MainSeeder coordinates all database seeding operations.
type MainSeeder struct {
	db            *gorm.DB
	userSeeder    *UserSeeder
	sessionSeeder *SessionSeeder
}

func NewMainSeeder(db *gorm.DB) *MainSeeder {
	return &MainSeeder{
		db:            db,
		userSeeder:    NewUserSeeder(db),
		sessionSeeder: NewSessionSeeder(db),
	}
}

// SeedAll runs every seeder in dependency order.
func (m *MainSeeder) SeedAll() error {
	log.Println("Starting complete database seeding...")

	if err := m.userSeeder.Seed(); err != nil {
		return err
	}

	if err := m.sessionSeeder.Seed(); err != nil {
		return err
	}

	log.Println("Complete database seeding finished!")
	return nil
}

// SeedUsersOnly seeds user accounts without touching session data.
func (m *MainSeeder) SeedUsersOnly() error {
	return m.userSeeder.Seed()
}

// SeedSessionsOnly seeds sessions with their content items.
func (m *MainSeeder) SeedSessionsOnly() error {
	return m.sessionSeeder.Seed()
}
