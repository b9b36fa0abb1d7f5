package seeders

import (
	"encoding/json"
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coursekit-labs/session_api/model"
	"github.com/coursekit-labs/session_api/playback"
)

// SessionSeeder creates a demo session with a mixed run of content types so
// every renderer path has something to exercise.
type SessionSeeder struct {
	db *gorm.DB
}

func NewSessionSeeder(db *gorm.DB) *SessionSeeder {
	return &SessionSeeder{db: db}
}

type contentSeed struct {
	Title         string
	Type          playback.ContentType
	Order         int
	AccessLevel   playback.AccessLevel
	Required      bool
	Duration      int
	MediaDuration float64
	Chapters      []playback.Chapter
	Payload       map[string]interface{}
}

func (s *SessionSeeder) Seed() error {
	log.Println("Seeding sessions...")

	const demoTitle = "Introduction to Backend Engineering"

	var existing model.Session
	err := s.db.Where("title = ?", demoTitle).First(&existing).Error
	if err == nil {
		log.Printf("Session %q already exists, skipping", demoTitle)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	contents := []contentSeed{
		{
			Title:         "Welcome & Course Overview",
			Type:          playback.ContentAudio,
			Order:         1,
			AccessLevel:   playback.AccessFree,
			Required:      true,
			Duration:      12,
			MediaDuration: 734.5,
			Chapters: []playback.Chapter{
				{Title: "Introduction", StartTime: 0},
				{Title: "What You Will Build", StartTime: 182.0},
				{Title: "How to Use This Course", StartTime: 471.5},
			},
		},
		{
			Title:       "Course Syllabus",
			Type:        playback.ContentDocument,
			Order:       2,
			AccessLevel: playback.AccessFree,
			Duration:    5,
			Payload:     map[string]interface{}{"format": "pdf", "pages": 8},
		},
		{
			Title:         "HTTP Fundamentals",
			Type:          playback.ContentVideo,
			Order:         3,
			AccessLevel:   playback.AccessPremium,
			Required:      true,
			Duration:      25,
			MediaDuration: 1486.0,
			Chapters: []playback.Chapter{
				{Title: "Request Anatomy", StartTime: 0},
				{Title: "Status Codes", StartTime: 612.0},
				{Title: "Headers in Practice", StartTime: 1044.0},
			},
		},
		{
			Title:       "Knowledge Check: HTTP",
			Type:        playback.ContentQuiz,
			Order:       4,
			AccessLevel: playback.AccessPremium,
			Required:    true,
			Duration:    10,
			Payload: map[string]interface{}{
				"question_count": 5,
				"pass_score":     80,
			},
		},
		{
			Title:       "Build a Health Endpoint",
			Type:        playback.ContentExercise,
			Order:       5,
			AccessLevel: playback.AccessPremium,
			Duration:    30,
			Payload: map[string]interface{}{
				"starter_repo": "https://github.com/coursekit-labs/exercise-health-endpoint",
			},
		},
		{
			Title:       "Discussion: Your First API",
			Type:        playback.ContentDiscussion,
			Order:       6,
			AccessLevel: playback.AccessFree,
			Duration:    15,
		},
		{
			Title:       "Module Feedback",
			Type:        playback.ContentSurvey,
			Order:       7,
			AccessLevel: playback.AccessFree,
			Duration:    5,
		},
	}

	totalMinutes := 0
	for _, c := range contents {
		totalMinutes += c.Duration
	}

	sessionID, _ := uuid.NewV7()
	session := model.Session{
		ID:                sessionID.String(),
		Title:             demoTitle,
		Description:       "A guided session covering HTTP, API design and hands-on backend exercises.",
		EstimatedDuration: totalMinutes,
		TotalContents:     len(contents),
		IsActive:          true,
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&session).Error; err != nil {
			return err
		}

		for _, c := range contents {
			itemID, _ := uuid.NewV7()
			item := model.ContentItem{
				ID:            itemID.String(),
				SessionID:     session.ID,
				Title:         c.Title,
				Type:          c.Type,
				Order:         c.Order,
				AccessLevel:   c.AccessLevel,
				IsFree:        c.AccessLevel == playback.AccessFree,
				Required:      c.Required,
				Duration:      c.Duration,
				MediaDuration: c.MediaDuration,
			}

			if len(c.Chapters) > 0 {
				raw, err := json.Marshal(c.Chapters)
				if err != nil {
					return err
				}
				item.Chapters = raw
			}
			if c.Payload != nil {
				raw, err := json.Marshal(c.Payload)
				if err != nil {
					return err
				}
				item.Payload = raw
			}

			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			log.Printf("Created content item %d: %s (%s)", c.Order, c.Title, c.Type)
		}

		log.Printf("Created session: %s with %d content items", session.Title, len(contents))
		return nil
	})
}
