package model

import (
	"encoding/json"
	"time"

	"github.com/coursekit-labs/session_api/playback"
)

// Session is an ordered collection of content items presented to a learner
// as one coherent unit.
type Session struct {
	ID                string    `json:"id" gorm:"primaryKey"`
	Title             string    `json:"title" gorm:"not null"`
	Description       string    `json:"description" gorm:"type:text"`
	EstimatedDuration int       `json:"estimated_duration"` // minutes
	TotalContents     int       `json:"total_contents"`
	IsActive          bool      `json:"is_active" gorm:"default:true"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Relationship
	Contents []ContentItem `json:"contents" gorm:"foreignKey:SessionID"`
}

// ContentItem is one unit of session content. Order is the sole ordering
// key: unique within a session, no contiguity required.
type ContentItem struct {
	ID          string               `json:"id" gorm:"primaryKey"`
	SessionID   string               `json:"session_id" gorm:"not null;index"`
	Title       string               `json:"title" gorm:"not null"`
	Type        playback.ContentType `json:"type" gorm:"not null"`
	Order       int                  `json:"order" gorm:"not null"` // Item order within session
	AccessLevel playback.AccessLevel `json:"access_level" gorm:"default:FREE"`
	IsFree      bool                 `json:"is_free" gorm:"default:true"`
	Required    bool                 `json:"required" gorm:"default:false"`
	Duration    int                  `json:"duration"` // estimated minutes

	// Media (time-based content only)
	MediaObjectKey string          `json:"media_object_key"`
	MediaDuration  float64         `json:"media_duration"` // seconds
	Chapters       json.RawMessage `json:"chapters" gorm:"type:text"` // JSON array of chapters

	Payload json.RawMessage `json:"payload" gorm:"type:text"` // type-specific, opaque to the engine

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaybackItem maps the stored row to the engine's view of it.
func (c *ContentItem) PlaybackItem() playback.Item {
	return playback.Item{
		ID:              c.ID,
		SessionID:       c.SessionID,
		Type:            c.Type,
		Order:           c.Order,
		AccessLevel:     c.AccessLevel,
		Free:            c.IsFree,
		Required:        c.Required,
		DurationMinutes: c.Duration,
		Payload:         c.Payload,
	}
}

// ParseChapters decodes the stored chapter list; nil when none are set.
func (c *ContentItem) ParseChapters() ([]playback.Chapter, error) {
	if len(c.Chapters) == 0 {
		return nil, nil
	}
	var chapters []playback.Chapter
	if err := json.Unmarshal(c.Chapters, &chapters); err != nil {
		return nil, err
	}
	return chapters, nil
}
