package model

import (
	"encoding/json"
	"time"
)

// ProgressRecord is the persisted per-learner, per-session completion state.
// CompletedContentIDs is authoritative; the stored percentage is a cache for
// list views and is rewritten from the completed set on every update.
type ProgressRecord struct {
	ID                  string          `json:"id" gorm:"primaryKey"`
	UserID              string          `json:"user_id" gorm:"not null;uniqueIndex:idx_progress_user_session"`
	SessionID           string          `json:"session_id" gorm:"not null;uniqueIndex:idx_progress_user_session"`
	CompletedContentIDs json.RawMessage `json:"completed_content_ids" gorm:"type:text"` // JSON array of content ids
	ProgressPercentage  float64         `json:"progress_percentage"`
	CurrentContentID    string          `json:"current_content_id"`
	TotalListenTime     int             `json:"total_listen_time"` // seconds
	LastAccessedAt      time.Time       `json:"last_accessed_at"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// CompletedIDs decodes the completed set; never fails open, a corrupt blob
// reads as empty.
func (p *ProgressRecord) CompletedIDs() []string {
	if len(p.CompletedContentIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(p.CompletedContentIDs, &ids); err != nil {
		return nil
	}
	return ids
}

// SetCompletedIDs encodes the completed set for storage.
func (p *ProgressRecord) SetCompletedIDs(ids []string) {
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	p.CompletedContentIDs = data
}
