package dto

import (
	"encoding/json"

	"github.com/coursekit-labs/session_api/playback"
)

// Session DTOs

type SessionSummaryResponse struct {
	ID                 string  `json:"id"`
	Title              string  `json:"title"`
	Description        string  `json:"description"`
	EstimatedDuration  int     `json:"estimated_duration"`
	TotalContents      int     `json:"total_contents"`
	ProgressPercentage float64 `json:"progress_percentage"`
}

type SessionCollectionResponse struct {
	Sessions []SessionSummaryResponse `json:"sessions"`
	Total    int                      `json:"total"`
}

type ContentItemResponse struct {
	ID          string             `json:"id"`
	SessionID   string             `json:"session_id"`
	Title       string             `json:"title"`
	Type        string             `json:"type"`
	Order       int                `json:"order"`
	AccessLevel string             `json:"access_level"`
	IsFree      bool               `json:"is_free"`
	Required    bool               `json:"required"`
	Duration    int                `json:"duration"`
	Chapters    []playback.Chapter `json:"chapters,omitempty"`
	Completed   bool               `json:"completed"`
}

type SessionDetailResponse struct {
	ID                string                `json:"id"`
	Title             string                `json:"title"`
	Description       string                `json:"description"`
	EstimatedDuration int                   `json:"estimated_duration"`
	TotalContents     int                   `json:"total_contents"`
	Contents          []ContentItemResponse `json:"contents"`
}

// SessionStateResponse is the engine view returned by every navigation and
// completion endpoint.
type SessionStateResponse struct {
	SessionID          string                 `json:"session_id"`
	State              string                 `json:"state"`
	CurrentContentID   string                 `json:"current_content_id"`
	CurrentContentType string                 `json:"current_content_type"`
	CanGoNext          bool                   `json:"can_go_next"`
	CanGoPrevious      bool                   `json:"can_go_previous"`
	ProgressPercentage int                    `json:"progress_percentage"`
	CompletedContents  []string               `json:"completed_contents"`
	Playback           *PlaybackStateResponse `json:"playback,omitempty"`
	Options            playback.Options       `json:"options"`
}

type StartSessionRequest struct {
	AutoPlay          bool  `json:"auto_play"`
	TrackProgress     *bool `json:"track_progress,omitempty"` // default true
	AllowNotes        bool  `json:"allow_notes"`
	AllowBookmarks    bool  `json:"allow_bookmarks"`
	ShowPrerequisites bool  `json:"show_prerequisites"`
	EnableComments    bool  `json:"enable_comments"`
	RequiredOnly      bool  `json:"required_only"`
}

type SelectContentRequest struct {
	ContentID string `json:"content_id" validate:"required"`
}

func (r SelectContentRequest) Validate() error {
	return GetValidator().Struct(r)
}

type ProgressResponse struct {
	SessionID           string   `json:"session_id"`
	ProgressPercentage  int      `json:"progress_percentage"`
	CompletedContentIDs []string `json:"completed_content_ids"`
	CurrentContentID    string   `json:"current_content_id"`
	TotalListenTime     int      `json:"total_listen_time"`
	SessionState        string   `json:"session_state"`
}

// Authoring DTOs

type CreateSessionRequest struct {
	Title             string `json:"title" validate:"required,min=3,max=200"`
	Description       string `json:"description" validate:"max=2000"`
	EstimatedDuration int    `json:"estimated_duration" validate:"min=0"`
}

func (r CreateSessionRequest) Validate() error {
	return GetValidator().Struct(r)
}

type CreateContentRequest struct {
	Title       string             `json:"title" validate:"required,min=1,max=200"`
	Type        string             `json:"type" validate:"required,content_type"`
	Order       int                `json:"order" validate:"min=0"`
	AccessLevel string             `json:"access_level" validate:"omitempty,oneof=FREE PREMIUM"`
	Required    bool               `json:"required"`
	Duration    int                `json:"duration" validate:"min=0"`
	Chapters    []playback.Chapter `json:"chapters,omitempty"`
	Payload     json.RawMessage    `json:"payload,omitempty"`
}

func (r CreateContentRequest) Validate() error {
	return GetValidator().Struct(r)
}
