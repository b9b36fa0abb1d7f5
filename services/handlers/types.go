package handlers

import (
	"mime/multipart"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/model"
)

type AuthServiceInterface interface {
	Register(req dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req dto.LoginRequest) (*dto.LoginResponse, error)
	GetProfile(userID string) (*dto.UserInfo, error)
}

type SessionServiceInterface interface {
	ListSessions(userID string) (*dto.SessionCollectionResponse, error)
	GetSessionDetail(userID, sessionID string) (*dto.SessionDetailResponse, error)
	StartSession(userID, sessionID string, req dto.StartSessionRequest) (*dto.SessionStateResponse, error)
	CloseSession(userID, sessionID string) error
	GetSessionState(userID, sessionID string) (*dto.SessionStateResponse, error)
	SelectContent(userID, sessionID, contentID string) (*dto.SessionStateResponse, error)
	NextContent(userID, sessionID string) (*dto.SessionStateResponse, error)
	PreviousContent(userID, sessionID string) (*dto.SessionStateResponse, error)
	RestartSession(userID, sessionID string) (*dto.SessionStateResponse, error)
	CompleteCurrentContent(userID, sessionID string) (*dto.SessionStateResponse, error)
	GetProgress(userID, sessionID string) (*dto.ProgressResponse, error)

	LoadMedia(userID, sessionID string) (*dto.PlaybackStateResponse, error)
	Play(userID, sessionID string) (*dto.PlaybackStateResponse, error)
	Pause(userID, sessionID string) (*dto.PlaybackStateResponse, error)
	Seek(userID, sessionID string, position float64) (*dto.PlaybackStateResponse, error)
	SetVolume(userID, sessionID string, volume float64) (*dto.PlaybackStateResponse, error)
	ToggleMute(userID, sessionID string) (*dto.PlaybackStateResponse, error)
	SetSpeed(userID, sessionID string, rate float64) (*dto.PlaybackStateResponse, error)
	ToggleLoop(userID, sessionID string) (*dto.PlaybackStateResponse, error)
	SkipChapter(userID, sessionID string, direction int) (*dto.PlaybackStateResponse, error)
	Heartbeat(userID, sessionID string, elapsed float64) (*dto.PlaybackStateResponse, error)
}

type ContentServiceInterface interface {
	CreateSession(req dto.CreateSessionRequest) (*model.Session, error)
	AddContent(sessionID string, req dto.CreateContentRequest) (*model.ContentItem, error)
	ContentTypes() []map[string]interface{}
}

type MediaServiceInterface interface {
	UploadContentMedia(contentID string, file *multipart.FileHeader, durationStr string) (*dto.MediaUploadResponse, error)
}
