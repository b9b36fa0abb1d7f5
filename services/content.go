package services

import (
	"encoding/json"
	"errors"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/model"
	"github.com/coursekit-labs/session_api/playback"
	"github.com/coursekit-labs/session_api/shared"
)

// ContentService is the authoring side: creating sessions and their content
// items. Learner-facing reads live in SessionService.
type ContentService struct {
	context.DefaultService
	sqlSvc *PostgresService
}

const CONTENT_SVC = "content_svc"

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *ContentService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

func (svc *ContentService) CreateSession(req dto.CreateSessionRequest) (*model.Session, error) {
	session := &model.Session{
		Title:             req.Title,
		Description:       req.Description,
		EstimatedDuration: req.EstimatedDuration,
		IsActive:          true,
	}

	session, err := svc.sqlSvc.CreateSession(session)
	if err != nil {
		return nil, err
	}

	log.WithField("session_id", session.ID).Info("Session created")
	return session, nil
}

func (svc *ContentService) AddContent(sessionID string, req dto.CreateContentRequest) (*model.ContentItem, error) {
	if _, err := svc.sqlSvc.GetSession(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Session not found")
		}
		return nil, err
	}

	contentType := playback.ContentType(req.Type)

	// Order must stay unique inside a session; duplicates would make
	// navigation ambiguous.
	existing, err := svc.sqlSvc.GetSessionContents(sessionID)
	if err != nil {
		return nil, err
	}
	for _, c := range existing {
		if c.Order == req.Order {
			return nil, shared.NewConflictError(nil, "Order already used by another content item")
		}
	}

	accessLevel := playback.AccessLevel(req.AccessLevel)
	if accessLevel == "" {
		accessLevel = playback.AccessFree
	}

	item := &model.ContentItem{
		SessionID:   sessionID,
		Title:       req.Title,
		Type:        contentType,
		Order:       req.Order,
		AccessLevel: accessLevel,
		IsFree:      accessLevel == playback.AccessFree,
		Required:    req.Required,
		Duration:    req.Duration,
		Payload:     req.Payload,
	}

	if len(req.Chapters) > 0 {
		if !contentType.TimeBased() {
			return nil, shared.NewBadRequestError(nil, "Chapters only apply to time-based content")
		}
		data, err := json.Marshal(req.Chapters)
		if err != nil {
			return nil, shared.NewInternalError(err)
		}
		item.Chapters = data
	}

	item, err = svc.sqlSvc.CreateContentItem(item)
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"session_id": sessionID,
		"content_id": item.ID,
		"type":       item.Type,
	}).Info("Content item added")
	return item, nil
}

// ContentTypes reports every supported type and whether it is clock-driven,
// for authoring UIs.
func (svc *ContentService) ContentTypes() []map[string]interface{} {
	types := []playback.ContentType{
		playback.ContentVideo,
		playback.ContentDocument,
		playback.ContentLiveSession,
		playback.ContentQuiz,
		playback.ContentAssignment,
		playback.ContentAudio,
		playback.ContentDiscussion,
		playback.ContentSurvey,
		playback.ContentExercise,
	}

	out := make([]map[string]interface{}, 0, len(types))
	for _, t := range types {
		out = append(out, map[string]interface{}{
			"type":       string(t),
			"time_based": t.TimeBased(),
		})
	}
	return out
}
