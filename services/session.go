package services

import (
	gocontext "context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/model"
	"github.com/coursekit-labs/session_api/playback"
	"github.com/coursekit-labs/session_api/shared"
)

// SessionService hosts the live playback engine. One orchestrator lives in
// memory per (user, session) pair; everything durable goes through Postgres
// and Redis via the engine's listener interface.
type SessionService struct {
	context.DefaultService

	sqlSvc        *PostgresService
	redisSvc      *RedisService
	mediaSvc      *MediaService
	monitoringSvc *MonitoringService

	registry *playback.Registry

	mu   sync.RWMutex
	live map[string]*liveSession
}

// liveSession serializes commands for one orchestrator. The engine core is
// not goroutine-safe for controller commands, so every HTTP-driven operation
// takes the session lock first.
type liveSession struct {
	mu sync.Mutex

	userID    string
	sessionID string
	orch      *playback.Orchestrator
	items     map[string]*model.ContentItem
	sourceURL string
}

const SESSION_SVC = "session_svc"

func (svc SessionService) Id() string {
	return SESSION_SVC
}

func (svc *SessionService) Configure(ctx *context.Context) error {
	svc.live = make(map[string]*liveSession)
	svc.registry = playback.NewDefaultRegistry()
	return svc.DefaultService.Configure(ctx)
}

func (svc *SessionService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redisSvc = svc.Service(REDIS_SVC).(*RedisService)
	svc.mediaSvc = svc.Service(MEDIA_SVC).(*MediaService)
	svc.monitoringSvc = svc.Service(MONITORING_SVC).(*MonitoringService)
	return nil
}

func (svc *SessionService) Shutdown() {
	svc.mu.Lock()
	sessions := make([]*liveSession, 0, len(svc.live))
	for _, ls := range svc.live {
		sessions = append(sessions, ls)
	}
	svc.live = make(map[string]*liveSession)
	svc.mu.Unlock()

	for _, ls := range sessions {
		ls.mu.Lock()
		svc.persistProgress(ls)
		ls.orch.Teardown()
		ls.mu.Unlock()
	}
}

func liveKey(userID, sessionID string) string {
	return fmt.Sprintf("%s:%s", userID, sessionID)
}

// sessionOptions maps the request onto engine options; every recognized
// option passes through unchanged, TrackProgress defaults to true.
func sessionOptions(req dto.StartSessionRequest) playback.Options {
	opts := playback.DefaultOptions()
	opts.AutoPlay = req.AutoPlay
	opts.AllowNotes = req.AllowNotes
	opts.AllowBookmarks = req.AllowBookmarks
	opts.ShowPrerequisites = req.ShowPrerequisites
	opts.EnableComments = req.EnableComments
	opts.RequiredOnly = req.RequiredOnly
	if req.TrackProgress != nil {
		opts.TrackProgress = *req.TrackProgress
	}
	return opts
}

// ==================== SESSION CATALOG ====================

func (svc *SessionService) ListSessions(userID string) (*dto.SessionCollectionResponse, error) {
	sessions, err := svc.sqlSvc.GetActiveSessions()
	if err != nil {
		return nil, err
	}

	records, err := svc.sqlSvc.GetUserProgress(userID)
	if err != nil {
		return nil, err
	}
	progressBySession := make(map[string]float64, len(records))
	for _, rec := range records {
		progressBySession[rec.SessionID] = rec.ProgressPercentage
	}

	resp := &dto.SessionCollectionResponse{
		Sessions: make([]dto.SessionSummaryResponse, 0, len(sessions)),
		Total:    len(sessions),
	}
	for _, s := range sessions {
		resp.Sessions = append(resp.Sessions, dto.SessionSummaryResponse{
			ID:                 s.ID,
			Title:              s.Title,
			Description:        s.Description,
			EstimatedDuration:  s.EstimatedDuration,
			TotalContents:      s.TotalContents,
			ProgressPercentage: progressBySession[s.ID],
		})
	}
	return resp, nil
}

func (svc *SessionService) GetSessionDetail(userID, sessionID string) (*dto.SessionDetailResponse, error) {
	session, err := svc.sqlSvc.GetSessionWithContents(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Session not found")
		}
		return nil, err
	}

	completed := svc.completedSet(userID, sessionID)

	resp := &dto.SessionDetailResponse{
		ID:                session.ID,
		Title:             session.Title,
		Description:       session.Description,
		EstimatedDuration: session.EstimatedDuration,
		TotalContents:     session.TotalContents,
		Contents:          make([]dto.ContentItemResponse, 0, len(session.Contents)),
	}
	for i := range session.Contents {
		c := &session.Contents[i]
		chapters, _ := c.ParseChapters()
		resp.Contents = append(resp.Contents, dto.ContentItemResponse{
			ID:          c.ID,
			SessionID:   c.SessionID,
			Title:       c.Title,
			Type:        string(c.Type),
			Order:       c.Order,
			AccessLevel: string(c.AccessLevel),
			IsFree:      c.IsFree,
			Required:    c.Required,
			Duration:    c.Duration,
			Chapters:    chapters,
			Completed:   completed[c.ID],
		})
	}
	return resp, nil
}

// completedSet prefers the live engine; otherwise the persisted record.
func (svc *SessionService) completedSet(userID, sessionID string) map[string]bool {
	set := make(map[string]bool)

	svc.mu.RLock()
	ls := svc.live[liveKey(userID, sessionID)]
	svc.mu.RUnlock()

	if ls != nil {
		for _, id := range ls.orch.CompletedIDs() {
			set[id] = true
		}
		return set
	}

	rec, err := svc.sqlSvc.GetProgress(userID, sessionID)
	if err != nil {
		return set
	}
	for _, id := range rec.CompletedIDs() {
		set[id] = true
	}
	return set
}

// ==================== SESSION LIFECYCLE ====================

// StartSession brings a session live for one learner, resuming persisted
// progress when there is any. Starting an already-live session returns its
// current state.
func (svc *SessionService) StartSession(userID, sessionID string, req dto.StartSessionRequest) (*dto.SessionStateResponse, error) {
	key := liveKey(userID, sessionID)

	svc.mu.RLock()
	existing := svc.live[key]
	svc.mu.RUnlock()
	if existing != nil {
		existing.mu.Lock()
		defer existing.mu.Unlock()
		svc.ensureLoadedLocked(existing)
		return svc.stateResponseLocked(existing), nil
	}

	session, err := svc.sqlSvc.GetSessionWithContents(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "Session not found")
		}
		return nil, err
	}
	if len(session.Contents) == 0 {
		return nil, shared.NewBadRequestError(nil, "Session has no content")
	}

	opts := sessionOptions(req)

	items := make([]playback.Item, 0, len(session.Contents))
	byID := make(map[string]*model.ContentItem, len(session.Contents))
	for i := range session.Contents {
		c := &session.Contents[i]
		items = append(items, c.PlaybackItem())
		byID[c.ID] = c
	}

	ls := &liveSession{
		userID:    userID,
		sessionID: sessionID,
		orch:      playback.NewOrchestrator(sessionID, items, svc.registry, opts, nil),
		items:     byID,
	}

	rec, err := svc.sqlSvc.GetProgress(userID, sessionID)
	if err == nil {
		ls.orch.Resume(rec.CompletedIDs(), rec.CurrentContentID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ls.orch.Subscribe(&progressPersister{svc: svc, ls: ls})

	svc.mu.Lock()
	if raced := svc.live[key]; raced != nil {
		svc.mu.Unlock()
		raced.mu.Lock()
		defer raced.mu.Unlock()
		return svc.stateResponseLocked(raced), nil
	}
	svc.live[key] = ls
	svc.mu.Unlock()

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := ls.orch.Start(); err != nil {
		svc.dropLive(key)
		return nil, shared.NewBadRequestError(err, "Could not start session")
	}

	svc.monitoringSvc.SessionOpened()
	svc.ensureLoadedLocked(ls)

	log.WithFields(log.Fields{
		"user_id":    userID,
		"session_id": sessionID,
	}).Info("Session started")

	return svc.stateResponseLocked(ls), nil
}

// CloseSession persists progress and releases the in-memory engine.
func (svc *SessionService) CloseSession(userID, sessionID string) error {
	key := liveKey(userID, sessionID)

	svc.mu.Lock()
	ls := svc.live[key]
	delete(svc.live, key)
	svc.mu.Unlock()

	if ls == nil {
		return shared.NewNotFoundError(nil, "Session is not live")
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()
	svc.saveResumePositionLocked(ls)
	svc.persistProgress(ls)
	ls.orch.Teardown()
	svc.monitoringSvc.SessionClosed()
	return nil
}

func (svc *SessionService) dropLive(key string) {
	svc.mu.Lock()
	delete(svc.live, key)
	svc.mu.Unlock()
}

func (svc *SessionService) getLive(userID, sessionID string) (*liveSession, error) {
	svc.mu.RLock()
	ls := svc.live[liveKey(userID, sessionID)]
	svc.mu.RUnlock()
	if ls == nil {
		return nil, shared.NewNotFoundError(nil, "Session is not live; start it first")
	}
	return ls, nil
}

// ==================== NAVIGATION ====================

func (svc *SessionService) SelectContent(userID, sessionID, contentID string) (*dto.SessionStateResponse, error) {
	return svc.withLive(userID, sessionID, func(ls *liveSession) error {
		svc.saveResumePositionLocked(ls)
		if err := ls.orch.SelectContent(contentID); err != nil {
			if errors.Is(err, playback.ErrContentNotFound) {
				return shared.NewNotFoundError(err, "Content not found in session")
			}
			return shared.NewBadRequestError(err, "Could not select content")
		}
		return nil
	})
}

func (svc *SessionService) NextContent(userID, sessionID string) (*dto.SessionStateResponse, error) {
	return svc.withLive(userID, sessionID, func(ls *liveSession) error {
		svc.saveResumePositionLocked(ls)
		return ls.orch.Next()
	})
}

func (svc *SessionService) PreviousContent(userID, sessionID string) (*dto.SessionStateResponse, error) {
	return svc.withLive(userID, sessionID, func(ls *liveSession) error {
		svc.saveResumePositionLocked(ls)
		return ls.orch.Previous()
	})
}

func (svc *SessionService) RestartSession(userID, sessionID string) (*dto.SessionStateResponse, error) {
	return svc.withLive(userID, sessionID, func(ls *liveSession) error {
		svc.saveResumePositionLocked(ls)
		return ls.orch.Restart()
	})
}

// CompleteCurrentContent records an explicit completion action, the path for
// content types that have no playback clock.
func (svc *SessionService) CompleteCurrentContent(userID, sessionID string) (*dto.SessionStateResponse, error) {
	return svc.withLive(userID, sessionID, func(ls *liveSession) error {
		return ls.orch.MarkCurrentComplete()
	})
}

func (svc *SessionService) GetSessionState(userID, sessionID string) (*dto.SessionStateResponse, error) {
	return svc.withLive(userID, sessionID, func(ls *liveSession) error {
		return nil
	})
}

// withLive runs one command under the session lock, reloads media for the
// resulting current item if needed, and snapshots the state.
func (svc *SessionService) withLive(userID, sessionID string, fn func(ls *liveSession) error) (*dto.SessionStateResponse, error) {
	ls, err := svc.getLive(userID, sessionID)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := fn(ls); err != nil {
		return nil, err
	}
	svc.ensureLoadedLocked(ls)
	return svc.stateResponseLocked(ls), nil
}

// ==================== PLAYBACK COMMANDS ====================

func (svc *SessionService) withController(userID, sessionID string, fn func(ls *liveSession, ctrl *playback.Controller) error) (*dto.PlaybackStateResponse, error) {
	ls, err := svc.getLive(userID, sessionID)
	if err != nil {
		return nil, err
	}

	ls.mu.Lock()
	defer ls.mu.Unlock()

	ctrl := ls.orch.Controller()
	if ctrl == nil {
		return nil, shared.NewBadRequestError(nil, "Current content is not time-based")
	}

	if err := fn(ls, ctrl); err != nil {
		var invalid *playback.InvalidStateError
		if errors.As(err, &invalid) {
			svc.monitoringSvc.RecordPlaybackError("invalid_state")
			return nil, shared.NewConflictError(err, err.Error())
		}
		return nil, shared.NewBadRequestError(err, err.Error())
	}

	return svc.playbackResponseLocked(ls, ctrl), nil
}

// LoadMedia retries a failed load, or kicks the initial one if the engine has
// not resolved it yet.
func (svc *SessionService) LoadMedia(userID, sessionID string) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		svc.ensureLoadedLocked(ls)
		if err := ctrl.Err(); err != nil {
			return err
		}
		return nil
	})
}

func (svc *SessionService) Play(userID, sessionID string) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.Play()
	})
}

func (svc *SessionService) Pause(userID, sessionID string) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		if err := ctrl.Pause(); err != nil {
			return err
		}
		svc.saveResumePositionLocked(ls)
		return nil
	})
}

func (svc *SessionService) Seek(userID, sessionID string, position float64) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.Seek(position)
	})
}

func (svc *SessionService) SetVolume(userID, sessionID string, volume float64) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.SetVolume(volume)
	})
}

func (svc *SessionService) ToggleMute(userID, sessionID string) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.ToggleMute()
	})
}

func (svc *SessionService) SetSpeed(userID, sessionID string, rate float64) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.SetSpeed(rate)
	})
}

func (svc *SessionService) ToggleLoop(userID, sessionID string) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.ToggleLoop()
	})
}

func (svc *SessionService) SkipChapter(userID, sessionID string, direction int) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		return ctrl.SkipChapter(direction)
	})
}

// Heartbeat advances the playback clock by the client-reported wall seconds
// and accounts the listen time.
func (svc *SessionService) Heartbeat(userID, sessionID string, elapsed float64) (*dto.PlaybackStateResponse, error) {
	return svc.withController(userID, sessionID, func(ls *liveSession, ctrl *playback.Controller) error {
		if err := ctrl.Advance(elapsed); err != nil {
			return err
		}

		svc.monitoringSvc.RecordListenTime(elapsed)
		if err := svc.sqlSvc.AddListenTime(userID, sessionID, int(elapsed+0.5)); err != nil {
			log.WithError(err).Warn("Failed to persist listen time")
		}
		svc.saveResumePositionLocked(ls)
		return nil
	})
}

// ==================== PROGRESS ====================

func (svc *SessionService) GetProgress(userID, sessionID string) (*dto.ProgressResponse, error) {
	svc.mu.RLock()
	ls := svc.live[liveKey(userID, sessionID)]
	svc.mu.RUnlock()

	if ls != nil {
		ls.mu.Lock()
		defer ls.mu.Unlock()
		resp := &dto.ProgressResponse{
			SessionID:           sessionID,
			ProgressPercentage:  int(ls.orch.Percentage() + 0.5),
			CompletedContentIDs: ls.orch.CompletedIDs(),
			SessionState:        string(ls.orch.State()),
		}
		if cur, ok := ls.orch.CurrentItem(); ok {
			resp.CurrentContentID = cur.ID
		}
		if rec, err := svc.sqlSvc.GetProgress(userID, sessionID); err == nil {
			resp.TotalListenTime = rec.TotalListenTime
		}
		return resp, nil
	}

	ctx := gocontext.Background()
	cached := &dto.ProgressResponse{}
	if err := svc.redisSvc.GetCachedProgress(ctx, userID, sessionID, cached); err == nil && cached.SessionID != "" {
		return cached, nil
	}

	rec, err := svc.sqlSvc.GetProgress(userID, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(err, "No progress for this session")
		}
		return nil, err
	}

	resp := &dto.ProgressResponse{
		SessionID:           sessionID,
		ProgressPercentage:  int(rec.ProgressPercentage + 0.5),
		CompletedContentIDs: rec.CompletedIDs(),
		CurrentContentID:    rec.CurrentContentID,
		TotalListenTime:     rec.TotalListenTime,
		SessionState:        string(playback.SessionInProgress),
	}
	if rec.ProgressPercentage >= 100 {
		resp.SessionState = string(playback.SessionCompleted)
	}
	if err := svc.redisSvc.CacheProgress(ctx, userID, sessionID, resp); err != nil {
		log.WithError(err).Debug("Failed to cache progress snapshot")
	}
	return resp, nil
}

// persistProgress rewrites the durable record from the live engine state.
func (svc *SessionService) persistProgress(ls *liveSession) {
	completed := ls.orch.CompletedIDs()
	percentage := ls.orch.Percentage()
	currentID := ""
	if cur, ok := ls.orch.CurrentItem(); ok {
		currentID = cur.ID
	}

	rec, err := svc.sqlSvc.GetProgress(ls.userID, ls.sessionID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.WithError(err).Error("Failed to read progress record")
			return
		}
		rec = &model.ProgressRecord{
			UserID:    ls.userID,
			SessionID: ls.sessionID,
		}
		rec.SetCompletedIDs(completed)
		rec.ProgressPercentage = percentage
		rec.CurrentContentID = currentID
		rec.LastAccessedAt = time.Now()
		if _, err := svc.sqlSvc.CreateProgress(rec); err != nil {
			log.WithError(err).Error("Failed to create progress record")
		}
	} else {
		rec.SetCompletedIDs(completed)
		rec.ProgressPercentage = percentage
		rec.CurrentContentID = currentID
		rec.LastAccessedAt = time.Now()
		if err := svc.sqlSvc.UpdateProgress(rec); err != nil {
			log.WithError(err).Error("Failed to update progress record")
		}
	}

	if err := svc.redisSvc.InvalidateProgress(gocontext.Background(), ls.userID, ls.sessionID); err != nil {
		log.WithError(err).Debug("Failed to invalidate progress cache")
	}
}

// ==================== LOADING ====================

// ensureLoadedLocked resolves media for the current item when the active
// controller is waiting for a source. Resolution is synchronous here; the
// deferred controller states still matter because a strategy mount and its
// load are separate steps, and a failed resolve leaves an explicit retry
// path.
func (svc *SessionService) ensureLoadedLocked(ls *liveSession) {
	ctrl := ls.orch.Controller()
	if ctrl == nil {
		ls.sourceURL = ""
		return
	}
	if ctrl.Status() != playback.StatusIdle && ctrl.Status() != playback.StatusErrored {
		return
	}

	cur, ok := ls.orch.CurrentItem()
	if !ok {
		return
	}
	item := ls.items[cur.ID]
	if item == nil {
		return
	}

	ls.sourceURL = ""
	url, duration, err := svc.mediaSvc.ResolveSource(item)
	if err != nil {
		_ = ctrl.Load(item.MediaObjectKey)
		_ = ctrl.FailLoad(err)
		svc.monitoringSvc.RecordPlaybackError("load")
		log.WithError(err).WithField("content_id", item.ID).Warn("Media resolution failed")
		return
	}

	if err := ctrl.Load(url); err != nil {
		return
	}

	chapters, err := item.ParseChapters()
	if err != nil {
		_ = ctrl.FailLoad(err)
		svc.monitoringSvc.RecordPlaybackError("chapters")
		return
	}

	if err := ctrl.CompleteLoad(playback.MediaInfo{Duration: duration, Chapters: chapters}); err != nil {
		return
	}
	ls.sourceURL = url

	// Pick up where the learner left off inside this item.
	pos, err := svc.redisSvc.GetResumePosition(gocontext.Background(), ls.userID, item.ID)
	if err == nil && pos > 0 && pos < duration {
		_ = ctrl.Seek(pos)
	}

	if ls.orch.Options().AutoPlay {
		_ = ctrl.Play()
	}
}

func (svc *SessionService) saveResumePositionLocked(ls *liveSession) {
	ctrl := ls.orch.Controller()
	if ctrl == nil {
		return
	}
	cur, ok := ls.orch.CurrentItem()
	if !ok {
		return
	}

	ctx := gocontext.Background()
	switch ctrl.Status() {
	case playback.StatusPlaying, playback.StatusPaused:
		if err := svc.redisSvc.SetResumePosition(ctx, ls.userID, cur.ID, ctrl.CurrentTime()); err != nil {
			log.WithError(err).Debug("Failed to save resume position")
		}
	case playback.StatusEnded:
		if err := svc.redisSvc.ClearResumePosition(ctx, ls.userID, cur.ID); err != nil {
			log.WithError(err).Debug("Failed to clear resume position")
		}
	}
}

// ==================== RESPONSES ====================

func (svc *SessionService) stateResponseLocked(ls *liveSession) *dto.SessionStateResponse {
	resp := &dto.SessionStateResponse{
		SessionID:          ls.sessionID,
		State:              string(ls.orch.State()),
		CanGoNext:          ls.orch.CanGoNext(),
		CanGoPrevious:      ls.orch.CanGoPrevious(),
		ProgressPercentage: int(ls.orch.Percentage() + 0.5),
		CompletedContents:  ls.orch.CompletedIDs(),
		Options:            ls.orch.Options(),
	}
	if cur, ok := ls.orch.CurrentItem(); ok {
		resp.CurrentContentID = cur.ID
		resp.CurrentContentType = string(cur.Type)
	}
	if ctrl := ls.orch.Controller(); ctrl != nil {
		resp.Playback = svc.playbackResponseLocked(ls, ctrl)
	}
	return resp
}

func (svc *SessionService) playbackResponseLocked(ls *liveSession, ctrl *playback.Controller) *dto.PlaybackStateResponse {
	snap := ctrl.Snapshot()
	resp := &dto.PlaybackStateResponse{
		Status:       string(snap.Status),
		CurrentTime:  snap.CurrentTime,
		Duration:     snap.Duration,
		Percent:      int(snap.Percent + 0.5),
		Volume:       snap.Volume,
		Muted:        snap.Muted,
		Rate:         snap.Rate,
		Looping:      snap.Looping,
		ChapterIndex: snap.ChapterIndex,
		ListenTime:   snap.ListenTimeSeconds,
		SourceURL:    ls.sourceURL,
	}
	if cur, ok := ls.orch.CurrentItem(); ok {
		resp.ContentID = cur.ID
	}
	if snap.ChapterIndex >= 0 && snap.ChapterIndex < len(snap.Chapters) {
		resp.ChapterTitle = snap.Chapters[snap.ChapterIndex].Title
	}
	if err := ctrl.Err(); err != nil {
		resp.Error = err.Error()
	}
	return resp
}

// ==================== ENGINE LISTENER ====================

// progressPersister bridges engine events into Postgres, Redis and the
// metrics registry. It runs on the dispatch path, outside the engine lock.
type progressPersister struct {
	svc *SessionService
	ls  *liveSession
}

func (p *progressPersister) OnProgress(contentID string, percent float64) {
	p.svc.monitoringSvc.RecordProgressEvent()
}

func (p *progressPersister) OnContentComplete(contentID string) {
	if item := p.ls.items[contentID]; item != nil {
		p.svc.monitoringSvc.RecordContentCompletion(string(item.Type))
	}
	if err := p.svc.redisSvc.ClearResumePosition(gocontext.Background(), p.ls.userID, contentID); err != nil {
		log.WithError(err).Debug("Failed to clear resume position")
	}
	p.svc.persistProgress(p.ls)
}

func (p *progressPersister) OnSessionComplete(sessionID string) {
	p.svc.monitoringSvc.RecordSessionCompletion()
	p.svc.persistProgress(p.ls)
	log.WithFields(log.Fields{
		"user_id":    p.ls.userID,
		"session_id": sessionID,
	}).Info("Session completed")
}

func (p *progressPersister) OnContentChange(contentID string) {
	p.svc.persistProgress(p.ls)
}
