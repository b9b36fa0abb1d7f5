package services

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/coursekit-labs/session_api/dto"
	"github.com/coursekit-labs/session_api/model"
	"github.com/coursekit-labs/session_api/playback"
	"github.com/coursekit-labs/session_api/shared"
)

// MediaService stores media files for time-based content and resolves
// playable URLs when the engine loads an item.
type MediaService struct {
	context.DefaultService
	sqlSvc   *PostgresService
	minioSvc *MinIOService
}

const MEDIA_SVC = "media_svc"

// Presigned URLs outlive any plausible single sitting.
const sourceURLExpiry = 24 * time.Hour

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *context.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// UploadContentMedia attaches a media file to a time-based content item and
// records the object key and duration on the item.
func (svc *MediaService) UploadContentMedia(contentID string, file *multipart.FileHeader, durationStr string) (*dto.MediaUploadResponse, error) {
	item, err := svc.sqlSvc.GetContentItem(contentID)
	if err != nil {
		return nil, err
	}

	if !item.Type.TimeBased() {
		return nil, shared.NewBadRequestError(nil, "Content type does not take media")
	}

	switch item.Type {
	case playback.ContentAudio:
		if !svc.isValidAudioFile(file.Filename) {
			return nil, shared.NewBadRequestError(nil, "Invalid audio file format. Supported: MP3, WAV, AAC, M4A, OGG")
		}
		if file.Size > 100*1024*1024 {
			return nil, shared.NewBadRequestError(nil, "Audio file too large. Maximum size: 100MB")
		}
	case playback.ContentVideo:
		if !svc.isValidVideoFile(file.Filename) {
			return nil, shared.NewBadRequestError(nil, "Invalid video file format. Supported: MP4, MOV, WEBM")
		}
		if file.Size > 500*1024*1024 {
			return nil, shared.NewBadRequestError(nil, "Video file too large. Maximum size: 500MB")
		}
	}

	duration := 0.0
	if durationStr != "" {
		duration, err = strconv.ParseFloat(durationStr, 64)
		if err != nil || duration <= 0 {
			return nil, shared.NewBadRequestError(err, "Invalid media duration")
		}
	}

	ext := filepath.Ext(file.Filename)
	objectName := fmt.Sprintf("%s/%s/%s_%d%s",
		strings.ToLower(string(item.Type)), item.SessionID, item.ID, time.Now().Unix(), ext)

	src, err := file.Open()
	if err != nil {
		return nil, shared.NewInternalError(err)
	}
	defer src.Close()

	uploadInfo, err := svc.minioSvc.UploadFile(objectName, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, shared.NewInternalError(err)
	}

	oldKey := item.MediaObjectKey

	item.MediaObjectKey = objectName
	if duration > 0 {
		item.MediaDuration = duration
	}
	if err := svc.sqlSvc.UpdateContentItem(item); err != nil {
		svc.minioSvc.DeleteFile(objectName)
		return nil, err
	}

	if oldKey != "" && oldKey != objectName {
		if err := svc.minioSvc.DeleteFile(oldKey); err != nil {
			log.Printf("Failed to delete replaced media %s: %v", oldKey, err)
		}
	}

	log.Printf("Uploaded media for content %s: %s", item.ID, uploadInfo.Key)

	return &dto.MediaUploadResponse{
		ContentID: item.ID,
		ObjectKey: objectName,
		FileName:  file.Filename,
		FileSize:  file.Size,
		Duration:  item.MediaDuration,
	}, nil
}

// ResolveSource returns the playable URL and duration for a content item.
// The engine calls this while a load is in flight.
func (svc *MediaService) ResolveSource(item *model.ContentItem) (url string, duration float64, err error) {
	if item.MediaObjectKey == "" {
		return "", 0, shared.NewNotFoundError(nil, "Content has no media attached")
	}

	url, err = svc.minioSvc.GetFileURL(item.MediaObjectKey, sourceURLExpiry)
	if err != nil {
		return "", 0, shared.NewInternalError(err)
	}

	return url, item.MediaDuration, nil
}

func (svc *MediaService) isValidVideoFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp4", ".mov", ".mkv", ".webm"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}

func (svc *MediaService) isValidAudioFile(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	validExts := []string{".mp3", ".wav", ".aac", ".m4a", ".ogg"}

	for _, validExt := range validExts {
		if ext == validExt {
			return true
		}
	}
	return false
}
