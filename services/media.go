package services

import (
	"bytes"
	"fmt"
	"path"
	"strings"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/edugram-labs/edugram-api/shared"
)

// MediaService stores course artwork in object storage and hands back
// presigned URLs.
type MediaService struct {
	appContext.DefaultService
	minioSvc *MinIOService
	sqlSvc   *PostgresService
}

const MEDIA_SVC = "media_svc"

const (
	maxThumbnailBytes = 5 << 20
	thumbnailURLTTL   = 7 * 24 * time.Hour
)

var allowedThumbnailTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

func (svc MediaService) Id() string {
	return MEDIA_SVC
}

func (svc *MediaService) Configure(ctx *appContext.Context) error {
	return svc.DefaultService.Configure(ctx)
}

func (svc *MediaService) Start() error {
	svc.minioSvc = svc.Service(MINIO_SVC).(*MinIOService)
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// UploadCourseThumbnail validates and stores a thumbnail image, records the
// presigned URL on the course row, and returns the URL.
func (svc *MediaService) UploadCourseThumbnail(courseID, contentType string, data []byte) (string, int64, error) {
	ext, ok := allowedThumbnailTypes[strings.ToLower(contentType)]
	if !ok {
		return "", 0, shared.NewBadRequestError(nil, "thumbnail must be a jpeg, png or webp image")
	}
	if len(data) == 0 {
		return "", 0, shared.NewBadRequestError(nil, "thumbnail file is empty")
	}
	if len(data) > maxThumbnailBytes {
		return "", 0, shared.NewBadRequestError(nil, "thumbnail exceeds the 5MB limit")
	}

	id, err := uuid.NewV7()
	if err != nil {
		return "", 0, err
	}
	objectName := path.Join("courses", courseID, fmt.Sprintf("thumbnail-%s%s", id.String(), ext))

	info, err := svc.minioSvc.UploadFile(objectName, bytes.NewReader(data), int64(len(data)), contentType)
	if err != nil {
		log.WithError(err).WithField("course_id", courseID).Error("Thumbnail upload failed")
		return "", 0, shared.NewInternalError(err, "failed to store thumbnail")
	}

	url, err := svc.minioSvc.GetFileURL(objectName, thumbnailURLTTL)
	if err != nil {
		return "", 0, shared.NewInternalError(err, "failed to generate thumbnail URL")
	}

	if err := svc.sqlSvc.SetCourseThumbnail(courseID, url); err != nil {
		return "", 0, err
	}

	log.WithFields(log.Fields{
		"course_id": courseID,
		"object":    objectName,
		"size":      info.Size,
	}).Info("Course thumbnail stored")

	return url, info.Size, nil
}
