package services

import (
	ctx "context"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"

	"github.com/brainwave-labs/quest_api/dto"
	"github.com/brainwave-labs/quest_api/shared"
)

// BadgeService stores achievement badge images in MinIO and records the
// resulting URL on the catalog entry.
type BadgeService struct {
	context.DefaultService

	achievementSvc *AchievementService

	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const BADGE_SVC = "badge_svc"

var badgeContentTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/svg+xml": true,
	"image/webp":    true,
}

func (svc BadgeService) Id() string {
	return BADGE_SVC
}

func (svc *BadgeService) Configure(ctx *context.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	if svc.accessKey == "" {
		svc.accessKey = "admin"
	}

	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	if svc.secretKey == "" {
		svc.secretKey = "password123"
	}

	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "quest-badges"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *BadgeService) Start() error {
	svc.achievementSvc = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)

	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}
	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("Badge storage started with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *BadgeService) ensureBucket() error {
	c := ctx.Background()

	exists, err := svc.client.BucketExists(c, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(c, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created MinIO bucket: %s", svc.bucketName)
	}

	return nil
}

// UploadBadge stores a badge image for the achievement and sets its badge
// URL. The object name is derived from the achievement id so re-uploads
// replace the previous badge.
func (svc *BadgeService) UploadBadge(achievementID, filename, contentType string, reader io.Reader, size int64) (*dto.BadgeUploadResponse, error) {
	if !badgeContentTypes[contentType] {
		return nil, shared.NewBadRequestError(nil, fmt.Sprintf("unsupported badge content type %s", contentType))
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		ext = ".png"
	}
	objectName := fmt.Sprintf("badges/%s%s", achievementID, ext)

	_, err := svc.client.PutObject(ctx.Background(), svc.bucketName, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to upload badge")
	}

	scheme := "http"
	if svc.useSSL {
		scheme = "https"
	}
	badgeURL := fmt.Sprintf("%s://%s/%s/%s", scheme, svc.endpoint, svc.bucketName, objectName)

	if err := svc.achievementSvc.SetBadgeURL(achievementID, badgeURL); err != nil {
		return nil, err
	}

	return &dto.BadgeUploadResponse{
		AchievementID: achievementID,
		BadgeURL:      badgeURL,
		Size:          size,
		ContentType:   contentType,
	}, nil
}
