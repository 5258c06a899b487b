package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mafgems/api/internal/client"
	"github.com/mafgems/api/internal/model"
)

const MaxReferenceImageSize = 10 * 1024 * 1024 // 10MB

var (
	ErrUnsupportedImageType = errors.New("unsupported image type")
	ErrImageTooLarge        = errors.New("image exceeds size limit")
	ErrForbiddenKey         = errors.New("object does not belong to user")
)

// referenceImageTypes maps accepted content types to file extensions
var referenceImageTypes = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/webp": "webp",
}

// UploadService stores reference images for image-based generations
type UploadService struct {
	storage client.StorageClient
	now     func() time.Time
}

// NewUploadService creates an upload service. A nil storage client falls
// back to mock URLs for local development.
func NewUploadService(storage client.StorageClient) *UploadService {
	return &UploadService{
		storage: storage,
		now:     time.Now,
	}
}

// UploadReferenceImage stores an image under references/<userId>/
func (s *UploadService) UploadReferenceImage(ctx context.Context, userID, contentType string, file io.Reader, size int64) (*model.UploadReferenceResponse, error) {
	ext, ok := referenceImageTypes[strings.ToLower(contentType)]
	if !ok {
		return nil, ErrUnsupportedImageType
	}
	if size > MaxReferenceImageSize {
		return nil, ErrImageTooLarge
	}

	id := uuid.New().String()
	key := fmt.Sprintf("references/%s/%s.%s", userID, id, ext)

	var fileURL string
	if s.storage == nil {
		fileURL = fmt.Sprintf("https://cdn.mafgems.com/%s", key)
	} else {
		var err error
		fileURL, err = s.storage.Upload(ctx, key, file, contentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload reference image: %w", err)
		}
	}

	return &model.UploadReferenceResponse{
		ID:          id,
		URL:         fileURL,
		Key:         key,
		ContentType: contentType,
		Size:        size,
		CreatedAt:   s.now(),
	}, nil
}

// DeleteReferenceImage removes an object previously uploaded by userID
func (s *UploadService) DeleteReferenceImage(ctx context.Context, userID, key string) error {
	if !strings.HasPrefix(key, fmt.Sprintf("references/%s/", userID)) || strings.Contains(key, "..") {
		return ErrForbiddenKey
	}
	if s.storage == nil {
		return nil
	}
	return s.storage.Delete(ctx, key)
}
