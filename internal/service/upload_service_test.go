package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	uploaded map[string]string
	deleted  []string
	err      error
}

func (f *fakeStorage) Upload(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(body)
	if f.uploaded == nil {
		f.uploaded = map[string]string{}
	}
	f.uploaded[key] = string(data)
	return f.GetPublicURL(key), nil
}

func (f *fakeStorage) Delete(ctx context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.err
}

func (f *fakeStorage) GetPublicURL(key string) string {
	return "https://project.supabase.co/storage/v1/object/public/presentations/" + key
}

func TestUploadReferenceImage(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewUploadService(storage)

	resp, err := svc.UploadReferenceImage(context.Background(), "user-1", "image/jpeg", strings.NewReader("jpeg-bytes"), 10)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Key, "references/user-1/"))
	assert.True(t, strings.HasSuffix(resp.Key, ".jpg"))
	assert.Equal(t, storage.GetPublicURL(resp.Key), resp.URL)
	assert.Equal(t, "jpeg-bytes", storage.uploaded[resp.Key])
}

func TestUploadReferenceImage_Rejects(t *testing.T) {
	svc := NewUploadService(&fakeStorage{})

	_, err := svc.UploadReferenceImage(context.Background(), "user-1", "image/gif", strings.NewReader(""), 10)
	assert.ErrorIs(t, err, ErrUnsupportedImageType)

	_, err = svc.UploadReferenceImage(context.Background(), "user-1", "image/png", strings.NewReader(""), MaxReferenceImageSize+1)
	assert.ErrorIs(t, err, ErrImageTooLarge)
}

func TestUploadReferenceImage_StorageFailure(t *testing.T) {
	svc := NewUploadService(&fakeStorage{err: errors.New("s3 down")})

	_, err := svc.UploadReferenceImage(context.Background(), "user-1", "image/png", strings.NewReader("x"), 1)
	assert.ErrorContains(t, err, "failed to upload reference image")
}

func TestUploadReferenceImage_MockWithoutStorage(t *testing.T) {
	svc := NewUploadService(nil)

	resp, err := svc.UploadReferenceImage(context.Background(), "user-1", "image/webp", strings.NewReader("x"), 1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.mafgems.com/"+resp.Key, resp.URL)
}

func TestDeleteReferenceImage_OwnKeysOnly(t *testing.T) {
	storage := &fakeStorage{}
	svc := NewUploadService(storage)

	assert.ErrorIs(t, svc.DeleteReferenceImage(context.Background(), "user-1", "references/user-2/a.png"), ErrForbiddenKey)
	assert.ErrorIs(t, svc.DeleteReferenceImage(context.Background(), "user-1", "references/user-1/../user-2/a.png"), ErrForbiddenKey)
	require.NoError(t, svc.DeleteReferenceImage(context.Background(), "user-1", "references/user-1/a.png"))
	assert.Equal(t, []string{"references/user-1/a.png"}, storage.deleted)
}
