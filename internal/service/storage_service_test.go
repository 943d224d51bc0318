package service

import (
	"context"
	"english_app_backend/internal/config"
	"english_app_backend/internal/util"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUploadMediaLocal(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})

	url, err := svc.UploadMedia(context.Background(), "Hello.MP3", strings.NewReader("ID3"), 3, "audio/mpeg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".mp3"))

	stored, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(strings.TrimPrefix(url, "/uploads/"))))
	require.NoError(t, err)
	assert.Equal(t, "ID3", string(stored))
}

func TestUploadMediaRejectsOtherFiles(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()}})
	ctx := context.Background()

	_, err := svc.UploadMedia(ctx, "script.sh", strings.NewReader("#!"), 2, "text/x-shellscript")
	assert.ErrorIs(t, err, util.ErrUnsupportedMediaType)

	_, err = svc.UploadMedia(ctx, "fake.png", strings.NewReader("<html>"), 6, "text/html")
	assert.ErrorIs(t, err, util.ErrUnsupportedMediaType)
}

func TestMinioProviderURL(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{
		Type:          util.StorageMinio,
		MinioEndpoint: "localhost:9000",
		MinioAccessID: "minio",
		MinioSecret:   "minio123",
		MinioBucket:   "lessons",
	}})
	p, ok := svc.Provider.(*MinioStorageProvider)
	require.True(t, ok)
	assert.Equal(t, "/lessons/2026/03/10/a.png", p.GetURL("2026/03/10/a.png"))
}
