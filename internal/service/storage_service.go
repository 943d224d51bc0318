package service

import (
	"context"
	"english_app_backend/internal/config"
	"english_app_backend/internal/util"
	"english_app_backend/pkg/logger"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider stores uploaded lesson media.
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetURL(filename string) string
}

type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/uploads/" + filename
}

type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

type StorageService struct {
	Provider StorageProvider
}

// NewStorageService falls back to local disk when MinIO can't be configured.
func NewStorageService(cfg *config.Config) *StorageService {
	var provider StorageProvider
	if cfg.Storage.Type == util.StorageMinio {
		p, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Error("MinIO storage unavailable, using local storage", zap.Error(err))
		} else {
			provider = p
		}
	}

	if provider == nil {
		provider = &LocalStorageProvider{Config: &cfg.Storage}
	}

	return &StorageService{Provider: provider}
}

func allowedExtension(ext string) bool {
	for _, allowed := range util.AllowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// UploadMedia stores an image, audio or video file under a generated,
// date-prefixed name and returns its public URL.
func (s *StorageService) UploadMedia(ctx context.Context, original string, reader io.Reader, size int64, contentType string) (string, error) {
	ext := strings.ToLower(filepath.Ext(original))
	if !allowedExtension(ext) {
		return "", util.ErrUnsupportedMediaType
	}
	if contentType != "" && contentType != "application/octet-stream" &&
		!strings.HasPrefix(contentType, util.MimeImage) &&
		!strings.HasPrefix(contentType, util.MimeAudio) &&
		!strings.HasPrefix(contentType, util.MimeVideo) {
		return "", util.ErrUnsupportedMediaType
	}

	name := path.Join(time.Now().Format("2006/01/02"), uuid.New().String()+ext)
	url, err := s.Provider.Upload(ctx, name, reader, size, contentType)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", original, err)
	}
	return url, nil
}
