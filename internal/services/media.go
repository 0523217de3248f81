package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/luminalearn/lumina-backend/internal/logger"
)

// MediaStore persists generated media (tts mp3s) and hands back the URL the
// client should fetch it from.
type MediaStore interface {
	Save(ctx context.Context, key string, data []byte) (string, error)
}

// NewMediaStore picks a backend from MEDIA_STORAGE_MODE: "gcs" uploads to a
// bucket, anything else writes under a local directory served at /media.
func NewMediaStore(log *logger.Logger) (MediaStore, error) {
	mode := strings.TrimSpace(strings.ToLower(os.Getenv("MEDIA_STORAGE_MODE")))
	if mode == "gcs" {
		return newBucketMediaStore(log)
	}
	return newLocalMediaStore(log)
}

type localMediaStore struct {
	log *logger.Logger
	dir string
}

func newLocalMediaStore(log *logger.Logger) (MediaStore, error) {
	dir := os.Getenv("MEDIA_DIR")
	if dir == "" {
		dir = "media"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir %q: %w", dir, err)
	}
	return &localMediaStore{
		log: log.With("service", "LocalMediaStore"),
		dir: dir,
	}, nil
}

// MediaDir returns the directory the local store writes to, for static serving.
func MediaDir() string {
	dir := os.Getenv("MEDIA_DIR")
	if dir == "" {
		dir = "media"
	}
	return dir
}

func (s *localMediaStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create media subdir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write media file %q: %w", key, err)
	}
	return "/media/" + key, nil
}

type bucketMediaStore struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
}

func newBucketMediaStore(log *logger.Logger) (MediaStore, error) {
	serviceLog := log.With("service", "BucketMediaStore")
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("CDN_DOMAIN")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	if saPath == "" {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, storage client falls back to ADC")
	}
	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("Failed to create storage client: %w", err)
	}
	return &bucketMediaStore{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
		cdnDomain:     cdnDomain,
	}, nil
}

func (s *bucketMediaStore) Save(ctx context.Context, key string, data []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := s.storageClient.Bucket(s.bucketName).Object(key).NewWriter(ctx)
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("Failed to write data to GCS: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("Failed to close GCS writer: %w", err)
	}
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key), nil
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, key), nil
}
