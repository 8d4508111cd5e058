// Package media rehosts flower photos in an S3-compatible object store so
// catalog entries do not depend on third-party image URLs staying alive.
package media

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/floralab/bloombot/internal/config"
)

// Service uploads photos to the configured bucket. Like the other
// collaborators it degrades instead of failing: when the store is not
// configured or an upload errors, the original source URL is kept.
type Service struct {
	cfg    config.MediaConfig
	client *minio.Client
	http   *http.Client
}

// NewService builds the media service. With no object store configured it
// still constructs and passes source URLs through untouched.
func NewService(cfg config.MediaConfig) (*Service, error) {
	s := &Service{
		cfg:  cfg,
		http: &http.Client{Timeout: 15 * time.Second},
	}

	if !cfg.Enabled() {
		return s, nil
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object store client: %w", err)
	}

	s.client = client
	return s, nil
}

// StorePhoto fetches the photo at srcURL and rehosts it in the bucket,
// returning the rehosted URL. On any failure the source URL is returned so
// the catalog entry still gets a picture.
func (s *Service) StorePhoto(ctx context.Context, name, srcURL string) string {
	if s.client == nil {
		return srcURL
	}

	rehosted, err := s.rehost(ctx, name, srcURL)
	if err != nil {
		log.Printf("[media] rehost failed, keeping source url: %v", err)
		return srcURL
	}
	return rehosted
}

func (s *Service) rehost(ctx context.Context, name, srcURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srcURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("photo source returned status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	exists, err := s.client.BucketExists(ctx, s.cfg.Bucket)
	if err != nil {
		return "", err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return "", err
		}
	}

	objectName := objectNameFor(name, srcURL)
	if _, err := s.client.PutObject(ctx, s.cfg.Bucket, objectName, resp.Body, resp.ContentLength, minio.PutObjectOptions{
		ContentType: contentType,
	}); err != nil {
		return "", err
	}

	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, objectName), nil
}

func objectNameFor(name, srcURL string) string {
	base := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "_"))
	ext := path.Ext(srcURL)
	if ext == "" || len(ext) > 5 {
		ext = ".jpg"
	}
	return fmt.Sprintf("flower_%s_%d%s", base, time.Now().UnixNano(), ext)
}
