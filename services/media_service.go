package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/ihirwe-dev/gura-express-api/utils"
)

// Media kinds map to storage prefixes and upload limits. Each kind keeps
// its own folder so served paths stay stable across storage backends.
const (
	MediaKindScreenshots  = "screenshots"
	MediaKindVerification = "verification"
	MediaKindChat         = "chat"
	MediaKindVideos       = "videos"
	MediaKindHero         = "hero"
	MediaKindCompanies    = "companies"
	MediaKindSocial       = "social"
)

// MediaService stores uploaded files and hands back the reference path
// persisted on orders, users and messages.
type MediaService interface {
	// Store validates nothing; callers validate with utils first. It
	// persists the file under the given kind and returns the reference
	// path, e.g. "/uploads/screenshots/<uuid>.png".
	Store(fileHeader *multipart.FileHeader, kind string) (string, error)

	// URL resolves a stored reference to something a client can fetch.
	URL(path string) (string, error)

	// Delete removes a stored file. Missing files are not an error.
	Delete(path string) error
}

var mediaServiceInstance MediaService

// GetMediaService returns the initialized media service instance
func GetMediaService() MediaService {
	return mediaServiceInstance
}

// SetMediaService sets the media service instance (primarily for testing)
func SetMediaService(service MediaService) {
	mediaServiceInstance = service
}

// LocalMediaService stores files on local disk under a base directory,
// one subdirectory per media kind.
type LocalMediaService struct {
	baseDir string
}

// InitLocalMediaService creates the upload directories and installs a
// disk-backed media service.
func InitLocalMediaService(baseDir string) (*LocalMediaService, error) {
	kinds := []string{
		MediaKindScreenshots, MediaKindVerification, MediaKindChat,
		MediaKindVideos, MediaKindHero, MediaKindCompanies, MediaKindSocial,
	}
	for _, kind := range kinds {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory for %s: %w", kind, err)
		}
	}
	svc := &LocalMediaService{baseDir: baseDir}
	mediaServiceInstance = svc
	return svc, nil
}

// Store writes the file to <baseDir>/<kind>/<uuid><ext> and returns the
// serving path.
func (l *LocalMediaService) Store(fileHeader *multipart.FileHeader, kind string) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Printf("warning: failed to close uploaded file: %v", closeErr)
		}
	}()

	filename := uuid.NewString() + filepath.Ext(fileHeader.Filename)
	dstPath := filepath.Join(l.baseDir, kind, filename)

	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil {
			log.Printf("warning: failed to close stored file: %v", closeErr)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	return "/uploads/" + kind + "/" + filename, nil
}

// URL is the stored path itself for local files; they are served by the
// uploads controller.
func (l *LocalMediaService) URL(path string) (string, error) {
	return path, nil
}

// Delete removes the file behind a stored reference path.
func (l *LocalMediaService) Delete(path string) error {
	kind, filename, ok := utils.SplitUploadPath(path)
	if !ok {
		return fmt.Errorf("not an upload path: %s", path)
	}
	err := os.Remove(filepath.Join(l.baseDir, kind, filename))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// S3MediaService stores files in S3, keyed "<kind>/<uuid><ext>", and
// resolves references to presigned URLs.
type S3MediaService struct {
	s3 S3Interface
}

// InitS3MediaService installs an S3-backed media service.
func InitS3MediaService(s3 S3Interface) *S3MediaService {
	svc := &S3MediaService{s3: s3}
	mediaServiceInstance = svc
	return svc
}

// Store uploads the file and returns its S3 key.
func (s *S3MediaService) Store(fileHeader *multipart.FileHeader, kind string) (string, error) {
	return s.s3.UploadFile(fileHeader, kind)
}

// URL returns a presigned URL for the stored key.
func (s *S3MediaService) URL(path string) (string, error) {
	return s.s3.GetPresignedURL(path)
}

// Delete removes the object behind the key.
func (s *S3MediaService) Delete(path string) error {
	return s.s3.DeleteFile(path)
}
