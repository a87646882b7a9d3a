package utils

import (
	"fmt"
	"mime/multipart"
	"strings"
)

// Upload size ceilings per media kind.
const (
	// MaxScreenshotSize caps product screenshots attached to orders
	MaxScreenshotSize = 150 * 1024
	// MaxVerificationSize caps ID photo and selfie uploads
	MaxVerificationSize = 2 * 1024 * 1024
	// MaxChatMediaSize caps chat images and videos
	MaxChatMediaSize = 2 * 1024 * 1024
	// MaxCompressorSize caps raw photos sent to the compressor
	MaxCompressorSize = 15 * 1024 * 1024
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

func tooLarge(limit int64) *FileUploadError {
	return &FileUploadError{
		Code:    "FILE_TOO_LARGE",
		Message: fmt.Sprintf("File size exceeds maximum allowed size of %d KB", limit/1024),
	}
}

// ValidateImageUpload checks that the file is an image within limit bytes.
func ValidateImageUpload(fileHeader *multipart.FileHeader, limit int64) error {
	if fileHeader.Size > limit {
		return tooLarge(limit)
	}
	if !strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "image/") {
		return &FileUploadError{
			Code:    "INVALID_FILE_TYPE",
			Message: "Only image files are allowed",
		}
	}
	return nil
}

// ValidateChatMediaUpload checks that the file is an image or video within
// limit bytes.
func ValidateChatMediaUpload(fileHeader *multipart.FileHeader, limit int64) error {
	if fileHeader.Size > limit {
		return tooLarge(limit)
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		return &FileUploadError{
			Code:    "INVALID_FILE_TYPE",
			Message: "Only images and videos are allowed",
		}
	}
	return nil
}

// IsVideoUpload reports whether the uploaded file declares a video mime type.
func IsVideoUpload(fileHeader *multipart.FileHeader) bool {
	return strings.HasPrefix(fileHeader.Header.Get("Content-Type"), "video/")
}

// SplitUploadPath splits a stored reference like
// "/uploads/screenshots/abc.png" into its kind and filename. It rejects
// anything that does not look like a clean two-segment upload path, which
// doubles as the traversal guard for file serving.
func SplitUploadPath(path string) (kind, filename string, ok bool) {
	const prefix = "/uploads/"
	if !strings.HasPrefix(path, prefix) {
		return "", "", false
	}
	rest := strings.TrimPrefix(path, prefix)
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	if strings.Contains(rest, "..") || strings.ContainsAny(rest, "\\") {
		return "", "", false
	}
	return parts[0], parts[1], true
}
