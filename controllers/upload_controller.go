package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/middleware"
	"github.com/ihirwe-dev/gura-express-api/models"
	"github.com/ihirwe-dev/gura-express-api/services"
	"github.com/ihirwe-dev/gura-express-api/utils"
)

// UploadVerificationDocuments handles POST /api/v1/verification/upload -
// the customer submits an ID photo and a selfie. Re-submitting resets the
// verification status to pending for a fresh review.
func UploadVerificationDocuments(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	idPhoto, errID := c.FormFile("id_photo")
	selfie, errSelfie := c.FormFile("selfie")
	if errID != nil || errSelfie != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Both ID photo and selfie are required",
			},
		})
		return
	}

	for _, fileHeader := range []*multipart.FileHeader{idPhoto, selfie} {
		if err := utils.ValidateImageUpload(fileHeader, utils.MaxVerificationSize); err != nil {
			uploadErr := err.(*utils.FileUploadError)
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    uploadErr.Code,
					"message": uploadErr.Message,
				},
			})
			return
		}
	}

	media := services.GetMediaService()
	idPhotoPath, err := media.Store(idPhoto, services.MediaKindVerification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store documents",
			},
		})
		return
	}
	selfiePath, err := media.Store(selfie, services.MediaKindVerification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store documents",
			},
		})
		return
	}

	err = config.GetDB().Model(user).Updates(map[string]interface{}{
		"id_photo_path":       idPhotoPath,
		"selfie_path":         selfiePath,
		"verification_status": models.VerificationPending,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to save verification documents",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message": "Verification documents uploaded successfully",
		},
	})
}

// ServeUpload handles GET /uploads/:kind/:filename - serves locally stored
// media. S3-backed deployments hand out presigned URLs instead.
func ServeUpload(c *gin.Context) {
	kind, filename, ok := utils.SplitUploadPath("/uploads/" + c.Param("kind") + "/" + c.Param("filename"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"message": "Invalid upload path",
			},
		})
		return
	}

	filePath := filepath.Join(config.GetConfig().UploadDir, kind, filename)
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "File not found",
			},
		})
		return
	}

	c.Header("Cache-Control", "public, max-age=86400") // cache for 24 hours
	c.File(filePath)
}

// CompressPhoto handles POST /api/v1/compress-photo - squeezes a photo
// into the order form's 150KB screenshot budget and returns the JPEG bytes
// as a download.
func CompressPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "No file uploaded",
			},
		})
		return
	}

	if err := utils.ValidateImageUpload(fileHeader, utils.MaxCompressorSize); err != nil {
		uploadErr := err.(*utils.FileUploadError)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    uploadErr.Code,
				"message": uploadErr.Message,
			},
		})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Could not read uploaded file",
			},
		})
		return
	}
	defer file.Close()

	input, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INTERNAL_ERROR",
				"message": "Could not read uploaded file",
			},
		})
		return
	}

	output, err := services.CompressPhoto(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	disposition := fmt.Sprintf(`attachment; filename="compressed-%d.jpg"`, time.Now().Unix())
	c.Header("Content-Disposition", disposition)
	c.Data(http.StatusOK, "image/jpeg", output)
}
