package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/middleware"
	"github.com/ihirwe-dev/gura-express-api/models"
	"github.com/ihirwe-dev/gura-express-api/services"
	"github.com/ihirwe-dev/gura-express-api/utils"
)

// MarkReadRequest represents the batch read-receipt body
type MarkReadRequest struct {
	MessageIDs []string `json:"message_ids"`
}

// SendMessage handles POST /api/v1/messages - appends a message to an
// order thread or a staff thread. Multipart so chat media can ride along.
func SendMessage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	input := services.SendMessageInput{
		OrderID:    c.PostForm("order_id"),
		ReceiverID: c.PostForm("receiver_id"),
		Content:    c.PostForm("content"),
	}

	// Optional chat media: images and videos up to 2MB
	if fileHeader, err := c.FormFile("media"); err == nil {
		if err := utils.ValidateChatMediaUpload(fileHeader, utils.MaxChatMediaSize); err != nil {
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

		kind := services.MediaKindChat
		input.MediaType = models.MediaImage
		if utils.IsVideoUpload(fileHeader) {
			kind = services.MediaKindVideos
			input.MediaType = models.MediaVideo
		}

		path, err := services.GetMediaService().Store(fileHeader, kind)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_ERROR",
					"message": "Failed to store media",
				},
			})
			return
		}
		input.MediaPath = path
	}

	messageService := services.NewMessageService(config.GetDB())
	message, err := messageService.SendMessage(user, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    message,
	})
}

// ListOrderMessages handles GET /api/v1/messages/order/:orderId - the
// chronological thread of one order
func ListOrderMessages(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	messageService := services.NewMessageService(config.GetDB())
	messages, err := messageService.ListOrderThread(user, c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// ListStaffMessages handles GET /api/v1/messages/staff and
// GET /api/v1/messages/staff/:userId - staff-to-staff threads. Without a
// target user it returns every staff message touching the principal.
func ListStaffMessages(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	messageService := services.NewMessageService(config.GetDB())
	messages, err := messageService.ListStaffThread(user.ID, c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    messages,
	})
}

// MarkMessagesRead handles POST /api/v1/messages/read - batch read receipts
func MarkMessagesRead(c *gin.Context) {
	var req MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	messageService := services.NewMessageService(config.GetDB())
	if err := messageService.MarkRead(req.MessageIDs); err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"marked": len(req.MessageIDs),
		},
	})
}

// GetUnreadCount handles GET /api/v1/messages/unread-count - unread
// messages addressed to the principal
func GetUnreadCount(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	messageService := services.NewMessageService(config.GetDB())
	count, err := messageService.UnreadCount(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"unread": count,
		},
	})
}
