package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/services"
)

// respondServiceError translates a typed service error into the JSON error
// envelope. Database failures are logged; everything else is the caller's
// mistake and surfaces as-is.
func respondServiceError(c *gin.Context, err error) {
	se := services.AsServiceError(err)

	status := http.StatusInternalServerError
	switch se.Code {
	case services.CodeValidation:
		status = http.StatusBadRequest
	case services.CodeForbidden:
		status = http.StatusForbidden
	case services.CodeNotFound:
		status = http.StatusNotFound
	case services.CodeConflict:
		status = http.StatusConflict
	case services.CodeDatabase:
		log.Printf("database error: %v", se)
	}

	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    se.Code,
			"message": se.Message,
		},
	})
}

func respondUnauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": "Could not extract user information",
		},
	})
}
