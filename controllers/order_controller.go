package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/middleware"
	"github.com/ihirwe-dev/gura-express-api/services"
	"github.com/ihirwe-dev/gura-express-api/utils"
)

// CreateOrder handles POST /api/v1/orders - places a new order. The form
// arrives as multipart so the customer can attach a product screenshot.
func CreateOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	input := services.CreateOrderInput{
		ProductLink:     c.PostForm("product_link"),
		ProductName:     c.PostForm("product_name"),
		Quantity:        c.PostForm("quantity"),
		Variation:       c.PostForm("variation"),
		Specifications:  c.PostForm("specifications"),
		Notes:           c.PostForm("notes"),
		ShippingAddress: c.PostForm("shipping_address"),
	}

	// Optional screenshot, capped at 150KB
	if fileHeader, err := c.FormFile("screenshot"); err == nil {
		if err := utils.ValidateImageUpload(fileHeader, utils.MaxScreenshotSize); err != nil {
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
		path, err := services.GetMediaService().Store(fileHeader, services.MediaKindScreenshots)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_ERROR",
					"message": "Failed to store screenshot",
				},
			})
			return
		}
		input.ScreenshotPath = path
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.CreateOrder(user, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListMyOrders handles GET /api/v1/orders - lists the principal's own
// orders, newest first.
func ListMyOrders(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.ListUserOrders(user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrder handles GET /api/v1/orders/:id - fetches one order, subject to
// the record-level visibility rule (owner, assigned employee, admin+).
func GetOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.GetOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !services.CanAccessOrder(user, order) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Access denied",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetOrderHistory handles GET /api/v1/orders/:id/history - returns the
// audit trail of an order, newest first.
func GetOrderHistory(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.GetOrder(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if !services.CanAccessOrder(user, order) {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FORBIDDEN",
				"message": "Access denied",
			},
		})
		return
	}

	history, err := orderService.GetOrderHistory(order.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    history,
	})
}
