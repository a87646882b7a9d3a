package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ihirwe-dev/gura-express-api/config"
	"github.com/ihirwe-dev/gura-express-api/middleware"
	"github.com/ihirwe-dev/gura-express-api/services"
)

// ApproveOrderRequest represents the request body for approving an order
type ApproveOrderRequest struct {
	AssignedEmployeeID string `json:"assigned_employee_id" binding:"omitempty"`
}

// DeclineOrderRequest represents the request body for declining an order
type DeclineOrderRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// UpdateStageRequest represents the request body for a stage update
type UpdateStageRequest struct {
	Stage string `json:"stage" binding:"required"`
	Note  string `json:"note" binding:"omitempty"`
}

// InternalNotesRequest represents the request body for staff annotations
type InternalNotesRequest struct {
	Notes string `json:"notes"`
}

// AssignEmployeeRequest represents the request body for order assignment
type AssignEmployeeRequest struct {
	EmployeeID string `json:"employee_id" binding:"required"`
}

// ListStaffOrders handles GET /api/v1/employee/orders - the staff work
// queue: admins see every order, employees see only their assignments.
func ListStaffOrders(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	orderService := services.NewOrderService(config.GetDB())

	var orders interface{}
	if services.CanViewAllOrders(user.Role) {
		orders, err = orderService.ListAllOrders()
	} else {
		orders, err = orderService.ListAssignedOrders(user.ID)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// ApproveOrder handles POST /api/v1/employee/orders/:id/approve
func ApproveOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req ApproveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
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

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.ApproveOrder(c.Param("id"), user.ID, req.AssignedEmployeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// DeclineOrder handles POST /api/v1/employee/orders/:id/decline
func DeclineOrder(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req DeclineOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Decline reason is required",
				"details": err.Error(),
			},
		})
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.DeclineOrder(c.Param("id"), user.ID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrderStage handles PATCH /api/v1/employee/orders/:id/stage
func UpdateOrderStage(c *gin.Context) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		respondUnauthorized(c)
		return
	}

	var req UpdateStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Stage is required",
				"details": err.Error(),
			},
		})
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.AdvanceStage(c.Param("id"), user.ID, req.Stage, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateInternalNotes handles PATCH /api/v1/employee/orders/:id/notes
func UpdateInternalNotes(c *gin.Context) {
	var req InternalNotesRequest
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

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.SetInternalNotes(c.Param("id"), req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AssignOrder handles PATCH /api/v1/admin/orders/:id/assign
func AssignOrder(c *gin.Context) {
	var req AssignEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Employee ID is required",
				"details": err.Error(),
			},
		})
		return
	}

	orderService := services.NewOrderService(config.GetDB())
	order, err := orderService.AssignEmployee(c.Param("id"), req.EmployeeID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// ListAllOrders handles GET /api/v1/admin/orders - every order, admin only
func ListAllOrders(c *gin.Context) {
	orderService := services.NewOrderService(config.GetDB())
	orders, err := orderService.ListAllOrders()
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}
